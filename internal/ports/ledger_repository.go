package ports

import (
	"context"

	"waste-route-service/internal/domain"
)

// Port: a boundary for persisting allocation records outside the process.
// Implementations are append-only, mirroring the in-memory ledger.
type LedgerRepository interface {
	// Append one committed allocation record.
	Append(ctx context.Context, rec domain.AllocationRecord) error
	// Return the records stored for date in insertion order.
	ListByDate(ctx context.Context, date string) ([]domain.AllocationRecord, error)
	// Return every stored date key in lexicographic order.
	Dates(ctx context.Context) ([]string, error)
}
