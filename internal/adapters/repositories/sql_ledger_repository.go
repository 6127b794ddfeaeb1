package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/obs"
)

// SQLLedgerRepository is the PostgreSQL (pgx) implementation of the
// LedgerRepository port.
type SQLLedgerRepository struct {
	DB *sql.DB
}

func NewSQLLedgerRepository(db *sql.DB) *SQLLedgerRepository {
	return &SQLLedgerRepository{DB: db}
}

// Store one allocation record.
func (s *SQLLedgerRepository) Append(ctx context.Context, rec domain.AllocationRecord) (err error) {
	defer obs.Time(ctx, "ledger.sql.Append")(&err)

	if s.DB == nil {
		return errors.New("sql ledger repository: db is nil")
	}

	route, err := encodeRoute(rec.Route)
	if err != nil {
		return fmt.Errorf("append allocation %s: %w", rec.ID, err)
	}

	q := `
	INSERT INTO allocations (` + allocationColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = s.DB.ExecContext(ctx, q,
		rec.ID, rec.Date, rec.VehicleModel, rec.DriverName, rec.WasteArea,
		rec.Distance, rec.FuelRequired, rec.TravelTime.Hours, rec.TravelTime.Minutes, route,
	)
	if err != nil {
		return fmt.Errorf("append allocation %s: insert: %w", rec.ID, err)
	}

	return nil
}

func (s *SQLLedgerRepository) ListByDate(ctx context.Context, date string) (_ []domain.AllocationRecord, err error) {
	defer obs.Time(ctx, "ledger.sql.ListByDate")(&err)

	if s.DB == nil {
		return nil, errors.New("sql ledger repository: db is nil")
	}

	q := `
	SELECT ` + allocationColumns + `
	FROM allocations
	WHERE alloc_date = $1
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, q, date)
	if err != nil {
		return nil, fmt.Errorf("list allocations %q: query: %w", date, err)
	}
	defer rows.Close()

	recs, err := scanAllocations(rows)
	if err != nil {
		return nil, fmt.Errorf("list allocations %q: %w", date, err)
	}
	return recs, nil
}

// Dates are compared byte-wise so the order matches the in-memory ledger
// regardless of the database collation.
func (s *SQLLedgerRepository) Dates(ctx context.Context) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("sql ledger repository: db is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT alloc_date FROM allocations GROUP BY alloc_date ORDER BY alloc_date COLLATE "C";`)
	if err != nil {
		return nil, fmt.Errorf("list ledger dates: query: %w", err)
	}
	defer rows.Close()

	dates, err := scanDates(rows)
	if err != nil {
		return nil, fmt.Errorf("list ledger dates: %w", err)
	}
	return dates, nil
}
