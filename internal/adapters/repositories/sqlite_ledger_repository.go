package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/obs"
)

// SQLite-backed implementation of the LedgerRepository port.
type SqliteLedgerRepository struct{ DB *sql.DB }

func NewSqliteLedgerRepository(db *sql.DB) *SqliteLedgerRepository {
	return &SqliteLedgerRepository{DB: db}
}

// Store one allocation record.
func (s *SqliteLedgerRepository) Append(ctx context.Context, rec domain.AllocationRecord) (err error) {
	defer obs.Time(ctx, "ledger.sqlite.Append")(&err)

	if s.DB == nil {
		return errors.New("sqlite ledger repository: DB is nil")
	}

	route, err := encodeRoute(rec.Route)
	if err != nil {
		return fmt.Errorf("append allocation %s: %w", rec.ID, err)
	}

	query := `
	INSERT INTO allocations (` + allocationColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err = s.DB.ExecContext(ctx, query,
		rec.ID, rec.Date, rec.VehicleModel, rec.DriverName, rec.WasteArea,
		rec.Distance, rec.FuelRequired, rec.TravelTime.Hours, rec.TravelTime.Minutes, route,
	)
	if err != nil {
		return fmt.Errorf("append allocation %s: insert: %w", rec.ID, err)
	}

	return nil
}

// Return the records stored for date in insertion order.
func (s *SqliteLedgerRepository) ListByDate(ctx context.Context, date string) (_ []domain.AllocationRecord, err error) {
	defer obs.Time(ctx, "ledger.sqlite.ListByDate")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite ledger repository: DB is nil")
	}

	query := `
	SELECT ` + allocationColumns + `
	FROM allocations
	WHERE alloc_date = ?
	ORDER BY seq;
	`
	rows, err := s.DB.QueryContext(ctx, query, date)
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

func (s *SqliteLedgerRepository) Dates(ctx context.Context) ([]string, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite ledger repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT DISTINCT alloc_date FROM allocations ORDER BY alloc_date;`)
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
