package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQL flavour of a ledger database.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Create the allocation ledger schema if it does not exist yet.
func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	var seqColumn, realType string
	switch dialect {
	case DialectSQLite:
		seqColumn, realType = "seq INTEGER PRIMARY KEY AUTOINCREMENT", "REAL"
	case DialectPostgres:
		seqColumn, realType = "seq BIGSERIAL PRIMARY KEY", "DOUBLE PRECISION"
	default:
		return fmt.Errorf("init schema: unsupported dialect %q", dialect)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createAllocationsQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS allocations (
		%s,
		id TEXT NOT NULL UNIQUE,
		alloc_date TEXT NOT NULL,
		vehicle_model TEXT NOT NULL,
		driver_name TEXT NOT NULL,
		waste_area TEXT NOT NULL,
		distance INTEGER NOT NULL,
		fuel_required %s NOT NULL,
		travel_hours INTEGER NOT NULL,
		travel_minutes INTEGER NOT NULL,
		route TEXT NOT NULL
	);
	`, seqColumn, realType)

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_allocations_date_seq
	ON allocations(alloc_date, seq);
	`

	statements := []string{
		createAllocationsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
