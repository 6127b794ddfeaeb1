package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"strings"

	"waste-route-service/internal/adapters/export"
	"waste-route-service/internal/adapters/repositories"
	"waste-route-service/internal/config"
	"waste-route-service/internal/domain"
	"waste-route-service/internal/platform/db"
	"waste-route-service/internal/ports"

	"github.com/joho/godotenv"
)

// dbtool initialises the ledger schema of a SQL backend and can dump the
// stored ledger in the text report format.
func main() {
	backend := flag.String("backend", "", "sqlite or postgres (defaults to ledger.backend)")
	dump := flag.Bool("dump", false, "print the stored ledger after initialising the schema")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.NewLoader().Load()
	if err != nil {
		log.Fatal(err)
	}

	b := strings.TrimSpace(*backend)
	if b == "" {
		b = cfg.Ledger.Backend
	}

	ctx := context.Background()

	conn, dialect, err := open(ctx, b, cfg.Ledger)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing ledger schema...")
	if err := repositories.InitSchema(ctx, conn, dialect); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	if !*dump {
		return
	}

	var repo ports.LedgerRepository = repositories.NewSqliteLedgerRepository(conn)
	if dialect == repositories.DialectPostgres {
		repo = repositories.NewSQLLedgerRepository(conn)
	}
	if err := dumpLedger(ctx, repo); err != nil {
		log.Fatalf("dump failed: %v", err)
	}
}

func open(ctx context.Context, backend string, cfg config.LedgerConfig) (*sql.DB, repositories.Dialect, error) {
	switch backend {
	case config.BackendPostgres:
		url := config.Get("DATABASE_URL", cfg.DatabaseURL)
		if url == "" {
			log.Fatal("DATABASE_URL or ledger.database_url is required")
		}
		conn, err := db.OpenPostgres(ctx, url)
		return conn, repositories.DialectPostgres, err
	case config.BackendSQLite:
		conn, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		return conn, repositories.DialectSQLite, err
	default:
		log.Fatalf("backend %q has no SQL schema (use sqlite or postgres)", backend)
		return nil, "", nil
	}
}

// dumpLedger rebuilds a ledger from the repository and prints it.
func dumpLedger(ctx context.Context, repo ports.LedgerRepository) error {
	dates, err := repo.Dates(ctx)
	if err != nil {
		return err
	}

	ledger := domain.NewLedger()
	for _, d := range dates {
		recs, err := repo.ListByDate(ctx, d)
		if err != nil {
			return err
		}
		for _, rec := range recs {
			ledger.Append(d, rec)
		}
	}

	return export.WriteText(os.Stdout, ledger)
}
