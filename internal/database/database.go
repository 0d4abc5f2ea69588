package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// New opens and pings the database. driver is "postgres" or "sqlite".
func New(driver, connStr string) (*sql.DB, error) {
	name, err := driverName(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(name, connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if driver == "sqlite" {
		// One writer at a time; concurrent writers would fail with SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
	}

	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func driverName(driver string) (string, error) {
	switch driver {
	case "postgres":
		return "pgx", nil
	case "sqlite":
		return "sqlite", nil
	}

	return "", fmt.Errorf("unsupported driver %q", driver)
}

// Migrate creates the sales and presales tables when they do not exist.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	stmts := schema
	if driver == "sqlite" {
		stmts = sqliteSchema
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	return nil
}
