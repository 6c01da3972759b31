package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// goose keeps dialect and filesystem in package state.
var gooseMu sync.Mutex

// Up applies every pending migration for the given storage driver.
func Up(ctx context.Context, db *sql.DB, driver string, logg goose.Logger) error {
	return run(ctx, db, driver, logg, func(ctx context.Context, db *sql.DB) error {
		return goose.UpContext(ctx, db, migrationsDir)
	})
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB, driver string, logg goose.Logger) error {
	return run(ctx, db, driver, logg, func(ctx context.Context, db *sql.DB) error {
		return goose.DownContext(ctx, db, migrationsDir)
	})
}

// Version reports the current schema version.
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	var version int64
	err := run(ctx, db, driver, nil, func(ctx context.Context, db *sql.DB) error {
		v, err := goose.GetDBVersionContext(ctx, db)
		version = v
		return err
	})
	return version, err
}

func run(ctx context.Context, db *sql.DB, driver string, logg goose.Logger, fn func(context.Context, *sql.DB) error) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	dialect, err := dialectFor(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	if logg != nil {
		goose.SetLogger(logg)
	}
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := fn(ctx, db); err != nil {
		return fmt.Errorf("goose %s: %w", dialect, err)
	}
	return nil
}

func dialectFor(driver string) (string, error) {
	switch driver {
	case config.StorageDriverPostgres:
		return "postgres", nil
	case config.StorageDriverSQLite:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("no migrations for storage driver %q", driver)
	}
}
