package sqldb

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// gooseMu guards goose's package-level dialect and filesystem.
var gooseMu sync.Mutex

// dialectMap maps database drivers to goose dialect names and migration
// directories.
var dialectMap = map[string]string{
	DriverSQLite:   "sqlite3",
	DriverPostgres: "postgres",
	DriverPgx:      "postgres",
}

func migrationsDir(dialect string) string {
	if dialect == "sqlite3" {
		return "migrations/sqlite"
	}
	return "migrations/postgres"
}

func migrate(db *sql.DB, driver string) error {
	dialect, ok := dialectMap[driver]
	if !ok {
		return fmt.Errorf("no migration dialect for driver %q", driver)
	}
	dir, err := fs.Sub(migrationsFS, migrationsDir(dialect))
	if err != nil {
		return fmt.Errorf("migrations directory: %w", err)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()
	goose.SetBaseFS(dir)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("migration version: %w", err)
	}
	slog.Info("migrations completed", "dialect", dialect, "version", version)
	return nil
}
