// Package sqldb implements the domain repositories on SQLite or PostgreSQL
// through sqlx.
package sqldb

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"healthhub/internal/domain"
)

// Drivers accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// DB wraps a *sqlx.DB and implements domain repository interfaces.
type DB struct {
	db     *sqlx.DB
	driver string
	seed   bool
}

// Option configures a DB.
type Option func(*DB)

// WithDemoSeed makes Create insert the demo data set for every new user.
func WithDemoSeed() Option {
	return func(d *DB) { d.seed = true }
}

var _ domain.HealthRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)

// Open connects, pings and runs migrations.
func Open(ctx context.Context, driver, dsn string, opts ...Option) (*DB, error) {
	switch driver {
	case DriverSQLite:
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
		}
	case DriverPostgres, DriverPgx:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if driver == DriverSQLite {
		// One connection keeps :memory: databases alive and serializes writers.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	slog.Info("database connected", "driver", driver)

	if err := migrate(db.DB, driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	d := &DB{db: db, driver: driver}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.db.Close()
}
