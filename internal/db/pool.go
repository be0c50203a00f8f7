package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// Driver names as registered with database/sql.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// DB is the primary store handle. Postgres URLs are served by a pgxpool
// bridged into database/sql; everything else is treated as a SQLite path.
type DB struct {
	*sqlx.DB
	// Pool is the underlying pgx pool, nil for SQLite.
	Pool *pgxpool.Pool
}

// Open creates the store handle without contacting the server. Use WaitReady
// to verify connectivity.
func Open(databaseURL string) (*DB, error) {
	if isPostgres(databaseURL) {
		return openPostgres(databaseURL)
	}
	return openSQLite(databaseURL)
}

func isPostgres(u string) bool {
	return strings.HasPrefix(u, "postgres://") || strings.HasPrefix(u, "postgresql://")
}

func openPostgres(databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 0
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	sqlDB := stdlib.OpenDBFromPool(pool)
	return &DB{DB: sqlx.NewDb(sqlDB, DriverPostgres), Pool: pool}, nil
}

// sqlitePath accepts "sqlite://path", "sqlite:path" or a bare path.
func sqlitePath(u string) string {
	switch {
	case strings.HasPrefix(u, "sqlite://"):
		return strings.TrimPrefix(u, "sqlite://")
	case strings.HasPrefix(u, "sqlite:"):
		return strings.TrimPrefix(u, "sqlite:")
	}
	return u
}

func openSQLite(databaseURL string) (*DB, error) {
	path := sqlitePath(databaseURL)
	if path == "" {
		return nil, fmt.Errorf("empty sqlite path in %q", databaseURL)
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("sqlite: mkdir %s: %w", dir, err)
			}
		}
	}

	// _time_format=sqlite stores timestamps in a layout the driver parses back
	// into time.Time for TIMESTAMP columns.
	sqlDB, err := sqlx.Open(DriverSQLite, path+"?_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	sqlDB.SetMaxOpenConns(1) // SQLite: single writer
	return &DB{DB: sqlDB}, nil
}

// WaitReady pings the store up to attempts times, sleeping interval between
// attempts.
func (d *DB) WaitReady(ctx context.Context, attempts int, interval time.Duration, log zerolog.Logger) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = d.PingContext(ctx); err == nil {
			log.Info().Str("driver", d.DriverName()).Msg("database connected")
			return nil
		}

		log.Warn().Err(err).Int("attempt", attempt).Int("max_attempts", attempts).Msg("database connection attempt failed")
		if attempt < attempts {
			select {
			case <-time.After(interval):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("database connection failed after %d attempts: %w", attempts, err)
}

// Close releases the database/sql handle and, for Postgres, the pool.
func (d *DB) Close() error {
	err := d.DB.Close()
	if d.Pool != nil {
		d.Pool.Close()
	}
	return err
}
