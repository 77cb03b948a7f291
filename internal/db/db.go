package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	stdfs "io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

// Supported database/sql driver names.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

// DB is a connection pool together with the driver it was opened with, so
// that repositories can adapt placeholders to the dialect.
type DB struct {
	*sql.DB
	Driver string
}

// Open opens a postgres or sqlite3 database and applies pending migrations
// from migrations/<driver>. Migrations are goose SQL files:
//
//	00001_name.sql with "-- +goose Up" / "-- +goose Down" sections
//
// Use RollbackLast to revert the most recent one.
func Open(ctx context.Context, logger *slog.Logger, driver, dsn string) (*DB, error) {
	d, err := Connect(ctx, driver, dsn)
	if err != nil {
		return nil, err
	}
	if err := d.migrateUp(ctx, logger); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

// Connect is Open without applying migrations.
func Connect(ctx context.Context, driver, dsn string) (*DB, error) {
	if driver == "" {
		driver = DriverSQLite
	}
	if dsn == "" && driver == DriverSQLite {
		dsn = "app.db"
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	d, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := d.PingContext(pingCtx); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	switch driver {
	case DriverSQLite:
		// One writer at a time; also keeps shared in-memory databases alive.
		d.SetMaxOpenConns(1)
		// journal_mode may not be supported in some contexts (e.g., in-memory). Ignore errors.
		_, _ = d.ExecContext(ctx, `PRAGMA journal_mode=WAL`)
		if _, err := d.ExecContext(ctx, `PRAGMA busy_timeout=5000`); err != nil {
			_ = d.Close()
			return nil, err
		}
	case DriverPostgres:
		d.SetMaxOpenConns(10)
		d.SetMaxIdleConns(5)
		d.SetConnMaxLifetime(30 * time.Minute)
		d.SetConnMaxIdleTime(5 * time.Minute)
	}

	return &DB{DB: d, Driver: driver}, nil
}

// RollbackLast rolls back the most recently applied migration. It is a no-op
// when nothing has been applied.
func RollbackLast(ctx context.Context, logger *slog.Logger, d *DB) error {
	if d == nil || d.DB == nil {
		return errors.New("nil db")
	}
	p, err := d.provider()
	if err != nil {
		return err
	}
	res, err := p.Down(ctx)
	if errors.Is(err, goose.ErrNoNextVersion) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	if res != nil && res.Source != nil {
		logger.InfoContext(ctx, "migration rolled back",
			slog.Int64("version", res.Source.Version),
			slog.String("file", res.Source.Path))
	}
	return nil
}

func (d *DB) migrateUp(ctx context.Context, logger *slog.Logger) error {
	p, err := d.provider()
	if err != nil {
		return err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	for _, r := range results {
		if r == nil || r.Source == nil {
			continue
		}
		logger.InfoContext(ctx, "migration applied",
			slog.String("driver", d.Driver),
			slog.Int64("version", r.Source.Version),
			slog.String("file", r.Source.Path),
			slog.Duration("took", r.Duration))
	}
	return nil
}

func (d *DB) provider() (*goose.Provider, error) {
	fsys, err := stdfs.Sub(migrationsFS, "migrations/"+d.Driver)
	if err != nil {
		return nil, err
	}
	dialect := goose.DialectSQLite3
	if d.Driver == DriverPostgres {
		dialect = goose.DialectPostgres
	}
	return goose.NewProvider(dialect, d.DB, fsys)
}

// Rebind rewrites '?' placeholders into the dialect's bind syntax. Queries
// are written once with '?' and rebound for postgres ($1, $2, ...).
// Question marks inside string literals are not supported.
func (d *DB) Rebind(query string) string {
	if d.Driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			b.WriteByte(query[i])
			continue
		}
		n++
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}
