package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/dmitrijs2005/edutor/internal/dbx"
	"github.com/dmitrijs2005/edutor/internal/storage/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Dialect describes the SQL flavour of a backend.
type Dialect struct {
	Name   string // goose dialect
	Driver string // database/sql driver
	Dir    string // migrations directory

	get    string
	set    string
	delete string
	purge  string
}

var (
	Postgres = Dialect{
		Name:   "postgres",
		Driver: "pgx",
		Dir:    "postgres",
		get: `SELECT value FROM client_storage
		 WHERE namespace = $1 AND key = $2 AND (expires_at IS NULL OR expires_at > $3)`,
		set: `INSERT INTO client_storage (namespace, key, value, expires_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at`,
		delete: `DELETE FROM client_storage WHERE namespace = $1 AND key = $2`,
		purge:  `DELETE FROM client_storage WHERE expires_at IS NOT NULL AND expires_at <= $1`,
	}

	SQLite = Dialect{
		Name:   "sqlite3",
		Driver: "sqlite",
		Dir:    "sqlite",
		get: `SELECT value FROM client_storage
		 WHERE namespace = ? AND key = ? AND (expires_at IS NULL OR expires_at > ?)`,
		set: `INSERT INTO client_storage (namespace, key, value, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`,
		delete: `DELETE FROM client_storage WHERE namespace = ? AND key = ?`,
		purge:  `DELETE FROM client_storage WHERE expires_at IS NOT NULL AND expires_at <= ?`,
	}
)

// SQLBackend stores client state in a client_storage table. Expiry is kept
// as unix milliseconds so both dialects compare plain integers.
type SQLBackend struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

// NewSQLBackend wraps an open database. Call Migrate before first use.
func NewSQLBackend(db *sql.DB, d Dialect) *SQLBackend {
	return &SQLBackend{db: db, dialect: d, now: time.Now}
}

// OpenSQLBackend opens the DSN with the dialect's driver and runs migrations.
func OpenSQLBackend(ctx context.Context, d Dialect, dsn string) (*SQLBackend, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if d.Driver == SQLite.Driver {
		// one writer at a time; avoids SQLITE_BUSY under concurrent requests
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	b := NewSQLBackend(db, d)
	if err := b.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}
	return b, nil
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate applies the embedded migrations for the backend's dialect.
func (b *SQLBackend) Migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations.Migrations, b.dialect.Dir)
	if err != nil {
		return err
	}
	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(b.dialect.Name); err != nil {
		return err
	}
	return gooseUpContext(ctx, b.db, ".")
}

// SetClock replaces the time source used for expiry.
func (b *SQLBackend) SetClock(now func() time.Time) {
	b.now = now
}

func (b *SQLBackend) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	var value string
	err := b.db.QueryRowContext(ctx, b.dialect.get, namespace, key, b.now().UnixMilli()).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("db error: %w", err)
	}
	return value, true, nil
}

func (b *SQLBackend) Set(ctx context.Context, namespace, key, value string, ttl time.Duration) error {
	var expires sql.NullInt64
	if at := expiresAt(b.now(), ttl); !at.IsZero() {
		expires = sql.NullInt64{Int64: at.UnixMilli(), Valid: true}
	}

	if _, err := b.db.ExecContext(ctx, b.dialect.set, namespace, key, value, expires); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes all keys in one transaction so a session is never left
// half-deleted.
func (b *SQLBackend) Delete(ctx context.Context, namespace string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return dbx.WithTx(ctx, b.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, key := range keys {
			if _, err := tx.ExecContext(ctx, b.dialect.delete, namespace, key); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
		}
		return nil
	})
}

func (b *SQLBackend) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := b.db.ExecContext(ctx, b.dialect.purge, b.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return res.RowsAffected()
}

func (b *SQLBackend) Ping(ctx context.Context) error {
	return b.db.PingContext(ctx)
}

func (b *SQLBackend) Close() error {
	return b.db.Close()
}
