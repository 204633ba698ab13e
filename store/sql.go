// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver, cgo-free
)

// Dialect selects the SQL flavor a SQL store speaks.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// SQL is a Store backed by a relational database through database/sql.
// A single two-column table holds every record: k is the primary key,
// v the payload.
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

const sqliteSchema = `
-- Registry records
CREATE TABLE IF NOT EXISTS registry_kv (
    k BLOB PRIMARY KEY,
    v BLOB NOT NULL
);
`

const postgresSchema = `
-- Registry records
CREATE TABLE IF NOT EXISTS registry_kv (
    k BYTEA PRIMARY KEY,
    v BYTEA NOT NULL
);
`

// OpenSQLite opens or creates a SQLite-backed store at path.
func OpenSQLite(path string) (*SQL, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	return newSQL(db, DialectSQLite)
}

// OpenPostgres opens a PostgreSQL-backed store from a lib/pq
// connection URL.
func OpenPostgres(databaseURL string) (*SQL, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("database url is required")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres db: %w", err)
	}
	return newSQL(db, DialectPostgres)
}

func newSQL(db *sql.DB, dialect Dialect) (*SQL, error) {
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQL{db: db, dialect: dialect}
	if err := s.createSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// createSchema creates the key-value table.
// Safe to call multiple times - uses IF NOT EXISTS.
func (s *SQL) createSchema() error {
	schema := sqliteSchema
	if s.dialect == DialectPostgres {
		schema = postgresSchema
	}
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQL) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQL) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value []byte
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT v FROM registry_kv WHERE k = ?`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return value, nil
}

func (s *SQL) Set(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(
		ctx,
		s.rebind(`INSERT INTO registry_kv (k, v) VALUES (?, ?) ON CONFLICT (k) DO UPDATE SET v = excluded.v`),
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set record: %w", err)
	}
	return nil
}

func (s *SQL) Has(ctx context.Context, key []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var one int
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT 1 FROM registry_kv WHERE k = ?`), key).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check record: %w", err)
	}
	return true, nil
}

// rebind rewrites ? placeholders into the $N form postgres expects.
// SQLite queries pass through untouched.
func (s *SQL) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

var _ Store = (*SQL)(nil)
