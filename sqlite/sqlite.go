// Package sqlite records downloaded images and scraped case-study pages so
// later runs and the list command can see what a harvest produced.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// schema is applied on every Open. Images are unique per project and local
// path and pages per project, so a repeated harvest upserts its records.
const schema = `
CREATE TABLE IF NOT EXISTS images (
	id           TEXT PRIMARY KEY,
	project_id   TEXT NOT NULL,
	source_url   TEXT NOT NULL,
	local_path   TEXT NOT NULL DEFAULT '',
	kind         TEXT NOT NULL DEFAULT '',
	content_type TEXT NOT NULL DEFAULT '',
	content_hash TEXT NOT NULL DEFAULT '',
	size         INTEGER NOT NULL DEFAULT 0,
	width        INTEGER NOT NULL DEFAULT 0,
	height       INTEGER NOT NULL DEFAULT 0,
	position     INTEGER NOT NULL DEFAULT 0,
	fetched_at   TEXT NOT NULL,
	UNIQUE (project_id, local_path)
);

CREATE INDEX IF NOT EXISTS idx_images_source_url ON images(source_url);

CREATE TABLE IF NOT EXISTS pages (
	id           TEXT PRIMARY KEY,
	project_id   TEXT NOT NULL UNIQUE,
	source_url   TEXT NOT NULL,
	title        TEXT NOT NULL DEFAULT '',
	content      TEXT NOT NULL DEFAULT '',
	content_hash TEXT NOT NULL DEFAULT '',
	case_study   TEXT NOT NULL DEFAULT '',
	fetched_at   TEXT NOT NULL
);
`

// DB is the folio record database.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for the file at path. Pass MemoryPath for a throwaway
// database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// pragmas returns the connection settings for the database. A single
// writer waits up to five seconds on a lock; file databases use WAL.
func (db *DB) pragmas() []string {
	p := []string{"PRAGMA busy_timeout = 5000"}
	if db.path != MemoryPath {
		p = append(p, "PRAGMA journal_mode = WAL")
	}
	return append(p, "PRAGMA foreign_keys = ON")
}

// Open connects to the database and applies the schema.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", db.path, err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("connecting to %s: %w", db.path, err)
	}
	for _, stmt := range append(db.pragmas(), schema) {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return fmt.Errorf("preparing %s: %w", db.path, err)
		}
	}

	db.db = conn
	return nil
}

// Close closes the connection if it was opened.
func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

// QueryRowContext runs a query returning at most one row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext runs a query returning rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext runs a statement without rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}
