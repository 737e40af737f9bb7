package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLite stores the namespace as rows of a single kv table.
type SQLite struct {
	db        *sql.DB
	namespace string
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (or creates) the database at path. ":memory:" gives a
// private in-memory database.
func OpenSQLite(ctx context.Context, path, namespace string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}

	// One connection: a ":memory:" database is per-connection, and SQLite
	// only has a single writer anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate cache database: %w", err)
	}
	return NewSQLite(db, namespace), nil
}

// NewSQLite wraps an already migrated database.
func NewSQLite(db *sql.DB, namespace string) *SQLite {
	if namespace == "" {
		namespace = "default"
	}
	return &SQLite{db: db, namespace: namespace}
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv (
			namespace   TEXT NOT NULL,
			cache_key   TEXT NOT NULL,
			cache_value TEXT NOT NULL,
			updated_at  DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (namespace, cache_key)
		)
	`)
	return err
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT cache_value FROM kv WHERE namespace = ? AND cache_key = ?`,
		s.namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (namespace, cache_key, cache_value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (namespace, cache_key)
		DO UPDATE SET cache_value = excluded.cache_value, updated_at = CURRENT_TIMESTAMP`,
		s.namespace, key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) ClearAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE namespace = ?`, s.namespace); err != nil {
		return fmt.Errorf("clear namespace %q: %w", s.namespace, err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
