// Package storage persists finished runs. The default backend is SQLite via
// the pure-Go modernc.org/sqlite driver; a postgres:// DSN selects PostgreSQL.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq" // PostgreSQL driver
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the database connection for run records.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// IsPostgresDSN reports whether dsn names a PostgreSQL database.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Open opens the records database. A postgres:// DSN connects to PostgreSQL,
// anything else is treated as a SQLite file path whose parent directories are
// created if needed. Migrations run on open.
func Open(dsn string) (*Store, error) {
	if IsPostgresDSN(dsn) {
		return open("postgres", dsn, postgresDialect)
	}

	// Expand ~ to home directory
	if dsn != "" && dsn[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dsn = filepath.Join(home, dsn[1:])
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	return open("sqlite", dsn, sqliteDialect)
}

func open(driver, dsn string, d dialect) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, dialect: d}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// dialect captures the SQL differences between the two backends.
type dialect struct {
	name       string
	idColumn   string
	positional bool // $1, $2 instead of ?
}

var (
	sqliteDialect   = dialect{name: "sqlite", idColumn: "INTEGER PRIMARY KEY AUTOINCREMENT"}
	postgresDialect = dialect{name: "postgres", idColumn: "BIGSERIAL PRIMARY KEY", positional: true}
)

// rebind rewrites ? placeholders for dialects that use numbered parameters.
func (d dialect) rebind(query string) string {
	if !d.positional {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id ` + s.dialect.idColumn + `,
			world_id TEXT NOT NULL,
			player TEXT NOT NULL,
			elapsed_ms BIGINT NOT NULL,
			respawns INTEGER NOT NULL DEFAULT 0,
			stomps INTEGER NOT NULL DEFAULT 0,
			discovered INTEGER NOT NULL DEFAULT 0,
			signs INTEGER NOT NULL DEFAULT 0,
			created_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_world_id ON runs(world_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(world_id, elapsed_ms)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Dialect returns the backend name, "sqlite" or "postgres".
func (s *Store) Dialect() string {
	return s.dialect.name
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
