// Package storage persists all entities behind a single query set that
// runs against an embedded sqlite database by default, or postgres when
// the DSN says so. Queries are written with "?" placeholders and rebound
// for postgres.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/flowstate/api/internal/migration"
	"github.com/flowstate/api/migrations"
)

// Store wraps the database connection shared by all services.
type Store struct {
	dsn      string
	driver   string
	db       *sql.DB
	postgres bool
}

// NewStore creates a store for the given DSN. A DSN starting with
// postgres:// or postgresql:// selects the postgres backend; anything
// else is treated as a sqlite file path.
func NewStore(dsn string) *Store {
	s := &Store{dsn: dsn, driver: "sqlite"}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		s.driver = "postgres"
		s.postgres = true
	}
	return s
}

// Open opens the database connection and verifies it is reachable.
func (s *Store) Open() error {
	if !s.postgres {
		dir := filepath.Dir(s.dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0700); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
		}
	}

	db, err := sql.Open(s.driver, s.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if !s.postgres {
		// modernc sqlite serializes writers itself; a single connection
		// avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("database is not reachable: %w", err)
	}

	s.db = db
	return nil
}

// Migrate applies all pending schema migrations.
func (s *Store) Migrate(report func(msg string)) (int, error) {
	runner := migration.NewRunner(s.db, migrations.FS, s.rebindFunc())
	return runner.ApplyMigrations(report)
}

// ValidateSchema returns an error when the schema version does not match
// the embedded migrations.
func (s *Store) ValidateSchema() error {
	runner := migration.NewRunner(s.db, migrations.FS, s.rebindFunc())
	return runner.ValidateVersion()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) rebindFunc() func(string) string {
	if !s.postgres {
		return nil
	}
	return rebindPostgres
}

// rebind rewrites "?" placeholders to the backend's native form.
func (s *Store) rebind(query string) string {
	if !s.postgres {
		return query
	}
	return rebindPostgres(query)
}

// rowScanner is the subset of *sql.Rows the scan helpers need.
type rowScanner interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// errNoRows wraps sql.ErrNoRows with the entity kind and id so callers
// can classify the failure with errors.Is.
func errNoRows(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, sql.ErrNoRows)
}

// rebindPostgres converts "?" placeholders to $1, $2, ... Question marks
// never appear inside literals in this query set, so a plain scan is
// sufficient.
func rebindPostgres(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
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
