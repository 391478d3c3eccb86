// Package migration owns both kinds of schema evolution: SQL migrations for
// the database-backed stores and the versioned upgrade of the persisted state
// document.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/streaklit/internal/logger"
)

// ErrTooNew is returned when stored data was written by a newer build
var ErrTooNew = errors.New("newer than supported")

// Migration is one NNN_name.sql file
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// Dialect selects the bind-parameter style of the target database
type Dialect int

const (
	SQLite Dialect = iota
	Postgres
)

// bind returns the nth (1-based) placeholder
func (d Dialect) bind(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// ReadMigrations parses every .sql file at the root of fsys, ordered by
// version. Other files are ignored.
func ReadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var out []Migration
	seen := map[int]string{}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		version, name, err := parseFilename(e.Name())
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %d (%s and %s)", version, prev, e.Name())
		}
		seen[version] = e.Name()

		body, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration %s: %w", e.Name(), err)
		}
		out = append(out, Migration{Version: version, Name: name, SQL: string(body)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

func parseFilename(filename string) (int, string, error) {
	prefix, name, ok := strings.Cut(strings.TrimSuffix(filename, ".sql"), "_")
	if !ok || name == "" {
		return 0, "", fmt.Errorf("migration %s: expected NNN_name.sql", filename)
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version < 1 {
		return 0, "", fmt.Errorf("migration %s: version must be a positive number", filename)
	}
	return version, name, nil
}

// Status is where a database stands against the available migrations
type Status struct {
	Current int
	Latest  int
	Pending []Migration
}

// Check fails with ErrTooNew when the database is ahead of this build
func (s Status) Check() error {
	if s.Current > s.Latest {
		return fmt.Errorf("database schema version %d is %w version %d; upgrade streaklit", s.Current, ErrTooNew, s.Latest)
	}
	return nil
}

// Runner applies migrations and records each one in schema_version
type Runner struct {
	db      *sql.DB
	fs      fs.FS
	dialect Dialect
}

func NewRunner(db *sql.DB, migrationFS fs.FS, dialect Dialect) *Runner {
	return &Runner{db: db, fs: migrationFS, dialect: dialect}
}

func (r *Runner) ensureTable() error {
	_, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// Version is the highest applied migration, 0 for a fresh database
func (r *Runner) Version() (int, error) {
	if err := r.ensureTable(); err != nil {
		return 0, err
	}
	var v int
	if err := r.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

// MarkApplied records version as applied without running anything
func (r *Runner) MarkApplied(version int) error {
	if err := r.ensureTable(); err != nil {
		return err
	}
	return r.record(r.db, version)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (r *Runner) record(db execer, version int) error {
	q := fmt.Sprintf("INSERT INTO schema_version (version, applied_at) VALUES (%s, %s)", r.dialect.bind(1), r.dialect.bind(2))
	if _, err := db.Exec(q, version, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", version, err)
	}
	return nil
}

func (r *Runner) Status() (Status, error) {
	current, err := r.Version()
	if err != nil {
		return Status{}, err
	}
	all, err := ReadMigrations(r.fs)
	if err != nil {
		return Status{}, err
	}

	st := Status{Current: current}
	for _, m := range all {
		st.Latest = m.Version
		if m.Version > current {
			st.Pending = append(st.Pending, m)
		}
	}
	return st, nil
}

// Check fails when the database schema is newer than this build
func (r *Runner) Check() error {
	st, err := r.Status()
	if err != nil {
		return err
	}
	return st.Check()
}

// Up applies pending migrations in order, each in its own transaction with
// its schema_version row, and returns how many ran. report receives progress
// lines and may be nil.
func (r *Runner) Up(report func(string)) (int, error) {
	if report == nil {
		report = func(string) {}
	}

	st, err := r.Status()
	if err != nil {
		return 0, err
	}
	if err := st.Check(); err != nil {
		return 0, err
	}
	if len(st.Pending) == 0 {
		report(fmt.Sprintf("Database schema is up to date (version %d)", st.Current))
		return 0, nil
	}

	report(fmt.Sprintf("Applying %d migration(s): %d -> %d", len(st.Pending), st.Current, st.Latest))
	for i, m := range st.Pending {
		if err := r.apply(m); err != nil {
			return i, err
		}
		logger.Info("Applied schema migration", "version", m.Version, "name", m.Name)
		report(fmt.Sprintf("  ✓ %03d_%s", m.Version, m.Name))
	}
	return len(st.Pending), nil
}

func (r *Runner) apply(m Migration) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(m.SQL); err != nil {
		return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
	}
	if err = r.record(tx, m.Version); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("migration %d: commit failed: %w", m.Version, err)
	}
	return nil
}
