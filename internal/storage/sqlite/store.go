// Package sqlite stores the state document in a local SQLite database.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/migration"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/migrations"
)

// ErrClosed is returned by state reads and writes after Close
var ErrClosed = errors.New("sqlite store is closed")

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		s.db = db
	}

	if _, err := s.Migrate(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return storage.ErrNotInitialized
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.Check()
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Migrate applies pending schema migrations
func (s *Store) Migrate(logFn func(string)) (int, error) {
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.Up(logFn)
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.SQLite), nil
}

func (s *Store) LoadState(today string) (models.State, error) {
	if s.db == nil {
		return models.State{}, ErrClosed
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", constants.StorageKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return migration.NewState(today), nil
		}
		return models.State{}, fmt.Errorf("failed to read state: %w", err)
	}
	return migration.MigrateDocument([]byte(value), today)
}

func (s *Store) SaveState(state models.State) error {
	if s.db == nil {
		return ErrClosed
	}
	data, err := storage.EncodeState(state)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		constants.StorageKey, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB exposes the connection for backups and tests
func (s *Store) GetDB() *sql.DB {
	return s.db
}
