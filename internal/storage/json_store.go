package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/migration"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/utils"
)

// ErrNotInitialized is returned by Load when no store exists at the path
var ErrNotInitialized = errors.New("storage not initialized, run '" + constants.AppName + " init' first")

// JSONStore keeps the state document as a single JSON file
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	return s.SaveState(migration.NewState(utils.FormatDate(time.Now())))
}

func (s *JSONStore) Load() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return ErrNotInitialized
	}
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// Migrate rewrites the document at the current version. It reports 1 when
// the stored version was older.
func (s *JSONStore) Migrate(logFn func(string)) (int, error) {
	if logFn == nil {
		logFn = func(string) {}
	}

	raw, err := s.read()
	if err != nil {
		return 0, err
	}

	var header struct {
		Version int `json:"version"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &header); err != nil {
			return 0, fmt.Errorf("failed to decode state document: %w", err)
		}
	}
	if header.Version >= constants.DocumentVersion {
		logFn(fmt.Sprintf("State document is up to date (version %d)", header.Version))
		return 0, nil
	}

	state, err := migration.MigrateDocument(raw, utils.FormatDate(time.Now()))
	if err != nil {
		return 0, err
	}
	if err := s.SaveState(state); err != nil {
		return 0, err
	}
	logFn(fmt.Sprintf("Upgraded state document from version %d to %d", header.Version, constants.DocumentVersion))
	return 1, nil
}

func (s *JSONStore) LoadState(today string) (models.State, error) {
	raw, err := s.read()
	if err != nil {
		return models.State{}, err
	}
	return migration.MigrateDocument(raw, today)
}

// SaveState writes the document to a temp file and renames it into place
func (s *JSONStore) SaveState(state models.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) read() ([]byte, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}
	return raw, nil
}
