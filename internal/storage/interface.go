package storage

import "github.com/julianstephens/streaklit/internal/models"

// Provider persists the single state document. Implementations store it
// under constants.StorageKey and upgrade it through migration.MigrateDocument
// on every load.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Schema
	Migrate(logFn func(string)) (int, error)

	// State
	LoadState(today string) (models.State, error)
	SaveState(models.State) error

	// Utils
	GetConfigPath() string
}
