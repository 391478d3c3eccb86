package cli

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/keyring"
	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/storage/postgres"
	"github.com/julianstephens/streaklit/internal/storage/sqlite"
	"github.com/julianstephens/streaklit/internal/utils"
)

// NewProvider picks a store for a --config value:
//   - a postgres:// URL, which must not embed a password
//   - a *.json path for the plain document store
//   - any other path for SQLite
//
// With no value the connection string from STREAKLIT_DB_CONNECTION or the
// OS keyring is used, falling back to the default SQLite file.
func NewProvider(config string) (storage.Provider, error) {
	if config == "" {
		if connStr := os.Getenv(constants.EnvDBConnection); connStr != "" {
			return postgres.New(connStr), nil
		}
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			return postgres.New(connStr), nil
		case !errors.Is(err, keyring.ErrNotFound):
			logger.Debug("Keyring lookup skipped", "error", err)
		}
		config = constants.DefaultConfigPath
	}

	if postgres.IsConnString(config) || strings.Contains(config, "host=") {
		if err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := utils.ExpandHome(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}
