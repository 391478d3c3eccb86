// Package keyring stores the PostgreSQL connection string in the OS keyring.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/streaklit/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are stored
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Status summarizes what the keyring holds for the CLI
type Status struct {
	Available bool
	Stored    bool
}

// GetConnectionString returns the stored connection string or ErrNotFound.
func GetConnectionString() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores connStr, replacing any previous value.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

func DeleteConnectionString() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetStatus probes the keyring. A read that fails with anything other than
// not-found means the keyring is unavailable.
func GetStatus() Status {
	_, err := GetConnectionString()
	switch {
	case err == nil:
		return Status{Available: true, Stored: true}
	case errors.Is(err, ErrNotFound):
		return Status{Available: true}
	default:
		return Status{}
	}
}
