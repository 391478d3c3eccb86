package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/keyring"
	"github.com/julianstephens/streaklit/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
	Status KeyringStatusCmd `cmd:"" help:"Show keyring availability." default:"1"`
}

type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring."`
}

// Run stores the connection string. Passwords are allowed here since the
// keyring is encrypted.
func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if err := postgres.ValidateConnString(cmd.ConnectionString); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
		return fmt.Errorf("invalid connection string: %w", err)
	}

	if err := keyring.SetConnectionString(cmd.ConnectionString); err != nil {
		return err
	}
	ctx.Println("✓ Connection string stored successfully in OS keyring")
	ctx.Printf("  %s will use it when --config is not given\n", constants.AppName)
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return errors.New("no connection string found in keyring")
		}
		return err
	}
	ctx.Println("✓ Connection string deleted from OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	status := keyring.GetStatus()
	if !status.Available {
		ctx.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}

	ctx.Println("✓ OS keyring is available")
	if status.Stored {
		ctx.Println("✓ Connection string is stored in keyring")
	} else {
		ctx.Println("ℹ No connection string stored in keyring")
	}
	return nil
}
