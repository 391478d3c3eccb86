package system

import (
	"fmt"

	"github.com/julianstephens/streaklit/internal/cli"
)

type MigrateCmd struct{}

// Run upgrades the storage schema and rewrites the state document at the
// current version. Local data is backed up first.
func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	defer ctx.Store.Close()

	ctx.PerformAutomaticBackup()

	count, err := ctx.Store.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	state, err := ctx.Store.LoadState(ctx.Today())
	if err != nil {
		return fmt.Errorf("failed to upgrade state document: %w", err)
	}
	if err := ctx.Store.SaveState(state); err != nil {
		return fmt.Errorf("failed to save upgraded state document: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Storage is up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
