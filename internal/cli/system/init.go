package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/streaklit/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete existing local data before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force && ctx.HasLocalFile() {
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing data: %w", err)
			}
			ctx.Printf("Deleted existing data at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing data: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized streaklit storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
