package transfer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/streaklit/internal/cli"
)

type ExportCmd struct {
	Output string `short:"o" help:"File to write (default: stdout)." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if c.Output == "" {
		return tr.Export(ctx.Out)
	}

	if err := os.MkdirAll(filepath.Dir(c.Output), 0700); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := tr.Export(f); err != nil {
		return err
	}
	ctx.Printf("Exported %d habits to %s\n", len(tr.Habits()), c.Output)
	return nil
}

type ImportCmd struct {
	File string `arg:"" help:"Export file to import." type:"existingfile"`
}

// Run adds the file's habits that are not already tracked. A backup is
// taken first.
func (c *ImportCmd) Run(ctx *cli.Context) error {
	tr, err := ctx.Tracker()
	if err != nil {
		return err
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	ctx.PerformAutomaticBackup()

	n, err := tr.Import(f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	ctx.Printf("Imported %d habits from %s\n", n, filepath.Base(c.File))
	return nil
}
