package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/streaklit/internal/backup"
	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/logger"
)

var errRemoteStore = errors.New("backups are only available for SQLite and JSON storage")

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	if !ctx.HasLocalFile() {
		return errRemoteStore
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	if !ctx.HasLocalFile() {
		return errRemoteStore
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), backup.MaxBackups)
	for _, b := range backups {
		ctx.Printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	if !ctx.HasLocalFile() {
		return errRemoteStore
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())

	backupPath, err := c.resolve(mgr)
	if err != nil {
		return err
	}

	if !c.Yes {
		ctx.Println(cli.WarningStyle.Render("⚠️  WARNING: This will replace your current habit data with the backup."))
		ctx.Println("Stop any running streaklit TUI first; concurrent access during restore can corrupt data.")
		ctx.Println("A backup of your current data will be created before restoring.")
		ctx.Printf("\nRestore from: %s\n", backupPath)
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		logger.Warn("Failed to close store before restore", "error", err)
	}

	safety, err := mgr.RestoreBackup(backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}
	if safety != "" {
		ctx.Printf("Previous data saved as %s\n", filepath.Base(safety))
	}
	ctx.Println("✓ Data restored successfully!")
	return nil
}

// resolve accepts an absolute path, a path relative to the working
// directory, or a bare file name inside the backup directory
func (c *BackupRestoreCmd) resolve(mgr *backup.Manager) (string, error) {
	if filepath.IsAbs(c.BackupFile) {
		if _, err := os.Stat(c.BackupFile); err != nil {
			return "", fmt.Errorf("backup file not found: %s", c.BackupFile)
		}
		return c.BackupFile, nil
	}
	if _, err := os.Stat(c.BackupFile); err == nil {
		abs, err := filepath.Abs(c.BackupFile)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}
	candidate := filepath.Join(mgr.GetBackupDir(), c.BackupFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", mgr.GetBackupDir())
}
