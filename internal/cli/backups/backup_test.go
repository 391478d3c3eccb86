package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/streaklit/internal/backup"
	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/storage/postgres"
	"github.com/julianstephens/streaklit/internal/storage/sqlite"
	"github.com/julianstephens/streaklit/internal/tracker"
)

var testClock = tracker.ClockFunc(func() time.Time {
	return time.Date(2026, 3, 11, 12, 0, 0, 0, time.Local)
})

func newContext(store storage.Provider, out *bytes.Buffer) *cli.Context {
	ctx := cli.NewContext(store)
	ctx.Clock = testClock
	ctx.Out = out
	ctx.In = strings.NewReader("")
	return ctx
}

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	var out bytes.Buffer
	return newContext(store, &out), &out, dbPath
}

func habitNames(t *testing.T, dbPath string) []string {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	defer store.Close()
	var out bytes.Buffer
	tr, err := newContext(store, &out).Tracker()
	if err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}
	var names []string
	for _, h := range tr.Habits() {
		names = append(names, h.Name)
	}
	return names
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out, _ := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if !strings.Contains(out.String(), "Backup created: streaklit-") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list failed: %v", err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("expected one backup listed: %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out, dbPath := setupTestDB(t)
	tr, err := ctx.Tracker()
	if err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}
	if _, err := tr.AddHabit(models.HabitInput{Name: "Read"}); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}

	mgr := backup.NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}

	if _, err := tr.AddHabit(models.HabitInput{Name: "Run"}); err != nil {
		t.Fatalf("failed to add habit: %v", err)
	}
	if got := habitNames(t, dbPath); len(got) != 2 {
		t.Fatalf("expected 2 habits before restore, got %v", got)
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backupPath), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Data restored successfully") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if !strings.Contains(out.String(), "Previous data saved as") {
		t.Errorf("expected a safety backup: %q", out.String())
	}

	if got := habitNames(t, dbPath); strings.Join(got, ",") != "Read" {
		t.Errorf("habits after restore = %v, want [Read]", got)
	}
}

func TestBackupRestore_Cancelled(t *testing.T) {
	ctx, out, dbPath := setupTestDB(t)
	backupPath, err := backup.NewManager(dbPath).CreateBackup()
	if err != nil {
		t.Fatalf("failed to create backup: %v", err)
	}
	ctx.In = strings.NewReader("n\n")

	if err := (&BackupRestoreCmd{BackupFile: backupPath}).Run(ctx); err != nil {
		t.Fatalf("backup restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestBackupRestore_NotFound(t *testing.T) {
	ctx, _, _ := setupTestDB(t)
	if err := (&BackupRestoreCmd{BackupFile: "streaklit-19990101-000000.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
}

func TestBackupCmds_RemoteStore(t *testing.T) {
	var out bytes.Buffer
	ctx := newContext(postgres.New("postgres://streaklit@localhost/streaklit"), &out)

	cmds := []interface{ Run(*cli.Context) error }{
		&BackupCreateCmd{},
		&BackupListCmd{},
		&BackupRestoreCmd{BackupFile: "x.db", Yes: true},
	}
	for _, cmd := range cmds {
		if err := cmd.Run(ctx); err != errRemoteStore {
			t.Errorf("%T: got %v, want errRemoteStore", cmd, err)
		}
	}
}
