package system

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/storage/sqlite"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time { return c.now }

func at(hour, minute int) *stepClock {
	return &stepClock{now: time.Date(2026, 3, 11, hour, minute, 0, 0, time.Local)}
}

func setupTestInitDB(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	var out bytes.Buffer
	ctx := cli.NewContext(store)
	ctx.Clock = at(12, 0)
	ctx.Out = &out
	ctx.In = strings.NewReader("")
	return ctx, &out, dbPath
}

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	ctx, out, dbPath := setupTestInitDB(t)
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return ctx, out, dbPath
}
