// Package cli holds the state shared by every streaklit command.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/streaklit/internal/backup"
	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/storage/postgres"
	"github.com/julianstephens/streaklit/internal/tracker"
	"github.com/julianstephens/streaklit/internal/utils"
)

type Context struct {
	Store storage.Provider
	Clock tracker.Clock
	Out   io.Writer
	In    io.Reader

	tracker *tracker.Tracker
}

func NewContext(store storage.Provider) *Context {
	return &Context{
		Store: store,
		Clock: tracker.SystemClock,
		Out:   os.Stdout,
		In:    os.Stdin,
	}
}

// Tracker loads the store and state on first use
func (c *Context) Tracker() (*tracker.Tracker, error) {
	if c.tracker != nil {
		return c.tracker, nil
	}
	if err := c.Store.Load(); err != nil {
		return nil, err
	}
	tr, err := tracker.Load(c.Store, tracker.WithClock(c.Clock))
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}
	c.tracker = tr
	return tr, nil
}

func (c *Context) Today() string {
	return utils.FormatDate(c.Clock.Now())
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// Confirm asks a yes/no question on In; anything but y/yes is a no
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	response, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// HasLocalFile reports whether the store is backed by a file that can be
// backed up
func (c *Context) HasLocalFile() bool {
	return c.Store.GetConfigPath() != postgres.ConfigPath
}

// PerformAutomaticBackup creates a backup and only logs failures
func (c *Context) PerformAutomaticBackup() {
	if !c.HasLocalFile() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	path, err := mgr.CreateBackup()
	if err != nil {
		logger.Warn("Automatic backup failed", "error", err)
		return
	}
	logger.Debug("Automatic backup created", "path", path)
}

// ResolveDate validates a YYYY-MM-DD flag, defaulting to today
func (c *Context) ResolveDate(date string) (string, error) {
	if date == "" {
		return c.Today(), nil
	}
	if !utils.ValidateDate(date) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", date)
	}
	return date, nil
}

// FindHabit looks a habit up by id, then by case-insensitive name, then by
// unique id prefix
func FindHabit(tr *tracker.Tracker, ref string) (models.Habit, error) {
	ref = strings.TrimSpace(ref)
	if h, ok := tr.Habit(ref); ok {
		return h, nil
	}

	habits := tr.Habits()
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}

	var match *models.Habit
	for i := range habits {
		if ref != "" && strings.HasPrefix(habits[i].ID, ref) {
			if match != nil {
				return models.Habit{}, fmt.Errorf("habit id prefix %q is ambiguous", ref)
			}
			match = &habits[i]
		}
	}
	if match != nil {
		return *match, nil
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", ref)
}

// ParseDays splits a comma-separated weekday list into schedule day
// abbreviations
func ParseDays(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var days []string
	for _, part := range strings.Split(s, ",") {
		d, ok := models.NormalizeWeekday(strings.TrimSpace(part))
		if !ok {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		days = append(days, d)
	}
	return models.NormalizeSchedule(days), nil
}

// ConfigDir is where logs live for a given --config value
func ConfigDir(config string) string {
	if config != "" && !postgres.IsConnString(config) {
		if path, err := utils.ExpandHome(config); err == nil {
			return filepath.Dir(path)
		}
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "streaklit")
	}
	return filepath.Join(os.TempDir(), "streaklit")
}

// ShortID trims a uuid for display
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatTime renders an optional timestamp for tables
func FormatTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
