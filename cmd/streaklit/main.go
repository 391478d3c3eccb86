package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/streaklit/internal/cli"
	"github.com/julianstephens/streaklit/internal/cli/backups"
	"github.com/julianstephens/streaklit/internal/cli/habits"
	"github.com/julianstephens/streaklit/internal/cli/schedules"
	"github.com/julianstephens/streaklit/internal/cli/settings"
	"github.com/julianstephens/streaklit/internal/cli/stats"
	"github.com/julianstephens/streaklit/internal/cli/system"
	"github.com/julianstephens/streaklit/internal/cli/timers"
	"github.com/julianstephens/streaklit/internal/cli/transfer"
	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/errors"
	"github.com/julianstephens/streaklit/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Data file path or PostgreSQL connection string." env:"STREAKLIT_CONFIG"`
	Debug    bool   `help:"Log debug output to stderr."`
	LogLevel string `help:"Log file level (debug, info, warn, error)." env:"STREAKLIT_LOG_LEVEL"`

	Init         system.InitCmd        `cmd:"" help:"Initialize streaklit storage."`
	Migrate      system.MigrateCmd     `cmd:"" help:"Apply pending storage migrations."`
	Tui          system.TuiCmd         `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Habit        habits.HabitCmd       `cmd:"" help:"Manage habits."`
	Timer        timers.TimerCmd       `cmd:"" help:"Control the habit timer."`
	Schedule     schedules.ScheduleCmd `cmd:"" help:"Plan time blocks for habits."`
	Stats        stats.StatsCmd        `cmd:"" help:"Show completion statistics."`
	Week         stats.WeekCmd         `cmd:"" help:"Show this week's completion grid."`
	Achievements stats.AchievementsCmd `cmd:"" help:"List achievements."`
	Export       transfer.ExportCmd    `cmd:"" help:"Export all data as JSON."`
	Import       transfer.ImportCmd    `cmd:"" help:"Import habits from a JSON export."`
	Settings     settings.SettingsCmd  `cmd:"" help:"View or change settings."`
	Remind       system.RemindCmd      `cmd:"" help:"Send the daily reminder if it is due."`
	Keyring      system.KeyringCmd     `cmd:"" help:"Manage the stored database connection string."`
	Backup       struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a backup now."`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage backups."`
}

func main() {
	// a missing .env is fine
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, timers and achievements"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		Level:     CLI.LogLevel,
		ConfigDir: cli.ConfigDir(CLI.Config),
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	store, err := cli.NewProvider(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	appCtx := cli.NewContext(store)
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
	logger.Close()
}
