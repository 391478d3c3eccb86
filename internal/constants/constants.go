package constants

import "time"

const (
	AppName            = "streaklit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/streaklit/streaklit.db"
	Version            = "v0.3.0"

	// EnvDBConnection holds a PostgreSQL connection string, credentials allowed
	EnvDBConnection = "STREAKLIT_DB_CONNECTION"

	// StorageKey is the fixed key the whole state document is persisted under
	StorageKey = "habit-tracker-storage"

	// DocumentVersion is the schema version of the persisted state document
	DocumentVersion = 3

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Habit defaults
	DefaultTargetMinutes = 30

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "streaklit-"

	// Notify constants
	NotifierLockfileName   = "streaklit-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.streaklit"
	TrayAppExecutable      = "streaklit-tray"

	// UI defaults
	DefaultReminderTime      = "09:00"
	DefaultFloatingTimerX    = 20
	DefaultFloatingTimerY    = 20
	DefaultFlushInterval     = 15 * time.Second
	TimerTickInterval        = time.Second
	DefaultStreakAlerts      = true
	DefaultNotificationsOn   = false
	DefaultTheme             = "light"
	DefaultViewMode          = "week"
	HabitNameMaxDisplayWidth = 24
)

// HabitColors is the palette new habits are assigned from, round-robin by
// the number of existing habits.
var HabitColors = []string{
	"#10B981", "#3B82F6", "#8B5CF6", "#F59E0B", "#EF4444",
	"#EC4899", "#06B6D4", "#84CC16", "#F97316", "#6366F1",
}

// WeekdayAbbrevs maps time.Weekday to the abbreviations stored in a habit's
// schedule days.
var WeekdayAbbrevs = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
