// Package logger is the process-wide structured logger. Records go to a
// rotating file under the config directory so they never fight the TUI for
// the terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/streaklit/internal/constants"
)

var (
	// Logger is nil until Init; the helpers below are no-ops until then
	Logger *log.Logger

	file *lumberjack.Logger
)

type Config struct {
	// Debug lowers the level to debug and mirrors records to stderr
	Debug bool
	// Level is a charmbracelet/log level name; empty means warn
	Level     string
	ConfigDir string
}

// LogPath is where Init writes for a config directory
func LogPath(configDir string) string {
	return filepath.Join(configDir, "logs", constants.AppName+".log")
}

func Init(cfg Config) error {
	level := log.WarnLevel
	if cfg.Level != "" {
		parsed, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	if cfg.Debug {
		level = log.DebugLevel
	}

	path := LogPath(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	Close()
	file = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var w io.Writer = file
	if cfg.Debug {
		w = io.MultiWriter(os.Stderr, file)
	}

	Logger = log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// Close releases the log file. Logging after Close is dropped.
func Close() error {
	Logger = nil
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
