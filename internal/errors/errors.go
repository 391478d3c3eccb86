// Package errors renders command failures for the terminal.
package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/keyring"
	"github.com/julianstephens/streaklit/internal/logger"
	"github.com/julianstephens/streaklit/internal/migration"
	"github.com/julianstephens/streaklit/internal/storage"
	"github.com/julianstephens/streaklit/internal/storage/postgres"
	"github.com/julianstephens/streaklit/internal/timer"
)

var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotInitialized, "run '" + constants.AppName + " init' to create your habit data"},
	{postgres.ErrEmbeddedCredentials, "store the connection string with '" + constants.AppName + " keyring set' or export " + constants.EnvDBConnection},
	{keyring.ErrKeyringUnavailable, "export " + constants.EnvDBConnection + " instead of using the OS keyring"},
	{migration.ErrTooNew, "this data was written by a newer " + constants.AppName + "; upgrade before opening it"},
	{timer.ErrNoTimer, "start one with '" + constants.AppName + " timer start <habit>'"},
}

// Hint suggests a next step for errors the user can fix, or returns ""
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format renders err with an "Error: " prefix and, when one applies, a hint
// on the following line
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\nHint: " + hint
	}
	return msg
}

func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs err, prints it to stderr and exits 1. A nil err is ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	logger.Close()
	os.Exit(1)
}

func Fatalf(format string, args ...interface{}) {
	logger.Error("Command failed", "error", fmt.Sprintf(format, args...))
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	logger.Close()
	os.Exit(1)
}
