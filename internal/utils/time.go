package utils

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/streaklit/internal/constants"
)

// FormatDate formats t as a YYYY-MM-DD day string in t's own location.
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ParseDate parses a YYYY-MM-DD string as local midnight in loc.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidateDate checks if the string matches the standard date format.
func ValidateDate(dateStr string) bool {
	_, err := time.Parse(constants.DateFormat, dateStr)
	return err == nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays shifts a YYYY-MM-DD string by n calendar days. Calendar
// arithmetic is done in UTC so DST transitions never skip or repeat a day.
func AddDays(dateStr string, n int) (string, error) {
	t, err := ParseDate(dateStr, time.UTC)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// WeekdayOf returns the weekday of a YYYY-MM-DD string.
func WeekdayOf(dateStr string) (time.Weekday, error) {
	t, err := ParseDate(dateStr, time.UTC)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// StartOfWeek returns the Monday on or before t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// WeekDates returns the seven YYYY-MM-DD strings of the Monday-start week
// containing t.
func WeekDates(t time.Time) []string {
	start := StartOfWeek(t)
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = FormatDate(start.AddDate(0, 0, i))
	}
	return dates
}

// ParseTimeOfDay parses an HH:MM string and returns hours and minutes.
func ParseTimeOfDay(timeStr string) (int, int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time %q (expected HH:MM): %w", timeStr, err)
	}
	return t.Hour(), t.Minute(), nil
}

// FormatMinutes renders a minute count as "1h 5m", "45m" or "2h".
func FormatMinutes(total float64) string {
	if math.IsNaN(total) || total < 0 {
		return "0m"
	}
	m := int(total)
	h := m / 60
	m = m % 60
	if h > 0 {
		if m > 0 {
			return fmt.Sprintf("%dh %dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}
