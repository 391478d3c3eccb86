package models

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/streaklit/internal/constants"
)

type HabitCategory string

const (
	CategoryHealth       HabitCategory = "health"
	CategoryProductivity HabitCategory = "productivity"
	CategoryFitness      HabitCategory = "fitness"
	CategoryLearning     HabitCategory = "learning"
	CategoryMindfulness  HabitCategory = "mindfulness"
	CategorySocial       HabitCategory = "social"
	CategoryCreative     HabitCategory = "creative"
	CategoryWork         HabitCategory = "work"
	CategoryPersonal     HabitCategory = "personal"
	CategoryOther        HabitCategory = "other"
)

// Categories lists every valid habit category in display order.
var Categories = []HabitCategory{
	CategoryHealth, CategoryProductivity, CategoryFitness, CategoryLearning,
	CategoryMindfulness, CategorySocial, CategoryCreative, CategoryWork,
	CategoryPersonal, CategoryOther,
}

func (c HabitCategory) IsValid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

type HabitFrequency string

const (
	FrequencyDaily  HabitFrequency = "daily"
	FrequencyWeekly HabitFrequency = "weekly"
	FrequencyCustom HabitFrequency = "custom"
)

func (f HabitFrequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyCustom:
		return true
	default:
		return false
	}
}

// Habit represents a tracked behavior with a daily minute target
type Habit struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description,omitempty"`
	Category      HabitCategory      `json:"category"`
	Color         string             `json:"color"`
	Icon          string             `json:"icon,omitempty"`
	Frequency     HabitFrequency     `json:"frequency"`
	ScheduleDays  []string           `json:"scheduleDays"`
	TargetMinutes int                `json:"targetMinutes"`
	Completions   map[string]float64 `json:"completions"` // YYYY-MM-DD -> minutes logged
	CurrentStreak int                `json:"currentStreak"`
	LongestStreak int                `json:"longestStreak"`
	TotalMinutes  float64            `json:"totalMinutes"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	IsArchived    bool               `json:"isArchived"`
}

// HabitInput carries the user-supplied fields for a new habit. Zero values
// fall back to defaults.
type HabitInput struct {
	Name          string
	Description   string
	Category      HabitCategory
	Color         string
	Icon          string
	Frequency     HabitFrequency
	ScheduleDays  []string
	TargetMinutes int
}

// HabitPatch is a partial update; nil fields are left untouched.
type HabitPatch struct {
	Name          *string
	Description   *string
	Category      *HabitCategory
	Color         *string
	Icon          *string
	Frequency     *HabitFrequency
	ScheduleDays  []string
	TargetMinutes *int
}

// Minutes returns the minutes logged on day, 0 when nothing was recorded.
func (h Habit) Minutes(day string) float64 {
	return h.Completions[day]
}

// IsComplete reports whether the logged minutes on day meet the target.
func (h Habit) IsComplete(day string) bool {
	return MeetsTarget(h.Completions, h.TargetMinutes, day)
}

// IsScheduledOn reports whether the habit is due on the given weekday.
// Daily habits are due every day regardless of their stored schedule days.
func (h Habit) IsScheduledOn(wd time.Weekday) bool {
	if h.Frequency == FrequencyDaily {
		return true
	}
	abbrev := constants.WeekdayAbbrevs[wd]
	for _, d := range h.ScheduleDays {
		if strings.EqualFold(d, abbrev) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers cannot mutate tracker-owned maps.
func (h Habit) Clone() Habit {
	c := h
	c.Completions = make(map[string]float64, len(h.Completions))
	for k, v := range h.Completions {
		c.Completions[k] = v
	}
	c.ScheduleDays = append([]string{}, h.ScheduleDays...)
	return c
}

// SumMinutes totals a completions map. Days are summed in date order so the
// result does not depend on map iteration order.
func SumMinutes(completions map[string]float64) float64 {
	days := make([]string, 0, len(completions))
	for day := range completions {
		days = append(days, day)
	}
	sort.Strings(days)

	total := 0.0
	for _, day := range days {
		total += completions[day]
	}
	return total
}

// MeetsTarget reports whether completions[day] >= target. A missing day is 0.
func MeetsTarget(completions map[string]float64, target int, day string) bool {
	return completions[day] >= float64(target)
}

// SanitizeMinutes maps NaN, infinities and negative values to 0.
func SanitizeMinutes(m float64) float64 {
	if math.IsNaN(m) || math.IsInf(m, 0) || m < 0 {
		return 0
	}
	return m
}

// NormalizeWeekday maps user input like "monday" or "MON" to "Mon".
// Returns false when the input is not a weekday.
func NormalizeWeekday(s string) (string, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) < 3 {
		return "", false
	}
	for _, abbrev := range constants.WeekdayAbbrevs {
		if strings.HasPrefix(s, strings.ToLower(abbrev)) {
			return abbrev, true
		}
	}
	return "", false
}

// NewHabit builds a habit from user input, filling defaults for anything
// left unset. The caller supplies the id, the palette color to use when the
// input has none, and the creation time.
func NewHabit(in HabitInput, id, color string, now time.Time) Habit {
	h := Habit{
		ID:            id,
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Category:      in.Category,
		Color:         in.Color,
		Icon:          in.Icon,
		Frequency:     in.Frequency,
		ScheduleDays:  NormalizeSchedule(in.ScheduleDays),
		TargetMinutes: in.TargetMinutes,
		Completions:   map[string]float64{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if h.Color == "" {
		h.Color = color
	}
	if !h.Category.IsValid() {
		h.Category = CategoryOther
	}
	if !h.Frequency.IsValid() {
		h.Frequency = FrequencyDaily
	}
	if h.TargetMinutes <= 0 {
		h.TargetMinutes = constants.DefaultTargetMinutes
	}
	return h
}

// NormalizeSchedule canonicalizes weekday names and drops duplicates and
// anything that is not a weekday. The result is never nil.
func NormalizeSchedule(days []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, d := range days {
		abbrev, ok := NormalizeWeekday(d)
		if !ok || seen[abbrev] {
			continue
		}
		seen[abbrev] = true
		out = append(out, abbrev)
	}
	return out
}
