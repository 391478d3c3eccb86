// Package streak computes consecutive-day runs of met targets from a habit's
// completions map. Every function walks by calendar day: a day with no entry
// or with fewer minutes than the target ends the run.
package streak

import (
	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/utils"
)

// maxWalk bounds the backward walk; no completions map spans more days.
const maxWalk = 366 * 100

// Count walks backward from the day `from` and counts consecutive met days.
func Count(completions map[string]float64, target int, from string) int {
	if len(completions) == 0 {
		return 0
	}

	count := 0
	day := from
	for count < maxWalk {
		if _, ok := completions[day]; !ok || !models.MeetsTarget(completions, target, day) {
			break
		}
		count++
		prev, err := utils.AddDays(day, -1)
		if err != nil {
			break
		}
		day = prev
	}
	return count
}

// Current returns the streak as of today. An unmet today does not break the
// run because the day is still open, so the walk starts from yesterday.
func Current(completions map[string]float64, target int, today string) int {
	if models.MeetsTarget(completions, target, today) {
		return Count(completions, target, today)
	}
	yesterday, err := utils.AddDays(today, -1)
	if err != nil {
		return 0
	}
	return Count(completions, target, yesterday)
}

// AfterLog returns the streak to store after minutes were logged on date.
// A met date anchors the run at that date; an unmet one falls back to the
// current streak as of today. Clearing today therefore restores the run
// ending yesterday instead of collapsing the streak to 0, so completing and
// then clearing today leaves the streak where it started.
func AfterLog(completions map[string]float64, target int, date, today string) int {
	if models.MeetsTarget(completions, target, date) {
		return Count(completions, target, date)
	}
	return Current(completions, target, today)
}

// ForDate returns the streak ending on date. Future dates are clamped to
// start from yesterday.
func ForDate(completions map[string]float64, target int, date, today string) int {
	from := date
	if date > today {
		yesterday, err := utils.AddDays(today, -1)
		if err != nil {
			return 0
		}
		from = yesterday
	}
	return Count(completions, target, from)
}

// Longest returns the longest run of met days anywhere in completions.
func Longest(completions map[string]float64, target int) int {
	best := 0
	for day := range completions {
		if !models.MeetsTarget(completions, target, day) {
			continue
		}
		// Only start counting at the first day of a run.
		prev, err := utils.AddDays(day, -1)
		if err != nil || models.MeetsTarget(completions, target, prev) {
			continue
		}
		length := 0
		cur := day
		for models.MeetsTarget(completions, target, cur) {
			length++
			next, err := utils.AddDays(cur, 1)
			if err != nil {
				break
			}
			cur = next
		}
		if length > best {
			best = length
		}
	}
	return best
}
