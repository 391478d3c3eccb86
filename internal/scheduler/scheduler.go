// Package scheduler places unfinished habits into the free time of a day.
package scheduler

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/julianstephens/streaklit/internal/models"
	"github.com/julianstephens/streaklit/internal/utils"
)

type Scheduler struct {
	// MinBlock is the shortest block worth planning, in minutes
	MinBlock int
}

func New() *Scheduler {
	return &Scheduler{MinBlock: 5}
}

// Plan returns new schedule blocks for date. Habits that are scheduled that
// day, still short of their target and not already planned are placed into
// the gaps between existing blocks inside [dayStart, dayEnd). Habits with
// the longest streak at stake go first. Returned blocks have no id.
func (s *Scheduler) Plan(date string, habits []models.Habit, existing []models.Schedule, dayStart, dayEnd string) ([]models.Schedule, error) {
	wd, err := utils.WeekdayOf(date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format: %w", err)
	}
	startMin, err := parseTime(dayStart)
	if err != nil {
		return nil, fmt.Errorf("invalid day start time: %w", err)
	}
	endMin, err := parseTime(dayEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid day end time: %w", err)
	}
	if endMin <= startMin {
		return nil, fmt.Errorf("day end %s must be after day start %s", dayEnd, dayStart)
	}

	var fixed []timeBlock
	planned := map[string]bool{}
	for _, sc := range existing {
		if sc.Date != date {
			continue
		}
		planned[sc.HabitID] = true
		if b, ok := blockOf(sc); ok {
			fixed = append(fixed, b)
		}
	}
	sort.Slice(fixed, func(i, j int) bool { return fixed[i].start < fixed[j].start })

	type candidate struct {
		habit     models.Habit
		remaining int
	}
	var candidates []candidate
	for _, h := range habits {
		if h.IsArchived || planned[h.ID] || !h.IsScheduledOn(wd) || h.IsComplete(date) {
			continue
		}
		remaining := int(math.Ceil(float64(h.TargetMinutes) - h.Minutes(date)))
		if remaining < s.MinBlock {
			remaining = s.MinBlock
		}
		candidates = append(candidates, candidate{habit: h, remaining: remaining})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].habit.CurrentStreak != candidates[j].habit.CurrentStreak {
			return candidates[i].habit.CurrentStreak > candidates[j].habit.CurrentStreak
		}
		return candidates[i].remaining < candidates[j].remaining
	})

	free := findFreeBlocks(startMin, endMin, fixed)
	var out []models.Schedule
	for _, c := range candidates {
		for i, block := range free {
			if block.end-block.start < c.remaining {
				continue
			}
			slot := timeBlock{start: block.start, end: block.start + c.remaining}
			out = append(out, models.Schedule{
				HabitID:   c.habit.ID,
				Date:      date,
				StartTime: formatTime(slot.start),
				EndTime:   formatTime(slot.end),
				Duration:  c.remaining,
			})

			free = append(free[:i], free[i+1:]...)
			if slot.end < block.end {
				free = append(free, timeBlock{start: slot.end, end: block.end})
			}
			sort.Slice(free, func(a, b int) bool { return free[a].start < free[b].start })
			break
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

type timeBlock struct {
	start int // minutes from midnight
	end   int
}

// blockOf reads the occupied span of a schedule from its end time or
// duration. Blocks with neither occupy nothing.
func blockOf(sc models.Schedule) (timeBlock, bool) {
	start, err := parseTime(sc.StartTime)
	if err != nil {
		return timeBlock{}, false
	}
	if sc.EndTime != "" {
		if end, err := parseTime(sc.EndTime); err == nil && end > start {
			return timeBlock{start: start, end: end}, true
		}
	}
	if sc.Duration > 0 {
		return timeBlock{start: start, end: start + sc.Duration}, true
	}
	return timeBlock{}, false
}

func parseTime(timeStr string) (int, error) {
	t, err := time.Parse("15:04", timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// findFreeBlocks returns the gaps in [dayStart, dayEnd) not covered by the
// sorted fixed blocks. Overlapping fixed blocks are merged.
func findFreeBlocks(dayStart, dayEnd int, fixed []timeBlock) []timeBlock {
	var blocks []timeBlock
	current := dayStart
	for _, b := range fixed {
		if b.end <= current {
			continue
		}
		if b.start >= dayEnd {
			break
		}
		if current < b.start {
			blocks = append(blocks, timeBlock{start: current, end: b.start})
		}
		current = b.end
	}
	if current < dayEnd {
		blocks = append(blocks, timeBlock{start: current, end: dayEnd})
	}
	return blocks
}
