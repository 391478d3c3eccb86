package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/streaklit/internal/models"
)

// AddSchedule plans a time block for an existing habit. It reports false
// when the habit is unknown.
func (t *Tracker) AddSchedule(s models.Schedule) (models.Schedule, bool) {
	var (
		created models.Schedule
		ok      bool
	)
	t.update(func(time.Time) []Event {
		if t.habitIndexLocked(s.HabitID) < 0 {
			return nil
		}
		s.ID = uuid.NewString()
		t.state.Schedules = append(t.state.Schedules, s)
		created, ok = s, true
		return []Event{{Kind: SchedulesChanged, HabitID: s.HabitID, Date: s.Date}}
	})
	return created, ok
}

// UpdateSchedule merges the non-nil fields of patch. Unknown ids are ignored.
func (t *Tracker) UpdateSchedule(id string, patch models.SchedulePatch) {
	t.update(func(time.Time) []Event {
		for i := range t.state.Schedules {
			s := &t.state.Schedules[i]
			if s.ID != id {
				continue
			}
			if patch.Date != nil {
				s.Date = *patch.Date
			}
			if patch.StartTime != nil {
				s.StartTime = *patch.StartTime
			}
			if patch.EndTime != nil {
				s.EndTime = *patch.EndTime
			}
			if patch.Duration != nil {
				s.Duration = max(*patch.Duration, 0)
			}
			if patch.IsCompleted != nil {
				s.IsCompleted = *patch.IsCompleted
			}
			if patch.Notes != nil {
				s.Notes = *patch.Notes
			}
			return []Event{{Kind: SchedulesChanged, HabitID: s.HabitID, Date: s.Date}}
		}
		return nil
	})
}

// DeleteSchedule removes a schedule. Unknown ids are ignored.
func (t *Tracker) DeleteSchedule(id string) {
	t.update(func(time.Time) []Event {
		for i, s := range t.state.Schedules {
			if s.ID == id {
				t.state.Schedules = append(t.state.Schedules[:i], t.state.Schedules[i+1:]...)
				return []Event{{Kind: SchedulesChanged, HabitID: s.HabitID, Date: s.Date}}
			}
		}
		return nil
	})
}

// Schedules returns every schedule
func (t *Tracker) Schedules() []models.Schedule {
	var out []models.Schedule
	t.read(func() { out = append([]models.Schedule{}, t.state.Schedules...) })
	return out
}
