package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streaklit/internal/constants"
	"github.com/julianstephens/streaklit/internal/models"
)

// HabitFormModel backs the add-habit form
type HabitFormModel struct {
	Name        string
	Description string
	Target      string
	Category    models.HabitCategory
	Frequency   models.HabitFrequency
	Days        []string
}

// NewHabitFormModel returns form values prefilled with habit defaults
func NewHabitFormModel() *HabitFormModel {
	return &HabitFormModel{
		Target:    strconv.Itoa(constants.DefaultTargetMinutes),
		Category:  models.CategoryOther,
		Frequency: models.FrequencyDaily,
	}
}

// Input converts the submitted form into a habit input
func (fm *HabitFormModel) Input() models.HabitInput {
	target, _ := strconv.Atoi(strings.TrimSpace(fm.Target))
	in := models.HabitInput{
		Name:          fm.Name,
		Description:   strings.TrimSpace(fm.Description),
		Category:      fm.Category,
		Frequency:     fm.Frequency,
		TargetMinutes: target,
	}
	if fm.Frequency != models.FrequencyDaily {
		in.ScheduleDays = fm.Days
	}
	return in
}

func validateTarget(s string) error {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("target must be a whole number of minutes")
	}
	if i <= 0 {
		return fmt.Errorf("target must be a positive number of minutes")
	}
	return nil
}

// NewHabitForm creates the form used by the TUI and `habit add --interactive`
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	categories := make([]huh.Option[models.HabitCategory], len(models.Categories))
	for i, c := range models.Categories {
		categories[i] = huh.NewOption(strings.ToUpper(string(c[:1]))+string(c[1:]), c)
	}
	days := make([]huh.Option[string], 0, 7)
	for i := 1; i <= 7; i++ {
		d := constants.WeekdayAbbrevs[i%7]
		days = append(days, huh.NewOption(d, d))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("habit name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Value(&fm.Description),
			huh.NewInput().
				Title("Daily target (min)").
				Value(&fm.Target).
				Validate(validateTarget),
			huh.NewSelect[models.HabitCategory]().
				Title("Category").
				Options(categories...).
				Value(&fm.Category),
			huh.NewSelect[models.HabitFrequency]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", models.FrequencyDaily),
					huh.NewOption("Weekly", models.FrequencyWeekly),
					huh.NewOption("Custom", models.FrequencyCustom),
				).
				Value(&fm.Frequency),
		),
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Scheduled days").
				Description("Only used for weekly and custom habits").
				Options(days...).
				Value(&fm.Days),
		).WithHideFunc(func() bool {
			return fm.Frequency == models.FrequencyDaily
		}),
	).WithTheme(huh.ThemeDracula())
}
