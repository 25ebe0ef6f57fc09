// Package routine seeds a user's default daily routine. The template is
// expanded into one activity per weekday so each day can drift independently
// when the scheduler adjusts it.
package routine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/NewEra-cyber/studentplanner/internal/constants"
	"github.com/NewEra-cyber/studentplanner/internal/models"
	"github.com/NewEra-cyber/studentplanner/internal/storage"
	"github.com/NewEra-cyber/studentplanner/internal/utils"
)

// Template describes one routine slot before it is bound to a user and day.
type Template struct {
	Title       string
	Category    models.Category
	Start       string
	DurationMin int
	Priority    int
	Flexible    bool
	Description string
}

const (
	defaultShiftMargin = 30
	defaultMinDuration = 15
)

// DefaultRoutine is the built-in structured day: fixed anchors in the
// morning and evening with flexible study, meal, and personal slots in
// between.
func DefaultRoutine() []Template {
	return []Template{
		{
			Title:       "Wake Up & Grooming",
			Category:    models.CategoryMorningRoutine,
			Start:       "06:00",
			DurationMin: 30,
			Priority:    constants.PriorityFixed,
			Flexible:    false,
			Description: "Morning wake up, grooming, and preparation",
		},
		{
			Title:       "Morning Workout",
			Category:    models.CategoryFitness,
			Start:       "06:30",
			DurationMin: 45,
			Priority:    constants.PriorityHigh,
			Flexible:    true,
			Description: "Physical exercise and fitness routine",
		},
		{
			Title:       "Breakfast",
			Category:    models.CategoryMeal,
			Start:       "07:15",
			DurationMin: 30,
			Priority:    constants.PriorityHigh,
			Flexible:    true,
			Description: "Morning meal and nutrition",
		},
		{
			Title:       "Morning Study Block",
			Category:    models.CategoryAcademic,
			Start:       "08:00",
			DurationMin: 120,
			Priority:    constants.PriorityMedium,
			Flexible:    true,
			Description: "Focused study session",
		},
		{
			Title:       "Lunch Break",
			Category:    models.CategoryMeal,
			Start:       "12:00",
			DurationMin: 45,
			Priority:    constants.PriorityHigh,
			Flexible:    true,
			Description: "Lunch and rest period",
		},
		{
			Title:       "Afternoon Study",
			Category:    models.CategoryAcademic,
			Start:       "13:00",
			DurationMin: 180,
			Priority:    constants.PriorityMedium,
			Flexible:    true,
			Description: "Continued academic work",
		},
		{
			Title:       "Social Time",
			Category:    models.CategorySocial,
			Start:       "17:15",
			DurationMin: 75,
			Priority:    constants.PriorityHigh,
			Flexible:    true,
			Description: "Quality time with friends and family",
		},
		{
			Title:       "Self-Improvement",
			Category:    models.CategoryPersonal,
			Start:       "18:45",
			DurationMin: 75,
			Priority:    constants.PriorityMedium,
			Flexible:    true,
			Description: "Reading, skills development, personal growth",
		},
		{
			Title:       "Dinner",
			Category:    models.CategoryMeal,
			Start:       "20:15",
			DurationMin: 45,
			Priority:    constants.PriorityHigh,
			Flexible:    true,
			Description: "Evening meal",
		},
		{
			Title:       "Reflection & Journaling",
			Category:    models.CategoryReflection,
			Start:       "21:15",
			DurationMin: 60,
			Priority:    constants.PriorityMedium,
			Flexible:    true,
			Description: "Daily reflection, planning, journaling",
		},
		{
			Title:       "Wind Down & Sleep Prep",
			Category:    models.CategoryRest,
			Start:       "22:15",
			DurationMin: 75,
			Priority:    constants.PriorityHigh,
			Flexible:    false,
			Description: "Relaxation and preparation for sleep",
		},
	}
}

// Build expands a template into an activity bound to the given user and day.
// The original start is captured here and never overwritten afterwards.
func Build(tpl Template, userID, day string) (models.Activity, error) {
	end, err := utils.AddClock(tpl.Start, tpl.DurationMin)
	if err != nil {
		return models.Activity{}, fmt.Errorf("invalid template %q: %w", tpl.Title, err)
	}

	return models.Activity{
		ID:             uuid.NewString(),
		UserID:         userID,
		Title:          tpl.Title,
		Category:       tpl.Category,
		Day:            day,
		StartTime:      tpl.Start,
		EndTime:        end,
		DurationMin:    tpl.DurationMin,
		PriorityLevel:  tpl.Priority,
		Flexible:       tpl.Flexible,
		ShiftMarginMin: defaultShiftMargin,
		MinDurationMin: defaultMinDuration,
		OriginalStart:  tpl.Start,
		Active:         true,
	}, nil
}

// Seed creates the default routine for every day of the week and returns the
// number of activities created.
func Seed(store storage.Provider, userID string) (int, error) {
	created := 0
	for _, tpl := range DefaultRoutine() {
		for _, day := range constants.DaysOfWeek {
			activity, err := Build(tpl, userID, day)
			if err != nil {
				return created, err
			}
			if err := store.AddActivity(activity); err != nil {
				return created, fmt.Errorf("failed to seed %q on %s: %w", tpl.Title, day, err)
			}
			created++
		}
	}
	return created, nil
}
