package validation

import (
	"fmt"
	"sort"

	"github.com/NewEra-cyber/studentplanner/internal/constants"
	"github.com/NewEra-cyber/studentplanner/internal/models"
	"github.com/NewEra-cyber/studentplanner/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingFixedBlocks ConflictType = "overlapping_fixed_blocks"
	ConflictExceedsWakingWindow    ConflictType = "exceeds_waking_window"
	ConflictOvercommitted          ConflictType = "overcommitted"
	ConflictOutsideWakingWindow    ConflictType = "outside_waking_window"
	ConflictInvalidTime            ConflictType = "invalid_time"
)

// Conflict represents a detected conflict in a day's schedule
type Conflict struct {
	Type        ConflictType
	Description string
	Day         string
	Items       []string // Commitment/activity titles involved
	TimeRange   string   // Human-readable time range (if applicable)
}

// Result contains all detected conflicts
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// fixedBlock is an immovable interval with its display title, used for
// overlap reporting.
type fixedBlock struct {
	title      string
	start, end string
}

// Validator checks a day's commitments and activities for conflicts
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateDay checks one day's schedule against the user's waking window.
// Overlaps are only reported between immovable items (commitments and
// priority-1 activities); flexible activities are the scheduler's problem,
// not the user's.
func (v *Validator) ValidateDay(day string, commitments []models.Commitment, activities []models.Activity, wakeUp, sleep string) Result {
	result := Result{Conflicts: []Conflict{}}

	wakeMin, err := utils.ParseClock(wakeUp)
	if err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidTime,
			Description: fmt.Sprintf("Invalid wake-up time: %s", wakeUp),
			Day:         day,
		})
	}
	sleepMin, err := utils.ParseClock(sleep)
	if err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidTime,
			Description: fmt.Sprintf("Invalid sleep time: %s", sleep),
			Day:         day,
		})
	}

	window := sleepMin - wakeMin
	if window <= 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidTime,
			Description: fmt.Sprintf("Invalid waking window: wake-up (%s) must be before sleep (%s)", wakeUp, sleep),
			Day:         day,
		})
		return result // Can't continue validation without a window
	}

	var blocks []fixedBlock
	totalScheduledMinutes := 0

	for _, c := range commitments {
		if !c.Active {
			continue
		}
		title := c.UnitCode
		if title == "" {
			title = c.UnitName
		}

		start, end, ok := v.checkTimes(&result, day, title, c.StartTime, c.EndTime)
		if !ok {
			continue
		}

		v.checkWindow(&result, day, title, c.StartTime, c.EndTime, start, end, wakeMin, sleepMin)
		blocks = append(blocks, fixedBlock{title: title, start: c.StartTime, end: c.EndTime})
		totalScheduledMinutes += end - start
	}

	for _, a := range activities {
		if !a.Active || a.DeletedAt != nil {
			continue
		}

		start, end, ok := v.checkTimes(&result, day, a.Title, a.StartTime, a.EndTime)
		if !ok {
			continue
		}

		v.checkWindow(&result, day, a.Title, a.StartTime, a.EndTime, start, end, wakeMin, sleepMin)

		if a.Fixed() {
			blocks = append(blocks, fixedBlock{title: a.Title, start: a.StartTime, end: a.EndTime})
		}
		totalScheduledMinutes += a.DurationMin
	}

	// Sort by start time for stable overlap reporting
	sort.Slice(blocks, func(i, j int) bool {
		return blocks[i].start < blocks[j].start
	})

	// O(n²) pairwise check - acceptable for a single day's fixed blocks
	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			b1 := blocks[i]
			b2 := blocks[j]

			if timesOverlap(b1.start, b1.end, b2.start, b2.end) {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: ConflictOverlappingFixedBlocks,
					Description: fmt.Sprintf("%s: \"%s\" (%s-%s) overlaps \"%s\" (%s-%s)",
						day, b1.title, b1.start, b1.end, b2.title, b2.start, b2.end),
					Day:       day,
					Items:     []string{b1.title, b2.title},
					TimeRange: fmt.Sprintf("%s-%s", b1.start, b1.end),
				})
			}
		}
	}

	// Check if the day exceeds the waking window
	if totalScheduledMinutes > window {
		hoursScheduled := float64(totalScheduledMinutes) / 60.0
		hoursAvailable := float64(window) / 60.0
		result.Conflicts = append(result.Conflicts, Conflict{
			Type: ConflictExceedsWakingWindow,
			Description: fmt.Sprintf("%s: %.1fh scheduled exceeds %.1fh waking window",
				day, hoursScheduled, hoursAvailable),
			Day: day,
		})
	}

	// Check if the day is overcommitted (more than 80% of waking window as a warning)
	overcommitThreshold := int(float64(window) * 0.8)
	if totalScheduledMinutes > overcommitThreshold && totalScheduledMinutes <= window {
		hoursScheduled := float64(totalScheduledMinutes) / 60.0
		hoursAvailable := float64(window) / 60.0
		result.Conflicts = append(result.Conflicts, Conflict{
			Type: ConflictOvercommitted,
			Description: fmt.Sprintf("%s: %.1fh scheduled in %.1fh waking window (>80%% capacity)",
				day, hoursScheduled, hoursAvailable),
			Day: day,
		})
	}

	return result
}

// checkTimes validates both clock strings and the start/end ordering,
// reporting conflicts as it goes. It returns the parsed minutes and whether
// the item is usable for further checks.
func (v *Validator) checkTimes(result *Result, day, title, startStr, endStr string) (int, int, bool) {
	start, err := utils.ParseClock(startStr)
	if err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidTime,
			Description: fmt.Sprintf("%s: \"%s\" has invalid start time: %s", day, title, startStr),
			Day:         day,
			Items:       []string{title},
		})
		return 0, 0, false
	}
	end, err := utils.ParseClock(endStr)
	if err != nil {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidTime,
			Description: fmt.Sprintf("%s: \"%s\" has invalid end time: %s", day, title, endStr),
			Day:         day,
			Items:       []string{title},
		})
		return 0, 0, false
	}
	if end < start {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictInvalidTime,
			Description: fmt.Sprintf("%s: \"%s\" ends (%s) before it starts (%s)", day, title, endStr, startStr),
			Day:         day,
			Items:       []string{title},
		})
		return 0, 0, false
	}
	return start, end, true
}

// checkWindow reports items that fall outside the waking window.
func (v *Validator) checkWindow(result *Result, day, title, startStr, endStr string, start, end, wake, sleep int) {
	if start < wake || end > sleep {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictOutsideWakingWindow,
			Description: fmt.Sprintf("%s: \"%s\" (%s-%s) falls outside the waking window", day, title, startStr, endStr),
			Day:         day,
			Items:       []string{title},
			TimeRange:   fmt.Sprintf("%s-%s", startStr, endStr),
		})
	}
}

// timesOverlap checks if two time ranges overlap
// Assumes all times are in HH:MM format
func timesOverlap(start1, end1, start2, end2 string) bool {
	s1, err := utils.ParseClock(start1)
	if err != nil {
		return false
	}
	e1, err := utils.ParseClock(end1)
	if err != nil {
		return false
	}
	s2, err := utils.ParseClock(start2)
	if err != nil {
		return false
	}
	e2, err := utils.ParseClock(end2)
	if err != nil {
		return false
	}

	// Two ranges overlap if: start1 < end2 AND start2 < end1
	return s1 < e2 && s2 < e1
}

// DefaultWindow returns the validation window for a profile, falling back to
// the application defaults when the profile has no times set.
func DefaultWindow(profile models.Profile) (string, string) {
	wake := profile.WakeUpTime
	if wake == "" {
		wake = constants.DefaultWakeUpTime
	}
	sleep := profile.SleepTime
	if sleep == "" {
		sleep = constants.DefaultSleepTime
	}
	return wake, sleep
}
