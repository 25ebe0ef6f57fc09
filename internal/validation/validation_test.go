package validation

import (
	"testing"

	"github.com/NewEra-cyber/studentplanner/internal/models"
)

func hasConflictType(result Result, want ConflictType) bool {
	for _, conflict := range result.Conflicts {
		if conflict.Type == want {
			return true
		}
	}
	return false
}

func TestValidateDay_NoConflicts(t *testing.T) {
	validator := New()

	commitments := []models.Commitment{
		{UnitCode: "SCS2101", StartTime: "09:00", EndTime: "11:00", Active: true},
	}
	activities := []models.Activity{
		{Title: "Morning Workout", StartTime: "06:30", EndTime: "07:15", DurationMin: 45, PriorityLevel: 2, Flexible: true, Active: true},
	}

	result := validator.ValidateDay("Monday", commitments, activities, "06:00", "23:30")

	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got: %s", result.FormatReport())
	}
	if result.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected report: %q", result.FormatReport())
	}
}

func TestValidateDay_OverlappingCommitments(t *testing.T) {
	validator := New()

	commitments := []models.Commitment{
		{UnitCode: "SCS2101", StartTime: "09:00", EndTime: "11:00", Active: true},
		{UnitCode: "SCS2205", StartTime: "10:00", EndTime: "12:00", Active: true},
	}

	result := validator.ValidateDay("Monday", commitments, nil, "06:00", "23:30")

	if !hasConflictType(result, ConflictOverlappingFixedBlocks) {
		t.Errorf("expected overlapping fixed blocks conflict, got: %s", result.FormatReport())
	}
}

func TestValidateDay_FixedActivityOverlapsCommitment(t *testing.T) {
	validator := New()

	commitments := []models.Commitment{
		{UnitCode: "SCS2101", StartTime: "06:00", EndTime: "07:00", Active: true},
	}
	activities := []models.Activity{
		{Title: "Wake Up & Grooming", StartTime: "06:00", EndTime: "06:30", DurationMin: 30, PriorityLevel: 1, Active: true},
	}

	result := validator.ValidateDay("Monday", commitments, activities, "06:00", "23:30")

	if !hasConflictType(result, ConflictOverlappingFixedBlocks) {
		t.Errorf("expected overlap between lecture and fixed activity, got: %s", result.FormatReport())
	}
}

func TestValidateDay_FlexibleOverlapIgnored(t *testing.T) {
	// Flexible activities overlapping a commitment is exactly what the
	// scheduler resolves, so validation must not flag it.
	validator := New()

	commitments := []models.Commitment{
		{UnitCode: "SCS2101", StartTime: "08:00", EndTime: "10:00", Active: true},
	}
	activities := []models.Activity{
		{Title: "Morning Study Block", StartTime: "08:00", EndTime: "10:00", DurationMin: 120, PriorityLevel: 3, Flexible: true, Active: true},
	}

	result := validator.ValidateDay("Monday", commitments, activities, "06:00", "23:30")

	if hasConflictType(result, ConflictOverlappingFixedBlocks) {
		t.Errorf("flexible activity overlap must not be flagged, got: %s", result.FormatReport())
	}
}

func TestValidateDay_InvalidTimes(t *testing.T) {
	validator := New()

	commitments := []models.Commitment{
		{UnitCode: "SCS2101", StartTime: "25:00", EndTime: "11:00", Active: true},
	}
	activities := []models.Activity{
		{Title: "Backwards", StartTime: "10:00", EndTime: "09:00", DurationMin: 60, PriorityLevel: 2, Flexible: true, Active: true},
	}

	result := validator.ValidateDay("Monday", commitments, activities, "06:00", "23:30")

	invalid := 0
	for _, conflict := range result.Conflicts {
		if conflict.Type == ConflictInvalidTime {
			invalid++
		}
	}
	if invalid != 2 {
		t.Errorf("expected 2 invalid time conflicts, got %d: %s", invalid, result.FormatReport())
	}
}

func TestValidateDay_OutsideWakingWindow(t *testing.T) {
	validator := New()

	activities := []models.Activity{
		{Title: "Late Gaming", StartTime: "23:00", EndTime: "23:59", DurationMin: 59, PriorityLevel: 2, Flexible: true, Active: true},
	}

	result := validator.ValidateDay("Monday", nil, activities, "06:00", "23:30")

	if !hasConflictType(result, ConflictOutsideWakingWindow) {
		t.Errorf("expected outside waking window conflict, got: %s", result.FormatReport())
	}
}

func TestValidateDay_Overcommitted(t *testing.T) {
	validator := New()

	// 15h of commitments inside a 17.5h window is over the 80% threshold
	// but still fits.
	commitments := []models.Commitment{
		{UnitCode: "SCS2101", StartTime: "07:00", EndTime: "22:00", Active: true},
	}

	result := validator.ValidateDay("Monday", commitments, nil, "06:00", "23:30")

	if !hasConflictType(result, ConflictOvercommitted) {
		t.Errorf("expected overcommitted conflict, got: %s", result.FormatReport())
	}
	if hasConflictType(result, ConflictExceedsWakingWindow) {
		t.Errorf("day still fits the window, got: %s", result.FormatReport())
	}
}

func TestValidateDay_ExceedsWakingWindow(t *testing.T) {
	validator := New()

	commitments := []models.Commitment{
		{UnitCode: "SCS2101", StartTime: "06:00", EndTime: "18:00", Active: true},
	}
	activities := []models.Activity{
		{Title: "Morning Study Block", StartTime: "08:00", EndTime: "10:00", DurationMin: 120, PriorityLevel: 3, Flexible: true, Active: true},
		{Title: "Afternoon Study", StartTime: "13:00", EndTime: "16:00", DurationMin: 180, PriorityLevel: 3, Flexible: true, Active: true},
		{Title: "Self-Improvement", StartTime: "18:45", EndTime: "20:00", DurationMin: 75, PriorityLevel: 3, Flexible: true, Active: true},
	}

	result := validator.ValidateDay("Monday", commitments, activities, "06:00", "23:30")

	if !hasConflictType(result, ConflictExceedsWakingWindow) {
		t.Errorf("expected exceeds waking window conflict, got: %s", result.FormatReport())
	}
}

func TestValidateDay_InvalidWindow(t *testing.T) {
	validator := New()

	result := validator.ValidateDay("Monday", nil, nil, "23:00", "06:00")

	if !hasConflictType(result, ConflictInvalidTime) {
		t.Errorf("expected invalid window conflict, got: %s", result.FormatReport())
	}
}

func TestValidateDay_SkipsInactiveAndDeleted(t *testing.T) {
	validator := New()

	deletedAt := "2026-08-30T12:00:00Z"
	commitments := []models.Commitment{
		{UnitCode: "SCS2101", StartTime: "09:00", EndTime: "11:00", Active: false},
	}
	activities := []models.Activity{
		{Title: "Old Habit", StartTime: "09:00", EndTime: "11:00", DurationMin: 120, PriorityLevel: 1, Active: true, DeletedAt: &deletedAt},
	}

	result := validator.ValidateDay("Monday", commitments, activities, "06:00", "23:30")

	if result.HasConflicts() {
		t.Errorf("inactive and deleted items must be skipped, got: %s", result.FormatReport())
	}
}

func TestDefaultWindow(t *testing.T) {
	wake, sleep := DefaultWindow(models.Profile{})
	if wake != "06:00" || sleep != "23:30" {
		t.Errorf("expected default window, got %s-%s", wake, sleep)
	}

	wake, sleep = DefaultWindow(models.Profile{WakeUpTime: "05:30", SleepTime: "22:00"})
	if wake != "05:30" || sleep != "22:00" {
		t.Errorf("expected profile window, got %s-%s", wake, sleep)
	}
}
