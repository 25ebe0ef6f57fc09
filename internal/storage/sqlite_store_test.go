package storage

import (
	"path/filepath"
	"testing"

	"github.com/NewEra-cyber/studentplanner/internal/models"
)

func setupTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := NewSQLiteStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}

	t.Cleanup(func() { store.Close() })
	return store
}

func testStoreActivity(id, day, start string) models.Activity {
	return models.Activity{
		ID:             id,
		UserID:         "default",
		Title:          "Morning Study Block",
		Category:       "study",
		Day:            day,
		StartTime:      start,
		EndTime:        "10:00",
		DurationMin:    120,
		PriorityLevel:  3,
		Flexible:       true,
		ShiftMarginMin: 30,
		MinDurationMin: 15,
		OriginalStart:  start,
		Active:         true,
	}
}

func TestSQLiteActivityRoundTrip(t *testing.T) {
	store := setupTestSQLiteStore(t)

	adjusted := "2025-03-03T08:00:00Z"
	activity := testStoreActivity("act-1", "Monday", "08:00")
	activity.LastAdjusted = &adjusted
	activity.AdjustmentCount = 2
	activity.Description = "deep work"

	if err := store.AddActivity(activity); err != nil {
		t.Fatalf("failed to add activity: %v", err)
	}

	got, err := store.GetActivity("act-1")
	if err != nil {
		t.Fatalf("failed to get activity: %v", err)
	}
	if got.Title != activity.Title {
		t.Errorf("expected title %q, got %q", activity.Title, got.Title)
	}
	if got.LastAdjusted == nil || *got.LastAdjusted != adjusted {
		t.Errorf("last adjusted not preserved: got %v", got.LastAdjusted)
	}
	if got.AdjustmentCount != 2 {
		t.Errorf("expected adjustment count 2, got %d", got.AdjustmentCount)
	}
	if got.OriginalStart != "08:00" {
		t.Errorf("expected original start 08:00, got %s", got.OriginalStart)
	}
}

func TestSQLiteActivitySoftDelete(t *testing.T) {
	store := setupTestSQLiteStore(t)

	activity := testStoreActivity("act-1", "Monday", "08:00")
	if err := store.AddActivity(activity); err != nil {
		t.Fatalf("failed to add activity: %v", err)
	}

	if err := store.DeleteActivity(activity.ID); err != nil {
		t.Fatalf("failed to delete activity: %v", err)
	}

	// Deleted activities are invisible to lookups and listings
	if _, err := store.GetActivity(activity.ID); err == nil {
		t.Error("expected error when getting deleted activity, got nil")
	}
	all, err := store.GetAllActivities("default")
	if err != nil {
		t.Fatalf("failed to get all activities: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("deleted activity should not appear in listings, got %d", len(all))
	}

	// Deleting twice is an error
	if err := store.DeleteActivity(activity.ID); err == nil {
		t.Error("expected error when deleting an already-deleted activity")
	}
}

func TestSQLiteActivityRestore(t *testing.T) {
	store := setupTestSQLiteStore(t)

	activity := testStoreActivity("act-2", "Tuesday", "13:00")
	if err := store.AddActivity(activity); err != nil {
		t.Fatalf("failed to add activity: %v", err)
	}

	if err := store.RestoreActivity(activity.ID); err == nil {
		t.Error("expected error when restoring an activity that is not deleted")
	}

	if err := store.DeleteActivity(activity.ID); err != nil {
		t.Fatalf("failed to delete activity: %v", err)
	}
	if err := store.RestoreActivity(activity.ID); err != nil {
		t.Fatalf("failed to restore activity: %v", err)
	}

	restored, err := store.GetActivity(activity.ID)
	if err != nil {
		t.Fatalf("failed to get restored activity: %v", err)
	}
	if restored.Title != activity.Title {
		t.Errorf("expected title %q, got %q", activity.Title, restored.Title)
	}
	if restored.DeletedAt != nil {
		t.Error("restored activity should have no deleted_at")
	}
}

func TestSQLiteGetActivitiesForDayIncludesDaily(t *testing.T) {
	store := setupTestSQLiteStore(t)

	monday := testStoreActivity("act-mon", "Monday", "08:00")
	daily := testStoreActivity("act-daily", "daily", "06:00")
	tuesday := testStoreActivity("act-tue", "Tuesday", "09:00")
	inactive := testStoreActivity("act-off", "Monday", "11:00")
	inactive.Active = false

	for _, a := range []models.Activity{monday, daily, tuesday, inactive} {
		if err := store.AddActivity(a); err != nil {
			t.Fatalf("failed to add activity %s: %v", a.ID, err)
		}
	}

	got, err := store.GetActivitiesForDay("default", "Monday")
	if err != nil {
		t.Fatalf("failed to get activities for day: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 activities for Monday, got %d", len(got))
	}
	// Ordered by start time: the daily activity comes first
	if got[0].ID != "act-daily" || got[1].ID != "act-mon" {
		t.Errorf("unexpected order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestSQLiteCommitmentLifecycle(t *testing.T) {
	store := setupTestSQLiteStore(t)

	commitment := models.Commitment{
		ID:        "com-1",
		UserID:    "default",
		Day:       "Wednesday",
		StartTime: "10:00",
		EndTime:   "12:00",
		UnitCode:  "CS201",
		UnitName:  "Data Structures",
		Venue:     "Building 7 Room 102",
		Type:      "lecture",
		Active:    true,
	}
	if err := store.AddCommitment(commitment); err != nil {
		t.Fatalf("failed to add commitment: %v", err)
	}

	got, err := store.GetCommitment("com-1")
	if err != nil {
		t.Fatalf("failed to get commitment: %v", err)
	}
	if got.UnitCode != "CS201" || got.Venue != commitment.Venue {
		t.Errorf("commitment fields not preserved: %+v", got)
	}

	got.Venue = "Online"
	if err := store.UpdateCommitment(got); err != nil {
		t.Fatalf("failed to update commitment: %v", err)
	}
	updated, err := store.GetCommitment("com-1")
	if err != nil {
		t.Fatalf("failed to get updated commitment: %v", err)
	}
	if updated.Venue != "Online" {
		t.Errorf("expected venue Online, got %s", updated.Venue)
	}

	if err := store.DeleteCommitment("com-1"); err != nil {
		t.Fatalf("failed to delete commitment: %v", err)
	}
	if _, err := store.GetCommitment("com-1"); err == nil {
		t.Error("expected error when getting deleted commitment")
	}
	if err := store.DeleteCommitment("com-1"); err == nil {
		t.Error("expected error when deleting a missing commitment")
	}
}

func TestSQLiteGetAllCommitmentsOrderedByDay(t *testing.T) {
	store := setupTestSQLiteStore(t)

	commitments := []models.Commitment{
		{ID: "c1", UserID: "default", Day: "Monday", StartTime: "14:00", EndTime: "16:00", UnitCode: "CS201", Type: "lecture", Active: true},
		{ID: "c2", UserID: "default", Day: "Friday", StartTime: "09:00", EndTime: "11:00", UnitCode: "MA101", Type: "tutorial", Active: true},
		{ID: "c3", UserID: "default", Day: "Monday", StartTime: "08:00", EndTime: "10:00", UnitCode: "PH110", Type: "lab", Active: true},
	}
	for _, c := range commitments {
		if err := store.AddCommitment(c); err != nil {
			t.Fatalf("failed to add commitment %s: %v", c.ID, err)
		}
	}

	got, err := store.GetAllCommitments("default")
	if err != nil {
		t.Fatalf("failed to get all commitments: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 commitments, got %d", len(got))
	}
	// Grouped by day, then start time within the day
	want := []string{"c2", "c3", "c1"}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestSQLiteProfile(t *testing.T) {
	store := setupTestSQLiteStore(t)

	if _, err := store.GetProfile("default"); err != ErrProfileNotFound {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}

	profile := models.Profile{
		UserID:     "default",
		WakeUpTime: "05:30",
		SleepTime:  "22:30",
		Timezone:   "Australia/Perth",
	}
	if err := store.SaveProfile(profile); err != nil {
		t.Fatalf("failed to save profile: %v", err)
	}

	got, err := store.GetProfile("default")
	if err != nil {
		t.Fatalf("failed to get profile: %v", err)
	}
	if got.WakeUpTime != "05:30" || got.SleepTime != "22:30" {
		t.Errorf("profile window not preserved: %+v", got)
	}

	got.SleepTime = "23:00"
	if err := store.SaveProfile(got); err != nil {
		t.Fatalf("failed to resave profile: %v", err)
	}
	updated, _ := store.GetProfile("default")
	if updated.SleepTime != "23:00" {
		t.Errorf("expected sleep time 23:00, got %s", updated.SleepTime)
	}
}

func TestSQLiteUsersAreIsolated(t *testing.T) {
	store := setupTestSQLiteStore(t)

	mine := testStoreActivity("act-mine", "Monday", "08:00")
	theirs := testStoreActivity("act-theirs", "Monday", "08:00")
	theirs.UserID = "partner"

	if err := store.AddActivity(mine); err != nil {
		t.Fatalf("failed to add activity: %v", err)
	}
	if err := store.AddActivity(theirs); err != nil {
		t.Fatalf("failed to add activity: %v", err)
	}

	got, err := store.GetActivitiesForDay("default", "Monday")
	if err != nil {
		t.Fatalf("failed to get activities: %v", err)
	}
	if len(got) != 1 || got[0].ID != "act-mine" {
		t.Errorf("expected only act-mine for user default, got %+v", got)
	}
}
