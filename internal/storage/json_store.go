package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/NewEra-cyber/studentplanner/internal/models"
	"github.com/NewEra-cyber/studentplanner/internal/utils"
)

type Store struct {
	Version     int                          `json:"version"`
	Profiles    map[string]models.Profile    `json:"profiles"`
	Activities  map[string]models.Activity   `json:"activities"`
	Commitments map[string]models.Commitment `json:"commitments"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = &Store{
		Version:     1,
		Profiles:    make(map[string]models.Profile),
		Activities:  make(map[string]models.Activity),
		Commitments: make(map[string]models.Commitment),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'planner init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	// Ensure maps are initialized
	if s.store.Profiles == nil {
		s.store.Profiles = make(map[string]models.Profile)
	}
	if s.store.Activities == nil {
		s.store.Activities = make(map[string]models.Activity)
	}
	if s.store.Commitments == nil {
		s.store.Commitments = make(map[string]models.Commitment)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetProfile(userID string) (models.Profile, error) {
	if s.store == nil {
		return models.Profile{}, fmt.Errorf("storage not loaded")
	}

	profile, ok := s.store.Profiles[userID]
	if !ok {
		return models.Profile{}, ErrProfileNotFound
	}
	return profile, nil
}

func (s *JSONStore) SaveProfile(profile models.Profile) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Profiles[profile.UserID] = profile
	return s.save()
}

func (s *JSONStore) AddActivity(activity models.Activity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Activities[activity.ID] = activity
	return s.save()
}

func (s *JSONStore) GetActivity(id string) (models.Activity, error) {
	if s.store == nil {
		return models.Activity{}, fmt.Errorf("storage not loaded")
	}

	activity, ok := s.store.Activities[id]
	if !ok || activity.DeletedAt != nil {
		return models.Activity{}, fmt.Errorf("activity not found: %s", id)
	}

	return activity, nil
}

func (s *JSONStore) GetActivitiesForDay(userID, day string) ([]models.Activity, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var activities []models.Activity
	for _, activity := range s.store.Activities {
		if activity.DeletedAt != nil || !activity.Active {
			continue
		}
		if activity.UserID != userID || !utils.DayMatches(activity.Day, day) {
			continue
		}
		activities = append(activities, activity)
	}

	sortActivities(activities)
	return activities, nil
}

func (s *JSONStore) GetAllActivities(userID string) ([]models.Activity, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var activities []models.Activity
	for _, activity := range s.store.Activities {
		if activity.DeletedAt == nil && activity.UserID == userID {
			activities = append(activities, activity)
		}
	}

	sort.Slice(activities, func(i, j int) bool {
		if activities[i].Day != activities[j].Day {
			return activities[i].Day < activities[j].Day
		}
		return activities[i].StartTime < activities[j].StartTime
	})
	return activities, nil
}

func (s *JSONStore) UpdateActivity(activity models.Activity) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Activities[activity.ID]; !ok {
		return fmt.Errorf("activity not found: %s", activity.ID)
	}

	s.store.Activities[activity.ID] = activity
	return s.save()
}

func (s *JSONStore) DeleteActivity(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	activity, ok := s.store.Activities[id]
	if !ok {
		return fmt.Errorf("activity not found: %s", id)
	}

	// Soft delete: set deleted_at timestamp
	now := time.Now().UTC().Format(time.RFC3339)
	activity.DeletedAt = &now
	s.store.Activities[id] = activity
	return s.save()
}

func (s *JSONStore) RestoreActivity(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	activity, ok := s.store.Activities[id]
	if !ok {
		return fmt.Errorf("activity not found: %s", id)
	}

	if activity.DeletedAt == nil {
		return fmt.Errorf("cannot restore an activity that is not deleted: %s", id)
	}

	activity.DeletedAt = nil
	s.store.Activities[id] = activity
	return s.save()
}

func (s *JSONStore) AddCommitment(commitment models.Commitment) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Commitments[commitment.ID] = commitment
	return s.save()
}

func (s *JSONStore) GetCommitment(id string) (models.Commitment, error) {
	if s.store == nil {
		return models.Commitment{}, fmt.Errorf("storage not loaded")
	}

	commitment, ok := s.store.Commitments[id]
	if !ok {
		return models.Commitment{}, fmt.Errorf("commitment not found: %s", id)
	}
	return commitment, nil
}

func (s *JSONStore) GetCommitmentsForDay(userID, day string) ([]models.Commitment, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var commitments []models.Commitment
	for _, commitment := range s.store.Commitments {
		if commitment.Active && commitment.UserID == userID && commitment.Day == day {
			commitments = append(commitments, commitment)
		}
	}

	sortCommitments(commitments)
	return commitments, nil
}

func (s *JSONStore) GetAllCommitments(userID string) ([]models.Commitment, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var commitments []models.Commitment
	for _, commitment := range s.store.Commitments {
		if commitment.UserID == userID {
			commitments = append(commitments, commitment)
		}
	}

	sort.Slice(commitments, func(i, j int) bool {
		if commitments[i].Day != commitments[j].Day {
			return commitments[i].Day < commitments[j].Day
		}
		return commitments[i].StartTime < commitments[j].StartTime
	})
	return commitments, nil
}

func (s *JSONStore) UpdateCommitment(commitment models.Commitment) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Commitments[commitment.ID]; !ok {
		return fmt.Errorf("commitment not found: %s", commitment.ID)
	}

	s.store.Commitments[commitment.ID] = commitment
	return s.save()
}

func (s *JSONStore) DeleteCommitment(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.store.Commitments[id]; !ok {
		return fmt.Errorf("commitment not found: %s", id)
	}

	delete(s.store.Commitments, id)
	return s.save()
}

// GetConfigPath returns the path to the underlying storage file.
//
// Concurrency note:
//   - JSONStore is not safe for concurrent use by multiple goroutines without
//     external synchronization.
//   - Running multiple planner processes that share the same storage path at
//     the same time is not supported and may lead to data loss or corruption.
func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// sortActivities orders a day's activities by start time, breaking ties by
// title so listing order is stable across map iteration.
func sortActivities(activities []models.Activity) {
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].StartTime != activities[j].StartTime {
			return activities[i].StartTime < activities[j].StartTime
		}
		return activities[i].Title < activities[j].Title
	})
}

func sortCommitments(commitments []models.Commitment) {
	sort.Slice(commitments, func(i, j int) bool {
		if commitments[i].StartTime != commitments[j].StartTime {
			return commitments[i].StartTime < commitments[j].StartTime
		}
		return commitments[i].UnitCode < commitments[j].UnitCode
	})
}
