package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/NewEra-cyber/studentplanner/internal/migration"
	"github.com/NewEra-cyber/studentplanner/internal/models"
	"github.com/NewEra-cyber/studentplanner/migrations"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migrations.FS)
	if _, err := runner.ApplyMigrations(nil); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'planner init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migrations.FS)
	return runner.ValidateVersion()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetProfile(userID string) (models.Profile, error) {
	row := s.db.QueryRow(
		"SELECT user_id, wake_up_time, sleep_time, timezone FROM profiles WHERE user_id = ?",
		userID,
	)

	var p models.Profile
	if err := row.Scan(&p.UserID, &p.WakeUpTime, &p.SleepTime, &p.Timezone); err != nil {
		if err == sql.ErrNoRows {
			return models.Profile{}, ErrProfileNotFound
		}
		return models.Profile{}, err
	}
	return p, nil
}

func (s *SQLiteStore) SaveProfile(profile models.Profile) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO profiles (user_id, wake_up_time, sleep_time, timezone)
		VALUES (?, ?, ?, ?)`,
		profile.UserID, profile.WakeUpTime, profile.SleepTime, profile.Timezone,
	)
	return err
}

const activityColumns = `
	id, user_id, title, category, day, start_time, end_time, duration_min,
	priority_level, flexible, shift_margin_min, min_duration_min,
	original_start, last_adjusted, adjustment_count, description, active, deleted_at`

func (s *SQLiteStore) AddActivity(activity models.Activity) error {
	return s.UpdateActivity(activity)
}

func scanActivity(row interface{ Scan(...any) error }) (models.Activity, error) {
	var a models.Activity
	var lastAdjusted, deletedAt sql.NullString

	err := row.Scan(
		&a.ID, &a.UserID, &a.Title, &a.Category, &a.Day, &a.StartTime, &a.EndTime, &a.DurationMin,
		&a.PriorityLevel, &a.Flexible, &a.ShiftMarginMin, &a.MinDurationMin,
		&a.OriginalStart, &lastAdjusted, &a.AdjustmentCount, &a.Description, &a.Active, &deletedAt,
	)
	if err != nil {
		return models.Activity{}, err
	}

	if lastAdjusted.Valid {
		a.LastAdjusted = &lastAdjusted.String
	}
	if deletedAt.Valid {
		a.DeletedAt = &deletedAt.String
	}
	return a, nil
}

func (s *SQLiteStore) GetActivity(id string) (models.Activity, error) {
	row := s.db.QueryRow(
		"SELECT "+activityColumns+" FROM activities WHERE id = ? AND deleted_at IS NULL", id)
	activity, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return models.Activity{}, fmt.Errorf("activity not found: %s", id)
	}
	return activity, err
}

func (s *SQLiteStore) GetActivitiesForDay(userID, day string) ([]models.Activity, error) {
	rows, err := s.db.Query(`
		SELECT `+activityColumns+`
		FROM activities
		WHERE user_id = ? AND (day = ? OR day = 'daily') AND active = 1 AND deleted_at IS NULL
		ORDER BY start_time, title`, userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectActivities(rows)
}

func (s *SQLiteStore) GetAllActivities(userID string) ([]models.Activity, error) {
	rows, err := s.db.Query(`
		SELECT `+activityColumns+`
		FROM activities
		WHERE user_id = ? AND deleted_at IS NULL
		ORDER BY day, start_time`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectActivities(rows)
}

func collectActivities(rows *sql.Rows) ([]models.Activity, error) {
	var activities []models.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

func (s *SQLiteStore) UpdateActivity(activity models.Activity) error {
	var lastAdjusted, deletedAt sql.NullString
	if activity.LastAdjusted != nil {
		lastAdjusted = sql.NullString{String: *activity.LastAdjusted, Valid: true}
	}
	if activity.DeletedAt != nil {
		deletedAt = sql.NullString{String: *activity.DeletedAt, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO activities (
			id, user_id, title, category, day, start_time, end_time, duration_min,
			priority_level, flexible, shift_margin_min, min_duration_min,
			original_start, last_adjusted, adjustment_count, description, active, deleted_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.UserID, activity.Title, activity.Category, activity.Day,
		activity.StartTime, activity.EndTime, activity.DurationMin,
		activity.PriorityLevel, activity.Flexible, activity.ShiftMarginMin, activity.MinDurationMin,
		activity.OriginalStart, lastAdjusted, activity.AdjustmentCount,
		activity.Description, activity.Active, deletedAt,
	)
	return err
}

func (s *SQLiteStore) DeleteActivity(id string) error {
	// Soft delete: set deleted_at timestamp instead of removing the record
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM activities WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("activity with id %s not found", id)
		}
		return fmt.Errorf("failed to check activity existence: %w", err)
	}

	if deletedAt.Valid {
		return fmt.Errorf("activity with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec("UPDATE activities SET deleted_at = ? WHERE id = ?", now, id)
	return err
}

func (s *SQLiteStore) RestoreActivity(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM activities WHERE id = ?", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("activity with id %s not found", id)
		}
		return fmt.Errorf("failed to check activity existence: %w", err)
	}

	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore an activity that is not deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE activities SET deleted_at = NULL WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) AddCommitment(commitment models.Commitment) error {
	return s.UpdateCommitment(commitment)
}

func (s *SQLiteStore) GetCommitment(id string) (models.Commitment, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, day, start_time, end_time, unit_code, unit_name, venue, type, active
		FROM commitments WHERE id = ?`, id)

	var c models.Commitment
	err := row.Scan(&c.ID, &c.UserID, &c.Day, &c.StartTime, &c.EndTime,
		&c.UnitCode, &c.UnitName, &c.Venue, &c.Type, &c.Active)
	if err == sql.ErrNoRows {
		return models.Commitment{}, fmt.Errorf("commitment not found: %s", id)
	}
	return c, err
}

func (s *SQLiteStore) GetCommitmentsForDay(userID, day string) ([]models.Commitment, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, day, start_time, end_time, unit_code, unit_name, venue, type, active
		FROM commitments
		WHERE user_id = ? AND day = ? AND active = 1
		ORDER BY start_time, unit_code`, userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCommitments(rows)
}

func (s *SQLiteStore) GetAllCommitments(userID string) ([]models.Commitment, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, day, start_time, end_time, unit_code, unit_name, venue, type, active
		FROM commitments
		WHERE user_id = ?
		ORDER BY day, start_time`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCommitments(rows)
}

func collectCommitments(rows *sql.Rows) ([]models.Commitment, error) {
	var commitments []models.Commitment
	for rows.Next() {
		var c models.Commitment
		err := rows.Scan(&c.ID, &c.UserID, &c.Day, &c.StartTime, &c.EndTime,
			&c.UnitCode, &c.UnitName, &c.Venue, &c.Type, &c.Active)
		if err != nil {
			return nil, err
		}
		commitments = append(commitments, c)
	}
	return commitments, rows.Err()
}

func (s *SQLiteStore) UpdateCommitment(commitment models.Commitment) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO commitments (
			id, user_id, day, start_time, end_time, unit_code, unit_name, venue, type, active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		commitment.ID, commitment.UserID, commitment.Day, commitment.StartTime, commitment.EndTime,
		commitment.UnitCode, commitment.UnitName, commitment.Venue, commitment.Type, commitment.Active,
	)
	return err
}

func (s *SQLiteStore) DeleteCommitment(id string) error {
	res, err := s.db.Exec("DELETE FROM commitments WHERE id = ?", id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("commitment not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
