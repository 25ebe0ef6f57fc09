package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/NewEra-cyber/studentplanner/internal/constants"
	"github.com/NewEra-cyber/studentplanner/internal/models"
)

type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	s := &PostgresStore{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password. Credentials belong in the OS keyring, environment, or
// .pgpass, never in the connection string itself.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, set := u.User.Password(); set {
				return true
			}
		}
		return false
	}

	// DSN format: space-separated key=value pairs
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "password") {
			return true
		}
	}
	return false
}

func (s *PostgresStore) ensureSearchPath() {
	// Pin search_path to the application schema in the connection string
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			return
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
		return
	}

	for _, part := range strings.Fields(s.connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "search_path") {
			return
		}
	}
	s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := s.ensureSchema(); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ensureSchema creates the application schema and tables. The embedded
// migration files are SQLite dialect, so the PostgreSQL DDL lives here.
func (s *PostgresStore) ensureSchema() error {
	stmts := []string{
		fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", constants.AppName),
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			wake_up_time TEXT NOT NULL DEFAULT '',
			sleep_time TEXT NOT NULL DEFAULT '',
			timezone TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS activities (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			category TEXT NOT NULL,
			day TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			duration_min INTEGER NOT NULL,
			priority_level INTEGER NOT NULL DEFAULT 3,
			flexible BOOLEAN NOT NULL DEFAULT TRUE,
			shift_margin_min INTEGER NOT NULL DEFAULT 30,
			min_duration_min INTEGER NOT NULL DEFAULT 15,
			original_start TEXT NOT NULL,
			last_adjusted TEXT,
			adjustment_count INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			active BOOLEAN NOT NULL DEFAULT TRUE,
			deleted_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_user_day ON activities(user_id, day)`,
		`CREATE TABLE IF NOT EXISTS commitments (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			day TEXT NOT NULL,
			start_time TEXT NOT NULL,
			end_time TEXT NOT NULL,
			unit_code TEXT NOT NULL,
			unit_name TEXT NOT NULL,
			venue TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT 'lecture',
			active BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_commitments_user_day ON commitments(user_id, day)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) GetProfile(userID string) (models.Profile, error) {
	row := s.db.QueryRow(
		"SELECT user_id, wake_up_time, sleep_time, timezone FROM profiles WHERE user_id = $1",
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

func (s *PostgresStore) SaveProfile(profile models.Profile) error {
	_, err := s.db.Exec(`
		INSERT INTO profiles (user_id, wake_up_time, sleep_time, timezone)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			wake_up_time = EXCLUDED.wake_up_time,
			sleep_time = EXCLUDED.sleep_time,
			timezone = EXCLUDED.timezone`,
		profile.UserID, profile.WakeUpTime, profile.SleepTime, profile.Timezone,
	)
	return err
}

func (s *PostgresStore) AddActivity(activity models.Activity) error {
	return s.UpdateActivity(activity)
}

func (s *PostgresStore) GetActivity(id string) (models.Activity, error) {
	row := s.db.QueryRow(`
SELECT id, user_id, title, category, day, start_time, end_time, duration_min,
       priority_level, flexible, shift_margin_min, min_duration_min,
       original_start, last_adjusted, adjustment_count, description, active, deleted_at
FROM activities WHERE id = $1 AND deleted_at IS NULL`, id)

	activity, err := scanActivity(row)
	if err == sql.ErrNoRows {
		return models.Activity{}, fmt.Errorf("activity not found: %s", id)
	}
	return activity, err
}

func (s *PostgresStore) GetActivitiesForDay(userID, day string) ([]models.Activity, error) {
	rows, err := s.db.Query(`
SELECT id, user_id, title, category, day, start_time, end_time, duration_min,
       priority_level, flexible, shift_margin_min, min_duration_min,
       original_start, last_adjusted, adjustment_count, description, active, deleted_at
FROM activities
WHERE user_id = $1 AND (day = $2 OR day = 'daily') AND active AND deleted_at IS NULL
ORDER BY start_time, title`, userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectActivities(rows)
}

func (s *PostgresStore) GetAllActivities(userID string) ([]models.Activity, error) {
	rows, err := s.db.Query(`
SELECT id, user_id, title, category, day, start_time, end_time, duration_min,
       priority_level, flexible, shift_margin_min, min_duration_min,
       original_start, last_adjusted, adjustment_count, description, active, deleted_at
FROM activities
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY day, start_time`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectActivities(rows)
}

func (s *PostgresStore) UpdateActivity(activity models.Activity) error {
	var lastAdjusted, deletedAt sql.NullString
	if activity.LastAdjusted != nil {
		lastAdjusted = sql.NullString{String: *activity.LastAdjusted, Valid: true}
	}
	if activity.DeletedAt != nil {
		deletedAt = sql.NullString{String: *activity.DeletedAt, Valid: true}
	}

	_, err := s.db.Exec(`
INSERT INTO activities (
	id, user_id, title, category, day, start_time, end_time, duration_min,
	priority_level, flexible, shift_margin_min, min_duration_min,
	original_start, last_adjusted, adjustment_count, description, active, deleted_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
ON CONFLICT (id) DO UPDATE SET
	user_id = EXCLUDED.user_id,
	title = EXCLUDED.title,
	category = EXCLUDED.category,
	day = EXCLUDED.day,
	start_time = EXCLUDED.start_time,
	end_time = EXCLUDED.end_time,
	duration_min = EXCLUDED.duration_min,
	priority_level = EXCLUDED.priority_level,
	flexible = EXCLUDED.flexible,
	shift_margin_min = EXCLUDED.shift_margin_min,
	min_duration_min = EXCLUDED.min_duration_min,
	original_start = EXCLUDED.original_start,
	last_adjusted = EXCLUDED.last_adjusted,
	adjustment_count = EXCLUDED.adjustment_count,
	description = EXCLUDED.description,
	active = EXCLUDED.active,
	deleted_at = EXCLUDED.deleted_at`,
		activity.ID, activity.UserID, activity.Title, activity.Category, activity.Day,
		activity.StartTime, activity.EndTime, activity.DurationMin,
		activity.PriorityLevel, activity.Flexible, activity.ShiftMarginMin, activity.MinDurationMin,
		activity.OriginalStart, lastAdjusted, activity.AdjustmentCount,
		activity.Description, activity.Active, deletedAt,
	)
	return err
}

func (s *PostgresStore) DeleteActivity(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM activities WHERE id = $1", id).Scan(&deletedAt)
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
	_, err = s.db.Exec("UPDATE activities SET deleted_at = $1 WHERE id = $2", now, id)
	return err
}

func (s *PostgresStore) RestoreActivity(id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow("SELECT deleted_at FROM activities WHERE id = $1", id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("activity with id %s not found", id)
		}
		return fmt.Errorf("failed to check activity existence: %w", err)
	}

	if !deletedAt.Valid {
		return fmt.Errorf("cannot restore an activity that is not deleted: %s", id)
	}

	_, err = s.db.Exec("UPDATE activities SET deleted_at = NULL WHERE id = $1", id)
	return err
}

func (s *PostgresStore) AddCommitment(commitment models.Commitment) error {
	return s.UpdateCommitment(commitment)
}

func (s *PostgresStore) GetCommitment(id string) (models.Commitment, error) {
	row := s.db.QueryRow(`
SELECT id, user_id, day, start_time, end_time, unit_code, unit_name, venue, type, active
FROM commitments WHERE id = $1`, id)

	var c models.Commitment
	err := row.Scan(&c.ID, &c.UserID, &c.Day, &c.StartTime, &c.EndTime,
		&c.UnitCode, &c.UnitName, &c.Venue, &c.Type, &c.Active)
	if err == sql.ErrNoRows {
		return models.Commitment{}, fmt.Errorf("commitment not found: %s", id)
	}
	return c, err
}

func (s *PostgresStore) GetCommitmentsForDay(userID, day string) ([]models.Commitment, error) {
	rows, err := s.db.Query(`
SELECT id, user_id, day, start_time, end_time, unit_code, unit_name, venue, type, active
FROM commitments
WHERE user_id = $1 AND day = $2 AND active
ORDER BY start_time, unit_code`, userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCommitments(rows)
}

func (s *PostgresStore) GetAllCommitments(userID string) ([]models.Commitment, error) {
	rows, err := s.db.Query(`
SELECT id, user_id, day, start_time, end_time, unit_code, unit_name, venue, type, active
FROM commitments
WHERE user_id = $1
ORDER BY day, start_time`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectCommitments(rows)
}

func (s *PostgresStore) UpdateCommitment(commitment models.Commitment) error {
	_, err := s.db.Exec(`
INSERT INTO commitments (
	id, user_id, day, start_time, end_time, unit_code, unit_name, venue, type, active
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
	user_id = EXCLUDED.user_id,
	day = EXCLUDED.day,
	start_time = EXCLUDED.start_time,
	end_time = EXCLUDED.end_time,
	unit_code = EXCLUDED.unit_code,
	unit_name = EXCLUDED.unit_name,
	venue = EXCLUDED.venue,
	type = EXCLUDED.type,
	active = EXCLUDED.active`,
		commitment.ID, commitment.UserID, commitment.Day, commitment.StartTime, commitment.EndTime,
		commitment.UnitCode, commitment.UnitName, commitment.Venue, commitment.Type, commitment.Active,
	)
	return err
}

func (s *PostgresStore) DeleteCommitment(id string) error {
	res, err := s.db.Exec("DELETE FROM commitments WHERE id = $1", id)
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

func (s *PostgresStore) GetConfigPath() string {
	return s.connStr
}
