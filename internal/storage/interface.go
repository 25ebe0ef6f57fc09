package storage

import (
	"errors"

	"github.com/NewEra-cyber/studentplanner/internal/models"
)

// ErrProfileNotFound is returned when a user has no stored profile. Callers
// are expected to fall back to the default waking window.
var ErrProfileNotFound = errors.New("profile not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profiles
	GetProfile(userID string) (models.Profile, error)
	SaveProfile(models.Profile) error

	// Activities
	AddActivity(models.Activity) error
	GetActivity(id string) (models.Activity, error)
	GetActivitiesForDay(userID, day string) ([]models.Activity, error)
	GetAllActivities(userID string) ([]models.Activity, error)
	UpdateActivity(models.Activity) error
	DeleteActivity(id string) error
	RestoreActivity(id string) error

	// Commitments
	AddCommitment(models.Commitment) error
	GetCommitment(id string) (models.Commitment, error)
	GetCommitmentsForDay(userID, day string) ([]models.Commitment, error)
	GetAllCommitments(userID string) ([]models.Commitment, error)
	UpdateCommitment(models.Commitment) error
	DeleteCommitment(id string) error

	// Utils
	GetConfigPath() string
}
