package storage

import (
	"errors"

	"github.com/julianstephens/smokefree/internal/models"
)

var (
	// ErrNotFound is returned by GetProfile when no quit attempt is stored,
	// including when the stored profile could not be read.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load when the store has never been created
	ErrNotInitialized = errors.New("storage not initialized")
	// ErrNotLoaded is returned when an operation runs before Init or Load
	ErrNotLoaded = errors.New("storage not loaded")
)

// Provider persists the three tracker records: the profile, the craving
// ledger and the unlocked achievements. Implementations assume a single owner
// process and are not safe for concurrent use.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profile
	GetProfile() (models.Profile, error)
	SaveProfile(models.Profile) error

	// Cravings. AppendCraving stores the event and the updated profile
	// counters in one write so the mirrors never drift from the ledger.
	AppendCraving(models.CravingEvent, models.Profile) error
	GetCravings() ([]models.CravingEvent, error)

	// Achievements. Records whose id is already stored are ignored.
	GetAchievements() ([]models.AchievementRecord, error)
	AddAchievements(...models.AchievementRecord) error

	// Reset removes all three records in one atomic operation
	Reset() error

	// Utils
	GetConfigPath() string
}
