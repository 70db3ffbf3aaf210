package storage

import (
	"errors"
	"fmt"

	"github.com/julianstephens/puffless/internal/constants"
	"github.com/julianstephens/puffless/internal/models"
)

// ErrNotFound is returned when a record has not been stored yet.
var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profile and plan
	GetProfile() (models.UserProfile, error)
	SaveProfile(models.UserProfile) error
	GetPlan() (models.QuitPlan, error)
	SavePlan(models.QuitPlan) error

	// Daily logs, at most one per calendar day
	GetDailyLog(day string) (models.DailyLog, error)
	GetDailyLogs() ([]models.DailyLog, error)
	UpsertDailyLog(models.DailyLog) error

	// Append-only records
	AddCraving(models.Craving) error
	GetCravings() ([]models.Craving, error)
	AddNRTEntry(models.NRTEntry) error
	GetNRTEntries() ([]models.NRTEntry, error)

	// App state
	IsOnboarded() (bool, error)
	SetOnboarded(bool) error
	GetMilestoneNotification(key string) (models.MilestoneNotification, error)
	SaveMilestoneNotification(models.MilestoneNotification) error
	ResetAll() error

	// Utils
	GetConfigPath() string
}

// New returns the provider for the named backend.
func New(kind, path string) (Provider, error) {
	switch kind {
	case "", constants.StoreSQLite:
		return NewSQLiteStore(path), nil
	case constants.StoreJSON:
		return NewJSONStore(path), nil
	default:
		return nil, fmt.Errorf("unknown store type %q (expected sqlite or json)", kind)
	}
}
