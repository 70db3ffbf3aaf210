// Package tracker is the application service behind every command: it loads
// persisted records, applies one mutation, and derives the dashboard view.
package tracker

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/puffless/internal/logger"
	"github.com/julianstephens/puffless/internal/metrics"
	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/planner"
	"github.com/julianstephens/puffless/internal/storage"
	"github.com/julianstephens/puffless/internal/utils"
	"github.com/julianstephens/puffless/internal/validation"
)

var (
	// ErrNotOnboarded is returned by operations that need a profile and plan.
	ErrNotOnboarded = errors.New("no quit plan found")
	// ErrAlreadyOnboarded is returned by Onboard when a plan exists and force is not set.
	ErrAlreadyOnboarded = errors.New("already onboarded, use --force to start over")
)

type Tracker struct {
	store storage.Provider
	now   func() time.Time
	newID func() string
}

type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDGenerator replaces the uuid generator for record ids.
func WithIDGenerator(newID func() string) Option {
	return func(t *Tracker) { t.newID = newID }
}

func New(store storage.Provider, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Now returns the tracker's clock reading.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// State is the profile and plan pair every derived view needs.
type State struct {
	Profile models.UserProfile
	Plan    models.QuitPlan
}

// Onboard stores the profile, builds and stores the plan, and marks the store
// onboarded. With force, existing data is cleared first.
func (t *Tracker) Onboard(in models.OnboardingInput, force bool) (State, error) {
	now := t.now()

	onboarded, err := t.store.IsOnboarded()
	if err != nil {
		return State{}, err
	}
	if onboarded && !force {
		return State{}, ErrAlreadyOnboarded
	}
	if err := validation.ValidateOnboarding(in, now); err != nil {
		return State{}, err
	}
	if onboarded {
		if err := t.store.ResetAll(); err != nil {
			return State{}, fmt.Errorf("failed to reset existing data: %w", err)
		}
	}

	profile := in.Profile(now)
	plan := planner.BuildPlan(profile.SelectedMethods, profile.StartingPuffsPerDay, profile.StartingNicotineLevel, profile.TargetQuitDate, now)

	// The writes are not atomic. A failure clears whatever was written so
	// State keeps reporting ErrNotOnboarded rather than a profile without a plan.
	if err := t.saveOnboarding(profile, plan); err != nil {
		if rerr := t.store.ResetAll(); rerr != nil {
			logger.Warn("Failed to clear partial onboarding", "error", rerr)
		}
		return State{}, err
	}

	logger.Info("Quit plan created", "weeks", planner.TotalWeeks(plan), "start_puffs", profile.StartingPuffsPerDay, "target", utils.DayKey(profile.TargetQuitDate))
	return State{Profile: profile, Plan: plan}, nil
}

func (t *Tracker) saveOnboarding(profile models.UserProfile, plan models.QuitPlan) error {
	if err := t.store.SaveProfile(profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	if err := t.store.SavePlan(plan); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	if err := t.store.SetOnboarded(true); err != nil {
		return fmt.Errorf("failed to mark onboarded: %w", err)
	}
	return nil
}

// State loads the profile and plan, returning ErrNotOnboarded when either is missing.
func (t *Tracker) State() (State, error) {
	profile, err := t.store.GetProfile()
	if errors.Is(err, storage.ErrNotFound) {
		return State{}, ErrNotOnboarded
	}
	if err != nil {
		return State{}, err
	}
	plan, err := t.store.GetPlan()
	if errors.Is(err, storage.ErrNotFound) {
		return State{}, ErrNotOnboarded
	}
	if err != nil {
		return State{}, err
	}
	return State{Profile: profile, Plan: plan}, nil
}

// LogPuffs adds n puffs to today's log, creating it on first use with the
// plan's goal and nicotine target for today.
func (t *Tracker) LogPuffs(n int, u models.LogUpdate) (models.DailyLog, error) {
	if err := validation.ValidatePuffLog(n, u); err != nil {
		return models.DailyLog{}, err
	}
	state, err := t.State()
	if err != nil {
		return models.DailyLog{}, err
	}

	now := t.now()
	day := utils.DayKey(now)

	log, err := t.store.GetDailyLog(day)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		log = models.NewDailyLog(day, n, planner.TodaysGoal(state.Plan, now), planner.CurrentNicotineTarget(state.Plan, now), u)
	case err != nil:
		return models.DailyLog{}, err
	default:
		log.AddPuffs(n, u)
	}

	if err := t.store.UpsertDailyLog(log); err != nil {
		return models.DailyLog{}, err
	}
	logger.Debug("Puffs logged", "day", day, "added", n, "total", log.PuffCount, "goal", log.DailyGoal)
	return log, nil
}

// TodayLog returns today's log, or ok=false when nothing has been logged today.
func (t *Tracker) TodayLog() (log models.DailyLog, ok bool, err error) {
	log, err = t.store.GetDailyLog(utils.DayKey(t.now()))
	if errors.Is(err, storage.ErrNotFound) {
		return models.DailyLog{}, false, nil
	}
	if err != nil {
		return models.DailyLog{}, false, err
	}
	return log, true, nil
}

// CravingInput is a craving as entered by the user. A zero Timestamp means now.
type CravingInput struct {
	Timestamp       time.Time
	Intensity       int
	Trigger         models.CravingTrigger
	Action          models.CravingAction
	DurationMinutes *int
	Notes           string
}

// LogCraving appends a craving record.
func (t *Tracker) LogCraving(in CravingInput) (models.Craving, error) {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = t.now()
	}
	c := models.Craving{
		ID:              t.newID(),
		Timestamp:       ts,
		Intensity:       in.Intensity,
		Trigger:         in.Trigger,
		Action:          in.Action,
		DurationMinutes: in.DurationMinutes,
		Notes:           in.Notes,
	}
	if err := validation.ValidateCraving(c); err != nil {
		return models.Craving{}, err
	}
	if err := t.store.AddCraving(c); err != nil {
		return models.Craving{}, err
	}
	logger.Debug("Craving logged", "trigger", c.Trigger, "action", c.Action, "intensity", c.Intensity)
	return c, nil
}

// LogNRT appends an NRT dose. A zero Date means now.
func (t *Tracker) LogNRT(typ models.NRTType, dosageMg float64, date time.Time, notes string) (models.NRTEntry, error) {
	if date.IsZero() {
		date = t.now()
	}
	e := models.NRTEntry{
		ID:       t.newID(),
		Date:     date,
		Type:     typ,
		DosageMg: dosageMg,
		Notes:    notes,
	}
	if err := validation.ValidateNRTEntry(e); err != nil {
		return models.NRTEntry{}, err
	}
	if err := t.store.AddNRTEntry(e); err != nil {
		return models.NRTEntry{}, err
	}
	logger.Debug("NRT dose logged", "type", e.Type, "dosage_mg", e.DosageMg)
	return e, nil
}

// CravingsForDay returns the cravings on the local calendar day of day.
func (t *Tracker) CravingsForDay(day time.Time) ([]models.Craving, error) {
	cravings, err := t.store.GetCravings()
	if err != nil {
		return nil, err
	}
	return metrics.CravingsOnDay(cravings, day), nil
}

// Snapshot is the dashboard view of the current day and overall progress.
type Snapshot struct {
	State
	Now           time.Time
	Today         *models.DailyLog
	TodayCravings []models.Craving
	Recent        []models.DailyLog // last 7 days, ascending
	Schedule      []models.WeekSchedule
	Summary       metrics.Summary
}

// Snapshot reads every record and derives the dashboard view.
func (t *Tracker) Snapshot() (Snapshot, error) {
	state, err := t.State()
	if err != nil {
		return Snapshot{}, err
	}
	logs, err := t.store.GetDailyLogs()
	if err != nil {
		return Snapshot{}, err
	}
	cravings, err := t.store.GetCravings()
	if err != nil {
		return Snapshot{}, err
	}
	nrt, err := t.store.GetNRTEntries()
	if err != nil {
		return Snapshot{}, err
	}

	now := t.now()
	snap := Snapshot{
		State:         state,
		Now:           now,
		TodayCravings: metrics.CravingsOnDay(cravings, now),
		Recent:        metrics.LastNDays(logs, 7, now),
		Schedule:      planner.Schedule(state.Plan, now),
		Summary:       metrics.Summarize(state.Profile, state.Plan, logs, cravings, nrt, now),
	}
	today := utils.DayKey(now)
	for i := range logs {
		if logs[i].Date == today {
			snap.Today = &logs[i]
			break
		}
	}
	return snap, nil
}

// UpdateNotificationSettings changes the only profile fields editable after onboarding.
func (t *Tracker) UpdateNotificationSettings(pref models.NotificationPreference, quietStart, quietEnd int) (models.UserProfile, error) {
	if err := validation.ValidateNotificationSettings(pref, quietStart, quietEnd); err != nil {
		return models.UserProfile{}, err
	}
	state, err := t.State()
	if err != nil {
		return models.UserProfile{}, err
	}
	profile := state.Profile
	profile.NotificationPreference = pref
	profile.QuietHoursStart = quietStart
	profile.QuietHoursEnd = quietEnd
	if err := t.store.SaveProfile(profile); err != nil {
		return models.UserProfile{}, err
	}
	logger.Info("Notification settings updated", "preference", pref, "quiet_start", quietStart, "quiet_end", quietEnd)
	return profile, nil
}

// Reset deletes every record.
func (t *Tracker) Reset() error {
	return t.store.ResetAll()
}
