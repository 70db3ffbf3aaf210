package tracker

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/storage"
	"github.com/julianstephens/puffless/internal/validation"
)

var start = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// clock is a settable time source.
type clock struct{ t time.Time }

func (c *clock) now() time.Time           { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func setupTracker(t *testing.T) (*Tracker, *clock, storage.Provider) {
	t.Helper()
	store := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "puffless.db"))
	require.NoError(t, store.Init())
	t.Cleanup(func() { store.Close() })

	c := &clock{t: start}
	n := 0
	tr := New(store, WithClock(c.now), WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
	return tr, c, store
}

func onboard(t *testing.T, tr *Tracker) State {
	t.Helper()
	state, err := tr.Onboard(models.DefaultOnboardingInput(start), false)
	require.NoError(t, err)
	return state
}

func intPtr(v int) *int { return &v }

func TestOnboard(t *testing.T) {
	tr, _, store := setupTracker(t)

	state := onboard(t, tr)
	assert.Equal(t, []int{200, 153, 124, 99, 77, 56, 36, 18, 0}, state.Plan.WeeklyTargets)
	assert.Equal(t, []float64{50, 35, 20, 10, 5, 3, 0, 0, 0}, state.Plan.NicotineStepDown)
	assert.True(t, state.Profile.CreatedAt.Equal(start))

	onboarded, err := store.IsOnboarded()
	require.NoError(t, err)
	assert.True(t, onboarded)

	loaded, err := tr.State()
	require.NoError(t, err)
	assert.Equal(t, state.Plan.WeeklyTargets, loaded.Plan.WeeklyTargets)
	assert.Equal(t, models.DevicePodSystem, loaded.Profile.DeviceType)
}

func TestOnboardTwiceRequiresForce(t *testing.T) {
	tr, _, _ := setupTracker(t)
	onboard(t, tr)
	_, err := tr.LogPuffs(12, models.LogUpdate{})
	require.NoError(t, err)

	_, err = tr.Onboard(models.DefaultOnboardingInput(start), false)
	assert.ErrorIs(t, err, ErrAlreadyOnboarded)

	in := models.DefaultOnboardingInput(start)
	in.PuffsPerDay = 10
	in.TargetQuitDate = start.AddDate(0, 0, 28)
	state, err := tr.Onboard(in, true)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 6, 4, 2, 0}, state.Plan.WeeklyTargets)

	_, ok, err := tr.TodayLog()
	require.NoError(t, err)
	assert.False(t, ok, "forced onboarding should clear old logs")
}

func TestOnboardRejectsInvalidInput(t *testing.T) {
	tr, _, store := setupTracker(t)

	in := models.DefaultOnboardingInput(start)
	in.Methods = nil
	_, err := tr.Onboard(in, false)

	var verrs validation.Errors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has("methods"))

	onboarded, _ := store.IsOnboarded()
	assert.False(t, onboarded)
}

// failingPlanStore fails every SavePlan call.
type failingPlanStore struct {
	storage.Provider
}

func (s failingPlanStore) SavePlan(models.QuitPlan) error {
	return errors.New("disk full")
}

func TestOnboardClearsPartialWrites(t *testing.T) {
	_, _, store := setupTracker(t)
	tr := New(failingPlanStore{store}, WithClock(func() time.Time { return start }))

	_, err := tr.Onboard(models.DefaultOnboardingInput(start), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save plan")

	_, err = store.GetProfile()
	assert.ErrorIs(t, err, storage.ErrNotFound, "profile must not outlive a failed onboarding")
	onboarded, err := store.IsOnboarded()
	require.NoError(t, err)
	assert.False(t, onboarded)
	_, err = tr.State()
	assert.ErrorIs(t, err, ErrNotOnboarded)
}

func TestOperationsBeforeOnboarding(t *testing.T) {
	tr, _, _ := setupTracker(t)

	_, err := tr.State()
	assert.ErrorIs(t, err, ErrNotOnboarded)
	_, err = tr.LogPuffs(1, models.LogUpdate{})
	assert.ErrorIs(t, err, ErrNotOnboarded)
	_, err = tr.Snapshot()
	assert.ErrorIs(t, err, ErrNotOnboarded)
}

func TestLogPuffsUpsertsOnePerDay(t *testing.T) {
	tr, _, store := setupTracker(t)
	onboard(t, tr)

	_, err := tr.LogPuffs(5, models.LogUpdate{})
	require.NoError(t, err)
	log, err := tr.LogPuffs(5, models.LogUpdate{Mood: intPtr(4), Notes: "coffee"})
	require.NoError(t, err)

	assert.Equal(t, 10, log.PuffCount)
	assert.Equal(t, 200, log.DailyGoal)
	assert.Equal(t, 50.0, log.NicotineStrength)
	assert.Equal(t, 4, log.Mood)
	assert.Equal(t, "coffee", log.Notes)
	assert.True(t, log.GoalMet)

	// Empty notes keep the earlier ones.
	log, err = tr.LogPuffs(0, models.LogUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "coffee", log.Notes)

	logs, err := store.GetDailyLogs()
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestLogPuffsSplitsAtMidnight(t *testing.T) {
	tr, c, store := setupTracker(t)
	onboard(t, tr)

	c.t = time.Date(2026, 3, 2, 23, 50, 0, 0, time.UTC)
	_, err := tr.LogPuffs(3, models.LogUpdate{})
	require.NoError(t, err)

	// 20 minutes later is a new calendar day, not the same 24-hour window
	c.advance(20 * time.Minute)
	log, err := tr.LogPuffs(4, models.LogUpdate{})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-03", log.Date)
	assert.Equal(t, 4, log.PuffCount)

	logs, err := store.GetDailyLogs()
	require.NoError(t, err)
	require.Len(t, logs, 2)
	counts := map[string]int{}
	for _, l := range logs {
		counts[l.Date] = l.PuffCount
	}
	assert.Equal(t, map[string]int{"2026-03-02": 3, "2026-03-03": 4}, counts)
}

func TestLogPuffsSnapshotsCurrentWeek(t *testing.T) {
	tr, c, _ := setupTracker(t)
	onboard(t, tr)

	c.advance(8 * 24 * time.Hour)
	log, err := tr.LogPuffs(160, models.LogUpdate{})
	require.NoError(t, err)
	assert.Equal(t, 153, log.DailyGoal)
	assert.Equal(t, 35.0, log.NicotineStrength)
	assert.False(t, log.GoalMet)
}

func TestLogPuffsValidation(t *testing.T) {
	tr, _, _ := setupTracker(t)
	onboard(t, tr)

	_, err := tr.LogPuffs(-3, models.LogUpdate{})
	assert.Error(t, err)
	_, err = tr.LogPuffs(1, models.LogUpdate{Mood: intPtr(9)})
	assert.Error(t, err)
}

func TestLogCravingAndNRT(t *testing.T) {
	tr, c, _ := setupTracker(t)
	onboard(t, tr)

	cr, err := tr.LogCraving(CravingInput{Intensity: 4, Trigger: models.TriggerStress, Action: models.ActionResisted})
	require.NoError(t, err)
	assert.Equal(t, "id-1", cr.ID)
	assert.True(t, cr.Timestamp.Equal(start))

	_, err = tr.LogCraving(CravingInput{Intensity: 0, Trigger: models.TriggerStress, Action: models.ActionVaped})
	assert.Error(t, err)

	c.advance(24 * time.Hour)
	_, err = tr.LogCraving(CravingInput{Intensity: 2, Trigger: models.TriggerBoredom, Action: models.ActionVaped})
	require.NoError(t, err)

	today, err := tr.CravingsForDay(c.now())
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, models.TriggerBoredom, today[0].Trigger)

	entry, err := tr.LogNRT(models.NRTPatch, 21, time.Time{}, "")
	require.NoError(t, err)
	assert.True(t, entry.Date.Equal(c.now()))

	_, err = tr.LogNRT("Spray", 2, time.Time{}, "")
	assert.Error(t, err)
}

func TestSnapshot(t *testing.T) {
	tr, c, _ := setupTracker(t)
	onboard(t, tr)

	// Three consecutive goal-met days of 100 puffs.
	for i := 0; i < 3; i++ {
		_, err := tr.LogPuffs(100, models.LogUpdate{})
		require.NoError(t, err)
		if i < 2 {
			c.advance(24 * time.Hour)
		}
	}
	_, err := tr.LogCraving(CravingInput{Intensity: 3, Trigger: models.TriggerHabit, Action: models.ActionBreathingExercise})
	require.NoError(t, err)

	snap, err := tr.Snapshot()
	require.NoError(t, err)

	require.NotNil(t, snap.Today)
	assert.Equal(t, 100, snap.Today.PuffCount)
	assert.Len(t, snap.TodayCravings, 1)
	assert.Len(t, snap.Recent, 3)
	assert.Len(t, snap.Schedule, 9)

	s := snap.Summary
	assert.Equal(t, 3, s.Streak)
	assert.Equal(t, 300, s.TotalPuffsAvoided)
	assert.InDelta(t, 22.5, s.MoneySaved, 1e-9) // 300 * 15/200
	assert.Equal(t, 1, s.CurrentWeek)
	assert.Equal(t, 8, s.TotalWeeks)
	assert.Equal(t, 100.0, s.ResistRate)
}

func TestUpdateNotificationSettings(t *testing.T) {
	tr, _, _ := setupTracker(t)
	onboard(t, tr)

	profile, err := tr.UpdateNotificationSettings(models.NotifyOften, 23, 7)
	require.NoError(t, err)
	assert.Equal(t, models.NotifyOften, profile.NotificationPreference)

	state, err := tr.State()
	require.NoError(t, err)
	assert.Equal(t, 23, state.Profile.QuietHoursStart)
	assert.Equal(t, 7, state.Profile.QuietHoursEnd)
	assert.Equal(t, 200, state.Profile.StartingPuffsPerDay)

	_, err = tr.UpdateNotificationSettings(models.NotifyOften, 25, 7)
	assert.Error(t, err)
}

func TestReset(t *testing.T) {
	tr, _, store := setupTracker(t)
	onboard(t, tr)
	require.NoError(t, tr.Reset())

	_, err := tr.State()
	assert.ErrorIs(t, err, ErrNotOnboarded)
	onboarded, _ := store.IsOnboarded()
	assert.False(t, onboarded)
}
