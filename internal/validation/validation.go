package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/puffless/internal/constants"
	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/utils"
)

// FieldError is a single rejected input field
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors collects every rejected field of one input. It implements error.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.String()
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// FormatReport returns a human-readable list of the rejected fields
func (e Errors) FormatReport() string {
	if len(e) == 0 {
		return "No problems found."
	}
	var b strings.Builder
	b.WriteString("Please fix the following:\n")
	for _, fe := range e {
		fmt.Fprintf(&b, "- %s\n", fe)
	}
	return b.String()
}

// Has reports whether field was rejected.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func (e *Errors) add(field, format string, args ...any) {
	*e = append(*e, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// err returns nil for an empty list so callers can use `if err != nil`.
func (e Errors) err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ValidateOnboarding checks the onboarding answers against now.
func ValidateOnboarding(in models.OnboardingInput, now time.Time) error {
	var errs Errors

	if !in.DeviceType.Valid() {
		errs.add("device_type", "unknown device type %q", in.DeviceType)
	}
	if in.NicotineLevel < 0 {
		errs.add("nicotine_level", "must not be negative")
	}
	if in.PuffsPerDay < 0 {
		errs.add("puffs_per_day", "must not be negative")
	}
	if len(in.Methods) == 0 {
		errs.add("methods", "select at least one quit method")
	}
	seen := make(map[models.QuitMethod]bool)
	for _, m := range in.Methods {
		if !m.Valid() {
			errs.add("methods", "unknown quit method %q", m)
		} else if seen[m] {
			errs.add("methods", "duplicate quit method %q", m)
		}
		seen[m] = true
	}
	if !in.TargetQuitDate.After(now) {
		errs.add("target_quit_date", "must be in the future")
	}
	if !in.NotificationPreference.Valid() {
		errs.add("notification_preference", "unknown preference %q", in.NotificationPreference)
	}
	errs = append(errs, quietHours(in.QuietHoursStart, in.QuietHoursEnd)...)
	if in.CostPerPod < 0 {
		errs.add("cost_per_pod", "must not be negative")
	}
	if in.PuffsPerPod < 0 {
		errs.add("puffs_per_pod", "must not be negative")
	}

	return errs.err()
}

// ValidateNotificationSettings checks a notification preference change.
func ValidateNotificationSettings(pref models.NotificationPreference, quietStart, quietEnd int) error {
	var errs Errors
	if !pref.Valid() {
		errs.add("notification_preference", "unknown preference %q", pref)
	}
	errs = append(errs, quietHours(quietStart, quietEnd)...)
	return errs.err()
}

func quietHours(start, end int) Errors {
	var errs Errors
	if !utils.ValidateHour(start) {
		errs.add("quiet_hours_start", "hour must be between 0 and 23, got %d", start)
	}
	if !utils.ValidateHour(end) {
		errs.add("quiet_hours_end", "hour must be between 0 and 23, got %d", end)
	}
	return errs
}

// ValidatePuffLog checks the inputs of a puff logging action.
func ValidatePuffLog(count int, u models.LogUpdate) error {
	var errs Errors
	if count < 0 {
		errs.add("puffs", "must not be negative")
	}
	if u.Mood != nil && !validMood(*u.Mood) {
		errs.add("mood", "must be between %d and %d, got %d", constants.MinMood, constants.MaxMood, *u.Mood)
	}
	if u.NicotineStrength != nil && *u.NicotineStrength < 0 {
		errs.add("nicotine_strength", "must not be negative")
	}
	return errs.err()
}

// ValidateCraving checks a craving before it is stored.
func ValidateCraving(c models.Craving) error {
	var errs Errors
	if c.Intensity < constants.MinIntensity || c.Intensity > constants.MaxIntensity {
		errs.add("intensity", "must be between %d and %d, got %d", constants.MinIntensity, constants.MaxIntensity, c.Intensity)
	}
	if !c.Trigger.Valid() {
		errs.add("trigger", "unknown trigger %q", c.Trigger)
	}
	if !c.Action.Valid() {
		errs.add("action", "unknown action %q", c.Action)
	}
	if c.DurationMinutes != nil && *c.DurationMinutes < 0 {
		errs.add("duration", "must not be negative")
	}
	if c.Timestamp.IsZero() {
		errs.add("timestamp", "is required")
	}
	return errs.err()
}

// ValidateNRTEntry checks an NRT dose before it is stored.
func ValidateNRTEntry(e models.NRTEntry) error {
	var errs Errors
	if !e.Type.Valid() {
		errs.add("type", "unknown NRT type %q", e.Type)
	}
	if e.DosageMg < 0 {
		errs.add("dosage", "must not be negative")
	}
	if e.Date.IsZero() {
		errs.add("date", "is required")
	}
	return errs.err()
}

func validMood(m int) bool {
	return m >= constants.MinMood && m <= constants.MaxMood
}

// ValidatePlan checks the structural invariants of a stored quit plan.
func ValidatePlan(plan models.QuitPlan) error {
	var errs Errors
	if len(plan.WeeklyTargets) == 0 {
		errs.add("weekly_targets", "is empty")
	} else if last := plan.WeeklyTargets[len(plan.WeeklyTargets)-1]; last != 0 {
		errs.add("weekly_targets", "must end in 0, got %d", last)
	}
	if len(plan.NicotineStepDown) != len(plan.WeeklyTargets) {
		errs.add("nicotine_step_down", "has %d entries, expected %d", len(plan.NicotineStepDown), len(plan.WeeklyTargets))
	} else if n := len(plan.NicotineStepDown); n > 0 && plan.NicotineStepDown[n-1] != 0 {
		errs.add("nicotine_step_down", "must end in 0, got %g", plan.NicotineStepDown[n-1])
	}
	for i := 1; i < len(plan.WeeklyTargets); i++ {
		if plan.WeeklyTargets[i] > plan.WeeklyTargets[i-1] {
			errs.add("weekly_targets", "week %d target %d exceeds week %d target %d", i, plan.WeeklyTargets[i], i-1, plan.WeeklyTargets[i-1])
			break
		}
	}
	if !plan.TargetEndDate.After(plan.StartDate) {
		errs.add("target_end_date", "must be after the start date")
	}
	return errs.err()
}

// ValidateDailyLogs checks stored logs for malformed days, duplicates and stale goal flags.
func ValidateDailyLogs(logs []models.DailyLog) error {
	var errs Errors
	seen := make(map[string]bool, len(logs))
	for _, l := range logs {
		field := "daily_logs[" + l.Date + "]"
		if _, err := utils.ParseDay(l.Date); err != nil {
			errs.add(field, "invalid date")
		}
		if seen[l.Date] {
			errs.add(field, "more than one log for the day")
		}
		seen[l.Date] = true
		if l.PuffCount < 0 {
			errs.add(field, "negative puff count %d", l.PuffCount)
		}
		if !validMood(l.Mood) {
			errs.add(field, "mood %d out of range", l.Mood)
		}
		if l.GoalMet != (l.PuffCount <= l.DailyGoal) {
			errs.add(field, "goal flag does not match %d/%d puffs", l.PuffCount, l.DailyGoal)
		}
	}
	return errs.err()
}
