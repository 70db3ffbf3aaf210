package notifier

import (
	"time"

	"github.com/julianstephens/puffless/internal/constants"
	"github.com/julianstephens/puffless/internal/models"
)

// Reminder is one scheduled notification. Daily reminders fire at Hour:00;
// a reminder with a positive After fires once that long after the last activity.
type Reminder struct {
	ID    string
	Title string
	Body  string
	Hour  int
	After time.Duration
}

// Daily reports whether the reminder repeats every day.
func (r Reminder) Daily() bool { return r.After == 0 }

const (
	MorningCheckInID  = "morning-checkin"
	EveningReminderID = "evening-reminder"
	ReengagementID    = "reengagement"
)

func morningCheckIn(hour int) Reminder {
	return Reminder{
		ID:    MorningCheckInID,
		Title: "Good morning",
		Body:  "Ready to check in on your progress? You've got this.",
		Hour:  hour,
	}
}

func eveningReminder(hour int) Reminder {
	return Reminder{
		ID:    EveningReminderID,
		Title: "How did today go?",
		Body:  "Take a moment to log your day. It only takes a few seconds.",
		Hour:  hour,
	}
}

func reengagement() Reminder {
	return Reminder{
		ID:    ReengagementID,
		Title: "No pressure",
		Body:  "Just checking in. Your progress is still here whenever you're ready.",
		After: constants.ReengagementAfter,
	}
}

// PlanReminders returns the reminders for a notification preference. Daily
// reminders are pulled inside the waking window bounded by the quiet hours.
func PlanReminders(pref models.NotificationPreference, quietStart, quietEnd int) []Reminder {
	switch pref {
	case models.NotifyOften:
		return []Reminder{
			morningCheckIn(max(quietEnd, constants.DefaultMorningReminderHr)),
			eveningReminder(min(quietStart, constants.DefaultEveningReminderHr)),
			reengagement(),
		}
	case models.NotifyBalanced:
		return []Reminder{
			eveningReminder(min(quietStart, constants.DefaultEveningReminderHr)),
		}
	default:
		return nil
	}
}

// Due filters the reminders that should fire at now. Daily reminders match the
// first minute of their hour, so a once-a-minute caller fires each once a day.
// The re-engagement reminder is due once lastActivity is old enough; a zero
// lastActivity never triggers it.
func Due(reminders []Reminder, now, lastActivity time.Time) []Reminder {
	var due []Reminder
	for _, r := range reminders {
		if r.Daily() {
			if now.Hour() == r.Hour && now.Minute() == 0 {
				due = append(due, r)
			}
			continue
		}
		if !lastActivity.IsZero() && now.Sub(lastActivity) >= r.After {
			due = append(due, r)
		}
	}
	return due
}
