package notifier

import (
	"context"
	"errors"
	"time"

	"github.com/julianstephens/puffless/internal/logger"
	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/storage"
	"github.com/julianstephens/puffless/internal/utils"
)

// Ledger records which one-shot notifications were already delivered.
type Ledger interface {
	GetMilestoneNotification(key string) (models.MilestoneNotification, error)
	SaveMilestoneNotification(models.MilestoneNotification) error
}

// Dispatcher sends due reminders and unlocked milestones, each one-shot
// notification at most once.
type Dispatcher struct {
	ledger Ledger
	sender Sender
}

func NewDispatcher(ledger Ledger, sender Sender) *Dispatcher {
	return &Dispatcher{ledger: ledger, sender: sender}
}

// Reminders sends the profile's reminders that are due at now. lastActivity
// is the time of the latest logged record, zero when nothing was logged.
func (d *Dispatcher) Reminders(ctx context.Context, profile models.UserProfile, now, lastActivity time.Time) (int, error) {
	due := Due(PlanReminders(profile.NotificationPreference, profile.QuietHoursStart, profile.QuietHoursEnd), now, lastActivity)

	sent := 0
	var errs []error
	for _, r := range due {
		if r.Daily() {
			if err := d.sender.Send(ctx, r.Title, r.Body); err != nil {
				errs = append(errs, err)
				continue
			}
			sent++
			continue
		}

		// One re-engagement per inactivity spell.
		ok, err := d.once(ctx, r.ID+"-"+utils.DayKey(lastActivity), r.Title, r.Body, now)
		if err != nil {
			errs = append(errs, err)
		} else if ok {
			sent++
		}
	}
	return sent, errors.Join(errs...)
}

// Milestones sends a notification for every unlocked milestone not yet announced.
func (d *Dispatcher) Milestones(ctx context.Context, statuses []models.MilestoneStatus, now time.Time) (int, error) {
	sent := 0
	var errs []error
	for _, m := range statuses {
		if !m.Unlocked {
			continue
		}
		ok, err := d.once(ctx, m.Key, "Milestone unlocked: "+m.Title, m.Description, now)
		if err != nil {
			errs = append(errs, err)
		} else if ok {
			sent++
		}
	}
	return sent, errors.Join(errs...)
}

// once sends the notification unless key was already delivered. A failed
// send still records the unlock so the next run retries delivery.
func (d *Dispatcher) once(ctx context.Context, key, title, body string, now time.Time) (bool, error) {
	rec, err := d.ledger.GetMilestoneNotification(key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		rec = models.MilestoneNotification{Key: key, UnlockedAt: now}
	case err != nil:
		return false, err
	case rec.NotifiedAt != nil:
		return false, nil
	}

	sendErr := d.sender.Send(ctx, title, body)
	if sendErr == nil {
		notified := now
		rec.NotifiedAt = &notified
	}
	if err := d.ledger.SaveMilestoneNotification(rec); err != nil {
		return false, err
	}
	if sendErr != nil {
		logger.Warn("Notification not delivered", "key", key, "error", sendErr)
		return false, sendErr
	}
	logger.Info("Notification sent", "key", key)
	return true, nil
}
