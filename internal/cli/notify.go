package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/puffless/internal/logger"
	"github.com/julianstephens/puffless/internal/notifier"
	"github.com/julianstephens/puffless/internal/storage"
	"github.com/julianstephens/puffless/internal/tracker"
	"github.com/julianstephens/puffless/internal/utils"
)

// NotifyCmd is meant to run once a minute from cron or the tray app.
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *Context) error {
	snap, err := ctx.Tracker.Snapshot()
	if errors.Is(err, tracker.ErrNotOnboarded) {
		if c.DryRun {
			fmt.Println("No quit plan yet, nothing to notify.")
		}
		return nil
	}
	if err != nil {
		return err
	}

	var sender notifier.Sender = notifier.NewTraySender()
	if c.DryRun {
		sender = notifier.WriterSender{W: os.Stdout}
	}
	d := notifier.NewDispatcher(ctx.Store, sender)

	lastActivity, err := latestActivity(ctx.Store)
	if err != nil {
		return err
	}

	reqCtx := context.Background()
	reminders, remindErr := d.Reminders(reqCtx, snap.Profile, snap.Now, lastActivity)
	milestones, milestoneErr := d.Milestones(reqCtx, snap.Summary.Milestones, snap.Now)
	logger.Debug("Notify run finished", "reminders", reminders, "milestones", milestones)
	return errors.Join(remindErr, milestoneErr)
}

// latestActivity is the time of the most recent log, craving or NRT dose.
// Daily logs count from the start of their day.
func latestActivity(store storage.Provider) (time.Time, error) {
	var latest time.Time
	bump := func(t time.Time) {
		if t.After(latest) {
			latest = t
		}
	}

	logs, err := store.GetDailyLogs()
	if err != nil {
		return latest, err
	}
	for _, l := range logs {
		if day, err := utils.ParseDay(l.Date); err == nil {
			bump(day)
		}
	}
	cravings, err := store.GetCravings()
	if err != nil {
		return latest, err
	}
	for _, cr := range cravings {
		bump(cr.Timestamp)
	}
	entries, err := store.GetNRTEntries()
	if err != nil {
		return latest, err
	}
	for _, e := range entries {
		bump(e.Date)
	}
	return latest, nil
}
