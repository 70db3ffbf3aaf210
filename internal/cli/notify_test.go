package cli

import (
	"testing"
	"time"

	"github.com/julianstephens/puffless/internal/models"
)

func TestNotifyCmd_NotOnboarded(t *testing.T) {
	ctx, _, cleanup := setupTestContext(t)
	defer cleanup()

	if err := (&NotifyCmd{DryRun: true}).Run(ctx); err != nil {
		t.Errorf("expected no error without a plan, got %v", err)
	}
}

func TestNotifyCmd_SendsMilestoneOnce(t *testing.T) {
	ctx, store, cleanup := setupOnboarded(t)
	defer cleanup()

	if err := (&NotifyCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}

	n, err := store.GetMilestoneNotification("health-0")
	if err != nil {
		t.Fatalf("expected health-0 to be recorded: %v", err)
	}
	if n.NotifiedAt == nil {
		t.Fatal("expected health-0 to be marked as notified")
	}
	first := *n.NotifiedAt

	if err := (&NotifyCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("second notify failed: %v", err)
	}
	n, err = store.GetMilestoneNotification("health-0")
	if err != nil {
		t.Fatalf("failed to reload notification: %v", err)
	}
	if n.NotifiedAt == nil || !n.NotifiedAt.Equal(first) {
		t.Errorf("milestone was resent: first %v, now %v", first, n.NotifiedAt)
	}
}

func TestLatestActivity(t *testing.T) {
	ctx, store, cleanup := setupOnboarded(t)
	defer cleanup()

	latest, err := latestActivity(store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !latest.IsZero() {
		t.Errorf("expected zero time without activity, got %v", latest)
	}

	if err := store.UpsertDailyLog(models.DailyLog{Date: "2026-05-02", DailyGoal: 200, GoalMet: true, Mood: 3}); err != nil {
		t.Fatalf("failed to insert log: %v", err)
	}
	if err := (&CravingCmd{Intensity: 2, Trigger: "boredom", Action: "resisted", At: "09:15"}).Run(ctx); err != nil {
		t.Fatalf("craving failed: %v", err)
	}

	latest, err = latestActivity(store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 5, 4, 9, 15, 0, 0, time.Local)
	if !latest.Equal(want) {
		t.Errorf("expected %v, got %v", want, latest)
	}
}
