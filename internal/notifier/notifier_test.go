package notifier

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/storage"
)

func TestPlanReminders(t *testing.T) {
	tests := []struct {
		name       string
		pref       models.NotificationPreference
		quietStart int
		quietEnd   int
		want       []Reminder
	}{
		{"often default quiet hours", models.NotifyOften, 22, 8, []Reminder{
			{ID: MorningCheckInID, Hour: 8}, {ID: EveningReminderID, Hour: 20}, {ID: ReengagementID},
		}},
		{"often late wake early sleep", models.NotifyOften, 19, 10, []Reminder{
			{ID: MorningCheckInID, Hour: 10}, {ID: EveningReminderID, Hour: 19}, {ID: ReengagementID},
		}},
		{"balanced", models.NotifyBalanced, 22, 8, []Reminder{{ID: EveningReminderID, Hour: 20}}},
		{"balanced early quiet", models.NotifyBalanced, 18, 8, []Reminder{{ID: EveningReminderID, Hour: 18}}},
		{"milestones only", models.NotifyMilestonesOnly, 22, 8, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanReminders(tt.pref, tt.quietStart, tt.quietEnd)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d reminders, want %d", len(got), len(tt.want))
			}
			for i, w := range tt.want {
				if got[i].ID != w.ID || got[i].Hour != w.Hour {
					t.Errorf("reminder %d = %s@%d, want %s@%d", i, got[i].ID, got[i].Hour, w.ID, w.Hour)
				}
			}
		})
	}
}

func TestDue(t *testing.T) {
	reminders := PlanReminders(models.NotifyOften, 22, 8)
	at := func(h, m int) time.Time { return time.Date(2026, 3, 5, h, m, 0, 0, time.UTC) }

	if due := Due(reminders, at(8, 0), at(7, 0)); len(due) != 1 || due[0].ID != MorningCheckInID {
		t.Errorf("expected morning check-in at 08:00, got %v", due)
	}
	if due := Due(reminders, at(8, 1), at(7, 0)); len(due) != 0 {
		t.Errorf("expected nothing at 08:01, got %v", due)
	}

	// 72h after the last activity.
	stale := at(12, 0).Add(-72 * time.Hour)
	if due := Due(reminders, at(12, 0), stale); len(due) != 1 || due[0].ID != ReengagementID {
		t.Errorf("expected re-engagement, got %v", due)
	}
	if due := Due(reminders, at(12, 0), time.Time{}); len(due) != 0 {
		t.Errorf("zero last activity should not re-engage, got %v", due)
	}
}

// memLedger is an in-memory Ledger.
type memLedger map[string]models.MilestoneNotification

func (l memLedger) GetMilestoneNotification(key string) (models.MilestoneNotification, error) {
	n, ok := l[key]
	if !ok {
		return models.MilestoneNotification{}, storage.ErrNotFound
	}
	return n, nil
}

func (l memLedger) SaveMilestoneNotification(n models.MilestoneNotification) error {
	l[n.Key] = n
	return nil
}

// recordingSender records sends and fails while fail is set.
type recordingSender struct {
	sent []string
	fail bool
}

func (s *recordingSender) Send(_ context.Context, title, _ string) error {
	if s.fail {
		return errors.New("tray not running")
	}
	s.sent = append(s.sent, title)
	return nil
}

func TestDispatcherMilestonesOnce(t *testing.T) {
	ledger := memLedger{}
	sender := &recordingSender{}
	d := NewDispatcher(ledger, sender)
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	statuses := []models.MilestoneStatus{
		{Key: "health-0", Title: "Heart Rate Drops", Unlocked: true},
		{Key: "health-8", Title: "Nicotine Leaving", Unlocked: true},
		{Key: "health-48", Title: "Taste Returns", Unlocked: false},
	}

	n, err := d.Milestones(context.Background(), statuses, now)
	if err != nil {
		t.Fatalf("Milestones failed: %v", err)
	}
	if n != 2 {
		t.Errorf("sent %d, want 2", n)
	}

	n, err = d.Milestones(context.Background(), statuses, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("Milestones (2nd) failed: %v", err)
	}
	if n != 0 {
		t.Errorf("second run sent %d, want 0", n)
	}
	if len(sender.sent) != 2 || sender.sent[0] != "Milestone unlocked: Heart Rate Drops" {
		t.Errorf("unexpected sends: %v", sender.sent)
	}
}

func TestDispatcherRetriesFailedDelivery(t *testing.T) {
	ledger := memLedger{}
	sender := &recordingSender{fail: true}
	d := NewDispatcher(ledger, sender)
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	statuses := []models.MilestoneStatus{{Key: "streak-3", Title: "3-day streak", Unlocked: true}}

	if _, err := d.Milestones(context.Background(), statuses, now); err == nil {
		t.Fatal("expected delivery error")
	}
	rec, ok := ledger["streak-3"]
	if !ok || rec.NotifiedAt != nil || !rec.UnlockedAt.Equal(now) {
		t.Errorf("expected unlock recorded without delivery, got %+v (found %v)", rec, ok)
	}

	sender.fail = false
	n, err := d.Milestones(context.Background(), statuses, now.Add(time.Minute))
	if err != nil || n != 1 {
		t.Fatalf("retry sent %d, err %v", n, err)
	}
	if !ledger["streak-3"].UnlockedAt.Equal(now) {
		t.Error("retry should keep the original unlock time")
	}
}

func TestDispatcherReminders(t *testing.T) {
	ledger := memLedger{}
	sender := &recordingSender{}
	d := NewDispatcher(ledger, sender)
	profile := models.UserProfile{NotificationPreference: models.NotifyOften, QuietHoursStart: 22, QuietHoursEnd: 8}

	evening := time.Date(2026, 3, 5, 20, 0, 0, 0, time.UTC)
	lastActivity := evening.Add(-73 * time.Hour)

	n, err := d.Reminders(context.Background(), profile, evening, lastActivity)
	if err != nil {
		t.Fatalf("Reminders failed: %v", err)
	}
	if n != 2 {
		t.Errorf("sent %d, want evening reminder and re-engagement", n)
	}

	// The re-engagement for the same spell is not repeated.
	n, _ = d.Reminders(context.Background(), profile, evening.Add(24*time.Hour), lastActivity)
	if n != 1 {
		t.Errorf("sent %d on next evening, want 1", n)
	}
}

func TestWriterSender(t *testing.T) {
	var buf bytes.Buffer
	if err := (WriterSender{W: &buf}).Send(context.Background(), "How did today go?", "Log your day"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[DryRun] How did today go?: Log your day\n" {
		t.Errorf("unexpected output %q", buf.String())
	}
}
