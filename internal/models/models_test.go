package models

import "testing"

func TestCostPerPuff(t *testing.T) {
	tests := []struct {
		name    string
		profile UserProfile
		want    float64
	}{
		{name: "standard pod", profile: UserProfile{CostPerPod: 15, PuffsPerPod: 200}, want: 0.075},
		{name: "zero puffs per pod", profile: UserProfile{CostPerPod: 15, PuffsPerPod: 0}, want: 0},
		{name: "negative puffs per pod", profile: UserProfile{CostPerPod: 15, PuffsPerPod: -4}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.profile.CostPerPuff(); got != tt.want {
				t.Errorf("CostPerPuff() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewDailyLogDefaults(t *testing.T) {
	log := NewDailyLog("2026-05-01", 12, 10, 20, LogUpdate{})

	if log.Mood != 3 {
		t.Errorf("expected default mood 3, got %d", log.Mood)
	}
	if log.NicotineStrength != 20 {
		t.Errorf("expected nicotine snapshot 20, got %v", log.NicotineStrength)
	}
	if log.GoalMet {
		t.Error("expected goal not met with 12 puffs against a goal of 10")
	}
}

func TestDailyLogAddPuffs(t *testing.T) {
	log := NewDailyLog("2026-05-01", 5, 10, 20, LogUpdate{Notes: "morning"})

	mood := 5
	log.AddPuffs(5, LogUpdate{Mood: &mood})
	if log.PuffCount != 10 {
		t.Errorf("expected 10 puffs, got %d", log.PuffCount)
	}
	if !log.GoalMet {
		t.Error("expected goal met at exactly the goal")
	}
	if log.Notes != "morning" {
		t.Errorf("empty notes should not overwrite, got %q", log.Notes)
	}
	if log.Mood != 5 {
		t.Errorf("expected mood 5, got %d", log.Mood)
	}

	strength := 10.0
	log.AddPuffs(1, LogUpdate{Notes: "evening", NicotineStrength: &strength})
	if log.GoalMet {
		t.Error("expected goal not met after exceeding goal")
	}
	if log.Notes != "evening" || log.NicotineStrength != 10 {
		t.Errorf("expected notes and nicotine overwritten, got %q / %v", log.Notes, log.NicotineStrength)
	}
}

func TestParseEnums(t *testing.T) {
	if got, err := ParseCravingTrigger("after-meal"); err != nil || got != TriggerAfterMeal {
		t.Errorf("ParseCravingTrigger(after-meal) = %q, %v", got, err)
	}
	if got, err := ParseDeviceType("mod/tank"); err != nil || got != DeviceModTank {
		t.Errorf("ParseDeviceType(mod/tank) = %q, %v", got, err)
	}
	if got, err := ParseCravingAction("nrt"); err != nil || got != ActionUsedNRT {
		t.Errorf("ParseCravingAction(nrt) = %q, %v", got, err)
	}
	if got, err := ParseNotificationPreference("milestones"); err != nil || got != NotifyMilestonesOnly {
		t.Errorf("ParseNotificationPreference(milestones) = %q, %v", got, err)
	}
	if _, err := ParseQuitMethod("hypnosis"); err == nil {
		t.Error("expected error for unknown quit method")
	}
}

func TestCravingActionResisted(t *testing.T) {
	for _, a := range CravingActions {
		want := a != ActionVaped
		if a.Resisted() != want {
			t.Errorf("%q.Resisted() = %v, want %v", a, a.Resisted(), want)
		}
	}
}

func TestEnumMetadataComplete(t *testing.T) {
	for _, tr := range CravingTriggers {
		if tr.Suggestion() == "" || tr.Info().Icon == "" {
			t.Errorf("trigger %q missing metadata", tr)
		}
	}
	for _, m := range QuitMethods {
		if m.Info().Description == "" {
			t.Errorf("method %q missing description", m)
		}
	}
	if len(CravingTriggers) != 8 || len(CravingActions) != 5 || len(NRTTypes) != 4 {
		t.Error("unexpected enum cardinality")
	}
}
