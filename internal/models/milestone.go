package models

import (
	"fmt"
	"time"
)

// HealthMilestone is a recovery checkpoint reached after Hours of reduction.
type HealthMilestone struct {
	Title       string
	Description string
	Hours       int
}

// Key identifies the milestone in persisted notification records.
func (m HealthMilestone) Key() string {
	return fmt.Sprintf("health-%d", m.Hours)
}

var HealthMilestones = []HealthMilestone{
	{Title: "Heart Rate Drops", Description: "Your heart rate begins returning to normal", Hours: 0},
	{Title: "Nicotine Leaving", Description: "Nicotine starts clearing from your bloodstream", Hours: 8},
	{Title: "Taste Returns", Description: "Your sense of taste and smell start improving", Hours: 48},
	{Title: "Breathing Easier", Description: "Bronchial tubes begin to relax, breathing gets easier", Hours: 72},
	{Title: "Circulation Improves", Description: "Blood circulation noticeably improves", Hours: 336},
	{Title: "Lung Function Up", Description: "Lung function begins to improve significantly", Hours: 720},
	{Title: "Coughing Decreases", Description: "Coughing and shortness of breath decrease", Hours: 2160},
}

// FinancialThresholds are money-saved amounts in the user's currency.
var FinancialThresholds = []float64{10, 25, 50, 100, 250, 500, 1000}

// StreakThresholds are consecutive goal-met days.
var StreakThresholds = []int{1, 3, 7, 14, 30, 60, 90, 180, 365}

// MilestoneStatus is a milestone evaluated against the current state.
// Unlocked is recomputed on every read.
type MilestoneStatus struct {
	Type        MilestoneType `json:"type"`
	Key         string        `json:"key"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Threshold   string        `json:"threshold"` // e.g. "48h", "$50", "7 days"
	Unlocked    bool          `json:"unlocked"`
}

// MilestoneNotification records that a milestone unlock was announced.
type MilestoneNotification struct {
	Key        string     `json:"key"`
	UnlockedAt time.Time  `json:"unlockedAt"`
	NotifiedAt *time.Time `json:"notifiedAt,omitempty"`
}
