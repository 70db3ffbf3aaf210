package models

import "time"

// QuitPlan is the week-indexed step-down schedule generated at onboarding.
// Both sequences hold weeks+1 entries and end in 0.
type QuitPlan struct {
	ActiveMethods    []QuitMethod `json:"activeMethods"`
	StartDate        time.Time    `json:"startDate"`
	TargetEndDate    time.Time    `json:"targetEndDate"`
	WeeklyTargets    []int        `json:"weeklyTargets"`
	NicotineStepDown []float64    `json:"nicotineStepDown"`
}

// WeekSchedule is one displayed row of a plan
type WeekSchedule struct {
	Week        int       `json:"week"` // 1-based
	StartsOn    time.Time `json:"starts_on"`
	PuffTarget  int       `json:"puff_target"`
	NicotineMg  float64   `json:"nicotine_mg"`
	IsCurrent   bool      `json:"is_current"`
	IsCompleted bool      `json:"is_completed"`
}
