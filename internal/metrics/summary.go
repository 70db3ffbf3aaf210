package metrics

import (
	"time"

	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/planner"
)

// Summary aggregates everything the progress view displays.
type Summary struct {
	CurrentWeek       int                      `json:"current_week"` // 1-based
	TotalWeeks        int                      `json:"total_weeks"`
	TodaysGoal        int                      `json:"todays_goal"`
	NicotineTarget    float64                  `json:"nicotine_target"`
	PlanProgress      float64                  `json:"plan_progress"`
	DaysRemaining     int                      `json:"days_remaining"`
	Streak            int                      `json:"streak"`
	DaysLogged        int                      `json:"days_logged"`
	GoalsMet          int                      `json:"goals_met"`
	TotalPuffsAvoided int                      `json:"total_puffs_avoided"`
	MoneySaved        float64                  `json:"money_saved"`
	TotalCravings     int                      `json:"total_cravings"`
	ResistedCravings  int                      `json:"resisted_cravings"`
	ResistRate        float64                  `json:"resist_rate"`
	TopTriggers       []TriggerCount           `json:"top_triggers"`
	NRTDoses          int                      `json:"nrt_doses"`
	HoursElapsed      int                      `json:"hours_elapsed"`
	Milestones        []models.MilestoneStatus `json:"milestones"`
}

// Summarize derives the progress summary from a full snapshot of records.
func Summarize(profile models.UserProfile, plan models.QuitPlan, logs []models.DailyLog, cravings []models.Craving, nrt []models.NRTEntry, now time.Time) Summary {
	avoided := TotalPuffsAvoided(profile, logs)
	saved := planner.MoneySaved(avoided, profile.CostPerPuff())
	streak := Streak(logs, now)

	var milestones []models.MilestoneStatus
	milestones = append(milestones, HealthMilestones(plan, now)...)
	milestones = append(milestones, FinancialMilestones(saved)...)
	milestones = append(milestones, StreakMilestones(streak)...)

	return Summary{
		CurrentWeek:       planner.CurrentWeek(plan, now) + 1,
		TotalWeeks:        planner.TotalWeeks(plan),
		TodaysGoal:        planner.TodaysGoal(plan, now),
		NicotineTarget:    planner.CurrentNicotineTarget(plan, now),
		PlanProgress:      planner.Progress(plan, now),
		DaysRemaining:     planner.DaysRemaining(plan, now),
		Streak:            streak,
		DaysLogged:        len(logs),
		GoalsMet:          GoalsMetCount(logs),
		TotalPuffsAvoided: avoided,
		MoneySaved:        saved,
		TotalCravings:     len(cravings),
		ResistedCravings:  ResistedCount(cravings),
		ResistRate:        ResistRate(cravings),
		TopTriggers:       TriggerBreakdown(cravings),
		NRTDoses:          len(nrt),
		HoursElapsed:      HoursElapsed(plan, now),
		Milestones:        milestones,
	}
}
