package metrics

import (
	"fmt"
	"time"

	"github.com/julianstephens/puffless/internal/constants"
	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/utils"
)

// HoursElapsed is the whole hours since the plan started, never negative.
func HoursElapsed(plan models.QuitPlan, now time.Time) int {
	return max(0, utils.HoursBetween(plan.StartDate, now))
}

// HealthMilestones evaluates every health milestone against the time since the plan started.
func HealthMilestones(plan models.QuitPlan, now time.Time) []models.MilestoneStatus {
	hours := HoursElapsed(plan, now)
	out := make([]models.MilestoneStatus, 0, len(models.HealthMilestones))
	for _, m := range models.HealthMilestones {
		out = append(out, models.MilestoneStatus{
			Type:        models.MilestoneHealth,
			Key:         m.Key(),
			Title:       m.Title,
			Description: m.Description,
			Threshold:   FormatHours(m.Hours),
			Unlocked:    hours >= m.Hours,
		})
	}
	return out
}

// FinancialMilestones evaluates the money-saved thresholds.
func FinancialMilestones(saved float64) []models.MilestoneStatus {
	out := make([]models.MilestoneStatus, 0, len(models.FinancialThresholds))
	for _, threshold := range models.FinancialThresholds {
		out = append(out, models.MilestoneStatus{
			Type:        models.MilestoneFinancial,
			Key:         fmt.Sprintf("financial-%.0f", threshold),
			Title:       fmt.Sprintf("$%.0f saved", threshold),
			Description: fmt.Sprintf("You've kept $%.0f in your pocket", threshold),
			Threshold:   fmt.Sprintf("$%.0f", threshold),
			Unlocked:    saved >= threshold,
		})
	}
	return out
}

// StreakMilestones evaluates the consecutive-day thresholds.
func StreakMilestones(streak int) []models.MilestoneStatus {
	out := make([]models.MilestoneStatus, 0, len(models.StreakThresholds))
	for _, days := range models.StreakThresholds {
		title := fmt.Sprintf("%d day streak", days)
		if days == 1 {
			title = "First goal met"
		}
		out = append(out, models.MilestoneStatus{
			Type:        models.MilestoneStreak,
			Key:         fmt.Sprintf("streak-%d", days),
			Title:       title,
			Description: fmt.Sprintf("Meet your daily goal %d days in a row", days),
			Threshold:   fmt.Sprintf("%d days", days),
			Unlocked:    streak >= days,
		})
	}
	return out
}

// FormatHours renders a milestone threshold: "Immediate", "8h", "3d" or "3mo".
func FormatHours(hours int) string {
	switch {
	case hours <= 0:
		return "Immediate"
	case hours < 24:
		return fmt.Sprintf("%dh", hours)
	case hours < constants.HoursPerMonth:
		return fmt.Sprintf("%dd", hours/24)
	default:
		return fmt.Sprintf("%dmo", hours/constants.HoursPerMonth)
	}
}
