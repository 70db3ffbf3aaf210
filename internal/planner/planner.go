// Package planner builds the week-by-week step-down schedule of a quit plan
// and derives the plan metrics shown on the dashboard. All functions are pure;
// the current time is always passed in.
package planner

import (
	"math"
	"slices"
	"sort"
	"time"

	"github.com/julianstephens/puffless/internal/constants"
	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/utils"
)

// GenerateWeeklyTargets returns weeks+1 daily puff targets that decay from
// startingPuffs to 0 along an ease-out curve, so the biggest drops happen early.
func GenerateWeeklyTargets(startingPuffs, weeks int) []int {
	if weeks <= 0 || startingPuffs <= 0 {
		return []int{0}
	}

	targets := make([]int, 0, weeks+1)
	for week := 0; week < weeks; week++ {
		progress := float64(week) / float64(weeks)
		factor := 1.0 - math.Pow(progress, constants.EaseOutExponent)
		target := int(math.Round(float64(startingPuffs) * factor))
		targets = append(targets, max(0, target))
	}
	return append(targets, 0)
}

// GenerateNicotineStepDown returns weeks+1 nicotine strengths drawn from the
// standard ladder (plus startingMg when it is off-ladder). Each level is held for
// floor(weeks/levels) weeks; any remaining weeks are padded with 0.
func GenerateNicotineStepDown(startingMg float64, weeks int) []float64 {
	var levels []float64
	for _, l := range constants.StandardNicotineLevels {
		if l <= startingMg {
			levels = append(levels, l)
		}
	}
	if !slices.Contains(constants.StandardNicotineLevels, startingMg) {
		levels = append([]float64{startingMg}, levels...)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(levels)))

	if weeks <= 0 || len(levels) <= 1 {
		return []float64{0}
	}

	weeksPerStep := max(1, weeks/len(levels))
	schedule := make([]float64, 0, weeks+1)

levelLoop:
	for _, level := range levels {
		for i := 0; i < weeksPerStep; i++ {
			schedule = append(schedule, level)
			if len(schedule) >= weeks {
				break levelLoop
			}
		}
	}

	for len(schedule) < weeks+1 {
		schedule = append(schedule, 0)
	}
	return schedule[:weeks+1]
}

// PlanWeeks is the number of weeks between now and targetDate, never less than 1.
func PlanWeeks(now, targetDate time.Time) int {
	days := max(1, utils.DaysBetween(now, targetDate))
	return max(1, days/constants.DaysPerWeek)
}

// BuildPlan assembles a quit plan starting at now. A target date at or before
// now still yields a one-week plan.
func BuildPlan(methods []models.QuitMethod, startingPuffs int, startingNicotine float64, targetDate, now time.Time) models.QuitPlan {
	weeks := PlanWeeks(now, targetDate)

	return models.QuitPlan{
		ActiveMethods:    slices.Clone(methods),
		StartDate:        now,
		TargetEndDate:    targetDate,
		WeeklyTargets:    GenerateWeeklyTargets(startingPuffs, weeks),
		NicotineStepDown: GenerateNicotineStepDown(startingNicotine, weeks),
	}
}

// TotalWeeks is the number of scheduled weeks, never less than 1.
func TotalWeeks(plan models.QuitPlan) int {
	return max(1, len(plan.WeeklyTargets)-1)
}

// CurrentWeek returns the 0-based plan week containing now,
// clamped to [0, TotalWeeks-1].
func CurrentWeek(plan models.QuitPlan, now time.Time) int {
	days := utils.DaysBetween(plan.StartDate, now)
	week := max(0, days/constants.DaysPerWeek)
	return min(week, TotalWeeks(plan)-1)
}

// TodaysGoal is the puff target of the current week, or 0 for an empty plan.
func TodaysGoal(plan models.QuitPlan, now time.Time) int {
	if len(plan.WeeklyTargets) == 0 {
		return 0
	}
	week := min(CurrentWeek(plan, now), len(plan.WeeklyTargets)-1)
	return plan.WeeklyTargets[week]
}

// CurrentNicotineTarget is the nicotine strength of the current week, or 0 for an empty plan.
func CurrentNicotineTarget(plan models.QuitPlan, now time.Time) float64 {
	if len(plan.NicotineStepDown) == 0 {
		return 0
	}
	week := min(CurrentWeek(plan, now), len(plan.NicotineStepDown)-1)
	return plan.NicotineStepDown[week]
}

// DailyGoalForDate returns the goal for an arbitrary day. Unlike TodaysGoal the
// week is not clamped to the last scheduled week, so days past the end get the final 0.
func DailyGoalForDate(plan models.QuitPlan, date time.Time) int {
	if len(plan.WeeklyTargets) == 0 {
		return 0
	}
	week := max(0, utils.DaysBetween(plan.StartDate, date)/constants.DaysPerWeek)
	return plan.WeeklyTargets[min(week, len(plan.WeeklyTargets)-1)]
}

// Progress is the completed fraction of the plan in [0, 1].
func Progress(plan models.QuitPlan, now time.Time) float64 {
	return min(1.0, float64(CurrentWeek(plan, now))/float64(TotalWeeks(plan)))
}

// DaysRemaining is the number of whole days until the target end date, never negative.
func DaysRemaining(plan models.QuitPlan, now time.Time) int {
	return max(0, utils.DaysBetween(now, plan.TargetEndDate))
}

// MoneySaved converts avoided puffs into money. No rounding is applied.
func MoneySaved(puffsAvoided int, costPerPuff float64) float64 {
	return float64(puffsAvoided) * costPerPuff
}

// Schedule expands the plan into one row per week, including the final zero week.
func Schedule(plan models.QuitPlan, now time.Time) []models.WeekSchedule {
	current := CurrentWeek(plan, now)
	rows := make([]models.WeekSchedule, 0, len(plan.WeeklyTargets))
	for i, target := range plan.WeeklyTargets {
		var mg float64
		if i < len(plan.NicotineStepDown) {
			mg = plan.NicotineStepDown[i]
		}
		rows = append(rows, models.WeekSchedule{
			Week:        i + 1,
			StartsOn:    utils.AddDays(utils.StartOfDay(plan.StartDate), i*constants.DaysPerWeek),
			PuffTarget:  target,
			NicotineMg:  mg,
			IsCurrent:   i == current,
			IsCompleted: i < current,
		})
	}
	return rows
}
