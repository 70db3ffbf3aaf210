package planner

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/puffless/internal/models"
)

var now = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestGenerateWeeklyTargets(t *testing.T) {
	tests := []struct {
		name   string
		puffs  int
		weeks  int
		expect []int
	}{
		{name: "eight weeks from 200", puffs: 200, weeks: 8, expect: []int{200, 153, 124, 99, 77, 56, 36, 18, 0}},
		{name: "four weeks from 10", puffs: 10, weeks: 4, expect: []int{10, 6, 4, 2, 0}},
		{name: "twelve weeks from 100", puffs: 100, weeks: 12, expect: []int{100, 82, 71, 62, 54, 46, 38, 31, 25, 18, 12, 6, 0}},
		{name: "single puff rounds up early", puffs: 1, weeks: 3, expect: []int{1, 1, 0, 0}},
		{name: "one week", puffs: 200, weeks: 1, expect: []int{200, 0}},
		{name: "zero puffs", puffs: 0, weeks: 10, expect: []int{0}},
		{name: "zero weeks", puffs: 200, weeks: 0, expect: []int{0}},
		{name: "negative weeks", puffs: 200, weeks: -3, expect: []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, GenerateWeeklyTargets(tt.puffs, tt.weeks))
		})
	}
}

func TestGenerateWeeklyTargetsProperties(t *testing.T) {
	for _, puffs := range []int{1, 7, 50, 200, 999} {
		for weeks := 1; weeks <= 52; weeks++ {
			got := GenerateWeeklyTargets(puffs, weeks)
			require.Len(t, got, weeks+1)
			assert.Equal(t, 0, got[len(got)-1])
			assert.LessOrEqual(t, got[0], puffs)
			for i := 1; i < len(got); i++ {
				assert.GreaterOrEqual(t, got[i], 0)
				assert.LessOrEqual(t, got[i], got[i-1], "puffs=%d weeks=%d index=%d", puffs, weeks, i)
			}
		}
	}
}

func TestGenerateNicotineStepDown(t *testing.T) {
	tests := []struct {
		name   string
		mg     float64
		weeks  int
		expect []float64
	}{
		{name: "full ladder twelve weeks", mg: 50, weeks: 12, expect: []float64{50, 35, 20, 10, 5, 3, 0, 0, 0, 0, 0, 0, 0}},
		{name: "two weeks per step", mg: 20, weeks: 10, expect: []float64{20, 20, 10, 10, 5, 5, 3, 3, 0, 0, 0}},
		{name: "off-ladder start", mg: 25, weeks: 6, expect: []float64{25, 20, 10, 5, 3, 0, 0}},
		{name: "short plan stops early", mg: 50, weeks: 3, expect: []float64{50, 35, 20, 0}},
		{name: "uneven split pads with zero", mg: 5, weeks: 7, expect: []float64{5, 5, 3, 3, 0, 0, 0, 0}},
		{name: "zero nicotine", mg: 0, weeks: 5, expect: []float64{0}},
		{name: "zero weeks", mg: 50, weeks: 0, expect: []float64{0}},
		{name: "off-ladder below lowest step", mg: 1.5, weeks: 4, expect: []float64{1.5, 1.5, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, GenerateNicotineStepDown(tt.mg, tt.weeks))
		})
	}
}

func TestGenerateNicotineStepDownProperties(t *testing.T) {
	ladder := []float64{50, 35, 20, 10, 5, 3, 0}
	for weeks := 1; weeks <= 40; weeks++ {
		got := GenerateNicotineStepDown(50, weeks)
		require.Len(t, got, weeks+1)
		assert.Equal(t, 0.0, got[len(got)-1])
		for i, v := range got {
			assert.True(t, slices.Contains(ladder, v), "unexpected level %v", v)
			if i > 0 {
				assert.LessOrEqual(t, v, got[i-1])
			}
		}
	}
}

func TestBuildPlan(t *testing.T) {
	methods := []models.QuitMethod{models.MethodGradualReduction, models.MethodNRTTracking}
	plan := BuildPlan(methods, 200, 50, now.AddDate(0, 0, 60), now)

	assert.Equal(t, now, plan.StartDate)
	assert.Equal(t, now.AddDate(0, 0, 60), plan.TargetEndDate)
	assert.Equal(t, methods, plan.ActiveMethods)
	require.Len(t, plan.WeeklyTargets, 9)
	require.Len(t, plan.NicotineStepDown, 9)
	assert.Equal(t, []int{200, 153, 124, 99, 77, 56, 36, 18, 0}, plan.WeeklyTargets)
	assert.Equal(t, []float64{50, 35, 20, 10, 5, 3, 0, 0, 0}, plan.NicotineStepDown)

	// The plan keeps its own copy of the methods
	methods[0] = models.MethodColdTurkey
	assert.Equal(t, models.MethodGradualReduction, plan.ActiveMethods[0])
}

func TestBuildPlanClampsShortTimelines(t *testing.T) {
	tests := []struct {
		name   string
		target time.Time
	}{
		{name: "target in the past", target: now.AddDate(0, 0, -10)},
		{name: "target now", target: now},
		{name: "target in three days", target: now.AddDate(0, 0, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := BuildPlan([]models.QuitMethod{models.MethodColdTurkey}, 100, 20, tt.target, now)
			assert.Equal(t, []int{100, 0}, plan.WeeklyTargets)
			assert.Equal(t, []float64{20, 0}, plan.NicotineStepDown)
		})
	}
}

func TestPlanWeeks(t *testing.T) {
	assert.Equal(t, 8, PlanWeeks(now, now.AddDate(0, 0, 60)))
	assert.Equal(t, 1, PlanWeeks(now, now.AddDate(0, 0, 13)))
	assert.Equal(t, 2, PlanWeeks(now, now.AddDate(0, 0, 14)))
	assert.Equal(t, 1, PlanWeeks(now, now.AddDate(-1, 0, 0)))

	far := PlanWeeks(time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), time.Date(2500, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 24714, far)
}

func TestCurrentWeekAndGoals(t *testing.T) {
	plan := BuildPlan([]models.QuitMethod{models.MethodGradualReduction}, 200, 50, now.AddDate(0, 0, 60), now)

	tests := []struct {
		name     string
		at       time.Time
		week     int
		goal     int
		nicotine float64
	}{
		{name: "start", at: now, week: 0, goal: 200, nicotine: 50},
		{name: "day six", at: now.AddDate(0, 0, 6), week: 0, goal: 200, nicotine: 50},
		{name: "day seven", at: now.AddDate(0, 0, 7), week: 1, goal: 153, nicotine: 35},
		{name: "week five", at: now.AddDate(0, 0, 37), week: 5, goal: 56, nicotine: 3},
		{name: "past the end clamps to last scheduled week", at: now.AddDate(0, 0, 200), week: 7, goal: 18, nicotine: 0},
		{name: "before start", at: now.AddDate(0, 0, -20), week: 0, goal: 200, nicotine: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.week, CurrentWeek(plan, tt.at))
			assert.Equal(t, tt.goal, TodaysGoal(plan, tt.at))
			assert.Equal(t, tt.nicotine, CurrentNicotineTarget(plan, tt.at))
		})
	}
}

func TestDailyGoalForDate(t *testing.T) {
	plan := BuildPlan(nil, 200, 50, now.AddDate(0, 0, 60), now)

	assert.Equal(t, 200, DailyGoalForDate(plan, now))
	assert.Equal(t, 124, DailyGoalForDate(plan, now.AddDate(0, 0, 15)))
	assert.Equal(t, 0, DailyGoalForDate(plan, now.AddDate(0, 0, 200)))
	assert.Equal(t, 0, DailyGoalForDate(models.QuitPlan{}, now))
}

func TestEmptyPlan(t *testing.T) {
	var plan models.QuitPlan
	plan.StartDate = now

	assert.Equal(t, 1, TotalWeeks(plan))
	assert.Equal(t, 0, CurrentWeek(plan, now.AddDate(0, 0, 30)))
	assert.Equal(t, 0, TodaysGoal(plan, now))
	assert.Equal(t, 0.0, CurrentNicotineTarget(plan, now))
	assert.Equal(t, 0.0, Progress(plan, now.AddDate(0, 0, 30)))
}

func TestProgressAndDaysRemaining(t *testing.T) {
	plan := BuildPlan(nil, 200, 50, now.AddDate(0, 0, 60), now)

	assert.Equal(t, 0.0, Progress(plan, now))
	assert.InDelta(t, 0.5, Progress(plan, now.AddDate(0, 0, 28)), 1e-9)
	assert.InDelta(t, 7.0/8.0, Progress(plan, now.AddDate(0, 0, 365)), 1e-9)

	assert.Equal(t, 60, DaysRemaining(plan, now))
	assert.Equal(t, 30, DaysRemaining(plan, now.AddDate(0, 0, 30)))
	assert.Equal(t, 0, DaysRemaining(plan, now.AddDate(0, 0, 90)))
}

func TestMoneySaved(t *testing.T) {
	assert.Equal(t, 0.0, MoneySaved(0, 0.075))
	assert.Equal(t, 0.0, MoneySaved(0, 123.45))
	assert.InDelta(t, 7.5, MoneySaved(100, 0.075), 1e-9)
	assert.Equal(t, 0.0, MoneySaved(100, 0))
}

func TestSchedule(t *testing.T) {
	plan := BuildPlan(nil, 10, 5, now.AddDate(0, 0, 28), now)
	rows := Schedule(plan, now.AddDate(0, 0, 8))

	require.Len(t, rows, 5)
	assert.Equal(t, 1, rows[0].Week)
	assert.True(t, rows[0].IsCompleted)
	assert.True(t, rows[1].IsCurrent)
	assert.False(t, rows[2].IsCurrent)
	assert.Equal(t, 6, rows[1].PuffTarget)
	assert.Equal(t, now.AddDate(0, 0, 7).Truncate(24*time.Hour), rows[1].StartsOn)
	assert.Equal(t, 0, rows[4].PuffTarget)
	assert.Equal(t, 0.0, rows[4].NicotineMg)
}
