// Package metrics derives streaks, savings, craving statistics and milestone
// status from persisted logs. Nothing here is stored; every value is
// recomputed from the records passed in.
package metrics

import (
	"sort"
	"time"

	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/utils"
)

// Streak counts consecutive goal-met days ending today. A missing day or a
// day over goal ends the scan.
func Streak(logs []models.DailyLog, now time.Time) int {
	byDay := make(map[string]models.DailyLog, len(logs))
	for _, log := range logs {
		byDay[log.Date] = log
	}

	count := 0
	day := utils.StartOfDay(now)
	for {
		log, ok := byDay[utils.DayKey(day)]
		if !ok || !log.GoalMet {
			return count
		}
		count++
		day = utils.AddDays(day, -1)
	}
}

// TotalPuffsAvoided sums the reduction of every logged day against the
// pre-quit baseline, not against the day's tapering goal.
func TotalPuffsAvoided(profile models.UserProfile, logs []models.DailyLog) int {
	total := 0
	for _, log := range logs {
		total += max(0, profile.StartingPuffsPerDay-log.PuffCount)
	}
	return total
}

// ResistRate is the percentage of cravings not answered by vaping, or 0 with no cravings.
func ResistRate(cravings []models.Craving) float64 {
	if len(cravings) == 0 {
		return 0
	}
	return float64(ResistedCount(cravings)) / float64(len(cravings)) * 100
}

// ResistedCount counts cravings whose action was anything but vaping.
func ResistedCount(cravings []models.Craving) int {
	n := 0
	for _, c := range cravings {
		if c.Action.Resisted() {
			n++
		}
	}
	return n
}

// GoalsMetCount counts logged days at or under goal.
func GoalsMetCount(logs []models.DailyLog) int {
	n := 0
	for _, log := range logs {
		if log.GoalMet {
			n++
		}
	}
	return n
}

// LastNDays returns the logs dated within the n days before now (and today),
// oldest first.
func LastNDays(logs []models.DailyLog, n int, now time.Time) []models.DailyLog {
	cutoff := utils.DayKey(utils.AddDays(utils.StartOfDay(now), -n))
	var out []models.DailyLog
	for _, log := range logs {
		if log.Date >= cutoff {
			out = append(out, log)
		}
	}
	SortLogs(out)
	return out
}

// SortLogs orders logs by ascending day. Day keys sort lexically.
func SortLogs(logs []models.DailyLog) {
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date < logs[j].Date
	})
}

// CravingsOnDay filters cravings whose timestamp falls on the local calendar day of `day`.
func CravingsOnDay(cravings []models.Craving, day time.Time) []models.Craving {
	key := utils.DayKey(day)
	var out []models.Craving
	for _, c := range cravings {
		if utils.DayKey(c.Timestamp.In(day.Location())) == key {
			out = append(out, c)
		}
	}
	return out
}

// TriggerCount is the number of cravings logged for one trigger.
type TriggerCount struct {
	Trigger models.CravingTrigger `json:"trigger"`
	Count   int                   `json:"count"`
}

// TriggerBreakdown counts cravings per trigger, most frequent first.
// Ties keep the canonical trigger order.
func TriggerBreakdown(cravings []models.Craving) []TriggerCount {
	counts := make(map[models.CravingTrigger]int)
	for _, c := range cravings {
		counts[c.Trigger]++
	}

	var out []TriggerCount
	for _, tr := range models.CravingTriggers {
		if counts[tr] > 0 {
			out = append(out, TriggerCount{Trigger: tr, Count: counts[tr]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
