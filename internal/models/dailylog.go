package models

import "github.com/julianstephens/puffless/internal/constants"

// DailyLog is the single record of a calendar day's usage.
type DailyLog struct {
	Date             string  `json:"date"` // YYYY-MM-DD format
	PuffCount        int     `json:"puffCount"`
	NicotineStrength float64 `json:"nicotineStrength"` // mg, snapshot of the plan target
	DailyGoal        int     `json:"dailyGoal"`        // snapshot of the plan goal
	GoalMet          bool    `json:"goalMet"`
	Mood             int     `json:"mood"` // 1-5
	Notes            string  `json:"notes"`
}

// LogUpdate carries the optional fields of a puff logging action.
type LogUpdate struct {
	Mood             *int
	Notes            string
	NicotineStrength *float64
}

// NewDailyLog creates the first log of a day.
func NewDailyLog(day string, puffs int, goal int, nicotine float64, u LogUpdate) DailyLog {
	log := DailyLog{
		Date:             day,
		PuffCount:        puffs,
		NicotineStrength: nicotine,
		DailyGoal:        goal,
		Mood:             constants.DefaultMood,
		Notes:            u.Notes,
	}
	if u.NicotineStrength != nil {
		log.NicotineStrength = *u.NicotineStrength
	}
	if u.Mood != nil {
		log.Mood = *u.Mood
	}
	log.UpdateGoalStatus()
	return log
}

// AddPuffs increments the day's count and applies any provided fields.
// Empty notes leave existing notes untouched.
func (l *DailyLog) AddPuffs(n int, u LogUpdate) {
	l.PuffCount += n
	if u.Mood != nil {
		l.Mood = *u.Mood
	}
	if u.Notes != "" {
		l.Notes = u.Notes
	}
	if u.NicotineStrength != nil {
		l.NicotineStrength = *u.NicotineStrength
	}
	l.UpdateGoalStatus()
}

// UpdateGoalStatus recomputes GoalMet from the current count.
func (l *DailyLog) UpdateGoalStatus() {
	l.GoalMet = l.PuffCount <= l.DailyGoal
}
