package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/tracker"
	"github.com/julianstephens/puffless/internal/tui/components/cravings"
	"github.com/julianstephens/puffless/internal/tui/components/plan"
	"github.com/julianstephens/puffless/internal/tui/components/stats"
	"github.com/julianstephens/puffless/internal/tui/components/today"
)

type SessionState int

const (
	StateToday SessionState = iota
	StatePlan
	StateProgress
	StateLogPuffs
	StateLogCraving
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

// todayHeight is the fixed height of the today summary above the craving list.
const todayHeight = 10

type Model struct {
	tracker     *tracker.Tracker
	state       SessionState
	formOrigin  SessionState // Tab to return to when a form closes
	keys        KeyMap
	help        help.Model
	todayModel  today.Model
	cravingList cravings.Model
	planModel   plan.Model
	statsModel  stats.Model
	form        *huh.Form
	puffForm    *PuffFormModel
	cravingForm *CravingFormModel
	snapshot    *tracker.Snapshot
	statusMsg   string // Confirmation of the last action
	errMsg      string // Error from the last action or refresh
	quitting    bool
	width       int
	height      int
}

func NewModel(t *tracker.Tracker) Model {
	m := Model{
		tracker:     t,
		state:       StateToday,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		todayModel:  today.New(),
		cravingList: cravings.New(nil, 0, 0),
		planModel:   plan.New(0, 0),
		statsModel:  stats.New(0, 0),
	}
	m.refresh()
	return m
}

// refresh reloads the snapshot and pushes it into every component.
func (m *Model) refresh() {
	snap, err := m.tracker.Snapshot()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.snapshot = &snap
	m.todayModel.SetDay(snap.Today, snap.Summary.TodaysGoal, snap.Summary.NicotineTarget, snap.Summary.Streak, tip(snap))
	m.cravingList.SetCravings(snap.TodayCravings)
	m.planModel.SetSchedule(snap.Schedule)
	m.statsModel.SetSummary(snap.Summary)
}

// tip suggests a coping strategy for the latest craving today, falling back
// to the most frequent trigger overall.
func tip(snap tracker.Snapshot) string {
	if n := len(snap.TodayCravings); n > 0 {
		return snap.TodayCravings[n-1].Trigger.Suggestion()
	}
	if len(snap.Summary.TopTriggers) > 0 {
		return snap.Summary.TopTriggers[0].Trigger.Suggestion()
	}
	return models.TriggerOther.Suggestion()
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateToday {
		keys = append(keys, m.keys.AddPuff, m.keys.LogPuffs)
	}
	keys = append(keys, m.keys.Craving)
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}
	actions := []key.Binding{m.keys.AddPuff, m.keys.LogPuffs, m.keys.Craving}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
