package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/tracker"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.setSize(msg.Width, msg.Height)
		return m, nil
	}

	switch m.state {
	case StateLogPuffs, StateLogCraving:
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab), key.Matches(msg, m.keys.Right):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab), key.Matches(msg, m.keys.Left):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.AddPuff) && m.state == StateToday:
			m.logPuffs(1, models.LogUpdate{})
			return m, nil
		case key.Matches(msg, m.keys.LogPuffs) && m.state == StateToday:
			m.puffForm = &PuffFormModel{}
			m.form = NewPuffForm(m.puffForm)
			m.formOrigin = m.state
			m.state = StateLogPuffs
			return m, m.form.Init()
		case key.Matches(msg, m.keys.Craving):
			m.cravingForm = NewCravingFormModel()
			m.form = NewCravingForm(m.cravingForm)
			m.formOrigin = m.state
			m.state = StateLogCraving
			return m, m.form.Init()
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.cravingList, cmd = m.cravingList.Update(msg)
	case StatePlan:
		m.planModel, cmd = m.planModel.Update(msg)
	case StateProgress:
		m.statsModel, cmd = m.statsModel.Update(msg)
	}
	return m, cmd
}

// updateForm drives the active huh form and applies it once completed.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.formOrigin
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == StateLogPuffs {
			m.submitPuffForm()
		} else {
			m.submitCravingForm()
		}
		m.state = m.formOrigin
	case huh.StateAborted:
		m.state = m.formOrigin
	}
	return m, cmd
}

func (m *Model) submitPuffForm() {
	n, u, err := m.puffForm.Update()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.logPuffs(n, u)
}

func (m *Model) logPuffs(n int, u models.LogUpdate) {
	log, err := m.tracker.LogPuffs(n, u)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.statusMsg = fmt.Sprintf("Logged %d puffs (%d / %d today)", n, log.PuffCount, log.DailyGoal)
	m.refresh()
}

func (m *Model) submitCravingForm() {
	fm := m.cravingForm
	duration, err := fm.DurationMinutes()
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	c, err := m.tracker.LogCraving(tracker.CravingInput{
		Intensity:       fm.Intensity,
		Trigger:         fm.Trigger,
		Action:          fm.Action,
		DurationMinutes: duration,
		Notes:           fm.Notes,
	})
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.statusMsg = fmt.Sprintf("Craving logged. Tip: %s", c.Trigger.Suggestion())
	m.refresh()
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// Tabs, status line and help take four rows
	contentHeight := max(1, height-4)
	contentWidth := max(1, width-4)
	m.todayModel.SetSize(contentWidth, todayHeight)
	m.cravingList.SetSize(contentWidth, max(1, contentHeight-todayHeight-1))
	m.planModel.SetSize(contentWidth, contentHeight-2)
	m.statsModel.SetSize(contentWidth, contentHeight-2)
}
