package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = m.viewToday()
	case StatePlan:
		content = docStyle.Render(m.planModel.View())
	case StateProgress:
		content = docStyle.Render(m.statsModel.View())
	case StateLogPuffs, StateLogCraving:
		content = docStyle.Render(m.form.View())
	}

	status := ""
	if m.errMsg != "" {
		status = errorStyle.Render(m.errMsg)
	} else if m.statusMsg != "" {
		status = statusStyle.Render(m.statusMsg)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Today", "Plan", "Progress"} {
		if m.activeTab() == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// activeTab maps form states back to the tab they were opened from.
func (m Model) activeTab() SessionState {
	if m.state >= tabCount {
		return m.formOrigin
	}
	return m.state
}

func (m Model) viewToday() string {
	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.todayModel.View(),
		"",
		m.cravingList.View(),
	))
}
