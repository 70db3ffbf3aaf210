package stats

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/puffless/internal/metrics"
	"github.com/julianstephens/puffless/internal/models"
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(20)

	unlockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type Model struct {
	viewport viewport.Model
	Summary  *metrics.Summary
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Summary == nil {
		return "No progress yet."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetSummary(s metrics.Summary) {
	m.Summary = &s
	m.Render()
}

func (m *Model) Render() {
	if m.Summary == nil {
		m.viewport.SetContent("No progress yet.")
		return
	}
	s := m.Summary

	var b strings.Builder
	field := func(label string, value any) {
		fmt.Fprintf(&b, "%s %v\n", labelStyle.Render(label), value)
	}

	b.WriteString(headingStyle.Render("Progress") + "\n")
	field("Plan", fmt.Sprintf("week %d of %d (%.0f%%)", s.CurrentWeek, s.TotalWeeks, s.PlanProgress*100))
	field("Days remaining", s.DaysRemaining)
	field("Streak", fmt.Sprintf("%d days", s.Streak))
	field("Goals met", fmt.Sprintf("%d of %d days", s.GoalsMet, s.DaysLogged))
	field("Puffs avoided", s.TotalPuffsAvoided)
	field("Money saved", fmt.Sprintf("$%.2f", s.MoneySaved))
	field("Cravings resisted", fmt.Sprintf("%d of %d (%.0f%%)", s.ResistedCravings, s.TotalCravings, s.ResistRate*100))
	if s.NRTDoses > 0 {
		field("NRT doses", s.NRTDoses)
	}
	if len(s.TopTriggers) > 0 {
		top := s.TopTriggers[0]
		field("Top trigger", fmt.Sprintf("%s %s (%d)", top.Trigger.Info().Icon, top.Trigger, top.Count))
	}

	var current models.MilestoneType
	for _, ms := range s.Milestones {
		if ms.Type != current {
			current = ms.Type
			b.WriteString("\n" + headingStyle.Render(fmt.Sprintf("%s %s milestones", current.Info().Icon, current)) + "\n")
		}
		line := fmt.Sprintf("%-8s %s", ms.Threshold, ms.Title)
		if ms.Unlocked {
			b.WriteString(unlockedStyle.Render("✓ "+line) + "\n")
		} else {
			b.WriteString(lockedStyle.Render("  "+line) + "\n")
		}
	}
	m.viewport.SetContent(b.String())
}
