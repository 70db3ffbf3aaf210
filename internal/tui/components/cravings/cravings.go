package cravings

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/puffless/internal/constants"
	"github.com/julianstephens/puffless/internal/models"
)

type Item struct {
	Craving models.Craving
}

func (i Item) Title() string {
	c := i.Craving
	return fmt.Sprintf("%s %s · intensity %d", c.Trigger.Info().Icon, c.Trigger, c.Intensity)
}

func (i Item) Description() string {
	c := i.Craving
	desc := fmt.Sprintf("%s | %s %s", c.Timestamp.Format(constants.TimeFormat), c.Action.Info().Icon, c.Action)
	if c.DurationMinutes != nil {
		desc += fmt.Sprintf(" | %d min", *c.DurationMinutes)
	}
	if c.Notes != "" {
		desc += " | " + c.Notes
	}
	return desc
}

func (i Item) FilterValue() string { return string(i.Craving.Trigger) }

type Model struct {
	list list.Model
}

func New(cravings []models.Craving, width, height int) Model {
	l := list.New(items(cravings), list.NewDefaultDelegate(), width, height)
	l.Title = "Today's cravings"
	l.SetShowHelp(false) // We handle help globally in the main model
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("craving", "cravings")
	return Model{list: l}
}

// items lists newest first.
func items(cravings []models.Craving) []list.Item {
	out := make([]list.Item, len(cravings))
	for i, c := range cravings {
		out[len(cravings)-1-i] = Item{Craving: c}
	}
	return out
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "No cravings logged today. Press 'c' to log one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// SetCravings replaces the list with cravings given in ascending time order.
func (m *Model) SetCravings(cravings []models.Craving) {
	m.list.SetItems(items(cravings))
}

// Len returns the number of listed cravings.
func (m Model) Len() int {
	return len(m.list.Items())
}
