package plan

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/utils"
)

var columns = []table.Column{
	{Title: "Week", Width: 6},
	{Title: "Starts", Width: 12},
	{Title: "Puffs/day", Width: 10},
	{Title: "Nicotine", Width: 10},
	{Title: "", Width: 10},
}

type Model struct {
	table    table.Model
	Schedule []models.WeekSchedule
}

func New(width, height int) Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(1, height)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	if width > 0 {
		t.SetWidth(width)
	}
	return Model{table: t}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.Schedule) == 0 {
		return "No quit plan yet. Run 'puffless init'."
	}
	return m.table.View()
}

func (m *Model) SetSize(width, height int) {
	m.table.SetWidth(width)
	m.table.SetHeight(max(1, height))
}

// SetSchedule replaces the rows and moves the cursor to the current week.
func (m *Model) SetSchedule(schedule []models.WeekSchedule) {
	m.Schedule = schedule
	rows := make([]table.Row, len(schedule))
	current := 0
	for i, w := range schedule {
		status := ""
		switch {
		case w.IsCurrent:
			status = "← now"
			current = i
		case w.IsCompleted:
			status = "done"
		}
		rows[i] = table.Row{
			strconv.Itoa(w.Week),
			utils.DayKey(w.StartsOn),
			strconv.Itoa(w.PuffTarget),
			strconv.FormatFloat(w.NicotineMg, 'f', -1, 64) + " mg",
			status,
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(current)
}

// Cursor returns the highlighted row index.
func (m Model) Cursor() int {
	return m.table.Cursor()
}
