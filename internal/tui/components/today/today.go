package today

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/puffless/internal/models"
)

var (
	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	metStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	overStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	tipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

const maxBarWidth = 60

type Model struct {
	bar      progress.Model
	Log      *models.DailyLog
	Goal     int
	Nicotine float64
	Streak   int
	Tip      string
	width    int
}

func New() Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40
	return Model{bar: bar}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) SetSize(width, _ int) {
	m.width = width
	m.bar.Width = min(maxBarWidth, max(10, width-4))
}

// SetDay updates the figures shown for today. log is nil before the first puff is logged.
func (m *Model) SetDay(log *models.DailyLog, goal int, nicotine float64, streak int, tip string) {
	m.Log = log
	m.Goal = goal
	m.Nicotine = nicotine
	m.Streak = streak
	m.Tip = tip
}

// Puffs is today's count so far.
func (m Model) Puffs() int {
	if m.Log == nil {
		return 0
	}
	return m.Log.PuffCount
}

// Fraction is the share of today's goal used, capped at 1.
func (m Model) Fraction() float64 {
	puffs := m.Puffs()
	if m.Goal <= 0 {
		if puffs > 0 {
			return 1
		}
		return 0
	}
	return min(1, float64(puffs)/float64(m.Goal))
}

func (m Model) View() string {
	var b strings.Builder
	puffs := m.Puffs()

	b.WriteString(countStyle.Render(fmt.Sprintf("%d / %d puffs", puffs, m.Goal)))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(m.Fraction()))
	b.WriteString("\n\n")

	if puffs <= m.Goal {
		b.WriteString(metStyle.Render(fmt.Sprintf("%d puffs left for today", m.Goal-puffs)))
	} else {
		b.WriteString(overStyle.Render(fmt.Sprintf("%d over today's goal", puffs-m.Goal)))
	}
	b.WriteString("\n")

	nicotine := m.Nicotine
	if m.Log != nil {
		nicotine = m.Log.NicotineStrength
	}
	fmt.Fprintf(&b, "%s %s mg\n", labelStyle.Render("Nicotine"), strconv.FormatFloat(nicotine, 'f', -1, 64))
	fmt.Fprintf(&b, "%s %d days\n", labelStyle.Render("Streak"), m.Streak)
	if m.Log != nil {
		fmt.Fprintf(&b, "%s %d/5\n", labelStyle.Render("Mood"), m.Log.Mood)
	}
	if m.Tip != "" {
		b.WriteString("\n")
		b.WriteString(tipStyle.Render("Tip: " + m.Tip))
	}
	return b.String()
}
