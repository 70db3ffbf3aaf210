package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/puffless/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(22)

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

func printHeader(title string) {
	fmt.Println(headerStyle.Render(title))
}

func printField(label string, value any) {
	fmt.Printf("%s %v\n", labelStyle.Render(label), value)
}

func formatMg(mg float64) string {
	return strconv.FormatFloat(mg, 'f', -1, 64) + " mg"
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func formatPercent(fraction float64) string {
	return fmt.Sprintf("%.0f%%", fraction*100)
}

func formatGoal(log models.DailyLog) string {
	status := fmt.Sprintf("%d / %d puffs", log.PuffCount, log.DailyGoal)
	if log.GoalMet {
		return goodStyle.Render(status + " ✓")
	}
	return badStyle.Render(fmt.Sprintf("%s (%d over)", status, log.PuffCount-log.DailyGoal))
}

func formatMethods(methods []models.QuitMethod) string {
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = m.Info().Icon + " " + string(m)
	}
	return strings.Join(names, ", ")
}

func formatDuration(minutes *int) string {
	if minutes == nil {
		return "-"
	}
	return fmt.Sprintf("%d min", *minutes)
}
