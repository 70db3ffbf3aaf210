// Package export writes records as CSV for spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/julianstephens/puffless/internal/models"
)

var (
	DailyLogHeader = []string{"Date", "Puffs", "Goal", "Goal Met", "Mood", "Nicotine (mg)"}
	CravingHeader  = []string{"Timestamp", "Intensity", "Trigger", "Action", "Duration (min)", "Notes"}
)

// DailyLogs writes one row per log, oldest day first. The input is not reordered.
func DailyLogs(w io.Writer, logs []models.DailyLog) error {
	sorted := append([]models.DailyLog(nil), logs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	cw := csv.NewWriter(w)
	if err := cw.Write(DailyLogHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, l := range sorted {
		row := []string{
			l.Date,
			strconv.Itoa(l.PuffCount),
			strconv.Itoa(l.DailyGoal),
			strconv.FormatBool(l.GoalMet),
			strconv.Itoa(l.Mood),
			formatMg(l.NicotineStrength),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write log %s: %w", l.Date, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Cravings writes one row per craving, oldest first. An unknown duration is left empty.
func Cravings(w io.Writer, cravings []models.Craving) error {
	sorted := append([]models.Craving(nil), cravings...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })

	cw := csv.NewWriter(w)
	if err := cw.Write(CravingHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, c := range sorted {
		duration := ""
		if c.DurationMinutes != nil {
			duration = strconv.Itoa(*c.DurationMinutes)
		}
		row := []string{
			c.Timestamp.Format(time.RFC3339),
			strconv.Itoa(c.Intensity),
			string(c.Trigger),
			string(c.Action),
			duration,
			c.Notes,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write craving %s: %w", c.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatMg prints whole milligrams without a decimal point.
func formatMg(mg float64) string {
	return strconv.FormatFloat(mg, 'f', -1, 64)
}
