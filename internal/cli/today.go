package cli

import (
	"fmt"

	"github.com/julianstephens/puffless/internal/constants"
	"github.com/julianstephens/puffless/internal/utils"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	snap, err := ctx.Tracker.Snapshot()
	if err != nil {
		return onboardingHint(err)
	}

	printHeader(fmt.Sprintf("Today, %s (week %d of %d)", utils.DayKey(snap.Now), snap.Summary.CurrentWeek, snap.Summary.TotalWeeks))
	if snap.Today != nil {
		printField("Puffs", formatGoal(*snap.Today))
		printField("Nicotine", formatMg(snap.Today.NicotineStrength))
		printField("Mood", fmt.Sprintf("%d/%d", snap.Today.Mood, constants.MaxMood))
		if snap.Today.Notes != "" {
			printField("Notes", snap.Today.Notes)
		}
	} else {
		printField("Puffs", fmt.Sprintf("0 / %d puffs", snap.Summary.TodaysGoal))
		printField("Nicotine target", formatMg(snap.Summary.NicotineTarget))
	}
	printField("Streak", fmt.Sprintf("%d days", snap.Summary.Streak))

	if len(snap.TodayCravings) == 0 {
		fmt.Println()
		fmt.Println(mutedStyle.Render("No cravings logged today."))
		return nil
	}

	fmt.Println()
	printHeader(fmt.Sprintf("Cravings (%d)", len(snap.TodayCravings)))
	for _, cr := range snap.TodayCravings {
		fmt.Printf("  %s  %s %-12s intensity %d  %s %s  %s\n",
			cr.Timestamp.Format(constants.TimeFormat),
			cr.Trigger.Info().Icon, cr.Trigger,
			cr.Intensity,
			cr.Action.Info().Icon, cr.Action,
			formatDuration(cr.DurationMinutes))
	}
	return nil
}
