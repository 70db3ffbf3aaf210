package cli

import (
	"fmt"

	"github.com/julianstephens/puffless/internal/models"
)

type ProgressCmd struct{}

func (c *ProgressCmd) Run(ctx *Context) error {
	snap, err := ctx.Tracker.Snapshot()
	if err != nil {
		return onboardingHint(err)
	}
	s := snap.Summary

	printHeader("Progress")
	printField("Plan", fmt.Sprintf("week %d of %d (%s)", s.CurrentWeek, s.TotalWeeks, formatPercent(s.PlanProgress)))
	printField("Days remaining", s.DaysRemaining)
	printField("Streak", fmt.Sprintf("%d days", s.Streak))
	printField("Goals met", fmt.Sprintf("%d of %d logged days", s.GoalsMet, s.DaysLogged))
	printField("Puffs avoided", s.TotalPuffsAvoided)
	printField("Money saved", formatMoney(s.MoneySaved))
	printField("Cravings resisted", fmt.Sprintf("%d of %d (%s)", s.ResistedCravings, s.TotalCravings, formatPercent(s.ResistRate)))
	if snap.Profile.HasMethod(models.MethodNRTTracking) || s.NRTDoses > 0 {
		printField("NRT doses", s.NRTDoses)
	}

	if len(s.TopTriggers) > 0 {
		fmt.Println()
		printHeader("Top triggers")
		for _, tc := range s.TopTriggers {
			fmt.Printf("  %s %-12s %d\n", tc.Trigger.Info().Icon, tc.Trigger, tc.Count)
		}
	}

	if len(snap.Recent) > 0 {
		fmt.Println()
		printHeader("Last 7 days")
		for _, l := range snap.Recent {
			fmt.Printf("  %s  %s\n", l.Date, formatGoal(l))
		}
	}
	return nil
}

type MilestonesCmd struct {
	All bool `help:"Include locked milestones."`
}

func (c *MilestonesCmd) Run(ctx *Context) error {
	snap, err := ctx.Tracker.Snapshot()
	if err != nil {
		return onboardingHint(err)
	}

	unlocked := 0
	for _, m := range snap.Summary.Milestones {
		if m.Unlocked {
			unlocked++
		}
	}
	printHeader(fmt.Sprintf("Milestones (%d of %d unlocked)", unlocked, len(snap.Summary.Milestones)))

	var current models.MilestoneType
	for _, m := range snap.Summary.Milestones {
		if !m.Unlocked && !c.All {
			continue
		}
		if m.Type != current {
			current = m.Type
			fmt.Printf("\n%s %s\n", current.Info().Icon, current)
		}
		line := fmt.Sprintf("  %-8s %-22s %s", m.Threshold, m.Title, m.Description)
		if m.Unlocked {
			fmt.Println(goodStyle.Render("✓ " + line))
		} else {
			fmt.Println(mutedStyle.Render("  " + line))
		}
	}
	return nil
}
