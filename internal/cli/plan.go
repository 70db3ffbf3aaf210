package cli

import (
	"fmt"

	"github.com/julianstephens/puffless/internal/planner"
	"github.com/julianstephens/puffless/internal/utils"
)

type PlanCmd struct{}

func (c *PlanCmd) Run(ctx *Context) error {
	state, err := ctx.Tracker.State()
	if err != nil {
		return onboardingHint(err)
	}
	now := ctx.Tracker.Now()

	printHeader(fmt.Sprintf("Quit plan: %s to %s", utils.DayKey(state.Plan.StartDate), utils.DayKey(state.Plan.TargetEndDate)))
	printField("Methods", formatMethods(state.Plan.ActiveMethods))
	printField("Progress", fmt.Sprintf("%s, %d days remaining", formatPercent(planner.Progress(state.Plan, now)), planner.DaysRemaining(state.Plan, now)))
	fmt.Println()

	fmt.Printf("  %-6s %-12s %-12s %s\n", "Week", "Starts", "Puffs/day", "Nicotine")
	for _, row := range planner.Schedule(state.Plan, now) {
		line := fmt.Sprintf("  %-6d %-12s %-12d %s", row.Week, utils.DayKey(row.StartsOn), row.PuffTarget, formatMg(row.NicotineMg))
		switch {
		case row.IsCurrent:
			fmt.Println(headerStyle.Render(line + "  ← this week"))
		case row.IsCompleted:
			fmt.Println(mutedStyle.Render(line))
		default:
			fmt.Println(line)
		}
	}
	return nil
}
