package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/puffless/internal/storage"
	"github.com/julianstephens/puffless/internal/utils"
)

type DebugCmd struct {
	DBPath   DebugDBPathCmd   `cmd:"" name:"db-path" help:"Show database path."`
	DumpPlan DebugDumpPlanCmd `cmd:"" help:"Dump the profile and quit plan as JSON."`
	DumpDay  DebugDumpDayCmd  `cmd:"" help:"Dump one day's log and cravings as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	return printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpPlanCmd struct{}

func (cmd *DebugDumpPlanCmd) Run(ctx *Context) error {
	state, err := ctx.Tracker.State()
	if err != nil {
		return onboardingHint(err)
	}
	return printJSON(state)
}

type DebugDumpDayCmd struct {
	Date string `arg:"" help:"Day to dump (YYYY-MM-DD or 'today')." default:"today"`
}

func (cmd *DebugDumpDayCmd) Run(ctx *Context) error {
	date := cmd.Date
	if date == "" || date == "today" {
		date = utils.DayKey(ctx.Tracker.Now())
	}
	day, err := utils.ParseDay(date)
	if err != nil {
		return err
	}

	log, err := ctx.Store.GetDailyLog(date)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("no log found for date: %s", date)
	}
	if err != nil {
		return fmt.Errorf("failed to get daily log: %w", err)
	}
	cravings, err := ctx.Tracker.CravingsForDay(day)
	if err != nil {
		return fmt.Errorf("failed to get cravings: %w", err)
	}

	return printJSON(map[string]any{
		"log":      log,
		"cravings": cravings,
	})
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}
