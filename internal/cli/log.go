package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/puffless/internal/constants"
	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/tracker"
	"github.com/julianstephens/puffless/internal/utils"
)

type LogCmd struct {
	Puffs    int      `arg:"" help:"Number of puffs to add to today's count."`
	Mood     *int     `help:"Mood from 1 (rough) to 5 (great)."`
	Notes    string   `help:"Notes for the day. Replaces earlier notes."`
	Nicotine *float64 `help:"Nicotine strength used today in mg. Defaults to the plan target."`
}

func (c *LogCmd) Run(ctx *Context) error {
	log, err := ctx.Tracker.LogPuffs(c.Puffs, models.LogUpdate{
		Mood:             c.Mood,
		Notes:            c.Notes,
		NicotineStrength: c.Nicotine,
	})
	if err != nil {
		return onboardingHint(err)
	}

	fmt.Printf("✓ Logged %d puffs for %s\n", c.Puffs, log.Date)
	printField("Today", formatGoal(log))
	if !log.GoalMet {
		fmt.Println(mutedStyle.Render("Over today's goal. Tomorrow is a fresh start."))
	}
	return nil
}

type CravingCmd struct {
	Intensity int    `short:"n" help:"Intensity from 1 (mild) to 5 (overwhelming)." default:"3"`
	Trigger   string `short:"t" help:"What triggered it (stress, boredom, social, habit, after-meal, anxiety, celebration, other)." default:"other"`
	Action    string `short:"a" help:"What you did (vaped, resisted, nrt, breathing, other)." default:"resisted"`
	Duration  *int   `help:"How long the craving lasted in minutes."`
	Notes     string `help:"Free-form notes."`
	At        string `help:"When it happened (HH:MM today). Defaults to now."`
}

func (c *CravingCmd) Run(ctx *Context) error {
	trigger, err := models.ParseCravingTrigger(c.Trigger)
	if err != nil {
		return err
	}
	action, err := models.ParseCravingAction(c.Action)
	if err != nil {
		return err
	}
	var at time.Time
	if c.At != "" {
		if at, err = timeToday(ctx.Tracker.Now(), c.At); err != nil {
			return err
		}
	}

	craving, err := ctx.Tracker.LogCraving(tracker.CravingInput{
		Timestamp:       at,
		Intensity:       c.Intensity,
		Trigger:         trigger,
		Action:          action,
		DurationMinutes: c.Duration,
		Notes:           c.Notes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("✓ Craving logged at %s: %s %s, intensity %d\n",
		craving.Timestamp.Format(constants.TimeFormat), trigger.Info().Icon, trigger, craving.Intensity)
	if action.Resisted() {
		fmt.Println(goodStyle.Render("Nice work riding it out."))
	}
	fmt.Println(mutedStyle.Render("Tip: " + trigger.Suggestion()))
	return nil
}

type NRTCmd struct {
	Type   string  `arg:"" help:"Product type (patch, gum, lozenge, other)."`
	Dosage float64 `arg:"" optional:"" help:"Dose in mg." default:"21"`
	Date   string  `help:"Day of the dose (YYYY-MM-DD). Defaults to now."`
	Notes  string  `help:"Free-form notes."`
}

func (c *NRTCmd) Run(ctx *Context) error {
	typ, err := models.ParseNRTType(c.Type)
	if err != nil {
		return err
	}
	var date time.Time
	if c.Date != "" {
		if date, err = utils.ParseDay(c.Date); err != nil {
			return err
		}
	}

	entry, err := ctx.Tracker.LogNRT(typ, c.Dosage, date, c.Notes)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Logged %s %s (%s) on %s\n", typ.Info().Icon, typ, formatMg(entry.DosageMg), utils.DayKey(entry.Date))
	return nil
}

// timeToday parses HH:MM as a wall-clock time on now's day.
func timeToday(now time.Time, hhmm string) (time.Time, error) {
	t, err := time.ParseInLocation(constants.TimeFormat, hhmm, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM)", hhmm)
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}
