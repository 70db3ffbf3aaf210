package cli

import (
	"errors"
	"fmt"

	perrors "github.com/julianstephens/puffless/internal/errors"
	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/planner"
	"github.com/julianstephens/puffless/internal/tracker"
	"github.com/julianstephens/puffless/internal/tui"
	"github.com/julianstephens/puffless/internal/utils"
)

type InitCmd struct {
	Force         bool     `help:"Discard existing data and start a new quit plan."`
	Interactive   bool     `short:"i" help:"Answer the onboarding questions in an interactive form."`
	Device        string   `help:"Vape device type (Disposable, Pod System, Mod/Tank, Other)." default:"Pod System"`
	Nicotine      float64  `help:"Current nicotine strength in mg." default:"50"`
	Puffs         int      `help:"Current puffs per day." default:"200"`
	Method        []string `help:"Quit method, repeatable (gradual-reduction, trigger-tracking, cold-turkey, nrt-tracking, gamification)." default:"Gradual Reduction"`
	Target        string   `help:"Target quit date (YYYY-MM-DD). Defaults to 60 days from today."`
	Notifications string   `help:"Notification preference (often, essentials, milestones)." default:"essentials"`
	QuietStart    int      `help:"Hour quiet hours begin (0-23)." default:"22"`
	QuietEnd      int      `help:"Hour quiet hours end (0-23)." default:"8"`
	CostPerPod    float64  `help:"Price of one pod or disposable." default:"15"`
	PuffsPerPod   int      `help:"Puffs one pod or disposable lasts." default:"200"`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	onboarded, err := ctx.Store.IsOnboarded()
	if err != nil {
		return err
	}
	if onboarded && !c.Force {
		return perrors.WithHint(tracker.ErrAlreadyOnboarded, "'puffless init --force' backs up and replaces the current plan")
	}
	if onboarded {
		ctx.PerformAutomaticBackup()
	}

	in, err := c.input(ctx)
	if err != nil {
		return err
	}
	if c.Interactive {
		fields := tui.NewOnboardingFields(in)
		if err := tui.NewOnboardingForm(fields).Run(); err != nil {
			return fmt.Errorf("onboarding cancelled: %w", err)
		}
		if in, err = fields.Input(); err != nil {
			return err
		}
	}

	state, err := ctx.Tracker.Onboard(in, c.Force)
	if errors.Is(err, tracker.ErrAlreadyOnboarded) {
		return perrors.WithHint(err, "'puffless init --force' backs up and replaces the current plan")
	}
	if err != nil {
		return err
	}

	fmt.Printf("Initialized puffless storage at: %s\n\n", ctx.Store.GetConfigPath())
	printHeader("Your quit plan")
	printField("Methods", formatMethods(state.Plan.ActiveMethods))
	printField("Weeks", planner.TotalWeeks(state.Plan))
	printField("Target quit date", utils.DayKey(state.Plan.TargetEndDate))
	printField("Goal this week", fmt.Sprintf("%d puffs/day", planner.TodaysGoal(state.Plan, ctx.Tracker.Now())))
	printField("Nicotine this week", formatMg(planner.CurrentNicotineTarget(state.Plan, ctx.Tracker.Now())))
	fmt.Println()
	fmt.Println(mutedStyle.Render("Run 'puffless plan' for the full schedule."))
	return nil
}

// input converts the flags into onboarding answers. Empty string flags keep
// the onboarding defaults.
func (c *InitCmd) input(ctx *Context) (models.OnboardingInput, error) {
	in := models.DefaultOnboardingInput(ctx.Tracker.Now())

	if c.Device != "" {
		device, err := models.ParseDeviceType(c.Device)
		if err != nil {
			return in, err
		}
		in.DeviceType = device
	}

	if len(c.Method) > 0 {
		in.Methods = nil
		for _, s := range c.Method {
			m, err := models.ParseQuitMethod(s)
			if err != nil {
				return in, err
			}
			in.Methods = append(in.Methods, m)
		}
	}

	if c.Notifications != "" {
		pref, err := models.ParseNotificationPreference(c.Notifications)
		if err != nil {
			return in, err
		}
		in.NotificationPreference = pref
	}

	if c.Target != "" {
		target, err := utils.ParseDay(c.Target)
		if err != nil {
			return in, err
		}
		in.TargetQuitDate = target
	}

	in.NicotineLevel = c.Nicotine
	in.PuffsPerDay = c.Puffs
	in.QuietHoursStart = c.QuietStart
	in.QuietHoursEnd = c.QuietEnd
	in.CostPerPod = c.CostPerPod
	in.PuffsPerPod = c.PuffsPerPod
	return in, nil
}
