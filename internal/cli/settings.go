package cli

import (
	"fmt"

	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/notifier"
	"github.com/julianstephens/puffless/internal/utils"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	state, err := ctx.Tracker.State()
	if err != nil {
		return onboardingHint(err)
	}
	p := state.Profile

	printHeader("Profile")
	printField("Device", fmt.Sprintf("%s %s", p.DeviceType.Info().Icon, p.DeviceType))
	printField("Starting nicotine", formatMg(p.StartingNicotineLevel))
	printField("Starting puffs/day", p.StartingPuffsPerDay)
	printField("Methods", formatMethods(p.SelectedMethods))
	printField("Target quit date", utils.DayKey(p.TargetQuitDate))
	printField("Cost per pod", formatMoney(p.CostPerPod))
	printField("Puffs per pod", p.PuffsPerPod)
	fmt.Println()

	printHeader("Notifications")
	printField("Preference", p.NotificationPreference)
	printField("Quiet hours", fmt.Sprintf("%02d:00 - %02d:00", p.QuietHoursStart, p.QuietHoursEnd))
	reminders := notifier.PlanReminders(p.NotificationPreference, p.QuietHoursStart, p.QuietHoursEnd)
	if len(reminders) == 0 {
		printField("Reminders", "milestones only")
	}
	for _, r := range reminders {
		when := fmt.Sprintf("daily at %02d:00", r.Hour)
		if !r.Daily() {
			when = fmt.Sprintf("after %s without activity", r.After)
		}
		printField(r.Title, when)
	}
	return nil
}

type SettingsSetCmd struct {
	Notifications *string `help:"Notification preference (often, essentials, milestones)."`
	QuietStart    *int    `help:"Hour quiet hours begin (0-23)."`
	QuietEnd      *int    `help:"Hour quiet hours end (0-23)."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	state, err := ctx.Tracker.State()
	if err != nil {
		return onboardingHint(err)
	}
	p := state.Profile

	pref := p.NotificationPreference
	quietStart, quietEnd := p.QuietHoursStart, p.QuietHoursEnd
	updated := false
	if c.Notifications != nil {
		parsed, err := models.ParseNotificationPreference(*c.Notifications)
		if err != nil {
			return err
		}
		pref = parsed
		updated = true
	}
	if c.QuietStart != nil {
		quietStart = *c.QuietStart
		updated = true
	}
	if c.QuietEnd != nil {
		quietEnd = *c.QuietEnd
		updated = true
	}

	if !updated {
		fmt.Println("No changes specified. Use 'puffless settings show' to view settings or flags to update them.")
		return nil
	}
	if _, err := ctx.Tracker.UpdateNotificationSettings(pref, quietStart, quietEnd); err != nil {
		return err
	}
	fmt.Println("Settings updated successfully.")
	return nil
}
