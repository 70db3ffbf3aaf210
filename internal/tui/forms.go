package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/puffless/internal/constants"
	"github.com/julianstephens/puffless/internal/models"
	"github.com/julianstephens/puffless/internal/utils"
)

type PuffFormModel struct {
	Puffs string
	Mood  string
	Notes string
}

// Update converts the answers into a puff count and log update.
func (fm *PuffFormModel) Update() (int, models.LogUpdate, error) {
	n, err := strconv.Atoi(strings.TrimSpace(fm.Puffs))
	if err != nil {
		return 0, models.LogUpdate{}, fmt.Errorf("invalid puff count %q", fm.Puffs)
	}
	u := models.LogUpdate{Notes: strings.TrimSpace(fm.Notes)}
	if fm.Mood != "" {
		mood, err := strconv.Atoi(fm.Mood)
		if err != nil {
			return 0, models.LogUpdate{}, fmt.Errorf("invalid mood %q", fm.Mood)
		}
		u.Mood = &mood
	}
	return n, u, nil
}

func NewPuffForm(fm *PuffFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Puffs").
				Value(&fm.Puffs).
				Validate(nonNegativeInt),
			huh.NewSelect[string]().
				Title("Mood").
				Options(
					huh.NewOption("Skip", ""),
					huh.NewOption("1 - Rough", "1"),
					huh.NewOption("2 - Low", "2"),
					huh.NewOption("3 - Okay", "3"),
					huh.NewOption("4 - Good", "4"),
					huh.NewOption("5 - Great", "5"),
				).
				Value(&fm.Mood),
			huh.NewInput().
				Title("Notes").
				Value(&fm.Notes),
		),
	)
}

type CravingFormModel struct {
	Intensity int
	Trigger   models.CravingTrigger
	Action    models.CravingAction
	Duration  string
	Notes     string
}

func NewCravingFormModel() *CravingFormModel {
	return &CravingFormModel{
		Intensity: 3,
		Trigger:   models.TriggerStress,
		Action:    models.ActionResisted,
	}
}

// DurationMinutes parses the optional duration. Empty means unknown.
func (fm *CravingFormModel) DurationMinutes() (*int, error) {
	s := strings.TrimSpace(fm.Duration)
	if s == "" {
		return nil, nil
	}
	d, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid duration %q", fm.Duration)
	}
	return &d, nil
}

func NewCravingForm(fm *CravingFormModel) *huh.Form {
	intensities := make([]huh.Option[int], 0, constants.MaxIntensity)
	for i := constants.MinIntensity; i <= constants.MaxIntensity; i++ {
		intensities = append(intensities, huh.NewOption(strconv.Itoa(i), i))
	}
	triggers := make([]huh.Option[models.CravingTrigger], len(models.CravingTriggers))
	for i, t := range models.CravingTriggers {
		triggers[i] = huh.NewOption(t.Info().Icon+" "+string(t), t)
	}
	actions := make([]huh.Option[models.CravingAction], len(models.CravingActions))
	for i, a := range models.CravingActions {
		actions[i] = huh.NewOption(a.Info().Icon+" "+string(a), a)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Intensity").
				Options(intensities...).
				Value(&fm.Intensity),
			huh.NewSelect[models.CravingTrigger]().
				Title("Trigger").
				Options(triggers...).
				Value(&fm.Trigger),
			huh.NewSelect[models.CravingAction]().
				Title("What did you do?").
				Options(actions...).
				Value(&fm.Action),
			huh.NewInput().
				Title("Duration (min)").
				Description("Leave empty if unsure").
				Value(&fm.Duration).
				Validate(optionalNonNegativeInt),
			huh.NewInput().
				Title("Notes").
				Value(&fm.Notes),
		),
	)
}

// OnboardingFields holds the onboarding answers as edited in the form.
type OnboardingFields struct {
	Device        models.VapeDeviceType
	Nicotine      string
	Puffs         string
	Methods       []models.QuitMethod
	Target        string
	Notifications models.NotificationPreference
	QuietStart    string
	QuietEnd      string
	CostPerPod    string
	PuffsPerPod   string
}

func NewOnboardingFields(in models.OnboardingInput) *OnboardingFields {
	return &OnboardingFields{
		Device:        in.DeviceType,
		Nicotine:      strconv.FormatFloat(in.NicotineLevel, 'f', -1, 64),
		Puffs:         strconv.Itoa(in.PuffsPerDay),
		Methods:       append([]models.QuitMethod(nil), in.Methods...),
		Target:        utils.DayKey(in.TargetQuitDate),
		Notifications: in.NotificationPreference,
		QuietStart:    strconv.Itoa(in.QuietHoursStart),
		QuietEnd:      strconv.Itoa(in.QuietHoursEnd),
		CostPerPod:    strconv.FormatFloat(in.CostPerPod, 'f', -1, 64),
		PuffsPerPod:   strconv.Itoa(in.PuffsPerPod),
	}
}

// Input parses the answers. Range checks are left to onboarding validation.
func (f *OnboardingFields) Input() (models.OnboardingInput, error) {
	in := models.OnboardingInput{
		DeviceType:             f.Device,
		Methods:                append([]models.QuitMethod(nil), f.Methods...),
		NotificationPreference: f.Notifications,
	}

	var err error
	if in.NicotineLevel, err = strconv.ParseFloat(strings.TrimSpace(f.Nicotine), 64); err != nil {
		return in, fmt.Errorf("invalid nicotine level %q", f.Nicotine)
	}
	if in.CostPerPod, err = strconv.ParseFloat(strings.TrimSpace(f.CostPerPod), 64); err != nil {
		return in, fmt.Errorf("invalid cost per pod %q", f.CostPerPod)
	}
	ints := []struct {
		name string
		src  string
		dst  *int
	}{
		{"puffs per day", f.Puffs, &in.PuffsPerDay},
		{"quiet hours start", f.QuietStart, &in.QuietHoursStart},
		{"quiet hours end", f.QuietEnd, &in.QuietHoursEnd},
		{"puffs per pod", f.PuffsPerPod, &in.PuffsPerPod},
	}
	for _, v := range ints {
		if *v.dst, err = strconv.Atoi(strings.TrimSpace(v.src)); err != nil {
			return in, fmt.Errorf("invalid %s %q", v.name, v.src)
		}
	}
	if in.TargetQuitDate, err = utils.ParseDay(strings.TrimSpace(f.Target)); err != nil {
		return in, err
	}
	return in, nil
}

func NewOnboardingForm(f *OnboardingFields) *huh.Form {
	devices := make([]huh.Option[models.VapeDeviceType], len(models.DeviceTypes))
	for i, d := range models.DeviceTypes {
		devices[i] = huh.NewOption(d.Info().Icon+" "+string(d), d)
	}
	methods := make([]huh.Option[models.QuitMethod], len(models.QuitMethods))
	for i, m := range models.QuitMethods {
		methods[i] = huh.NewOption(m.Info().Icon+" "+string(m), m)
	}
	prefs := make([]huh.Option[models.NotificationPreference], len(models.NotificationPreferences))
	for i, p := range models.NotificationPreferences {
		prefs[i] = huh.NewOption(string(p), p)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.VapeDeviceType]().
				Title("What do you vape with?").
				Options(devices...).
				Value(&f.Device),
			huh.NewInput().
				Title("Nicotine strength (mg)").
				Value(&f.Nicotine).
				Validate(nonNegativeFloat),
			huh.NewInput().
				Title("Puffs per day").
				Description("A rough guess is fine").
				Value(&f.Puffs).
				Validate(nonNegativeInt),
		),
		huh.NewGroup(
			huh.NewMultiSelect[models.QuitMethod]().
				Title("How do you want to quit?").
				Options(methods...).
				Value(&f.Methods).
				Validate(func(v []models.QuitMethod) error {
					if len(v) == 0 {
						return fmt.Errorf("select at least one method")
					}
					return nil
				}),
			huh.NewInput().
				Title("Target quit date (YYYY-MM-DD)").
				Value(&f.Target).
				Validate(func(s string) error {
					_, err := utils.ParseDay(strings.TrimSpace(s))
					return err
				}),
		),
		huh.NewGroup(
			huh.NewSelect[models.NotificationPreference]().
				Title("Notifications").
				Options(prefs...).
				Value(&f.Notifications),
			huh.NewInput().
				Title("Quiet hours start (0-23)").
				Value(&f.QuietStart).
				Validate(hour),
			huh.NewInput().
				Title("Quiet hours end (0-23)").
				Value(&f.QuietEnd).
				Validate(hour),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Cost per pod").
				Value(&f.CostPerPod).
				Validate(nonNegativeFloat),
			huh.NewInput().
				Title("Puffs per pod").
				Value(&f.PuffsPerPod).
				Validate(nonNegativeInt),
		),
	)
}

func nonNegativeInt(s string) error {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number")
	}
	if i < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func optionalNonNegativeInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return nonNegativeInt(s)
}

func nonNegativeFloat(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if f < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}

func hour(s string) error {
	h, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || !utils.ValidateHour(h) {
		return fmt.Errorf("enter an hour between 0 and 23")
	}
	return nil
}
