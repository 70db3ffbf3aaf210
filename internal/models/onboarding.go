package models

import (
	"time"

	"github.com/julianstephens/puffless/internal/constants"
)

// OnboardingInput is everything the user answers before a plan exists.
type OnboardingInput struct {
	DeviceType             VapeDeviceType
	NicotineLevel          float64
	PuffsPerDay            int
	Methods                []QuitMethod
	TargetQuitDate         time.Time
	NotificationPreference NotificationPreference
	QuietHoursStart        int
	QuietHoursEnd          int
	CostPerPod             float64
	PuffsPerPod            int
}

// DefaultOnboardingInput returns the answers pre-filled in the onboarding flow.
func DefaultOnboardingInput(now time.Time) OnboardingInput {
	return OnboardingInput{
		DeviceType:             VapeDeviceType(constants.DefaultDeviceType),
		NicotineLevel:          constants.DefaultNicotineLevel,
		PuffsPerDay:            constants.DefaultPuffsPerDay,
		Methods:                []QuitMethod{QuitMethod(constants.DefaultMethod)},
		TargetQuitDate:         now.AddDate(0, 0, constants.DefaultQuitDays),
		NotificationPreference: NotificationPreference(constants.DefaultNotificationPref),
		QuietHoursStart:        constants.DefaultQuietHoursStart,
		QuietHoursEnd:          constants.DefaultQuietHoursEnd,
		CostPerPod:             constants.DefaultCostPerPod,
		PuffsPerPod:            constants.DefaultPuffsPerPod,
	}
}

// Profile builds the stored profile from the answers.
func (in OnboardingInput) Profile(now time.Time) UserProfile {
	return UserProfile{
		DeviceType:             in.DeviceType,
		StartingNicotineLevel:  in.NicotineLevel,
		StartingPuffsPerDay:    in.PuffsPerDay,
		SelectedMethods:        append([]QuitMethod(nil), in.Methods...),
		TargetQuitDate:         in.TargetQuitDate,
		CreatedAt:              now,
		NotificationPreference: in.NotificationPreference,
		QuietHoursStart:        in.QuietHoursStart,
		QuietHoursEnd:          in.QuietHoursEnd,
		CostPerPod:             in.CostPerPod,
		PuffsPerPod:            in.PuffsPerPod,
	}
}
