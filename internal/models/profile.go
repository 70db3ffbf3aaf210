package models

import "time"

// UserProfile is created once at onboarding. Only the notification
// preference and quiet hours change afterwards.
type UserProfile struct {
	DeviceType             VapeDeviceType         `json:"deviceType"`
	StartingNicotineLevel  float64                `json:"startingNicotineLevel"` // mg
	StartingPuffsPerDay    int                    `json:"startingPuffsPerDay"`
	SelectedMethods        []QuitMethod           `json:"selectedMethods"`
	TargetQuitDate         time.Time              `json:"targetQuitDate"`
	CreatedAt              time.Time              `json:"createdAt"`
	NotificationPreference NotificationPreference `json:"notificationPreference"`
	QuietHoursStart        int                    `json:"quietHoursStart"` // hour 0-23
	QuietHoursEnd          int                    `json:"quietHoursEnd"`   // hour 0-23
	CostPerPod             float64                `json:"costPerPod"`
	PuffsPerPod            int                    `json:"puffsPerPod"`
}

// CostPerPuff is CostPerPod / PuffsPerPod, or 0 when PuffsPerPod is not positive.
func (p UserProfile) CostPerPuff() float64 {
	if p.PuffsPerPod <= 0 {
		return 0
	}
	return p.CostPerPod / float64(p.PuffsPerPod)
}

// HasMethod reports whether the user opted into m.
func (p UserProfile) HasMethod(m QuitMethod) bool {
	for _, sel := range p.SelectedMethods {
		if sel == m {
			return true
		}
	}
	return false
}
