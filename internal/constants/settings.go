package constants

const (
	// Environment variables
	EnvConfig = "PUFFLESS_CONFIG"
	EnvStore  = "PUFFLESS_STORE"
	EnvDebug  = "PUFFLESS_DEBUG"

	// Default onboarding values
	DefaultDeviceType        = "Pod System"
	DefaultNicotineLevel     = 50.0
	DefaultPuffsPerDay       = 200
	DefaultMethod            = "Gradual Reduction"
	DefaultQuitDays          = 60
	DefaultNotificationPref  = "Just the essentials"
	DefaultQuietHoursStart   = 22
	DefaultQuietHoursEnd     = 8
	DefaultCostPerPod        = 15.0
	DefaultPuffsPerPod       = 200
	DefaultNRTDosageMg       = 21.0
	DefaultMorningReminderHr = 8
	DefaultEveningReminderHr = 20
)
