package constants

import "time"

const (
	AppName           = "puffless"
	DefaultConfigPath = "~/.config/puffless/puffless.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Store kinds
	StoreSQLite = "sqlite"
	StoreJSON   = "json"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "puffless-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "puffless-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.puffless"
	ReengagementAfter      = 72 * time.Hour

	// Plan generation
	EaseOutExponent = 0.7
	DaysPerWeek     = 7
	HoursPerMonth   = 720

	// Logging defaults
	DefaultMood = 3
	MinMood     = 1
	MaxMood     = 5

	MinIntensity = 1
	MaxIntensity = 5
)

// StandardNicotineLevels are the concentrations (mg) a step-down schedule may use, strongest first.
var StandardNicotineLevels = []float64{50, 35, 20, 10, 5, 3, 0}
