package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

// DayPolicy selects how the streak tracker counts days between logins
type DayPolicy string

const (
	AppName            = "smokefree"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/smokefree"
	DefaultDBPath      = "~/.config/smokefree/smokefree.db"
	DefaultConfigFile  = "~/.config/smokefree/config.toml"
	Version            = "v0.3.0"

	// EnvDBConnection holds a PostgreSQL connection string kept out of config files
	EnvDBConnection = "SMOKEFREE_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Storage drivers
	DriverSQLite   = "sqlite"
	DriverJSON     = "json"
	DriverPostgres = "postgres"

	// Day policies
	DayPolicyCalendar DayPolicy = "calendar"
	DayPolicyRolling  DayPolicy = "rolling"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "smokefree-"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "smokefree-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.smokefree"

	// Refresh cadence for live counters
	FirstDayRefreshInterval = 100 * time.Millisecond
	RefreshInterval         = time.Second
)

// Session States. The first TabCount states are the tabbed views, in tab order.
const (
	StateDashboard SessionState = iota
	StateHealth
	StateProgress
	StateAchievements
	StateBreathe
	StateOnboarding
	StateLogCraving
	StateConfirmReset
)

// TabCount is the number of tabbed views in the TUI (Dashboard through Breathe)
const TabCount = 5
