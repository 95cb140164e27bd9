package constants

import "time"

const (
	AppName            = "dietplan"
	DefaultKeyringUser = "mirror-connection"
	DefaultConfigPath  = "~/.config/dietplan/dietplan.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Environment variables
	EnvConfigPath = "DIETPLAN_CONFIG"
	EnvMirrorURL  = "DIETPLAN_MIRROR_URL"
	EnvUserID     = "DIETPLAN_USER"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "dietplan-"

	// Mirror constants
	MirrorTimeout = 15 * time.Second

	// Weekly prep days
	PrepDaySunday    = "sunday"
	PrepDayWednesday = "wednesday"

	// ActivityHabitPrefix marks habits generated from planned activities.
	ActivityHabitPrefix = "activity-"
)
