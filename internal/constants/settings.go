package constants

const (
	// General Settings
	SettingTimezone       = "timezone"
	SettingWaterGoalMl    = "water_goal_ml"
	SettingShowBlended    = "show_blended_score"
	SettingShoppingDays   = "shopping_default_days"
	SettingMirrorUserID   = "mirror_user_id"
	SettingLastSyncedAt   = "last_synced_at"
	SettingLastModifiedAt = "last_modified_at"

	// Default Settings Values
	DefaultTimezone     = "Local" // Use system local timezone by default
	DefaultShowBlended  = true
	DefaultShoppingDays = 7
)
