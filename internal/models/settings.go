package models

// Settings represents application-wide settings
type Settings struct {
	Timezone            string `json:"timezone"`              // IANA timezone name, or "Local" for the system timezone
	WaterGoalMl         int    `json:"water_goal_ml"`         // daily water goal in millilitres
	ShowBlendedScore    bool   `json:"show_blended_score"`    // whether progress views mix habits into the day score
	ShoppingDefaultDays int    `json:"shopping_default_days"` // days covered by `shopping generate` without --to
	MirrorUserID        string `json:"mirror_user_id"`        // document key on the remote mirror
	LastSyncedAt        string `json:"last_synced_at"`        // RFC3339 time of the last successful sync
	LastModifiedAt      string `json:"last_modified_at"`      // RFC3339 time of the last local write
}
