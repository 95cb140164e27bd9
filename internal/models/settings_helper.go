package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/dietplan/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := Settings{}

	for key, value := range data {
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingWaterGoalMl:
			if _, err := fmt.Sscanf(value, "%d", &settings.WaterGoalMl); err != nil {
				return Settings{}, fmt.Errorf("parsing water_goal_ml: %w", err)
			}
		case constants.SettingShowBlended:
			settings.ShowBlendedScore = value == "true"
		case constants.SettingShoppingDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.ShoppingDefaultDays); err != nil {
				return Settings{}, fmt.Errorf("parsing shopping_default_days: %w", err)
			}
		case constants.SettingMirrorUserID:
			settings.MirrorUserID = value
		case constants.SettingLastSyncedAt:
			settings.LastSyncedAt = value
		case constants.SettingLastModifiedAt:
			settings.LastModifiedAt = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingTimezone:       settings.Timezone,
		constants.SettingWaterGoalMl:    strconv.Itoa(settings.WaterGoalMl),
		constants.SettingShowBlended:    strconv.FormatBool(settings.ShowBlendedScore),
		constants.SettingShoppingDays:   strconv.Itoa(settings.ShoppingDefaultDays),
		constants.SettingMirrorUserID:   settings.MirrorUserID,
		constants.SettingLastSyncedAt:   settings.LastSyncedAt,
		constants.SettingLastModifiedAt: settings.LastModifiedAt,
	}
}

// DefaultSettings returns the settings written by a fresh init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:            constants.DefaultTimezone,
		WaterGoalMl:         constants.DefaultWaterGoalMl,
		ShowBlendedScore:    constants.DefaultShowBlended,
		ShoppingDefaultDays: constants.DefaultShoppingDays,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.WaterGoalMl == 0 {
		settings.WaterGoalMl = constants.DefaultWaterGoalMl
	}
	if settings.ShoppingDefaultDays == 0 {
		settings.ShoppingDefaultDays = constants.DefaultShoppingDays
	}
}
