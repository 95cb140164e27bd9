package settings

import (
	"fmt"

	"github.com/julianstephens/dietplan/internal/cli"
	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Timezone     *string `help:"IANA timezone name, or Local for the system timezone."`
	WaterGoal    *int    `help:"Daily water goal in millilitres."`
	Blended      *bool   `help:"Mix habits into the day score shown by progress views."`
	ShoppingDays *int    `help:"Days covered by 'shopping generate' without --to."`
	MirrorUser   *string `help:"Document key used on the remote mirror."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Water Goal:            %d ml\n", settings.WaterGoalMl)
		fmt.Printf("  Blended Day Score:     %v\n", settings.ShowBlendedScore)
		fmt.Printf("  Shopping Days:         %d\n", settings.ShoppingDefaultDays)
		fmt.Println("\nMirror Settings:")
		mirrorUser := settings.MirrorUserID
		if mirrorUser == "" {
			mirrorUser = "(not set)"
		}
		fmt.Printf("  Mirror User:           %s\n", mirrorUser)
		lastSync := settings.LastSyncedAt
		if lastSync == "" {
			lastSync = "never"
		}
		fmt.Printf("  Last Synced:           %s\n", lastSync)
		return nil
	}

	updated := false
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.WaterGoal != nil {
		if *c.WaterGoal < 1 {
			return fmt.Errorf("water goal must be at least 1 ml, got %d", *c.WaterGoal)
		}
		settings.WaterGoalMl = *c.WaterGoal
		if err := syncWaterItem(ctx, *c.WaterGoal); err != nil {
			return err
		}
		updated = true
	}
	if c.Blended != nil {
		settings.ShowBlendedScore = *c.Blended
		updated = true
	}
	if c.ShoppingDays != nil {
		if *c.ShoppingDays < 1 {
			return fmt.Errorf("shopping days must be at least 1, got %d", *c.ShoppingDays)
		}
		settings.ShoppingDefaultDays = *c.ShoppingDays
		updated = true
	}
	if c.MirrorUser != nil {
		settings.MirrorUserID = *c.MirrorUser
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}

// syncWaterItem keeps the water checklist item's max equal to the goal.
func syncWaterItem(ctx *cli.Context, goal int) error {
	items, err := ctx.Store.GetChecklistItems()
	if err != nil {
		return err
	}
	for _, item := range items {
		if item.Key != constants.WaterItemKey {
			continue
		}
		item.Max = float64(goal)
		return ctx.Store.SaveChecklistItem(item)
	}
	return nil
}
