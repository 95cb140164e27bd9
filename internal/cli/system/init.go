package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/dietplan/internal/cli"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/seed"
	"github.com/julianstephens/dietplan/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing data before initialization."`
	Source string `help:"Path of a JSON or SQLite store to copy data from."`
	NoSeed bool   `help:"Do not add the starter recipes, ingredients and checklist."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			// Close first to prevent file locking issues
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing data at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized dietplan storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
		return nil
	}

	if c.NoSeed {
		return nil
	}
	seeded, err := seedIfEmpty(ctx.Store)
	if err != nil {
		return fmt.Errorf("failed to add starter data: %w", err)
	}
	if seeded {
		fmt.Println("Added starter recipes, ingredients, activities and checklist items.")
	}
	return nil
}

// seedIfEmpty writes the starter document when the store has neither
// checklist items nor recipes.
func seedIfEmpty(store storage.Provider) (bool, error) {
	data, err := store.Export()
	if err != nil {
		return false, err
	}
	if len(data.ChecklistItems) > 0 || len(data.Recipes) > 0 {
		return false, nil
	}
	starter := seed.Data()
	starter.Checklist = data.Checklist
	starter.Planner = data.Planner
	starter.Habits = data.Habits
	starter.ShoppingList = data.ShoppingList
	starter.History = data.History
	if err := store.Import(starter); err != nil {
		return false, err
	}
	return true, nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	if _, err := os.Stat(sourcePath); err != nil {
		return fmt.Errorf("source not found: %w", err)
	}
	sourceStore := storage.New(sourcePath)
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating planner data...")
	data, err := sourceStore.Export()
	if err != nil {
		return fmt.Errorf("failed to read source data: %w", err)
	}
	if err := ctx.Store.Import(data); err != nil {
		return fmt.Errorf("failed to write data to destination: %w", err)
	}
	printCounts(data)
	return nil
}

func printCounts(data models.Data) {
	fmt.Printf("    %d checklist day(s)\n", len(data.Checklist))
	fmt.Printf("    %d planner day(s)\n", len(data.Planner))
	fmt.Printf("    %d recipe(s), %d ingredient(s), %d activit(ies)\n", len(data.Recipes), len(data.Ingredients), len(data.Activities))
	fmt.Printf("    %d habit(s), %d checklist item(s)\n", len(data.Habits), len(data.ChecklistItems))
	fmt.Printf("    %d shopping item(s), %d week snapshot(s)\n", len(data.ShoppingList), len(data.History))
}
