package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/dietplan/internal/cli"
	"github.com/julianstephens/dietplan/internal/cli/backups"
	"github.com/julianstephens/dietplan/internal/cli/checklist"
	"github.com/julianstephens/dietplan/internal/cli/habits"
	"github.com/julianstephens/dietplan/internal/cli/planner"
	"github.com/julianstephens/dietplan/internal/cli/prep"
	"github.com/julianstephens/dietplan/internal/cli/progress"
	"github.com/julianstephens/dietplan/internal/cli/recipes"
	"github.com/julianstephens/dietplan/internal/cli/settings"
	"github.com/julianstephens/dietplan/internal/cli/shopping"
	"github.com/julianstephens/dietplan/internal/cli/system"
	"github.com/julianstephens/dietplan/internal/constants"
	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/logger"
	"github.com/julianstephens/dietplan/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"Path of the data store. Files ending in .json use the JSON document store, anything else SQLite." type:"path" default:"${config}" env:"DIETPLAN_CONFIG"`
	LogDebug bool   `name:"debug" help:"Log debug output to stderr as well as the log file."`
	Mirror   string `help:"PostgreSQL connection string of the sync mirror. Prefer the keyring or .pgpass for passwords." env:"DIETPLAN_MIRROR_URL"`

	Init       system.InitCmd         `cmd:"" help:"Initialize dietplan storage."`
	Tui        system.TuiCmd          `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Checklist  checklist.ChecklistCmd `cmd:"" help:"Show and tick the daily checklist."`
	Water      checklist.WaterCmd     `cmd:"" help:"Log water in millilitres."`
	Habit      habits.HabitCmd        `cmd:"" help:"Manage habits and habit tracking."`
	Plan       planner.PlanCmd        `cmd:"" help:"Plan meals and activities for a day."`
	Recipe     recipes.RecipeCmd      `cmd:"" help:"Browse and manage recipes."`
	Ingredient recipes.IngredientCmd  `cmd:"" help:"Browse and manage ingredients."`
	Activity   recipes.ActivityCmd    `cmd:"" help:"Manage scheduled activities."`
	Catalog    recipes.CatalogCmd     `cmd:"" help:"Import or export the recipe catalog as YAML."`
	Shopping   shopping.ShoppingCmd   `cmd:"" help:"Build and manage the shopping list."`
	Progress   progress.ProgressCmd   `cmd:"" help:"Show day, week, month and year progress."`
	Calendar   progress.CalendarCmd   `cmd:"" help:"Show a month calendar of daily scores."`
	History    progress.HistoryCmd    `cmd:"" help:"List or save weekly progress snapshots."`
	Prep       prep.PrepCmd           `cmd:"" help:"Manage the weekly meal-prep checklists."`
	Settings   settings.SettingsCmd   `cmd:"" help:"Manage application settings."`
	Backup     backups.BackupCmd      `cmd:"" help:"Manage database backups."`
	Export     system.ExportCmd       `cmd:"" help:"Export all data as JSON."`
	Import     system.ImportCmd       `cmd:"" help:"Replace all data with a JSON export."`
	Sync       system.SyncCmd         `cmd:"" help:"Synchronise with the PostgreSQL mirror."`
	Keyring    system.KeyringCmd      `cmd:"" help:"Manage the mirror connection string in the OS keyring."`
	Doctor     system.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Migrate    system.MigrateCmd      `cmd:"" help:"Run database migrations."`
	Debug      system.DebugCmd        `cmd:"" help:"Debug commands for troubleshooting."`
}

func main() {
	// Values already in the environment win over both files
	_ = godotenv.Load()
	_ = godotenv.Load(filepath.Join(kong.ExpandPath(filepath.Dir(constants.DefaultConfigPath)), ".env"))

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Diet and habit planner: daily checklist, meal planner, progress and shopping lists"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.LogDebug, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		apperrors.Fatal(err)
	}
	defer logger.Close()
	logger.Debug("Starting", "command", ctx.Command(), "store", CLI.Config)

	store := storage.New(CLI.Config)
	appCtx := &cli.Context{
		Store:     store,
		MirrorURL: CLI.Mirror,
	}

	// init creates the store itself
	if ctx.Selected() == nil || ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	err := ctx.Run(appCtx)
	store.Close()
	apperrors.Fatal(err)
}
