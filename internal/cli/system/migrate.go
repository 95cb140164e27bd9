package system

import (
	"fmt"

	"github.com/julianstephens/dietplan/internal/cli"
	"github.com/julianstephens/dietplan/internal/storage/sqlite"
)

type MigrateCmd struct {
	DryRun bool `help:"List pending migrations without applying them."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return fmt.Errorf("migrate command only supports SQLite storage")
	}

	runner, err := sqliteStore.Migrations()
	if err != nil {
		return err
	}

	if c.DryRun {
		pending, err := runner.Pending()
		if err != nil {
			return fmt.Errorf("failed to list pending migrations: %w", err)
		}
		if len(pending) == 0 {
			fmt.Println("No migrations to apply. Database is up to date.")
			return nil
		}
		for _, m := range pending {
			fmt.Printf("  pending: %03d %s\n", m.Version, m.Name)
		}
		return nil
	}

	ctx.PerformAutomaticBackup()

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
