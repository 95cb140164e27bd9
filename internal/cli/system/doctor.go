package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/dietplan/internal/backup"
	"github.com/julianstephens/dietplan/internal/cli"
	"github.com/julianstephens/dietplan/internal/keyring"
	"github.com/julianstephens/dietplan/internal/storage/postgres"
	"github.com/julianstephens/dietplan/internal/storage/sqlite"
	"github.com/julianstephens/dietplan/internal/utils"
	"github.com/julianstephens/dietplan/internal/validation"
)

type DoctorCmd struct {
	Fix bool `help:"Repair data problems that can be fixed automatically."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	check := func(name string, err error) {
		if err != nil {
			fmt.Printf("❌ %s: FAIL\n", name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			return
		}
		fmt.Printf("✓ %s: OK\n", name)
	}
	skip := func(name string) {
		fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", name)
	}
	warn := func(name string, err error) {
		if err != nil {
			fmt.Printf("⚠ %s: WARNING\n", name)
			fmt.Printf("   %v\n", err)
			return
		}
		fmt.Printf("✓ %s: OK\n", name)
	}

	err := checkDBReachable(ctx)
	check("Database reachable", err)
	dbReachable = err == nil

	if dbReachable {
		check("Schema version", checkSchemaVersion(ctx))
		check("Migrations complete", checkMigrationsComplete(ctx))
	} else {
		skip("Schema version")
		skip("Migrations complete")
	}

	warn("Backups present", checkBackupsPresent(ctx))

	if dbReachable {
		check("Data validation", checkValidation(ctx, cmd.Fix))
		check("Timezone", checkTimezone(ctx))
	} else {
		skip("Data validation")
		skip("Timezone")
	}

	check("Clock", checkClock())
	warn("Mirror configuration", checkMirrorConfig(ctx))

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// JSON store has no schema version
		return nil
	}
	runner, err := sqliteStore.Migrations()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		return nil
	}
	runner, err := sqliteStore.Migrations()
	if err != nil {
		return err
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'dietplan migrate')", currentVersion, latestVersion)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'dietplan backup create'")
	}
	return nil
}

// checkValidation reports data problems. With fix set, fixable problems are
// repaired and the result written back after a backup.
func checkValidation(ctx *cli.Context, fix bool) error {
	data, err := ctx.Store.Export()
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}

	result := validation.New().ValidateData(data)
	if !result.HasConflicts() {
		return nil
	}
	if !fix {
		hint := ""
		if result.Fixable() {
			hint = "\n   Some problems can be repaired with 'dietplan doctor --fix'."
		}
		return fmt.Errorf("%d problem(s) found\n%s%s", len(result.Conflicts), result.FormatReport(), hint)
	}

	ctx.PerformAutomaticBackup()
	actions := validation.AutoFix(result.Conflicts, &data)
	for _, a := range actions {
		fmt.Printf("   fixed: %s\n", a.Action)
	}
	if len(actions) > 0 {
		// The repair is a local edit, so it must win the next sync
		data.LastUpdated = time.Time{}
		if err := ctx.Store.Import(data); err != nil {
			return fmt.Errorf("failed to save repaired data: %w", err)
		}
	}

	remaining := validation.New().ValidateData(data)
	if remaining.HasConflicts() {
		return fmt.Errorf("%d problem(s) need manual attention\n%s", len(remaining.Conflicts), remaining.FormatReport())
	}
	return nil
}

func checkTimezone(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !utils.ValidateTimezone(settings.Timezone) {
		return fmt.Errorf("unknown timezone %q (fix with 'dietplan settings --timezone')", settings.Timezone)
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

// checkMirrorConfig validates the mirror connection string when one is set.
// No mirror is not a problem.
func checkMirrorConfig(ctx *cli.Context) error {
	connStr, source, err := keyring.ResolveMirrorURL(ctx.MirrorURL)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := postgres.ValidateConnString(connStr); err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) && source == keyring.SourceKeyring {
			return nil
		}
		return fmt.Errorf("mirror URL from %s: %w", source, err)
	}
	return nil
}
