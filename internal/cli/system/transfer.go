package system

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/dietplan/internal/cli"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/validation"
)

// ExportCmd writes the whole document as JSON.
type ExportCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Store.Export()
	if err != nil {
		return fmt.Errorf("failed to export data: %w", err)
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}
	if c.Output == "" {
		fmt.Println(string(out))
		return nil
	}
	if err := os.WriteFile(c.Output, append(out, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", c.Output, err)
	}
	fmt.Printf("✓ Exported to %s\n", c.Output)
	return nil
}

// ImportCmd replaces the store with a JSON document. Legacy document shapes
// are accepted and normalised on decode.
type ImportCmd struct {
	File  string `arg:"" help:"JSON document to import." type:"existingfile"`
	Force bool   `help:"Import even when the document has validation problems."`
	Yes   bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	raw, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", c.File, err)
	}
	var data models.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to parse %s: %w", c.File, err)
	}

	result := validation.New().ValidateData(data)
	if result.HasConflicts() {
		fmt.Print(result.FormatReport())
		if !c.Force {
			return fmt.Errorf("document has %d problem(s); fix them or use --force", len(result.Conflicts))
		}
	}

	if !c.Yes {
		ok, err := ctx.Confirm("Replace all local data with this document?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	// An imported file is a local edit
	data.LastUpdated = time.Time{}
	if err := ctx.Store.Import(data); err != nil {
		return fmt.Errorf("failed to import data: %w", err)
	}
	fmt.Println("✓ Import complete")
	printCounts(data)
	return nil
}
