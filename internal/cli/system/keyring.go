package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/dietplan/internal/cli"
	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/keyring"
	"github.com/julianstephens/dietplan/internal/storage/postgres"
)

type KeyringCmd struct {
	Set    KeyringSetCmd    `cmd:"" help:"Store the mirror connection string in the OS keyring."`
	Get    KeyringGetCmd    `cmd:"" help:"Show the stored mirror connection string."`
	Delete KeyringDeleteCmd `cmd:"" help:"Remove the mirror connection string from the OS keyring."`
	Status KeyringStatusCmd `cmd:"" help:"Check keyring availability and where the mirror URL comes from."`
}

type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL URL or key=value DSN of the mirror."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return err
		}
		// The keyring is encrypted, so a password is tolerated here
		fmt.Println("⚠️  The connection string contains a password; it is kept only in the keyring.")
	}
	if err := keyring.SetMirrorURL(cmd.ConnectionString); err != nil {
		return err
	}
	fmt.Printf("✓ Mirror URL stored in the OS keyring: %s\n", redactConnString(cmd.ConnectionString))
	fmt.Printf("  --mirror and %s still take precedence over it.\n", constants.EnvMirrorURL)
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetMirrorURL()
	if errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("no mirror URL in the keyring (store one with '%s keyring set')", constants.AppName)
	}
	if err != nil {
		return err
	}
	fmt.Println(redactConnString(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteMirrorURL()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no mirror URL in the keyring")
	}
	if err != nil {
		return err
	}
	fmt.Println("✓ Mirror URL removed from the OS keyring")
	return nil
}

type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	lines, err := mirrorStatus(ctx.MirrorURL)
	for _, line := range lines {
		fmt.Println(line)
	}
	return err
}

// mirrorStatus describes keyring availability and which mirror URL a sync
// would use given the --mirror flag value.
func mirrorStatus(flag string) ([]string, error) {
	if !keyring.IsAvailable() {
		return []string{"❌ OS keyring is not available on this system"}, keyring.ErrKeyringUnavailable
	}
	lines := []string{"✓ OS keyring is available"}

	if _, err := keyring.GetMirrorURL(); err == nil {
		lines = append(lines, "✓ Mirror URL is stored in the keyring")
	} else {
		lines = append(lines, "ℹ No mirror URL stored in the keyring")
	}

	connStr, source, err := keyring.ResolveMirrorURL(flag)
	switch {
	case errors.Is(err, keyring.ErrNotFound):
		lines = append(lines, "ℹ No mirror configured, sync is disabled")
	case err != nil:
		return lines, err
	default:
		lines = append(lines, fmt.Sprintf("ℹ Mirror URL in use comes from: %s (%s)", source, redactConnString(connStr)))
	}
	return lines, nil
}

// redactConnString hides the password of a URL or key=value connection string.
func redactConnString(connStr string) string {
	if strings.Contains(connStr, "://") {
		if u, err := url.Parse(connStr); err == nil {
			return u.Redacted()
		}
		return connStr
	}
	fields := strings.Fields(connStr)
	for i, f := range fields {
		if k, _, ok := strings.Cut(f, "="); ok && strings.EqualFold(k, "password") {
			fields[i] = k + "=xxxxx"
		}
	}
	return strings.Join(fields, " ")
}
