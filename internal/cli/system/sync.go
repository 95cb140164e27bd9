package system

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/dietplan/internal/cli"
	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/keyring"
	"github.com/julianstephens/dietplan/internal/logger"
	"github.com/julianstephens/dietplan/internal/mirror"
	"github.com/julianstephens/dietplan/internal/storage/postgres"
)

type SyncCmd struct {
	Now  SyncNowCmd  `cmd:"" help:"Push or pull, whichever side is older." default:"1"`
	Push SyncPushCmd `cmd:"" help:"Overwrite the mirror with local data."`
	Pull SyncPullCmd `cmd:"" help:"Overwrite local data with the mirror."`
}

type SyncNowCmd struct{}

func (c *SyncNowCmd) Run(ctx *cli.Context) error {
	return runSync(ctx, true, func(s *mirror.Syncer, runCtx context.Context) (mirror.Result, error) {
		return s.Sync(runCtx)
	})
}

type SyncPushCmd struct{}

func (c *SyncPushCmd) Run(ctx *cli.Context) error {
	return runSync(ctx, true, func(s *mirror.Syncer, runCtx context.Context) (mirror.Result, error) {
		return s.Push(runCtx)
	})
}

type SyncPullCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *SyncPullCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm("Replace local data with the mirror copy?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Pull cancelled.")
			return nil
		}
	}
	ctx.PerformAutomaticBackup()
	return runSync(ctx, false, func(s *mirror.Syncer, runCtx context.Context) (mirror.Result, error) {
		return s.Pull(runCtx)
	})
}

// mirrorUserID prefers the stored setting over the environment.
func mirrorUserID(ctx *cli.Context) (string, error) {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	if settings.MirrorUserID != "" {
		return settings.MirrorUserID, nil
	}
	return os.Getenv(constants.EnvUserID), nil
}

func openMirror(ctx *cli.Context) (*postgres.Store, error) {
	connStr, source, err := keyring.ResolveMirrorURL(ctx.MirrorURL)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, fmt.Errorf("no mirror configured: use --mirror, %s or 'dietplan keyring set'", constants.EnvMirrorURL)
	}
	if err != nil {
		return nil, err
	}
	if _, err := postgres.ValidateConnString(connStr); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, fmt.Errorf("invalid mirror connection string: %w", err)
		}
		if source != keyring.SourceKeyring {
			fmt.Fprintf(os.Stderr, "⚠️  Warning: mirror URL from %s contains a password; prefer ~/.pgpass or the keyring.\n", source)
		}
	}
	logger.Debug("Using mirror", "source", source)
	return postgres.New(connStr), nil
}

func runSync(ctx *cli.Context, create bool, fn func(*mirror.Syncer, context.Context) (mirror.Result, error)) error {
	userID, err := mirrorUserID(ctx)
	if err != nil {
		return err
	}

	remote, err := openMirror(ctx)
	if err != nil {
		return err
	}
	defer remote.Close()

	runCtx, cancel := context.WithTimeout(context.Background(), constants.MirrorTimeout)
	defer cancel()

	if create {
		err = remote.Init(runCtx)
	} else {
		err = remote.Load(runCtx)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to mirror: %w", err)
	}

	syncer := &mirror.Syncer{Local: ctx.Store, Remote: remote, UserID: userID}
	res, err := fn(syncer, runCtx)
	if err != nil {
		return err
	}
	printSyncResult(res)
	return nil
}

func printSyncResult(res mirror.Result) {
	switch res.Direction {
	case mirror.Pushed:
		fmt.Println("✓ Local data pushed to mirror")
	case mirror.Pulled:
		fmt.Println("✓ Mirror data pulled into local store")
	default:
		fmt.Println("✓ Already up to date")
	}
	fmt.Printf("  local:  %s\n", describeStamp(res.LocalUpdated))
	fmt.Printf("  mirror: %s\n", describeStamp(res.RemoteUpdated))
}

func describeStamp(t time.Time) string {
	if t.IsZero() {
		return "never updated"
	}
	return fmt.Sprintf("%s (%s)", t.Local().Format("2006-01-02 15:04"), humanize.Time(t))
}
