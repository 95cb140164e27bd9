// Package mirror keeps the local store and a remote document copy in step
// using last-writer-wins on the document timestamps.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/logger"
	"github.com/julianstephens/dietplan/internal/models"
)

// Remote is a document store keyed by user id.
type Remote interface {
	Push(ctx context.Context, userID string, data models.Data) error
	// Pull returns an error wrapping errors.ErrNotFound when the user has no
	// document yet.
	Pull(ctx context.Context, userID string) (models.Data, error)
}

// Local is the part of a storage provider the syncer needs.
type Local interface {
	Export() (models.Data, error)
	Import(models.Data) error
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
}

// Direction says which way data moved.
type Direction string

const (
	Pushed   Direction = "pushed"
	Pulled   Direction = "pulled"
	UpToDate Direction = "up-to-date"
)

// Result describes a finished sync.
type Result struct {
	Direction     Direction
	LocalUpdated  time.Time
	RemoteUpdated time.Time
}

// Syncer moves whole documents between a local store and a remote.
type Syncer struct {
	Local  Local
	Remote Remote
	UserID string
	Now    func() time.Time
}

func (s *Syncer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Syncer) check() error {
	if s.UserID == "" {
		return fmt.Errorf("no mirror user id configured, set it with 'settings --mirror-user' or DIETPLAN_USER")
	}
	return nil
}

// Sync pulls when the remote copy is newer than the local one and pushes
// otherwise. Equal timestamps leave both sides untouched.
func (s *Syncer) Sync(ctx context.Context) (Result, error) {
	if err := s.check(); err != nil {
		return Result{}, err
	}

	local, err := s.Local.Export()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read local data: %w", err)
	}
	res := Result{LocalUpdated: local.LastUpdated}

	remote, err := s.Remote.Pull(ctx, s.UserID)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Info("No remote document yet", "user", s.UserID)
		return s.push(ctx, local, res)
	case err != nil:
		logger.Warn("Mirror pull failed", "user", s.UserID, "error", err)
		return Result{}, fmt.Errorf("failed to pull remote data: %w", err)
	}
	res.RemoteUpdated = remote.LastUpdated

	switch {
	case remote.LastUpdated.After(local.LastUpdated):
		return s.pull(remote, res)
	case remote.LastUpdated.Equal(local.LastUpdated):
		res.Direction = UpToDate
		return res, s.markSynced()
	default:
		return s.push(ctx, local, res)
	}
}

// Push overwrites the remote document with the local one.
func (s *Syncer) Push(ctx context.Context) (Result, error) {
	if err := s.check(); err != nil {
		return Result{}, err
	}
	local, err := s.Local.Export()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read local data: %w", err)
	}
	return s.push(ctx, local, Result{LocalUpdated: local.LastUpdated})
}

// Pull overwrites the local data with the remote document.
func (s *Syncer) Pull(ctx context.Context) (Result, error) {
	if err := s.check(); err != nil {
		return Result{}, err
	}
	remote, err := s.Remote.Pull(ctx, s.UserID)
	if err != nil {
		logger.Warn("Mirror pull failed", "user", s.UserID, "error", err)
		return Result{}, fmt.Errorf("failed to pull remote data: %w", err)
	}
	return s.pull(remote, Result{RemoteUpdated: remote.LastUpdated})
}

func (s *Syncer) push(ctx context.Context, local models.Data, res Result) (Result, error) {
	if local.LastUpdated.IsZero() {
		local.LastUpdated = s.now().UTC()
	}
	if err := s.Remote.Push(ctx, s.UserID, local); err != nil {
		logger.Warn("Mirror push failed", "user", s.UserID, "error", err)
		return Result{}, fmt.Errorf("failed to push local data: %w", err)
	}
	logger.Info("Pushed document to mirror", "user", s.UserID, "last_updated", local.LastUpdated)
	res.Direction = Pushed
	res.RemoteUpdated = local.LastUpdated
	return res, s.markSynced()
}

func (s *Syncer) pull(remote models.Data, res Result) (Result, error) {
	if err := s.Local.Import(remote); err != nil {
		logger.Error("Failed to import mirror document", "user", s.UserID, "error", err)
		return Result{}, fmt.Errorf("failed to import remote data: %w", err)
	}
	logger.Info("Pulled document from mirror", "user", s.UserID, "last_updated", remote.LastUpdated)
	res.Direction = Pulled
	res.LocalUpdated = remote.LastUpdated
	return res, s.markSynced()
}

func (s *Syncer) markSynced() error {
	settings, err := s.Local.GetSettings()
	if err != nil {
		return err
	}
	settings.LastSyncedAt = s.now().UTC().Format(time.RFC3339)
	return s.Local.SaveSettings(settings)
}
