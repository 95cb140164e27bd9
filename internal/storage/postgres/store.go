// Package postgres stores whole planner documents on a shared PostgreSQL
// server so several machines can sync the same plan.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/julianstephens/dietplan/internal/constants"
	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/logger"
	"github.com/julianstephens/dietplan/internal/migration"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
	host    string
}

func New(connStr string) *Store {
	s := &Store{connStr: connStr}
	if withPath, err := withSearchPath(connStr); err != nil {
		logger.Warn("Failed to parse Postgres connection string", "error", err)
	} else {
		s.connStr = withPath
	}
	s.host, _ = os.Hostname()
	return s
}

func (s *Store) open(ctx context.Context) error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// A sync holds at most a couple of connections
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return connectError(s.connStr, err)
	}
	s.db = db
	return nil
}

// Init connects, creates the application schema and applies migrations.
func (s *Store) Init(ctx context.Context) error {
	if s.db == nil {
		if err := s.open(ctx); err != nil {
			return err
		}
	}

	if _, err := s.db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	runner, err := s.migrations()
	if err != nil {
		return err
	}
	if _, err := runner.ApplyMigrations(func(msg string) {
		logger.Info(msg, "db", "mirror")
	}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load connects and checks that the remote schema is not newer than this
// build understands.
func (s *Store) Load(ctx context.Context) error {
	if s.db != nil {
		return nil
	}
	if err := s.open(ctx); err != nil {
		return err
	}
	runner, err := s.migrations()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) migrations() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS, migration.DialectPostgres), nil
}

// Push stores data as the document for userID, replacing any previous one.
func (s *Store) Push(ctx context.Context, userID string, data models.Data) error {
	if userID == "" {
		return fmt.Errorf("mirror user id cannot be empty")
	}
	doc, err := encodeDocument(data)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO mirror_documents (user_id, document, last_updated, pushed_by, pushed_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			document = EXCLUDED.document,
			last_updated = EXCLUDED.last_updated,
			pushed_by = EXCLUDED.pushed_by,
			pushed_at = EXCLUDED.pushed_at`,
		userID, doc, data.LastUpdated.UTC(), s.host)
	if err != nil {
		return fmt.Errorf("failed to push document for %s: %w", userID, err)
	}
	return nil
}

// Pull returns the document for userID. A user without a document yields an
// error wrapping ErrNotFound.
func (s *Store) Pull(ctx context.Context, userID string) (models.Data, error) {
	var doc []byte
	var lastUpdated time.Time
	err := s.db.QueryRowContext(ctx,
		"SELECT document, last_updated FROM mirror_documents WHERE user_id = $1", userID).
		Scan(&doc, &lastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Data{}, apperrors.NotFound("mirror document", userID)
	}
	if err != nil {
		return models.Data{}, fmt.Errorf("failed to pull document for %s: %w", userID, err)
	}
	return decodeDocument(doc, lastUpdated)
}

func encodeDocument(data models.Data) ([]byte, error) {
	doc, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return doc, nil
}

// decodeDocument parses a stored document. The last_updated column wins over
// the embedded field, which older clients may not have written.
func decodeDocument(doc []byte, lastUpdated time.Time) (models.Data, error) {
	var data models.Data
	if err := json.Unmarshal(doc, &data); err != nil {
		return models.Data{}, fmt.Errorf("failed to decode mirror document: %w", err)
	}
	if !lastUpdated.IsZero() {
		data.LastUpdated = lastUpdated.UTC()
	}
	return data, nil
}
