package keyring

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/dietplan/internal/constants"
)

var (
	// ErrNotFound is returned when no mirror URL is stored
	ErrNotFound = errors.New("mirror connection string not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// Source says where a resolved mirror URL came from.
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceKeyring Source = "keyring"
)

// GetMirrorURL retrieves the mirror connection string from the OS keyring.
func GetMirrorURL() (string, error) {
	connStr, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetMirrorURL stores the mirror connection string in the OS keyring.
func SetMirrorURL(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store mirror credentials in keyring: %w", err)
	}
	return nil
}

// DeleteMirrorURL removes the mirror connection string from the OS keyring.
func DeleteMirrorURL() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete mirror credentials from keyring: %w", err)
	}
	return nil
}

// ResolveMirrorURL picks the mirror connection string from, in order, the
// explicit flag value, the DIETPLAN_MIRROR_URL environment variable and the
// keyring. It returns ErrNotFound when none is set.
func ResolveMirrorURL(flag string) (string, Source, error) {
	if flag != "" {
		return flag, SourceFlag, nil
	}
	if env := os.Getenv(constants.EnvMirrorURL); env != "" {
		return env, SourceEnv, nil
	}
	connStr, err := GetMirrorURL()
	if err != nil {
		return "", "", err
	}
	return connStr, SourceKeyring, nil
}

// IsAvailable checks if the OS keyring is available on the current system.
// This is a best-effort check and may not catch all failure scenarios.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
