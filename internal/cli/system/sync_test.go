package system

import (
	"strings"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/dietplan/internal/constants"
)

func TestMirrorUserID(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()

	t.Setenv(constants.EnvUserID, "env-user")
	id, err := mirrorUserID(ctx)
	if err != nil {
		t.Fatalf("mirrorUserID: %v", err)
	}
	if id != "env-user" {
		t.Errorf("mirrorUserID() = %q, want env-user", id)
	}

	settings, _ := ctx.Store.GetSettings()
	settings.MirrorUserID = "stored-user"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	id, _ = mirrorUserID(ctx)
	if id != "stored-user" {
		t.Errorf("mirrorUserID() = %q, want stored-user", id)
	}
}

func TestOpenMirror_NotConfigured(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(constants.EnvMirrorURL, "")
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()

	_, err := openMirror(ctx)
	if err == nil || !strings.Contains(err.Error(), "no mirror configured") {
		t.Errorf("expected 'no mirror configured', got %v", err)
	}
}

func TestOpenMirror_InvalidURL(t *testing.T) {
	gokeyring.MockInit()
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()
	ctx.MirrorURL = "postgres://%zz"

	if _, err := openMirror(ctx); err == nil {
		t.Error("expected error for malformed mirror URL")
	}
}

func TestDescribeStamp(t *testing.T) {
	if got := describeStamp(time.Time{}); got != "never updated" {
		t.Errorf("describeStamp(zero) = %q", got)
	}
	got := describeStamp(time.Now().Add(-2 * time.Hour))
	if !strings.Contains(got, "hours ago") {
		t.Errorf("describeStamp(2h ago) = %q, want relative time", got)
	}
}
