package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/dietplan/internal/constants"
)

const testURL = "postgres://planner@localhost:5432/dietplan?sslmode=disable"

func TestSetGetDeleteMirrorURL(t *testing.T) {
	gokeyring.MockInit()

	if err := SetMirrorURL(testURL); err != nil {
		t.Fatalf("SetMirrorURL() error: %v", err)
	}
	got, err := GetMirrorURL()
	if err != nil {
		t.Fatalf("GetMirrorURL() error: %v", err)
	}
	if got != testURL {
		t.Errorf("GetMirrorURL() = %q, want %q", got, testURL)
	}

	if err := DeleteMirrorURL(); err != nil {
		t.Fatalf("DeleteMirrorURL() error: %v", err)
	}
	if _, err := GetMirrorURL(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetMirrorURL() after delete error = %v, want ErrNotFound", err)
	}
	if err := DeleteMirrorURL(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteMirrorURL() error = %v, want ErrNotFound", err)
	}
}

func TestSetMirrorURLEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetMirrorURL(""); err == nil {
		t.Error("SetMirrorURL(\"\") should return an error")
	}
}

func TestResolveMirrorURL(t *testing.T) {
	gokeyring.MockInit()
	t.Setenv(constants.EnvMirrorURL, "")

	if _, _, err := ResolveMirrorURL(""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ResolveMirrorURL() with nothing set error = %v, want ErrNotFound", err)
	}

	if err := SetMirrorURL(testURL); err != nil {
		t.Fatalf("SetMirrorURL() error: %v", err)
	}
	got, src, err := ResolveMirrorURL("")
	if err != nil || got != testURL || src != SourceKeyring {
		t.Errorf("ResolveMirrorURL() = %q, %q, %v; want keyring value", got, src, err)
	}

	t.Setenv(constants.EnvMirrorURL, "postgres://env@localhost/db")
	got, src, _ = ResolveMirrorURL("")
	if got != "postgres://env@localhost/db" || src != SourceEnv {
		t.Errorf("ResolveMirrorURL() = %q, %q; want env value", got, src)
	}

	got, src, _ = ResolveMirrorURL("postgres://flag@localhost/db")
	if got != "postgres://flag@localhost/db" || src != SourceFlag {
		t.Errorf("ResolveMirrorURL() = %q, %q; want flag value", got, src)
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false with mock keyring")
	}
}
