package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestSentinelWrappers(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		contains string
	}{
		{"not found", NotFound("recipe", "r1"), ErrNotFound, `recipe "r1" not found`},
		{"already exists", AlreadyExists("habit", "read"), ErrAlreadyExists, `habit "read" already exists`},
		{"not initialized", NotInitialized("/tmp/x.db"), ErrNotInitialized, "run 'dietplan init' first"},
		{"invalid date", InvalidDate("2026/01/01"), ErrInvalidDate, `"2026/01/01"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("error %q does not contain %q", tt.err.Error(), tt.contains)
			}
		})
	}
}
