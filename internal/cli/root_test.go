package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{"", nil, false},
		{"mon,wed", []time.Weekday{time.Monday, time.Wednesday}, false},
		{"Sunday, sat", []time.Weekday{time.Sunday, time.Saturday}, false},
		{"1,1,mon", []time.Weekday{time.Monday}, false},
		{"0,6", []time.Weekday{time.Sunday, time.Saturday}, false},
		{"funday", nil, true},
		{"7", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseWeekdays(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekdays(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseWeekdays(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestFormatWeekdays(t *testing.T) {
	if got := FormatWeekdays(nil); got != "-" {
		t.Errorf("FormatWeekdays(nil) = %q, want -", got)
	}
	if got := FormatWeekdays([]time.Weekday{time.Monday, time.Friday}); got != "Mon,Fri" {
		t.Errorf("FormatWeekdays = %q, want Mon,Fri", got)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		pct    int
		suffix string
		filled int
	}{
		{0, "   0%", 0},
		{50, "  50%", 5},
		{100, " 100%", 10},
		{150, " 100%", 10},
		{-5, "   0%", 0},
	}
	for _, tt := range tests {
		got := Bar(tt.pct, 10)
		if !strings.HasSuffix(got, tt.suffix) {
			t.Errorf("Bar(%d) = %q, want suffix %q", tt.pct, got, tt.suffix)
		}
		if n := strings.Count(got, "█"); n != tt.filled {
			t.Errorf("Bar(%d) has %d filled cells, want %d", tt.pct, n, tt.filled)
		}
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		ctx := &Context{In: strings.NewReader(tt.input)}
		got, err := ctx.Confirm("Continue?")
		if err != nil {
			t.Fatalf("Confirm(%q) error: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
