package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/dietplan/internal/constants"
)

// WeekSnapshot records a finished week's progress.
type WeekSnapshot struct {
	WeekStart        string    `json:"weekStart"` // YYYY-MM-DD format
	DailyPercentages []int     `json:"dailyPercentages"`
	WeeklyPercentage int       `json:"weeklyPercentage"`
	RecordedAt       time.Time `json:"date"`
}

// PrepTask is a batch-cooking task on a weekly prep day.
type PrepTask struct {
	Task string `json:"task" yaml:"task"`
	Icon string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Done bool   `json:"done,omitempty" yaml:"done,omitempty"`
}

// PrepDays lists the weekly prep days in display order.
var PrepDays = []string{constants.PrepDaySunday, constants.PrepDayWednesday}

// ParsePrepDay accepts a prep day name in any case.
func ParsePrepDay(s string) (string, error) {
	day := strings.ToLower(strings.TrimSpace(s))
	for _, d := range PrepDays {
		if d == day {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid prep day: %s (expected one of %s)", s, strings.Join(PrepDays, ", "))
}
