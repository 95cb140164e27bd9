package models

import (
	"fmt"
	"strings"
	"time"
)

// Activity is a scheduled exercise or event that can be planned on a day.
type Activity struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Icon       string         `json:"icon,omitempty" yaml:"icon,omitempty"`
	Time       string         `json:"time,omitempty" yaml:"time,omitempty"` // HH:MM format
	DaysOfWeek []time.Weekday `json:"daysOfWeek,omitempty" yaml:"days_of_week,omitempty"`
}

// ScheduledOn reports whether the activity recurs on wd.
func (a Activity) ScheduledOn(wd time.Weekday) bool {
	for _, d := range a.DaysOfWeek {
		if d == wd {
			return true
		}
	}
	return false
}

func (a *Activity) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("activity id cannot be empty")
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("activity name cannot be empty")
	}
	if a.Time != "" {
		if _, err := time.Parse("15:04", a.Time); err != nil {
			return fmt.Errorf("invalid time format: %s (expected HH:MM)", a.Time)
		}
	}
	for _, d := range a.DaysOfWeek {
		if d < time.Sunday || d > time.Saturday {
			return fmt.Errorf("invalid weekday: %d", d)
		}
	}
	return nil
}
