package models

import (
	"fmt"
	"strings"
)

// HabitType is how a habit's daily value is measured.
type HabitType string

const (
	HabitBoolean      HabitType = "boolean"
	HabitQuantity     HabitType = "quantity"
	HabitTimesPerDay  HabitType = "timesPerDay"
	HabitTimesPerWeek HabitType = "timesPerWeek"
)

// HabitTypes lists the supported habit types.
var HabitTypes = []HabitType{HabitBoolean, HabitQuantity, HabitTimesPerDay, HabitTimesPerWeek}

// ParseHabitType accepts the stored names plus a few CLI-friendly spellings.
func ParseHabitType(s string) (HabitType, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(s, "-", ""), "_", "")) {
	case "boolean", "bool", "":
		return HabitBoolean, nil
	case "quantity", "qty":
		return HabitQuantity, nil
	case "timesperday", "daily":
		return HabitTimesPerDay, nil
	case "timesperweek", "weekly":
		return HabitTimesPerWeek, nil
	}
	return "", fmt.Errorf("invalid habit type: %s", s)
}

// HabitDefinition is a user-defined recurring target.
type HabitDefinition struct {
	ID     string    `json:"id" yaml:"id"`
	Name   string    `json:"name" yaml:"name"`
	Icon   string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	Type   HabitType `json:"type" yaml:"type"`
	Target float64   `json:"target" yaml:"target"`
}

// IsActivityHabit reports whether the habit was generated from an activity.
func (h HabitDefinition) IsActivityHabit(prefix string) bool {
	return strings.HasPrefix(h.ID, prefix)
}

func (h *HabitDefinition) Validate() error {
	if strings.TrimSpace(h.Name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if _, err := ParseHabitType(string(h.Type)); err != nil {
		return err
	}
	if h.Type != HabitBoolean && h.Target < 1 {
		return fmt.Errorf("habit %q: target must be at least 1 for %s habits", h.Name, h.Type)
	}
	return nil
}
