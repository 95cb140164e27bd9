package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dietplan/internal/models"
)

type HabitFormModel struct {
	Name   string
	Icon   string
	Type   models.HabitType
	Target string
}

// NewHabitForm builds the add-habit form bound to f.
func NewHabitForm(f *HabitFormModel) *huh.Form {
	options := make([]huh.Option[models.HabitType], len(models.HabitTypes))
	for i, t := range models.HabitTypes {
		options[i] = huh.NewOption(string(t), t)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&f.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Icon").
				Description("Optional emoji").
				Value(&f.Icon),
			huh.NewSelect[models.HabitType]().
				Title("Type").
				Options(options...).
				Value(&f.Type),
			huh.NewInput().
				Title("Target").
				Description("Ignored for yes/no habits").
				Value(&f.Target).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					if v, err := strconv.ParseFloat(s, 64); err != nil || v < 1 {
						return fmt.Errorf("target must be a number of at least 1")
					}
					return nil
				}),
		),
	).WithShowHelp(true)
}

// Habit converts the form into a definition with the given id.
func (f *HabitFormModel) Habit(id string) (models.HabitDefinition, error) {
	h := models.HabitDefinition{
		ID:     id,
		Name:   strings.TrimSpace(f.Name),
		Icon:   strings.TrimSpace(f.Icon),
		Type:   f.Type,
		Target: 1,
	}
	if h.Type != models.HabitBoolean && strings.TrimSpace(f.Target) != "" {
		v, err := strconv.ParseFloat(strings.TrimSpace(f.Target), 64)
		if err != nil {
			return models.HabitDefinition{}, fmt.Errorf("invalid target: %w", err)
		}
		h.Target = v
	}
	if err := h.Validate(); err != nil {
		return models.HabitDefinition{}, err
	}
	return h, nil
}
