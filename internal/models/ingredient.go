package models

import (
	"fmt"
	"strings"
)

// IngredientCategory groups ingredients on the shopping list.
type IngredientCategory string

const (
	CategoryProteins IngredientCategory = "proteins"
	CategoryCarbs    IngredientCategory = "carbs"
	CategorySalads   IngredientCategory = "salads"
	CategoryFruits   IngredientCategory = "fruits"
	CategoryExtras   IngredientCategory = "extras"
	CategoryOther    IngredientCategory = "other"
)

// CategoryOrder is the display order of shopping list groups.
var CategoryOrder = []IngredientCategory{
	CategoryProteins,
	CategoryCarbs,
	CategorySalads,
	CategoryFruits,
	CategoryExtras,
	CategoryOther,
}

// CategoryRank returns the position of c in CategoryOrder; unknown categories
// sort with CategoryOther.
func CategoryRank(c IngredientCategory) int {
	for i, known := range CategoryOrder {
		if c == known {
			return i
		}
	}
	return len(CategoryOrder) - 1
}

// Label returns a human-readable name for the category.
func (c IngredientCategory) Label() string {
	switch c {
	case CategoryProteins:
		return "Proteins"
	case CategoryCarbs:
		return "Carbohydrates"
	case CategorySalads:
		return "Salads"
	case CategoryFruits:
		return "Fruits"
	case CategoryExtras:
		return "Extras"
	default:
		return "Other"
	}
}

type Ingredient struct {
	ID           string             `json:"id" yaml:"id"`
	Name         string             `json:"name" yaml:"name"`
	Icon         string             `json:"icon,omitempty" yaml:"icon,omitempty"`
	Unit         string             `json:"unit,omitempty" yaml:"unit,omitempty"`
	Category     IngredientCategory `json:"category" yaml:"category"`
	BaseQuantity *float64           `json:"baseQuantity,omitempty" yaml:"base_quantity,omitempty"`
}

// DefaultQuantity is the amount pre-filled when the ingredient is added to a meal.
func (i Ingredient) DefaultQuantity() float64 {
	if i.BaseQuantity != nil && *i.BaseQuantity > 0 {
		return *i.BaseQuantity
	}
	return 1
}

func (i *Ingredient) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return fmt.Errorf("ingredient id cannot be empty")
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("ingredient name cannot be empty")
	}
	if i.BaseQuantity != nil && *i.BaseQuantity < 0 {
		return fmt.Errorf("ingredient %q: base quantity cannot be negative", i.Name)
	}
	return nil
}
