package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Macros struct {
	Protein float64 `json:"protein" yaml:"protein"`
	Carbs   float64 `json:"carbs" yaml:"carbs"`
	Fat     float64 `json:"fat" yaml:"fat"`
	Kcal    float64 `json:"kcal" yaml:"kcal"`
}

type Recipe struct {
	ID           string          `json:"id" yaml:"id"`
	Name         string          `json:"name" yaml:"name"`
	Category     string          `json:"category" yaml:"category"`
	PrepTimeMin  int             `json:"prepTime,omitempty" yaml:"prep_time_min,omitempty"`
	Portion      string          `json:"portion,omitempty" yaml:"portion,omitempty"`
	Macros       Macros          `json:"macros" yaml:"macros"`
	Ingredients  []StructuredRef `json:"ingredients" yaml:"ingredients"`
	Instructions string          `json:"instructions,omitempty" yaml:"instructions,omitempty"`
}

// UnmarshalJSON normalizes legacy string ingredients into structured refs.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	type alias Recipe
	var aux struct {
		alias
		Ingredients []json.RawMessage `json:"ingredients"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	refs, err := decodeRefList(aux.Ingredients)
	if err != nil {
		return fmt.Errorf("recipe %s: %w", aux.ID, err)
	}
	*r = Recipe(aux.alias)
	r.Ingredients = refs
	return nil
}

func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("recipe id cannot be empty")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("recipe name cannot be empty")
	}
	for _, ing := range r.Ingredients {
		if ing.IngredientID == "" {
			return fmt.Errorf("recipe %q: ingredient id cannot be empty", r.Name)
		}
		if ing.Quantity < 0 {
			return fmt.Errorf("recipe %q: quantity for %s cannot be negative", r.Name, ing.IngredientID)
		}
	}
	return nil
}
