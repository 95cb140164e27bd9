package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// IngredientRef is an ingredient reference as found in stored data: either a
// legacy free-text name or a structured {id, quantity, unit} object.
type IngredientRef interface {
	ingredientRef()
}

// LegacyStringRef is the pre-migration shape: just an ingredient name.
type LegacyStringRef string

// StructuredRef references a catalog ingredient with an amount.
type StructuredRef struct {
	IngredientID string  `json:"id" yaml:"id"`
	Quantity     float64 `json:"quantity" yaml:"quantity"`
	Unit         string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

func (LegacyStringRef) ingredientRef() {}
func (StructuredRef) ingredientRef()   {}

// NormalizeRef converts any reference to its structured form. Legacy names
// become slug ids with a quantity of one. Normalizing an already structured
// reference returns it unchanged apart from defaulting a missing quantity.
func NormalizeRef(ref IngredientRef) StructuredRef {
	switch r := ref.(type) {
	case LegacyStringRef:
		return StructuredRef{IngredientID: Slug(string(r)), Quantity: 1}
	case StructuredRef:
		if r.Quantity <= 0 {
			r.Quantity = 1
		}
		return r
	case *StructuredRef:
		if r == nil {
			return StructuredRef{}
		}
		return NormalizeRef(*r)
	default:
		return StructuredRef{}
	}
}

// NormalizeRefs normalizes a list of references, dropping entries without an id.
func NormalizeRefs(refs []IngredientRef) []StructuredRef {
	out := make([]StructuredRef, 0, len(refs))
	for _, ref := range refs {
		n := NormalizeRef(ref)
		if n.IngredientID == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}

// DecodeIngredientRef decodes a JSON string or object into an IngredientRef.
func DecodeIngredientRef(raw json.RawMessage) (IngredientRef, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return LegacyStringRef(s), nil
	}

	var aux struct {
		ID           string          `json:"id"`
		IngredientID string          `json:"ingredientId"`
		Quantity     json.RawMessage `json:"quantity"`
		Unit         string          `json:"unit"`
	}
	if err := json.Unmarshal(raw, &aux); err != nil {
		return nil, fmt.Errorf("invalid ingredient reference: %w", err)
	}
	qty, err := DecodeValue(aux.Quantity)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity for ingredient %q: %w", aux.ID, err)
	}
	id := aux.ID
	if id == "" {
		id = aux.IngredientID
	}
	return StructuredRef{IngredientID: id, Quantity: qty, Unit: aux.Unit}, nil
}

func decodeRefList(raws []json.RawMessage) ([]StructuredRef, error) {
	refs := make([]IngredientRef, 0, len(raws))
	for _, raw := range raws {
		ref, err := DecodeIngredientRef(raw)
		if err != nil {
			return nil, err
		}
		if ref != nil {
			refs = append(refs, ref)
		}
	}
	return NormalizeRefs(refs), nil
}

// Slug lower-cases s and joins its words with hyphens.
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

// DecodeValue reads a checklist or habit value. Booleans become 1 or 0,
// numeric strings are parsed, null and empty input are 0.
func DecodeValue(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, nil
	}
	switch string(raw) {
	case "null", "false":
		return 0, nil
	case "true":
		return 1, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, err
	}
	return f, nil
}

func decodeValueMap(raw map[string]json.RawMessage) (map[string]float64, error) {
	out := make(map[string]float64, len(raw))
	for key, v := range raw {
		f, err := DecodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %q: %w", key, err)
		}
		out[NormalizeKey(key)] = f
	}
	return out, nil
}

var legacyKeys = map[string]string{
	"cafe":           string(MealBreakfast),
	"lancheManha":    string(MealMorningSnack),
	"almoco":         string(MealLunch),
	"lancheTarde":    string(MealAfternoonSnack),
	"jantar":         string(MealDinner),
	"posTreino":      string(MealPostWorkout),
	"creatina":       "creatine",
	"agua":           "water",
	"morningSnack":   string(MealMorningSnack),
	"afternoonSnack": string(MealAfternoonSnack),
	"postWorkout":    string(MealPostWorkout),
}

// NormalizeKey maps legacy checklist item and meal slot keys to current ones.
func NormalizeKey(key string) string {
	if k, ok := legacyKeys[key]; ok {
		return k
	}
	return key
}

var legacyCategories = map[string]IngredientCategory{
	"proteinas":  CategoryProteins,
	"carbos":     CategoryCarbs,
	"saladas":    CategorySalads,
	"frutas":     CategoryFruits,
	"adicionais": CategoryExtras,
	"outros":     CategoryOther,
}

// NormalizeCategory maps legacy and unknown category names to a known category.
func NormalizeCategory(name string) IngredientCategory {
	if c, ok := legacyCategories[name]; ok {
		return c
	}
	c := IngredientCategory(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range CategoryOrder {
		if c == known {
			return c
		}
	}
	return CategoryOther
}
