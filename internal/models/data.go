package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// Data is the whole planner document. It is the unit exchanged with the
// remote mirror, written by `export` and read by `import`.
type Data struct {
	Checklist      []DayChecklistRecord      `json:"checklist"`
	Planner        []PlannerDayRecord        `json:"planner"`
	Recipes        []Recipe                  `json:"recipes"`
	Ingredients    []Ingredient              `json:"ingredients"`
	Activities     []Activity                `json:"activities"`
	Habits         []HabitDefinition         `json:"dailyHabits"`
	ChecklistItems []ChecklistItemDefinition `json:"checklistItems"`
	ShoppingList   []ShoppingItem            `json:"shoppingList"`
	History        []WeekSnapshot            `json:"history"`
	WeeklyPrep     map[string][]PrepTask     `json:"weeklyPrep"`
	LastUpdated    time.Time                 `json:"lastUpdated"`
}

// UnmarshalJSON accepts the older document layout where ingredients were
// grouped by category and activities were keyed by id.
func (d *Data) UnmarshalJSON(data []byte) error {
	type alias Data
	var aux struct {
		alias
		Ingredients json.RawMessage `json:"ingredients"`
		Activities  json.RawMessage `json:"activities"`
		LastUpdated json.RawMessage `json:"lastUpdated"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*d = Data(aux.alias)

	ingredients, err := decodeIngredients(aux.Ingredients)
	if err != nil {
		return err
	}
	d.Ingredients = ingredients

	activities, err := decodeActivities(aux.Activities)
	if err != nil {
		return err
	}
	d.Activities = activities

	d.LastUpdated, err = decodeTimestamp(aux.LastUpdated)
	if err != nil {
		return fmt.Errorf("invalid lastUpdated: %w", err)
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func decodeIngredients(raw json.RawMessage) ([]Ingredient, error) {
	if isNull(raw) {
		return nil, nil
	}
	raw = bytes.TrimSpace(raw)
	if raw[0] == '[' {
		var list []Ingredient
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("invalid ingredients: %w", err)
		}
		return list, nil
	}

	var grouped map[string][]Ingredient
	if err := json.Unmarshal(raw, &grouped); err != nil {
		return nil, fmt.Errorf("invalid ingredients: %w", err)
	}
	groups := make([]string, 0, len(grouped))
	for g := range grouped {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		ri, rj := CategoryRank(NormalizeCategory(groups[i])), CategoryRank(NormalizeCategory(groups[j]))
		if ri != rj {
			return ri < rj
		}
		return groups[i] < groups[j]
	})

	var list []Ingredient
	for _, g := range groups {
		for _, ing := range grouped[g] {
			if ing.Category == "" {
				ing.Category = NormalizeCategory(g)
			}
			list = append(list, ing)
		}
	}
	return list, nil
}

func decodeActivities(raw json.RawMessage) ([]Activity, error) {
	if isNull(raw) {
		return nil, nil
	}
	raw = bytes.TrimSpace(raw)
	if raw[0] == '[' {
		var list []Activity
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("invalid activities: %w", err)
		}
		return list, nil
	}

	var keyed map[string]Activity
	if err := json.Unmarshal(raw, &keyed); err != nil {
		return nil, fmt.Errorf("invalid activities: %w", err)
	}
	ids := make([]string, 0, len(keyed))
	for id := range keyed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	list := make([]Activity, 0, len(ids))
	for _, id := range ids {
		a := keyed[id]
		if a.ID == "" {
			a.ID = id
		}
		list = append(list, a)
	}
	return list, nil
}

// decodeTimestamp reads RFC3339 strings and epoch milliseconds.
func decodeTimestamp(raw json.RawMessage) (time.Time, error) {
	if isNull(raw) {
		return time.Time{}, nil
	}
	raw = bytes.TrimSpace(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, err
		}
		if s == "" {
			return time.Time{}, nil
		}
		return time.Parse(time.RFC3339Nano, s)
	}
	var ms int64
	if err := json.Unmarshal(raw, &ms); err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}
