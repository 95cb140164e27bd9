package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MealSlot is a named time-of-day meal opportunity.
type MealSlot string

const (
	MealBreakfast      MealSlot = "breakfast"
	MealMorningSnack   MealSlot = "morning_snack"
	MealLunch          MealSlot = "lunch"
	MealAfternoonSnack MealSlot = "afternoon_snack"
	MealDinner         MealSlot = "dinner"
	MealPostWorkout    MealSlot = "post_workout"
)

// MealSlots lists the slots in the order they occur during a day.
var MealSlots = []MealSlot{
	MealBreakfast,
	MealMorningSnack,
	MealLunch,
	MealAfternoonSnack,
	MealDinner,
	MealPostWorkout,
}

// DefaultMealTimes returns the slot times a new planner day starts with.
// Training days (Monday and Wednesday) have an earlier dinner and a
// post-workout meal.
func DefaultMealTimes(wd time.Weekday) map[MealSlot]string {
	times := map[MealSlot]string{
		MealBreakfast:      "07:00",
		MealMorningSnack:   "09:00",
		MealLunch:          "12:30",
		MealAfternoonSnack: "15:30",
		MealDinner:         "18:30",
	}
	if wd == time.Monday || wd == time.Wednesday {
		times[MealDinner] = "18:00"
		times[MealPostWorkout] = "22:00"
	}
	return times
}

// ParseMealSlot accepts current and legacy slot names.
func ParseMealSlot(s string) (MealSlot, error) {
	key := MealSlot(NormalizeKey(strings.TrimSpace(s)))
	key = MealSlot(strings.ReplaceAll(string(key), "-", "_"))
	for _, slot := range MealSlots {
		if slot == key {
			return slot, nil
		}
	}
	return "", fmt.Errorf("invalid meal slot: %s", s)
}

// Label returns a human-readable slot name.
func (m MealSlot) Label() string {
	return strings.ReplaceAll(string(m), "_", " ")
}

// MealKind tells which form of a MealSelection is populated.
type MealKind int

const (
	MealEmpty MealKind = iota
	MealRecipe
	MealItems
)

// MealSelection is either recipe-backed or item-backed, never both.
type MealSelection struct {
	Time     string          `json:"time,omitempty"`
	RecipeID string          `json:"recipeId,omitempty"`
	Items    []StructuredRef `json:"items,omitempty"`
}

// RecipeMeal returns a recipe-backed selection.
func RecipeMeal(time, recipeID string) MealSelection {
	return MealSelection{Time: time, RecipeID: recipeID}
}

// ItemsMeal returns an item-backed selection.
func ItemsMeal(time string, items []StructuredRef) MealSelection {
	return MealSelection{Time: time, Items: items}
}

// Kind reports which form is populated. A recipe id takes precedence.
func (m MealSelection) Kind() MealKind {
	switch {
	case m.RecipeID != "":
		return MealRecipe
	case len(m.Items) > 0:
		return MealItems
	default:
		return MealEmpty
	}
}

// UnmarshalJSON normalizes legacy item shapes and drops items when a recipe
// is also set.
func (m *MealSelection) UnmarshalJSON(data []byte) error {
	var aux struct {
		Time     *string           `json:"time"`
		RecipeID *string           `json:"recipeId"`
		Items    []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = MealSelection{}
	if aux.Time != nil {
		m.Time = *aux.Time
	}
	if aux.RecipeID != nil && *aux.RecipeID != "" {
		m.RecipeID = *aux.RecipeID
		return nil
	}
	items, err := decodeRefList(aux.Items)
	if err != nil {
		return err
	}
	if len(items) > 0 {
		m.Items = items
	}
	return nil
}

// PlannerDayRecord is one day of the meal and activity plan.
type PlannerDayRecord struct {
	Date       string                     `json:"date"`
	Meals      map[MealSlot]MealSelection `json:"meals"`
	Activities []string                   `json:"activities"`
}

// NewPlannerDayRecord returns a record with every slot present and empty.
func NewPlannerDayRecord(date string, times map[MealSlot]string) PlannerDayRecord {
	rec := PlannerDayRecord{
		Date:       date,
		Meals:      make(map[MealSlot]MealSelection, len(MealSlots)),
		Activities: []string{},
	}
	for _, slot := range MealSlots {
		rec.Meals[slot] = MealSelection{Time: times[slot]}
	}
	return rec
}

// HasActivity reports whether id is planned for the day.
func (p PlannerDayRecord) HasActivity(id string) bool {
	for _, a := range p.Activities {
		if a == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the record.
func (p PlannerDayRecord) Clone() PlannerDayRecord {
	c := PlannerDayRecord{
		Date:       p.Date,
		Meals:      make(map[MealSlot]MealSelection, len(p.Meals)),
		Activities: append([]string{}, p.Activities...),
	}
	for slot, meal := range p.Meals {
		if meal.Items != nil {
			meal.Items = append([]StructuredRef(nil), meal.Items...)
		}
		c.Meals[slot] = meal
	}
	return c
}

// UnmarshalJSON migrates the legacy single workout field to activities and
// maps legacy slot names.
func (p *PlannerDayRecord) UnmarshalJSON(data []byte) error {
	var aux struct {
		Date       string                   `json:"date"`
		Meals      map[string]MealSelection `json:"meals"`
		Activities []string                 `json:"activities"`
		Workout    *string                  `json:"workout"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Date = aux.Date
	p.Meals = make(map[MealSlot]MealSelection, len(aux.Meals))
	for key, meal := range aux.Meals {
		p.Meals[MealSlot(NormalizeKey(key))] = meal
	}
	switch {
	case aux.Activities != nil:
		p.Activities = aux.Activities
	case aux.Workout != nil && *aux.Workout != "":
		p.Activities = []string{*aux.Workout}
	default:
		p.Activities = []string{}
	}
	return nil
}

// PlannerDayFor returns a fresh planner day for date with the default slot
// times of its weekday and every activity that recurs on that weekday.
func PlannerDayFor(date string, activities []Activity) (PlannerDayRecord, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return PlannerDayRecord{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	rec := NewPlannerDayRecord(date, DefaultMealTimes(d.Weekday()))
	for _, a := range activities {
		if a.ScheduledOn(d.Weekday()) {
			rec.Activities = append(rec.Activities, a.ID)
		}
	}
	return rec, nil
}
