package validation

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/models"
)

// ConflictType represents the type of integrity problem
type ConflictType string

const (
	ConflictDuplicateID       ConflictType = "duplicate_id"
	ConflictDuplicateDate     ConflictType = "duplicate_date"
	ConflictInvalidDate       ConflictType = "invalid_date"
	ConflictInvalidTime       ConflictType = "invalid_time"
	ConflictInvalidTarget     ConflictType = "invalid_target"
	ConflictUnknownIngredient ConflictType = "unknown_ingredient"
	ConflictUnknownRecipe     ConflictType = "unknown_recipe"
	ConflictUnknownActivity   ConflictType = "unknown_activity"
)

// Conflict represents a detected problem in the planner document
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // ids involved
	Slot        models.MealSlot
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// FixAction represents an action taken during auto-fix
type FixAction struct {
	Action         string   // Human-readable description of the action
	SourceConflict Conflict // The conflict that triggered this fix action
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Fixable reports whether AutoFix can repair at least one conflict.
func (vr *ValidationResult) Fixable() bool {
	return slices.ContainsFunc(vr.Conflicts, fixable)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No problems detected."
	}

	var b strings.Builder
	b.WriteString("Problems detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks a planner document for broken references and bad values
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// ValidateData checks every collection of data. Catalog problems are listed
// first, followed by checklist and planner problems in date order.
func (v *Validator) ValidateData(data models.Data) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	ingredients := make(map[string]bool, len(data.Ingredients))
	ids := make([]string, 0, len(data.Ingredients))
	for _, ing := range data.Ingredients {
		ingredients[ing.ID] = true
		ids = append(ids, ing.ID)
	}
	checkDuplicates(&result, "ingredient", ids)

	recipes := make(map[string]bool, len(data.Recipes))
	ids = ids[:0]
	for _, r := range data.Recipes {
		recipes[r.ID] = true
		ids = append(ids, r.ID)
		for _, ref := range r.Ingredients {
			if !ingredients[ref.IngredientID] {
				result.add(Conflict{
					Type:        ConflictUnknownIngredient,
					Description: fmt.Sprintf("Recipe \"%s\" uses unknown ingredient %q", r.Name, ref.IngredientID),
					Items:       []string{r.ID, ref.IngredientID},
				})
			}
		}
	}
	checkDuplicates(&result, "recipe", ids)

	activities := make(map[string]bool, len(data.Activities))
	ids = ids[:0]
	for _, a := range data.Activities {
		activities[a.ID] = true
		ids = append(ids, a.ID)
		if a.Time != "" && !isValidTimeFormat(a.Time) {
			result.add(Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Activity \"%s\" has invalid time: %s", a.Name, a.Time),
				Items:       []string{a.ID},
			})
		}
	}
	checkDuplicates(&result, "activity", ids)

	ids = ids[:0]
	for _, h := range data.Habits {
		ids = append(ids, h.ID)
		if h.Type != models.HabitBoolean && h.Target < 1 {
			result.add(Conflict{
				Type:        ConflictInvalidTarget,
				Description: fmt.Sprintf("Habit \"%s\" is a %s habit with target %v (must be at least 1)", h.Name, h.Type, h.Target),
				Items:       []string{h.ID},
			})
		}
	}
	checkDuplicates(&result, "habit", ids)

	ids = ids[:0]
	for _, item := range data.ChecklistItems {
		ids = append(ids, item.Key)
		if item.Max < 1 {
			result.add(Conflict{
				Type:        ConflictInvalidTarget,
				Description: fmt.Sprintf("Checklist item \"%s\" has max %v (must be at least 1)", item.Label, item.Max),
				Items:       []string{item.Key},
			})
		}
	}
	checkDuplicates(&result, "checklist item", ids)

	v.validateChecklist(&result, data.Checklist)
	v.validatePlanner(&result, data.Planner, ingredients, recipes, activities)
	return result
}

func (v *Validator) validateChecklist(result *ValidationResult, records []models.DayChecklistRecord) {
	seen := make(map[string]int)
	dates := make([]string, 0, len(records))
	for _, rec := range records {
		if !isValidDate(rec.Date) {
			result.add(Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Checklist record has invalid date: %q", rec.Date),
				Date:        rec.Date,
			})
			continue
		}
		if seen[rec.Date] == 0 {
			dates = append(dates, rec.Date)
		}
		seen[rec.Date]++
	}
	sort.Strings(dates)
	for _, date := range dates {
		if n := seen[date]; n > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateDate,
				Description: fmt.Sprintf("Checklist has %d records for %s (the last one is used)", n, date),
				Date:        date,
			})
		}
	}
}

func (v *Validator) validatePlanner(result *ValidationResult, days []models.PlannerDayRecord, ingredients, recipes, activities map[string]bool) {
	sorted := slices.Clone(days)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	for _, day := range sorted {
		if !isValidDate(day.Date) {
			result.add(Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Planner day has invalid date: %q", day.Date),
				Date:        day.Date,
			})
			continue
		}

		for _, slot := range slotsOf(day) {
			meal := day.Meals[slot]
			if meal.Time != "" && !isValidTimeFormat(meal.Time) {
				result.add(Conflict{
					Type:        ConflictInvalidTime,
					Description: fmt.Sprintf("%s %s has invalid time: %s", day.Date, slot.Label(), meal.Time),
					Date:        day.Date,
					Slot:        slot,
				})
			}
			switch meal.Kind() {
			case models.MealRecipe:
				if !recipes[meal.RecipeID] {
					result.add(Conflict{
						Type:        ConflictUnknownRecipe,
						Description: fmt.Sprintf("%s %s uses unknown recipe %q", day.Date, slot.Label(), meal.RecipeID),
						Date:        day.Date,
						Items:       []string{meal.RecipeID},
						Slot:        slot,
					})
				}
			case models.MealItems:
				for _, item := range meal.Items {
					if !ingredients[item.IngredientID] {
						result.add(Conflict{
							Type:        ConflictUnknownIngredient,
							Description: fmt.Sprintf("%s %s uses unknown ingredient %q", day.Date, slot.Label(), item.IngredientID),
							Date:        day.Date,
							Items:       []string{item.IngredientID},
							Slot:        slot,
						})
					}
				}
			}
		}

		for _, id := range day.Activities {
			if !activities[id] {
				result.add(Conflict{
					Type:        ConflictUnknownActivity,
					Description: fmt.Sprintf("%s plans unknown activity %q", day.Date, id),
					Date:        day.Date,
					Items:       []string{id},
				})
			}
		}
	}
}

func checkDuplicates(result *ValidationResult, kind string, ids []string) {
	count := make(map[string]int, len(ids))
	var order []string
	for _, id := range ids {
		if count[id] == 0 {
			order = append(order, id)
		}
		count[id]++
	}
	for _, id := range order {
		if count[id] > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("Duplicate %s id: %q (%d entries)", kind, id, count[id]),
				Items:       []string{id},
			})
		}
	}
}

// slotsOf returns the known slots of day in day order, then any others by name.
func slotsOf(day models.PlannerDayRecord) []models.MealSlot {
	var slots []models.MealSlot
	for _, slot := range models.MealSlots {
		if _, ok := day.Meals[slot]; ok {
			slots = append(slots, slot)
		}
	}
	var extra []models.MealSlot
	for slot := range day.Meals {
		if !slices.Contains(models.MealSlots, slot) {
			extra = append(extra, slot)
		}
	}
	slices.Sort(extra)
	return append(slots, extra...)
}

func fixable(c Conflict) bool {
	switch c.Type {
	case ConflictUnknownRecipe, ConflictUnknownActivity, ConflictDuplicateDate:
		return true
	case ConflictUnknownIngredient:
		return c.Slot != ""
	}
	return false
}

// AutoFix repairs the dangling references in data that conflicts describe:
// meals pointing at missing recipes are cleared, missing ingredients are
// dropped from meals, missing activities are unplanned, and duplicate
// checklist records are collapsed to the last one. Recipes that use unknown
// ingredients are left alone since dropping an ingredient changes the recipe.
func AutoFix(conflicts []Conflict, data *models.Data) []FixAction {
	actions := []FixAction{}
	planner := make(map[string]int, len(data.Planner))
	for i, day := range data.Planner {
		planner[day.Date] = i
	}

	for _, conflict := range conflicts {
		switch conflict.Type {
		case ConflictUnknownRecipe:
			i, ok := planner[conflict.Date]
			if !ok {
				continue
			}
			meal := data.Planner[i].Meals[conflict.Slot]
			data.Planner[i].Meals[conflict.Slot] = models.MealSelection{Time: meal.Time}
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Cleared %s %s (recipe %q no longer exists)", conflict.Date, conflict.Slot.Label(), meal.RecipeID),
				SourceConflict: conflict,
			})

		case ConflictUnknownIngredient:
			i, ok := planner[conflict.Date]
			if !ok || conflict.Slot == "" || len(conflict.Items) == 0 {
				continue
			}
			missing := conflict.Items[0]
			meal := data.Planner[i].Meals[conflict.Slot]
			before := len(meal.Items)
			meal.Items = slices.DeleteFunc(slices.Clone(meal.Items), func(r models.StructuredRef) bool { return r.IngredientID == missing })
			if len(meal.Items) == before {
				continue
			}
			if len(meal.Items) == 0 {
				meal.Items = nil
			}
			data.Planner[i].Meals[conflict.Slot] = meal
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Removed unknown ingredient %q from %s %s", missing, conflict.Date, conflict.Slot.Label()),
				SourceConflict: conflict,
			})

		case ConflictUnknownActivity:
			i, ok := planner[conflict.Date]
			if !ok || len(conflict.Items) == 0 {
				continue
			}
			missing := conflict.Items[0]
			data.Planner[i].Activities = slices.DeleteFunc(data.Planner[i].Activities, func(id string) bool { return id == missing })
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Unplanned unknown activity %q on %s", missing, conflict.Date),
				SourceConflict: conflict,
			})

		case ConflictDuplicateDate:
			last := -1
			for i, rec := range data.Checklist {
				if rec.Date == conflict.Date {
					last = i
				}
			}
			if last < 0 {
				continue
			}
			keep := data.Checklist[last]
			kept := data.Checklist[:0]
			removed := 0
			for _, rec := range data.Checklist {
				if rec.Date == conflict.Date {
					removed++
					continue
				}
				kept = append(kept, rec)
			}
			data.Checklist = append(kept, keep)
			actions = append(actions, FixAction{
				Action:         fmt.Sprintf("Collapsed %d checklist records for %s into the last one", removed, conflict.Date),
				SourceConflict: conflict,
			})
		}
	}
	return actions
}

func isValidTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}

func isValidDate(date string) bool {
	_, err := time.Parse(constants.DateFormat, date)
	return err == nil
}
