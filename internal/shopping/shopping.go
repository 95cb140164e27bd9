// Package shopping turns a meal plan into ingredient quantities to buy.
package shopping

import (
	"sort"
	"time"

	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/utils"
)

// ConversionTable maps ingredient ids to a cooked-to-raw multiplier.
type ConversionTable map[string]float64

// DefaultConversions covers the proteins that are planned by cooked weight
// but bought raw.
func DefaultConversions() ConversionTable {
	return ConversionTable{
		"chicken-cubes":    constants.CookedToRawFactor,
		"shredded-chicken": constants.CookedToRawFactor,
		"breaded-chicken":  constants.CookedToRawFactor,
		"chicken-thigh":    constants.CookedToRawFactor,
		"ground-beef":      constants.CookedToRawFactor,
		// Legacy ids of the same cuts
		"frango-cubos":    constants.CookedToRawFactor,
		"frango-desfiado": constants.CookedToRawFactor,
		"frango-empanado": constants.CookedToRawFactor,
		"sobrecoxa":       constants.CookedToRawFactor,
		"carne-moida":     constants.CookedToRawFactor,
	}
}

// Factor returns the multiplier for id, 1.0 when the id has no entry.
func (c ConversionTable) Factor(id string) float64 {
	if f, ok := c[id]; ok && f > 0 {
		return f
	}
	return 1.0
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Dates lists the days of the range as YYYY-MM-DD.
func (r DateRange) Dates() []string {
	return utils.DatesInRange(r.Start, r.End)
}

// List maps an ingredient id to the raw quantity needed.
type List map[string]float64

// Build accumulates the ingredients of every meal planned within r.
//
// Recipe-backed meals contribute each recipe ingredient and item-backed meals
// contribute each item, both multiplied by the ingredient's conversion factor.
// Empty meals and meals whose recipe is missing contribute nothing. Records
// are looked up by date and meals visited in slot order, so the totals do not
// depend on the order of the input slices.
func Build(records []models.PlannerDayRecord, recipes []models.Recipe, r DateRange, conv ConversionTable) List {
	byDate := make(map[string]models.PlannerDayRecord, len(records))
	for _, rec := range records {
		byDate[rec.Date] = rec
	}
	byID := make(map[string]models.Recipe, len(recipes))
	for _, recipe := range recipes {
		byID[recipe.ID] = recipe
	}

	list := make(List)
	for _, date := range r.Dates() {
		day, ok := byDate[date]
		if !ok {
			continue
		}
		for _, slot := range mealOrder(day) {
			list.addMeal(day.Meals[slot], byID, conv)
		}
	}
	return list
}

// mealOrder returns the day's slots: known slots in day order, then any
// others sorted by name.
func mealOrder(day models.PlannerDayRecord) []models.MealSlot {
	order := make([]models.MealSlot, 0, len(day.Meals))
	known := make(map[models.MealSlot]bool, len(models.MealSlots))
	for _, slot := range models.MealSlots {
		known[slot] = true
		if _, ok := day.Meals[slot]; ok {
			order = append(order, slot)
		}
	}
	var extra []models.MealSlot
	for slot := range day.Meals {
		if !known[slot] {
			extra = append(extra, slot)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(order, extra...)
}

func (l List) addMeal(meal models.MealSelection, recipes map[string]models.Recipe, conv ConversionTable) {
	switch meal.Kind() {
	case models.MealRecipe:
		recipe, ok := recipes[meal.RecipeID]
		if !ok {
			return
		}
		l.addRefs(recipe.Ingredients, conv)
	case models.MealItems:
		l.addRefs(meal.Items, conv)
	}
}

func (l List) addRefs(refs []models.StructuredRef, conv ConversionTable) {
	for _, ref := range refs {
		if ref.IngredientID == "" {
			continue
		}
		l[ref.IngredientID] += ref.Quantity * conv.Factor(ref.IngredientID)
	}
}

// Line is one resolved entry of a grouped shopping list.
type Line struct {
	IngredientID string  `json:"id" yaml:"id"`
	Name         string  `json:"name" yaml:"name"`
	Icon         string  `json:"icon,omitempty" yaml:"icon,omitempty"`
	Quantity     float64 `json:"quantity" yaml:"quantity"`
	Unit         string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

// Group holds the lines of one ingredient category.
type Group struct {
	Category models.IngredientCategory `json:"category" yaml:"category"`
	Lines    []Line                    `json:"items" yaml:"items"`
}

// GroupByCategory resolves each id against catalog and groups the lines by
// category. Ids missing from the catalog go to the other category under
// their raw id. Groups follow the fixed category order, lines are sorted by
// name then id, and empty categories are left out.
func GroupByCategory(list List, catalog []models.Ingredient) []Group {
	byID := make(map[string]models.Ingredient, len(catalog))
	for _, ing := range catalog {
		byID[ing.ID] = ing
	}

	buckets := make(map[models.IngredientCategory][]Line)
	for id, qty := range list {
		line := Line{IngredientID: id, Name: id, Quantity: qty}
		category := models.CategoryOther
		if ing, ok := byID[id]; ok {
			if ing.Name != "" {
				line.Name = ing.Name
			}
			line.Icon = ing.Icon
			line.Unit = ing.Unit
			category = models.NormalizeCategory(string(ing.Category))
		}
		buckets[category] = append(buckets[category], line)
	}

	groups := make([]Group, 0, len(buckets))
	for _, category := range models.CategoryOrder {
		lines, ok := buckets[category]
		if !ok {
			continue
		}
		sort.Slice(lines, func(i, j int) bool {
			if lines[i].Name != lines[j].Name {
				return lines[i].Name < lines[j].Name
			}
			return lines[i].IngredientID < lines[j].IngredientID
		})
		groups = append(groups, Group{Category: category, Lines: lines})
	}
	return groups
}
