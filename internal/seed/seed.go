// Package seed holds the data a new store starts with.
package seed

import (
	"time"

	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/models"
)

// ChecklistItems are the default daily targets: one per meal slot, creatine
// and water in millilitres.
func ChecklistItems() []models.ChecklistItemDefinition {
	return []models.ChecklistItemDefinition{
		{Key: string(models.MealBreakfast), Label: "Breakfast", Icon: "☕", Max: 1, Order: 0},
		{Key: string(models.MealMorningSnack), Label: "Morning snack", Icon: "🍎", Max: 1, Order: 1},
		{Key: string(models.MealLunch), Label: "Lunch", Icon: "🍽️", Max: 1, Order: 2},
		{Key: string(models.MealAfternoonSnack), Label: "Afternoon snack", Icon: "🥗", Max: 1, Order: 3},
		{Key: string(models.MealDinner), Label: "Dinner", Icon: "🍲", Max: 1, Order: 4},
		{Key: string(models.MealPostWorkout), Label: "Post-workout", Icon: "🥤", Max: 1, Order: 5},
		{Key: "creatine", Label: "Creatine", Icon: "💊", Max: 1, Order: 6},
		{Key: constants.WaterItemKey, Label: "Water (ml)", Icon: "💧", Max: constants.DefaultWaterGoalMl, Order: 7},
	}
}

func qty(f float64) *float64 { return &f }

// Ingredients is the default catalog.
func Ingredients() []models.Ingredient {
	p, c, s, f, e := models.CategoryProteins, models.CategoryCarbs, models.CategorySalads, models.CategoryFruits, models.CategoryExtras
	return []models.Ingredient{
		{ID: "chicken-cubes", Name: "Chicken cubes", Icon: "🍗", Unit: "g", Category: p, BaseQuantity: qty(120)},
		{ID: "shredded-chicken", Name: "Shredded chicken", Icon: "🍗", Unit: "g", Category: p, BaseQuantity: qty(100)},
		{ID: "breaded-chicken", Name: "Oat-breaded chicken", Icon: "🍗", Unit: "g", Category: p, BaseQuantity: qty(120)},
		{ID: "chicken-thigh", Name: "Chicken thigh", Icon: "🍗", Unit: "g", Category: p, BaseQuantity: qty(150)},
		{ID: "ground-beef", Name: "Ground beef", Icon: "🥩", Unit: "g", Category: p, BaseQuantity: qty(120)},
		{ID: "eggs", Name: "Eggs", Icon: "🥚", Unit: "un", Category: p, BaseQuantity: qty(2)},
		{ID: "fish", Name: "Fish", Icon: "🐟", Unit: "g", Category: p, BaseQuantity: qty(150)},
		{ID: "tuna", Name: "Tuna", Icon: "🐟", Unit: "can", Category: p, BaseQuantity: qty(1)},
		{ID: "rice", Name: "Rice", Icon: "🍚", Unit: "g", Category: c, BaseQuantity: qty(100)},
		{ID: "beans", Name: "Beans", Icon: "🫘", Unit: "g", Category: c, BaseQuantity: qty(80)},
		{ID: "couscous", Name: "Couscous", Icon: "🌾", Unit: "g", Category: c, BaseQuantity: qty(80)},
		{ID: "wholegrain-bread", Name: "Wholegrain bread", Icon: "🍞", Unit: "slice", Category: c, BaseQuantity: qty(2)},
		{ID: "potato", Name: "Potato", Icon: "🥔", Unit: "g", Category: c, BaseQuantity: qty(150)},
		{ID: "sweet-potato", Name: "Sweet potato", Icon: "🍠", Unit: "g", Category: c, BaseQuantity: qty(150)},
		{ID: "pasta", Name: "Pasta", Icon: "🍝", Unit: "g", Category: c, BaseQuantity: qty(80)},
		{ID: "oats", Name: "Oats", Icon: "🌾", Unit: "g", Category: c, BaseQuantity: qty(40)},
		{ID: "lettuce", Name: "Lettuce", Icon: "🥬", Category: s},
		{ID: "tomato", Name: "Tomato", Icon: "🍅", Unit: "un", Category: s, BaseQuantity: qty(1)},
		{ID: "onion", Name: "Onion", Icon: "🧅", Unit: "un", Category: s},
		{ID: "carrot", Name: "Carrot", Icon: "🥕", Unit: "un", Category: s, BaseQuantity: qty(1)},
		{ID: "beetroot", Name: "Beetroot", Icon: "🍠", Unit: "un", Category: s},
		{ID: "cabbage", Name: "Cabbage", Icon: "🥬", Category: s},
		{ID: "cucumber", Name: "Cucumber", Icon: "🥒", Unit: "un", Category: s},
		{ID: "apple", Name: "Apple", Icon: "🍎", Unit: "un", Category: f, BaseQuantity: qty(1)},
		{ID: "banana", Name: "Banana", Icon: "🍌", Unit: "un", Category: f, BaseQuantity: qty(1)},
		{ID: "orange", Name: "Orange", Icon: "🍊", Unit: "un", Category: f, BaseQuantity: qty(1)},
		{ID: "papaya", Name: "Papaya", Icon: "🥭", Unit: "g", Category: f, BaseQuantity: qty(150)},
		{ID: "garlic", Name: "Garlic", Icon: "🧄", Category: e},
		{ID: "nuts", Name: "Nuts", Icon: "🥜", Unit: "g", Category: e, BaseQuantity: qty(20)},
		{ID: "seasoning", Name: "Seasoning", Icon: "🧂", Category: e},
		{ID: "olive-oil", Name: "Olive oil", Icon: "🫒", Unit: "ml", Category: e, BaseQuantity: qty(10)},
	}
}

// Recipes is the default recipe book. Ingredient quantities are per portion.
func Recipes() []models.Recipe {
	ref := func(id string, q float64, unit string) models.StructuredRef {
		return models.StructuredRef{IngredientID: id, Quantity: q, Unit: unit}
	}
	return []models.Recipe{
		{
			ID: "sandwich-classic", Name: "Classic chicken sandwich", Category: "sandwich", PrepTimeMin: 15, Portion: "1 unit",
			Macros:       models.Macros{Protein: 25, Carbs: 35, Fat: 8, Kcal: 312},
			Ingredients:  []models.StructuredRef{ref("wholegrain-bread", 2, "slice"), ref("shredded-chicken", 80, "g"), ref("lettuce", 1, ""), ref("tomato", 1, "un")},
			Instructions: "Assemble the sandwich with all ingredients.",
		},
		{
			ID: "sandwich-egg", Name: "Egg sandwich", Category: "sandwich", PrepTimeMin: 15, Portion: "1 unit",
			Macros:       models.Macros{Protein: 22, Carbs: 35, Fat: 10, Kcal: 328},
			Ingredients:  []models.StructuredRef{ref("wholegrain-bread", 2, "slice"), ref("eggs", 2, "un"), ref("lettuce", 1, ""), ref("tomato", 1, "un")},
			Instructions: "Boil the eggs, then assemble.",
		},
		{
			ID: "couscous-chicken", Name: "Protein couscous with chicken", Category: "couscous", PrepTimeMin: 20, Portion: "1 portion",
			Macros:       models.Macros{Protein: 30, Carbs: 45, Fat: 6, Kcal: 354},
			Ingredients:  []models.StructuredRef{ref("couscous", 80, "g"), ref("chicken-cubes", 120, "g"), ref("onion", 0.5, "un"), ref("tomato", 1, "un"), ref("nuts", 15, "g")},
			Instructions: "Cook the couscous, saute the chicken with vegetables, mix.",
		},
		{
			ID: "couscous-beef", Name: "Protein couscous with beef", Category: "couscous", PrepTimeMin: 25, Portion: "1 portion",
			Macros:       models.Macros{Protein: 32, Carbs: 45, Fat: 10, Kcal: 398},
			Ingredients:  []models.StructuredRef{ref("couscous", 80, "g"), ref("ground-beef", 120, "g"), ref("onion", 0.5, "un"), ref("tomato", 1, "un")},
			Instructions: "Cook the couscous, saute the beef, mix.",
		},
		{
			ID: "chicken-thigh-roast", Name: "Roast chicken thigh", Category: "chicken", PrepTimeMin: 40, Portion: "1 portion",
			Macros:       models.Macros{Protein: 30, Carbs: 2, Fat: 12, Kcal: 226},
			Ingredients:  []models.StructuredRef{ref("chicken-thigh", 150, "g"), ref("seasoning", 1, "")},
			Instructions: "Season and roast for 35 minutes at 200°C.",
		},
		{
			ID: "breaded-chicken-oats", Name: "Oat-breaded chicken", Category: "chicken", PrepTimeMin: 35, Portion: "1 portion",
			Macros:       models.Macros{Protein: 32, Carbs: 15, Fat: 8, Kcal: 260},
			Ingredients:  []models.StructuredRef{ref("breaded-chicken", 120, "g"), ref("oats", 20, "g"), ref("eggs", 1, "un")},
			Instructions: "Dip in egg, coat with oats, air fry for 20 minutes at 200°C.",
		},
		{
			ID: "beef-and-beans", Name: "Ground beef with beans", Category: "beef", PrepTimeMin: 35, Portion: "1 portion",
			Macros:       models.Macros{Protein: 30, Carbs: 25, Fat: 15, Kcal: 349},
			Ingredients:  []models.StructuredRef{ref("ground-beef", 120, "g"), ref("beans", 80, "g"), ref("onion", 0.5, "un"), ref("tomato", 1, "un")},
			Instructions: "Brown the beef, add the beans and cook together.",
		},
		{
			ID: "oven-omelette", Name: "Oven omelette muffins", Category: "other", PrepTimeMin: 30, Portion: "3 units",
			Macros:       models.Macros{Protein: 20, Carbs: 3, Fat: 12, Kcal: 200},
			Ingredients:  []models.StructuredRef{ref("eggs", 3, "un"), ref("shredded-chicken", 50, "g"), ref("onion", 0.25, "un"), ref("tomato", 0.5, "un")},
			Instructions: "Beat the eggs, mix everything, bake in muffin tins for 20 minutes at 180°C.",
		},
	}
}

// Activities are the default scheduled activities.
func Activities() []models.Activity {
	return []models.Activity{
		{ID: "volleyball", Name: "Volleyball", Icon: "🏐", Time: "20:00", DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday}},
		{ID: "gym", Name: "Gym", Icon: "💪", DaysOfWeek: []time.Weekday{time.Tuesday, time.Thursday, time.Friday, time.Saturday}},
	}
}

// PrepTasks returns the default batch-cooking tasks for each prep day.
func PrepTasks() map[string][]models.PrepTask {
	return map[string][]models.PrepTask{
		constants.PrepDaySunday: {
			{Task: "Boil eggs", Icon: "🥚"},
			{Task: "Cook chicken (several versions)", Icon: "🍗"},
			{Task: "Prepare sandwiches to freeze", Icon: "🥪"},
			{Task: "Chop vegetables", Icon: "🥕"},
			{Task: "Make meatballs", Icon: "🍖"},
			{Task: "Portion everything", Icon: "📦"},
			{Task: "Sort the week's fruit", Icon: "🍎"},
		},
		constants.PrepDayWednesday: {
			{Task: "Restock eggs", Icon: "🥚"},
			{Task: "Restock chicken", Icon: "🍗"},
			{Task: "Restock sandwiches", Icon: "🥪"},
			{Task: "Check salads", Icon: "🥗"},
		},
	}
}

// Data returns a complete starter document.
func Data() models.Data {
	return models.Data{
		Recipes:        Recipes(),
		Ingredients:    Ingredients(),
		Activities:     Activities(),
		ChecklistItems: ChecklistItems(),
		WeeklyPrep:     PrepTasks(),
	}
}
