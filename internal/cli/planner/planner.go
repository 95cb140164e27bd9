package planner

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dietplan/internal/catalog"
	"github.com/julianstephens/dietplan/internal/cli"
	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/shopping"
)

type PlanCmd struct {
	Show     PlanShowCmd     `cmd:"" help:"Show a day's meals and activities." default:"withargs"`
	Recipe   PlanRecipeCmd   `cmd:"" help:"Use a recipe for a meal slot."`
	Add      PlanAddCmd      `cmd:"" help:"Add an ingredient to a meal slot."`
	Remove   PlanRemoveCmd   `cmd:"" help:"Remove an ingredient from a meal slot by position."`
	Clear    PlanClearCmd    `cmd:"" help:"Empty a meal slot, keeping its time."`
	Time     PlanTimeCmd     `cmd:"" help:"Change a meal slot's time."`
	Activity PlanActivityCmd `cmd:"" help:"Plan or unplan an activity."`
}

type PlanShowCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, today, yesterday, tomorrow)."`
}

func (c *PlanShowCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	day, err := ctx.Store.GetPlannerDay(date)
	if err != nil {
		return err
	}
	recipes, err := ctx.Store.GetRecipes()
	if err != nil {
		return err
	}
	ingredients, err := ctx.Store.GetIngredients()
	if err != nil {
		return err
	}
	activities, err := ctx.Store.GetActivities()
	if err != nil {
		return err
	}
	fmt.Print(RenderDay(day, recipes, ingredients, activities))
	return nil
}

// RenderDay formats a planner day with recipe and ingredient names resolved.
func RenderDay(day models.PlannerDayRecord, recipes []models.Recipe, ingredients []models.Ingredient, activities []models.Activity) string {
	recipeNames := make(map[string]string, len(recipes))
	for _, r := range recipes {
		recipeNames[r.ID] = r.Name
	}
	ingredientNames := make(map[string]string, len(ingredients))
	for _, ing := range ingredients {
		ingredientNames[ing.ID] = ing.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", cli.BoldStyle.Render("Plan for "+day.Date))
	for _, slot := range models.MealSlots {
		meal, ok := day.Meals[slot]
		if !ok {
			continue
		}
		timeLabel := meal.Time
		if timeLabel == "" {
			timeLabel = "--:--"
		}
		fmt.Fprintf(&b, "  %s  %-16s ", timeLabel, slot.Label())
		switch meal.Kind() {
		case models.MealRecipe:
			name, ok := recipeNames[meal.RecipeID]
			if !ok {
				name = meal.RecipeID + " (missing)"
			}
			fmt.Fprintf(&b, "%s\n", name)
		case models.MealItems:
			b.WriteString("\n")
			for i, item := range meal.Items {
				name, ok := ingredientNames[item.IngredientID]
				if !ok {
					name = item.IngredientID
				}
				fmt.Fprintf(&b, "      %d. %s %s\n", i+1, name,
					cli.DimStyle.Render(shopping.FormatQuantity(item.Quantity, item.Unit)))
			}
		default:
			fmt.Fprintf(&b, "%s\n", cli.DimStyle.Render("-"))
		}
	}

	activityNames := make(map[string]models.Activity, len(activities))
	for _, a := range activities {
		activityNames[a.ID] = a
	}
	if len(day.Activities) > 0 {
		fmt.Fprintf(&b, "\n%s\n\n", cli.BoldStyle.Render("Activities"))
		for _, id := range day.Activities {
			a, ok := activityNames[id]
			if !ok {
				fmt.Fprintf(&b, "  %s (missing)\n", id)
				continue
			}
			name := a.Name
			if a.Icon != "" {
				name = a.Icon + " " + name
			}
			if a.Time != "" {
				fmt.Fprintf(&b, "  %s  %s\n", a.Time, name)
			} else {
				fmt.Fprintf(&b, "         %s\n", name)
			}
		}
	}
	return b.String()
}

type PlanRecipeCmd struct {
	Slot   string `arg:"" help:"Meal slot (breakfast, morning_snack, lunch, afternoon_snack, dinner, post_workout)."`
	Recipe string `arg:"" help:"Recipe id or name."`
	Date   string `help:"Date (default: today)."`
}

func (c *PlanRecipeCmd) Run(ctx *cli.Context) error {
	slot, err := models.ParseMealSlot(c.Slot)
	if err != nil {
		return err
	}
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	recipes, err := ctx.Store.GetRecipes()
	if err != nil {
		return err
	}
	recipe, ok := catalog.ResolveRecipe(recipes, c.Recipe)
	if !ok {
		return apperrors.NotFound("recipe", c.Recipe)
	}
	if _, err := ctx.Tracker().SetMealRecipe(date, slot, recipe.ID); err != nil {
		return err
	}
	fmt.Printf("%s on %s: %s\n", slot.Label(), date, recipe.Name)
	return nil
}

type PlanAddCmd struct {
	Slot       string   `arg:"" help:"Meal slot."`
	Ingredient string   `arg:"" help:"Ingredient id or name."`
	Quantity   *float64 `arg:"" optional:"" help:"Quantity (default: the ingredient's base quantity)."`
	Unit       string   `help:"Unit (default: the ingredient's unit)."`
	Date       string   `help:"Date (default: today)."`
}

func (c *PlanAddCmd) Run(ctx *cli.Context) error {
	slot, err := models.ParseMealSlot(c.Slot)
	if err != nil {
		return err
	}
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	ingredients, err := ctx.Store.GetIngredients()
	if err != nil {
		return err
	}
	ing, ok := catalog.ResolveIngredient(ingredients, c.Ingredient)
	if !ok {
		return apperrors.NotFound("ingredient", c.Ingredient)
	}
	day, err := ctx.Tracker().AddMealItem(date, slot, ing.ID, c.Quantity, c.Unit)
	if err != nil {
		return err
	}
	items := day.Meals[slot].Items
	added := items[len(items)-1]
	fmt.Printf("Added %s (%s) to %s on %s\n", ing.Name,
		shopping.FormatQuantity(added.Quantity, added.Unit), slot.Label(), date)
	return nil
}

type PlanRemoveCmd struct {
	Slot     string `arg:"" help:"Meal slot."`
	Position int    `arg:"" help:"Item position as shown by 'plan show' (1-based)."`
	Date     string `help:"Date (default: today)."`
}

func (c *PlanRemoveCmd) Run(ctx *cli.Context) error {
	slot, err := models.ParseMealSlot(c.Slot)
	if err != nil {
		return err
	}
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	if _, err := ctx.Tracker().RemoveMealItem(date, slot, c.Position-1); err != nil {
		return err
	}
	fmt.Printf("Removed item %d from %s on %s\n", c.Position, slot.Label(), date)
	return nil
}

type PlanClearCmd struct {
	Slot string `arg:"" help:"Meal slot."`
	Date string `help:"Date (default: today)."`
}

func (c *PlanClearCmd) Run(ctx *cli.Context) error {
	slot, err := models.ParseMealSlot(c.Slot)
	if err != nil {
		return err
	}
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	if _, err := ctx.Tracker().ClearMeal(date, slot); err != nil {
		return err
	}
	fmt.Printf("Cleared %s on %s\n", slot.Label(), date)
	return nil
}

type PlanTimeCmd struct {
	Slot string `arg:"" help:"Meal slot."`
	Time string `arg:"" help:"Time in HH:MM format."`
	Date string `help:"Date (default: today)."`
}

func (c *PlanTimeCmd) Run(ctx *cli.Context) error {
	slot, err := models.ParseMealSlot(c.Slot)
	if err != nil {
		return err
	}
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	if _, err := ctx.Tracker().SetMealTime(date, slot, c.Time); err != nil {
		return err
	}
	fmt.Printf("%s on %s at %s\n", slot.Label(), date, c.Time)
	return nil
}

type PlanActivityCmd struct {
	Add    PlanActivityAddCmd    `cmd:"" help:"Plan an activity for a day."`
	Remove PlanActivityRemoveCmd `cmd:"" help:"Unplan an activity for a day."`
}

type PlanActivityAddCmd struct {
	Activity string `arg:"" help:"Activity id or name."`
	Date     string `help:"Date (default: today)."`
}

func (c *PlanActivityAddCmd) Run(ctx *cli.Context) error {
	return setActivity(ctx, c.Activity, c.Date, true)
}

type PlanActivityRemoveCmd struct {
	Activity string `arg:"" help:"Activity id or name."`
	Date     string `help:"Date (default: today)."`
}

func (c *PlanActivityRemoveCmd) Run(ctx *cli.Context) error {
	return setActivity(ctx, c.Activity, c.Date, false)
}

func setActivity(ctx *cli.Context, ref, dateArg string, planned bool) error {
	date, err := ctx.Date(dateArg)
	if err != nil {
		return err
	}
	activity, err := resolveActivity(ctx, ref)
	if err != nil {
		return err
	}
	if _, err := ctx.Tracker().SetActivityPlanned(date, activity.ID, planned); err != nil {
		return err
	}
	if planned {
		fmt.Printf("Planned %s on %s\n", activity.Name, date)
	} else {
		fmt.Printf("Unplanned %s on %s\n", activity.Name, date)
	}
	return nil
}

func resolveActivity(ctx *cli.Context, ref string) (models.Activity, error) {
	activities, err := ctx.Store.GetActivities()
	if err != nil {
		return models.Activity{}, err
	}
	for _, a := range activities {
		if a.ID == ref {
			return a, nil
		}
	}
	for _, a := range activities {
		if strings.EqualFold(a.Name, ref) {
			return a, nil
		}
	}
	return models.Activity{}, apperrors.NotFound("activity", ref)
}
