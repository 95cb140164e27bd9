package recipes

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/dietplan/internal/catalog"
	"github.com/julianstephens/dietplan/internal/cli"
	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/shopping"
)

type RecipeCmd struct {
	List   RecipeListCmd   `cmd:"" help:"List recipes." default:"1"`
	Show   RecipeShowCmd   `cmd:"" help:"Show a recipe."`
	Search RecipeSearchCmd `cmd:"" help:"Fuzzy-search recipes by name or category."`
	Delete RecipeDeleteCmd `cmd:"" help:"Delete a recipe."`
}

type RecipeListCmd struct {
	Category string `help:"Only list recipes of this category."`
}

func (c *RecipeListCmd) Run(ctx *cli.Context) error {
	recipes, err := ctx.Store.GetRecipes()
	if err != nil {
		return err
	}
	shown := 0
	for _, r := range recipes {
		if c.Category != "" && !strings.EqualFold(r.Category, c.Category) {
			continue
		}
		printRecipeLine(r)
		shown++
	}
	if shown == 0 {
		fmt.Println("No recipes found.")
	}
	return nil
}

func printRecipeLine(r models.Recipe) {
	fmt.Printf("  %-32s %-12s %4.0f kcal  %s\n", r.Name, r.Category, r.Macros.Kcal, cli.DimStyle.Render(r.ID))
}

type RecipeShowCmd struct {
	Recipe string `arg:"" help:"Recipe id or name."`
}

func (c *RecipeShowCmd) Run(ctx *cli.Context) error {
	recipes, err := ctx.Store.GetRecipes()
	if err != nil {
		return err
	}
	r, ok := catalog.ResolveRecipe(recipes, c.Recipe)
	if !ok {
		return apperrors.NotFound("recipe", c.Recipe)
	}
	ingredients, err := ctx.Store.GetIngredients()
	if err != nil {
		return err
	}
	names := make(map[string]string, len(ingredients))
	for _, ing := range ingredients {
		names[ing.ID] = ing.Name
	}

	fmt.Println(cli.BoldStyle.Render(r.Name))
	fmt.Printf("Category: %s\n", r.Category)
	if r.PrepTimeMin > 0 {
		fmt.Printf("Prep time: %d min\n", r.PrepTimeMin)
	}
	if r.Portion != "" {
		fmt.Printf("Portion: %s\n", r.Portion)
	}
	fmt.Printf("Macros: %.0f kcal, %.0fg protein, %.0fg carbs, %.0fg fat\n",
		r.Macros.Kcal, r.Macros.Protein, r.Macros.Carbs, r.Macros.Fat)
	fmt.Println("\nIngredients:")
	for _, ref := range r.Ingredients {
		name, ok := names[ref.IngredientID]
		if !ok {
			name = ref.IngredientID
		}
		fmt.Printf("  - %s: %s\n", name, shopping.FormatQuantity(ref.Quantity, ref.Unit))
	}
	if r.Instructions != "" {
		fmt.Printf("\n%s\n", r.Instructions)
	}
	return nil
}

type RecipeSearchCmd struct {
	Query string `arg:"" help:"Search text."`
}

func (c *RecipeSearchCmd) Run(ctx *cli.Context) error {
	recipes, err := ctx.Store.GetRecipes()
	if err != nil {
		return err
	}
	found := catalog.SearchRecipes(recipes, c.Query)
	if len(found) == 0 {
		fmt.Println("No matching recipes.")
		return nil
	}
	for _, r := range found {
		printRecipeLine(r)
	}
	return nil
}

type RecipeDeleteCmd struct {
	Recipe string `arg:"" help:"Recipe id or exact name."`
}

func (c *RecipeDeleteCmd) Run(ctx *cli.Context) error {
	recipes, err := ctx.Store.GetRecipes()
	if err != nil {
		return err
	}
	var target *models.Recipe
	for i := range recipes {
		if recipes[i].ID == c.Recipe || strings.EqualFold(recipes[i].Name, c.Recipe) {
			target = &recipes[i]
			break
		}
	}
	if target == nil {
		return apperrors.NotFound("recipe", c.Recipe)
	}
	if err := ctx.Store.DeleteRecipe(target.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted recipe: %s\n", target.Name)
	return nil
}

type IngredientCmd struct {
	List   IngredientListCmd   `cmd:"" help:"List ingredients by category." default:"1"`
	Add    IngredientAddCmd    `cmd:"" help:"Add or update an ingredient."`
	Search IngredientSearchCmd `cmd:"" help:"Fuzzy-search ingredients."`
	Delete IngredientDeleteCmd `cmd:"" help:"Delete an ingredient."`
}

type IngredientListCmd struct{}

func (c *IngredientListCmd) Run(ctx *cli.Context) error {
	ingredients, err := ctx.Store.GetIngredients()
	if err != nil {
		return err
	}
	if len(ingredients) == 0 {
		fmt.Println("No ingredients found.")
		return nil
	}
	for _, category := range models.CategoryOrder {
		var lines []models.Ingredient
		for _, ing := range ingredients {
			if models.NormalizeCategory(string(ing.Category)) == category {
				lines = append(lines, ing)
			}
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Println(cli.BoldStyle.Render(category.Label()))
		for _, ing := range lines {
			printIngredientLine(ing)
		}
		fmt.Println()
	}
	return nil
}

func printIngredientLine(ing models.Ingredient) {
	name := ing.Name
	if ing.Icon != "" {
		name = ing.Icon + " " + name
	}
	fmt.Printf("  %-28s %-8s %s\n", name, ing.Unit, cli.DimStyle.Render(ing.ID))
}

type IngredientAddCmd struct {
	Name     string   `arg:"" help:"Ingredient name."`
	ID       string   `help:"Ingredient id (default: slug of the name)."`
	Category string   `help:"proteins, carbs, salads, fruits, extras or other." default:"other"`
	Unit     string   `help:"Unit (g, ml, unit...)."`
	Icon     string   `help:"Optional icon."`
	Base     *float64 `help:"Quantity pre-filled when added to a meal."`
}

func (c *IngredientAddCmd) Run(ctx *cli.Context) error {
	ing := models.Ingredient{
		ID:           c.ID,
		Name:         c.Name,
		Icon:         c.Icon,
		Unit:         c.Unit,
		Category:     models.NormalizeCategory(c.Category),
		BaseQuantity: c.Base,
	}
	if ing.ID == "" {
		ing.ID = models.Slug(c.Name)
	}
	if err := ing.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveIngredient(ing); err != nil {
		return err
	}
	fmt.Printf("Saved ingredient: %s (%s)\n", ing.Name, ing.ID)
	return nil
}

type IngredientSearchCmd struct {
	Query string `arg:"" help:"Search text."`
}

func (c *IngredientSearchCmd) Run(ctx *cli.Context) error {
	ingredients, err := ctx.Store.GetIngredients()
	if err != nil {
		return err
	}
	found := catalog.SearchIngredients(ingredients, c.Query)
	if len(found) == 0 {
		fmt.Println("No matching ingredients.")
		return nil
	}
	for _, ing := range found {
		printIngredientLine(ing)
	}
	return nil
}

type IngredientDeleteCmd struct {
	ID string `arg:"" help:"Ingredient id."`
}

func (c *IngredientDeleteCmd) Run(ctx *cli.Context) error {
	recipes, err := ctx.Store.GetRecipes()
	if err != nil {
		return err
	}
	var users []string
	for _, r := range recipes {
		for _, ref := range r.Ingredients {
			if ref.IngredientID == c.ID {
				users = append(users, r.Name)
				break
			}
		}
	}
	if len(users) > 0 {
		return fmt.Errorf("ingredient %q is used by %s", c.ID, strings.Join(users, ", "))
	}
	if err := ctx.Store.DeleteIngredient(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted ingredient: %s\n", c.ID)
	return nil
}

type ActivityCmd struct {
	List   ActivityListCmd   `cmd:"" help:"List activities." default:"1"`
	Add    ActivityAddCmd    `cmd:"" help:"Add or update an activity."`
	Delete ActivityDeleteCmd `cmd:"" help:"Delete an activity."`
}

type ActivityListCmd struct{}

func (c *ActivityListCmd) Run(ctx *cli.Context) error {
	activities, err := ctx.Store.GetActivities()
	if err != nil {
		return err
	}
	if len(activities) == 0 {
		fmt.Println("No activities found.")
		return nil
	}
	for _, a := range activities {
		name := a.Name
		if a.Icon != "" {
			name = a.Icon + " " + name
		}
		timeLabel := a.Time
		if timeLabel == "" {
			timeLabel = "-"
		}
		fmt.Printf("  %-24s %-5s %-16s %s\n", name, timeLabel, cli.FormatWeekdays(a.DaysOfWeek), cli.DimStyle.Render(a.ID))
	}
	return nil
}

type ActivityAddCmd struct {
	Name string `arg:"" help:"Activity name."`
	ID   string `help:"Activity id (default: slug of the name)."`
	Time string `help:"Time in HH:MM format."`
	Days string `help:"Weekdays it recurs on (e.g. mon,wed)."`
	Icon string `help:"Optional icon."`
}

func (c *ActivityAddCmd) Run(ctx *cli.Context) error {
	days, err := cli.ParseWeekdays(c.Days)
	if err != nil {
		return err
	}
	a := models.Activity{
		ID:         c.ID,
		Name:       c.Name,
		Icon:       c.Icon,
		Time:       c.Time,
		DaysOfWeek: days,
	}
	if a.ID == "" {
		a.ID = models.Slug(c.Name)
	}
	if err := a.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveActivity(a); err != nil {
		return err
	}
	fmt.Printf("Saved activity: %s (%s)\n", a.Name, a.ID)
	return nil
}

type ActivityDeleteCmd struct {
	ID string `arg:"" help:"Activity id."`
}

func (c *ActivityDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteActivity(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted activity: %s\n", c.ID)
	return nil
}

type CatalogCmd struct {
	Import CatalogImportCmd `cmd:"" help:"Import ingredients, recipes and activities from YAML."`
	Export CatalogExportCmd `cmd:"" help:"Export the catalog as YAML."`
}

type CatalogImportCmd struct {
	File string `arg:"" type:"existingfile" help:"YAML catalog file."`
}

func (c *CatalogImportCmd) Run(ctx *cli.Context) error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := catalog.Decode(f)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	sum, err := catalog.Apply(ctx.Store, doc)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %s\n", sum)
	return nil
}

type CatalogExportCmd struct {
	Output string `short:"o" help:"Write to this file instead of stdout."`
}

func (c *CatalogExportCmd) Run(ctx *cli.Context) error {
	doc, err := catalog.Load(ctx.Store)
	if err != nil {
		return err
	}
	if c.Output == "" {
		return catalog.Encode(os.Stdout, doc)
	}
	f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if err := catalog.Encode(f, doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("✓ Catalog written to %s\n", c.Output)
	return nil
}
