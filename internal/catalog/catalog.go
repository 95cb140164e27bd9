// Package catalog reads and writes the recipe, ingredient and activity
// catalog as YAML and provides fuzzy lookup over it.
package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/storage"
)

// Catalog is the YAML document exchanged by `catalog import/export`.
type Catalog struct {
	Ingredients []models.Ingredient `yaml:"ingredients,omitempty"`
	Recipes     []models.Recipe     `yaml:"recipes,omitempty"`
	Activities  []models.Activity   `yaml:"activities,omitempty"`
}

// Summary counts what an import wrote.
type Summary struct {
	Ingredients int
	Recipes     int
	Activities  int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d ingredient(s), %d recipe(s), %d activit(ies)", s.Ingredients, s.Recipes, s.Activities)
}

// Decode reads a catalog document. Unknown fields are rejected so typos do
// not silently drop data.
func Decode(r io.Reader) (Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, nil
		}
		return Catalog{}, fmt.Errorf("failed to parse catalog: %w", err)
	}
	for i := range c.Ingredients {
		c.Ingredients[i].Category = models.NormalizeCategory(string(c.Ingredients[i].Category))
	}
	return c, nil
}

// Encode writes c as YAML with two-space indentation.
func Encode(w io.Writer, c Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	return enc.Close()
}

// FillIDs assigns ids to entries that have none: ingredients and activities
// get a slug of their name, recipes a random UUID.
func FillIDs(c *Catalog) {
	for i := range c.Ingredients {
		if c.Ingredients[i].ID == "" {
			c.Ingredients[i].ID = models.Slug(c.Ingredients[i].Name)
		}
	}
	for i := range c.Recipes {
		if c.Recipes[i].ID == "" {
			c.Recipes[i].ID = uuid.NewString()
		}
	}
	for i := range c.Activities {
		if c.Activities[i].ID == "" {
			c.Activities[i].ID = models.Slug(c.Activities[i].Name)
		}
	}
}

// Load reads the catalog collections from store.
func Load(store storage.Provider) (Catalog, error) {
	var c Catalog
	var err error
	if c.Ingredients, err = store.GetIngredients(); err != nil {
		return Catalog{}, err
	}
	if c.Recipes, err = store.GetRecipes(); err != nil {
		return Catalog{}, err
	}
	if c.Activities, err = store.GetActivities(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Apply upserts every entry of c into store. Recipes referencing ingredients
// that are neither stored nor part of c are rejected before anything is written.
func Apply(store storage.Provider, c Catalog) (Summary, error) {
	FillIDs(&c)

	known := make(map[string]bool)
	existing, err := store.GetIngredients()
	if err != nil {
		return Summary{}, err
	}
	for _, ing := range existing {
		known[ing.ID] = true
	}
	for _, ing := range c.Ingredients {
		if err := ing.Validate(); err != nil {
			return Summary{}, err
		}
		known[ing.ID] = true
	}
	for _, r := range c.Recipes {
		if err := r.Validate(); err != nil {
			return Summary{}, err
		}
		for _, ref := range r.Ingredients {
			if !known[ref.IngredientID] {
				return Summary{}, fmt.Errorf("recipe %q uses unknown ingredient %q", r.Name, ref.IngredientID)
			}
		}
	}
	for _, a := range c.Activities {
		if err := a.Validate(); err != nil {
			return Summary{}, err
		}
	}

	var sum Summary
	for _, ing := range c.Ingredients {
		if err := store.SaveIngredient(ing); err != nil {
			return sum, err
		}
		sum.Ingredients++
	}
	for _, r := range c.Recipes {
		if err := store.SaveRecipe(r); err != nil {
			return sum, err
		}
		sum.Recipes++
	}
	for _, a := range c.Activities {
		if err := store.SaveActivity(a); err != nil {
			return sum, err
		}
		sum.Activities++
	}
	return sum, nil
}

type ingredientSource []models.Ingredient

func (s ingredientSource) String(i int) string { return s[i].Name + " " + s[i].ID }
func (s ingredientSource) Len() int            { return len(s) }

type recipeSource []models.Recipe

func (s recipeSource) String(i int) string { return s[i].Name + " " + s[i].Category }
func (s recipeSource) Len() int            { return len(s) }

// SearchIngredients returns the ingredients matching query, best match
// first. An empty query returns every ingredient.
func SearchIngredients(ingredients []models.Ingredient, query string) []models.Ingredient {
	query = strings.TrimSpace(query)
	if query == "" {
		return ingredients
	}
	matches := fuzzy.FindFrom(query, ingredientSource(ingredients))
	out := make([]models.Ingredient, 0, len(matches))
	for _, m := range matches {
		out = append(out, ingredients[m.Index])
	}
	return out
}

// SearchRecipes returns the recipes matching query against name and
// category, best match first.
func SearchRecipes(recipes []models.Recipe, query string) []models.Recipe {
	query = strings.TrimSpace(query)
	if query == "" {
		return recipes
	}
	matches := fuzzy.FindFrom(query, recipeSource(recipes))
	out := make([]models.Recipe, 0, len(matches))
	for _, m := range matches {
		out = append(out, recipes[m.Index])
	}
	return out
}

// ResolveIngredient finds an ingredient by exact id, then by case-insensitive
// name, then by the single best fuzzy match.
func ResolveIngredient(ingredients []models.Ingredient, ref string) (models.Ingredient, bool) {
	if strings.TrimSpace(ref) == "" {
		return models.Ingredient{}, false
	}
	for _, ing := range ingredients {
		if ing.ID == ref {
			return ing, true
		}
	}
	for _, ing := range ingredients {
		if strings.EqualFold(ing.Name, ref) {
			return ing, true
		}
	}
	if found := SearchIngredients(ingredients, ref); len(found) > 0 {
		return found[0], true
	}
	return models.Ingredient{}, false
}

// ResolveRecipe finds a recipe by exact id, then by case-insensitive name,
// then by the single best fuzzy match.
func ResolveRecipe(recipes []models.Recipe, ref string) (models.Recipe, bool) {
	if strings.TrimSpace(ref) == "" {
		return models.Recipe{}, false
	}
	for _, r := range recipes {
		if r.ID == ref {
			return r, true
		}
	}
	for _, r := range recipes {
		if strings.EqualFold(r.Name, ref) {
			return r, true
		}
	}
	if found := SearchRecipes(recipes, ref); len(found) > 0 {
		return found[0], true
	}
	return models.Recipe{}, false
}
