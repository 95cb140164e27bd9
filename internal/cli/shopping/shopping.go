package shopping

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/dietplan/internal/cli"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/shopping"
	"github.com/julianstephens/dietplan/internal/utils"
)

type ShoppingCmd struct {
	Generate ShoppingGenerateCmd `cmd:"" help:"Build a shopping list from the meal plan."`
	List     ShoppingListCmd     `cmd:"" help:"Show the saved shopping list." default:"1"`
	Add      ShoppingAddCmd      `cmd:"" help:"Add an item to the saved list."`
	Check    ShoppingCheckCmd    `cmd:"" help:"Mark an item as bought."`
	Uncheck  ShoppingUncheckCmd  `cmd:"" help:"Mark an item as not bought."`
	Remove   ShoppingRemoveCmd   `cmd:"" help:"Remove an item from the saved list."`
	Clear    ShoppingClearCmd    `cmd:"" help:"Remove every bought item."`
}

type ShoppingGenerateCmd struct {
	From   string `help:"First day (default: today)."`
	To     string `help:"Last day (default: From plus the configured number of days)."`
	Days   int    `help:"Number of days to cover when --to is not given."`
	Format string `help:"Output format." enum:"md,yaml" default:"md"`
	Output string `short:"o" help:"Write to this file instead of stdout."`
	Save   bool   `help:"Also add the items to the saved shopping list."`
}

// Range resolves the command's date flags.
func (c *ShoppingGenerateCmd) Range(ctx *cli.Context) (shopping.DateRange, error) {
	start, err := ctx.Day(c.From)
	if err != nil {
		return shopping.DateRange{}, err
	}
	if c.To != "" {
		end, err := ctx.Day(c.To)
		if err != nil {
			return shopping.DateRange{}, err
		}
		if end.Before(start) {
			return shopping.DateRange{}, fmt.Errorf("--to %s is before --from %s", utils.FormatDate(end), utils.FormatDate(start))
		}
		return shopping.DateRange{Start: start, End: end}, nil
	}

	days := c.Days
	if days <= 0 {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			return shopping.DateRange{}, err
		}
		days = settings.ShoppingDefaultDays
	}
	if days <= 0 {
		days = 1
	}
	return shopping.DateRange{Start: start, End: start.AddDate(0, 0, days-1)}, nil
}

func (c *ShoppingGenerateCmd) Run(ctx *cli.Context) error {
	r, err := c.Range(ctx)
	if err != nil {
		return err
	}
	records, err := ctx.Store.GetPlannerDays(utils.FormatDate(r.Start), utils.FormatDate(r.End))
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

	list := shopping.Build(records, recipes, r, shopping.DefaultConversions())
	groups := shopping.GroupByCategory(list, ingredients)
	if len(groups) == 0 {
		fmt.Printf("Nothing planned between %s and %s.\n", utils.FormatDate(r.Start), utils.FormatDate(r.End))
		return nil
	}

	var out []byte
	switch c.Format {
	case "yaml":
		out, err = shopping.YAML(groups, r)
		if err != nil {
			return err
		}
	default:
		out = []byte(shopping.Markdown(groups, r))
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, out, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", c.Output, err)
		}
		fmt.Printf("✓ Shopping list written to %s\n", c.Output)
	} else {
		fmt.Print(string(out))
	}

	if c.Save {
		added := 0
		for _, item := range shopping.ToItems(groups) {
			ok, err := ctx.Store.AddShoppingItem(item)
			if err != nil {
				return err
			}
			if ok {
				added++
			}
		}
		fmt.Printf("Saved %d new item(s) to the shopping list.\n", added)
	}
	return nil
}

type ShoppingListCmd struct{}

func (c *ShoppingListCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Store.GetShoppingItems()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Shopping list is empty.")
		return nil
	}
	remaining := 0
	for _, item := range items {
		qty := ""
		if item.Quantity > 0 {
			qty = cli.DimStyle.Render(shopping.FormatQuantity(item.Quantity, item.Unit))
		}
		fmt.Printf("  %s %s %s\n", cli.Check(item.Checked), item.Name, qty)
		if !item.Checked {
			remaining++
		}
	}
	fmt.Printf("\n%d of %d item(s) left\n", remaining, len(items))
	return nil
}

type ShoppingAddCmd struct {
	Name     string  `arg:"" help:"Item name."`
	Quantity float64 `help:"Quantity."`
	Unit     string  `help:"Unit."`
	Category string  `help:"Ingredient category." default:"other"`
}

func (c *ShoppingAddCmd) Run(ctx *cli.Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("item name cannot be empty")
	}
	added, err := ctx.Store.AddShoppingItem(models.ShoppingItem{
		Name:     name,
		Quantity: c.Quantity,
		Unit:     c.Unit,
		Category: models.NormalizeCategory(c.Category),
	})
	if err != nil {
		return err
	}
	if !added {
		fmt.Printf("%s is already on the list.\n", name)
		return nil
	}
	fmt.Printf("Added %s\n", name)
	return nil
}

type ShoppingCheckCmd struct {
	Name string `arg:"" help:"Item name."`
}

func (c *ShoppingCheckCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.SetShoppingItemChecked(c.Name, true); err != nil {
		return err
	}
	fmt.Printf("✓ %s\n", c.Name)
	return nil
}

type ShoppingUncheckCmd struct {
	Name string `arg:"" help:"Item name."`
}

func (c *ShoppingUncheckCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.SetShoppingItemChecked(c.Name, false); err != nil {
		return err
	}
	fmt.Printf("Unchecked %s\n", c.Name)
	return nil
}

type ShoppingRemoveCmd struct {
	Name string `arg:"" help:"Item name."`
}

func (c *ShoppingRemoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.RemoveShoppingItem(c.Name); err != nil {
		return err
	}
	fmt.Printf("Removed %s\n", c.Name)
	return nil
}

type ShoppingClearCmd struct{}

func (c *ShoppingClearCmd) Run(ctx *cli.Context) error {
	n, err := ctx.Store.ClearCheckedShoppingItems()
	if err != nil {
		return err
	}
	fmt.Printf("Removed %d bought item(s).\n", n)
	return nil
}
