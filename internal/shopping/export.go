package shopping

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/utils"
)

// FormatQuantity renders a quantity with at most two decimals and its unit.
func FormatQuantity(qty float64, unit string) string {
	s := humanize.FtoaWithDigits(math.Round(qty*100)/100, 2)
	if unit == "" {
		return s
	}
	return s + " " + unit
}

// Markdown renders the grouped list as a checklist document.
func Markdown(groups []Group, r DateRange) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Shopping list %s to %s\n", utils.FormatDate(r.Start), utils.FormatDate(r.End))
	for _, g := range groups {
		fmt.Fprintf(&b, "\n## %s\n\n", g.Category.Label())
		for _, line := range g.Lines {
			name := line.Name
			if line.Icon != "" {
				name = line.Icon + " " + name
			}
			fmt.Fprintf(&b, "- [ ] %s: %s\n", name, FormatQuantity(line.Quantity, line.Unit))
		}
	}
	return b.String()
}

type yamlDocument struct {
	From   string  `yaml:"from"`
	To     string  `yaml:"to"`
	Groups []Group `yaml:"groups"`
}

// YAML encodes the grouped list with its date range.
func YAML(groups []Group, r DateRange) ([]byte, error) {
	doc := yamlDocument{
		From:   utils.FormatDate(r.Start),
		To:     utils.FormatDate(r.End),
		Groups: groups,
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode shopping list: %w", err)
	}
	return out, nil
}

// ToItems flattens the groups into entries for the persisted shopping list.
func ToItems(groups []Group) []models.ShoppingItem {
	var items []models.ShoppingItem
	for _, g := range groups {
		for _, line := range g.Lines {
			items = append(items, models.ShoppingItem{
				Name:     line.Name,
				Quantity: line.Quantity,
				Unit:     line.Unit,
				Category: g.Category,
			})
		}
	}
	return items
}
