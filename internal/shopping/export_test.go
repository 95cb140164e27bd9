package shopping

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/dietplan/internal/models"
)

func sampleGroups() []Group {
	return []Group{
		{Category: models.CategoryProteins, Lines: []Line{
			{IngredientID: "chicken-cubes", Name: "Chicken cubes", Quantity: 286.0000001, Unit: "g"},
		}},
		{Category: models.CategoryOther, Lines: []Line{
			{IngredientID: "mystery", Name: "mystery", Quantity: 2},
		}},
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		qty  float64
		unit string
		want string
	}{
		{286, "g", "286 g"},
		{214.5, "g", "214.5 g"},
		{1.001, "", "1"},
		{285.99999999999997, "g", "286 g"},
		{2.25, "kg", "2.25 kg"},
	}
	for _, tt := range tests {
		if got := FormatQuantity(tt.qty, tt.unit); got != tt.want {
			t.Errorf("FormatQuantity(%v, %q) = %q, want %q", tt.qty, tt.unit, got, tt.want)
		}
	}
}

func TestMarkdown(t *testing.T) {
	r := DateRange{Start: day(2026, 3, 1), End: day(2026, 3, 7)}
	out := Markdown(sampleGroups(), r)

	for _, want := range []string{
		"# Shopping list 2026-03-01 to 2026-03-07",
		"## Proteins",
		"- [ ] Chicken cubes: 286 g",
		"## Other",
		"- [ ] mystery: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown() missing %q in:\n%s", want, out)
		}
	}
}

func TestYAML(t *testing.T) {
	r := DateRange{Start: day(2026, 3, 1), End: day(2026, 3, 7)}
	out, err := YAML(sampleGroups(), r)
	if err != nil {
		t.Fatalf("YAML() error: %v", err)
	}

	var doc yamlDocument
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("yaml.Unmarshal() error: %v", err)
	}
	if doc.From != "2026-03-01" || doc.To != "2026-03-07" {
		t.Errorf("range = %s..%s", doc.From, doc.To)
	}
	if len(doc.Groups) != 2 || doc.Groups[0].Lines[0].IngredientID != "chicken-cubes" {
		t.Errorf("groups = %+v", doc.Groups)
	}
}

func TestToItems(t *testing.T) {
	items := ToItems(sampleGroups())
	if len(items) != 2 {
		t.Fatalf("ToItems() len = %d, want 2", len(items))
	}
	if items[0].Name != "Chicken cubes" || items[0].Category != models.CategoryProteins || items[0].Checked {
		t.Errorf("items[0] = %+v", items[0])
	}
}
