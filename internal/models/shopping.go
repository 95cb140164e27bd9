package models

// ShoppingItem is an entry on the persisted shopping list.
type ShoppingItem struct {
	Name     string             `json:"name" yaml:"name"`
	Quantity float64            `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Unit     string             `json:"unit,omitempty" yaml:"unit,omitempty"`
	Category IngredientCategory `json:"category,omitempty" yaml:"category,omitempty"`
	Checked  bool               `json:"checked" yaml:"checked"`
}
