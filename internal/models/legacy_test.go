package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeRef(t *testing.T) {
	tests := []struct {
		name string
		ref  IngredientRef
		want StructuredRef
	}{
		{
			name: "legacy name",
			ref:  LegacyStringRef("Frango  Desfiado"),
			want: StructuredRef{IngredientID: "frango-desfiado", Quantity: 1},
		},
		{
			name: "structured keeps quantity",
			ref:  StructuredRef{IngredientID: "eggs", Quantity: 3, Unit: "un"},
			want: StructuredRef{IngredientID: "eggs", Quantity: 3, Unit: "un"},
		},
		{
			name: "structured defaults quantity",
			ref:  StructuredRef{IngredientID: "rice"},
			want: StructuredRef{IngredientID: "rice", Quantity: 1},
		},
		{
			name: "nil pointer",
			ref:  (*StructuredRef)(nil),
			want: StructuredRef{},
		},
		{
			name: "nil ref",
			ref:  nil,
			want: StructuredRef{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRef(tt.ref)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("NormalizeRef() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeRef_Idempotent(t *testing.T) {
	refs := []IngredientRef{
		LegacyStringRef("pão integral"),
		LegacyStringRef("  Carne Moída "),
		StructuredRef{IngredientID: "eggs"},
		StructuredRef{IngredientID: "chicken-cubes", Quantity: 150, Unit: "g"},
	}
	for _, ref := range refs {
		once := NormalizeRef(ref)
		twice := NormalizeRef(once)
		if once != twice {
			t.Errorf("NormalizeRef(%v) not idempotent: %v then %v", ref, once, twice)
		}
	}
}

func TestDecodeIngredientRef(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    IngredientRef
		wantErr bool
	}{
		{name: "string", raw: `"alface"`, want: LegacyStringRef("alface")},
		{name: "object", raw: `{"id":"rice","quantity":2,"unit":"cup"}`, want: StructuredRef{IngredientID: "rice", Quantity: 2, Unit: "cup"}},
		{name: "ingredientId alias", raw: `{"ingredientId":"rice","quantity":"2.5"}`, want: StructuredRef{IngredientID: "rice", Quantity: 2.5}},
		{name: "null", raw: `null`, want: nil},
		{name: "bad quantity", raw: `{"id":"rice","quantity":"lots"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeIngredientRef(json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("DecodeIngredientRef() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("DecodeIngredientRef() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{`true`, 1},
		{`false`, 0},
		{`null`, 0},
		{`2.5`, 2.5},
		{`"1500"`, 1500},
		{`""`, 0},
		{``, 0},
	}

	for _, tt := range tests {
		got, err := DecodeValue(json.RawMessage(tt.raw))
		if err != nil {
			t.Errorf("DecodeValue(%q) unexpected error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("DecodeValue(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}

	if _, err := DecodeValue(json.RawMessage(`{}`)); err == nil {
		t.Error("DecodeValue({}) expected error")
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := map[string]IngredientCategory{
		"proteinas": CategoryProteins,
		"frutas":    CategoryFruits,
		"Salads":    CategorySalads,
		"snacks":    CategoryOther,
		"":          CategoryOther,
	}
	for in, want := range tests {
		if got := NormalizeCategory(in); got != want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", in, got, want)
		}
	}
}
