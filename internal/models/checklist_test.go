package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDayChecklistRecord_UnmarshalLegacy(t *testing.T) {
	raw := `{
		"date": "2026-03-01",
		"items": {"cafe": true, "almoco": false, "creatina": true, "agua": 2.5},
		"habits": {"read": true, "pushups": 12}
	}`

	var rec DayChecklistRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := DayChecklistRecord{
		Date: "2026-03-01",
		Items: map[string]float64{
			"breakfast": 1,
			"lunch":     0,
			"creatine":  1,
			"water":     2500,
		},
		Habits: map[string]float64{"read": 1, "pushups": 12},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestDayChecklistRecord_UnmarshalWater(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"legacy litres", `{"date":"2026-03-01","items":{"agua":2.5}}`, 2500},
		{"legacy string litres", `{"date":"2026-03-01","items":{"agua":"1.25"}}`, 1250},
		{"current millilitres", `{"date":"2026-03-01","items":{"water":10}}`, 10},
		{"current key wins", `{"date":"2026-03-01","items":{"agua":2,"water":700}}`, 700},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec DayChecklistRecord
			if err := json.Unmarshal([]byte(tt.raw), &rec); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if got := rec.Items["water"]; got != tt.want {
				t.Errorf("water = %v, want %v", got, tt.want)
			}
			if _, ok := rec.Items["agua"]; ok {
				t.Error("legacy key kept after decoding")
			}
		})
	}
}

func TestDayChecklistRecord_WaterSurvivesRoundTrip(t *testing.T) {
	var rec DayChecklistRecord
	if err := json.Unmarshal([]byte(`{"date":"2026-03-01","items":{"agua":2}}`), &rec); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	var again DayChecklistRecord
	if err := json.Unmarshal(data, &again); err != nil {
		t.Fatal(err)
	}
	if again.Items["water"] != 2000 {
		t.Errorf("water after round trip = %v, want 2000", again.Items["water"])
	}
}

func TestDayChecklistRecord_UnmarshalMissingMaps(t *testing.T) {
	var rec DayChecklistRecord
	if err := json.Unmarshal([]byte(`{"date":"2026-03-01"}`), &rec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if rec.Items == nil || rec.Habits == nil {
		t.Fatal("expected empty maps, got nil")
	}
	rec.Items["water"] = 1000
}

func TestDayChecklistRecord_Clone(t *testing.T) {
	rec := NewDayChecklistRecord("2026-03-01")
	rec.Items["water"] = 1000

	c := rec.Clone()
	c.Items["water"] = 2000

	if rec.Items["water"] != 1000 {
		t.Errorf("clone shares items map with original")
	}
}

func TestChecklistItemDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		def     ChecklistItemDefinition
		wantErr bool
	}{
		{name: "boolean", def: ChecklistItemDefinition{Key: "creatine", Label: "Creatine", Max: 1}},
		{name: "quantity", def: ChecklistItemDefinition{Key: "water", Label: "Water", Max: 3000}},
		{name: "missing key", def: ChecklistItemDefinition{Label: "Water", Max: 1}, wantErr: true},
		{name: "missing label", def: ChecklistItemDefinition{Key: "water", Max: 1}, wantErr: true},
		{name: "zero max", def: ChecklistItemDefinition{Key: "water", Label: "Water"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.def.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
