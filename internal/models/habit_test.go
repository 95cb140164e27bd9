package models

import (
	"testing"
	"time"
)

func TestParseHabitType(t *testing.T) {
	tests := []struct {
		in      string
		want    HabitType
		wantErr bool
	}{
		{in: "", want: HabitBoolean},
		{in: "bool", want: HabitBoolean},
		{in: "quantity", want: HabitQuantity},
		{in: "times-per-day", want: HabitTimesPerDay},
		{in: "timesPerWeek", want: HabitTimesPerWeek},
		{in: "weekly", want: HabitTimesPerWeek},
		{in: "monthly", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHabitType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHabitType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHabitType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHabitDefinition_Validate(t *testing.T) {
	tests := []struct {
		name    string
		habit   HabitDefinition
		wantErr bool
	}{
		{name: "boolean without target", habit: HabitDefinition{ID: "h1", Name: "Read", Type: HabitBoolean}},
		{name: "quantity with target", habit: HabitDefinition{ID: "h2", Name: "Pushups", Type: HabitQuantity, Target: 20}},
		{name: "quantity without target", habit: HabitDefinition{ID: "h3", Name: "Pushups", Type: HabitQuantity}, wantErr: true},
		{name: "empty name", habit: HabitDefinition{ID: "h4", Type: HabitBoolean}, wantErr: true},
		{name: "unknown type", habit: HabitDefinition{ID: "h5", Name: "X", Type: "monthly"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.habit.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestActivity_ScheduledOnAndValidate(t *testing.T) {
	a := Activity{ID: "volley", Name: "Volley", Time: "20:00", DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday}}
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	if !a.ScheduledOn(time.Wednesday) {
		t.Error("expected activity on Wednesday")
	}
	if a.ScheduledOn(time.Sunday) {
		t.Error("did not expect activity on Sunday")
	}

	bad := Activity{ID: "gym", Name: "Gym", Time: "25:00"}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for invalid time")
	}
}

func TestIngredient_DefaultQuantity(t *testing.T) {
	base := 150.0
	if got := (Ingredient{BaseQuantity: &base}).DefaultQuantity(); got != 150 {
		t.Errorf("DefaultQuantity() = %v, want 150", got)
	}
	if got := (Ingredient{}).DefaultQuantity(); got != 1 {
		t.Errorf("DefaultQuantity() = %v, want 1", got)
	}
}
