package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/dietplan/internal/constants"
)

// ChecklistItemDefinition describes a daily checklist target. A max of 1
// makes the item a checkbox; a larger max makes it a quantity (water in ml).
type ChecklistItemDefinition struct {
	Key   string  `json:"key" yaml:"key"`
	Label string  `json:"label" yaml:"label"`
	Icon  string  `json:"icon,omitempty" yaml:"icon,omitempty"`
	Max   float64 `json:"max" yaml:"max"`
	Order int     `json:"order" yaml:"order"`
}

// IsBoolean reports whether the item is checkbox-like.
func (d ChecklistItemDefinition) IsBoolean() bool {
	return d.Max <= 1
}

func (d *ChecklistItemDefinition) Validate() error {
	if strings.TrimSpace(d.Key) == "" {
		return fmt.Errorf("checklist item key cannot be empty")
	}
	if strings.TrimSpace(d.Label) == "" {
		return fmt.Errorf("checklist item label cannot be empty")
	}
	if d.Max < 1 {
		return fmt.Errorf("checklist item max must be at least 1 (got %v)", d.Max)
	}
	return nil
}

// DayChecklistRecord holds one calendar day's checklist and habit values.
type DayChecklistRecord struct {
	Date   string             `json:"date"`
	Items  map[string]float64 `json:"items"`
	Habits map[string]float64 `json:"habits"`
}

// NewDayChecklistRecord returns an empty record for date.
func NewDayChecklistRecord(date string) DayChecklistRecord {
	return DayChecklistRecord{
		Date:   date,
		Items:  make(map[string]float64),
		Habits: make(map[string]float64),
	}
}

// UnmarshalJSON accepts legacy boolean values and legacy item keys. Legacy
// water readings are litres and are stored as millilitres.
func (r *DayChecklistRecord) UnmarshalJSON(data []byte) error {
	var aux struct {
		Date   string                     `json:"date"`
		Items  map[string]json.RawMessage `json:"items"`
		Habits map[string]json.RawMessage `json:"habits"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	items, err := decodeValueMap(aux.Items)
	if err != nil {
		return fmt.Errorf("checklist %s: %w", aux.Date, err)
	}
	// Values were validated by decodeValueMap. The current key wins when
	// both are present.
	if raw, ok := aux.Items[constants.LegacyWaterItemKey]; ok {
		if _, current := aux.Items[constants.WaterItemKey]; current {
			items[constants.WaterItemKey], _ = DecodeValue(aux.Items[constants.WaterItemKey])
		} else {
			litres, _ := DecodeValue(raw)
			items[constants.WaterItemKey] = litres * constants.MillilitresPerLitre
		}
	}
	habits, err := decodeValueMap(aux.Habits)
	if err != nil {
		return fmt.Errorf("checklist %s: %w", aux.Date, err)
	}
	r.Date = aux.Date
	r.Items = items
	r.Habits = habits
	return nil
}

// Clone returns a deep copy of the record.
func (r DayChecklistRecord) Clone() DayChecklistRecord {
	c := NewDayChecklistRecord(r.Date)
	for k, v := range r.Items {
		c.Items[k] = v
	}
	for k, v := range r.Habits {
		c.Habits[k] = v
	}
	return c
}
