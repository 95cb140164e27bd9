// Package progress computes completion percentages from daily checklist
// records. Every function is a pure transform of its arguments.
package progress

import (
	"math"
	"strings"
	"time"

	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/utils"
)

// ItemScore returns the 0-100 sub-score of one checklist item. Items with a
// max of 1 are all-or-nothing; larger maxima are proportional and capped.
func ItemScore(def models.ChecklistItemDefinition, value float64) float64 {
	if def.IsBoolean() {
		if value >= 1 {
			return 100
		}
		return 0
	}
	if value <= 0 {
		return 0
	}
	return math.Min(value/def.Max, 1) * 100
}

// DayProgress returns the day's food checklist completion, 0-100.
//
// With item definitions the result is the rounded mean of the per-item
// sub-scores. Without definitions the legacy rule applies: every recorded
// item counts 1 when truthy, water counts its fraction of three litres, and
// the sum is divided by the number of recorded items.
func DayProgress(record models.DayChecklistRecord, defs []models.ChecklistItemDefinition) int {
	if len(defs) == 0 {
		return legacyDayProgress(record.Items)
	}
	var total float64
	for _, def := range defs {
		total += ItemScore(def, record.Items[def.Key])
	}
	return round(total / float64(len(defs)))
}

// legacyDayProgress reads water in millilitres under the current key and in
// litres under the legacy key.
func legacyDayProgress(items map[string]float64) int {
	if len(items) == 0 {
		return 0
	}
	var done float64
	for key, value := range items {
		if key == constants.WaterItemKey || key == constants.LegacyWaterItemKey {
			litres := value
			if key == constants.WaterItemKey {
				litres /= constants.MillilitresPerLitre
			}
			if litres > 0 {
				done += math.Min(litres/constants.LegacyWaterTargetLiters, 1)
			}
			continue
		}
		if value != 0 {
			done++
		}
	}
	return round(done / float64(len(items)) * 100)
}

// WeekProgress averages DayProgress over the recorded days of the Sunday-based
// week containing ref. Days without a record are left out of the average.
func WeekProgress(records []models.DayChecklistRecord, defs []models.ChecklistItemDefinition, ref time.Time) int {
	start := utils.WeekStart(ref)
	end := start.AddDate(0, 0, 7)
	return average(records, defs, ref.Location(), func(d time.Time) bool {
		return !d.Before(start) && d.Before(end)
	})
}

// MonthProgress averages DayProgress over the recorded days of a calendar
// month. month is zero-based: 0 is January.
func MonthProgress(records []models.DayChecklistRecord, year, month int, defs []models.ChecklistItemDefinition) int {
	return average(records, defs, time.UTC, func(d time.Time) bool {
		return d.Year() == year && int(d.Month())-1 == month
	})
}

// YearProgress averages DayProgress over the recorded days of a calendar year.
func YearProgress(records []models.DayChecklistRecord, year int, defs []models.ChecklistItemDefinition) int {
	return average(records, defs, time.UTC, func(d time.Time) bool {
		return d.Year() == year
	})
}

// average is the shared window rule: mean of the rounded day scores of the
// records whose date passes include, or 0 when none do. Records with a
// malformed date never match. A date recorded twice counts once, last wins.
func average(records []models.DayChecklistRecord, defs []models.ChecklistItemDefinition, loc *time.Location, include func(time.Time) bool) int {
	byDate := make(map[string]models.DayChecklistRecord, len(records))
	for _, rec := range records {
		d, err := utils.ParseDateInLocation(rec.Date, loc)
		if err != nil || !include(d) {
			continue
		}
		byDate[rec.Date] = rec
	}
	if len(byDate) == 0 {
		return 0
	}
	sum := 0
	for _, rec := range byDate {
		sum += DayProgress(rec, defs)
	}
	return round(float64(sum) / float64(len(byDate)))
}

// HabitComplete reports whether value satisfies the habit for the day.
// Boolean habits require exactly the true state; counted habits require the
// target to be reached.
func HabitComplete(def models.HabitDefinition, value float64) bool {
	if def.Type == models.HabitBoolean || def.Type == "" {
		return value == 1
	}
	return value >= def.Target
}

// HabitsProgress returns the share of defs completed in dayHabits, 0-100.
func HabitsProgress(dayHabits map[string]float64, defs []models.HabitDefinition) int {
	if len(defs) == 0 {
		return 0
	}
	done := 0
	for _, def := range defs {
		if HabitComplete(def, dayHabits[def.ID]) {
			done++
		}
	}
	return round(float64(done) / float64(len(defs)) * 100)
}

// BlendedDayScore mixes food and habit completion with the fixed weights.
func BlendedDayScore(food, habits int) int {
	return round(constants.FoodWeight*float64(food) + constants.HabitsWeight*float64(habits))
}

// HabitsForDay drops activity habits whose activity is not planned for the
// day. Other habits always apply.
func HabitsForDay(defs []models.HabitDefinition, plannedActivities []string) []models.HabitDefinition {
	planned := make(map[string]bool, len(plannedActivities))
	for _, id := range plannedActivities {
		planned[id] = true
	}
	out := make([]models.HabitDefinition, 0, len(defs))
	for _, def := range defs {
		if def.IsActivityHabit(constants.ActivityHabitPrefix) {
			if !planned[strings.TrimPrefix(def.ID, constants.ActivityHabitPrefix)] {
				continue
			}
		}
		out = append(out, def)
	}
	return out
}

func round(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Round(f))
}
