package progress

import (
	"time"

	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/utils"
)

// Band is a coarse colour grouping of a percentage.
type Band string

const (
	BandGood Band = "good"
	BandFair Band = "fair"
	BandPoor Band = "poor"
)

// Color returns the band a percentage falls into.
func Color(pct int) Band {
	switch {
	case pct >= constants.ProgressGoodThreshold:
		return BandGood
	case pct >= constants.ProgressFairThreshold:
		return BandFair
	default:
		return BandPoor
	}
}

// DaySummary is the full score of a single day.
type DaySummary struct {
	Date    string
	Food    int
	Habits  int
	Blended int
	// HabitCount is the number of habits that applied to the day.
	HabitCount int
}

// Summarize scores one day. Activity habits only count when their activity
// is planned, and the blended score equals the food score on days without
// applicable habits.
func Summarize(record models.DayChecklistRecord, items []models.ChecklistItemDefinition, habits []models.HabitDefinition, plannedActivities []string) DaySummary {
	applicable := HabitsForDay(habits, plannedActivities)
	s := DaySummary{
		Date:       record.Date,
		Food:       DayProgress(record, items),
		Habits:     HabitsProgress(record.Habits, applicable),
		HabitCount: len(applicable),
	}
	if s.HabitCount == 0 {
		s.Blended = s.Food
	} else {
		s.Blended = BlendedDayScore(s.Food, s.Habits)
	}
	return s
}

// DayScore is one cell of a week or month view.
type DayScore struct {
	Date     string
	Score    int
	Recorded bool
}

// WeekBreakdown lists the seven days of a Sunday-based week.
type WeekBreakdown struct {
	Start      time.Time
	Days       []DayScore
	Percentage int
}

// Week builds the day-by-day view of the week containing ref. Percentage is
// the same value WeekProgress returns.
func Week(records []models.DayChecklistRecord, defs []models.ChecklistItemDefinition, ref time.Time) WeekBreakdown {
	start := utils.WeekStart(ref)
	byDate := indexByDate(records)
	wb := WeekBreakdown{Start: start, Days: make([]DayScore, 0, 7)}
	for _, date := range utils.DatesInRange(start, start.AddDate(0, 0, 6)) {
		wb.Days = append(wb.Days, scoreDate(byDate, date, defs))
	}
	wb.Percentage = WeekProgress(records, defs, ref)
	return wb
}

// Snapshot converts the breakdown into a history entry.
func (wb WeekBreakdown) Snapshot(at time.Time) models.WeekSnapshot {
	daily := make([]int, len(wb.Days))
	for i, d := range wb.Days {
		daily[i] = d.Score
	}
	return models.WeekSnapshot{
		WeekStart:        utils.FormatDate(wb.Start),
		DailyPercentages: daily,
		WeeklyPercentage: wb.Percentage,
		RecordedAt:       at,
	}
}

// MonthDays scores every day of a month for a calendar view. month is
// zero-based.
func MonthDays(records []models.DayChecklistRecord, year, month int, defs []models.ChecklistItemDefinition) []DayScore {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	byDate := indexByDate(records)
	var days []DayScore
	for _, date := range utils.DatesInRange(first, last) {
		days = append(days, scoreDate(byDate, date, defs))
	}
	return days
}

func indexByDate(records []models.DayChecklistRecord) map[string]models.DayChecklistRecord {
	byDate := make(map[string]models.DayChecklistRecord, len(records))
	for _, rec := range records {
		byDate[rec.Date] = rec
	}
	return byDate
}

func scoreDate(byDate map[string]models.DayChecklistRecord, date string, defs []models.ChecklistItemDefinition) DayScore {
	rec, ok := byDate[date]
	if !ok {
		return DayScore{Date: date}
	}
	return DayScore{Date: date, Score: DayProgress(rec, defs), Recorded: true}
}
