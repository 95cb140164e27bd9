package constants

const (
	// Blend weights for the combined day score. They must sum to 1.0.
	FoodWeight   = 0.6
	HabitsWeight = 0.4

	// WaterItemKey is the checklist key of the water intake item.
	WaterItemKey = "water"
	// LegacyWaterItemKey is the key older data used for water.
	LegacyWaterItemKey = "agua"
	// LegacyWaterTargetLiters is the daily goal assumed when no item
	// definitions are supplied.
	LegacyWaterTargetLiters = 3.0
	// DefaultWaterGoalMl is the seeded max of the water item.
	DefaultWaterGoalMl = 3000
	// MillilitresPerLitre converts legacy litre water readings.
	MillilitresPerLitre = 1000.0

	// CookedToRawFactor estimates raw weight from cooked weight (~30% loss).
	CookedToRawFactor = 1.43

	// Progress colour bands
	ProgressGoodThreshold = 80
	ProgressFairThreshold = 50
)

func init() {
	if FoodWeight+HabitsWeight != 1.0 {
		panic("FoodWeight and HabitsWeight must sum to 1.0")
	}
}
