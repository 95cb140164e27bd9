package storage

import (
	"path/filepath"
	"strings"

	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/storage/sqlite"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Checklist days
	// GetChecklistDay returns the record for date, or an empty record when the
	// day has never been written. Reading never creates a row.
	GetChecklistDay(date string) (models.DayChecklistRecord, error)
	SaveChecklistDay(models.DayChecklistRecord) error
	GetChecklistDays(start, end string) ([]models.DayChecklistRecord, error)
	GetAllChecklistDays() ([]models.DayChecklistRecord, error)
	ResetChecklistHistory() error

	// Checklist item definitions
	GetChecklistItems() ([]models.ChecklistItemDefinition, error)
	SaveChecklistItem(models.ChecklistItemDefinition) error
	// DeleteChecklistItem removes the definition and its value from every day.
	DeleteChecklistItem(key string) error

	// Habits
	GetHabits() ([]models.HabitDefinition, error)
	GetHabit(id string) (models.HabitDefinition, error)
	SaveHabit(models.HabitDefinition) error
	// DeleteHabit removes the definition and its value from every day.
	DeleteHabit(id string) error

	// Planner
	// GetPlannerDay returns the stored day, or a fresh one with the weekday's
	// default meal times and scheduled activities.
	GetPlannerDay(date string) (models.PlannerDayRecord, error)
	SavePlannerDay(models.PlannerDayRecord) error
	GetPlannerDays(start, end string) ([]models.PlannerDayRecord, error)

	// Recipes
	GetRecipes() ([]models.Recipe, error)
	GetRecipe(id string) (models.Recipe, error)
	SaveRecipe(models.Recipe) error
	DeleteRecipe(id string) error

	// Ingredients
	GetIngredients() ([]models.Ingredient, error)
	GetIngredient(id string) (models.Ingredient, error)
	SaveIngredient(models.Ingredient) error
	DeleteIngredient(id string) error

	// Activities
	GetActivities() ([]models.Activity, error)
	SaveActivity(models.Activity) error
	DeleteActivity(id string) error

	// Shopping list
	GetShoppingItems() ([]models.ShoppingItem, error)
	// AddShoppingItem appends item unless an item with the same name exists.
	// It reports whether the item was added.
	AddShoppingItem(models.ShoppingItem) (bool, error)
	SetShoppingItemChecked(name string, checked bool) error
	RemoveShoppingItem(name string) error
	ClearCheckedShoppingItems() (int, error)

	// History
	AddWeekSnapshot(models.WeekSnapshot) error
	GetHistory() ([]models.WeekSnapshot, error)

	// Weekly prep
	GetPrepTasks(day string) ([]models.PrepTask, error)
	SavePrepTasks(day string, tasks []models.PrepTask) error

	// Snapshot
	Export() (models.Data, error)
	// Import replaces every stored collection with the contents of data.
	Import(models.Data) error
}

// New returns the provider for path: a JSON document store for *.json files,
// SQLite otherwise.
func New(path string) Provider {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return NewJSONStore(path)
	}
	return sqlite.NewStore(path)
}
