package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/utils"
)

const documentVersion = 1

// Document is the on-disk layout of a JSON store.
type Document struct {
	Version  int             `json:"version"`
	Settings models.Settings `json:"settings"`
	Data     models.Data     `json:"data"`
}

type JSONStore struct {
	path string
	doc  *Document
	now  func() time.Time
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
		now:  time.Now,
	}
}

// Init creates the document with default settings. An existing document is
// loaded and kept.
func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = &Document{
		Version:  documentVersion,
		Settings: models.DefaultSettings(),
		Data:     models.Data{WeeklyPrep: make(map[string][]models.PrepTask)},
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return apperrors.NotInitialized(s.path)
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > documentVersion {
		return fmt.Errorf("storage version (%d) is newer than supported version (%d) - please upgrade the application", doc.Version, documentVersion)
	}
	models.ApplyDefaultSettings(&doc.Settings)
	if doc.Data.WeeklyPrep == nil {
		doc.Data.WeeklyPrep = make(map[string][]models.PrepTask)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) loaded() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

// commit stamps the modification time and writes the document.
func (s *JSONStore) commit() error {
	now := s.now().UTC()
	s.doc.Data.LastUpdated = now
	s.doc.Settings.LastModifiedAt = now.Format(time.RFC3339Nano)
	return s.save()
}

// Settings

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.loaded(); err != nil {
		return models.Settings{}, err
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Settings = settings
	return s.save()
}

// Checklist days

func (s *JSONStore) checklistIndex(date string) int {
	for i, rec := range s.doc.Data.Checklist {
		if rec.Date == date {
			return i
		}
	}
	return -1
}

func (s *JSONStore) GetChecklistDay(date string) (models.DayChecklistRecord, error) {
	if err := s.loaded(); err != nil {
		return models.DayChecklistRecord{}, err
	}
	if !utils.ValidateDateFormat(date) {
		return models.DayChecklistRecord{}, apperrors.InvalidDate(date)
	}
	if i := s.checklistIndex(date); i >= 0 {
		return s.doc.Data.Checklist[i].Clone(), nil
	}
	return models.NewDayChecklistRecord(date), nil
}

func (s *JSONStore) SaveChecklistDay(rec models.DayChecklistRecord) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if !utils.ValidateDateFormat(rec.Date) {
		return apperrors.InvalidDate(rec.Date)
	}
	rec = rec.Clone()
	if i := s.checklistIndex(rec.Date); i >= 0 {
		s.doc.Data.Checklist[i] = rec
	} else {
		s.doc.Data.Checklist = append(s.doc.Data.Checklist, rec)
		sort.Slice(s.doc.Data.Checklist, func(a, b int) bool {
			return s.doc.Data.Checklist[a].Date < s.doc.Data.Checklist[b].Date
		})
	}
	return s.commit()
}

func (s *JSONStore) GetChecklistDays(start, end string) ([]models.DayChecklistRecord, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var out []models.DayChecklistRecord
	for _, rec := range s.doc.Data.Checklist {
		if rec.Date >= start && rec.Date <= end {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

func (s *JSONStore) GetAllChecklistDays() ([]models.DayChecklistRecord, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	out := make([]models.DayChecklistRecord, 0, len(s.doc.Data.Checklist))
	for _, rec := range s.doc.Data.Checklist {
		out = append(out, rec.Clone())
	}
	return out, nil
}

func (s *JSONStore) ResetChecklistHistory() error {
	if err := s.loaded(); err != nil {
		return err
	}
	s.doc.Data.Checklist = nil
	return s.commit()
}

// Checklist item definitions

func (s *JSONStore) GetChecklistItems() ([]models.ChecklistItemDefinition, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	items := append([]models.ChecklistItemDefinition(nil), s.doc.Data.ChecklistItems...)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		return items[i].Key < items[j].Key
	})
	return items, nil
}

func (s *JSONStore) SaveChecklistItem(item models.ChecklistItemDefinition) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if err := item.Validate(); err != nil {
		return err
	}
	for i, existing := range s.doc.Data.ChecklistItems {
		if existing.Key == item.Key {
			s.doc.Data.ChecklistItems[i] = item
			return s.commit()
		}
	}
	s.doc.Data.ChecklistItems = append(s.doc.Data.ChecklistItems, item)
	return s.commit()
}

func (s *JSONStore) DeleteChecklistItem(key string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	items := s.doc.Data.ChecklistItems
	for i, existing := range items {
		if existing.Key != key {
			continue
		}
		s.doc.Data.ChecklistItems = append(items[:i], items[i+1:]...)
		for _, rec := range s.doc.Data.Checklist {
			delete(rec.Items, key)
		}
		return s.commit()
	}
	return apperrors.NotFound("checklist item", key)
}

// Habits

func (s *JSONStore) GetHabits() ([]models.HabitDefinition, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return append([]models.HabitDefinition(nil), s.doc.Data.Habits...), nil
}

func (s *JSONStore) GetHabit(id string) (models.HabitDefinition, error) {
	if err := s.loaded(); err != nil {
		return models.HabitDefinition{}, err
	}
	for _, h := range s.doc.Data.Habits {
		if h.ID == id {
			return h, nil
		}
	}
	return models.HabitDefinition{}, apperrors.NotFound("habit", id)
}

func (s *JSONStore) SaveHabit(habit models.HabitDefinition) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if err := habit.Validate(); err != nil {
		return err
	}
	for i, existing := range s.doc.Data.Habits {
		if existing.ID == habit.ID {
			s.doc.Data.Habits[i] = habit
			return s.commit()
		}
	}
	s.doc.Data.Habits = append(s.doc.Data.Habits, habit)
	return s.commit()
}

func (s *JSONStore) DeleteHabit(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	habits := s.doc.Data.Habits
	for i, existing := range habits {
		if existing.ID != id {
			continue
		}
		s.doc.Data.Habits = append(habits[:i], habits[i+1:]...)
		for _, rec := range s.doc.Data.Checklist {
			delete(rec.Habits, id)
		}
		return s.commit()
	}
	return apperrors.NotFound("habit", id)
}

// Planner

func (s *JSONStore) plannerIndex(date string) int {
	for i, rec := range s.doc.Data.Planner {
		if rec.Date == date {
			return i
		}
	}
	return -1
}

func (s *JSONStore) GetPlannerDay(date string) (models.PlannerDayRecord, error) {
	if err := s.loaded(); err != nil {
		return models.PlannerDayRecord{}, err
	}
	if !utils.ValidateDateFormat(date) {
		return models.PlannerDayRecord{}, apperrors.InvalidDate(date)
	}
	if i := s.plannerIndex(date); i >= 0 {
		return s.doc.Data.Planner[i].Clone(), nil
	}
	return models.PlannerDayFor(date, s.doc.Data.Activities)
}

func (s *JSONStore) SavePlannerDay(rec models.PlannerDayRecord) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if !utils.ValidateDateFormat(rec.Date) {
		return apperrors.InvalidDate(rec.Date)
	}
	rec = rec.Clone()
	if i := s.plannerIndex(rec.Date); i >= 0 {
		s.doc.Data.Planner[i] = rec
	} else {
		s.doc.Data.Planner = append(s.doc.Data.Planner, rec)
		sort.Slice(s.doc.Data.Planner, func(a, b int) bool {
			return s.doc.Data.Planner[a].Date < s.doc.Data.Planner[b].Date
		})
	}
	return s.commit()
}

func (s *JSONStore) GetPlannerDays(start, end string) ([]models.PlannerDayRecord, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	var out []models.PlannerDayRecord
	for _, rec := range s.doc.Data.Planner {
		if rec.Date >= start && rec.Date <= end {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

// Recipes

func (s *JSONStore) GetRecipes() ([]models.Recipe, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	recipes := append([]models.Recipe(nil), s.doc.Data.Recipes...)
	sort.SliceStable(recipes, func(i, j int) bool { return recipes[i].Name < recipes[j].Name })
	return recipes, nil
}

func (s *JSONStore) GetRecipe(id string) (models.Recipe, error) {
	if err := s.loaded(); err != nil {
		return models.Recipe{}, err
	}
	for _, r := range s.doc.Data.Recipes {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Recipe{}, apperrors.NotFound("recipe", id)
}

func (s *JSONStore) SaveRecipe(recipe models.Recipe) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if err := recipe.Validate(); err != nil {
		return err
	}
	recipe.Ingredients = append([]models.StructuredRef(nil), recipe.Ingredients...)
	for i, existing := range s.doc.Data.Recipes {
		if existing.ID == recipe.ID {
			s.doc.Data.Recipes[i] = recipe
			return s.commit()
		}
	}
	s.doc.Data.Recipes = append(s.doc.Data.Recipes, recipe)
	return s.commit()
}

func (s *JSONStore) DeleteRecipe(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for i, existing := range s.doc.Data.Recipes {
		if existing.ID == id {
			s.doc.Data.Recipes = append(s.doc.Data.Recipes[:i], s.doc.Data.Recipes[i+1:]...)
			return s.commit()
		}
	}
	return apperrors.NotFound("recipe", id)
}

// Ingredients

func (s *JSONStore) GetIngredients() ([]models.Ingredient, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	ingredients := append([]models.Ingredient(nil), s.doc.Data.Ingredients...)
	sort.SliceStable(ingredients, func(i, j int) bool { return ingredients[i].Name < ingredients[j].Name })
	return ingredients, nil
}

func (s *JSONStore) GetIngredient(id string) (models.Ingredient, error) {
	if err := s.loaded(); err != nil {
		return models.Ingredient{}, err
	}
	for _, ing := range s.doc.Data.Ingredients {
		if ing.ID == id {
			return ing, nil
		}
	}
	return models.Ingredient{}, apperrors.NotFound("ingredient", id)
}

func (s *JSONStore) SaveIngredient(ing models.Ingredient) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if err := ing.Validate(); err != nil {
		return err
	}
	ing.Category = models.NormalizeCategory(string(ing.Category))
	for i, existing := range s.doc.Data.Ingredients {
		if existing.ID == ing.ID {
			s.doc.Data.Ingredients[i] = ing
			return s.commit()
		}
	}
	s.doc.Data.Ingredients = append(s.doc.Data.Ingredients, ing)
	return s.commit()
}

func (s *JSONStore) DeleteIngredient(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for i, existing := range s.doc.Data.Ingredients {
		if existing.ID == id {
			s.doc.Data.Ingredients = append(s.doc.Data.Ingredients[:i], s.doc.Data.Ingredients[i+1:]...)
			return s.commit()
		}
	}
	return apperrors.NotFound("ingredient", id)
}

// Activities

func (s *JSONStore) GetActivities() ([]models.Activity, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	activities := append([]models.Activity(nil), s.doc.Data.Activities...)
	sort.Slice(activities, func(i, j int) bool { return activities[i].ID < activities[j].ID })
	return activities, nil
}

func (s *JSONStore) SaveActivity(a models.Activity) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if err := a.Validate(); err != nil {
		return err
	}
	for i, existing := range s.doc.Data.Activities {
		if existing.ID == a.ID {
			s.doc.Data.Activities[i] = a
			return s.commit()
		}
	}
	s.doc.Data.Activities = append(s.doc.Data.Activities, a)
	return s.commit()
}

func (s *JSONStore) DeleteActivity(id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for i, existing := range s.doc.Data.Activities {
		if existing.ID == id {
			s.doc.Data.Activities = append(s.doc.Data.Activities[:i], s.doc.Data.Activities[i+1:]...)
			return s.commit()
		}
	}
	return apperrors.NotFound("activity", id)
}

// Shopping list

func (s *JSONStore) GetShoppingItems() ([]models.ShoppingItem, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return append([]models.ShoppingItem(nil), s.doc.Data.ShoppingList...), nil
}

func (s *JSONStore) AddShoppingItem(item models.ShoppingItem) (bool, error) {
	if err := s.loaded(); err != nil {
		return false, err
	}
	if item.Name == "" {
		return false, fmt.Errorf("shopping item name cannot be empty")
	}
	for _, existing := range s.doc.Data.ShoppingList {
		if existing.Name == item.Name {
			return false, nil
		}
	}
	s.doc.Data.ShoppingList = append(s.doc.Data.ShoppingList, item)
	return true, s.commit()
}

func (s *JSONStore) SetShoppingItemChecked(name string, checked bool) error {
	if err := s.loaded(); err != nil {
		return err
	}
	for i := range s.doc.Data.ShoppingList {
		if s.doc.Data.ShoppingList[i].Name == name {
			s.doc.Data.ShoppingList[i].Checked = checked
			return s.commit()
		}
	}
	return apperrors.NotFound("shopping item", name)
}

func (s *JSONStore) RemoveShoppingItem(name string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	list := s.doc.Data.ShoppingList
	for i := range list {
		if list[i].Name == name {
			s.doc.Data.ShoppingList = append(list[:i], list[i+1:]...)
			return s.commit()
		}
	}
	return apperrors.NotFound("shopping item", name)
}

func (s *JSONStore) ClearCheckedShoppingItems() (int, error) {
	if err := s.loaded(); err != nil {
		return 0, err
	}
	kept := s.doc.Data.ShoppingList[:0]
	removed := 0
	for _, item := range s.doc.Data.ShoppingList {
		if item.Checked {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	s.doc.Data.ShoppingList = kept
	if removed == 0 {
		return 0, nil
	}
	return removed, s.commit()
}

// History

func (s *JSONStore) AddWeekSnapshot(snap models.WeekSnapshot) error {
	if err := s.loaded(); err != nil {
		return err
	}
	snap.DailyPercentages = append([]int(nil), snap.DailyPercentages...)
	s.doc.Data.History = append(s.doc.Data.History, snap)
	return s.commit()
}

func (s *JSONStore) GetHistory() ([]models.WeekSnapshot, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	return append([]models.WeekSnapshot(nil), s.doc.Data.History...), nil
}

// Weekly prep

func (s *JSONStore) GetPrepTasks(day string) ([]models.PrepTask, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	day, err := models.ParsePrepDay(day)
	if err != nil {
		return nil, err
	}
	return append([]models.PrepTask{}, s.doc.Data.WeeklyPrep[day]...), nil
}

func (s *JSONStore) SavePrepTasks(day string, tasks []models.PrepTask) error {
	if err := s.loaded(); err != nil {
		return err
	}
	day, err := models.ParsePrepDay(day)
	if err != nil {
		return err
	}
	s.doc.Data.WeeklyPrep[day] = append([]models.PrepTask{}, tasks...)
	return s.commit()
}

// Snapshot

// Export returns a deep copy of the stored document.
func (s *JSONStore) Export() (models.Data, error) {
	if err := s.loaded(); err != nil {
		return models.Data{}, err
	}
	raw, err := json.Marshal(s.doc.Data)
	if err != nil {
		return models.Data{}, err
	}
	var data models.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return models.Data{}, err
	}
	return data, nil
}

// Import replaces the document data. The modification time becomes
// data.LastUpdated when set.
func (s *JSONStore) Import(data models.Data) error {
	if err := s.loaded(); err != nil {
		return err
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var copied models.Data
	if err := json.Unmarshal(raw, &copied); err != nil {
		return err
	}
	if copied.WeeklyPrep == nil {
		copied.WeeklyPrep = make(map[string][]models.PrepTask)
	}
	sort.SliceStable(copied.Checklist, func(i, j int) bool { return copied.Checklist[i].Date < copied.Checklist[j].Date })
	sort.SliceStable(copied.Planner, func(i, j int) bool { return copied.Planner[i].Date < copied.Planner[j].Date })
	s.doc.Data = copied

	if data.LastUpdated.IsZero() {
		return s.commit()
	}
	s.doc.Settings.LastModifiedAt = data.LastUpdated.UTC().Format(time.RFC3339Nano)
	s.doc.Data.LastUpdated = data.LastUpdated.UTC()
	return s.save()
}
