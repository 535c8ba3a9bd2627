package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

// PlanService owns the single writable copy of each loaded week. Mutations
// run to completion in memory; the whole-plan save afterwards is fire and
// forget — a storage failure turns into a notification, never a rollback.
type PlanService struct {
	mu          sync.Mutex
	db          *gorm.DB
	plans       map[string]*models.StoredPlan
	ingredients IngredientResolver
	templates   TemplateResolver
	notifier    *NotificationService
}

func NewPlanService(db *gorm.DB, ingredients IngredientResolver, templates TemplateResolver, notifier *NotificationService) *PlanService {
	return &PlanService{
		db:          db,
		plans:       make(map[string]*models.StoredPlan),
		ingredients: ingredients,
		templates:   templates,
		notifier:    notifier,
	}
}

func planKey(userID uint, week string) string {
	return fmt.Sprintf("%d|%s", userID, week)
}

// GetPlan returns the live week, loading or creating it on first use.
// Callers treat the result as read-only; all writes go through the
// mutation methods below.
func (s *PlanService) GetPlan(userID uint, week string) (*models.StoredPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(userID, week)
}

func (s *PlanService) loadLocked(userID uint, week string) (*models.StoredPlan, error) {
	if week == "" {
		return nil, errors.New("week label is required")
	}
	if plan, ok := s.plans[planKey(userID, week)]; ok {
		return plan, nil
	}

	plan := models.NewStoredPlan(nil)
	if s.db != nil {
		var rec models.PlanRecord
		err := s.db.Where("user_id = ? AND week = ?", userID, week).First(&rec).Error
		switch {
		case err == nil:
			// Older blobs may carry bare-string accompaniments or miss
			// slots entirely; decode upgrades them and Normalize fills
			// the grid. A blob we cannot read at all starts fresh.
			var stored models.StoredPlan
			if jsonErr := json.Unmarshal(rec.Data, &stored); jsonErr != nil {
				log.Printf("plan %s for user %d unreadable, starting fresh: %v", week, userID, jsonErr)
			} else {
				plan = &stored
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first visit to this week
		default:
			log.Printf("%v", &StorageError{Op: "load plan", Err: err})
			if s.notifier != nil {
				s.notifier.Notify(userID, "warning",
					"Couldn't load your saved plan. Starting from an empty week; changes may not be saved.")
			}
		}
	}
	plan.Normalize()
	s.plans[planKey(userID, week)] = plan
	return plan, nil
}

// persistLocked saves the whole plan, last writer wins. The in-memory copy
// is already mutated and stays authoritative even when the save fails.
func (s *PlanService) persistLocked(userID uint, week string, plan *models.StoredPlan) {
	if s.db == nil {
		return // not initialized
	}
	data, err := json.Marshal(plan)
	if err != nil {
		log.Printf("encode plan %s for user %d: %v", week, userID, err)
		return
	}

	var rec models.PlanRecord
	err = s.db.Where("user_id = ? AND week = ?", userID, week).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = models.PlanRecord{UserID: userID, Week: week, Data: data}
		err = s.db.Create(&rec).Error
	} else if err == nil {
		rec.Data = data
		err = s.db.Save(&rec).Error
	}
	if err != nil {
		log.Printf("%v", &StorageError{Op: "save plan", Err: err})
		if s.notifier != nil {
			s.notifier.Notify(userID, "warning",
				"Your plan change is visible but couldn't be saved. It may be lost on restart.")
		}
	}
}

func (s *PlanService) slot(plan *models.StoredPlan, day, mealType string) (*models.MealInstance, error) {
	if !models.ValidDayLabel(day) {
		return nil, fmt.Errorf("unknown day label %q", day)
	}
	if !plan.HasMealType(mealType) {
		return nil, fmt.Errorf("unknown meal type %q", mealType)
	}
	return plan.Days[day][mealType], nil
}

// AssignSlot fills a slot from a meal definition, copying its ingredients
// and aggregate wholesale. Shuffling to another meal is the same operation
// with a different template id; no rescaling happens on the way in.
func (s *PlanService) AssignSlot(userID uint, week, day, mealType, templateID string) (*models.MealInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.loadLocked(userID, week)
	if err != nil {
		return nil, err
	}
	if _, err := s.slot(plan, day, mealType); err != nil {
		return nil, err
	}
	tmpl, err := s.templates.ResolveTemplate(userID, templateID)
	if err != nil {
		return nil, err
	}

	inst := TemplateToMealInstance(tmpl)
	plan.Days[day][mealType] = inst
	s.persistLocked(userID, week, plan)
	return inst, nil
}

// ClearSlot empties a slot back to null. The day total simply stops
// counting it; an empty slot is not a zero-profile meal.
func (s *PlanService) ClearSlot(userID uint, week, day, mealType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.loadLocked(userID, week)
	if err != nil {
		return err
	}
	if _, err := s.slot(plan, day, mealType); err != nil {
		return err
	}
	plan.Days[day][mealType] = nil
	s.persistLocked(userID, week, plan)
	return nil
}

// SetServedGrams changes one ingredient's serving weight and re-derives
// its profile from its own reference data, then recomputes the meal
// aggregate.
func (s *PlanService) SetServedGrams(userID uint, week, day, mealType string, index int, grams float64) (*models.MealInstance, error) {
	if grams <= 0 {
		return nil, errors.New("served grams must be positive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	plan, meal, err := s.resolvedSlot(userID, week, day, mealType)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(meal.Ingredients) {
		return nil, fmt.Errorf("ingredient index %d out of range", index)
	}

	ing := &meal.Ingredients[index]
	derived, err := utils.ScaleProfile(ing.Reference, ing.ReferenceGrams, grams)
	if err != nil {
		return nil, err
	}
	ing.ServedGrams = grams
	ing.Profile = derived
	recomputeMeal(meal)

	s.persistLocked(userID, week, plan)
	return meal, nil
}

// SwapIngredient replaces the ingredient choice at index, holding the
// prior serving weight unless the caller supplies one. An id outside the
// available set fails with ErrUnknownIngredient and mutates nothing.
func (s *PlanService) SwapIngredient(userID uint, week, day, mealType string, index int, ingredientID string, grams *float64) (*models.MealInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, meal, err := s.resolvedSlot(userID, week, day, mealType)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(meal.Ingredients) {
		return nil, fmt.Errorf("ingredient index %d out of range", index)
	}

	replacement, err := s.ingredients.Resolve(userID, ingredientID)
	if err != nil {
		return nil, err
	}
	served := meal.Ingredients[index].ServedGrams
	if grams != nil {
		served = *grams
	}
	if served <= 0 {
		return nil, errors.New("served grams must be positive")
	}
	derived, err := utils.ScaleProfile(replacement.Profile, replacement.ReferenceGrams, served)
	if err != nil {
		return nil, err
	}

	// Reference and derived profile move together, atomically.
	meal.Ingredients[index] = models.ServedIngredient{
		IngredientID:   replacement.PublicID,
		Name:           replacement.Name,
		ReferenceGrams: replacement.ReferenceGrams,
		Reference:      replacement.Profile,
		ServedGrams:    served,
		Profile:        derived,
	}
	recomputeMeal(meal)

	s.persistLocked(userID, week, plan)
	return meal, nil
}

// AddIngredient appends an ingredient at its reference serving unless
// grams is given.
func (s *PlanService) AddIngredient(userID uint, week, day, mealType string, ingredientID string, grams *float64) (*models.MealInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, meal, err := s.resolvedSlot(userID, week, day, mealType)
	if err != nil {
		return nil, err
	}
	ing, err := s.ingredients.Resolve(userID, ingredientID)
	if err != nil {
		return nil, err
	}
	served := ing.ReferenceGrams
	if grams != nil {
		served = *grams
	}
	if served <= 0 {
		return nil, errors.New("served grams must be positive")
	}
	derived, err := utils.ScaleProfile(ing.Profile, ing.ReferenceGrams, served)
	if err != nil {
		return nil, err
	}

	meal.Ingredients = append(meal.Ingredients, models.ServedIngredient{
		IngredientID:   ing.PublicID,
		Name:           ing.Name,
		ReferenceGrams: ing.ReferenceGrams,
		Reference:      ing.Profile,
		ServedGrams:    served,
		Profile:        derived,
	})
	recomputeMeal(meal)

	s.persistLocked(userID, week, plan)
	return meal, nil
}

func (s *PlanService) RemoveIngredient(userID uint, week, day, mealType string, index int) (*models.MealInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, meal, err := s.resolvedSlot(userID, week, day, mealType)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(meal.Ingredients) {
		return nil, fmt.Errorf("ingredient index %d out of range", index)
	}

	meal.Ingredients = append(meal.Ingredients[:index], meal.Ingredients[index+1:]...)
	recomputeMeal(meal)

	s.persistLocked(userID, week, plan)
	return meal, nil
}

// SetAccompaniments replaces the side items next to a slot. They are
// tracked and totalled separately from the meal itself.
func (s *PlanService) SetAccompaniments(userID uint, week, day, mealType string, items []models.Accompaniment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.loadLocked(userID, week)
	if err != nil {
		return err
	}
	if _, err := s.slot(plan, day, mealType); err != nil {
		return err
	}

	if plan.Accompaniments[day] == nil {
		plan.Accompaniments[day] = make(map[string][]models.Accompaniment)
	}
	plan.Accompaniments[day][mealType] = items

	s.persistLocked(userID, week, plan)
	return nil
}

// resolvedSlot loads the plan and returns the non-null meal in the slot.
func (s *PlanService) resolvedSlot(userID uint, week, day, mealType string) (*models.StoredPlan, *models.MealInstance, error) {
	plan, err := s.loadLocked(userID, week)
	if err != nil {
		return nil, nil, err
	}
	meal, err := s.slot(plan, day, mealType)
	if err != nil {
		return nil, nil, err
	}
	if meal == nil {
		return nil, nil, ErrEmptySlot
	}
	return plan, meal, nil
}

// recomputeMeal re-derives the aggregate from the ingredients' profiles.
// The aggregate is never edited any other way.
func recomputeMeal(meal *models.MealInstance) {
	profiles := make([]models.NutrientProfile, 0, len(meal.Ingredients))
	for _, ing := range meal.Ingredients {
		profiles = append(profiles, ing.Profile)
	}
	meal.Profile = utils.AggregateProfiles(profiles)
}

// DayTotal aggregates the filled slots of one day. Empty slots contribute
// nothing at all — in particular they never force a display flag off.
func DayTotal(plan *models.StoredPlan, day string) models.NutrientProfile {
	profiles := make([]models.NutrientProfile, 0, len(plan.MealTypes))
	for _, mt := range plan.MealTypes {
		if meal := plan.Days[day][mt]; meal != nil {
			profiles = append(profiles, meal.Profile)
		}
	}
	return utils.AggregateProfiles(profiles)
}

// DayAccompanimentTotal aggregates the day's side items, independent of
// the primary meal totals.
func DayAccompanimentTotal(plan *models.StoredPlan, day string) models.NutrientProfile {
	var profiles []models.NutrientProfile
	for _, items := range plan.Accompaniments[day] {
		for _, item := range items {
			profiles = append(profiles, item.Profile)
		}
	}
	return utils.AggregateProfiles(profiles)
}

// DaySummary is the display derivation for one day: totals, the protein
// density tier and progress toward the user's goals.
type DaySummary struct {
	Day            string                      `json:"day"`
	Total          models.NutrientProfile      `json:"total"`
	Accompaniments models.NutrientProfile      `json:"accompaniments"`
	ProteinRatio   float64                     `json:"protein_ratio"`
	ProteinTier    utils.ProteinTier           `json:"protein_tier"`
	Progress       map[string]QuantityProgress `json:"progress"`
}

func (s *PlanService) SummarizeDay(userID uint, week, day string, goal *models.MacroGoal) (*DaySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan, err := s.loadLocked(userID, week)
	if err != nil {
		return nil, err
	}
	if !models.ValidDayLabel(day) {
		return nil, fmt.Errorf("unknown day label %q", day)
	}

	total := DayTotal(plan, day)
	ratio, tier := utils.ClassifyProteinDensity(total.Calories, total.Protein)
	return &DaySummary{
		Day:            day,
		Total:          total,
		Accompaniments: DayAccompanimentTotal(plan, day),
		ProteinRatio:   ratio,
		ProteinTier:    tier,
		Progress:       GoalProgressReport(goal, total),
	}, nil
}
