package services_test

import (
	"errors"
	"testing"

	"backend/models"
	"backend/services"
	"backend/utils"
)

type fakeIngredients map[string]models.Ingredient

func (f fakeIngredients) Resolve(_ uint, publicID string) (models.Ingredient, error) {
	ing, ok := f[publicID]
	if !ok {
		return models.Ingredient{}, services.ErrUnknownIngredient
	}
	return ing, nil
}

type fakeTemplates map[string]models.MealTemplate

func (f fakeTemplates) ResolveTemplate(_ uint, publicID string) (models.MealTemplate, error) {
	tmpl, ok := f[publicID]
	if !ok {
		return models.MealTemplate{}, services.ErrNotFound
	}
	return tmpl, nil
}

func testIngredient(id, name string, calories, protein, carbs, fat float64) models.Ingredient {
	return models.Ingredient{
		PublicID:       id,
		Name:           name,
		ReferenceGrams: 100,
		Profile:        models.VisibleProfile(calories, protein, carbs, fat),
	}
}

func testFixtures() (fakeIngredients, fakeTemplates) {
	rice := testIngredient("ing-rice", "Rice", 112, 2.6, 23.5, 0.9)
	quinoa := testIngredient("ing-quinoa", "Quinoa", 120, 4.4, 21.3, 1.9)
	chicken := testIngredient("ing-chicken", "Chicken Breast", 165, 31, 0, 3.6)

	ingredients := fakeIngredients{
		rice.PublicID:    rice,
		quinoa.PublicID:  quinoa,
		chicken.PublicID: chicken,
	}

	riceServed, _ := utils.ScaleProfile(rice.Profile, 100, 100)
	chickenServed, _ := utils.ScaleProfile(chicken.Profile, 100, 150)
	bowl := models.MealTemplate{
		PublicID: "meal-bowl",
		Name:     "Chicken Bowl",
		Items: []models.MealTemplateItem{
			{
				IngredientID: rice.PublicID, Name: rice.Name, Position: 0,
				ReferenceGrams: 100, Reference: rice.Profile,
				ServedGrams: 100, Profile: riceServed,
			},
			{
				IngredientID: chicken.PublicID, Name: chicken.Name, Position: 1,
				ReferenceGrams: 100, Reference: chicken.Profile,
				ServedGrams: 150, Profile: chickenServed,
			},
		},
		Profile: utils.AggregateProfiles([]models.NutrientProfile{riceServed, chickenServed}),
	}

	return ingredients, fakeTemplates{bowl.PublicID: bowl}
}

func newTestPlanService(t *testing.T) *services.PlanService {
	t.Helper()
	ingredients, templates := testFixtures()
	return services.NewPlanService(nil, ingredients, templates, nil)
}

const week = "2026-W35"

func TestGetPlanStartsEmpty(t *testing.T) {
	t.Parallel()
	svc := newTestPlanService(t)

	plan, err := svc.GetPlan(1, week)
	if err != nil {
		t.Fatalf("get plan: %v", err)
	}
	for _, day := range models.DayLabels {
		for _, mt := range plan.MealTypes {
			if plan.Days[day][mt] != nil {
				t.Fatalf("new plan should have all slots empty, %s/%s is filled", day, mt)
			}
		}
	}
}

func TestAssignSlotCopiesTemplateWholesale(t *testing.T) {
	t.Parallel()
	svc := newTestPlanService(t)

	meal, err := svc.AssignSlot(1, week, "Monday", "Lunch", "meal-bowl")
	if err != nil {
		t.Fatalf("assign slot: %v", err)
	}
	if meal.Name != "Chicken Bowl" || len(meal.Ingredients) != 2 {
		t.Fatalf("unexpected meal: %+v", meal)
	}
	// copied exactly as defined, no rescaling
	if meal.Ingredients[1].ServedGrams != 150 {
		t.Fatalf("served grams = %v, want 150", meal.Ingredients[1].ServedGrams)
	}
	want := utils.AggregateProfiles([]models.NutrientProfile{
		meal.Ingredients[0].Profile,
		meal.Ingredients[1].Profile,
	})
	if meal.Profile != want {
		t.Fatalf("aggregate = %+v, want %+v", meal.Profile, want)
	}
}

func TestSwapIngredientHoldsGrams(t *testing.T) {
	t.Parallel()
	svc := newTestPlanService(t)

	if _, err := svc.AssignSlot(1, week, "Monday", "Lunch", "meal-bowl"); err != nil {
		t.Fatalf("assign slot: %v", err)
	}

	// Rice at 100g swapped for quinoa with the same 100g: the derived
	// profile is quinoa's reference unchanged (ratio 1).
	meal, err := svc.SwapIngredient(1, week, "Monday", "Lunch", 0, "ing-quinoa", nil)
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	got := meal.Ingredients[0]
	if got.Name != "Quinoa" || got.ServedGrams != 100 {
		t.Fatalf("swap should hold prior grams, got %+v", got)
	}
	want := models.VisibleProfile(120, 4.4, 21.3, 1.9)
	if got.Profile != want {
		t.Fatalf("derived profile = %+v, want %+v", got.Profile, want)
	}
}

func TestSwapUnknownIngredientKeepsPriorState(t *testing.T) {
	t.Parallel()
	svc := newTestPlanService(t)

	if _, err := svc.AssignSlot(1, week, "Monday", "Lunch", "meal-bowl"); err != nil {
		t.Fatalf("assign slot: %v", err)
	}
	plan, _ := svc.GetPlan(1, week)
	before := *plan.Days["Monday"]["Lunch"].Clone()

	_, err := svc.SwapIngredient(1, week, "Monday", "Lunch", 0, "ing-dragonfruit", nil)
	if !errors.Is(err, services.ErrUnknownIngredient) {
		t.Fatalf("err = %v, want ErrUnknownIngredient", err)
	}

	plan, _ = svc.GetPlan(1, week)
	after := plan.Days["Monday"]["Lunch"]
	if after.Profile != before.Profile || len(after.Ingredients) != len(before.Ingredients) {
		t.Fatalf("failed swap must not mutate the slot: before %+v after %+v", before, after)
	}
	if after.Ingredients[0] != before.Ingredients[0] {
		t.Fatalf("failed swap touched ingredient 0: %+v", after.Ingredients[0])
	}
}

func TestSetServedGramsRescalesAndReaggregates(t *testing.T) {
	t.Parallel()
	svc := newTestPlanService(t)

	if _, err := svc.AssignSlot(1, week, "Tuesday", "Dinner", "meal-bowl"); err != nil {
		t.Fatalf("assign slot: %v", err)
	}

	meal, err := svc.SetServedGrams(1, week, "Tuesday", "Dinner", 1, 200)
	if err != nil {
		t.Fatalf("set grams: %v", err)
	}
	chicken := meal.Ingredients[1]
	if chicken.ServedGrams != 200 {
		t.Fatalf("served grams = %v, want 200", chicken.ServedGrams)
	}
	if chicken.Profile.Calories != 330 { // 165 kcal/100g at 200g
		t.Fatalf("calories = %v, want 330", chicken.Profile.Calories)
	}
	want := utils.AggregateProfiles([]models.NutrientProfile{
		meal.Ingredients[0].Profile,
		chicken.Profile,
	})
	if meal.Profile != want {
		t.Fatalf("aggregate not recomputed: %+v want %+v", meal.Profile, want)
	}

	if _, err := svc.SetServedGrams(1, week, "Tuesday", "Dinner", 1, 0); err == nil {
		t.Fatalf("zero served grams should be rejected")
	}
}

func TestAddAndRemoveIngredient(t *testing.T) {
	t.Parallel()
	svc := newTestPlanService(t)

	if _, err := svc.AssignSlot(1, week, "Friday", "Lunch", "meal-bowl"); err != nil {
		t.Fatalf("assign slot: %v", err)
	}

	grams := 50.0
	meal, err := svc.AddIngredient(1, week, "Friday", "Lunch", "ing-quinoa", &grams)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(meal.Ingredients) != 3 {
		t.Fatalf("len = %d, want 3", len(meal.Ingredients))
	}
	if meal.Ingredients[2].Profile.Calories != 60 { // 120 kcal/100g at 50g
		t.Fatalf("added calories = %v, want 60", meal.Ingredients[2].Profile.Calories)
	}

	meal, err = svc.RemoveIngredient(1, week, "Friday", "Lunch", 2)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(meal.Ingredients) != 2 {
		t.Fatalf("len = %d after remove, want 2", len(meal.Ingredients))
	}

	if _, err := svc.AddIngredient(1, week, "Friday", "Lunch", "ing-unknown", nil); !errors.Is(err, services.ErrUnknownIngredient) {
		t.Fatalf("err = %v, want ErrUnknownIngredient", err)
	}
}

func TestMutationsOnEmptySlot(t *testing.T) {
	t.Parallel()
	svc := newTestPlanService(t)

	if _, err := svc.SetServedGrams(1, week, "Sunday", "Breakfast", 0, 100); !errors.Is(err, services.ErrEmptySlot) {
		t.Fatalf("err = %v, want ErrEmptySlot", err)
	}
	if _, err := svc.SwapIngredient(1, week, "Sunday", "Breakfast", 0, "ing-rice", nil); !errors.Is(err, services.ErrEmptySlot) {
		t.Fatalf("err = %v, want ErrEmptySlot", err)
	}
}

func TestDayTotalExcludesEmptySlots(t *testing.T) {
	t.Parallel()
	ingredients, _ := testFixtures()
	breakfast := models.MealTemplate{
		PublicID: "meal-breakfast",
		Name:     "Breakfast",
		Profile:  models.VisibleProfile(300, 20, 30, 8),
	}
	dinner := models.MealTemplate{
		PublicID: "meal-dinner",
		Name:     "Dinner",
		Profile:  models.VisibleProfile(500, 35, 45, 15),
	}
	svc := services.NewPlanService(nil, ingredients, fakeTemplates{
		breakfast.PublicID: breakfast,
		dinner.PublicID:    dinner,
	}, nil)

	if _, err := svc.AssignSlot(1, week, "Wednesday", "Breakfast", "meal-breakfast"); err != nil {
		t.Fatalf("assign breakfast: %v", err)
	}
	if _, err := svc.AssignSlot(1, week, "Wednesday", "Dinner", "meal-dinner"); err != nil {
		t.Fatalf("assign dinner: %v", err)
	}

	plan, _ := svc.GetPlan(1, week)
	total := services.DayTotal(plan, "Wednesday")
	if total.Calories != 800 {
		t.Fatalf("day total = %v kcal, want 800", total.Calories)
	}
	// The empty slots contribute nothing, including to visibility.
	if !total.ShowCalories || !total.ShowProtein {
		t.Fatalf("empty slots must not hide quantities: %+v", total)
	}
}

func TestClearSlot(t *testing.T) {
	t.Parallel()
	svc := newTestPlanService(t)

	if _, err := svc.AssignSlot(1, week, "Monday", "Dinner", "meal-bowl"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if err := svc.ClearSlot(1, week, "Monday", "Dinner"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	plan, _ := svc.GetPlan(1, week)
	if plan.Days["Monday"]["Dinner"] != nil {
		t.Fatalf("slot should be empty after clear")
	}
	if total := services.DayTotal(plan, "Monday"); !total.IsZero() {
		t.Fatalf("cleared day total = %+v, want zero", total)
	}
}

func TestAccompanimentsTotalledSeparately(t *testing.T) {
	t.Parallel()
	svc := newTestPlanService(t)

	if _, err := svc.AssignSlot(1, week, "Thursday", "Lunch", "meal-bowl"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	mealBefore, _ := svc.GetPlan(1, week)
	primary := mealBefore.Days["Thursday"]["Lunch"].Profile

	err := svc.SetAccompaniments(1, week, "Thursday", "Lunch", []models.Accompaniment{
		{Name: "Orange Juice", Grams: 250, Profile: models.VisibleProfile(112, 1.7, 25.8, 0.5)},
		{Name: "Espresso", Grams: 30, Profile: models.VisibleProfile(2, 0.1, 0, 0)},
	})
	if err != nil {
		t.Fatalf("set accompaniments: %v", err)
	}

	plan, _ := svc.GetPlan(1, week)
	if plan.Days["Thursday"]["Lunch"].Profile != primary {
		t.Fatalf("accompaniments must not leak into the meal aggregate")
	}
	sides := services.DayAccompanimentTotal(plan, "Thursday")
	if sides.Calories != 114 {
		t.Fatalf("accompaniment total = %v kcal, want 114", sides.Calories)
	}
}

func TestSummarizeDay(t *testing.T) {
	t.Parallel()
	svc := newTestPlanService(t)

	if _, err := svc.AssignSlot(1, week, "Saturday", "Dinner", "meal-bowl"); err != nil {
		t.Fatalf("assign: %v", err)
	}

	goal := &models.MacroGoal{UserID: 1, Target: models.VisibleProfile(2000, 120, 250, 70)}
	sum, err := svc.SummarizeDay(1, week, "Saturday", goal)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	plan, _ := svc.GetPlan(1, week)
	wantTotal := services.DayTotal(plan, "Saturday")
	if sum.Total != wantTotal {
		t.Fatalf("summary total = %+v, want %+v", sum.Total, wantTotal)
	}
	wantRatio, wantTier := utils.ClassifyProteinDensity(wantTotal.Calories, wantTotal.Protein)
	if sum.ProteinTier != wantTier || sum.ProteinRatio != wantRatio {
		t.Fatalf("tier = %s/%v, want %s/%v", sum.ProteinTier, sum.ProteinRatio, wantTier, wantRatio)
	}
	p := sum.Progress["calories"]
	if p.Percent != utils.GoalProgress(wantTotal.Calories, 2000) {
		t.Fatalf("calorie progress = %v", p.Percent)
	}
}
