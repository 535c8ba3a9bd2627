package models

import (
	"encoding/json"
	"testing"
)

func TestAccompanimentDecodesCurrentShape(t *testing.T) {
	t.Parallel()
	raw := `{"name":"Orange Juice","grams":250,"profile":{"calories":112,"protein":1.7,"carbs":25.8,"fat":0.5,"show_calories":true,"show_protein":true,"show_carbs":true,"show_fat":true}}`
	var a Accompaniment
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Name != "Orange Juice" || a.Grams != 250 || a.Profile.Calories != 112 {
		t.Fatalf("decoded %+v", a)
	}
}

func TestAccompanimentUpgradesLegacyString(t *testing.T) {
	t.Parallel()
	var a Accompaniment
	if err := json.Unmarshal([]byte(`"Green Tea"`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Name != "Green Tea" {
		t.Fatalf("name = %q, want Green Tea", a.Name)
	}
	if a.Grams != 0 || !a.Profile.IsZero() {
		t.Fatalf("legacy entries upgrade to zero grams/profile, got %+v", a)
	}
	if !a.Profile.ShowCalories {
		t.Fatalf("upgraded entries keep default-true visibility")
	}
}

func TestAccompanimentToleratesUnrecognizedEntries(t *testing.T) {
	t.Parallel()
	var a Accompaniment
	if err := json.Unmarshal([]byte(`42`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if a.Name != "" || a.Grams != 0 || !a.Profile.IsZero() {
		t.Fatalf("unrecognized entry should decode to a zero item, got %+v", a)
	}
}

func TestStoredPlanLegacyBlobUpgrade(t *testing.T) {
	t.Parallel()
	// An older plan: missing meal_types, accompaniments as name lists.
	raw := `{
		"days": {"Monday": {"Lunch": {"name": "Leftovers", "profile": {"calories": 450, "show_calories": true, "show_protein": true, "show_carbs": true, "show_fat": true}}}},
		"accompaniments": {"Monday": {"Lunch": ["Juice", "Coffee"]}}
	}`
	var plan StoredPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	plan.Normalize()

	if len(plan.MealTypes) == 0 {
		t.Fatalf("normalize should fill default meal types")
	}
	for _, day := range DayLabels {
		if plan.Days[day] == nil {
			t.Fatalf("normalize should create day %s", day)
		}
	}
	if plan.Days["Monday"]["Lunch"] == nil || plan.Days["Monday"]["Lunch"].Name != "Leftovers" {
		t.Fatalf("existing slot lost in upgrade: %+v", plan.Days["Monday"])
	}
	items := plan.Accompaniments["Monday"]["Lunch"]
	if len(items) != 2 || items[0].Name != "Juice" || !items[1].Profile.IsZero() {
		t.Fatalf("legacy accompaniments not upgraded: %+v", items)
	}
}

func TestNewStoredPlanAllSlotsNull(t *testing.T) {
	t.Parallel()
	plan := NewStoredPlan(nil)
	if len(plan.Days) != len(DayLabels) {
		t.Fatalf("days = %d, want %d", len(plan.Days), len(DayLabels))
	}
	for _, day := range DayLabels {
		for _, mt := range plan.MealTypes {
			slot, ok := plan.Days[day][mt]
			if !ok {
				t.Fatalf("slot %s/%s missing", day, mt)
			}
			if slot != nil {
				t.Fatalf("slot %s/%s should start null", day, mt)
			}
		}
	}
}

func TestMealInstanceCloneIsIndependent(t *testing.T) {
	t.Parallel()
	orig := &MealInstance{
		Name: "Bowl",
		Ingredients: []ServedIngredient{
			{Name: "Rice", ServedGrams: 100},
		},
	}
	clone := orig.Clone()
	clone.Ingredients[0].ServedGrams = 999
	if orig.Ingredients[0].ServedGrams != 100 {
		t.Fatalf("clone mutation leaked into original")
	}
}
