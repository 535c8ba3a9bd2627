package utils

import (
	"math/rand"
	"testing"

	"backend/models"
)

func TestScaleIdentity(t *testing.T) {
	t.Parallel()
	ref := models.VisibleProfile(112, 2.7, 23.5, 0.9)
	got, err := ScaleProfile(ref, 100, 100)
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	if got != ref {
		t.Fatalf("identity scale changed profile: got %+v want %+v", got, ref)
	}
}

func TestScaleHalfServing(t *testing.T) {
	t.Parallel()
	ref := models.VisibleProfile(165, 31, 0, 3.6)
	got, err := ScaleProfile(ref, 100, 50)
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	if got.Calories != 83 { // 82.5 rounds to nearest whole kcal
		t.Fatalf("calories = %v, want 83", got.Calories)
	}
	if got.Protein != 15.5 {
		t.Fatalf("protein = %v, want 15.5", got.Protein)
	}
	if got.Fat != 1.8 {
		t.Fatalf("fat = %v, want 1.8", got.Fat)
	}
}

func TestScaleZeroTarget(t *testing.T) {
	t.Parallel()
	ref := models.VisibleProfile(120, 4.4, 21.3, 1.9)
	ref.ShowFat = false
	got, err := ScaleProfile(ref, 100, 0)
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("zero target should zero all quantities, got %+v", got)
	}
	if got.ShowFat || !got.ShowCalories {
		t.Fatalf("display flags must survive scaling, got %+v", got)
	}
}

func TestScaleInvalidReference(t *testing.T) {
	t.Parallel()
	for _, grams := range []float64{0, -10} {
		if _, err := ScaleProfile(models.ZeroProfile(), grams, 100); err != ErrInvalidReference {
			t.Fatalf("referenceGrams=%v: err = %v, want ErrInvalidReference", grams, err)
		}
	}
}

func TestScaleLinearity(t *testing.T) {
	t.Parallel()
	ref := models.VisibleProfile(247, 9.4, 41.3, 4.2)
	single, err := ScaleProfile(ref, 100, 70)
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	double, err := ScaleProfile(ref, 100, 140)
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	if diff := double.Calories - 2*single.Calories; diff > 1 || diff < -1 {
		t.Fatalf("energy not linear within rounding: %v vs 2*%v", double.Calories, single.Calories)
	}
	if diff := double.Protein - 2*single.Protein; diff > 0.1001 || diff < -0.1001 {
		t.Fatalf("protein not linear within rounding: %v vs 2*%v", double.Protein, single.Protein)
	}
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()
	got := AggregateProfiles(nil)
	if !got.IsZero() {
		t.Fatalf("empty aggregate should be zero, got %+v", got)
	}
	if !got.ShowCalories || !got.ShowProtein || !got.ShowCarbs || !got.ShowFat {
		t.Fatalf("empty aggregate should show everything, got %+v", got)
	}
}

func TestAggregateThreeIngredients(t *testing.T) {
	t.Parallel()
	got := AggregateProfiles([]models.NutrientProfile{
		models.VisibleProfile(150, 5, 10, 2),
		models.VisibleProfile(200, 8, 20, 5),
		models.VisibleProfile(50, 1, 5, 0.5),
	})
	want := models.VisibleProfile(400, 14, 35, 7.5)
	if got != want {
		t.Fatalf("aggregate = %+v, want %+v", got, want)
	}
}

func TestAggregateCommutative(t *testing.T) {
	t.Parallel()
	profiles := []models.NutrientProfile{
		models.VisibleProfile(112.4, 2.71, 23.52, 0.93),
		models.VisibleProfile(88.1, 7.03, 1.18, 5.99),
		models.VisibleProfile(301.7, 12.4, 40.07, 9.11),
		models.VisibleProfile(45.2, 0.58, 11.3, 0.12),
	}
	want := AggregateProfiles(profiles)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]models.NutrientProfile, len(profiles))
		copy(shuffled, profiles)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := AggregateProfiles(shuffled); got != want {
			t.Fatalf("permutation changed aggregate: got %+v want %+v", got, want)
		}
	}
}

func TestAggregateVisibilityIntersection(t *testing.T) {
	t.Parallel()
	hidden := models.VisibleProfile(100, 10, 10, 10)
	hidden.ShowProtein = false
	got := AggregateProfiles([]models.NutrientProfile{
		models.VisibleProfile(100, 10, 10, 10),
		hidden,
	})
	if got.ShowProtein {
		t.Fatalf("one hidden input must hide protein in the aggregate")
	}
	if !got.ShowCalories || !got.ShowCarbs || !got.ShowFat {
		t.Fatalf("other flags should stay shown, got %+v", got)
	}
	if got.Protein != 20 {
		t.Fatalf("hidden quantities still count: protein = %v, want 20", got.Protein)
	}
}

// Rounding once at the end must match summing the raw data directly, which
// per-step rounding does not.
func TestAggregateRoundsOnce(t *testing.T) {
	t.Parallel()
	profiles := []models.NutrientProfile{
		models.VisibleProfile(0, 0.04, 0, 0),
		models.VisibleProfile(0, 0.04, 0, 0),
		models.VisibleProfile(0, 0.04, 0, 0),
	}
	if got := AggregateProfiles(profiles); got.Protein != 0.1 {
		t.Fatalf("protein = %v, want 0.1 (single final rounding of 0.12)", got.Protein)
	}
}
