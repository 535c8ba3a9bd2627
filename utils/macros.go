package utils

import (
	"errors"
	"math"

	"backend/models"
)

// ErrInvalidReference signals degenerate ingredient data: a reference
// serving that is not a positive weight. Callers must never divide by it.
var ErrInvalidReference = errors.New("reference grams must be positive")

// Rounding policy for everything macro-shaped: whole kcal for energy,
// one decimal for the gram quantities.
func roundKcal(v float64) float64 { return math.Round(v) }
func roundGrams(v float64) float64 { return math.Round(v*10) / 10 }

// ScaleProfile derives the profile of ref (accurate at referenceGrams) at
// an arbitrary serving weight. Display flags are copied unchanged; scaling
// never alters what is shown. A zero target yields an all-zero profile.
func ScaleProfile(ref models.NutrientProfile, referenceGrams, targetGrams float64) (models.NutrientProfile, error) {
	if referenceGrams <= 0 {
		return models.NutrientProfile{}, ErrInvalidReference
	}
	if targetGrams < 0 {
		return models.NutrientProfile{}, errors.New("target grams must be non-negative")
	}

	ratio := targetGrams / referenceGrams
	out := ref
	out.Calories = roundKcal(ref.Calories * ratio)
	out.Protein = roundGrams(ref.Protein * ratio)
	out.Carbs = roundGrams(ref.Carbs * ratio)
	out.Fat = roundGrams(ref.Fat * ratio)
	return out, nil
}

// AggregateProfiles sums a sequence of profiles. Quantities accumulate at
// full precision and are rounded exactly once at the end; rounding after
// each pairwise addition drifts from the raw sum and is not allowed. A
// quantity is shown in the result only if every input shows it; the empty
// sequence yields the zero profile with everything shown.
//
// Callers filter out empty slots before aggregating — an absent meal must
// not force a flag off the way a present-but-hidden one does.
func AggregateProfiles(profiles []models.NutrientProfile) models.NutrientProfile {
	out := models.ZeroProfile()

	var calories, protein, carbs, fat float64
	for _, p := range profiles {
		calories += p.Calories
		protein += p.Protein
		carbs += p.Carbs
		fat += p.Fat

		out.ShowCalories = out.ShowCalories && p.ShowCalories
		out.ShowProtein = out.ShowProtein && p.ShowProtein
		out.ShowCarbs = out.ShowCarbs && p.ShowCarbs
		out.ShowFat = out.ShowFat && p.ShowFat
	}

	out.Calories = roundKcal(calories)
	out.Protein = roundGrams(protein)
	out.Carbs = roundGrams(carbs)
	out.Fat = roundGrams(fat)
	return out
}
