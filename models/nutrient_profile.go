package models

// NutrientProfile is the macro snapshot used across ingredients, meals and
// goals: energy in kcal, protein/carbs/fat in grams, plus one display flag
// per quantity. Flags only control what a client surfaces; hidden
// quantities still contribute to totals.
type NutrientProfile struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`

	ShowCalories bool `json:"show_calories"`
	ShowProtein  bool `json:"show_protein"`
	ShowCarbs    bool `json:"show_carbs"`
	ShowFat      bool `json:"show_fat"`
}

// VisibleProfile builds a profile with all display flags on.
func VisibleProfile(calories, protein, carbs, fat float64) NutrientProfile {
	return NutrientProfile{
		Calories:     calories,
		Protein:      protein,
		Carbs:        carbs,
		Fat:          fat,
		ShowCalories: true,
		ShowProtein:  true,
		ShowCarbs:    true,
		ShowFat:      true,
	}
}

// ZeroProfile is the aggregation identity: zero quantities, everything shown.
func ZeroProfile() NutrientProfile {
	return VisibleProfile(0, 0, 0, 0)
}

func (p NutrientProfile) IsZero() bool {
	return p.Calories == 0 && p.Protein == 0 && p.Carbs == 0 && p.Fat == 0
}
