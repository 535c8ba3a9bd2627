package models

import "encoding/json"

// Day labels and meal types are fixed enumerations; snack slots can be
// renamed per plan but the three main meals are always present.
var (
	DayLabels = []string{
		"Monday", "Tuesday", "Wednesday", "Thursday",
		"Friday", "Saturday", "Sunday",
	}

	DefaultMealTypes = []string{"Breakfast", "Lunch", "Dinner", "Snacks"}
)

// ServedIngredient is an ingredient at an actual serving weight. Profile is
// always derived from Reference at ServedGrams through the scaling engine;
// the two are only ever replaced together.
type ServedIngredient struct {
	IngredientID   string          `json:"ingredient_id"`
	Name           string          `json:"name"`
	ReferenceGrams float64         `json:"reference_grams"`
	Reference      NutrientProfile `json:"reference_profile"`
	ServedGrams    float64         `json:"served_grams"`
	Profile        NutrientProfile `json:"profile"`
}

// MealInstance is a resolved slot: its Profile is the aggregation of the
// ingredients' derived profiles and is recomputed on every ingredient
// mutation.
type MealInstance struct {
	Name        string             `json:"name"`
	TemplateID  string             `json:"template_id,omitempty"`
	Ingredients []ServedIngredient `json:"ingredients"`
	Profile     NutrientProfile    `json:"profile"`
	Recipe      string             `json:"recipe,omitempty"`
	PrepMinutes int                `json:"prep_minutes,omitempty"`
	Difficulty  string             `json:"difficulty,omitempty"`
}

// Clone returns a deep copy so callers can mutate freely without touching
// shared definitions (the default library hands out copies only).
func (m *MealInstance) Clone() *MealInstance {
	if m == nil {
		return nil
	}
	out := *m
	out.Ingredients = make([]ServedIngredient, len(m.Ingredients))
	copy(out.Ingredients, m.Ingredients)
	return &out
}

// Accompaniment is a side item (drink, extra) tracked next to a slot but
// never merged into the meal's primary aggregate.
type Accompaniment struct {
	Name    string          `json:"name"`
	Grams   float64         `json:"grams"`
	Profile NutrientProfile `json:"profile"`
}

// UnmarshalJSON upgrades older stored plans where accompaniments were bare
// name strings. Unrecognized entries decode to a zero-gram, zero-profile
// item instead of failing the whole plan load.
func (a *Accompaniment) UnmarshalJSON(data []byte) error {
	type current Accompaniment
	var c current
	if err := json.Unmarshal(data, &c); err == nil {
		*a = Accompaniment(c)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*a = Accompaniment{Name: name, Profile: ZeroProfile()}
		return nil
	}
	*a = Accompaniment{Profile: ZeroProfile()}
	return nil
}

// DayPlan maps meal type to its slot; a nil entry is an empty slot.
type DayPlan map[string]*MealInstance

// WeekPlan maps the seven day labels to their day plans.
type WeekPlan map[string]DayPlan

// StoredPlan is the unit of plan persistence: the week grid plus the
// accompaniments map keyed by day label then meal type.
type StoredPlan struct {
	MealTypes      []string                             `json:"meal_types"`
	Days           WeekPlan                             `json:"days"`
	Accompaniments map[string]map[string][]Accompaniment `json:"accompaniments"`
}

// NewStoredPlan builds an empty week: every slot present and null.
func NewStoredPlan(mealTypes []string) *StoredPlan {
	if len(mealTypes) == 0 {
		mealTypes = DefaultMealTypes
	}
	types := make([]string, len(mealTypes))
	copy(types, mealTypes)

	days := make(WeekPlan, len(DayLabels))
	for _, day := range DayLabels {
		dp := make(DayPlan, len(types))
		for _, mt := range types {
			dp[mt] = nil
		}
		days[day] = dp
	}
	return &StoredPlan{
		MealTypes:      types,
		Days:           days,
		Accompaniments: make(map[string]map[string][]Accompaniment),
	}
}

// Normalize fills in anything a stored blob is missing (older plans may
// predate snack slots or the accompaniments map) so the rest of the code
// can assume the full grid exists.
func (p *StoredPlan) Normalize() {
	if len(p.MealTypes) == 0 {
		p.MealTypes = append(p.MealTypes, DefaultMealTypes...)
	}
	if p.Days == nil {
		p.Days = make(WeekPlan, len(DayLabels))
	}
	for _, day := range DayLabels {
		if p.Days[day] == nil {
			p.Days[day] = make(DayPlan, len(p.MealTypes))
		}
		for _, mt := range p.MealTypes {
			if _, ok := p.Days[day][mt]; !ok {
				p.Days[day][mt] = nil
			}
		}
	}
	if p.Accompaniments == nil {
		p.Accompaniments = make(map[string]map[string][]Accompaniment)
	}
}

func (p *StoredPlan) HasMealType(mealType string) bool {
	for _, mt := range p.MealTypes {
		if mt == mealType {
			return true
		}
	}
	return false
}

// ValidDayLabel reports whether day is one of the seven fixed labels.
func ValidDayLabel(day string) bool {
	for _, d := range DayLabels {
		if d == day {
			return true
		}
	}
	return false
}
