package services

import (
	"log"

	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

// The built-in library shown to every user (and the full dataset in guest
// or degraded mode). It is constructed once, never mutated; accessors hand
// out copies so "create meal" in guest mode can never touch the shared set.
// Reference values are per 100 g, the usual label basis.

func libIngredient(id, name string, calories, protein, carbs, fat float64) models.Ingredient {
	return models.Ingredient{
		PublicID:       id,
		Name:           name,
		ReferenceGrams: 100,
		Profile:        models.VisibleProfile(calories, protein, carbs, fat),
	}
}

var defaultIngredients = []models.Ingredient{
	libIngredient("lib-brown-rice", "Brown Rice (cooked)", 112, 2.6, 23.5, 0.9),
	libIngredient("lib-quinoa", "Quinoa (cooked)", 120, 4.4, 21.3, 1.9),
	libIngredient("lib-chicken-breast", "Chicken Breast", 165, 31, 0, 3.6),
	libIngredient("lib-salmon", "Salmon Fillet", 208, 20.4, 0, 13.4),
	libIngredient("lib-egg", "Egg (whole)", 155, 13, 1.1, 11),
	libIngredient("lib-oats", "Rolled Oats", 389, 16.9, 66.3, 6.9),
	libIngredient("lib-milk", "Milk (whole)", 61, 3.2, 4.8, 3.3),
	libIngredient("lib-greek-yogurt", "Greek Yogurt", 59, 10, 3.6, 0.4),
	libIngredient("lib-banana", "Banana", 89, 1.1, 22.8, 0.3),
	libIngredient("lib-broccoli", "Broccoli", 34, 2.8, 6.6, 0.4),
	libIngredient("lib-sweet-potato", "Sweet Potato", 86, 1.6, 20.1, 0.6),
	libIngredient("lib-lentils", "Lentils (cooked)", 116, 9, 20.1, 0.4),
	libIngredient("lib-avocado", "Avocado", 160, 2, 8.5, 14.7),
	libIngredient("lib-almonds", "Almonds", 579, 21.2, 21.6, 49.9),
	libIngredient("lib-olive-oil", "Olive Oil", 884, 0, 0, 100),
}

type libTemplateItem struct {
	ingredientID string
	grams        float64
}

type libTemplate struct {
	id          string
	name        string
	recipe      string
	prepMinutes int
	difficulty  string
	items       []libTemplateItem
}

var libTemplates = []libTemplate{
	{
		id: "lib-meal-chicken-rice-bowl", name: "Chicken & Rice Bowl",
		recipe:      "Grill the chicken, steam the broccoli, serve over rice with a drizzle of olive oil.",
		prepMinutes: 25, difficulty: "Easy",
		items: []libTemplateItem{
			{"lib-chicken-breast", 150},
			{"lib-brown-rice", 180},
			{"lib-broccoli", 100},
			{"lib-olive-oil", 10},
		},
	},
	{
		id: "lib-meal-overnight-oats", name: "Overnight Oats",
		recipe:      "Soak oats in milk overnight, top with sliced banana before serving.",
		prepMinutes: 10, difficulty: "Easy",
		items: []libTemplateItem{
			{"lib-oats", 60},
			{"lib-milk", 200},
			{"lib-banana", 80},
		},
	},
	{
		id: "lib-meal-salmon-sweet-potato", name: "Salmon & Sweet Potato",
		recipe:      "Bake the salmon and sweet potato at 200°C for 20 minutes, serve with broccoli.",
		prepMinutes: 35, difficulty: "Medium",
		items: []libTemplateItem{
			{"lib-salmon", 140},
			{"lib-sweet-potato", 200},
			{"lib-broccoli", 120},
		},
	},
	{
		id: "lib-meal-lentil-salad", name: "Lentil & Avocado Salad",
		recipe:      "Toss cooked lentils with diced avocado and olive oil.",
		prepMinutes: 15, difficulty: "Easy",
		items: []libTemplateItem{
			{"lib-lentils", 180},
			{"lib-avocado", 70},
			{"lib-olive-oil", 8},
		},
	},
	{
		id: "lib-meal-yogurt-bowl", name: "Yogurt & Almond Bowl",
		recipe:      "Spoon yogurt into a bowl, top with almonds and banana.",
		prepMinutes: 5, difficulty: "Easy",
		items: []libTemplateItem{
			{"lib-greek-yogurt", 200},
			{"lib-almonds", 25},
			{"lib-banana", 60},
		},
	},
}

var defaultTemplates []models.MealTemplate

func init() {
	defaultTemplates = buildDefaultTemplates()
}

func buildDefaultTemplates() []models.MealTemplate {
	byID := make(map[string]models.Ingredient, len(defaultIngredients))
	for _, ing := range defaultIngredients {
		byID[ing.PublicID] = ing
	}

	out := make([]models.MealTemplate, 0, len(libTemplates))
	for _, lt := range libTemplates {
		tmpl := models.MealTemplate{
			PublicID:    lt.id,
			Name:        lt.name,
			Recipe:      lt.recipe,
			PrepMinutes: lt.prepMinutes,
			Difficulty:  lt.difficulty,
		}
		profiles := make([]models.NutrientProfile, 0, len(lt.items))
		for pos, item := range lt.items {
			ing, ok := byID[item.ingredientID]
			if !ok {
				log.Fatalf("default library: template %q references unknown ingredient %q", lt.id, item.ingredientID)
			}
			derived, err := utils.ScaleProfile(ing.Profile, ing.ReferenceGrams, item.grams)
			if err != nil {
				log.Fatalf("default library: template %q item %q: %v", lt.id, item.ingredientID, err)
			}
			tmpl.Items = append(tmpl.Items, models.MealTemplateItem{
				IngredientID:   ing.PublicID,
				Name:           ing.Name,
				Position:       pos,
				ReferenceGrams: ing.ReferenceGrams,
				Reference:      ing.Profile,
				ServedGrams:    item.grams,
				Profile:        derived,
			})
			profiles = append(profiles, derived)
		}
		tmpl.Profile = utils.AggregateProfiles(profiles)
		out = append(out, tmpl)
	}
	return out
}

// DefaultIngredients returns a caller-owned copy of the seed ingredients.
func DefaultIngredients() []models.Ingredient {
	out := make([]models.Ingredient, len(defaultIngredients))
	copy(out, defaultIngredients)
	return out
}

// DefaultTemplates returns a caller-owned deep copy of the seed meals.
func DefaultTemplates() []models.MealTemplate {
	out := make([]models.MealTemplate, len(defaultTemplates))
	copy(out, defaultTemplates)
	for i := range out {
		items := make([]models.MealTemplateItem, len(defaultTemplates[i].Items))
		copy(items, defaultTemplates[i].Items)
		out[i].Items = items
	}
	return out
}

// SeedDefaultLibrary inserts any missing library rows so the shared entries
// are queryable next to user-owned ones. Existing rows are left alone.
func SeedDefaultLibrary(db *gorm.DB) error {
	for _, ing := range DefaultIngredients() {
		var count int64
		if err := db.Model(&models.Ingredient{}).Where("public_id = ?", ing.PublicID).Count(&count).Error; err != nil {
			return &StorageError{Op: "seed ingredients", Err: err}
		}
		if count == 0 {
			if err := db.Create(&ing).Error; err != nil {
				return &StorageError{Op: "seed ingredients", Err: err}
			}
		}
	}
	for _, tmpl := range DefaultTemplates() {
		var count int64
		if err := db.Model(&models.MealTemplate{}).Where("public_id = ?", tmpl.PublicID).Count(&count).Error; err != nil {
			return &StorageError{Op: "seed meals", Err: err}
		}
		if count == 0 {
			if err := db.Create(&tmpl).Error; err != nil {
				return &StorageError{Op: "seed meals", Err: err}
			}
		}
	}
	return nil
}
