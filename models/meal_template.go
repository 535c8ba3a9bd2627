package models

import "gorm.io/gorm"

// MealTemplate is a reusable meal definition. Profile always equals the
// aggregation of its items' derived profiles; it is recomputed on every
// item change, never edited directly.
type MealTemplate struct {
	gorm.Model
	PublicID    string `gorm:"type:varchar(36);uniqueIndex;not null"`
	OwnerID     *uint  `gorm:"index"`
	Name        string `gorm:"not null"`
	Recipe      string `gorm:"type:text"`
	PrepMinutes int
	Difficulty  string `gorm:"size:16"` // "Easy" | "Medium" | "Hard"
	ImageURL    string
	Items       []MealTemplateItem
	Profile     NutrientProfile `gorm:"embedded"`
}

// MealTemplateItem snapshots one served ingredient: the reference data it
// was built from plus the profile derived at ServedGrams.
type MealTemplateItem struct {
	gorm.Model
	MealTemplateID uint   `gorm:"index"`
	IngredientID   string `gorm:"type:varchar(36);not null"` // Ingredient.PublicID
	Name           string
	Position       int
	ReferenceGrams float64
	Reference      NutrientProfile `gorm:"embedded;embeddedPrefix:ref_"`
	ServedGrams    float64
	Profile        NutrientProfile `gorm:"embedded"`
}
