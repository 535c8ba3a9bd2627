package models

import "gorm.io/gorm"

// Ingredient is a library entry: the stored profile is accurate at exactly
// ReferenceGrams. Rows with a nil OwnerID belong to the built-in default
// library and are never mutated or deleted through the API.
type Ingredient struct {
	gorm.Model
	PublicID       string `gorm:"type:varchar(36);uniqueIndex;not null"`
	OwnerID        *uint  `gorm:"index"`
	Name           string `gorm:"not null"`
	ReferenceGrams float64
	Profile        NutrientProfile `gorm:"embedded"`
	ImageURL       string
}

// IsLibrary reports whether the ingredient comes from the shared default
// library rather than a user's own collection.
func (i Ingredient) IsLibrary() bool {
	return i.OwnerID == nil
}
