package models

import "gorm.io/gorm"

// MacroGoal holds each user's daily macro targets. The embedded display
// flags mean "show this goal's progress bar" and are independent of the
// flags on any meal profile.
type MacroGoal struct {
	gorm.Model
	UserID uint            `gorm:"index;not null"`
	Target NutrientProfile `gorm:"embedded"`
}
