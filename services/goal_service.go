package services

import (
	"errors"

	"backend/config"
	"backend/models"
	"backend/utils"

	"gorm.io/gorm"
)

// GetGoal returns the user's macro goal, or a zero goal (nothing set, all
// bars hidden from progress by target<=0) when none exists yet.
func GetGoal(userID uint) (*models.MacroGoal, error) {
	var goal models.MacroGoal
	err := config.DB.Where("user_id = ?", userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.MacroGoal{UserID: userID, Target: models.ZeroProfile()}, nil
		}
		return nil, &StorageError{Op: "load goal", Err: err}
	}
	return &goal, nil
}

// UpsertGoal stores the target value object as supplied; the service only
// ever reads it back for comparison.
func UpsertGoal(userID uint, target models.NutrientProfile) (*models.MacroGoal, error) {
	var goal models.MacroGoal
	err := config.DB.Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		goal = models.MacroGoal{UserID: userID, Target: target}
		if err := config.DB.Create(&goal).Error; err != nil {
			return nil, &StorageError{Op: "create goal", Err: err}
		}
		return &goal, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "load goal", Err: err}
	}

	goal.Target = target
	if err := config.DB.Save(&goal).Error; err != nil {
		return nil, &StorageError{Op: "update goal", Err: err}
	}
	return &goal, nil
}

// QuantityProgress is one progress bar: consumed vs target, clamped to
// 0–100. Shown mirrors the goal's own display flag for that quantity.
type QuantityProgress struct {
	Consumed float64 `json:"consumed"`
	Goal     float64 `json:"goal"`
	Percent  float64 `json:"percent"`
	Shown    bool    `json:"shown"`
}

// GoalProgressReport compares a day total against the goal, one quantity
// at a time; quantities are never mixed. A nil goal reports zero targets.
func GoalProgressReport(goal *models.MacroGoal, current models.NutrientProfile) map[string]QuantityProgress {
	target := models.ZeroProfile()
	if goal != nil {
		target = goal.Target
	}
	return map[string]QuantityProgress{
		"calories": {
			Consumed: current.Calories,
			Goal:     target.Calories,
			Percent:  utils.GoalProgress(current.Calories, target.Calories),
			Shown:    target.ShowCalories,
		},
		"protein": {
			Consumed: current.Protein,
			Goal:     target.Protein,
			Percent:  utils.GoalProgress(current.Protein, target.Protein),
			Shown:    target.ShowProtein,
		},
		"carbs": {
			Consumed: current.Carbs,
			Goal:     target.Carbs,
			Percent:  utils.GoalProgress(current.Carbs, target.Carbs),
			Shown:    target.ShowCarbs,
		},
		"fat": {
			Consumed: current.Fat,
			Goal:     target.Fat,
			Percent:  utils.GoalProgress(current.Fat, target.Fat),
			Shown:    target.ShowFat,
		},
	}
}
