package services

import (
	"errors"
	"strings"

	"backend/config"
	"backend/models"
	"backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TemplateResolver supplies meal definitions for slot fills and shuffles.
type TemplateResolver interface {
	ResolveTemplate(userID uint, publicID string) (models.MealTemplate, error)
}

type MealTemplateService struct {
	ingredients IngredientResolver
}

func NewMealTemplateService(ingredients IngredientResolver) *MealTemplateService {
	return &MealTemplateService{ingredients: ingredients}
}

type TemplateItemRequest struct {
	IngredientID string   `json:"ingredient_id"`
	Grams        *float64 `json:"grams"` // nil = the ingredient's reference serving
}

type TemplateInput struct {
	Name        string
	Recipe      string
	PrepMinutes int
	Difficulty  string
	ImageURL    string
	Items       []TemplateItemRequest
}

func (s *MealTemplateService) List(userID uint) ([]models.MealTemplate, error) {
	var out []models.MealTemplate
	err := config.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("owner_id IS NULL OR owner_id = ?", userID).
		Order("name").
		Find(&out).Error
	if err != nil {
		return nil, &StorageError{Op: "list meals", Err: err}
	}
	return out, nil
}

func (s *MealTemplateService) ResolveTemplate(userID uint, publicID string) (models.MealTemplate, error) {
	var tmpl models.MealTemplate
	err := config.DB.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("public_id = ? AND (owner_id IS NULL OR owner_id = ?)", publicID, userID).
		First(&tmpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.MealTemplate{}, ErrNotFound
		}
		// Degraded mode: the seed meals remain available.
		for _, seed := range DefaultTemplates() {
			if seed.PublicID == publicID {
				return seed, nil
			}
		}
		return models.MealTemplate{}, &StorageError{Op: "resolve meal", Err: err}
	}
	return tmpl, nil
}

func (s *MealTemplateService) Create(userID uint, in TemplateInput) (*models.MealTemplate, error) {
	tmpl, err := s.assemble(userID, uuid.NewString(), in)
	if err != nil {
		return nil, err
	}
	tmpl.OwnerID = &userID
	if err := config.DB.Create(tmpl).Error; err != nil {
		return nil, &StorageError{Op: "create meal", Err: err}
	}
	return tmpl, nil
}

// Update rewrites a template from the input. Editing a library meal never
// touches the shared row: the edit lands on a fresh user-owned copy.
func (s *MealTemplateService) Update(userID uint, publicID string, in TemplateInput) (*models.MealTemplate, error) {
	existing, err := s.ResolveTemplate(userID, publicID)
	if err != nil {
		return nil, err
	}

	if existing.OwnerID == nil {
		copied, err := s.assemble(userID, uuid.NewString(), in)
		if err != nil {
			return nil, err
		}
		copied.OwnerID = &userID
		if err := config.DB.Create(copied).Error; err != nil {
			return nil, &StorageError{Op: "copy meal", Err: err}
		}
		return copied, nil
	}
	if *existing.OwnerID != userID {
		return nil, ErrForbidden
	}

	rebuilt, err := s.assemble(userID, existing.PublicID, in)
	if err != nil {
		return nil, err
	}

	// Replace items wholesale, then the parent row, so the stored aggregate
	// can never drift from its items.
	if err := config.DB.Where("meal_template_id = ?", existing.ID).
		Delete(&models.MealTemplateItem{}).Error; err != nil {
		return nil, &StorageError{Op: "update meal", Err: err}
	}
	existing.Name = rebuilt.Name
	existing.Recipe = rebuilt.Recipe
	existing.PrepMinutes = rebuilt.PrepMinutes
	existing.Difficulty = rebuilt.Difficulty
	existing.ImageURL = rebuilt.ImageURL
	existing.Items = rebuilt.Items
	existing.Profile = rebuilt.Profile
	if err := config.DB.Save(&existing).Error; err != nil {
		return nil, &StorageError{Op: "update meal", Err: err}
	}
	return &existing, nil
}

func (s *MealTemplateService) Delete(userID uint, publicID string) error {
	var tmpl models.MealTemplate
	err := config.DB.Where("public_id = ?", publicID).First(&tmpl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return &StorageError{Op: "load meal", Err: err}
	}
	if tmpl.OwnerID == nil || *tmpl.OwnerID != userID {
		return ErrForbidden
	}
	if err := config.DB.Where("meal_template_id = ?", tmpl.ID).
		Delete(&models.MealTemplateItem{}).Error; err != nil {
		return &StorageError{Op: "delete meal", Err: err}
	}
	if err := config.DB.Delete(&tmpl).Error; err != nil {
		return &StorageError{Op: "delete meal", Err: err}
	}
	return nil
}

// assemble resolves every requested ingredient, derives the per-item
// profiles at the requested grams and aggregates them into the template
// profile. Any unknown ingredient rejects the whole input.
func (s *MealTemplateService) assemble(userID uint, publicID string, in TemplateInput) (*models.MealTemplate, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("meal name is required")
	}

	tmpl := &models.MealTemplate{
		PublicID:    publicID,
		Name:        name,
		Recipe:      in.Recipe,
		PrepMinutes: in.PrepMinutes,
		Difficulty:  in.Difficulty,
		ImageURL:    in.ImageURL,
	}

	profiles := make([]models.NutrientProfile, 0, len(in.Items))
	for pos, req := range in.Items {
		ing, err := s.ingredients.Resolve(userID, req.IngredientID)
		if err != nil {
			return nil, err
		}
		grams := ing.ReferenceGrams
		if req.Grams != nil {
			grams = *req.Grams
		}
		derived, err := utils.ScaleProfile(ing.Profile, ing.ReferenceGrams, grams)
		if err != nil {
			return nil, err
		}
		tmpl.Items = append(tmpl.Items, models.MealTemplateItem{
			IngredientID:   ing.PublicID,
			Name:           ing.Name,
			Position:       pos,
			ReferenceGrams: ing.ReferenceGrams,
			Reference:      ing.Profile,
			ServedGrams:    grams,
			Profile:        derived,
		})
		profiles = append(profiles, derived)
	}
	tmpl.Profile = utils.AggregateProfiles(profiles)
	return tmpl, nil
}

// TemplateToMealInstance copies a definition into a slot wholesale: the
// ingredients and aggregate come over exactly as stored, with no rescaling
// to any prior serving context.
func TemplateToMealInstance(tmpl models.MealTemplate) *models.MealInstance {
	inst := &models.MealInstance{
		Name:        tmpl.Name,
		TemplateID:  tmpl.PublicID,
		Profile:     tmpl.Profile,
		Recipe:      tmpl.Recipe,
		PrepMinutes: tmpl.PrepMinutes,
		Difficulty:  tmpl.Difficulty,
	}
	for _, item := range tmpl.Items {
		inst.Ingredients = append(inst.Ingredients, models.ServedIngredient{
			IngredientID:   item.IngredientID,
			Name:           item.Name,
			ReferenceGrams: item.ReferenceGrams,
			Reference:      item.Reference,
			ServedGrams:    item.ServedGrams,
			Profile:        item.Profile,
		})
	}
	return inst
}
