package services

import (
	"errors"
	"log"
	"strings"

	"backend/config"
	"backend/models"
	"backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IngredientResolver is the available-ingredients set consulted by plan and
// meal assembly. Resolution failures reject the mutation that asked.
type IngredientResolver interface {
	Resolve(userID uint, publicID string) (models.Ingredient, error)
}

type IngredientService struct {
	notifier *NotificationService
}

func NewIngredientService(notifier *NotificationService) *IngredientService {
	return &IngredientService{notifier: notifier}
}

// List returns the default library plus the user's own ingredients. On a
// storage failure it degrades to the in-memory seed copy and notifies the
// user instead of failing the request; edits in that mode are unsaved.
func (s *IngredientService) List(userID uint) ([]models.Ingredient, error) {
	var out []models.Ingredient
	err := config.DB.
		Where("owner_id IS NULL OR owner_id = ?", userID).
		Order("name").
		Find(&out).Error
	if err != nil {
		log.Printf("%v", &StorageError{Op: "list ingredients", Err: err})
		if s.notifier != nil {
			s.notifier.Notify(userID, "warning",
				"Couldn't load your ingredients. Showing the built-in library; changes won't be saved.")
		}
		return DefaultIngredients(), nil
	}
	return out, nil
}

func (s *IngredientService) Resolve(userID uint, publicID string) (models.Ingredient, error) {
	var ing models.Ingredient
	err := config.DB.
		Where("public_id = ? AND (owner_id IS NULL OR owner_id = ?)", publicID, userID).
		First(&ing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Ingredient{}, ErrUnknownIngredient
		}
		// Degraded mode: the seed set is still resolvable.
		for _, seed := range defaultIngredients {
			if seed.PublicID == publicID {
				return seed, nil
			}
		}
		return models.Ingredient{}, &StorageError{Op: "resolve ingredient", Err: err}
	}
	return ing, nil
}

type CreateIngredientInput struct {
	Name           string
	ReferenceGrams float64
	Profile        models.NutrientProfile
	ImageURL       string
}

func (s *IngredientService) Create(userID uint, in CreateIngredientInput) (*models.Ingredient, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("ingredient name is required")
	}
	if in.ReferenceGrams <= 0 {
		return nil, utils.ErrInvalidReference
	}

	ing := models.Ingredient{
		PublicID:       uuid.NewString(),
		OwnerID:        &userID,
		Name:           name,
		ReferenceGrams: in.ReferenceGrams,
		Profile:        in.Profile,
		ImageURL:       in.ImageURL,
	}
	if err := config.DB.Create(&ing).Error; err != nil {
		return nil, &StorageError{Op: "create ingredient", Err: err}
	}
	return &ing, nil
}

// UpdateIngredientInput carries a partial update; nil fields are untouched.
type UpdateIngredientInput struct {
	Name           *string
	ReferenceGrams *float64
	Profile        *models.NutrientProfile
	ImageURL       *string
}

func (s *IngredientService) Update(userID uint, publicID string, in UpdateIngredientInput) (*models.Ingredient, error) {
	ing, err := s.ownedIngredient(userID, publicID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, errors.New("ingredient name is required")
		}
		ing.Name = name
	}
	if in.ReferenceGrams != nil {
		if *in.ReferenceGrams <= 0 {
			return nil, utils.ErrInvalidReference
		}
		ing.ReferenceGrams = *in.ReferenceGrams
	}
	if in.Profile != nil {
		ing.Profile = *in.Profile
	}
	if in.ImageURL != nil {
		ing.ImageURL = *in.ImageURL
	}

	if err := config.DB.Save(ing).Error; err != nil {
		return nil, &StorageError{Op: "update ingredient", Err: err}
	}
	return ing, nil
}

func (s *IngredientService) Delete(userID uint, publicID string) error {
	ing, err := s.ownedIngredient(userID, publicID)
	if err != nil {
		return err
	}
	if err := config.DB.Delete(ing).Error; err != nil {
		return &StorageError{Op: "delete ingredient", Err: err}
	}
	return nil
}

// ownedIngredient loads an entry the user is allowed to mutate: their own
// rows only, never the shared library.
func (s *IngredientService) ownedIngredient(userID uint, publicID string) (*models.Ingredient, error) {
	var ing models.Ingredient
	err := config.DB.Where("public_id = ?", publicID).First(&ing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StorageError{Op: "load ingredient", Err: err}
	}
	if ing.IsLibrary() || *ing.OwnerID != userID {
		return nil, ErrForbidden
	}
	return &ing, nil
}
