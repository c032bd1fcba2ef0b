package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mealmatch/internal/errors"
	"mealmatch/internal/model"
	"mealmatch/internal/repository"
)

// IngredientInput carries the mutable fields of an inventory item.
type IngredientInput struct {
	Name     string
	Quantity decimal.Decimal
	Unit     string
	Notes    string
}

// IngredientService handles a user's inventory.
type IngredientService interface {
	List(ctx context.Context, userID uint) ([]model.Ingredient, error)
	Get(ctx context.Context, id, userID uint) (*model.Ingredient, error)
	Add(ctx context.Context, userID uint, input IngredientInput) (*model.Ingredient, error)
	Update(ctx context.Context, id, userID uint, input IngredientInput) (*model.Ingredient, error)
	Delete(ctx context.Context, id, userID uint) error
}

type ingredientService struct {
	repo repository.IngredientRepository
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(repo repository.IngredientRepository) IngredientService {
	return &ingredientService{repo: repo}
}

func (s *ingredientService) List(ctx context.Context, userID uint) ([]model.Ingredient, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *ingredientService) Get(ctx context.Context, id, userID uint) (*model.Ingredient, error) {
	ingredient, err := s.repo.FindByID(ctx, id, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}

// Add creates an inventory item. Negative quantities are a data-integrity
// bug upstream and are rejected outright, never clamped.
func (s *ingredientService) Add(ctx context.Context, userID uint, input IngredientInput) (*model.Ingredient, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	ingredient := &model.Ingredient{
		UserID:   userID,
		Name:     input.Name,
		Quantity: input.Quantity,
		Unit:     input.Unit,
		Notes:    input.Notes,
	}
	if err := s.repo.Create(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *ingredientService) Update(ctx context.Context, id, userID uint, input IngredientInput) (*model.Ingredient, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}
	ingredient, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	ingredient.Name = input.Name
	ingredient.Quantity = input.Quantity
	ingredient.Unit = input.Unit
	ingredient.Notes = input.Notes
	if err := s.repo.Update(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("update ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *ingredientService) Delete(ctx context.Context, id, userID uint) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrIngredientNotFound
		}
		return err
	}
	return nil
}

func validateInput(input *IngredientInput) error {
	if input.Quantity.IsNegative() {
		return errors.ErrNegativeQuantity
	}
	if input.Unit == "" {
		input.Unit = "pcs"
	}
	return nil
}
