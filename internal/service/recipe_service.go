package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mealmatch/internal/cache"
	"mealmatch/internal/errors"
	"mealmatch/internal/model"
	"mealmatch/internal/repository"
)

const (
	catalogCacheKey = "recipes:catalog"
	catalogCacheTTL = 5 * time.Minute
)

// RecipeIngredientInput is one required-ingredient line of a recipe request.
// Quantity defaults to 1 and unit to "pcs" when omitted.
type RecipeIngredientInput struct {
	Name     string
	Quantity *decimal.Decimal
	Unit     string
}

// RecipeInput carries the mutable fields of a recipe.
type RecipeInput struct {
	Title        string
	Description  string
	Instructions string
	Ingredients  []RecipeIngredientInput
}

// RecipeService handles the shared recipe catalog.
type RecipeService interface {
	ListAll(ctx context.Context) ([]model.Recipe, error)
	Get(ctx context.Context, id uint) (*model.Recipe, error)
	Create(ctx context.Context, createdBy uint, input RecipeInput) (*model.Recipe, error)
	Update(ctx context.Context, id uint, input RecipeInput) (*model.Recipe, error)
	Delete(ctx context.Context, id uint) error
}

type recipeService struct {
	repo  repository.RecipeRepository
	cache *cache.Client
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(repo repository.RecipeRepository, cache *cache.Client) RecipeService {
	return &recipeService{repo: repo, cache: cache}
}

// ListAll returns the full catalog with requirements, cached briefly since
// plan generation reads it on every call.
func (s *recipeService) ListAll(ctx context.Context) ([]model.Recipe, error) {
	if data, _ := s.cache.Get(ctx, catalogCacheKey); data != nil {
		var cached []model.Recipe
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	recipes, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(recipes); err == nil {
		_ = s.cache.Set(ctx, catalogCacheKey, payload, catalogCacheTTL)
	}
	return recipes, nil
}

func (s *recipeService) Get(ctx context.Context, id uint) (*model.Recipe, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) Create(ctx context.Context, createdBy uint, input RecipeInput) (*model.Recipe, error) {
	rows, err := requirementRows(input.Ingredients)
	if err != nil {
		return nil, err
	}
	recipe := &model.Recipe{
		Title:        input.Title,
		Description:  input.Description,
		Instructions: input.Instructions,
		CreatedBy:    &createdBy,
		Ingredients:  rows,
	}
	if err := s.repo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	_ = s.cache.Delete(ctx, catalogCacheKey)
	return recipe, nil
}

func (s *recipeService) Update(ctx context.Context, id uint, input RecipeInput) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rows, err := requirementRows(input.Ingredients)
	if err != nil {
		return nil, err
	}
	recipe.Title = input.Title
	recipe.Description = input.Description
	recipe.Instructions = input.Instructions
	if err := s.repo.ReplaceIngredients(ctx, recipe, rows); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	_ = s.cache.Delete(ctx, catalogCacheKey)
	return s.Get(ctx, id)
}

func (s *recipeService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrRecipeNotFound
		}
		return err
	}
	_ = s.cache.Delete(ctx, catalogCacheKey)
	return nil
}

// requirementRows converts request lines into rows, applying the defaults of
// quantity 1 and unit "pcs" and rejecting negative quantities.
func requirementRows(inputs []RecipeIngredientInput) ([]model.RecipeIngredient, error) {
	rows := make([]model.RecipeIngredient, 0, len(inputs))
	for _, in := range inputs {
		if in.Name == "" {
			continue
		}
		qty := decimal.NewFromInt(1)
		if in.Quantity != nil {
			if in.Quantity.IsNegative() {
				return nil, errors.ErrNegativeQuantity
			}
			qty = *in.Quantity
		}
		unit := in.Unit
		if unit == "" {
			unit = "pcs"
		}
		rows = append(rows, model.RecipeIngredient{
			IngredientName:   in.Name,
			RequiredQuantity: qty,
			Unit:             unit,
		})
	}
	return rows, nil
}
