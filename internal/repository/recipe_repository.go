package repository

import (
	"context"

	"gorm.io/gorm"

	"mealmatch/internal/model"
)

// RecipeRepository defines recipe catalog persistence operations.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Recipe, error)
	ListAll(ctx context.Context) ([]model.Recipe, error)
	ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.RecipeIngredient) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// Create creates a recipe together with its requirement rows.
func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// Delete removes a recipe; requirement rows cascade.
func (r *recipeRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Select("Ingredients").Delete(&model.Recipe{ID: id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds a recipe with its required ingredients.
func (r *recipeRepository) FindByID(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).Preload("Ingredients").Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListAll lists the full catalog with required ingredients, ordered by title.
func (r *recipeRepository) ListAll(ctx context.Context) ([]model.Recipe, error) {
	var recipes []model.Recipe
	if err := r.db.WithContext(ctx).Preload("Ingredients").Order("title").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ReplaceIngredients updates a recipe's fields and swaps its requirement
// rows in one transaction.
func (r *recipeRepository) ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Updates(map[string]interface{}{
			"title":        recipe.Title,
			"description":  recipe.Description,
			"instructions": recipe.Instructions,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		for i := range ingredients {
			ingredients[i].RecipeID = recipe.ID
		}
		if len(ingredients) == 0 {
			return nil
		}
		return tx.Create(&ingredients).Error
	})
}
