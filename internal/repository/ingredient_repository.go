package repository

import (
	"context"

	"gorm.io/gorm"

	"mealmatch/internal/model"
)

// IngredientRepository defines inventory persistence operations. All reads
// and writes are scoped to the owning user.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *model.Ingredient) error
	Update(ctx context.Context, ingredient *model.Ingredient) error
	Delete(ctx context.Context, id, userID uint) error
	FindByID(ctx context.Context, id, userID uint) (*model.Ingredient, error)
	ListForUser(ctx context.Context, userID uint) ([]model.Ingredient, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository.
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

// Create creates a new inventory item.
func (r *ingredientRepository) Create(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

// Update updates an existing inventory item.
func (r *ingredientRepository) Update(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

// Delete removes an inventory item owned by the user.
func (r *ingredientRepository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Ingredient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID finds an inventory item by ID, scoped to its owner.
func (r *ingredientRepository) FindByID(ctx context.Context, id, userID uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// ListForUser lists a user's inventory ordered by name.
func (r *ingredientRepository) ListForUser(ctx context.Context, userID uint) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}
