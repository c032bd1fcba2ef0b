package repository

import (
	"context"

	"gorm.io/gorm"

	"mealmatch/internal/model"
)

// MealPlanRepository defines meal-plan persistence operations. Plans are
// append-only: there is no update method, a regenerated week replaces the
// stored row wholesale.
type MealPlanRepository interface {
	Create(ctx context.Context, plan *model.MealPlan) error
	FindByUserAndWeek(ctx context.Context, userID uint, weekStart string) (*model.MealPlan, error)
	ListForUser(ctx context.Context, userID uint) ([]model.MealPlan, error)
	ReplaceForWeek(ctx context.Context, plan *model.MealPlan) error
}

type mealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal plan repository.
func NewMealPlanRepository(db *gorm.DB) MealPlanRepository {
	return &mealPlanRepository{db: db}
}

// Create appends a new immutable plan row.
func (r *mealPlanRepository) Create(ctx context.Context, plan *model.MealPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

// FindByUserAndWeek finds the stored plan for a user's week, if any.
func (r *mealPlanRepository) FindByUserAndWeek(ctx context.Context, userID uint, weekStart string) (*model.MealPlan, error) {
	var plan model.MealPlan
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListForUser lists a user's plans, most recent week first.
func (r *mealPlanRepository) ListForUser(ctx context.Context, userID uint) ([]model.MealPlan, error) {
	var plans []model.MealPlan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("week_start DESC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// ReplaceForWeek deletes any stored plan for the same user and week and
// inserts the new row, atomically. The old payload is never mutated.
func (r *mealPlanRepository) ReplaceForWeek(ctx context.Context, plan *model.MealPlan) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND week_start = ?", plan.UserID, plan.WeekStart).
			Delete(&model.MealPlan{}).Error; err != nil {
			return err
		}
		return tx.Create(plan).Error
	})
}
