package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mealmatch/internal/errors"
	"mealmatch/internal/model"
	"mealmatch/internal/planner"
)

// MockMealPlanRepository is a mock implementation of MealPlanRepository.
type MockMealPlanRepository struct {
	mock.Mock
}

func (m *MockMealPlanRepository) Create(ctx context.Context, plan *model.MealPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockMealPlanRepository) FindByUserAndWeek(ctx context.Context, userID uint, weekStart string) (*model.MealPlan, error) {
	args := m.Called(ctx, userID, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) ListForUser(ctx context.Context, userID uint) ([]model.MealPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) ReplaceForWeek(ctx context.Context, plan *model.MealPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

// MockIngredientRepository is a mock implementation of IngredientRepository.
type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) Create(ctx context.Context, ingredient *model.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) Update(ctx context.Context, ingredient *model.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) Delete(ctx context.Context, id, userID uint) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockIngredientRepository) FindByID(ctx context.Context, id, userID uint) (*model.Ingredient, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) ListForUser(ctx context.Context, userID uint) ([]model.Ingredient, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Ingredient), args.Error(1)
}

// MockRecipeService is a mock implementation of RecipeService.
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) ListAll(ctx context.Context) ([]model.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Get(ctx context.Context, id uint) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Create(ctx context.Context, createdBy uint, input RecipeInput) (*model.Recipe, error) {
	args := m.Called(ctx, createdBy, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Update(ctx context.Context, id uint, input RecipeInput) (*model.Recipe, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestWeekStartOf(t *testing.T) {
	tests := []struct {
		name     string
		day      string
		expected string
	}{
		{"monday maps to itself", "2025-06-02", "2025-06-02"},
		{"wednesday maps back to monday", "2025-06-04", "2025-06-02"},
		{"sunday maps back to monday", "2025-06-08", "2025-06-02"},
		{"saturday across a month boundary", "2025-08-02", "2025-07-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := time.Parse(planner.DateLayout, tt.day)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, WeekStartOf(d))
		})
	}
}

func testInventory() []model.Ingredient {
	return []model.Ingredient{
		{UserID: 1, Name: "Rice", Quantity: decimal.NewFromInt(10), Unit: "cups"},
		{UserID: 1, Name: "Eggs", Quantity: decimal.NewFromInt(12), Unit: "pcs"},
	}
}

func testCatalog() []model.Recipe {
	return []model.Recipe{
		{
			Title: "Fried Rice",
			Ingredients: []model.RecipeIngredient{
				{IngredientName: "Rice", RequiredQuantity: decimal.NewFromInt(2), Unit: "cups"},
				{IngredientName: "Egg", RequiredQuantity: decimal.NewFromInt(2), Unit: "pcs"},
			},
		},
		{
			Title: "Omelette",
			Ingredients: []model.RecipeIngredient{
				{IngredientName: "Eggs", RequiredQuantity: decimal.NewFromInt(3), Unit: "pcs"},
			},
		},
	}
}

func newTestMealPlanService(planRepo *MockMealPlanRepository, ingredientRepo *MockIngredientRepository, recipes *MockRecipeService, now time.Time) MealPlanService {
	svc := NewMealPlanService(planRepo, ingredientRepo, recipes, planner.New(), nil).(*mealPlanService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestMealPlanService_GetOrCreateWeekly_ReturnsStoredPlan(t *testing.T) {
	fixedNow := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	weekStart := "2025-06-02"

	matcher := planner.New()
	plan, err := matcher.Generate(toPlannerInventory(testInventory()), toPlannerCatalog(testCatalog()), weekStart)
	require.NoError(t, err)
	payload, err := plan.Encode()
	require.NoError(t, err)

	planRepo := new(MockMealPlanRepository)
	planRepo.On("FindByUserAndWeek", mock.Anything, uint(1), weekStart).Return(&model.MealPlan{
		UserID:      1,
		WeekStart:   weekStart,
		GeneratedOn: fixedNow.Add(-time.Hour),
		PlanJSON:    string(payload),
	}, nil)

	svc := newTestMealPlanService(planRepo, new(MockIngredientRepository), new(MockRecipeService), fixedNow)
	weekly, err := svc.GetOrCreateWeekly(context.Background(), 1, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, weekStart, weekly.WeekStart)
	assert.Equal(t, fixedNow.Add(-time.Hour), weekly.GeneratedOn)
	assert.Len(t, weekly.Plan.Days, planner.DaysPerWeek)
	planRepo.AssertExpectations(t)
	planRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMealPlanService_GetOrCreateWeekly_GeneratesWhenAbsent(t *testing.T) {
	fixedNow := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	weekStart := "2025-06-02"

	planRepo := new(MockMealPlanRepository)
	planRepo.On("FindByUserAndWeek", mock.Anything, uint(1), weekStart).Return(nil, gorm.ErrRecordNotFound)
	planRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.MealPlan")).Return(nil)

	ingredientRepo := new(MockIngredientRepository)
	ingredientRepo.On("ListForUser", mock.Anything, uint(1)).Return(testInventory(), nil)

	recipes := new(MockRecipeService)
	recipes.On("ListAll", mock.Anything).Return(testCatalog(), nil)

	svc := newTestMealPlanService(planRepo, ingredientRepo, recipes, fixedNow)
	weekly, err := svc.GetOrCreateWeekly(context.Background(), 1, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, weekStart, weekly.WeekStart)
	assert.Equal(t, fixedNow.Truncate(time.Second), weekly.GeneratedOn)
	require.Len(t, weekly.Plan.Days, planner.DaysPerWeek)
	assert.Equal(t, "Fried Rice", weekly.Plan.Days[0].Title)

	stored := planRepo.Calls[1].Arguments.Get(1).(*model.MealPlan)
	assert.Equal(t, weekStart, stored.WeekStart)
	assert.JSONEq(t, mustEncode(t, weekly.Plan), stored.PlanJSON)

	planRepo.AssertExpectations(t)
	ingredientRepo.AssertExpectations(t)
	recipes.AssertExpectations(t)
}

func TestMealPlanService_Regenerate_ReplacesStoredPlan(t *testing.T) {
	fixedNow := time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)
	weekStart := "2025-06-02"

	planRepo := new(MockMealPlanRepository)
	planRepo.On("ReplaceForWeek", mock.Anything, mock.AnythingOfType("*model.MealPlan")).Return(nil)

	ingredientRepo := new(MockIngredientRepository)
	ingredientRepo.On("ListForUser", mock.Anything, uint(1)).Return(testInventory(), nil)

	recipes := new(MockRecipeService)
	recipes.On("ListAll", mock.Anything).Return(testCatalog(), nil)

	svc := newTestMealPlanService(planRepo, ingredientRepo, recipes, fixedNow)
	weekly, err := svc.Regenerate(context.Background(), 1, fixedNow)

	require.NoError(t, err)
	assert.Equal(t, weekStart, weekly.WeekStart)
	assert.Len(t, weekly.Plan.Days, planner.DaysPerWeek)

	// Regeneration never edits a stored row in place.
	planRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	planRepo.AssertExpectations(t)
}

func TestMealPlanService_GetForWeek_NotFound(t *testing.T) {
	planRepo := new(MockMealPlanRepository)
	planRepo.On("FindByUserAndWeek", mock.Anything, uint(1), "2025-06-02").Return(nil, gorm.ErrRecordNotFound)

	svc := newTestMealPlanService(planRepo, new(MockIngredientRepository), new(MockRecipeService), time.Now())
	weekly, err := svc.GetForWeek(context.Background(), 1, "2025-06-02")

	assert.ErrorIs(t, err, errors.ErrMealPlanNotFound)
	assert.Nil(t, weekly)
	planRepo.AssertExpectations(t)
}

func mustEncode(t *testing.T, plan *planner.Plan) string {
	t.Helper()
	payload, err := plan.Encode()
	require.NoError(t, err)
	return string(payload)
}
