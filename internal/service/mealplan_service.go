package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mealmatch/internal/cache"
	"mealmatch/internal/errors"
	"mealmatch/internal/model"
	"mealmatch/internal/planner"
	"mealmatch/internal/repository"
)

const planCacheTTL = 10 * time.Minute

// WeeklyPlan is a generated or retrieved plan together with its persistence
// metadata.
type WeeklyPlan struct {
	WeekStart   string       `json:"week_start"`
	GeneratedOn time.Time    `json:"generated_on"`
	Plan        *planner.Plan `json:"-"`
}

// MealPlanService generates and retrieves weekly plans. A week's plan is
// generated once from a snapshot of the user's inventory and the catalog and
// stored immutably; regeneration swaps in a brand-new row.
type MealPlanService interface {
	GetOrCreateWeekly(ctx context.Context, userID uint, today time.Time) (*WeeklyPlan, error)
	Regenerate(ctx context.Context, userID uint, today time.Time) (*WeeklyPlan, error)
	GetForWeek(ctx context.Context, userID uint, weekStart string) (*WeeklyPlan, error)
}

type mealPlanService struct {
	planRepo       repository.MealPlanRepository
	ingredientRepo repository.IngredientRepository
	recipes        RecipeService
	matcher        *planner.Matcher
	cache          *cache.Client
	now            func() time.Time
}

// NewMealPlanService creates a new meal plan service.
func NewMealPlanService(
	planRepo repository.MealPlanRepository,
	ingredientRepo repository.IngredientRepository,
	recipes RecipeService,
	matcher *planner.Matcher,
	cache *cache.Client,
) MealPlanService {
	return &mealPlanService{
		planRepo:       planRepo,
		ingredientRepo: ingredientRepo,
		recipes:        recipes,
		matcher:        matcher,
		cache:          cache,
		now:            time.Now,
	}
}

// WeekStartOf returns the ISO date of the Monday of d's week.
func WeekStartOf(d time.Time) string {
	offset := (int(d.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return d.AddDate(0, 0, -offset).Format(planner.DateLayout)
}

func planCacheKey(userID uint, weekStart string) string {
	return fmt.Sprintf("mealplan:%d:%s", userID, weekStart)
}

// GetOrCreateWeekly returns the stored plan for the current week, generating
// and persisting one if none exists yet.
func (s *mealPlanService) GetOrCreateWeekly(ctx context.Context, userID uint, today time.Time) (*WeeklyPlan, error) {
	weekStart := WeekStartOf(today)

	if cached := s.fromCache(ctx, userID, weekStart); cached != nil {
		return cached, nil
	}

	row, err := s.planRepo.FindByUserAndWeek(ctx, userID, weekStart)
	if err == nil {
		return s.toWeekly(ctx, row)
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find meal plan: %w", err)
	}

	return s.generateAndStore(ctx, userID, weekStart, s.planRepo.Create)
}

// Regenerate discards the current week's plan and generates a fresh one from
// the live inventory and catalog. The old row is replaced, never edited.
func (s *mealPlanService) Regenerate(ctx context.Context, userID uint, today time.Time) (*WeeklyPlan, error) {
	weekStart := WeekStartOf(today)
	_ = s.cache.Delete(ctx, planCacheKey(userID, weekStart))
	return s.generateAndStore(ctx, userID, weekStart, s.planRepo.ReplaceForWeek)
}

// GetForWeek returns the stored plan for an explicit week, without generating.
func (s *mealPlanService) GetForWeek(ctx context.Context, userID uint, weekStart string) (*WeeklyPlan, error) {
	row, err := s.planRepo.FindByUserAndWeek(ctx, userID, weekStart)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrMealPlanNotFound
		}
		return nil, fmt.Errorf("find meal plan: %w", err)
	}
	return s.toWeekly(ctx, row)
}

func (s *mealPlanService) generateAndStore(ctx context.Context, userID uint, weekStart string, store func(context.Context, *model.MealPlan) error) (*WeeklyPlan, error) {
	// Snapshot reads: the matcher never re-reads mid-computation.
	inventoryRows, err := s.ingredientRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list inventory: %w", err)
	}
	catalogRows, err := s.recipes.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	plan, err := s.matcher.Generate(toPlannerInventory(inventoryRows), toPlannerCatalog(catalogRows), weekStart)
	if err != nil {
		return nil, err
	}

	payload, err := plan.Encode()
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}

	row := &model.MealPlan{
		UserID:      userID,
		GeneratedOn: s.now().UTC().Truncate(time.Second),
		WeekStart:   weekStart,
		PlanJSON:    string(payload),
	}
	if err := store(ctx, row); err != nil {
		return nil, fmt.Errorf("store meal plan: %w", err)
	}

	weekly := &WeeklyPlan{WeekStart: weekStart, GeneratedOn: row.GeneratedOn, Plan: plan}
	s.toCache(ctx, userID, weekly)
	return weekly, nil
}

func (s *mealPlanService) toWeekly(ctx context.Context, row *model.MealPlan) (*WeeklyPlan, error) {
	plan, err := planner.Decode([]byte(row.PlanJSON))
	if err != nil {
		return nil, fmt.Errorf("stored plan for week %s: %w", row.WeekStart, err)
	}
	plan.WeekStart = row.WeekStart
	weekly := &WeeklyPlan{WeekStart: row.WeekStart, GeneratedOn: row.GeneratedOn, Plan: plan}
	s.toCache(ctx, row.UserID, weekly)
	return weekly, nil
}

type cachedPlan struct {
	WeekStart   string    `json:"week_start"`
	GeneratedOn time.Time `json:"generated_on"`
	Payload     []byte    `json:"payload"`
}

func (s *mealPlanService) fromCache(ctx context.Context, userID uint, weekStart string) *WeeklyPlan {
	data, _ := s.cache.Get(ctx, planCacheKey(userID, weekStart))
	if data == nil {
		return nil
	}
	var entry cachedPlan
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}
	plan, err := planner.Decode(entry.Payload)
	if err != nil {
		return nil
	}
	plan.WeekStart = entry.WeekStart
	return &WeeklyPlan{WeekStart: entry.WeekStart, GeneratedOn: entry.GeneratedOn, Plan: plan}
}

func (s *mealPlanService) toCache(ctx context.Context, userID uint, weekly *WeeklyPlan) {
	payload, err := weekly.Plan.Encode()
	if err != nil {
		return
	}
	entry := cachedPlan{WeekStart: weekly.WeekStart, GeneratedOn: weekly.GeneratedOn, Payload: payload}
	if data, err := json.Marshal(entry); err == nil {
		_ = s.cache.Set(ctx, planCacheKey(userID, weekly.WeekStart), data, planCacheTTL)
	}
}

func toPlannerInventory(rows []model.Ingredient) []planner.Ingredient {
	out := make([]planner.Ingredient, 0, len(rows))
	for _, row := range rows {
		out = append(out, planner.Ingredient{
			Name:     row.Name,
			Quantity: row.Quantity.InexactFloat64(),
			Unit:     row.Unit,
		})
	}
	return out
}

func toPlannerCatalog(rows []model.Recipe) []planner.Recipe {
	out := make([]planner.Recipe, 0, len(rows))
	for _, row := range rows {
		requires := make([]planner.Requirement, 0, len(row.Ingredients))
		for _, ri := range row.Ingredients {
			requires = append(requires, planner.Requirement{
				Name:     ri.IngredientName,
				Quantity: ri.RequiredQuantity.InexactFloat64(),
				Unit:     ri.Unit,
			})
		}
		out = append(out, planner.Recipe{Title: row.Title, Requires: requires})
	}
	return out
}
