package main

import (
	"log"
	"net/http"
	"os"

	_ "mealmatch/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"mealmatch/internal/auth"
	"mealmatch/internal/cache"
	"mealmatch/internal/config"
	"mealmatch/internal/db"
	"mealmatch/internal/handler"
	"mealmatch/internal/model"
	"mealmatch/internal/planner"
	"mealmatch/internal/repository"
	"mealmatch/internal/router"
	"mealmatch/internal/service"
)

// @title MealMatch API
// @version 1.0
// @description Meal planning API: per-user ingredient inventory, shared recipe catalog, and generated weekly meal plans.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.MealPlan{},
			&model.RecipeIngredient{},
			&model.Recipe{},
			&model.Ingredient{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.MealPlan{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	ingredientRepo := repository.NewIngredientRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)
	mealPlanRepo := repository.NewMealPlanRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	matcher := &planner.Matcher{MinScore: cfg.PlanMinScore}
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient)
	ingredientService := service.NewIngredientService(ingredientRepo)
	recipeService := service.NewRecipeService(recipeRepo, cacheClient)
	mealPlanService := service.NewMealPlanService(mealPlanRepo, ingredientRepo, recipeService, matcher, cacheClient)
	exportService := service.NewExportService(mealPlanService, recipeService)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	ingredientHandler := handler.NewIngredientHandler(ingredientService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	mealPlanHandler := handler.NewMealPlanHandler(mealPlanService)
	exportHandler := handler.NewExportHandler(exportService)

	// Register routes
	router.Register(
		e,
		cfg,
		authHandler,
		userHandler,
		ingredientHandler,
		recipeHandler,
		mealPlanHandler,
		exportHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
