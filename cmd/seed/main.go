package main

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mealmatch/internal/config"
	"mealmatch/internal/db"
	"mealmatch/internal/model"
	"mealmatch/internal/repository"
)

type seedIngredient struct {
	Name     string
	Quantity float64
	Unit     string
	Notes    string
}

type seedRequirement struct {
	Name     string
	Quantity float64
	Unit     string
}

type seedRecipe struct {
	Title        string
	Description  string
	Instructions string
	Requires     []seedRequirement
}

var demoInventory = []seedIngredient{
	{"Rice", 10, "cups", "long grain"},
	{"Eggs", 12, "pcs", ""},
	{"Milk", 2, "l", ""},
	{"Flour", 1, "kg", ""},
	{"Tomatoes", 6, "pcs", ""},
	{"Onions", 4, "pcs", ""},
	{"Chicken Breast", 500, "g", "frozen"},
	{"Olive Oil", 250, "ml", ""},
}

var demoCatalog = []seedRecipe{
	{
		Title:       "Fried Rice",
		Description: "Quick fried rice with egg.",
		Instructions: "Cook the rice, let it cool. Fry with beaten egg and a splash of oil " +
			"over high heat until everything is coated.",
		Requires: []seedRequirement{
			{"Rice", 2, "cups"},
			{"Egg", 2, "pcs"},
			{"Olive Oil", 15, "ml"},
		},
	},
	{
		Title:        "Omelette",
		Description:  "Three-egg omelette.",
		Instructions: "Beat the eggs with milk, cook gently in a buttered pan, fold and serve.",
		Requires: []seedRequirement{
			{"Eggs", 3, "pcs"},
			{"Milk", 50, "ml"},
		},
	},
	{
		Title:        "Tomato Chicken",
		Description:  "Pan chicken in tomato sauce.",
		Instructions: "Brown the chicken, add chopped tomatoes and onion, simmer 20 minutes.",
		Requires: []seedRequirement{
			{"Chicken Breast", 300, "g"},
			{"Tomatoes", 3, "pcs"},
			{"Onions", 1, "pcs"},
		},
	},
	{
		Title:        "Pancakes",
		Description:  "Weekend pancakes.",
		Instructions: "Whisk flour, milk, and eggs into a batter. Fry ladlefuls until golden.",
		Requires: []seedRequirement{
			{"Flour", 200, "g"},
			{"Milk", 300, "ml"},
			{"Eggs", 2, "pcs"},
		},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.RecipeIngredient{},
		&model.MealPlan{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	ingredientRepo := repository.NewIngredientRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)

	demo, err := ensureUser(ctx, userRepo, "demo", "demo@mealmatch.local", "password123", false)
	if err != nil {
		log.Fatalf("Failed to seed demo user: %v", err)
	}
	if _, err := ensureUser(ctx, userRepo, "admin", "admin@mealmatch.local", "admin123", true); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	seededItems, err := seedInventory(ctx, ingredientRepo, demo)
	if err != nil {
		log.Fatalf("Failed to seed inventory: %v", err)
	}

	seededRecipes, err := seedCatalog(ctx, recipeRepo, demo)
	if err != nil {
		log.Fatalf("Failed to seed recipes: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Inventory items created: %d", seededItems)
	log.Printf("  - Recipes created: %d", seededRecipes)
}

// ensureUser creates the user unless the email is already registered.
func ensureUser(ctx context.Context, repo repository.UserRepository, username, email, password string, isAdmin bool) (*model.User, error) {
	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		log.Printf("User %s already exists, skipping", email)
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	}
	if err := repo.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Printf("Created user %s", email)
	return user, nil
}

func seedInventory(ctx context.Context, repo repository.IngredientRepository, owner *model.User) (int, error) {
	existing, err := repo.ListForUser(ctx, owner.ID)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Printf("User %s already has inventory, skipping", owner.Email)
		return 0, nil
	}

	count := 0
	for _, item := range demoInventory {
		row := &model.Ingredient{
			UserID:   owner.ID,
			Name:     item.Name,
			Quantity: decimal.NewFromFloat(item.Quantity),
			Unit:     item.Unit,
			Notes:    item.Notes,
		}
		if err := repo.Create(ctx, row); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func seedCatalog(ctx context.Context, repo repository.RecipeRepository, creator *model.User) (int, error) {
	existing, err := repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Println("Recipe catalog already seeded, skipping")
		return 0, nil
	}

	count := 0
	for _, r := range demoCatalog {
		requires := make([]model.RecipeIngredient, 0, len(r.Requires))
		for _, req := range r.Requires {
			requires = append(requires, model.RecipeIngredient{
				IngredientName:   req.Name,
				RequiredQuantity: decimal.NewFromFloat(req.Quantity),
				Unit:             req.Unit,
			})
		}
		row := &model.Recipe{
			Title:        r.Title,
			Description:  r.Description,
			Instructions: r.Instructions,
			CreatedBy:    &creator.ID,
			Ingredients:  requires,
		}
		if err := repo.Create(ctx, row); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
