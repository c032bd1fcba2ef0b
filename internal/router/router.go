package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"mealmatch/internal/auth"
	"mealmatch/internal/config"
	"mealmatch/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	ingredientHandler *handler.IngredientHandler,
	recipeHandler *handler.RecipeHandler,
	mealPlanHandler *handler.MealPlanHandler,
	exportHandler *handler.ExportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", userHandler.Me)
	secured.GET("/users", userHandler.ListUsers)

	// Inventory routes
	secured.GET("/ingredients", ingredientHandler.List)
	secured.POST("/ingredients", ingredientHandler.Create)
	secured.GET("/ingredients/:id", ingredientHandler.Get)
	secured.PUT("/ingredients/:id", ingredientHandler.Update)
	secured.DELETE("/ingredients/:id", ingredientHandler.Delete)

	// Recipe catalog routes
	secured.GET("/recipes", recipeHandler.List)
	secured.POST("/recipes", recipeHandler.Create)
	secured.GET("/recipes/:id", recipeHandler.Get)
	secured.PUT("/recipes/:id", recipeHandler.Update)
	secured.DELETE("/recipes/:id", recipeHandler.Delete)

	// Weekly plan routes
	secured.GET("/mealplan", mealPlanHandler.Get)
	secured.POST("/mealplan/regenerate", mealPlanHandler.Regenerate)

	// Export routes
	secured.GET("/export/mealplan/:fmt", exportHandler.MealPlan)
	secured.GET("/export/recipes/:id/:fmt", exportHandler.Recipe)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
