package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"mealmatch/internal/errors"
	"mealmatch/internal/service"
)

// RecipeHandler handles recipe catalog endpoints.
type RecipeHandler struct {
	recipes service.RecipeService
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipes service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// RecipeIngredientRequest is one required-ingredient line in a recipe request.
type RecipeIngredientRequest struct {
	Name     string           `json:"name" validate:"required"`
	Quantity *decimal.Decimal `json:"quantity"`
	Unit     string           `json:"unit"`
}

// RecipeRequest represents a recipe create/update request.
type RecipeRequest struct {
	Title        string                    `json:"title" validate:"required"`
	Description  string                    `json:"description"`
	Instructions string                    `json:"instructions"`
	Ingredients  []RecipeIngredientRequest `json:"ingredients" validate:"dive"`
}

func (r RecipeRequest) toInput() service.RecipeInput {
	lines := make([]service.RecipeIngredientInput, 0, len(r.Ingredients))
	for _, in := range r.Ingredients {
		lines = append(lines, service.RecipeIngredientInput{
			Name:     in.Name,
			Quantity: in.Quantity,
			Unit:     in.Unit,
		})
	}
	return service.RecipeInput{
		Title:        r.Title,
		Description:  r.Description,
		Instructions: r.Instructions,
		Ingredients:  lines,
	}
}

// List godoc
// @Summary List the recipe catalog
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Recipe
// @Router /recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	recipes, err := h.recipes.ListAll(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, recipes)
}

// Get godoc
// @Summary Get a recipe with its required ingredients
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 200 {object} model.Recipe
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	recipe, err := h.recipes.Get(c.Request().Context(), uint(id))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, recipe)
}

// Create godoc
// @Summary Create a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecipeRequest true "Recipe data"
// @Success 201 {object} model.Recipe
// @Failure 400 {object} errors.ErrorResponse
// @Router /recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	var req RecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	recipe, err := h.recipes.Create(c.Request().Context(), claims.UserID, req.toInput())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, recipe)
}

// Update godoc
// @Summary Update a recipe, replacing its required ingredients
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body RecipeRequest true "Recipe data"
// @Success 200 {object} model.Recipe
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [put]
func (h *RecipeHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req RecipeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	recipe, err := h.recipes.Update(c.Request().Context(), uint(id), req.toInput())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, recipe)
}

// Delete godoc
// @Summary Delete a recipe
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.recipes.Delete(c.Request().Context(), uint(id)); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "recipe deleted"})
}
