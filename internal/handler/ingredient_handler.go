package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"mealmatch/internal/errors"
	"mealmatch/internal/service"
)

// IngredientHandler handles inventory endpoints.
type IngredientHandler struct {
	ingredients service.IngredientService
}

// NewIngredientHandler creates a new ingredient handler.
func NewIngredientHandler(ingredients service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredients: ingredients}
}

// IngredientRequest represents an inventory create/update request.
type IngredientRequest struct {
	Name     string          `json:"name" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
	Notes    string          `json:"notes"`
}

func (r IngredientRequest) toInput() service.IngredientInput {
	return service.IngredientInput{
		Name:     r.Name,
		Quantity: r.Quantity,
		Unit:     r.Unit,
		Notes:    r.Notes,
	}
}

// List godoc
// @Summary List the caller's inventory
// @Tags ingredients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Ingredient
// @Failure 401 {object} errors.ErrorResponse
// @Router /ingredients [get]
func (h *IngredientHandler) List(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	rows, err := h.ingredients.List(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, rows)
}

// Get godoc
// @Summary Get one inventory item
// @Tags ingredients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Success 200 {object} model.Ingredient
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [get]
func (h *IngredientHandler) Get(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ingredient, err := h.ingredients.Get(c.Request().Context(), uint(id), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ingredient)
}

// Create godoc
// @Summary Add an inventory item
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IngredientRequest true "Ingredient data"
// @Success 201 {object} model.Ingredient
// @Failure 400 {object} errors.ErrorResponse
// @Router /ingredients [post]
func (h *IngredientHandler) Create(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	var req IngredientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ingredient, err := h.ingredients.Add(c.Request().Context(), claims.UserID, req.toInput())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, ingredient)
}

// Update godoc
// @Summary Update an inventory item
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Param request body IngredientRequest true "Ingredient data"
// @Success 200 {object} model.Ingredient
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [put]
func (h *IngredientHandler) Update(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req IngredientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ingredient, err := h.ingredients.Update(c.Request().Context(), uint(id), claims.UserID, req.toInput())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, ingredient)
}

// Delete godoc
// @Summary Delete an inventory item
// @Tags ingredients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.ingredients.Delete(c.Request().Context(), uint(id), claims.UserID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "ingredient deleted"})
}
