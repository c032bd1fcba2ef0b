package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"mealmatch/internal/errors"
	"mealmatch/internal/service"
)

// ExportHandler serves meal-plan and recipe downloads.
type ExportHandler struct {
	exports service.ExportService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(exports service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

func serveExport(c echo.Context, export *service.Export) error {
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", export.Filename))
	return c.Blob(http.StatusOK, export.ContentType, export.Data)
}

// MealPlan godoc
// @Summary Export the current week's plan as json or csv
// @Tags export
// @Produce json
// @Security BearerAuth
// @Param fmt path string true "Export format (json or csv)"
// @Success 200 {string} string "file download"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /export/mealplan/{fmt} [get]
func (h *ExportHandler) MealPlan(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	weekStart := service.WeekStartOf(time.Now())
	export, err := h.exports.MealPlan(c.Request().Context(), claims.UserID, weekStart, c.Param("fmt"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return serveExport(c, export)
}

// Recipe godoc
// @Summary Export a recipe as json or csv
// @Tags export
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param fmt path string true "Export format (json or csv)"
// @Success 200 {string} string "file download"
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /export/recipes/{id}/{fmt} [get]
func (h *ExportHandler) Recipe(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	export, err := h.exports.Recipe(c.Request().Context(), uint(id), c.Param("fmt"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return serveExport(c, export)
}
