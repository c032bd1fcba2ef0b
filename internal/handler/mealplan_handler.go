package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"mealmatch/internal/errors"
	"mealmatch/internal/planner"
	"mealmatch/internal/service"
)

// MealPlanHandler handles weekly plan endpoints.
type MealPlanHandler struct {
	plans service.MealPlanService
}

// NewMealPlanHandler creates a new meal plan handler.
func NewMealPlanHandler(plans service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{plans: plans}
}

// MealPlanResponse represents a weekly plan response.
type MealPlanResponse struct {
	WeekStart   string              `json:"week_start"`
	GeneratedOn time.Time           `json:"generated_on"`
	Plan        []planner.DayEntry  `json:"plan"`
	Candidates  []planner.Candidate `json:"candidates"`
}

func toResponse(weekly *service.WeeklyPlan) MealPlanResponse {
	return MealPlanResponse{
		WeekStart:   weekly.WeekStart,
		GeneratedOn: weekly.GeneratedOn,
		Plan:        weekly.Plan.Days,
		Candidates:  weekly.Plan.Candidates,
	}
}

// Get godoc
// @Summary Get the current week's plan, generating it on first request
// @Tags mealplan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MealPlanResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /mealplan [get]
func (h *MealPlanHandler) Get(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	weekly, err := h.plans.GetOrCreateWeekly(c.Request().Context(), claims.UserID, time.Now())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, toResponse(weekly))
}

// Regenerate godoc
// @Summary Discard the current week's plan and generate a new one
// @Tags mealplan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MealPlanResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /mealplan/regenerate [post]
func (h *MealPlanHandler) Regenerate(c echo.Context) error {
	claims, err := currentClaims(c)
	if err != nil {
		return err
	}
	weekly, err := h.plans.Regenerate(c.Request().Context(), claims.UserID, time.Now())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, toResponse(weekly))
}
