package errors

import (
	"errors"
	"net/http"

	"mealmatch/internal/planner"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrIngredientNotFound is returned when an inventory item is not found
	// or belongs to another user.
	ErrIngredientNotFound = errors.New("ingredient not found")
	// ErrRecipeNotFound is returned when a recipe is not found.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrMealPlanNotFound is returned when no plan exists for the requested week.
	ErrMealPlanNotFound = errors.New("no meal plan for this week")
	// ErrNegativeQuantity is returned when a request carries a negative quantity.
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	// ErrExportFormat is returned for export formats other than json or csv.
	ErrExportFormat = errors.New("unsupported export format")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrIngredientNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "INGREDIENT_NOT_FOUND")
	case errors.Is(err, ErrRecipeNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "RECIPE_NOT_FOUND")
	case errors.Is(err, ErrMealPlanNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "MEALPLAN_NOT_FOUND")
	case errors.Is(err, ErrNegativeQuantity):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NEGATIVE_QUANTITY")
	case errors.Is(err, ErrExportFormat):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNSUPPORTED_FORMAT")
	case errors.Is(err, planner.ErrInvalidInput):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_INPUT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
