package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"mealmatch/internal/errors"
)

// Export formats accepted by the export endpoints.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Export is a rendered download: bytes plus the content type and suggested
// file name for the response headers.
type Export struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportService renders meal plans and recipes as JSON or CSV downloads.
type ExportService interface {
	MealPlan(ctx context.Context, userID uint, weekStart, format string) (*Export, error)
	Recipe(ctx context.Context, id uint, format string) (*Export, error)
}

type exportService struct {
	plans   MealPlanService
	recipes RecipeService
}

// NewExportService creates a new export service.
func NewExportService(plans MealPlanService, recipes RecipeService) ExportService {
	return &exportService{plans: plans, recipes: recipes}
}

// MealPlan exports the stored plan for a week. The week must already have a
// generated plan; export never generates one as a side effect.
func (s *exportService) MealPlan(ctx context.Context, userID uint, weekStart, format string) (*Export, error) {
	format = strings.ToLower(format)
	if format != FormatJSON && format != FormatCSV {
		return nil, errors.ErrExportFormat
	}

	weekly, err := s.plans.GetForWeek(ctx, userID, weekStart)
	if err != nil {
		return nil, err
	}

	if format == FormatJSON {
		doc := struct {
			WeekStart   string      `json:"week_start"`
			GeneratedOn time.Time   `json:"generated_on"`
			Plan        interface{} `json:"plan"`
			Candidates  interface{} `json:"candidates"`
		}{weekly.WeekStart, weekly.GeneratedOn, weekly.Plan.Days, weekly.Plan.Candidates}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal plan export: %w", err)
		}
		return &Export{
			Data:        data,
			ContentType: "application/json",
			Filename:    fmt.Sprintf("mealplan_%s.json", weekly.WeekStart),
		}, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"day", "title", "match"})
	for _, e := range weekly.Plan.Days {
		_ = w.Write([]string{
			strconv.Itoa(e.Day),
			e.Title,
			strconv.FormatFloat(e.Match, 'f', -1, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write plan csv: %w", err)
	}
	return &Export{
		Data:        buf.Bytes(),
		ContentType: "text/csv",
		Filename:    fmt.Sprintf("mealplan_%s.csv", weekly.WeekStart),
	}, nil
}

// Recipe exports a single recipe with its required ingredients.
func (s *exportService) Recipe(ctx context.Context, id uint, format string) (*Export, error) {
	format = strings.ToLower(format)
	if format != FormatJSON && format != FormatCSV {
		return nil, errors.ErrExportFormat
	}

	recipe, err := s.recipes.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if format == FormatJSON {
		data, err := json.MarshalIndent(recipe, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal recipe export: %w", err)
		}
		return &Export{
			Data:        data,
			ContentType: "application/json",
			Filename:    fmt.Sprintf("recipe_%d.json", recipe.ID),
		}, nil
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range [][]string{
		{"id", strconv.FormatUint(uint64(recipe.ID), 10)},
		{"title", recipe.Title},
		{"description", recipe.Description},
		{"instructions", recipe.Instructions},
		{},
		{"ingredient", "qty", "unit"},
	} {
		if len(row) == 0 {
			_ = w.Write([]string{"", ""})
			continue
		}
		_ = w.Write(row)
	}
	for _, ri := range recipe.Ingredients {
		_ = w.Write([]string{ri.IngredientName, ri.RequiredQuantity.String(), ri.Unit})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write recipe csv: %w", err)
	}
	return &Export{
		Data:        buf.Bytes(),
		ContentType: "text/csv",
		Filename:    fmt.Sprintf("recipe_%d.csv", recipe.ID),
	}, nil
}
