package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func riceInventory(cups float64) []Ingredient {
	return []Ingredient{{Name: "Rice", Quantity: cups, Unit: "cups"}}
}

func friedRice() Recipe {
	return Recipe{
		Title:    "Fried Rice",
		Requires: []Requirement{{Name: "Rice", Quantity: 2, Unit: "cups"}},
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	inventory := []Ingredient{
		{Name: "Rice", Quantity: 6, Unit: "cups"},
		{Name: "Eggs", Quantity: 4, Unit: "pcs"},
		{Name: "Milk", Quantity: 1, Unit: "l"},
	}
	catalog := []Recipe{
		friedRice(),
		{Title: "Omelette", Requires: []Requirement{
			{Name: "Egg", Quantity: 3, Unit: "pcs"},
			{Name: "Milk", Quantity: 100, Unit: "ml"},
		}},
	}

	m := New()
	first, err := m.Generate(inventory, catalog, "2024-01-01")
	require.NoError(t, err)
	second, err := m.Generate(inventory, catalog, "2024-01-01")
	require.NoError(t, err)

	firstBytes, err := first.Encode()
	require.NoError(t, err)
	secondBytes, err := second.Encode()
	require.NoError(t, err)
	assert.Equal(t, firstBytes, secondBytes, "identical inputs must produce byte-identical output")
}

func TestGenerate_ShapeInvariants(t *testing.T) {
	plan, err := New().Generate(riceInventory(10), []Recipe{friedRice()}, "2024-01-01")
	require.NoError(t, err)

	require.Len(t, plan.Days, DaysPerWeek)
	for i, e := range plan.Days {
		assert.Equal(t, i+1, e.Day, "day numbers strictly increasing from 1")
		assert.GreaterOrEqual(t, e.Match, 0.0)
		assert.LessOrEqual(t, e.Match, 1.0)
	}
	assert.Equal(t, "2024-01-01", plan.WeekStart)
}

func TestGenerate_EmptyCatalog(t *testing.T) {
	plan, err := New().Generate(riceInventory(10), nil, "2024-01-01")
	require.NoError(t, err, "empty catalog is valid, just unproductive")

	require.Len(t, plan.Days, DaysPerWeek)
	for _, e := range plan.Days {
		assert.True(t, e.Sentinel())
		assert.Zero(t, e.Match)
	}
	assert.Empty(t, plan.Candidates)

	payload, err := plan.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"candidates":[]`, "empty candidates serialize as [], not null")
}

func TestGenerate_InventoryDepletion(t *testing.T) {
	// 10 cups of rice cover five days at 2 cups each; days 6 and 7 find an
	// empty shelf and fall to the sentinel.
	inventory := riceInventory(10)
	plan, err := New().Generate(inventory, []Recipe{friedRice()}, "2024-01-01")
	require.NoError(t, err)

	for day := 0; day < 5; day++ {
		assert.Equal(t, "Fried Rice", plan.Days[day].Title, "day %d", day+1)
		assert.Equal(t, 1.0, plan.Days[day].Match, "day %d", day+1)
	}
	for day := 5; day < 7; day++ {
		assert.True(t, plan.Days[day].Sentinel(), "day %d", day+1)
		assert.Zero(t, plan.Days[day].Match, "day %d", day+1)
	}

	assert.Equal(t, 10.0, inventory[0].Quantity, "input inventory must not be mutated")
}

func TestGenerate_PartialAvailability(t *testing.T) {
	// 3 cups against a 2-cup recipe: day 1 full match, day 2 scores 0.5 on
	// the remaining cup.
	plan, err := New().Generate(riceInventory(3), []Recipe{friedRice()}, "2024-01-01")
	require.NoError(t, err)

	assert.Equal(t, 1.0, plan.Days[0].Match)
	assert.Equal(t, "Fried Rice", plan.Days[1].Title)
	assert.InDelta(t, 0.5, plan.Days[1].Match, 1e-9)
	assert.True(t, plan.Days[2].Sentinel())
}

func TestGenerate_NoRepeatsWhileUnusedRemain(t *testing.T) {
	inventory := []Ingredient{
		{Name: "Rice", Quantity: 100, Unit: "cups"},
		{Name: "Eggs", Quantity: 100, Unit: "pcs"},
	}
	catalog := []Recipe{
		{Title: "Fried Rice", Requires: []Requirement{{Name: "Rice", Quantity: 2, Unit: "cups"}}},
		{Title: "Boiled Eggs", Requires: []Requirement{{Name: "Eggs", Quantity: 2, Unit: "pcs"}}},
	}
	plan, err := New().Generate(inventory, catalog, "2024-01-01")
	require.NoError(t, err)

	assert.NotEqual(t, plan.Days[0].Title, plan.Days[1].Title, "days 1 and 2 must use distinct recipes")
	for _, e := range plan.Days[2:] {
		assert.False(t, e.Sentinel(), "repeats are permitted once every distinct recipe is used")
	}
}

func TestGenerate_TieBreaks(t *testing.T) {
	inventory := []Ingredient{{Name: "Flour", Quantity: 10, Unit: "cups"}}
	tests := []struct {
		name    string
		catalog []Recipe
		want    string
	}{
		{
			name: "equal score and count: lexicographic title",
			catalog: []Recipe{
				{Title: "Zebra Cake", Requires: []Requirement{{Name: "Flour", Quantity: 1, Unit: "cups"}}},
				{Title: "Apple Pie", Requires: []Requirement{{Name: "Flour", Quantity: 1, Unit: "cups"}}},
			},
			want: "Apple Pie",
		},
		{
			name: "equal score: more required ingredients wins",
			catalog: []Recipe{
				{Title: "Apple Pie", Requires: []Requirement{{Name: "Flour", Quantity: 1, Unit: "cups"}}},
				{Title: "Zebra Cake", Requires: []Requirement{
					{Name: "Flour", Quantity: 1, Unit: "cups"},
					{Name: "Flour", Quantity: 2, Unit: "cups"},
				}},
			},
			want: "Zebra Cake",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := New().Generate(inventory, tt.catalog, "2024-01-01")
			require.NoError(t, err)
			assert.Equal(t, tt.want, plan.Days[0].Title)
		})
	}
}

func TestGenerate_ZeroIngredientRecipe(t *testing.T) {
	catalog := []Recipe{
		{Title: "Glass of Water"},
		friedRice(),
	}
	plan, err := New().Generate(riceInventory(4), catalog, "2024-01-01")
	require.NoError(t, err)

	assert.Equal(t, "Fried Rice", plan.Days[0].Title, "zero-ingredient recipe never beats a positive score")
	// Day 2 may not repeat yet; the zero-score water loses to the sentinel.
	assert.True(t, plan.Days[1].Sentinel())
	// Day 3 permits repeats and the remaining rice covers one more serving.
	assert.Equal(t, "Fried Rice", plan.Days[2].Title)
	assert.True(t, plan.Days[3].Sentinel())
}

func TestGenerate_UnitMismatchScoresZero(t *testing.T) {
	inventory := []Ingredient{{Name: "Rice", Quantity: 500, Unit: "g"}}
	plan, err := New().Generate(inventory, []Recipe{friedRice()}, "2024-01-01")
	require.NoError(t, err, "unconvertible units are a mismatch, not an error")
	assert.True(t, plan.Days[0].Sentinel())
}

func TestGenerate_UnitConversion(t *testing.T) {
	// 480 ml is exactly two cups.
	inventory := []Ingredient{{Name: "Rice", Quantity: 480, Unit: "ml"}}
	plan, err := New().Generate(inventory, []Recipe{friedRice()}, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "Fried Rice", plan.Days[0].Title)
	assert.Equal(t, 1.0, plan.Days[0].Match)
	assert.True(t, plan.Days[1].Sentinel())
}

func TestGenerate_PluralAndCaseNormalization(t *testing.T) {
	inventory := []Ingredient{{Name: "  EGGS ", Quantity: 4, Unit: "pcs"}}
	catalog := []Recipe{
		{Title: "Omelette", Requires: []Requirement{{Name: "egg", Quantity: 2, Unit: "pcs"}}},
	}
	plan, err := New().Generate(inventory, catalog, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "Omelette", plan.Days[0].Title)
	assert.Equal(t, 1.0, plan.Days[0].Match)
}

func TestGenerate_DuplicateInventorySummed(t *testing.T) {
	inventory := []Ingredient{
		{Name: "Rice", Quantity: 1, Unit: "cups"},
		{Name: "rice", Quantity: 1, Unit: "cups"},
	}
	plan, err := New().Generate(inventory, []Recipe{friedRice()}, "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, 1.0, plan.Days[0].Match, "duplicate lines sum to the full two cups")
}

func TestGenerate_Candidates(t *testing.T) {
	catalog := []Recipe{
		friedRice(),
		{Title: "Omelette", Requires: []Requirement{{Name: "Egg", Quantity: 2, Unit: "pcs"}}},
	}
	plan, err := New().Generate(riceInventory(10), catalog, "2024-01-01")
	require.NoError(t, err)

	require.Len(t, plan.Candidates, 2)
	assert.Equal(t, Candidate{Title: "Fried Rice", Score: 1}, plan.Candidates[0])
	assert.Equal(t, Candidate{Title: "Omelette", Score: 0}, plan.Candidates[1])
}

func TestGenerate_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		inventory []Ingredient
		catalog   []Recipe
		weekStart string
	}{
		{
			name:      "malformed week start",
			inventory: riceInventory(1),
			weekStart: "first monday of june",
		},
		{
			name:      "negative inventory quantity",
			inventory: []Ingredient{{Name: "Rice", Quantity: -1, Unit: "cups"}},
			weekStart: "2024-01-01",
		},
		{
			name:      "negative required quantity",
			inventory: riceInventory(1),
			catalog: []Recipe{{Title: "Broken", Requires: []Requirement{
				{Name: "Rice", Quantity: -2, Unit: "cups"},
			}}},
			weekStart: "2024-01-01",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := New().Generate(tt.inventory, tt.catalog, tt.weekStart)
			assert.Nil(t, plan)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGenerate_MinScoreThreshold(t *testing.T) {
	m := &Matcher{MinScore: 0.75}
	plan, err := m.Generate(riceInventory(1), []Recipe{friedRice()}, "2024-01-01")
	require.NoError(t, err)
	assert.True(t, plan.Days[0].Sentinel(), "0.5 match falls below a 0.75 floor")
}

func TestPlanRoundTrip(t *testing.T) {
	original, err := New().Generate(riceInventory(10), []Recipe{friedRice()}, "2024-01-01")
	require.NoError(t, err)

	payload, err := original.Encode()
	require.NoError(t, err)

	decoded, err := Decode(payload)
	require.NoError(t, err)
	assert.Equal(t, original.Days, decoded.Days)
	assert.Equal(t, original.Candidates, decoded.Candidates)
}

func TestDecode_RejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{"plan":`},
		{"wrong day count", `{"plan":[{"day":1,"title":"x","match":0}],"candidates":[]}`},
		{
			"out of range match",
			`{"plan":[{"day":1,"title":"x","match":2},{"day":2,"title":"x","match":0},{"day":3,"title":"x","match":0},{"day":4,"title":"x","match":0},{"day":5,"title":"x","match":0},{"day":6,"title":"x","match":0},{"day":7,"title":"x","match":0}],"candidates":[]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}
