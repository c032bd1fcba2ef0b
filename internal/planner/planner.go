// Package planner implements the meal-plan matcher: given a user's
// ingredient inventory and the recipe catalog, it assigns the best-matching
// recipe to each day of a week, depleting inventory as it goes. The matcher
// is a pure function of its inputs and produces identical output for
// identical arguments.
package planner

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrInvalidInput is returned for unparseable week-start dates and negative
// quantities. Negative inventory is a data-integrity bug upstream and is
// rejected rather than clamped.
var ErrInvalidInput = errors.New("invalid input")

// SentinelTitle is the stored title for a day with no assignable recipe.
const SentinelTitle = "No suitable recipe"

// DateLayout is the ISO date layout used for week-start values.
const DateLayout = "2006-01-02"

// DaysPerWeek is the fixed length of a generated plan.
const DaysPerWeek = 7

// Ingredient is one line of a user's inventory.
type Ingredient struct {
	Name     string
	Quantity float64
	Unit     string
}

// Requirement names an ingredient a recipe needs, by free text. Matching
// against inventory is by normalized name, never by identity.
type Requirement struct {
	Name     string
	Quantity float64
	Unit     string
}

// Recipe is a catalog entry with its required ingredients.
type Recipe struct {
	Title    string
	Requires []Requirement
}

// DayEntry is one assigned day in a plan. A sentinel day carries
// SentinelTitle and a zero match.
type DayEntry struct {
	Day   int     `json:"day"`
	Title string  `json:"title"`
	Match float64 `json:"match"`
}

// Sentinel reports whether the entry has no assigned recipe.
func (e DayEntry) Sentinel() bool {
	return e.Title == SentinelTitle
}

// Candidate records a recipe's raw day-1 score, kept for audit.
type Candidate struct {
	Title string  `json:"title"`
	Score float64 `json:"score"`
}

// Plan is the generated weekly assignment. Days always holds exactly
// DaysPerWeek entries with strictly increasing Day values. The JSON form is
// the persisted payload shape; WeekStart is stored alongside it by the
// caller, not inside it.
type Plan struct {
	WeekStart  string      `json:"-"`
	Days       []DayEntry  `json:"plan"`
	Candidates []Candidate `json:"candidates"`
}

// Matcher generates weekly plans. MinScore is the floor below which a day
// gets the sentinel; a hard-zero best score is always a sentinel regardless.
type Matcher struct {
	MinScore float64
}

// New returns a Matcher with the default zero threshold, under which only
// recipes with no usable ingredient at all fall through to the sentinel.
func New() *Matcher {
	return &Matcher{}
}

// Generate computes the plan for the 7 days starting at weekStart. The input
// inventory is never mutated; scoring and depletion run against a working
// copy. Output is deterministic for identical inputs. An empty catalog is
// valid and yields an all-sentinel plan with no candidates.
func (m *Matcher) Generate(inventory []Ingredient, catalog []Recipe, weekStart string) (*Plan, error) {
	if _, err := time.Parse(DateLayout, weekStart); err != nil {
		return nil, fmt.Errorf("%w: week start %q is not an ISO date", ErrInvalidInput, weekStart)
	}
	for _, item := range inventory {
		if item.Quantity < 0 {
			return nil, fmt.Errorf("%w: negative quantity %g for inventory item %q", ErrInvalidInput, item.Quantity, item.Name)
		}
	}
	for _, r := range catalog {
		for _, req := range r.Requires {
			if req.Quantity < 0 {
				return nil, fmt.Errorf("%w: negative required quantity %g for %q in recipe %q", ErrInvalidInput, req.Quantity, req.Name, r.Title)
			}
		}
	}

	working := buildIndex(inventory)
	plan := &Plan{
		WeekStart:  weekStart,
		Days:       make([]DayEntry, 0, DaysPerWeek),
		Candidates: make([]Candidate, 0, len(catalog)),
	}

	// Day-1 raw scores over the full catalog, before any depletion.
	for _, rc := range rankRecipes(catalog, working) {
		plan.Candidates = append(plan.Candidates, Candidate{Title: rc.recipe.Title, Score: rc.score})
	}

	used := make(map[int]bool, len(catalog))
	for day := 1; day <= DaysPerWeek; day++ {
		repeatsAllowed := day > len(catalog)
		chosen := -1
		var chosenScore float64
		for _, rc := range rankRecipes(catalog, working) {
			if used[rc.index] && !repeatsAllowed {
				continue
			}
			chosen = rc.index
			chosenScore = rc.score
			break
		}
		if chosen < 0 || chosenScore == 0 || chosenScore < m.MinScore {
			plan.Days = append(plan.Days, DayEntry{Day: day, Title: SentinelTitle, Match: 0})
			continue
		}
		plan.Days = append(plan.Days, DayEntry{Day: day, Title: catalog[chosen].Title, Match: chosenScore})
		used[chosen] = true
		deduct(catalog[chosen], working)
	}
	return plan, nil
}

type rankedRecipe struct {
	index  int
	recipe Recipe
	score  float64
}

// rankRecipes scores every catalog entry against the working inventory and
// orders them: higher score first, then more required ingredients, then
// lexicographic title, then catalog position for a total order.
func rankRecipes(catalog []Recipe, working inventoryIndex) []rankedRecipe {
	ranked := make([]rankedRecipe, 0, len(catalog))
	for i, r := range catalog {
		ranked = append(ranked, rankedRecipe{index: i, recipe: r, score: scoreRecipe(r, working)})
	}
	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if len(a.recipe.Requires) != len(b.recipe.Requires) {
			return len(a.recipe.Requires) > len(b.recipe.Requires)
		}
		if a.recipe.Title != b.recipe.Title {
			return strings.Compare(a.recipe.Title, b.recipe.Title) < 0
		}
		return a.index < b.index
	})
	return ranked
}

// scoreRecipe is the arithmetic mean of per-requirement contributions.
// Zero-requirement recipes score exactly 0: eligible, but they never beat a
// positive candidate and lose to the sentinel threshold.
func scoreRecipe(r Recipe, working inventoryIndex) float64 {
	if len(r.Requires) == 0 {
		return 0
	}
	var sum float64
	for _, req := range r.Requires {
		sum += contribution(req, working)
	}
	return sum / float64(len(r.Requires))
}

// contribution is min(1, available/required) when the ingredient exists in a
// convertible unit, else 0. A zero required quantity counts as satisfied
// whenever convertible stock exists at all.
func contribution(req Requirement, working inventoryIndex) float64 {
	stock := working.lookup(normalizeName(req.Name))
	if stock == nil {
		return 0
	}
	class, factor := resolveUnit(req.Unit)
	available, convertible := stock[class]
	if !convertible {
		return 0
	}
	required := req.Quantity * factor
	if required <= 0 {
		return 1
	}
	if ratio := available / required; ratio < 1 {
		return ratio
	}
	return 1
}

// deduct removes an assigned recipe's requirements from the working
// inventory, flooring at zero so later days see partial availability.
func deduct(r Recipe, working inventoryIndex) {
	for _, req := range r.Requires {
		stock := working.lookup(normalizeName(req.Name))
		if stock == nil {
			continue
		}
		class, factor := resolveUnit(req.Unit)
		if _, convertible := stock[class]; !convertible {
			continue
		}
		stock[class] -= req.Quantity * factor
		if stock[class] < 0 {
			stock[class] = 0
		}
	}
}
