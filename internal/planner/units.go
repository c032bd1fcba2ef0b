package planner

import "strings"

// Unit classes group units that can be converted into each other. Units
// outside the table form their own class and only compare to themselves,
// so a cross-unit requirement degrades to a mismatch instead of an error.
const (
	classCount  = "count"
	classVolume = "volume"
	classMass   = "mass"
)

type unitDef struct {
	class  string
	factor float64 // multiplier into the class base unit (pcs, ml, g)
}

var unitTable = map[string]unitDef{
	// count (base: pcs)
	"":       {classCount, 1},
	"pc":     {classCount, 1},
	"pcs":    {classCount, 1},
	"piece":  {classCount, 1},
	"pieces": {classCount, 1},
	"unit":   {classCount, 1},
	"units":  {classCount, 1},
	"each":   {classCount, 1},

	// volume (base: ml)
	"ml":          {classVolume, 1},
	"milliliter":  {classVolume, 1},
	"milliliters": {classVolume, 1},
	"l":           {classVolume, 1000},
	"liter":       {classVolume, 1000},
	"liters":      {classVolume, 1000},
	"cup":         {classVolume, 240},
	"cups":        {classVolume, 240},
	"tbsp":        {classVolume, 15},
	"tablespoon":  {classVolume, 15},
	"tablespoons": {classVolume, 15},
	"tsp":         {classVolume, 5},
	"teaspoon":    {classVolume, 5},
	"teaspoons":   {classVolume, 5},

	// mass (base: g)
	"g":         {classMass, 1},
	"gram":      {classMass, 1},
	"grams":     {classMass, 1},
	"kg":        {classMass, 1000},
	"kilogram":  {classMass, 1000},
	"kilograms": {classMass, 1000},
	"mg":        {classMass, 0.001},
	"lb":        {classMass, 453.592},
	"lbs":       {classMass, 453.592},
	"oz":        {classMass, 28.3495},
}

// resolveUnit maps a free-text unit to its class and base-unit factor.
// Unknown units become a private class keyed by their own normalized name.
func resolveUnit(raw string) (string, float64) {
	u := strings.ToLower(strings.TrimSpace(raw))
	if def, ok := unitTable[u]; ok {
		return def.class, def.factor
	}
	return "other:" + u, 1
}
