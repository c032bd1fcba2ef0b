package planner

import "strings"

// normalizeName lowercases and trims an ingredient name. Plural handling is
// done at lookup time, not here, because stripping a trailing "s" is only
// valid when the stripped form actually exists on the other side.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// inventoryIndex holds the working copy of a user's inventory: normalized
// ingredient name -> unit class -> quantity in the class base unit.
// Duplicate inventory lines are summed per name and class.
type inventoryIndex map[string]map[string]float64

func buildIndex(inventory []Ingredient) inventoryIndex {
	ix := make(inventoryIndex, len(inventory))
	for _, item := range inventory {
		name := normalizeName(item.Name)
		class, factor := resolveUnit(item.Unit)
		stock, ok := ix[name]
		if !ok {
			stock = make(map[string]float64, 1)
			ix[name] = stock
		}
		stock[class] += item.Quantity * factor
	}
	return ix
}

// lookup finds the stock entry for a normalized name, applying the plural
// heuristic: an exact hit wins, then the name with a trailing "s" stripped,
// then the name with an "s" appended. This is deliberately not stemming.
func (ix inventoryIndex) lookup(name string) map[string]float64 {
	if stock, ok := ix[name]; ok {
		return stock
	}
	if strings.HasSuffix(name, "s") {
		if stock, ok := ix[name[:len(name)-1]]; ok {
			return stock
		}
	}
	if stock, ok := ix[name+"s"]; ok {
		return stock
	}
	return nil
}
