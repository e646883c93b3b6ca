package catalog

import "github.com/agnivade/levenshtein"

// suggestionLimit is the largest edit distance still worth suggesting for a
// candidate of the given length.
func suggestionLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// Suggest returns the ClassName closest to ref, or "" when nothing is close enough.
// Ties go to the earlier item in listing order.
func (c *ItemCatalog) Suggest(ref string) string {
	if ref == "" {
		return ""
	}
	best, bestDist := "", -1
	for _, it := range c.items {
		dist := levenshtein.ComputeDistance(ref, it.ClassName)
		if dist > suggestionLimit(len(it.ClassName)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = it.ClassName, dist
		}
	}
	return best
}
