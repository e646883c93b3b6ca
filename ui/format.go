package ui

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"sfcatalog/catalog"
)

// itemLabel is the text shown for an item in the browser list.
func itemLabel(it catalog.Item) string {
	if it.IsOre {
		return it.DisplayName + " (ore)"
	}
	return it.DisplayName
}

// formatIngredients renders "3 × Iron Ingot, 1 × Coal", or "none".
func formatIngredients(ings []catalog.Ingredient) string {
	if len(ings) == 0 {
		return "none"
	}
	parts := make([]string, len(ings))
	for i, in := range ings {
		parts[i] = fmt.Sprintf("%d × %s", in.Count, in.Item.DisplayName)
	}
	return strings.Join(parts, ", ")
}

// formatProducts renders "2 × Iron Plate".
func formatProducts(ps []catalog.Product) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("%d × %s", p.Count, p.Item.DisplayName)
	}
	return strings.Join(parts, ", ")
}

// formatDuration renders a cycle time; unknown durations show as "?".
func formatDuration(seconds float64) string {
	if math.IsNaN(seconds) {
		return "?"
	}
	return fmt.Sprintf("%.1f s", seconds)
}

// filterItems keeps the items whose display name or ClassName contains query,
// case-insensitively. Order is preserved.
func filterItems(items []catalog.Item, query string) []catalog.Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var out []catalog.Item
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.DisplayName), q) || strings.Contains(strings.ToLower(it.ClassName), q) {
			out = append(out, it)
		}
	}
	return out
}

// parseFactoryInput validates the text fields of the factory form.
func parseFactoryInput(name, count, floor string) (float64, sql.NullInt64, error) {
	if strings.TrimSpace(name) == "" {
		return 0, sql.NullInt64{}, errors.New("enter a factory name")
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(count), 64)
	if err != nil || n <= 0 || math.IsInf(n, 0) {
		return 0, sql.NullInt64{}, errors.New("enter a positive output count")
	}
	floor = strings.TrimSpace(floor)
	if floor == "" {
		return n, sql.NullInt64{}, nil
	}
	f, err := strconv.ParseInt(floor, 10, 64)
	if err != nil {
		return 0, sql.NullInt64{}, fmt.Errorf("floor %q is not a whole number", floor)
	}
	return n, sql.NullInt64{Int64: f, Valid: true}, nil
}
