package catalog

import (
	"regexp"
	"strconv"

	"github.com/patrickmn/go-cache"
)

// ingredientPattern matches one (ItemClass="...Desc_<partial>_C...",Amount=<n>) group.
// Other fields may sit between the quoted class and Amount, but the match never
// leaves the group.
var ingredientPattern = regexp.MustCompile(
	`\(\s*ItemClass\s*=\s*"[^"]*?Desc_([A-Za-z0-9_]+)_C[^"]*"[^()]*?\bAmount\s*=\s*(\d+)[^()]*\)`,
)

// Ingredient is an item consumed by one run of a recipe.
type Ingredient struct {
	Item  Item
	Count int
}

// IngredientExtractor parses ingredient strings against an item catalog.
// Partial identifiers are resolved by suffix, and resolutions are memoized,
// so one extractor should be reused for a whole recipe set.
type IngredientExtractor struct {
	items *ItemCatalog
	sink  Sink
	memo  *cache.Cache
}

type resolution struct {
	item Item
	ok   bool
}

// NewIngredientExtractor returns an extractor reporting to sink (Discard if nil).
func NewIngredientExtractor(items *ItemCatalog, sink Sink) *IngredientExtractor {
	if sink == nil {
		sink = Discard
	}
	return &IngredientExtractor{
		items: items,
		sink:  sink,
		memo:  cache.New(cache.NoExpiration, 0),
	}
}

// Extract returns the resolved ingredients of raw in source order.
// Unresolved entries are reported and left out.
func (e *IngredientExtractor) Extract(raw string) []Ingredient {
	ings, diags := e.extract(raw)
	for _, d := range diags {
		e.sink.Report(d)
	}
	return ings
}

// extract does the work of Extract but hands diagnostics back to the caller.
func (e *IngredientExtractor) extract(raw string) ([]Ingredient, []Diagnostic) {
	ings := []Ingredient{}
	var diags []Diagnostic
	if raw == "" {
		return ings, nil
	}
	for _, m := range ingredientPattern.FindAllStringSubmatch(raw, -1) {
		partial, amount := m[1], m[2]
		count, err := strconv.Atoi(amount)
		if err != nil {
			diags = append(diags, Diagnostic{Kind: AmountInvalid, Reference: amount})
			continue
		}
		item, ok := e.resolve(partial)
		if !ok {
			diags = append(diags, Diagnostic{
				Kind:       IngredientUnresolved,
				Reference:  partial,
				Suggestion: e.items.Suggest(suffixFor(partial)),
			})
			continue
		}
		ings = append(ings, Ingredient{Item: item, Count: count})
	}
	return ings, diags
}

func suffixFor(partial string) string {
	return "Desc_" + partial + "_C"
}

func (e *IngredientExtractor) resolve(partial string) (Item, bool) {
	if v, found := e.memo.Get(partial); found {
		r := v.(resolution)
		return r.item, r.ok
	}
	item, ok := e.items.FindSuffix(suffixFor(partial))
	e.memo.Set(partial, resolution{item: item, ok: ok}, cache.NoExpiration)
	return item, ok
}
