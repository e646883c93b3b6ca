package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"sfcatalog/data"
)

// productPattern matches one (ItemClass="....<Identifier>_C'...",Amount=<n>) group
// and captures the full trailing identifier including "_C".
var productPattern = regexp.MustCompile(
	`\(\s*ItemClass\s*=\s*"[^"]*?\.([A-Za-z0-9_]+_C)'[^"]*"[^()]*?\bAmount\s*=\s*(\d+)[^()]*\)`,
)

// Product is an item produced by one run of a recipe. ClassName is the identifier
// as written in the recipe's product field.
type Product struct {
	Item      Item
	ClassName string
	Count     int
}

// Recipe is one validated recipe. Products is never empty.
type Recipe struct {
	ClassName   string // recipe identifier, e.g. "Recipe_IronPlate_C"
	DisplayName string
	Products    []Product
	Ingredients []Ingredient
	Duration    float64 // seconds per cycle; NaN when the source value is not a number
}

// Produces reports whether the recipe outputs the given item.
func (r Recipe) Produces(itemClass string) bool {
	for _, p := range r.Products {
		if p.Item.ClassName == itemClass {
			return true
		}
	}
	return false
}

// Consumes reports whether the recipe takes the given item as an ingredient.
func (r Recipe) Consumes(itemClass string) bool {
	for _, in := range r.Ingredients {
		if in.Item.ClassName == itemClass {
			return true
		}
	}
	return false
}

func (r Recipe) clone() Recipe {
	out := r
	out.Products = append([]Product(nil), r.Products...)
	out.Ingredients = append([]Ingredient{}, r.Ingredients...)
	return out
}

// RecipeOptions tunes BuildRecipeCatalog.
type RecipeOptions struct {
	// Workers > 1 resolves recipes in parallel. The result and the order of
	// diagnostics are the same as for a sequential build.
	Workers int
	// StrictDuration drops recipes whose duration is missing or not a number
	// instead of keeping them with a NaN duration.
	StrictDuration bool
}

// RecipeCatalog is the ordered set of validated recipes.
type RecipeCatalog struct {
	recipes []Recipe
	byClass map[string]int
}

type entryResult struct {
	recipe Recipe
	ok     bool
	diags  []Diagnostic
}

// BuildRecipeCatalog parses raw recipes against the item catalog. Recipes keep their
// input order. Every dropped ingredient, product or recipe is reported to sink.
func BuildRecipeCatalog(items *ItemCatalog, raws []data.RawRecipe, sink Sink, opts RecipeOptions) *RecipeCatalog {
	if sink == nil {
		sink = Discard
	}
	extractor := NewIngredientExtractor(items, sink)
	results := make([]entryResult, len(raws))

	if opts.Workers > 1 {
		var g errgroup.Group
		g.SetLimit(opts.Workers)
		for i := range raws {
			i := i
			g.Go(func() error {
				results[i] = buildEntry(items, extractor, raws[i], opts)
				return nil
			})
		}
		g.Wait()
	} else {
		for i := range raws {
			results[i] = buildEntry(items, extractor, raws[i], opts)
		}
	}

	// Merge in input order so the output does not depend on scheduling.
	rc := &RecipeCatalog{byClass: make(map[string]int)}
	for _, res := range results {
		for _, d := range res.diags {
			sink.Report(d)
		}
		if !res.ok {
			continue
		}
		if _, dup := rc.byClass[res.recipe.ClassName]; dup {
			sink.Report(Diagnostic{
				Kind:       RecipeDuplicate,
				Recipe:     res.recipe.ClassName,
				RecipeName: res.recipe.DisplayName,
			})
			continue
		}
		rc.byClass[res.recipe.ClassName] = len(rc.recipes)
		rc.recipes = append(rc.recipes, res.recipe)
	}
	return rc
}

// buildEntry turns one raw recipe into a Recipe. It only reads shared state.
func buildEntry(items *ItemCatalog, extractor *IngredientExtractor, raw data.RawRecipe, opts RecipeOptions) entryResult {
	if raw.DisplayName == "" || raw.Product == "" || raw.ClassName == "" {
		return entryResult{}
	}
	var res entryResult
	withContext := func(d Diagnostic) Diagnostic {
		d.Recipe = raw.ClassName
		d.RecipeName = raw.DisplayName
		return d
	}

	ingredients, ingDiags := extractor.extract(raw.Ingredients)
	for _, d := range ingDiags {
		res.diags = append(res.diags, withContext(d))
	}

	var products []Product
	for _, m := range productPattern.FindAllStringSubmatch(raw.Product, -1) {
		className, amount := m[1], m[2]
		count, err := strconv.Atoi(amount)
		if err != nil {
			res.diags = append(res.diags, withContext(Diagnostic{Kind: AmountInvalid, Reference: amount}))
			continue
		}
		item, ok := items.Lookup(className)
		if !ok {
			res.diags = append(res.diags, withContext(Diagnostic{
				Kind:       ProductUnresolved,
				Reference:  className,
				Suggestion: items.Suggest(className),
			}))
			continue
		}
		products = append(products, Product{Item: item, ClassName: className, Count: count})
	}
	if len(products) == 0 {
		res.diags = append(res.diags, withContext(Diagnostic{Kind: RecipeWithoutProducts}))
		return res
	}

	duration, valid := parseDuration(raw)
	if !valid {
		res.diags = append(res.diags, withContext(Diagnostic{Kind: DurationInvalid, Reference: raw.Duration}))
		if opts.StrictDuration {
			return res
		}
	}

	res.recipe = Recipe{
		ClassName:   raw.ClassName,
		DisplayName: raw.DisplayName,
		Products:    products,
		Ingredients: ingredients,
		Duration:    duration,
	}
	res.ok = true
	return res
}

// parseDuration reads the manufacturing duration. Missing or non-numeric values
// give NaN and false.
func parseDuration(raw data.RawRecipe) (float64, bool) {
	if !raw.HasDuration {
		return math.NaN(), false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw.Duration), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return math.NaN(), false
	}
	return v, true
}

// Recipes returns all recipes in input order.
func (c *RecipeCatalog) Recipes() []Recipe {
	out := make([]Recipe, len(c.recipes))
	for i, r := range c.recipes {
		out[i] = r.clone()
	}
	return out
}

// Len returns the number of recipes.
func (c *RecipeCatalog) Len() int {
	return len(c.recipes)
}

// Lookup returns (Recipe, true) for a recipe ClassName, or (zero, false) otherwise.
func (c *RecipeCatalog) Lookup(className string) (Recipe, bool) {
	i, ok := c.byClass[className]
	if !ok {
		return Recipe{}, false
	}
	return c.recipes[i].clone(), true
}

// ProducersOf returns the recipes that output itemClass, in catalog order.
func (c *RecipeCatalog) ProducersOf(itemClass string) []Recipe {
	var out []Recipe
	for _, r := range c.recipes {
		if r.Produces(itemClass) {
			out = append(out, r.clone())
		}
	}
	return out
}

// ConsumersOf returns the recipes that take itemClass as an ingredient, in catalog order.
func (c *RecipeCatalog) ConsumersOf(itemClass string) []Recipe {
	var out []Recipe
	for _, r := range c.recipes {
		if r.Consumes(itemClass) {
			out = append(out, r.clone())
		}
	}
	return out
}
