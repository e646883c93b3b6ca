package catalog

import (
	"errors"
	"fmt"

	"sfcatalog/data"
)

var (
	ErrUnknownItem    = errors.New("unknown item")
	ErrUnknownRecipe  = errors.New("unknown recipe")
	ErrRecipeMismatch = errors.New("recipe does not produce item")
)

// CheckFactory verifies that a factory's item and recipe identifiers exist in the
// catalogs and that the recipe produces the item.
func CheckFactory(items *ItemCatalog, recipes *RecipeCatalog, f data.Factory) error {
	if _, ok := items.Lookup(f.OutputItemClass); !ok {
		return fmt.Errorf("factory %q: %w %s", f.Name, ErrUnknownItem, f.OutputItemClass)
	}
	r, ok := recipes.Lookup(f.RecipeClass)
	if !ok {
		return fmt.Errorf("factory %q: %w %s", f.Name, ErrUnknownRecipe, f.RecipeClass)
	}
	if !r.Produces(f.OutputItemClass) {
		return fmt.Errorf("factory %q: %w: %s does not output %s", f.Name, ErrRecipeMismatch, f.RecipeClass, f.OutputItemClass)
	}
	return nil
}

// CheckRawMaterialInputs verifies that every input refers to a catalog item.
func CheckRawMaterialInputs(items *ItemCatalog, inputs []data.RawMaterialInput) error {
	for _, in := range inputs {
		if _, ok := items.Lookup(in.ItemClass); !ok {
			return fmt.Errorf("raw material input: %w %s", ErrUnknownItem, in.ItemClass)
		}
		if in.Amount < 0 {
			return fmt.Errorf("raw material input %s: amount must not be negative", in.ItemClass)
		}
	}
	return nil
}
