// sfcatalog/data/source.go
package data

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// ErrInvalidSource is returned when a source document is not a JSON array of records.
var ErrInvalidSource = errors.New("invalid source document")

// RawItem is one general-item or ore record as found in the game export.
// Either field may be empty; the catalog builder filters those out.
type RawItem struct {
	DisplayName string // mDisplayName
	ClassName   string // ClassName, e.g. "Desc_IronPlate_C"
}

// RawRecipe is one recipe record as found in the game export.
// Product and Ingredients hold the unparsed property-list strings.
type RawRecipe struct {
	ClassName   string // ClassName, e.g. "Recipe_IronPlate_C"
	DisplayName string // mDisplayName
	Product     string // mProduct
	Ingredients string // mIngredients
	Duration    string // mManufactoringDuration as text (string or number in the source)
	HasDuration bool   // false when mManufactoringDuration is absent or null
}

// Sources bundles the three raw datasets the catalogs are built from.
type Sources struct {
	Items   []RawItem
	Ores    []RawItem
	Recipes []RawRecipe
}

// records returns the record list of a source document. Two layouts are accepted:
// a flat array of records, or the grouped export layout where each element carries
// a "Classes" array. Groups are flattened in document order.
func records(doc []byte) ([]gjson.Result, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidSource)
	}
	root := gjson.ParseBytes(doc)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: top level is not an array", ErrInvalidSource)
	}

	var out []gjson.Result
	root.ForEach(func(_, v gjson.Result) bool {
		if classes := v.Get("Classes"); classes.IsArray() {
			out = append(out, classes.Array()...)
			return true
		}
		out = append(out, v)
		return true
	})
	return out, nil
}

// field returns a record field as text. Missing and null fields give "".
func field(rec gjson.Result, name string) string {
	v := rec.Get(name)
	if !v.Exists() || v.Type == gjson.Null {
		return ""
	}
	return v.String()
}

// ParseItems reads item (or ore) records from a JSON document.
func ParseItems(doc []byte) ([]RawItem, error) {
	recs, err := records(doc)
	if err != nil {
		return nil, err
	}
	items := make([]RawItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, RawItem{
			DisplayName: field(rec, "mDisplayName"),
			ClassName:   field(rec, "ClassName"),
		})
	}
	return items, nil
}

// ParseRecipes reads recipe records from a JSON document.
func ParseRecipes(doc []byte) ([]RawRecipe, error) {
	recs, err := records(doc)
	if err != nil {
		return nil, err
	}
	recipes := make([]RawRecipe, 0, len(recs))
	for _, rec := range recs {
		dur := rec.Get("mManufactoringDuration")
		recipes = append(recipes, RawRecipe{
			ClassName:   field(rec, "ClassName"),
			DisplayName: field(rec, "mDisplayName"),
			Product:     field(rec, "mProduct"),
			Ingredients: field(rec, "mIngredients"),
			Duration:    field(rec, "mManufactoringDuration"),
			HasDuration: dur.Exists() && dur.Type != gjson.Null,
		})
	}
	return recipes, nil
}

// LoadItems reads item records from a file.
func LoadItems(path string) ([]RawItem, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	items, err := ParseItems(doc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return items, nil
}

// LoadRecipes reads recipe records from a file.
func LoadRecipes(path string) ([]RawRecipe, error) {
	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	recipes, err := ParseRecipes(doc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return recipes, nil
}

// LoadSources reads all three datasets. Any failure aborts the load.
func LoadSources(itemsPath, oresPath, recipesPath string) (Sources, error) {
	var src Sources
	var err error
	if src.Items, err = LoadItems(itemsPath); err != nil {
		return Sources{}, err
	}
	if src.Ores, err = LoadItems(oresPath); err != nil {
		return Sources{}, err
	}
	if src.Recipes, err = LoadRecipes(recipesPath); err != nil {
		return Sources{}, err
	}
	return src, nil
}
