package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/invopop/jsonschema"
)

// Snapshot is the exported, JSON-serializable form of both catalogs.
// Cross references are by ClassName only.
type Snapshot struct {
	Items   []ItemRecord   `json:"items" jsonschema:"description=Deduplicated items sorted by display name"`
	Recipes []RecipeRecord `json:"recipes" jsonschema:"description=Validated recipes in source order"`
}

// ItemRecord is one exported item.
type ItemRecord struct {
	ClassName   string `json:"className" jsonschema:"minLength=1,description=Unique item identifier"`
	DisplayName string `json:"displayName" jsonschema:"minLength=1"`
	IsOre       bool   `json:"isOre"`
}

// AmountRecord is one exported product or ingredient.
type AmountRecord struct {
	ItemClass string `json:"itemClass" jsonschema:"minLength=1,description=ClassName of an entry in items"`
	Count     int    `json:"count" jsonschema:"minimum=0"`
}

// RecipeRecord is one exported recipe. DurationSeconds is omitted when the
// source duration was not a number.
type RecipeRecord struct {
	ClassName       string         `json:"className" jsonschema:"minLength=1,description=Unique recipe identifier"`
	DisplayName     string         `json:"displayName" jsonschema:"minLength=1"`
	Products        []AmountRecord `json:"products" jsonschema:"minItems=1"`
	Ingredients     []AmountRecord `json:"ingredients"`
	DurationSeconds *float64       `json:"durationSeconds,omitempty"`
}

// NewSnapshot copies both catalogs into a Snapshot.
func NewSnapshot(items *ItemCatalog, recipes *RecipeCatalog) Snapshot {
	snap := Snapshot{
		Items:   make([]ItemRecord, 0, items.Len()),
		Recipes: make([]RecipeRecord, 0, recipes.Len()),
	}
	for _, it := range items.items {
		snap.Items = append(snap.Items, ItemRecord{ClassName: it.ClassName, DisplayName: it.DisplayName, IsOre: it.IsOre})
	}
	for _, r := range recipes.recipes {
		rec := RecipeRecord{
			ClassName:   r.ClassName,
			DisplayName: r.DisplayName,
			Products:    make([]AmountRecord, 0, len(r.Products)),
			Ingredients: make([]AmountRecord, 0, len(r.Ingredients)),
		}
		for _, p := range r.Products {
			rec.Products = append(rec.Products, AmountRecord{ItemClass: p.Item.ClassName, Count: p.Count})
		}
		for _, in := range r.Ingredients {
			rec.Ingredients = append(rec.Ingredients, AmountRecord{ItemClass: in.Item.ClassName, Count: in.Count})
		}
		if !math.IsNaN(r.Duration) {
			d := r.Duration
			rec.DurationSeconds = &d
		}
		snap.Recipes = append(snap.Recipes, rec)
	}
	return snap
}

// WriteJSON writes the snapshot as indented JSON.
func (s Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

// SnapshotSchema returns the JSON Schema of Snapshot.
func SnapshotSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{ExpandedStruct: true}
	schema := reflector.Reflect(&Snapshot{})
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot schema: %w", err)
	}
	return out, nil
}
