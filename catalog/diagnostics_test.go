package catalog

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Kind:       ProductUnresolved,
		Recipe:     "Recipe_IronPlate_C",
		RecipeName: "Iron Plate",
		Reference:  "Desc_IronPlat_C",
		Suggestion: "Desc_IronPlate_C",
	}
	got := d.String()
	for _, want := range []string{"Desc_IronPlat_C", "Iron Plate", "Recipe_IronPlate_C", "Did you mean Desc_IronPlate_C?"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
	if s := (Diagnostic{Kind: IngredientUnresolved, Reference: "Foo"}).String(); strings.Contains(s, "recipe") {
		t.Errorf("String() without recipe = %q, want no recipe context", s)
	}
}

func TestLogSink(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sink := NewLogSink(zap.New(core))
	sink.Report(Diagnostic{Kind: RecipeWithoutProducts, Recipe: "Recipe_X_C", RecipeName: "X"})

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("logged %d entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["recipe"] != "Recipe_X_C" || fields["kind"] != "recipe_without_products" {
		t.Errorf("fields = %v, want recipe=Recipe_X_C kind=recipe_without_products", fields)
	}
}

func TestSinkFuncAndDiscard(t *testing.T) {
	var got []DiagnosticKind
	sink := SinkFunc(func(d Diagnostic) { got = append(got, d.Kind) })
	e := NewIngredientExtractor(ironCatalog(), sink)
	e.Extract(refList(itemRef("Desc_Missing_C", 1)))
	if len(got) != 1 || got[0] != IngredientUnresolved {
		t.Errorf("SinkFunc received %v, want [ingredient_unresolved]", got)
	}
	Discard.Report(Diagnostic{Kind: RecipeDuplicate})
}
