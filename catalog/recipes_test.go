package catalog

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"

	"sfcatalog/data"
)

func productSummary(ps []Product) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = fmt.Sprintf("%s:%d", p.ClassName, p.Count)
	}
	return strings.Join(parts, " ")
}

func plateRecipe() data.RawRecipe {
	return data.RawRecipe{
		ClassName:   "Recipe_IronPlate_C",
		DisplayName: "Iron Plate",
		Product:     refList(itemRef("Desc_IronPlate_C", 2)),
		Ingredients: refList(itemRef("Desc_IronIngot_C", 3)),
		Duration:    "6.000000",
		HasDuration: true,
	}
}

func TestBuildRecipeCatalog_Basic(t *testing.T) {
	var diags Collector
	rc := BuildRecipeCatalog(ironCatalog(), []data.RawRecipe{plateRecipe()}, &diags, RecipeOptions{})
	r, ok := rc.Lookup("Recipe_IronPlate_C")
	if !ok {
		t.Fatalf("Lookup(Recipe_IronPlate_C) returned ok=false, want true")
	}
	if r.DisplayName != "Iron Plate" || r.Duration != 6 {
		t.Errorf("recipe = %+v, want Iron Plate with duration 6", r)
	}
	if got := productSummary(r.Products); got != "Desc_IronPlate_C:2" {
		t.Errorf("Products = %s, want Desc_IronPlate_C:2", got)
	}
	if got := ingredientSummary(r.Ingredients); got != "Desc_IronIngot_C:3" {
		t.Errorf("Ingredients = %s, want Desc_IronIngot_C:3", got)
	}
	if r.Products[0].Item.DisplayName != "Iron Plate" {
		t.Errorf("product item = %+v, want the catalog's Iron Plate", r.Products[0].Item)
	}
	if n := len(diags.Diagnostics()); n != 0 {
		t.Errorf("reported %d diagnostics, want 0: %v", n, diags.Diagnostics())
	}
}

func TestBuildRecipeCatalog_DropsOneOfTwoProducts(t *testing.T) {
	raw := plateRecipe()
	raw.Product = refList(itemRef("Desc_IronPlate_C", 1), itemRef("Unknown_C", 1))

	var diags Collector
	rc := BuildRecipeCatalog(ironCatalog(), []data.RawRecipe{raw}, &diags, RecipeOptions{})
	r, ok := rc.Lookup(raw.ClassName)
	if !ok {
		t.Fatalf("Lookup(%s) returned ok=false, want true", raw.ClassName)
	}
	if len(r.Products) != 1 || r.Products[0].Item.DisplayName != "Iron Plate" {
		t.Errorf("Products = %s, want only Iron Plate", productSummary(r.Products))
	}
	ds := diags.Diagnostics()
	if len(ds) != 1 || ds[0].Kind != ProductUnresolved || ds[0].Reference != "Unknown_C" {
		t.Errorf("diagnostics = %v, want one ProductUnresolved for Unknown_C", ds)
	}
	if ds[0].Recipe != raw.ClassName || ds[0].RecipeName != raw.DisplayName {
		t.Errorf("diagnostic recipe context = (%q,%q), want (%q,%q)", ds[0].Recipe, ds[0].RecipeName, raw.ClassName, raw.DisplayName)
	}
}

func TestBuildRecipeCatalog_ZeroProductsDropsRecipe(t *testing.T) {
	raw := plateRecipe()
	raw.Product = refList(itemRef("Desc_Motor_C", 1))

	var diags Collector
	rc := BuildRecipeCatalog(ironCatalog(), []data.RawRecipe{raw}, &diags, RecipeOptions{})
	if _, ok := rc.Lookup(raw.ClassName); ok || rc.Len() != 0 {
		t.Errorf("recipe with no resolvable products is present in the catalog")
	}
	if diags.Count(ProductUnresolved) != 1 || diags.Count(RecipeWithoutProducts) != 1 {
		t.Errorf("diagnostics = %v, want one ProductUnresolved and one RecipeWithoutProducts", diags.Diagnostics())
	}
}

func TestBuildRecipeCatalog_UnparsableProductDropsRecipe(t *testing.T) {
	raw := plateRecipe()
	raw.Product = "garbage"

	var diags Collector
	rc := BuildRecipeCatalog(ironCatalog(), []data.RawRecipe{raw}, &diags, RecipeOptions{})
	if rc.Len() != 0 || diags.Count(RecipeWithoutProducts) != 1 {
		t.Errorf("Len() = %d with %d RecipeWithoutProducts, want 0 and 1", rc.Len(), diags.Count(RecipeWithoutProducts))
	}
}

func TestBuildRecipeCatalog_MissingFieldsSilentlyDropped(t *testing.T) {
	noName := plateRecipe()
	noName.DisplayName = ""
	noProduct := plateRecipe()
	noProduct.Product = ""
	noClass := plateRecipe()
	noClass.ClassName = ""

	var diags Collector
	rc := BuildRecipeCatalog(ironCatalog(), []data.RawRecipe{noName, noProduct, noClass}, &diags, RecipeOptions{})
	if rc.Len() != 0 {
		t.Errorf("Len() = %d, want 0", rc.Len())
	}
	if n := len(diags.Diagnostics()); n != 0 {
		t.Errorf("reported %d diagnostics, want 0", n)
	}
}

func TestBuildRecipeCatalog_NoIngredients(t *testing.T) {
	raw := plateRecipe()
	raw.Ingredients = ""
	rc := BuildRecipeCatalog(ironCatalog(), []data.RawRecipe{raw}, nil, RecipeOptions{})
	r, ok := rc.Lookup(raw.ClassName)
	if !ok || r.Ingredients == nil || len(r.Ingredients) != 0 {
		t.Errorf("Lookup(%s) = (%+v,%v), want recipe with empty ingredients", raw.ClassName, r, ok)
	}
}

func TestBuildRecipeCatalog_DroppedIngredientKeepsRecipe(t *testing.T) {
	raw := plateRecipe()
	raw.Ingredients = refList(itemRef("Desc_Missing_C", 4), itemRef("Desc_IronIngot_C", 3))

	var diags Collector
	rc := BuildRecipeCatalog(ironCatalog(), []data.RawRecipe{raw}, &diags, RecipeOptions{})
	r, ok := rc.Lookup(raw.ClassName)
	if !ok || ingredientSummary(r.Ingredients) != "Desc_IronIngot_C:3" {
		t.Errorf("Lookup(%s) = (%+v,%v), want recipe with Desc_IronIngot_C:3 only", raw.ClassName, r, ok)
	}
	ds := diags.Diagnostics()
	if len(ds) != 1 || ds[0].Kind != IngredientUnresolved || ds[0].Recipe != raw.ClassName {
		t.Errorf("diagnostics = %v, want one IngredientUnresolved for %s", ds, raw.ClassName)
	}
}

// Ingredients resolve by suffix, products by exact ClassName.
func TestBuildRecipeCatalog_SuffixVersusExact(t *testing.T) {
	raw := data.RawRecipe{
		ClassName:   "Recipe_Fuel_C",
		DisplayName: "Packaged Fuel",
		// Captured product identifier is Desc_Fuel_C; the catalog only has BP_Desc_Fuel_C.
		Product:     refList(itemRef("Desc_Fuel_C", 1), itemRef("Desc_IronPlate_C", 1)),
		Ingredients: refList(itemRef("Desc_Fuel_C", 2)),
		Duration:    "3",
		HasDuration: true,
	}
	var diags Collector
	rc := BuildRecipeCatalog(ironCatalog(), []data.RawRecipe{raw}, &diags, RecipeOptions{})
	r, ok := rc.Lookup(raw.ClassName)
	if !ok {
		t.Fatalf("Lookup(%s) returned ok=false, want true", raw.ClassName)
	}
	if got := ingredientSummary(r.Ingredients); got != "BP_Desc_Fuel_C:2" {
		t.Errorf("Ingredients = %s, want BP_Desc_Fuel_C:2 (suffix match)", got)
	}
	if got := productSummary(r.Products); got != "Desc_IronPlate_C:1" {
		t.Errorf("Products = %s, want Desc_IronPlate_C:1 (exact match only)", got)
	}
	if diags.Count(ProductUnresolved) != 1 {
		t.Errorf("ProductUnresolved count = %d, want 1", diags.Count(ProductUnresolved))
	}
}

func TestBuildRecipeCatalog_Duration(t *testing.T) {
	numeric := plateRecipe()
	numeric.ClassName, numeric.Duration = "Recipe_Numeric_C", " 12.5 "
	text := plateRecipe()
	text.ClassName, text.Duration = "Recipe_Text_C", "slow"
	missing := plateRecipe()
	missing.ClassName, missing.Duration, missing.HasDuration = "Recipe_Missing_C", "", false
	raws := []data.RawRecipe{numeric, text, missing}

	var diags Collector
	rc := BuildRecipeCatalog(ironCatalog(), raws, &diags, RecipeOptions{})
	if rc.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", rc.Len())
	}
	if r, _ := rc.Lookup("Recipe_Numeric_C"); r.Duration != 12.5 {
		t.Errorf("Recipe_Numeric_C duration = %v, want 12.5", r.Duration)
	}
	for _, class := range []string{"Recipe_Text_C", "Recipe_Missing_C"} {
		if r, _ := rc.Lookup(class); !math.IsNaN(r.Duration) {
			t.Errorf("%s duration = %v, want NaN", class, r.Duration)
		}
	}
	if n := diags.Count(DurationInvalid); n != 2 {
		t.Errorf("DurationInvalid count = %d, want 2", n)
	}

	strict := BuildRecipeCatalog(ironCatalog(), raws, nil, RecipeOptions{StrictDuration: true})
	if strict.Len() != 1 {
		t.Errorf("strict Len() = %d, want 1", strict.Len())
	}
	if _, ok := strict.Lookup("Recipe_Text_C"); ok {
		t.Errorf("strict build kept Recipe_Text_C")
	}
}

func TestBuildRecipeCatalog_DuplicateKeepsFirst(t *testing.T) {
	first := plateRecipe()
	second := plateRecipe()
	second.DisplayName = "Iron Plate (copy)"

	var diags Collector
	rc := BuildRecipeCatalog(ironCatalog(), []data.RawRecipe{first, second}, &diags, RecipeOptions{})
	if rc.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", rc.Len())
	}
	if r, _ := rc.Lookup(first.ClassName); r.DisplayName != "Iron Plate" {
		t.Errorf("Lookup(%s).DisplayName = %q, want \"Iron Plate\"", first.ClassName, r.DisplayName)
	}
	if diags.Count(RecipeDuplicate) != 1 {
		t.Errorf("RecipeDuplicate count = %d, want 1", diags.Count(RecipeDuplicate))
	}
}

func TestBuildRecipeCatalog_PreservesInputOrder(t *testing.T) {
	var raws []data.RawRecipe
	for _, class := range []string{"Recipe_C_C", "Recipe_A_C", "Recipe_Bad_C", "Recipe_B_C"} {
		r := plateRecipe()
		r.ClassName = class
		if class == "Recipe_Bad_C" {
			r.Product = refList(itemRef("Desc_Motor_C", 1))
		}
		raws = append(raws, r)
	}
	rc := BuildRecipeCatalog(ironCatalog(), raws, nil, RecipeOptions{})
	var got []string
	for _, r := range rc.Recipes() {
		got = append(got, r.ClassName)
	}
	if fmt.Sprint(got) != "[Recipe_C_C Recipe_A_C Recipe_B_C]" {
		t.Errorf("Recipes() order = %v, want [Recipe_C_C Recipe_A_C Recipe_B_C]", got)
	}
}

func TestBuildRecipeCatalog_ParallelMatchesSequential(t *testing.T) {
	parts := []string{"Desc_IronPlate_C", "Desc_IronScrew_C", "Desc_Motor_C", "Desc_IronIngot_C", "Desc_Rotor_C"}
	var raws []data.RawRecipe
	for i := 0; i < 300; i++ {
		raws = append(raws, data.RawRecipe{
			ClassName:   fmt.Sprintf("Recipe_%d_C", i%250),
			DisplayName: fmt.Sprintf("Recipe %d", i),
			Product:     refList(itemRef(parts[i%len(parts)], 1+i%3), itemRef(parts[(i+2)%len(parts)], 1)),
			Ingredients: refList(itemRef(parts[(i+1)%len(parts)], i%7), itemRef("Desc_OreIron_C", 2)),
			Duration:    fmt.Sprintf("%d", 2+i%9),
			HasDuration: true,
		})
	}

	var seqDiags, parDiags Collector
	seq := BuildRecipeCatalog(ironCatalog(), raws, &seqDiags, RecipeOptions{})
	par := BuildRecipeCatalog(ironCatalog(), raws, &parDiags, RecipeOptions{Workers: 8})

	if !reflect.DeepEqual(seq.Recipes(), par.Recipes()) {
		t.Errorf("parallel recipes differ from sequential recipes")
	}
	if !reflect.DeepEqual(seqDiags.Diagnostics(), parDiags.Diagnostics()) {
		t.Errorf("parallel diagnostics differ from sequential diagnostics")
	}
	if len(seqDiags.Diagnostics()) == 0 {
		t.Errorf("fixture produced no diagnostics; expected unresolved Motor/Rotor references")
	}
}

func TestRecipeCatalog_ProducersAndConsumers(t *testing.T) {
	screws := data.RawRecipe{
		ClassName:   "Recipe_Screw_C",
		DisplayName: "Screw",
		Product:     refList(itemRef("Desc_IronScrew_C", 4)),
		Ingredients: refList(itemRef("Desc_IronPlate_C", 1)),
		Duration:    "6",
		HasDuration: true,
	}
	rc := BuildRecipeCatalog(ironCatalog(), []data.RawRecipe{plateRecipe(), screws}, nil, RecipeOptions{})

	producers := rc.ProducersOf("Desc_IronPlate_C")
	if len(producers) != 1 || producers[0].ClassName != "Recipe_IronPlate_C" {
		t.Errorf("ProducersOf(Desc_IronPlate_C) = %v, want [Recipe_IronPlate_C]", producers)
	}
	consumers := rc.ConsumersOf("Desc_IronPlate_C")
	if len(consumers) != 1 || consumers[0].ClassName != "Recipe_Screw_C" {
		t.Errorf("ConsumersOf(Desc_IronPlate_C) = %v, want [Recipe_Screw_C]", consumers)
	}
	if got := rc.ProducersOf("Desc_Coal_C"); len(got) != 0 {
		t.Errorf("ProducersOf(Desc_Coal_C) = %v, want none", got)
	}
}

func TestRecipeCatalog_LookupReturnsCopy(t *testing.T) {
	rc := BuildRecipeCatalog(ironCatalog(), []data.RawRecipe{plateRecipe()}, nil, RecipeOptions{})
	r, _ := rc.Lookup("Recipe_IronPlate_C")
	r.Products[0].Count = 1000
	again, _ := rc.Lookup("Recipe_IronPlate_C")
	if again.Products[0].Count != 2 {
		t.Errorf("Lookup exposed the catalog's product slice")
	}
}
