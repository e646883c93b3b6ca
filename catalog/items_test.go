package catalog

import (
	"fmt"
	"math/rand"
	"testing"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"sfcatalog/data"
)

// ironCatalog is the small catalog shared by the tests in this package.
func ironCatalog() *ItemCatalog {
	return BuildItemCatalog(
		[]data.RawItem{
			{DisplayName: "Iron Ingot", ClassName: "Desc_IronIngot_C"},
			{DisplayName: "Iron Plate", ClassName: "Desc_IronPlate_C"},
			{DisplayName: "Screw", ClassName: "Desc_IronScrew_C"},
			{DisplayName: "Packaged Fuel", ClassName: "BP_Desc_Fuel_C"},
		},
		[]data.RawItem{
			{DisplayName: "Iron Ore", ClassName: "Desc_OreIron_C"},
			{DisplayName: "Coal", ClassName: "Desc_Coal_C"},
		},
	)
}

func classNames(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ClassName
	}
	return out
}

func TestBuildItemCatalog_GeneralWinsOverOre(t *testing.T) {
	c := BuildItemCatalog(
		[]data.RawItem{{DisplayName: "Water", ClassName: "Desc_Water_C"}},
		[]data.RawItem{{DisplayName: "Water (Resource)", ClassName: "Desc_Water_C"}},
	)
	if c.Len() != 1 {
		t.Fatalf("BuildItemCatalog(Desc_Water_C twice).Len() = %d, want 1", c.Len())
	}
	got, ok := c.Lookup("Desc_Water_C")
	want := Item{DisplayName: "Water", ClassName: "Desc_Water_C", IsOre: false}
	if !ok || got != want {
		t.Errorf("Lookup(Desc_Water_C) = (%+v,%v), want (%+v,true)", got, ok, want)
	}
}

func TestBuildItemCatalog_FiltersMalformed(t *testing.T) {
	c := BuildItemCatalog(
		[]data.RawItem{
			{DisplayName: "", ClassName: "Desc_NoName_C"},
			{DisplayName: "No Class", ClassName: ""},
			{DisplayName: "Iron Plate", ClassName: "Desc_IronPlate_C"},
		},
		[]data.RawItem{{DisplayName: "", ClassName: ""}},
	)
	if got := classNames(c.Items()); fmt.Sprint(got) != "[Desc_IronPlate_C]" {
		t.Errorf("BuildItemCatalog(malformed) = %v, want [Desc_IronPlate_C]", got)
	}
	if _, ok := c.Lookup("Desc_NoName_C"); ok {
		t.Errorf("Lookup(Desc_NoName_C) = ok=true, want ok=false")
	}
}

func TestBuildItemCatalog_OreFlag(t *testing.T) {
	c := ironCatalog()
	ore, _ := c.Lookup("Desc_OreIron_C")
	ingot, _ := c.Lookup("Desc_IronIngot_C")
	if !ore.IsOre || ingot.IsOre {
		t.Errorf("IsOre flags = (ore %v, ingot %v), want (true, false)", ore.IsOre, ingot.IsOre)
	}
}

func TestBuildItemCatalog_SortedByDisplayName(t *testing.T) {
	c := BuildItemCatalog(
		[]data.RawItem{
			{DisplayName: "cherry", ClassName: "Desc_Cherry_C"},
			{DisplayName: "Banana", ClassName: "Desc_Banana_C"},
			{DisplayName: "apple", ClassName: "Desc_Apple_C"},
		},
		nil,
	)
	// Code-point order would put "Banana" first.
	want := "[Desc_Apple_C Desc_Banana_C Desc_Cherry_C]"
	if got := classNames(c.Items()); fmt.Sprint(got) != want {
		t.Errorf("Items() = %v, want %v", got, want)
	}
}

func TestBuildItemCatalog_EqualNamesStableOrder(t *testing.T) {
	general := []data.RawItem{
		{DisplayName: "Ingot", ClassName: "Desc_B_C"},
		{DisplayName: "Ingot", ClassName: "Desc_A_C"},
		{DisplayName: "Ingot", ClassName: "Desc_C_C"},
	}
	first := fmt.Sprint(classNames(BuildItemCatalog(general, nil).Items()))
	if first != "[Desc_A_C Desc_B_C Desc_C_C]" {
		t.Errorf("Items() with equal names = %v, want [Desc_A_C Desc_B_C Desc_C_C]", first)
	}
	for i := 0; i < 20; i++ {
		if got := fmt.Sprint(classNames(BuildItemCatalog(general, nil).Items())); got != first {
			t.Fatalf("build %d: Items() = %v, want %v", i, got, first)
		}
	}
}

func TestItems_ReturnsCopy(t *testing.T) {
	c := ironCatalog()
	items := c.Items()
	items[0].DisplayName = "changed"
	if c.Items()[0].DisplayName == "changed" {
		t.Errorf("Items() exposed the catalog's backing slice")
	}
}

func TestFindSuffix(t *testing.T) {
	c := ironCatalog()
	if it, ok := c.FindSuffix("Desc_Fuel_C"); !ok || it.ClassName != "BP_Desc_Fuel_C" {
		t.Errorf("FindSuffix(Desc_Fuel_C) = (%+v,%v), want BP_Desc_Fuel_C", it, ok)
	}
	if _, ok := c.FindSuffix("Desc_Plate_C"); ok {
		t.Errorf("FindSuffix(Desc_Plate_C) = ok=true, want ok=false")
	}
}

func TestSuggest(t *testing.T) {
	c := ironCatalog()
	if got := c.Suggest("Desc_IronPlat_C"); got != "Desc_IronPlate_C" {
		t.Errorf("Suggest(Desc_IronPlat_C) = %q, want Desc_IronPlate_C", got)
	}
	if got := c.Suggest("Desc_Motor_C"); got != "" {
		t.Errorf("Suggest(Desc_Motor_C) = %q, want \"\"", got)
	}
	if got := c.Suggest(""); got != "" {
		t.Errorf("Suggest(\"\") = %q, want \"\"", got)
	}
}

// TestRandomBuildItemCatalog builds catalogs from random sources with overlapping
// identifiers and checks uniqueness, ordering and the general-over-ore rule.
func TestRandomBuildItemCatalog(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"Iron", "iron", "Copper", "Éclat", "eclat", "Wire", "Cable", ""}
	col := collate.New(language.English)

	for iter := 0; iter < 200; iter++ {
		var general, ores []data.RawItem
		for i := 0; i < rng.Intn(30); i++ {
			general = append(general, data.RawItem{
				DisplayName: names[rng.Intn(len(names))],
				ClassName:   fmt.Sprintf("Desc_%d_C", rng.Intn(15)),
			})
		}
		for i := 0; i < rng.Intn(30); i++ {
			ores = append(ores, data.RawItem{
				DisplayName: names[rng.Intn(len(names))],
				ClassName:   fmt.Sprintf("Desc_%d_C", rng.Intn(15)),
			})
		}

		c := BuildItemCatalog(general, ores)
		items := c.Items()

		seen := make(map[string]bool)
		for i, it := range items {
			if seen[it.ClassName] {
				t.Fatalf("iter %d: duplicate ClassName %s", iter, it.ClassName)
			}
			seen[it.ClassName] = true
			if i > 0 && col.CompareString(items[i-1].DisplayName, it.DisplayName) > 0 {
				t.Errorf("iter %d: %q listed before %q", iter, items[i-1].DisplayName, it.DisplayName)
			}
		}

		// The last valid general definition of an identifier is the catalog entry.
		lastGeneral := make(map[string]data.RawItem)
		for _, g := range general {
			if g.DisplayName != "" && g.ClassName != "" {
				lastGeneral[g.ClassName] = g
			}
		}
		for class, g := range lastGeneral {
			got, ok := c.Lookup(class)
			if !ok || got.DisplayName != g.DisplayName || got.IsOre {
				t.Errorf("iter %d: Lookup(%s) = (%+v,%v), want general %q", iter, class, got, ok, g.DisplayName)
			}
		}
	}
}
