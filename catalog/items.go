// Package catalog builds the item and recipe catalogs from raw game data.
// Both catalogs are built once and are read-only afterwards.
package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"sfcatalog/data"
)

// Item is one deduplicated catalog entry.
type Item struct {
	DisplayName string
	ClassName   string // unique key, e.g. "Desc_IronPlate_C"
	IsOre       bool
}

// ItemCatalog is the sorted, deduplicated set of items.
type ItemCatalog struct {
	items   []Item
	byClass map[string]int
}

// BuildItemCatalog merges general items and ores into one catalog.
// Entries without a display name or class name are dropped. When both sources
// define the same ClassName the general item wins over the ore.
func BuildItemCatalog(general, ores []data.RawItem) *ItemCatalog {
	merged := make(map[string]Item, len(general)+len(ores))
	add := func(raws []data.RawItem, isOre bool) {
		for _, r := range raws {
			if r.DisplayName == "" || r.ClassName == "" {
				continue
			}
			merged[r.ClassName] = Item{DisplayName: r.DisplayName, ClassName: r.ClassName, IsOre: isOre}
		}
	}
	// Ores first, so general items overwrite them.
	add(ores, true)
	add(general, false)

	items := make([]Item, 0, len(merged))
	for _, it := range merged {
		items = append(items, it)
	}
	sortByDisplayName(items)

	byClass := make(map[string]int, len(items))
	for i, it := range items {
		byClass[it.ClassName] = i
	}
	return &ItemCatalog{items: items, byClass: byClass}
}

// sortByDisplayName orders items by locale-aware comparison of DisplayName.
// Names the collator considers equal fall back to byte order, then ClassName,
// which makes the order total.
func sortByDisplayName(items []Item) {
	col := collate.New(language.English)
	slices.SortFunc(items, func(a, b Item) int {
		if c := col.CompareString(a.DisplayName, b.DisplayName); c != 0 {
			return c
		}
		if c := strings.Compare(a.DisplayName, b.DisplayName); c != 0 {
			return c
		}
		return strings.Compare(a.ClassName, b.ClassName)
	})
}

// Items returns the catalog listing sorted by display name.
func (c *ItemCatalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items.
func (c *ItemCatalog) Len() int {
	return len(c.items)
}

// Lookup returns (Item, true) for a ClassName, or (zero, false) otherwise.
func (c *ItemCatalog) Lookup(className string) (Item, bool) {
	i, ok := c.byClass[className]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// FindSuffix returns the first item, in listing order, whose ClassName ends with suffix.
func (c *ItemCatalog) FindSuffix(suffix string) (Item, bool) {
	for _, it := range c.items {
		if strings.HasSuffix(it.ClassName, suffix) {
			return it, true
		}
	}
	return Item{}, false
}
