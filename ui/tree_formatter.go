package ui

import (
	"fmt"

	"sfcatalog/catalog"
)

//
// This file contains "pure" logic for building the recipe breakdown of an item and
// formatting it into a slice of lineInfo structs. It does not create any Fyne widgets.
//
// - breakdownNode, buildRecipeTree
// - lineInfo, collectLines, formatHierarchy
//

// nodeKind tells the renderer how to color a line.
type nodeKind int

const (
	kindRecipe nodeKind = iota
	kindSection
	kindProduct
	kindIngredient
)

// breakdownNode is one line of the recipe breakdown tree.
type breakdownNode struct {
	ID       string // unique: "<recipeClass>/<section>/<index>"
	Name     string
	Kind     nodeKind
	Children []*breakdownNode
}

// buildRecipeTree returns one root per recipe, each with a Products and an
// Ingredients section. Recipe order is kept as given.
func buildRecipeTree(recipes []catalog.Recipe) []*breakdownNode {
	roots := make([]*breakdownNode, 0, len(recipes))
	for _, r := range recipes {
		root := &breakdownNode{
			ID:   r.ClassName,
			Name: fmt.Sprintf("%s [%s]", r.DisplayName, formatDuration(r.Duration)),
			Kind: kindRecipe,
		}

		products := &breakdownNode{ID: r.ClassName + "/products", Name: "Products", Kind: kindSection}
		for i, p := range r.Products {
			products.Children = append(products.Children, &breakdownNode{
				ID:   fmt.Sprintf("%s/products/%d", r.ClassName, i),
				Name: fmt.Sprintf("%d × %s", p.Count, p.Item.DisplayName),
				Kind: kindProduct,
			})
		}

		ingredients := &breakdownNode{ID: r.ClassName + "/ingredients", Name: "Ingredients", Kind: kindSection}
		if len(r.Ingredients) == 0 {
			ingredients.Name = "Ingredients (none)"
		}
		for i, in := range r.Ingredients {
			ingredients.Children = append(ingredients.Children, &breakdownNode{
				ID:   fmt.Sprintf("%s/ingredients/%d", r.ClassName, i),
				Name: fmt.Sprintf("%d × %s", in.Count, in.Item.DisplayName),
				Kind: kindIngredient,
			})
		}

		root.Children = []*breakdownNode{products, ingredients}
		roots = append(roots, root)
	}
	return roots
}

// lineInfo holds everything needed to render one ASCII-tree line:
//
//   - PrefixParts: for each ancestor level, true=that ancestor was the last child, so we print spaces.
//   - IsLast: is this node the last among its siblings (so we choose "└── " vs. "├── ").
//   - Text: e.g. "Iron Plate [6.0 s]".
type lineInfo struct {
	PrefixParts []bool
	IsLast      bool
	Text        string
	Kind        nodeKind
}

// collectLines recursively walks nodes and appends lineInfo entries.
func collectLines(nodes []*breakdownNode, prefixParts []bool, out *[]lineInfo) {
	for i, node := range nodes {
		isLast := i == len(nodes)-1
		parts := make([]bool, len(prefixParts), len(prefixParts)+1)
		copy(parts, prefixParts)
		parts = append(parts, isLast)
		*out = append(*out, lineInfo{
			PrefixParts: parts,
			IsLast:      isLast,
			Text:        node.Name,
			Kind:        node.Kind,
		})
		if len(node.Children) > 0 {
			collectLines(node.Children, parts, out)
		}
	}
}

// formatHierarchy flattens the forest into render order.
func formatHierarchy(roots []*breakdownNode) []lineInfo {
	var lines []lineInfo
	collectLines(roots, nil, &lines)
	return lines
}
