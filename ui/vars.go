// ui/vars.go
package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"sfcatalog/catalog"
	"sfcatalog/data"
)

// view holds the window state shared by the files of this package.
type view struct {
	app fyne.App
	win fyne.Window
	log *zap.Logger

	items   *catalog.ItemCatalog
	recipes *catalog.RecipeCatalog
	store   *data.Store // nil when persistence is unavailable

	// Item browser: full sorted listing, the filtered slice shown, and the selection.
	allItems     []catalog.Item
	visibleItems []catalog.Item
	currentItem  string
	itemList     *widget.List
	searchEntry  *widget.Entry

	// VBox holding the colored recipe breakdown lines.
	hierarchyContainer *fyne.Container

	// Recipe table rows (header first) for the selected item.
	recipeTable *widget.Table
	recipeData  [][]string

	// Factory editor. recipeIDs maps the select label to the recipe ClassName.
	recipeSelect *widget.Select
	recipeIDs    map[string]string
	factories    []data.Factory
	factoryList  *widget.List
	selectedFac  string
	nameEntry    *widget.Entry
	countEntry   *widget.Entry
	floorEntry   *widget.Entry

	statusLabel *widget.Label
	themeButton *widget.Button
}
