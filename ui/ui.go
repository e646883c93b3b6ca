package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"sfcatalog/catalog"
	"sfcatalog/data"
)

// BuildUI creates and returns the main window of the application.
// store may be nil, in which case the factory editor and theme persistence are disabled.
func BuildUI(app fyne.App, items *catalog.ItemCatalog, recipes *catalog.RecipeCatalog, store *data.Store, log *zap.Logger) fyne.Window {
	v := &view{
		app:       app,
		log:       log,
		items:     items,
		recipes:   recipes,
		store:     store,
		recipeIDs: map[string]string{},
	}

	v.win = app.NewWindow("Satisfactory Catalog")
	v.win.SetMaster()

	v.allItems = items.Items()
	v.visibleItems = v.allItems

	v.statusLabel = widget.NewLabel(fmt.Sprintf("%d items, %d recipes. Select an item.", items.Len(), recipes.Len()))
	v.statusLabel.Wrapping = fyne.TextWrapWord

	v.searchEntry = widget.NewEntry()
	v.searchEntry.SetPlaceHolder("Search items...")
	v.searchEntry.OnChanged = func(q string) {
		v.visibleItems = filterItems(v.allItems, q)
		v.itemList.UnselectAll()
		v.itemList.Refresh()
	}

	v.itemList = widget.NewList(
		func() int { return len(v.visibleItems) },
		func() fyne.CanvasObject { return widget.NewLabel("Item") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(v.visibleItems) {
				obj.(*widget.Label).SetText(itemLabel(v.visibleItems[id]))
			}
		},
	)
	v.itemList.OnSelected = func(id widget.ListItemID) {
		if id < len(v.visibleItems) {
			v.showItem(v.visibleItems[id].ClassName)
		}
	}

	v.hierarchyContainer = container.NewVBox()
	v.recipeTable = v.initRecipeTable()

	factoryPanel := v.buildFactoryPanel()

	stored := v.applyStoredTheme()
	v.themeButton = widget.NewButton(themeButtonLabel(stored), v.toggleTheme)
	rawButton := widget.NewButton("Toggle raw input", v.toggleCurrentRawInput)
	if store == nil {
		v.themeButton.Disable()
		rawButton.Disable()
	}

	leftPanel := container.NewBorder(
		container.NewVBox(widget.NewLabel("Items:"), v.searchEntry),
		container.NewGridWithColumns(2, rawButton, v.themeButton),
		nil, nil,
		v.itemList,
	)

	treeLabel := widget.NewLabelWithStyle("Recipes producing this item:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	treeScroll := container.NewScroll(v.hierarchyContainer)

	tableLabel := widget.NewLabelWithStyle("Recipe summary:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	tableScroll := container.NewVScroll(v.recipeTable)

	resultsSplit := container.NewVSplit(
		container.NewBorder(treeLabel, nil, nil, nil, treeScroll),
		container.NewBorder(tableLabel, nil, nil, nil, tableScroll),
	)
	resultsSplit.Offset = 0.55

	rightSplit := container.NewVSplit(resultsSplit, factoryPanel)
	rightSplit.Offset = 0.7

	rightPanel := container.NewBorder(v.statusLabel, nil, nil, nil, rightSplit)

	split := container.NewHSplit(leftPanel, rightPanel)
	split.Offset = 0.30

	v.win.SetContent(split)
	v.win.Resize(fyne.NewSize(1000, 700))
	v.win.SetFixedSize(false)

	return v.win
}

// showItem displays the recipes producing class.
func (v *view) showItem(class string) {
	if v.currentItem == class {
		return
	}
	v.currentItem = class

	producers := v.recipes.ProducersOf(class)
	v.updateRecipeTable(producers)

	v.hierarchyContainer.Objects = RenderLines(formatHierarchy(buildRecipeTree(producers))).Objects
	v.hierarchyContainer.Refresh()

	if v.recipeSelect != nil {
		v.setRecipeChoices(producers)
	}

	name := class
	if it, ok := v.items.Lookup(class); ok {
		name = it.DisplayName
	}
	consumers := len(v.recipes.ConsumersOf(class))
	switch {
	case len(producers) == 0:
		v.statusLabel.SetText(fmt.Sprintf("%s: no recipe produces it; used by %d recipes.", name, consumers))
	default:
		v.statusLabel.SetText(fmt.Sprintf("%s: %d producing recipes, used by %d recipes.", name, len(producers), consumers))
	}
	v.log.Debug("item selected", zap.String("item", class), zap.Int("producers", len(producers)))
}

// selectItem selects class in the item list, clearing the search if it hides the item.
func (v *view) selectItem(class string) {
	idx := indexOfItem(v.visibleItems, class)
	if idx < 0 {
		v.searchEntry.SetText("")
		v.visibleItems = v.allItems
		v.itemList.Refresh()
		idx = indexOfItem(v.visibleItems, class)
	}
	if idx < 0 {
		v.statusLabel.SetText(fmt.Sprintf("Error: item %s is not in the catalog.", class))
		return
	}
	v.itemList.Select(idx)
	v.showItem(class)
}

func indexOfItem(items []catalog.Item, class string) int {
	for i, it := range items {
		if it.ClassName == class {
			return i
		}
	}
	return -1
}
