package ui

import (
	"fmt"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/validation"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"sfcatalog/catalog"
	"sfcatalog/data"
)

//
// Factory editor: a list of saved factories and a form to create or update one
// for the selected item. Factories refer to items and recipes by ClassName.
//

// recipeOptions returns select labels for the recipes producing itemClass and
// the label → recipe ClassName map.
func recipeOptions(recipes []catalog.Recipe) ([]string, map[string]string) {
	labels := make([]string, 0, len(recipes))
	ids := make(map[string]string, len(recipes))
	for _, r := range recipes {
		label := r.DisplayName
		if _, taken := ids[label]; taken {
			label = fmt.Sprintf("%s (%s)", r.DisplayName, r.ClassName)
		}
		ids[label] = r.ClassName
		labels = append(labels, label)
	}
	return labels, ids
}

// factoryLabel is the text shown for a factory in the list.
func factoryLabel(f data.Factory, items *catalog.ItemCatalog) string {
	output := f.OutputItemClass
	if it, ok := items.Lookup(f.OutputItemClass); ok {
		output = it.DisplayName
	}
	label := fmt.Sprintf("%s: %.2f/min %s", f.Name, f.OutputCount, output)
	if f.Floor.Valid {
		label += fmt.Sprintf(" (floor %d)", f.Floor.Int64)
	}
	return label
}

// reloadFactories refreshes the factory list from the store.
func (v *view) reloadFactories() {
	list, err := v.store.ListFactories()
	if err != nil {
		v.log.Warn("could not load factories", zap.Error(err))
		v.statusLabel.SetText(fmt.Sprintf("Error loading factories: %v", err))
		return
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	v.factories = list
	v.factoryList.Refresh()
}

// setRecipeChoices fills the recipe select with the producers of the selected item.
func (v *view) setRecipeChoices(recipes []catalog.Recipe) {
	labels, ids := recipeOptions(recipes)
	v.recipeIDs = ids
	v.recipeSelect.Options = labels
	v.recipeSelect.ClearSelected()
	if len(labels) == 1 {
		v.recipeSelect.SetSelected(labels[0])
	}
	v.recipeSelect.Refresh()
}

func (v *view) saveFactory() {
	if v.currentItem == "" {
		v.statusLabel.SetText("Error: select an item first.")
		return
	}
	recipeClass, ok := v.recipeIDs[v.recipeSelect.Selected]
	if !ok {
		v.statusLabel.SetText("Error: select a recipe.")
		return
	}
	count, floor, err := parseFactoryInput(v.nameEntry.Text, v.countEntry.Text, v.floorEntry.Text)
	if err != nil {
		v.statusLabel.SetText("Error: " + err.Error())
		return
	}
	f := data.Factory{
		ID:              v.selectedFac,
		Name:            v.nameEntry.Text,
		OutputItemClass: v.currentItem,
		RecipeClass:     recipeClass,
		OutputCount:     count,
		Floor:           floor,
	}
	if err := catalog.CheckFactory(v.items, v.recipes, f); err != nil {
		v.statusLabel.SetText("Error: " + err.Error())
		return
	}
	saved, err := v.store.SaveFactory(f)
	if err != nil {
		v.log.Warn("could not save factory", zap.String("name", f.Name), zap.Error(err))
		v.statusLabel.SetText(fmt.Sprintf("Error saving factory: %v", err))
		return
	}
	v.selectedFac = saved.ID
	v.statusLabel.SetText(fmt.Sprintf("Saved factory %s.", saved.Name))
	v.reloadFactories()
}

func (v *view) deleteFactory() {
	if v.selectedFac == "" {
		v.statusLabel.SetText("Error: select a factory to delete.")
		return
	}
	name := v.store.GetFactoryNameByID(v.selectedFac)
	if err := v.store.DeleteFactory(v.selectedFac); err != nil {
		v.statusLabel.SetText(fmt.Sprintf("Error deleting factory: %v", err))
		return
	}
	v.selectedFac = ""
	v.factoryList.UnselectAll()
	v.statusLabel.SetText(fmt.Sprintf("Deleted factory %s.", name))
	v.reloadFactories()
}

// loadFactoryIntoForm selects the factory's item and recipe and fills the form.
func (v *view) loadFactoryIntoForm(f data.Factory) {
	v.selectedFac = f.ID
	v.selectItem(f.OutputItemClass)
	for label, class := range v.recipeIDs {
		if class == f.RecipeClass {
			v.recipeSelect.SetSelected(label)
		}
	}
	v.nameEntry.SetText(f.Name)
	v.countEntry.SetText(fmt.Sprintf("%g", f.OutputCount))
	if f.Floor.Valid {
		v.floorEntry.SetText(fmt.Sprintf("%d", f.Floor.Int64))
	} else {
		v.floorEntry.SetText("")
	}
}

// buildFactoryPanel returns the factory editor, or a notice when there is no store.
func (v *view) buildFactoryPanel() fyne.CanvasObject {
	if v.store == nil {
		lbl := widget.NewLabel("Factory persistence is unavailable (no database connection).")
		lbl.Wrapping = fyne.TextWrapWord
		return lbl
	}

	v.recipeSelect = widget.NewSelect(nil, nil)
	v.recipeSelect.PlaceHolder = "Select recipe..."

	v.nameEntry = widget.NewEntry()
	v.nameEntry.SetPlaceHolder("Factory name...")
	v.countEntry = widget.NewEntry()
	v.countEntry.SetPlaceHolder("Items per minute...")
	v.countEntry.Validator = validation.NewRegexp(`^\d+(\.\d+)?$`, "Number > 0")
	v.floorEntry = widget.NewEntry()
	v.floorEntry.SetPlaceHolder("Floor (optional)")

	v.factoryList = widget.NewList(
		func() int { return len(v.factories) },
		func() fyne.CanvasObject { return widget.NewLabel("Factory") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(v.factories) {
				obj.(*widget.Label).SetText(factoryLabel(v.factories[id], v.items))
			}
		},
	)
	v.factoryList.OnSelected = func(id widget.ListItemID) {
		if id < len(v.factories) {
			v.loadFactoryIntoForm(v.factories[id])
		}
	}

	newButton := widget.NewButton("New", func() {
		v.selectedFac = ""
		v.factoryList.UnselectAll()
		v.nameEntry.SetText("")
		v.countEntry.SetText("")
		v.floorEntry.SetText("")
	})
	saveButton := widget.NewButton("Save factory", v.saveFactory)
	deleteButton := widget.NewButton("Delete", v.deleteFactory)

	form := container.NewVBox(
		widget.NewLabel("Recipe:"),
		v.recipeSelect,
		container.NewGridWithColumns(3, v.nameEntry, v.countEntry, v.floorEntry),
		container.NewGridWithColumns(3, newButton, saveButton, deleteButton),
	)

	v.reloadFactories()
	title := widget.NewLabelWithStyle("Factories:", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	return container.NewBorder(title, form, nil, nil, v.factoryList)
}
