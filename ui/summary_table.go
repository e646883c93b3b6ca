package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"sfcatalog/catalog"
)

//
// This file is responsible for the recipe table of the selected item.
// – initRecipeTable() returns a *widget.Table configured with four columns.
// – updateRecipeTable(recipes) rebuilds recipeData & refreshes.
//

var recipeHeader = []string{"Recipe", "Products", "Ingredients", "Cycle"}

// recipeRows builds the table rows, header first.
func recipeRows(recipes []catalog.Recipe) [][]string {
	rows := [][]string{recipeHeader}
	for _, r := range recipes {
		rows = append(rows, []string{
			r.DisplayName,
			formatProducts(r.Products),
			formatIngredients(r.Ingredients),
			formatDuration(r.Duration),
		})
	}
	return rows
}

// initRecipeTable constructs the table and initializes recipeData with just the header row.
func (v *view) initRecipeTable() *widget.Table {
	v.recipeData = [][]string{recipeHeader}

	table := widget.NewTable(
		func() (int, int) {
			return len(v.recipeData), len(recipeHeader)
		},
		func() fyne.CanvasObject {
			lbl := widget.NewLabel("")
			lbl.Truncation = fyne.TextTruncateEllipsis
			return container.NewPadded(lbl)
		},
		func(id widget.TableCellID, cell fyne.CanvasObject) {
			cont := cell.(*fyne.Container)
			lbl := cont.Objects[0].(*widget.Label)
			if id.Row < len(v.recipeData) && id.Col < len(v.recipeData[id.Row]) {
				lbl.SetText(v.recipeData[id.Row][id.Col])
				lbl.TextStyle.Bold = id.Row == 0
				if id.Col == 3 && id.Row > 0 {
					lbl.Alignment = fyne.TextAlignTrailing
				} else {
					lbl.Alignment = fyne.TextAlignLeading
				}
			} else {
				lbl.SetText("")
			}
		},
	)
	table.SetColumnWidth(0, 200)
	table.SetColumnWidth(1, 200)
	table.SetColumnWidth(2, 320)
	table.SetColumnWidth(3, 80)
	return table
}

// updateRecipeTable shows recipes and refreshes the table.
func (v *view) updateRecipeTable(recipes []catalog.Recipe) {
	v.recipeData = recipeRows(recipes)
	v.recipeTable.Refresh()
}
