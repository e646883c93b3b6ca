// ui/tree_renderer.go
package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

//
// This file takes a []lineInfo (from tree_formatter.go) and turns it into a Fyne
// container of colored canvas.Text segments. Guides are drawn in a neutral color;
// the node text is colored by what the line describes.
//

var guideColor = color.RGBA{R: 140, G: 140, B: 140, A: 255}

// kindColors colors the node text by nodeKind.
var kindColors = map[nodeKind]color.Color{
	kindRecipe:     color.RGBA{R: 102, G: 178, B: 255, A: 255}, // blue
	kindSection:    color.RGBA{R: 200, G: 200, B: 200, A: 255}, // grey
	kindProduct:    color.RGBA{R: 102, G: 220, B: 102, A: 255}, // green
	kindIngredient: color.RGBA{R: 255, G: 170, B: 80, A: 255},  // orange
}

func monoText(s string, c color.Color) *canvas.Text {
	txt := canvas.NewText(s, c)
	txt.TextStyle = fyne.TextStyle{Monospace: true}
	return txt
}

// RenderLines lays out each line as an HBox of guide segments, the branch symbol
// and the node text, stacked in a VBox.
func RenderLines(lines []lineInfo) *fyne.Container {
	box := container.NewVBox()

	for _, ln := range lines {
		var segments []fyne.CanvasObject
		depth := len(ln.PrefixParts) - 1

		for lvl := 0; lvl < depth; lvl++ {
			if ln.PrefixParts[lvl] {
				segments = append(segments, monoText("    ", guideColor))
			} else {
				segments = append(segments, monoText("│   ", guideColor))
			}
		}

		branchSymbol := "├── "
		if ln.IsLast {
			branchSymbol = "└── "
		}
		segments = append(segments, monoText(branchSymbol, guideColor))

		textColor, ok := kindColors[ln.Kind]
		if !ok {
			textColor = color.White
		}
		nodeTxt := monoText(ln.Text, textColor)
		nodeTxt.TextStyle.Bold = ln.Kind == kindRecipe
		segments = append(segments, nodeTxt)

		box.Add(container.NewHBox(segments...))
	}

	return box
}
