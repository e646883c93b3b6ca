package ui

import (
	"fmt"

	"go.uber.org/zap"

	"sfcatalog/catalog"
	"sfcatalog/data"
)

// toggleRawInput adds class to inputs, or removes it when already present.
// The remaining entries keep their order.
func toggleRawInput(inputs []data.RawMaterialInput, class string) ([]data.RawMaterialInput, bool) {
	out := make([]data.RawMaterialInput, 0, len(inputs)+1)
	removed := false
	for _, in := range inputs {
		if in.ItemClass == class {
			removed = true
			continue
		}
		out = append(out, in)
	}
	if removed {
		return out, false
	}
	return append(out, data.RawMaterialInput{ItemClass: class}), true
}

// toggleCurrentRawInput marks or unmarks the selected item as a raw material input.
func (v *view) toggleCurrentRawInput() {
	if v.store == nil || v.currentItem == "" {
		v.statusLabel.SetText("Error: select an item first.")
		return
	}
	inputs, err := v.store.RawMaterialInputs()
	if err != nil {
		v.log.Warn("could not load raw material inputs", zap.Error(err))
		v.statusLabel.SetText(fmt.Sprintf("Error loading raw inputs: %v", err))
		return
	}
	next, added := toggleRawInput(inputs, v.currentItem)
	if err := catalog.CheckRawMaterialInputs(v.items, next); err != nil {
		v.statusLabel.SetText("Error: " + err.Error())
		return
	}
	if err := v.store.SetRawMaterialInputs(next); err != nil {
		v.statusLabel.SetText(fmt.Sprintf("Error saving raw inputs: %v", err))
		return
	}
	name := v.currentItem
	if it, ok := v.items.Lookup(v.currentItem); ok {
		name = it.DisplayName
	}
	if added {
		v.statusLabel.SetText(fmt.Sprintf("%s is now a raw material input (%d total).", name, len(next)))
	} else {
		v.statusLabel.SetText(fmt.Sprintf("%s is no longer a raw material input (%d total).", name, len(next)))
	}
}
