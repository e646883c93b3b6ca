package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"go.uber.org/zap"

	"sfcatalog/data"
)

// variantTheme pins the default theme to one variant regardless of the OS setting.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, t.variant)
}

func themeFor(t data.Theme) fyne.Theme {
	if t == data.ThemeDark {
		return variantTheme{Theme: theme.DefaultTheme(), variant: theme.VariantDark}
	}
	return variantTheme{Theme: theme.DefaultTheme(), variant: theme.VariantLight}
}

func themeButtonLabel(t data.Theme) string {
	if t == data.ThemeDark {
		return "Light mode"
	}
	return "Dark mode"
}

// applyStoredTheme sets the app theme from the store, light without a store.
func (v *view) applyStoredTheme() data.Theme {
	t := data.ThemeLight
	if v.store != nil {
		t = v.store.Theme()
	}
	v.app.Settings().SetTheme(themeFor(t))
	return t
}

// toggleTheme flips and persists the theme.
func (v *view) toggleTheme() {
	if v.store == nil {
		return
	}
	next, err := v.store.ToggleTheme()
	if err != nil {
		v.log.Warn("could not save theme", zap.Error(err))
	}
	v.app.Settings().SetTheme(themeFor(next))
	v.themeButton.SetText(themeButtonLabel(next))
}
