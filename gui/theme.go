//go:build gui

package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// overlayTheme styles the splash window as a meter rather than an app:
// near-black flat background, no shadows, and padding tight enough that
// the bars sit flush with the window edge.
type overlayTheme struct{}

func (o *overlayTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground, theme.ColorNameOverlayBackground:
		return color.RGBA{10, 10, 12, 255}
	case theme.ColorNameForeground:
		return color.RGBA{200, 200, 200, 255}
	case theme.ColorNameShadow:
		return color.Transparent
	case theme.ColorNameSeparator:
		return color.RGBA{10, 10, 12, 255}
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (o *overlayTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (o *overlayTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (o *overlayTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 2
	case theme.SizeNameInnerPadding:
		return 2
	}
	return theme.DefaultTheme().Size(name)
}
