package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PaperTheme is a light, compact theme with a green accent for the Download action
type PaperTheme struct{}

// NewPaperTheme creates a new paper theme
func NewPaperTheme() fyne.Theme {
	return &PaperTheme{}
}

// Theme colors
var (
	ColorAccent     = color.RGBA{R: 46, G: 139, B: 87, A: 255}
	ColorError      = color.RGBA{R: 183, G: 28, B: 28, A: 255}
	ColorWarning    = color.RGBA{R: 230, G: 162, B: 0, A: 255}
	ColorLightBg    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ColorDarkBg     = color.RGBA{R: 24, G: 26, B: 27, A: 255}
	ColorLightInk   = color.RGBA{R: 33, G: 33, B: 33, A: 255}
	ColorDarkInk    = color.RGBA{R: 236, G: 236, B: 236, A: 255}
	ColorAccentSoft = color.RGBA{R: 46, G: 139, B: 87, A: 64}
)

// Color returns theme colors
func (t *PaperTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameSuccess, theme.ColorNameFocus:
		return ColorAccent
	case theme.ColorNameSelection:
		return ColorAccentSoft
	case theme.ColorNameError:
		return ColorError
	case theme.ColorNameWarning:
		return ColorWarning
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return ColorDarkBg
		}
		return ColorLightBg
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return ColorDarkInk
		}
		return ColorLightInk
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *PaperTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *PaperTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes; the title heading is enlarged, everything else is
// slightly tighter than the default theme
func (t *PaperTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 26
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	}

	return theme.DefaultTheme().Size(name)
}
