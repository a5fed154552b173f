package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	ColorNamePanelBackground fyne.ThemeColorName = "PanelBackground"
	ColorNameArtPlaceholder  fyne.ThemeColorName = "ArtPlaceholder"

	SizeNameTrackLine    fyne.ThemeSizeName = "trackLine"
	SizeNameControlIcon  fyne.ThemeSizeName = "controlIcon"
	SizeNameControlSpace fyne.ThemeSizeName = "controlSpace"
)

var (
	panelBackground = color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	chip            = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}
	chipActive      = color.NRGBA{R: 0x2a, G: 0x2a, B: 0x2a, A: 0xff}
	artPlaceholder  = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
)

// PanelTheme is the fixed high-contrast dark theme of the remote panel.
// Everything is sized up for legibility inside a VR headset.
type PanelTheme struct{}

var _ fyne.Theme = (*PanelTheme)(nil)

func NewPanelTheme() *PanelTheme {
	return &PanelTheme{}
}

func (*PanelTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case ColorNamePanelBackground, theme.ColorNameBackground:
		return panelBackground
	case ColorNameArtPlaceholder:
		return artPlaceholder
	case theme.ColorNameButton:
		return chip
	case theme.ColorNameHover, theme.ColorNamePressed:
		return chipActive
	case theme.ColorNameForeground:
		return color.White
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

func (*PanelTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (*PanelTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (*PanelTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case SizeNameTrackLine:
		return 24
	case SizeNameControlIcon:
		return 34
	case SizeNameControlSpace:
		return 12
	case theme.SizeNameText:
		return 16
	}
	return theme.DefaultTheme().Size(name)
}
