package theme

import (
	"image/color"

	"github.com/dweymouth/vrmusicremote/backend/artwork"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// defaultTintWeight is how much of the tint color shows, out of 255.
const defaultTintWeight = 56

// ThemedRectangle is a rectangle filled with a theme color,
// optionally blended with a tint color.
type ThemedRectangle struct {
	widget.BaseWidget

	rect *canvas.Rectangle

	ColorName fyne.ThemeColorName
	Tint      color.Color // nil for no tint
}

func NewThemedRectangle(colorName fyne.ThemeColorName) *ThemedRectangle {
	t := &ThemedRectangle{
		ColorName: colorName,
		rect:      canvas.NewRectangle(color.Transparent),
	}
	t.ExtendBaseWidget(t)
	t.updateFill()
	return t
}

// SetTint blends c into the fill, or removes the tint if c is nil.
func (t *ThemedRectangle) SetTint(c color.Color) {
	t.Tint = c
	t.Refresh()
}

func (t *ThemedRectangle) FillColor() color.Color {
	return t.rect.FillColor
}

func (t *ThemedRectangle) Refresh() {
	t.updateFill()
	t.BaseWidget.Refresh()
}

func (t *ThemedRectangle) updateFill() {
	settings := fyne.CurrentApp().Settings()
	base := settings.Theme().Color(t.ColorName, settings.ThemeVariant())
	if t.Tint != nil {
		t.rect.FillColor = artwork.Tint(base, t.Tint, defaultTintWeight)
	} else {
		t.rect.FillColor = base
	}
}

func (t *ThemedRectangle) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.rect)
}
