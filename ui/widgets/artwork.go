package widgets

import (
	"image"
	"image/color"

	myTheme "github.com/dweymouth/vrmusicremote/ui/theme"
	"github.com/dweymouth/vrmusicremote/ui/util"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Artwork shows the current cover art in a fixed square, over a
// placeholder fill when there is none.
type Artwork struct {
	widget.BaseWidget

	// Called on the UI thread with the dominant color of newly shown
	// art, or nil when the art is cleared.
	OnDominantColor func(color.Color)

	size        float32
	loader      *util.ArtLoader
	placeholder *myTheme.ThemedRectangle
	cover       *canvas.Image
}

func NewArtwork(sizePx int) *Artwork {
	a := newArtwork(sizePx)
	a.loader = util.NewArtLoader(sizePx, a.setImage)
	return a
}

func newArtwork(sizePx int) *Artwork {
	a := &Artwork{
		size:        float32(sizePx),
		placeholder: myTheme.NewThemedRectangle(myTheme.ColorNameArtPlaceholder),
		cover:       canvas.NewImageFromImage(nil),
	}
	a.ExtendBaseWidget(a)
	a.cover.FillMode = canvas.ImageFillContain
	a.cover.ScaleMode = canvas.ImageScaleSmooth
	a.cover.SetMinSize(fyne.NewSquareSize(a.size))
	a.cover.Hidden = true
	return a
}

// SetArtwork shows the encoded image b, or clears the art if b is empty
// or cannot be decoded. Must be called on the UI thread.
func (a *Artwork) SetArtwork(b []byte) {
	a.loader.Load(b)
}

// HasImage reports whether art is currently shown.
func (a *Artwork) HasImage() bool {
	return !a.cover.Hidden
}

func (a *Artwork) setImage(img image.Image, dominant color.Color) {
	a.cover.Image = img
	a.cover.Hidden = img == nil
	a.cover.Refresh()
	if a.OnDominantColor != nil {
		a.OnDominantColor(dominant)
	}
}

func (a *Artwork) MinSize() fyne.Size {
	return fyne.NewSquareSize(a.size)
}

func (a *Artwork) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(a.placeholder, a.cover))
}
