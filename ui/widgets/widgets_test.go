package widgets

import (
	"image"
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
)

func TestArtwork_SetAndClear(t *testing.T) {
	test.NewApp()
	a := NewArtwork(86)
	var dominant []color.Color
	a.OnDominantColor = func(c color.Color) { dominant = append(dominant, c) }

	assert.Equal(t, fyne.NewSquareSize(86), a.MinSize())
	assert.False(t, a.HasImage())

	a.setImage(image.NewNRGBA(image.Rect(0, 0, 86, 86)), color.White)
	assert.True(t, a.HasImage())

	a.SetArtwork(nil)
	assert.False(t, a.HasImage())
	assert.Equal(t, []color.Color{color.White, nil}, dominant)
}

func TestControlButton_Tapped(t *testing.T) {
	test.NewApp()
	taps := 0
	b := NewControlButton(theme.MediaPlayIcon(), "Play/Pause", func() { taps++ })
	w := test.NewWindow(b)
	defer w.Close()

	test.Tap(b)
	test.Tap(b)
	assert.Equal(t, 2, taps)
}

func TestControlButton_HoverChangesChip(t *testing.T) {
	test.NewApp()
	b := NewControlButton(theme.MediaSkipNextIcon(), "Next", nil)
	w := test.NewWindow(b)
	defer w.Close()

	idle := b.chip.FillColor
	b.MouseIn(&desktop.MouseEvent{})
	assert.Equal(t, theme.Color(theme.ColorNamePressed), b.chip.FillColor)
	b.MouseOut()
	assert.Equal(t, idle, b.chip.FillColor)

	test.Tap(b) // nil OnTapped is fine
}
