package artwork

import (
	"bytes"
	"errors"
	"image"
	"image/color"

	"github.com/boxes-ltd/imaging"
	"github.com/cenkalti/dominantcolor"
)

const DefaultSize = 86

var ErrNoData = errors.New("no image data")

// DecodeAndResize decodes encoded image bytes (JPEG, PNG, GIF, BMP, TIFF)
// and scales the result to a size x size square using Lanczos resampling.
func DecodeAndResize(b []byte, size int) (image.Image, error) {
	if len(b) == 0 {
		return nil, ErrNoData
	}
	if size <= 0 {
		size = DefaultSize
	}
	img, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}
	return imaging.Resize(img, size, size, imaging.Lanczos), nil
}

// DominantColor returns the most prominent color of img.
func DominantColor(img image.Image) color.RGBA {
	return dominantcolor.Find(img)
}

// Tint blends c into base, keeping weight parts of c out of 255.
func Tint(base, c color.Color, weight uint8) color.NRGBA {
	br, bg, bb, _ := base.RGBA()
	cr, cg, cb, _ := c.RGBA()
	mix := func(b, c uint32) uint8 {
		b, c = b>>8, c>>8
		return uint8((b*uint32(255-weight) + c*uint32(weight)) / 255)
	}
	return color.NRGBA{R: mix(br, cr), G: mix(bg, cg), B: mix(bb, cb), A: 0xff}
}
