package util

import (
	"image"
	"image/color"
	"log"
	"sync/atomic"

	"github.com/dweymouth/vrmusicremote/backend/artwork"

	"fyne.io/fyne/v2"
)

// ArtLoader decodes encoded artwork off the UI thread and delivers the
// result to OnLoaded on the UI thread. Any subsequent call to Load
// supersedes a previous load that has not completed, so a slow decode
// can never overwrite newer art.
type ArtLoader struct {
	Size int

	// OnLoaded receives the decoded image and its dominant color,
	// or nils to clear the artwork.
	OnLoaded func(image.Image, color.Color)

	post func(func())
	gen  atomic.Uint64
}

func NewArtLoader(size int, onLoaded func(image.Image, color.Color)) *ArtLoader {
	return newArtLoader(size, onLoaded, fyne.Do)
}

func newArtLoader(size int, onLoaded func(image.Image, color.Color), post func(func())) *ArtLoader {
	return &ArtLoader{Size: size, OnLoaded: onLoaded, post: post}
}

// Load must be called on the UI thread. Empty data clears immediately.
func (l *ArtLoader) Load(b []byte) {
	gen := l.gen.Add(1)
	if len(b) == 0 {
		l.callOnLoaded(nil, nil)
		return
	}
	go func() {
		img, err := artwork.DecodeAndResize(b, l.Size)
		var dominant color.Color
		if err != nil {
			log.Printf("Error decoding artwork: %s", err.Error())
		} else {
			dominant = artwork.DominantColor(img)
		}
		l.post(func() {
			if l.gen.Load() != gen {
				return
			}
			l.callOnLoaded(img, dominant)
		})
	}()
}

func (l *ArtLoader) callOnLoaded(img image.Image, c color.Color) {
	if l.OnLoaded != nil {
		l.OnLoaded(img, c)
	}
}
