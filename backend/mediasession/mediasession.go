// Package mediasession reads the system's active media session and sends
// transport and volume commands to it.
package mediasession

import (
	"context"
	"errors"
	"log"

	"github.com/dweymouth/vrmusicremote/backend/nowplaying"
)

var (
	ErrNoPlayer    = errors.New("no media player found")
	errUnsupported = errors.New("not supported on this platform")
)

type MediaKey int

const (
	Next MediaKey = iota
	Previous
	PlayPause
	VolumeUp
	VolumeDown
	Mute
)

func (k MediaKey) String() string {
	switch k {
	case Next:
		return "next"
	case Previous:
		return "previous"
	case PlayPause:
		return "play-pause"
	case VolumeUp:
		return "volume-up"
	case VolumeDown:
		return "volume-down"
	case Mute:
		return "mute"
	}
	return "unknown"
}

// KeySender delivers a media key press. Send never blocks the caller
// on the command's completion and never reports failure.
type KeySender interface {
	Send(k MediaKey)
}

// NoSession is a MediaProvider for platforms with no readable media session.
// It always reports that nothing is playing.
type NoSession struct{}

var _ nowplaying.MediaProvider = NoSession{}

func (NoSession) CurrentSession(context.Context) (*nowplaying.Session, error) {
	return nil, nil
}

// LogSender is a KeySender that only logs.
type LogSender struct{}

func (LogSender) Send(k MediaKey) {
	log.Printf("media key %s: no key sender available", k)
}
