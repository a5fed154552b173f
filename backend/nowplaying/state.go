package nowplaying

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	LinePrefix       = "🎵 "
	NoMetadataTitle  = "Playing (no metadata)"
	NothingPlaying   = "Nothing playing"
	UnknownTitle     = "(unknown)"
	SessionErrorLine = LinePrefix + "(unable to read media session)"
)

// MediaProvider reports the currently active media session.
// A nil Session with a nil error means nothing is playing.
// Implementations may block on I/O; they are only ever called
// from the poller's goroutine.
type MediaProvider interface {
	CurrentSession(ctx context.Context) (*Session, error)
}

// Session is a snapshot of the active media session as read from the provider.
type Session struct {
	Title  string
	Artist string
	Album  string
	Player string // human readable player identity, if known

	// Artwork is nil if the player exposes no art or it could not be read.
	Artwork []byte
}

// TrackState is the part of a Session that decides whether the display
// must change. Equality is structural.
type TrackState struct {
	Title  string
	Artist string
}

// errorState stands in for the previous TrackState while the provider is failing.
// It can never be produced by Normalize, since Normalize always yields a
// non-empty title.
var errorState = TrackState{}

// Update is a pending change for the rendering context.
type Update struct {
	DisplayLine string
	Artwork     []byte
}

// Normalize trims and NFC-normalizes the session metadata and substitutes
// the fixed placeholder titles. The returned artwork is nil when nothing is playing.
func Normalize(s *Session) (TrackState, []byte) {
	if s == nil {
		return TrackState{Title: NothingPlaying}, nil
	}
	st := TrackState{
		Title:  cleanText(s.Title),
		Artist: cleanText(s.Artist),
	}
	if st.Title == "" && st.Artist == "" {
		st.Title = NoMetadataTitle
	}
	return st, s.Artwork
}

// DisplayLine decorates a title for display.
func DisplayLine(title string) string {
	if title == "" {
		return LinePrefix + UnknownTitle
	}
	return LinePrefix + title
}

func cleanText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
