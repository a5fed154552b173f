//go:build !linux

package mediasession

import (
	"context"

	"github.com/dweymouth/vrmusicremote/backend/nowplaying"
)

// MPRIS is a stub for non-Linux platforms.
type MPRIS struct{}

// NewMPRIS always fails on non-Linux platforms.
func NewMPRIS(*ArtFetcher, string) (*MPRIS, error) {
	return nil, errUnsupported
}

func (*MPRIS) Close() error { return nil }

func (*MPRIS) SetPreferredPlayer(string) {}

func (*MPRIS) CurrentSession(context.Context) (*nowplaying.Session, error) {
	return nil, errUnsupported
}

func (*MPRIS) Send(MediaKey) {}
