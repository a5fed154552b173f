package ipc

import (
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	mu    sync.Mutex
	calls []string
	np    *NowPlaying
	quit  chan struct{}
}

func (f *fakeRemote) record(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, s)
}

func (f *fakeRemote) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeRemote) Next()       { f.record("next") }
func (f *fakeRemote) Previous()   { f.record("previous") }
func (f *fakeRemote) PlayPause()  { f.record("playpause") }
func (f *fakeRemote) VolumeUp()   { f.record("volup") }
func (f *fakeRemote) VolumeDown() { f.record("voldown") }
func (f *fakeRemote) Mute()       { f.record("mute") }
func (f *fakeRemote) Show()       { f.record("show") }
func (f *fakeRemote) Quit()       { close(f.quit) }

func (f *fakeRemote) NowPlaying() (NowPlaying, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.np == nil {
		return NowPlaying{}, false
	}
	return *f.np, true
}

func startServer(t *testing.T, f *fakeRemote) *Client {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := NewServer(f, f, f)
	go srv.Serve(l)
	t.Cleanup(func() { srv.Close() })

	addr := l.Addr().String()
	return newClient(func() (net.Conn, error) { return net.Dial("tcp", addr) })
}

func TestClientServer_Commands(t *testing.T) {
	f := &fakeRemote{quit: make(chan struct{})}
	c := startServer(t, f)

	require.NoError(t, c.Ping())
	require.NoError(t, c.Previous())
	require.NoError(t, c.PlayPause())
	require.NoError(t, c.Next())
	require.NoError(t, c.VolumeDown())
	require.NoError(t, c.Mute())
	require.NoError(t, c.VolumeUp())
	require.NoError(t, c.Show())

	assert.Equal(t, []string{"previous", "playpause", "next", "voldown", "mute", "volup", "show"}, f.Calls())

	require.NoError(t, c.Quit())
	select {
	case <-f.quit:
	case <-time.After(2 * time.Second):
		t.Fatal("quit was not delivered")
	}
}

func TestClientServer_NowPlaying(t *testing.T) {
	f := &fakeRemote{}
	c := startServer(t, f)

	_, err := c.NowPlaying()
	assert.ErrorContains(t, err, "nothing has been read")

	want := NowPlaying{DisplayLine: "🎵 Teardrop", HasArtwork: true}
	f.mu.Lock()
	f.np = &want
	f.mu.Unlock()
	np, err := c.NowPlaying()
	require.NoError(t, err)
	assert.Equal(t, want, np)
}
