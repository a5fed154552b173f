package backend

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dweymouth/vrmusicremote/backend/mediasession"
	"github.com/dweymouth/vrmusicremote/backend/nowplaying"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingKeys struct {
	mu   sync.Mutex
	keys []mediasession.MediaKey
}

func (r *recordingKeys) Send(k mediasession.MediaKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, k)
}

func TestApp_ReadConfig_FirstLaunchWritesDefaults(t *testing.T) {
	a := &App{configDir: t.TempDir()}
	a.readConfig()

	assert.True(t, a.IsFirstLaunch())
	assert.Equal(t, DefaultConfig(), a.Config())
	_, err := os.Stat(filepath.Join(a.configDir, configFile))
	assert.NoError(t, err, "defaults are written for the user to edit")
}

func TestApp_ReadConfig_MalformedIsBackedUp(t *testing.T) {
	dir := t.TempDir()
	bad := []byte("[Marquee\nEnabled = ")
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFile), bad, 0644))

	a := &App{configDir: dir}
	a.readConfig()

	assert.False(t, a.IsFirstLaunch())
	assert.Equal(t, DefaultConfig(), a.Config())
	b, err := os.ReadFile(filepath.Join(dir, configFile+".bak"))
	require.NoError(t, err)
	assert.Equal(t, bad, b)
}

func TestApp_RemoteHandler(t *testing.T) {
	keys := &recordingKeys{}
	a := &App{Keys: keys}
	a.Previous()
	a.PlayPause()
	a.Next()
	a.VolumeDown()
	a.Mute()
	a.VolumeUp()

	assert.Equal(t, []mediasession.MediaKey{
		mediasession.Previous, mediasession.PlayPause, mediasession.Next,
		mediasession.VolumeDown, mediasession.Mute, mediasession.VolumeUp,
	}, keys.keys)
}

func TestApp_NowPlaying(t *testing.T) {
	a := &App{Mailbox: &nowplaying.Mailbox{}}
	_, ok := a.NowPlaying()
	assert.False(t, ok)

	a.Mailbox.Put(nowplaying.Update{DisplayLine: "🎵 Nude", Artwork: []byte{1}})
	a.Mailbox.Take()
	np, ok := a.NowPlaying()
	require.True(t, ok, "still reported after the UI has drained the mailbox")
	assert.Equal(t, "🎵 Nude", np.DisplayLine)
	assert.True(t, np.HasArtwork)
}

func TestApp_ApplyConfig(t *testing.T) {
	a := &App{config: DefaultConfig()}
	a.Poller = nowplaying.NewPoller(mediasession.NoSession{}, &nowplaying.Mailbox{}, time.Second)
	var reloaded *Config
	a.OnConfigReload = func(c *Config) { reloaded = c }

	c := DefaultConfig()
	c.Polling.IntervalMS = 1500
	a.applyConfig(c)

	assert.Same(t, c, a.Config())
	assert.Same(t, c, reloaded)
	assert.Equal(t, 1500*time.Millisecond, a.Poller.Interval())
}

func TestApp_SetWindowSizeCopiesConfig(t *testing.T) {
	orig := DefaultConfig()
	a := &App{config: orig}
	a.SetWindowSize(640, 300)

	assert.Equal(t, 640, a.Config().Application.WindowWidth)
	assert.Equal(t, 760, orig.Application.WindowWidth, "published configs are never mutated")
}

func TestHaveRemoteCommands(t *testing.T) {
	assert.False(t, HaveRemoteCommands())
	*FlagMute = true
	defer func() { *FlagMute = false }()
	assert.True(t, HaveRemoteCommands())
}
