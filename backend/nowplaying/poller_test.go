package nowplaying

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	sess *Session
	err  error
}

// scriptedProvider returns its results in order, repeating the last one.
type scriptedProvider struct {
	mu      sync.Mutex
	results []result
	calls   int
}

func (s *scriptedProvider) CurrentSession(context.Context) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	if i >= len(s.results) {
		i = len(s.results) - 1
	}
	s.calls++
	r := s.results[i]
	return r.sess, r.err
}

func (s *scriptedProvider) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var errFlaky = errors.New("bus hiccup")

func playing(title, artist string) result {
	return result{sess: &Session{Title: title, Artist: artist}}
}

// pollAll runs one Poll per scripted result and collects the display
// lines that reached the mailbox, in order.
func pollAll(t *testing.T, results ...result) []string {
	t.Helper()
	mb := &Mailbox{}
	p := NewPoller(&scriptedProvider{results: results}, mb, time.Millisecond)
	var lines []string
	for range results {
		p.Poll(context.Background())
		if u, ok := mb.Take(); ok {
			lines = append(lines, u.DisplayLine)
		}
	}
	return lines
}

func TestPoller_FirstResultAlwaysCounts(t *testing.T) {
	lines := pollAll(t, result{})
	assert.Equal(t, []string{"🎵 Nothing playing"}, lines)
}

func TestPoller_RepeatedIdenticalPollsAreIdempotent(t *testing.T) {
	lines := pollAll(t,
		playing("Song", "Band"),
		playing("Song", "Band"),
		playing(" Song ", "Band\n"), // normalizes equal
		playing("Song", "Other Band"),
		playing("Song", "Other Band"),
		playing("Next", "Other Band"),
	)
	assert.Equal(t, []string{"🎵 Song", "🎵 Song", "🎵 Next"}, lines)
}

func TestPoller_ArtistChangeAloneIsAChange(t *testing.T) {
	mb := &Mailbox{}
	p := NewPoller(&scriptedProvider{results: []result{
		playing("Song", "A"),
		playing("Song", "B"),
	}}, mb, time.Millisecond)

	assert.True(t, p.Poll(context.Background()))
	assert.True(t, p.Poll(context.Background()))
}

func TestPoller_Placeholders(t *testing.T) {
	tests := []struct {
		name string
		sess *Session
		want string
	}{
		{"no session", nil, "🎵 Nothing playing"},
		{"no metadata", &Session{Title: "  ", Artist: ""}, "🎵 Playing (no metadata)"},
		{"artist only", &Session{Artist: "Band"}, "🎵 (unknown)"},
		{"title", &Session{Title: "Song"}, "🎵 Song"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := pollAll(t, result{sess: tt.sess})
			require.Len(t, lines, 1)
			assert.Equal(t, tt.want, lines[0])
		})
	}
}

func TestPoller_ErrorThenRecovery(t *testing.T) {
	lines := pollAll(t,
		playing("Song", "Band"),
		result{err: errFlaky},
		result{err: errFlaky},
		playing("Song", "Band"), // same track as before the failure
	)
	assert.Equal(t, []string{"🎵 Song", SessionErrorLine, "🎵 Song"}, lines)
}

func TestPoller_ErrorAsFirstResult(t *testing.T) {
	lines := pollAll(t,
		result{err: errFlaky},
		playing("Song", "Band"),
	)
	assert.Equal(t, []string{SessionErrorLine, "🎵 Song"}, lines)
}

func TestPoller_ErrorUpdateCarriesNoArtwork(t *testing.T) {
	mb := &Mailbox{}
	p := NewPoller(&scriptedProvider{results: []result{
		{sess: &Session{Title: "Song", Artwork: []byte{1, 2, 3}}},
		{err: errFlaky},
	}}, mb, time.Millisecond)

	p.Poll(context.Background())
	u, ok := mb.Take()
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, u.Artwork)

	p.Poll(context.Background())
	u, ok = mb.Take()
	require.True(t, ok)
	assert.Nil(t, u.Artwork)
}

func TestPoller_NothingPlayingClearsArtwork(t *testing.T) {
	mb := &Mailbox{}
	p := NewPoller(&scriptedProvider{results: []result{
		{sess: &Session{Title: "Song", Artwork: []byte{1}}},
		{},
	}}, mb, time.Millisecond)

	p.Poll(context.Background())
	mb.Take()
	p.Poll(context.Background())
	u, ok := mb.Take()
	require.True(t, ok)
	assert.Equal(t, "🎵 Nothing playing", u.DisplayLine)
	assert.Nil(t, u.Artwork)
}

func TestPoller_CancelledProviderCallIsNotAnError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	mb := &Mailbox{}
	p := NewPoller(&scriptedProvider{results: []result{{err: context.Canceled}}}, mb, time.Millisecond)

	assert.False(t, p.Poll(ctx))
	_, ok := mb.Take()
	assert.False(t, ok)
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	prov := &scriptedProvider{results: []result{playing("Song", "Band")}}
	mb := &Mailbox{}
	p := NewPoller(prov, mb, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return prov.Calls() >= 3 }, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}

	u, ok := mb.Take()
	require.True(t, ok)
	assert.Equal(t, "🎵 Song", u.DisplayLine)
	// unchanged polls after the first never wrote again
	_, ok = mb.Take()
	assert.False(t, ok)
}

func TestPoller_RunKeepsGoingThroughFailures(t *testing.T) {
	prov := &scriptedProvider{results: []result{
		{err: errFlaky}, {err: errFlaky}, {err: errFlaky}, playing("Back", "Again"),
	}}
	mb := &Mailbox{}
	p := NewPoller(prov, mb, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	require.Eventually(t, func() bool {
		u, ok := mb.Peek()
		return ok && u.DisplayLine == "🎵 Back"
	}, time.Second, time.Millisecond)
}

func TestNormalize_NFC(t *testing.T) {
	// "é" as e + combining acute accent
	st, _ := Normalize(&Session{Title: "Cafe\u0301"})
	assert.Equal(t, "Caf\u00e9", st.Title)
	assert.Len(t, []rune(st.Title), 4)
}

func TestPoller_SetInterval(t *testing.T) {
	p := NewPoller(&scriptedProvider{}, &Mailbox{}, 0)
	assert.Equal(t, DefaultPollInterval, p.Interval())

	p.SetInterval(2 * time.Second)
	assert.Equal(t, 2*time.Second, p.Interval())

	p.SetInterval(-1)
	assert.Equal(t, DefaultPollInterval, p.Interval())
}
