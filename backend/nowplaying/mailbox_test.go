package nowplaying

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailbox_Empty(t *testing.T) {
	var mb Mailbox
	_, ok := mb.Take()
	assert.False(t, ok)
	_, ok = mb.Peek()
	assert.False(t, ok)
}

func TestMailbox_LatestWins(t *testing.T) {
	var mb Mailbox
	mb.Put(Update{DisplayLine: "first", Artwork: []byte{1}})
	mb.Put(Update{DisplayLine: "second"})

	u, ok := mb.Take()
	require.True(t, ok)
	assert.Equal(t, "second", u.DisplayLine)
	assert.Nil(t, u.Artwork)

	_, ok = mb.Take()
	assert.False(t, ok, "take must clear the slot")
}

func TestMailbox_PeekSurvivesTake(t *testing.T) {
	var mb Mailbox
	mb.Put(Update{DisplayLine: "line"})
	mb.Take()

	u, ok := mb.Peek()
	require.True(t, ok)
	assert.Equal(t, "line", u.DisplayLine)
}

func TestMailbox_ConcurrentWriterReader(t *testing.T) {
	var mb Mailbox
	const n = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			mb.Put(Update{DisplayLine: fmt.Sprint(i)})
		}
	}()

	seen := 0
	last := -1
	for seen < n && last != n-1 {
		if u, ok := mb.Take(); ok {
			var v int
			fmt.Sscan(u.DisplayLine, &v)
			// updates are observed in order, possibly with gaps
			require.Greater(t, v, last)
			last = v
		}
		seen++
	}
	wg.Wait()

	if last != n-1 {
		u, ok := mb.Take()
		require.True(t, ok)
		assert.Equal(t, fmt.Sprint(n-1), u.DisplayLine)
	}
}
