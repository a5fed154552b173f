package util

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queue collects posted callbacks so the test goroutine can play
// the part of the rendering context.
type queue chan func()

func (q queue) post(f func()) { q <- f }

func (q queue) runNext(t *testing.T) {
	t.Helper()
	select {
	case f := <-q:
		f()
	case <-time.After(2 * time.Second):
		t.Fatal("nothing was posted")
	}
}

func TestScheduler_Fires(t *testing.T) {
	q := make(queue, 4)
	s := NewScheduler(context.Background(), q.post)

	var ran atomic.Int32
	tm := s.AfterFunc(time.Millisecond, func() { ran.Add(1) })
	q.runNext(t)

	assert.EqualValues(t, 1, ran.Load())
	assert.False(t, tm.Stop(), "stopping a fired timer is a no-op")
}

func TestScheduler_StopBeforeFire(t *testing.T) {
	q := make(queue, 4)
	s := NewScheduler(context.Background(), q.post)

	tm := s.AfterFunc(time.Hour, func() { t.Error("stopped timer ran") })
	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
}

func TestScheduler_StopAfterQueued(t *testing.T) {
	q := make(queue, 4)
	s := NewScheduler(context.Background(), q.post)

	tm := s.AfterFunc(time.Millisecond, func() { t.Error("callback ran after Stop") })
	var f func()
	select {
	case f = <-q:
	case <-time.After(2 * time.Second):
		t.Fatal("nothing was posted")
	}
	// the timer has fired and its callback is waiting on the rendering context
	assert.True(t, tm.Stop())
	f()
}

func TestScheduler_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := make(queue, 4)
	s := NewScheduler(ctx, q.post)

	s.AfterFunc(time.Millisecond, func() { t.Error("callback ran after cancel") })
	var f func()
	select {
	case f = <-q:
	case <-time.After(2 * time.Second):
		t.Fatal("nothing was posted")
	}
	cancel()
	f()

	tm2 := s.AfterFunc(0, func() { t.Error("timer armed after cancel") })
	assert.False(t, tm2.Stop())
	time.Sleep(10 * time.Millisecond)
	require.Empty(t, q)
}
