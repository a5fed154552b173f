package util

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dweymouth/vrmusicremote/ui/marquee"

	"fyne.io/fyne/v2"
)

// Scheduler runs marquee callbacks on the rendering context.
// Once its context is cancelled it arms no new timers, and
// callbacks already queued are dropped.
type Scheduler struct {
	ctx  context.Context
	post func(func())
}

var _ marquee.Scheduler = (*Scheduler)(nil)

// NewFyneScheduler returns a Scheduler whose callbacks run on the fyne UI thread.
func NewFyneScheduler(ctx context.Context) *Scheduler {
	return NewScheduler(ctx, fyne.Do)
}

// NewScheduler returns a Scheduler that hands due callbacks to post,
// which must run them on the rendering context.
func NewScheduler(ctx context.Context, post func(func())) *Scheduler {
	return &Scheduler{ctx: ctx, post: post}
}

func (s *Scheduler) AfterFunc(d time.Duration, f func()) marquee.Timer {
	t := &timer{}
	if s.ctx.Err() != nil {
		t.stopped.Store(true)
		return t
	}
	t.t = time.AfterFunc(d, func() {
		s.post(func() {
			// Stop may have run on the rendering context after
			// the timer fired but before this was dequeued
			if s.ctx.Err() != nil || !t.stopped.CompareAndSwap(false, true) {
				return
			}
			f()
		})
	})
	return t
}

type timer struct {
	t       *time.Timer
	stopped atomic.Bool // set once stopped or fired
}

func (t *timer) Stop() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	if t.t != nil {
		t.t.Stop()
	}
	return true
}
