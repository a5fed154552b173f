package nowplaying

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"
)

const DefaultPollInterval = 500 * time.Millisecond

// Poller repeatedly queries a MediaProvider and posts an Update to its
// Mailbox only when the normalized track state changes, or when the
// provider transitions into or out of failure.
// The poller never touches UI state.
type Poller struct {
	provider MediaProvider
	out      *Mailbox
	interval atomic.Int64 // nanoseconds

	prev  TrackState
	known bool // false until the first result has been accepted
}

func NewPoller(provider MediaProvider, out *Mailbox, interval time.Duration) *Poller {
	p := &Poller{provider: provider, out: out}
	p.SetInterval(interval)
	return p
}

// SetInterval changes the polling period, effective after the current sleep.
func (p *Poller) SetInterval(d time.Duration) {
	if d <= 0 {
		d = DefaultPollInterval
	}
	p.interval.Store(int64(d))
}

func (p *Poller) Interval() time.Duration {
	return time.Duration(p.interval.Load())
}

// Run polls until ctx is cancelled. An in-flight provider call is
// allowed to complete; cancellation is observed between iterations
// and while sleeping. Provider failures never end the loop.
func (p *Poller) Run(ctx context.Context) {
	t := time.NewTimer(0)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		if ctx.Err() != nil {
			return
		}
		p.Poll(ctx)
		t.Reset(p.Interval())
	}
}

// Poll performs a single iteration and reports whether an update was posted.
func (p *Poller) Poll(ctx context.Context) bool {
	sess, err := p.provider.CurrentSession(ctx)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			// shutting down, not a provider fault
			return false
		}
		if p.known && p.prev == errorState {
			return false
		}
		log.Printf("failed to read media session: %v", err)
		p.accept(errorState, Update{DisplayLine: SessionErrorLine})
		return true
	}

	cur, art := Normalize(sess)
	if p.known && cur == p.prev {
		return false
	}
	if p.known && p.prev == errorState {
		log.Println("media session readable again")
	}
	p.accept(cur, Update{DisplayLine: DisplayLine(cur.Title), Artwork: art})
	return true
}

func (p *Poller) accept(st TrackState, u Update) {
	p.prev = st
	p.known = true
	p.out.Put(u)
}
