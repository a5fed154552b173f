package marquee

import (
	"sort"
	"time"
)

// ManualScheduler is a Scheduler driven by an explicit clock.
// Callbacks run synchronously inside Advance, in due order.
// It is not safe for concurrent use.
type ManualScheduler struct {
	now    time.Duration
	seq    int
	timers []*manualTimer
	armed  int
}

type manualTimer struct {
	due     time.Duration
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (m *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	m.seq++
	m.armed++
	t := &manualTimer{due: m.now + d, seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that falls due.
func (m *ManualScheduler) Advance(d time.Duration) {
	target := m.now + d
	for {
		t := m.nextDue(target)
		if t == nil {
			break
		}
		m.now = t.due
		t.fired = true
		t.f()
	}
	m.now = target
	m.compact()
}

// Pending returns the number of armed timers that have neither fired nor been stopped.
func (m *ManualScheduler) Pending() int {
	n := 0
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// Armed returns the total number of timers ever armed.
func (m *ManualScheduler) Armed() int { return m.armed }

func (m *ManualScheduler) Now() time.Duration { return m.now }

func (m *ManualScheduler) nextDue(limit time.Duration) *manualTimer {
	var live []*manualTimer
	for _, t := range m.timers {
		if !t.stopped && !t.fired && t.due <= limit {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].due == live[j].due {
			return live[i].seq < live[j].seq
		}
		return live[i].due < live[j].due
	})
	return live[0]
}

func (m *ManualScheduler) compact() {
	keep := m.timers[:0]
	for _, t := range m.timers {
		if !t.stopped && !t.fired {
			keep = append(keep, t)
		}
	}
	m.timers = keep
}
