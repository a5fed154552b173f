package nowplaying

import "sync"

// Mailbox is a single-slot, latest-wins handoff between the poller
// goroutine and the rendering context. A Put overwrites any update that
// has not been taken yet; intermediate states are never replayed.
type Mailbox struct {
	mu      sync.Mutex
	pending *Update

	// last put update, kept for Peek after the slot is drained
	latest    Update
	hasLatest bool
}

// Put stores u, replacing any pending update. Never blocks on the reader.
func (m *Mailbox) Put(u Update) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = &u
	m.latest = u
	m.hasLatest = true
}

// Take returns and clears the pending update, if any.
func (m *Mailbox) Take() (Update, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending == nil {
		return Update{}, false
	}
	u := *m.pending
	m.pending = nil
	return u, true
}

// Peek returns the most recently put update whether or not it has been taken.
func (m *Mailbox) Peek() (Update, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latest, m.hasLatest
}
