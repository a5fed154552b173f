// Package marquee renders a line of text into a fixed-width character
// window, scrolling it when it does not fit.
//
// An Engine is owned by a single rendering context: every method, and
// every callback its Scheduler runs, must execute on that context.
// The Engine keeps its own timers and is independent of how often the
// displayed line is updated.
package marquee

import (
	"strings"
	"time"
)

const (
	DefaultWidth        = 36
	DefaultStartDelay   = 3500 * time.Millisecond
	DefaultTickInterval = 350 * time.Millisecond
	DefaultGap          = "   •   "
)

// Scheduler arms one-shot timers whose callbacks run on the rendering context.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a handle to an armed callback. Stopping a timer that has
// already fired or been stopped is a no-op.
type Timer interface {
	Stop() bool
}

type State int

const (
	Idle State = iota
	Static
	WaitingToScroll
	Scrolling
)

func (s State) String() string {
	switch s {
	case Static:
		return "Static"
	case WaitingToScroll:
		return "WaitingToScroll"
	case Scrolling:
		return "Scrolling"
	}
	return "Idle"
}

type Config struct {
	Disabled     bool
	Width        int
	StartDelay   time.Duration
	TickInterval time.Duration
	Gap          string
}

func DefaultConfig() Config {
	return Config{
		Width:        DefaultWidth,
		StartDelay:   DefaultStartDelay,
		TickInterval: DefaultTickInterval,
		Gap:          DefaultGap,
	}
}

// session lives for as long as one line is displayed.
type session struct {
	source string
	buffer []rune // source + gap + source
	cursor int
}

type Engine struct {
	cfg     Config
	sched   Scheduler
	display func(string)

	state   State
	sess    *session
	shown   string
	start   Timer
	tick    Timer
	gen     uint64 // bumped whenever timers are cancelled
	stopped bool
}

// New creates an Engine that writes display text through display.
func New(cfg Config, sched Scheduler, display func(string)) *Engine {
	return &Engine{cfg: sanitize(cfg), sched: sched, display: display}
}

// SetConfig replaces the configuration. It applies from the next Start.
func (e *Engine) SetConfig(cfg Config) {
	e.cfg = sanitize(cfg)
}

func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) State() State { return e.state }

// Shown returns the text most recently written to the display.
func (e *Engine) Shown() string { return e.shown }

// Source returns the text of the current session, if any.
func (e *Engine) Source() string {
	if e.sess == nil {
		return ""
	}
	return e.sess.source
}

// Start begins a new session for text, replacing any previous one.
// Pending timers are cancelled before the new state is computed.
func (e *Engine) Start(text string) {
	if e.stopped {
		return
	}
	e.cancelTimers()

	if e.cfg.Disabled {
		e.sess = &session{source: text}
		e.state = Static
		e.show(text)
		return
	}

	text = strings.TrimSpace(text)
	runes := []rune(text)
	e.sess = &session{source: text}
	if len(runes) <= e.cfg.Width {
		e.state = Static
		e.show(text)
		return
	}

	e.sess.buffer = []rune(text + e.cfg.Gap + text)
	e.state = WaitingToScroll
	e.show(string(runes[:e.cfg.Width]))
	gen := e.gen
	e.start = e.sched.AfterFunc(e.cfg.StartDelay, func() {
		if gen != e.gen {
			return
		}
		e.start = nil
		e.state = Scrolling
		e.advance(gen)
	})
}

// Show displays text, starting a new session only if text differs from
// the current session's source. Redelivering the same line leaves a
// running scroll untouched. It reports whether a new session started.
func (e *Engine) Show(text string) bool {
	if e.sess != nil && strings.TrimSpace(text) == strings.TrimSpace(e.sess.source) {
		return false
	}
	e.Start(text)
	return !e.stopped
}

// Stop ends the session and cancels all timers. The Engine ignores
// every later Start or timer callback.
func (e *Engine) Stop() {
	e.cancelTimers()
	e.stopped = true
	e.sess = nil
	e.state = Idle
}

func (e *Engine) advance(gen uint64) {
	if gen != e.gen || e.sess == nil || e.stopped {
		return
	}
	s := e.sess
	e.show(Window(s.buffer, s.cursor%len(s.buffer), e.cfg.Width))
	s.cursor++
	e.tick = e.sched.AfterFunc(e.cfg.TickInterval, func() {
		e.advance(gen)
	})
}

func (e *Engine) cancelTimers() {
	e.gen++
	if e.start != nil {
		e.start.Stop()
		e.start = nil
	}
	if e.tick != nil {
		e.tick.Stop()
		e.tick = nil
	}
}

func (e *Engine) show(s string) {
	e.shown = s
	if e.display != nil {
		e.display(s)
	}
}

// Window returns width runes of buf starting at start, right-padded
// with spaces if buf ends first.
func Window(buf []rune, start, width int) string {
	if start < 0 || start > len(buf) {
		start = 0
	}
	end := min(start+width, len(buf))
	s := string(buf[start:end])
	if pad := width - (end - start); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func sanitize(c Config) Config {
	d := DefaultConfig()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.StartDelay < 0 {
		c.StartDelay = d.StartDelay
	}
	if c.TickInterval <= 0 {
		c.TickInterval = d.TickInterval
	}
	return c
}
