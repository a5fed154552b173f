// Package console renders the now-playing line to a terminal or a plain
// output stream, for running without a window.
package console

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/dweymouth/vrmusicremote/backend/nowplaying"
	"github.com/dweymouth/vrmusicremote/ui/marquee"
	"github.com/dweymouth/vrmusicremote/ui/util"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Surface owns a marquee engine and writes what it displays to w.
// All of its state is confined to the goroutine running Run.
type Surface struct {
	w   io.Writer
	cfg marquee.Config

	// redraw the line in place rather than printing each line once
	terminal bool

	events   chan func()
	engine   *marquee.Engine
	last     string
	lastCols int
}

func New(w io.Writer, cfg marquee.Config) *Surface {
	s := &Surface{w: w, cfg: cfg, events: make(chan func(), 8)}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		s.terminal = term.IsTerminal(int(f.Fd()))
	}
	return s
}

// Run drains mb every interval until ctx is cancelled.
func (s *Surface) Run(ctx context.Context, mb *nowplaying.Mailbox, every time.Duration) {
	cfg := s.cfg
	if !s.terminal {
		// a log file gets each line once, never the scroll frames
		cfg.Disabled = true
	}
	post := func(f func()) {
		select {
		case s.events <- f:
		case <-ctx.Done():
		}
	}
	s.engine = marquee.New(cfg, util.NewScheduler(ctx, post), s.render)

	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			s.engine.Stop()
			if s.terminal && s.lastCols > 0 {
				fmt.Fprintln(s.w)
			}
			return
		case <-t.C:
			if u, ok := mb.Take(); ok {
				s.engine.Show(u.DisplayLine)
			}
		case f := <-s.events:
			f()
		}
	}
}

func (s *Surface) render(line string) {
	var err error
	if s.terminal {
		cols := runewidth.StringWidth(line)
		_, err = fmt.Fprint(s.w, "\r"+runewidth.FillRight(line, max(cols, s.lastCols)))
		s.lastCols = cols
	} else if line != s.last {
		_, err = fmt.Fprintln(s.w, line)
	}
	s.last = line
	if err != nil {
		log.Printf("error writing now playing line: %v", err)
	}
}
