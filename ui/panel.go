package ui

import (
	"context"
	"image/color"
	"time"

	"github.com/dweymouth/vrmusicremote/backend"
	"github.com/dweymouth/vrmusicremote/backend/mediasession"
	"github.com/dweymouth/vrmusicremote/backend/nowplaying"
	"github.com/dweymouth/vrmusicremote/ui/marquee"
	"github.com/dweymouth/vrmusicremote/ui/theme"
	"github.com/dweymouth/vrmusicremote/ui/util"
	"github.com/dweymouth/vrmusicremote/ui/widgets"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	fynetheme "fyne.io/fyne/v2/theme"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
)

const loadingLine = nowplaying.LinePrefix + "(loading...)"

// Panel is the single small window showing the now-playing line with
// artwork above a grid of media controls.
type Panel struct {
	Window fyne.Window

	App *backend.App

	engine     *marquee.Engine
	trackLine  *canvas.Text
	art        *widgets.Artwork
	background *theme.ThemedRectangle

	tintBackground bool
	showArtwork    bool
	renderEvery    chan time.Duration
}

func NewPanel(fyneApp fyne.App, displayAppName string, app *backend.App) *Panel {
	cfg := app.Config()
	p := &Panel{
		App:            app,
		Window:         fyneApp.NewWindow(displayAppName),
		tintBackground: cfg.Application.TintBackground,
		showArtwork:    cfg.Application.ShowArtwork,
		renderEvery:    make(chan time.Duration, 1),
	}
	fyneApp.Settings().SetTheme(theme.NewPanelTheme())

	p.trackLine = canvas.NewText(loadingLine, fynetheme.Color(fynetheme.ColorNameForeground))
	p.trackLine.TextStyle.Bold = true
	p.trackLine.TextSize = fynetheme.Size(theme.SizeNameTrackLine)
	p.engine = marquee.New(MarqueeConfig(cfg.Marquee), util.NewFyneScheduler(app.Context()), p.setTrackLine)

	p.art = widgets.NewArtwork(cfg.Artwork.SizePx)
	p.art.OnDominantColor = p.onDominantColor
	p.art.Hidden = !cfg.Application.ShowArtwork

	p.background = theme.NewThemedRectangle(theme.ColorNamePanelBackground)

	header := container.NewBorder(nil, nil, p.art, nil, container.NewPadded(p.trackLine))
	content := container.NewStack(p.background,
		container.NewPadded(container.NewBorder(header, nil, nil, nil, p.buildControls(app.Keys))))
	p.Window.SetContent(fynetooltip.AddWindowToolTipLayer(content, p.Window.Canvas()))
	p.Window.Resize(fyne.NewSize(float32(cfg.Application.WindowWidth), float32(cfg.Application.WindowHeight)))
	p.Window.SetFixedSize(false)

	p.Window.Canvas().SetOnTypedKey(func(e *fyne.KeyEvent) {
		if e.Name == fyne.KeyEscape {
			p.Window.Close()
		}
	})
	p.Window.SetCloseIntercept(p.Quit)

	app.OnReactivate = func() { fyne.Do(p.Show) }
	app.OnExit = func() { fyne.Do(p.Quit) }
	app.OnConfigReload = func(c *backend.Config) { fyne.Do(func() { p.applyConfig(c) }) }

	p.renderEvery <- cfg.RenderInterval()
	go p.runRenderLoop(app.Context())
	return p
}

func (p *Panel) buildControls(keys mediasession.KeySender) fyne.CanvasObject {
	send := func(k mediasession.MediaKey) func() {
		return func() { keys.Send(k) }
	}
	btn := func(icon fyne.Resource, tip string, k mediasession.MediaKey) fyne.CanvasObject {
		return widgets.NewControlButton(icon, tip, send(k))
	}
	grid := container.NewGridWithColumns(3,
		btn(fynetheme.MediaSkipPreviousIcon(), "Previous", mediasession.Previous),
		btn(fynetheme.MediaPlayIcon(), "Play/Pause", mediasession.PlayPause),
		btn(fynetheme.MediaSkipNextIcon(), "Next", mediasession.Next),
		btn(fynetheme.VolumeDownIcon(), "Volume down", mediasession.VolumeDown),
		btn(fynetheme.VolumeMuteIcon(), "Mute", mediasession.Mute),
		btn(fynetheme.VolumeUpIcon(), "Volume up", mediasession.VolumeUp),
	)
	return container.New(layout.NewCustomPaddedLayout(fynetheme.Size(theme.SizeNameControlSpace), 0, 0, 0), grid)
}

// runRenderLoop wakes the UI thread at the render interval to drain the
// mailbox. The interval can be changed through renderEvery.
func (p *Panel) runRenderLoop(ctx context.Context) {
	t := time.NewTicker(<-p.renderEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case d := <-p.renderEvery:
			t.Reset(d)
		case <-t.C:
			fyne.Do(p.drain)
		}
	}
}

// drain takes the latest pending update, if any, and applies it.
// Runs on the UI thread.
func (p *Panel) drain() {
	u, ok := p.App.Mailbox.Take()
	if ok {
		p.apply(u)
	}
}

// apply shows an update. The marquee restarts only when the line changes.
func (p *Panel) apply(u nowplaying.Update) {
	p.engine.Show(u.DisplayLine)
	if p.showArtwork {
		p.art.SetArtwork(u.Artwork)
	}
}

func (p *Panel) setTrackLine(s string) {
	p.trackLine.Text = s
	p.trackLine.Refresh()
}

func (p *Panel) onDominantColor(c color.Color) {
	if !p.tintBackground {
		c = nil
	}
	p.background.SetTint(c)
}

func (p *Panel) applyConfig(c *backend.Config) {
	// marquee settings take effect at the next line change
	p.engine.SetConfig(MarqueeConfig(c.Marquee))
	p.tintBackground = c.Application.TintBackground
	if !p.tintBackground {
		p.background.SetTint(nil)
	}
	if p.showArtwork != c.Application.ShowArtwork {
		p.showArtwork = c.Application.ShowArtwork
		p.art.Hidden = !p.showArtwork
		if !p.showArtwork {
			p.art.SetArtwork(nil)
		} else if u, ok := p.App.Mailbox.Peek(); ok {
			p.art.SetArtwork(u.Artwork)
		}
		p.Window.Content().Refresh()
	}
	select {
	case p.renderEvery <- c.RenderInterval():
	default:
	}
}

func (p *Panel) Show() {
	p.Window.Show()
	p.Window.RequestFocus()
}

func (p *Panel) ShowAndRun() {
	p.Window.ShowAndRun()
}

// Quit stops the marquee, records the window size and closes the app.
func (p *Panel) Quit() {
	p.engine.Stop()
	size := p.Window.Canvas().Size()
	p.App.SetWindowSize(int(size.Width), int(size.Height))
	fynetooltip.DestroyWindowToolTipLayer(p.Window.Canvas())
	fyne.CurrentApp().Quit()
}

// MarqueeConfig converts the marquee section of the config file.
func MarqueeConfig(c backend.MarqueeConfig) marquee.Config {
	return marquee.Config{
		Disabled:     !c.Enabled,
		Width:        c.WindowChars,
		StartDelay:   time.Duration(c.StartPauseMS) * time.Millisecond,
		TickInterval: time.Duration(c.TickMS) * time.Millisecond,
		Gap:          c.Gap,
	}
}
