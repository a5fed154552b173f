//go:build linux

package mediasession

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/dweymouth/vrmusicremote/backend/nowplaying"
	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

const (
	mprisPath       = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	mprisIface      = "org.mpris.MediaPlayer2"
	mprisPlayerFace = "org.mpris.MediaPlayer2.Player"
	propertiesGet   = "org.freedesktop.DBus.Properties.Get"
	propertiesSet   = "org.freedesktop.DBus.Properties.Set"
	listNames       = "org.freedesktop.DBus.ListNames"
)

var (
	_ nowplaying.MediaProvider = (*MPRIS)(nil)
	_ KeySender                = (*MPRIS)(nil)
)

// MPRIS reads the active session from MPRIS players on the D-Bus session bus
// and sends them transport and volume commands.
type MPRIS struct {
	conn *dbus.Conn
	art  *ArtFetcher

	mu        sync.Mutex
	preferred string
	current   string // bus name of the last selected player
	mute      muteState
}

func NewMPRIS(art *ArtFetcher, preferredPlayer string) (*MPRIS, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connecting to session bus: %w", err)
	}
	return &MPRIS{conn: conn, art: art, preferred: preferredPlayer}, nil
}

func (m *MPRIS) Close() error {
	return m.conn.Close()
}

// SetPreferredPlayer changes which player wins when several are active.
func (m *MPRIS) SetPreferredPlayer(p string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preferred = p
}

func (m *MPRIS) CurrentSession(ctx context.Context) (*nowplaying.Session, error) {
	p, err := m.selectPlayer(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil || p.Status == types.PlaybackStatusStopped {
		return nil, nil
	}

	v, err := m.getProperty(ctx, p.BusName, mprisPlayerFace, "Metadata")
	if err != nil {
		return nil, fmt.Errorf("reading metadata from %s: %w", p.BusName, err)
	}
	raw, _ := v.Value().(map[string]dbus.Variant)
	md := parseMetadata(raw)

	s := &nowplaying.Session{
		Title:  md.Title,
		Artist: strings.Join(md.Artist, ", "),
		Album:  md.Album,
		Player: p.Identity,
	}
	if m.art != nil {
		s.Artwork = m.art.Fetch(ctx, md.ArtUrl)
	}
	return s, nil
}

func (m *MPRIS) Send(k MediaKey) {
	go func() {
		if err := m.send(context.Background(), k); err != nil {
			log.Printf("error sending %s to media player: %v", k, err)
		}
	}()
}

func (m *MPRIS) send(ctx context.Context, k MediaKey) error {
	m.mu.Lock()
	dest := m.current
	m.mu.Unlock()
	if dest == "" {
		p, err := m.selectPlayer(ctx)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrNoPlayer
		}
		dest = p.BusName
	}

	obj := m.conn.Object(dest, mprisPath)
	switch k {
	case Next:
		return obj.CallWithContext(ctx, mprisPlayerFace+".Next", 0).Err
	case Previous:
		return obj.CallWithContext(ctx, mprisPlayerFace+".Previous", 0).Err
	case PlayPause:
		return obj.CallWithContext(ctx, mprisPlayerFace+".PlayPause", 0).Err
	}

	v, err := m.getProperty(ctx, dest, mprisPlayerFace, "Volume")
	if err != nil {
		return fmt.Errorf("reading volume: %w", err)
	}
	vol, _ := v.Value().(float64)
	m.mu.Lock()
	vol, m.mute = m.mute.applyKey(k, dest, vol)
	m.mu.Unlock()
	return m.setProperty(ctx, dest, mprisPlayerFace, "Volume", vol)
}

func (m *MPRIS) selectPlayer(ctx context.Context) (*playerInfo, error) {
	var names []string
	if err := m.conn.BusObject().CallWithContext(ctx, listNames, 0).Store(&names); err != nil {
		return nil, fmt.Errorf("listing bus names: %w", err)
	}

	var players []playerInfo
	for _, name := range names {
		if !strings.HasPrefix(name, mprisBusPrefix) {
			continue
		}
		p := playerInfo{BusName: name}
		if v, err := m.getProperty(ctx, name, mprisPlayerFace, "PlaybackStatus"); err == nil {
			s, _ := v.Value().(string)
			p.Status = types.PlaybackStatus(s)
		} else if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if v, err := m.getProperty(ctx, name, mprisIface, "Identity"); err == nil {
			p.Identity, _ = v.Value().(string)
		}
		players = append(players, p)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	best := choosePlayer(players, m.preferred)
	if best == nil {
		m.current = ""
		return nil, nil
	}
	m.current = best.BusName
	return best, nil
}

func (m *MPRIS) getProperty(ctx context.Context, dest, iface, prop string) (dbus.Variant, error) {
	var v dbus.Variant
	err := m.conn.Object(dest, mprisPath).CallWithContext(ctx, propertiesGet, 0, iface, prop).Store(&v)
	return v, err
}

func (m *MPRIS) setProperty(ctx context.Context, dest, iface, prop string, val any) error {
	return m.conn.Object(dest, mprisPath).CallWithContext(ctx, propertiesSet, 0, iface, prop, dbus.MakeVariant(val)).Err
}
