package mediasession

import (
	"strings"

	"github.com/charlievieth/strcase"
	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

const (
	mprisBusPrefix = "org.mpris.MediaPlayer2."

	// VolumeStep is the change applied by one volume key press, on a 0-1 scale.
	VolumeStep = 0.05
)

type playerInfo struct {
	BusName  string
	Identity string
	Status   types.PlaybackStatus
}

// shortName is the bus name without the MPRIS prefix,
// e.g. "vlc.instance1234" for "org.mpris.MediaPlayer2.vlc.instance1234".
func (p playerInfo) shortName() string {
	return strings.TrimPrefix(p.BusName, mprisBusPrefix)
}

func (p playerInfo) matches(preferred string) bool {
	return strcase.EqualFold(p.Identity, preferred) ||
		strcase.HasPrefix(p.shortName(), preferred)
}

// choosePlayer picks the player whose session is shown and controlled.
// Players matching preferred win over the rest. Within a group a Playing
// player beats a Paused one, which beats any other, ties going to the
// earlier entry.
func choosePlayer(players []playerInfo, preferred string) *playerInfo {
	if preferred != "" {
		var matching []playerInfo
		for _, p := range players {
			if p.matches(preferred) {
				matching = append(matching, p)
			}
		}
		if best := bestByStatus(matching); best != nil {
			return best
		}
	}
	return bestByStatus(players)
}

func bestByStatus(players []playerInfo) *playerInfo {
	rank := func(s types.PlaybackStatus) int {
		switch s {
		case types.PlaybackStatusPlaying:
			return 2
		case types.PlaybackStatusPaused:
			return 1
		}
		return 0
	}
	var best *playerInfo
	for i := range players {
		if best == nil || rank(players[i].Status) > rank(best.Status) {
			best = &players[i]
		}
	}
	return best
}

// nextVolume applies a volume key to the current volume. mutedVolume is the
// volume saved by a previous Mute, or negative if not muted. Any volume key
// unmutes first.
func nextVolume(k MediaKey, vol, mutedVolume float64) (newVol, newMuted float64) {
	if mutedVolume >= 0 {
		if k == Mute {
			return mutedVolume, -1
		}
		vol = mutedVolume
	}
	switch k {
	case VolumeUp:
		vol = min(vol+VolumeStep, 1)
	case VolumeDown:
		vol = max(vol-VolumeStep, 0)
	case Mute:
		return 0, vol
	}
	return vol, -1
}

// muteState is the volume a player had before a Mute, tied to that
// player's bus name so it is never restored onto another player.
type muteState struct {
	player string
	volume float64
}

func (s muteState) savedFor(player string) float64 {
	if s.player != player {
		return -1
	}
	return s.volume
}

// applyKey is nextVolume for the given player. It returns the new volume
// and the mute state to keep.
func (s muteState) applyKey(k MediaKey, player string, vol float64) (float64, muteState) {
	newVol, saved := nextVolume(k, vol, s.savedFor(player))
	if saved < 0 {
		return newVol, muteState{}
	}
	return newVol, muteState{player: player, volume: saved}
}

func parseMetadata(raw map[string]dbus.Variant) types.Metadata {
	var md types.Metadata
	if v, ok := raw["xesam:title"]; ok {
		md.Title, _ = v.Value().(string)
	}
	if v, ok := raw["xesam:album"]; ok {
		md.Album, _ = v.Value().(string)
	}
	if v, ok := raw["mpris:artUrl"]; ok {
		md.ArtUrl, _ = v.Value().(string)
	}
	if v, ok := raw["xesam:artist"]; ok {
		switch a := v.Value().(type) {
		case []string:
			md.Artist = a
		case string:
			// some players send a plain string
			md.Artist = []string{a}
		}
	}
	return md
}
