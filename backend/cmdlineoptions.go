package backend

import (
	"flag"

	"github.com/dweymouth/vrmusicremote/backend/ipc"
)

var (
	FlagPlayPause  = flag.Bool("play-pause", false, "toggle play/pause in the active media session")
	FlagPrevious   = flag.Bool("previous", false, "skip to the previous track")
	FlagNext       = flag.Bool("next", false, "skip to the next track")
	FlagVolumeUp   = flag.Bool("volume-up", false, "raise the volume one step")
	FlagVolumeDown = flag.Bool("volume-down", false, "lower the volume one step")
	FlagMute       = flag.Bool("mute", false, "toggle mute")
	FlagNowPlaying = flag.Bool("now-playing", false, "print the line shown by the running instance and exit")
	FlagConsole    = flag.Bool("console", false, "show now playing in the terminal instead of a window")
	FlagVersion    = flag.Bool("version", false, "print app version and exit")
	FlagHelp       = flag.Bool("help", false, "print command line options and exit")
)

type remoteCommand struct {
	flag *bool
	send func(*ipc.Client) error
}

var remoteCommands = []remoteCommand{
	{FlagPrevious, (*ipc.Client).Previous},
	{FlagPlayPause, (*ipc.Client).PlayPause},
	{FlagNext, (*ipc.Client).Next},
	{FlagVolumeDown, (*ipc.Client).VolumeDown},
	{FlagMute, (*ipc.Client).Mute},
	{FlagVolumeUp, (*ipc.Client).VolumeUp},
}

// HaveRemoteCommands reports whether any flag asks for a command to be
// forwarded to the running instance.
func HaveRemoteCommands() bool {
	if *FlagNowPlaying {
		return true
	}
	for _, c := range remoteCommands {
		if *c.flag {
			return true
		}
	}
	return false
}

// SendRemoteCommands forwards the requested commands to the running
// instance in a fixed order, stopping at the first failure.
func SendRemoteCommands(cli *ipc.Client) error {
	for _, c := range remoteCommands {
		if *c.flag {
			if err := c.send(cli); err != nil {
				return err
			}
		}
	}
	return nil
}
