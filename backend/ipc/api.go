package ipc

const (
	PingPath       = "/ping"
	PlayPausePath  = "/transport/playpause"
	PreviousPath   = "/transport/previous"
	NextPath       = "/transport/next"
	VolumeUpPath   = "/volume/up"
	VolumeDownPath = "/volume/down"
	MutePath       = "/volume/mute"
	NowPlayingPath = "/now-playing"
	ShowPath       = "/window/show"
	QuitPath       = "/window/quit"
)

type Response struct {
	Error string `json:"error"`
}

// NowPlaying is the body of a GET to NowPlayingPath.
type NowPlaying struct {
	DisplayLine string `json:"displayLine"`
	HasArtwork  bool   `json:"hasArtwork"`
}
