package ipc

import (
	"encoding/json"
	"errors"
	"net/http"
)

var errNoNowPlaying = errors.New("nothing has been read from the media session yet")

// RemoteHandler receives transport and volume commands.
// Each method returns once the command is dispatched.
type RemoteHandler interface {
	Next()
	Previous()
	PlayPause()
	VolumeUp()
	VolumeDown()
	Mute()
}

type NowPlayingSource interface {
	// NowPlaying returns the line currently shown, or false before the
	// first media session read.
	NowPlaying() (NowPlaying, bool)
}

type WindowHandler interface {
	Show()
	Quit()
}

type serverImpl struct {
	remote RemoteHandler
	np     NowPlayingSource
	wd     WindowHandler
}

func NewServer(remote RemoteHandler, np NowPlayingSource, wd WindowHandler) *http.Server {
	s := serverImpl{remote: remote, np: np, wd: wd}
	return &http.Server{
		Handler: s.createHandler(),
	}
}

func (s *serverImpl) createHandler() http.Handler {
	m := http.NewServeMux()
	m.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("The given path is not valid"))
	})
	m.HandleFunc(PingPath, s.makeSimpleEndpointHandler(func() {}))
	m.HandleFunc(ShowPath, s.makeSimpleEndpointHandler(s.wd.Show))
	m.HandleFunc(QuitPath, s.makeSimpleEndpointHandler(func() {
		go s.wd.Quit()
	}))
	m.HandleFunc(PlayPausePath, s.makeSimpleEndpointHandler(s.remote.PlayPause))
	m.HandleFunc(PreviousPath, s.makeSimpleEndpointHandler(s.remote.Previous))
	m.HandleFunc(NextPath, s.makeSimpleEndpointHandler(s.remote.Next))
	m.HandleFunc(VolumeUpPath, s.makeSimpleEndpointHandler(s.remote.VolumeUp))
	m.HandleFunc(VolumeDownPath, s.makeSimpleEndpointHandler(s.remote.VolumeDown))
	m.HandleFunc(MutePath, s.makeSimpleEndpointHandler(s.remote.Mute))
	m.HandleFunc(NowPlayingPath, func(w http.ResponseWriter, r *http.Request) {
		np, ok := s.np.NowPlaying()
		if !ok {
			s.writeErr(w, errNoNowPlaying)
			return
		}
		b, err := json.Marshal(&np)
		if err != nil {
			s.writeErr(w, err)
			return
		}
		w.Write(b)
	})
	return m
}

func (s *serverImpl) makeSimpleEndpointHandler(f func()) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		f()
		s.writeOK(w)
	}
}

func (s *serverImpl) writeOK(w http.ResponseWriter) (int, error) {
	var r Response
	b, err := json.Marshal(&r)
	if err != nil {
		return 0, err
	}
	return w.Write(b)
}

func (s *serverImpl) writeErr(w http.ResponseWriter, err error) (int, error) {
	r := Response{Error: err.Error()}
	b, err := json.Marshal(&r)
	if err != nil {
		return 0, err
	}
	w.WriteHeader(http.StatusInternalServerError)
	return w.Write(b)
}
