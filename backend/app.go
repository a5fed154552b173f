package backend

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/20after4/configdir"
	"github.com/dweymouth/vrmusicremote/backend/ipc"
	"github.com/dweymouth/vrmusicremote/backend/mediasession"
	"github.com/dweymouth/vrmusicremote/backend/nowplaying"
)

const (
	configFile  = "config.toml"
	portableDir = "vrmusicremote_portable"
)

var ErrAnotherInstance = errors.New("another instance is running")

type App struct {
	Mailbox *nowplaying.Mailbox
	Poller  *nowplaying.Poller
	Keys    mediasession.KeySender

	// UI callbacks to be set in main
	OnReactivate func()
	OnExit       func()
	// Called from a background goroutine after the config file is reloaded.
	OnConfigReload func(*Config)

	appName       string
	appVersionTag string
	configDir     string
	portableMode  bool
	isFirstLaunch bool // set by config file reader

	cfgMu  sync.Mutex
	config *Config

	bgrndCtx  context.Context
	cancel    context.CancelFunc
	mpris     *mediasession.MPRIS
	ipcServer *http.Server
}

func (a *App) VersionTag() string {
	return a.appVersionTag
}

func StartupApp(appName, appVersionTag string) (*App, error) {
	var confDir string
	portableMode := false
	if p := checkPortablePath(); p != "" {
		confDir = path.Join(p, "config")
		portableMode = true
	} else {
		confDir = configdir.LocalConfig(appName)
	}
	// ensure config dir exists
	configdir.MakePath(confDir)

	a := &App{
		appName:       appName,
		appVersionTag: appVersionTag,
		configDir:     confDir,
		portableMode:  portableMode,
	}
	a.readConfig()

	cli, err := ipc.Connect()
	if err == nil && !a.Config().Application.AllowMultiInstance {
		log.Println("Another instance is running. Reactivating it...")
		cli.Show()
		return nil, ErrAnotherInstance
	}

	log.Printf("Starting %s...", appName)
	log.Printf("Using config dir: %s", confDir)

	a.bgrndCtx, a.cancel = context.WithCancel(context.Background())
	a.setupMediaSession()

	a.Mailbox = &nowplaying.Mailbox{}
	a.Poller = nowplaying.NewPoller(a.provider(), a.Mailbox, a.Config().PollInterval())
	go a.Poller.Run(a.bgrndCtx)

	// only one instance can own the socket
	if cli == nil {
		a.startIPCServer()
	}

	if err := WatchConfigFile(a.bgrndCtx, a.configFilePath(), a.applyConfig); err != nil {
		log.Printf("not watching config file: %v", err)
	}
	return a, nil
}

// Config returns the current config. It is replaced, never mutated,
// when the file is reloaded.
func (a *App) Config() *Config {
	a.cfgMu.Lock()
	defer a.cfgMu.Unlock()
	return a.config
}

// Context is cancelled when the app shuts down.
func (a *App) Context() context.Context {
	return a.bgrndCtx
}

func (a *App) IsFirstLaunch() bool {
	return a.isFirstLaunch
}

func (a *App) IsPortableMode() bool {
	return a.portableMode
}

func checkPortablePath() string {
	if p, err := os.Executable(); err == nil {
		pdirPath := path.Join(filepath.Dir(p), portableDir)
		if s, err := os.Stat(pdirPath); err == nil && s.IsDir() {
			return pdirPath
		}
	}
	return ""
}

func (a *App) readConfig() {
	cfgPath := a.configFilePath()
	var cfgExists bool
	if _, err := os.Stat(cfgPath); err == nil {
		cfgExists = true
	}
	a.isFirstLaunch = !cfgExists
	cfg, err := ReadConfigFile(cfgPath)
	if err != nil {
		cfg = DefaultConfig()
		if cfgExists {
			log.Printf("Error reading app config file: %v", err)
			backupCfgName := fmt.Sprintf("%s.bak", configFile)
			log.Printf("Config file may be malformed: copying to %s", backupCfgName)
			_ = copyFile(cfgPath, path.Join(a.configDir, backupCfgName))
		} else if err := cfg.WriteConfigFile(cfgPath); err != nil {
			log.Printf("error writing default config: %v", err)
		}
	}
	a.config = cfg
}

func (a *App) setupMediaSession() {
	cfg := a.Config()
	art := mediasession.NewArtFetcher(a.bgrndCtx, cfg.Artwork.CacheEntries,
		time.Duration(cfg.Artwork.FetchTimeoutSec)*time.Second)

	m, err := mediasession.NewMPRIS(art, cfg.Polling.PreferredPlayer)
	if err == nil {
		a.mpris = m
		a.Keys = m
		return
	}
	log.Printf("media session unavailable, showing nothing playing: %v", err)
	if keys, err := mediasession.NewSystemKeys(); err == nil {
		a.Keys = keys
	} else {
		a.Keys = mediasession.LogSender{}
	}
}

func (a *App) provider() nowplaying.MediaProvider {
	if a.mpris != nil {
		return a.mpris
	}
	return mediasession.NoSession{}
}

func (a *App) applyConfig(cfg *Config) {
	a.cfgMu.Lock()
	a.config = cfg
	a.cfgMu.Unlock()

	a.Poller.SetInterval(cfg.PollInterval())
	if a.mpris != nil {
		a.mpris.SetPreferredPlayer(cfg.Polling.PreferredPlayer)
	}
	if a.OnConfigReload != nil {
		a.OnConfigReload(cfg)
	}
}

func (a *App) startIPCServer() {
	listener, err := ipc.Listen()
	if err != nil {
		log.Printf("error starting IPC server: %v", err)
		return
	}
	a.ipcServer = ipc.NewServer(a, a, appWindowHandler{a})
	go a.ipcServer.Serve(listener)
}

// SetWindowSize records the panel size to be saved at shutdown.
func (a *App) SetWindowSize(w, h int) {
	a.cfgMu.Lock()
	defer a.cfgMu.Unlock()
	c := *a.config
	c.Application.WindowWidth = w
	c.Application.WindowHeight = h
	a.config = &c
}

func (a *App) Shutdown() {
	a.cancel()
	if a.ipcServer != nil {
		a.ipcServer.Close()
		ipc.DestroyConn()
	}
	if a.mpris != nil {
		a.mpris.Close()
	}
	a.SaveConfigFile()
}

func (a *App) SaveConfigFile() {
	if err := a.Config().WriteConfigFile(a.configFilePath()); err != nil {
		log.Printf("error saving config: %v", err)
	}
}

func (a *App) configFilePath() string {
	return path.Join(a.configDir, configFile)
}

func (a *App) callOnReactivate() {
	if a.OnReactivate != nil {
		a.OnReactivate()
	}
}

// ipc.RemoteHandler implementation

func (a *App) Next()       { a.Keys.Send(mediasession.Next) }
func (a *App) Previous()   { a.Keys.Send(mediasession.Previous) }
func (a *App) PlayPause()  { a.Keys.Send(mediasession.PlayPause) }
func (a *App) VolumeUp()   { a.Keys.Send(mediasession.VolumeUp) }
func (a *App) VolumeDown() { a.Keys.Send(mediasession.VolumeDown) }
func (a *App) Mute()       { a.Keys.Send(mediasession.Mute) }

// NowPlaying implements ipc.NowPlayingSource.
func (a *App) NowPlaying() (ipc.NowPlaying, bool) {
	u, ok := a.Mailbox.Peek()
	if !ok {
		return ipc.NowPlaying{}, false
	}
	return ipc.NowPlaying{DisplayLine: u.DisplayLine, HasArtwork: len(u.Artwork) > 0}, true
}

type appWindowHandler struct {
	a *App
}

func (w appWindowHandler) Show() {
	w.a.callOnReactivate()
}

func (w appWindowHandler) Quit() {
	if w.a.OnExit != nil {
		w.a.OnExit()
	}
}

func copyFile(srcPath, dstPath string) error {
	b, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	return os.WriteFile(dstPath, b, 0644)
}
