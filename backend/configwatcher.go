package backend

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const configReloadDelay = 200 * time.Millisecond

// WatchConfigFile calls onChange with the re-read config each time the file
// at path is written, until ctx is cancelled. Bursts of events are coalesced.
// A file that fails to parse is logged and otherwise ignored.
func WatchConfigFile(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// watch the directory since editors often replace the file
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return err
	}

	var mu sync.Mutex
	var timer *time.Timer
	reload := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(configReloadDelay, func() {
			if ctx.Err() != nil {
				return
			}
			cfg, err := ReadConfigFile(path)
			if err != nil {
				log.Printf("not reloading config: %v", err)
				return
			}
			log.Println("config file changed, reloading")
			onChange(cfg)
		})
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				mu.Unlock()
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					reload()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("config watcher error: %v", err)
			}
		}
	}()
	return nil
}
