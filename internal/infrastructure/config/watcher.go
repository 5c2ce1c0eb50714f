package config

import (
	"fmt"
	"log"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the game config whenever one of GameFiles changes on disk
// and delivers validated configs on Configs. Invalid edits are reported on
// Errors and the previous config stays in effect.
type Watcher struct {
	watcher *fsnotify.Watcher
	loader  *Loader
	Configs chan *GameConfig
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	done    sync.WaitGroup
}

const debounce = 100 * time.Millisecond

// NewWatcher watches the loader's base directory
func NewWatcher(loader *Loader) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fw.Add(loader.BasePath()); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", loader.BasePath(), err)
	}

	w := &Watcher{
		watcher: fw,
		loader:  loader,
		Configs: make(chan *GameConfig, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	w.done.Add(1)
	go w.run()
	return w, nil
}

// Close stops watching and closes both channels
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		w.done.Wait()
		close(w.Configs)
		close(w.Errors)
	})
	return err
}

// Poll returns the most recent reloaded config without blocking
func (w *Watcher) Poll() (*GameConfig, bool) {
	select {
	case cfg, ok := <-w.Configs:
		return cfg, ok && cfg != nil
	default:
		return nil, false
	}
}

func (w *Watcher) run() {
	defer w.done.Done()

	// Reload once the directory has been quiet for the debounce interval;
	// editors truncate and write in separate events.
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !IsGameFile(event.Name) {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := w.loader.LoadGame()
	if err != nil {
		log.Printf("config reload rejected: %v", err)
		w.report(err)
		return
	}
	log.Printf("config reloaded from %s", w.loader.BasePath())

	// Keep only the newest config
	select {
	case <-w.Configs:
	default:
	}
	select {
	case w.Configs <- cfg:
	case <-w.closeCh:
	}
}

func (w *Watcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

// IsGameFile reports whether path names one of GameFiles
func IsGameFile(path string) bool {
	return slices.Contains(GameFiles, filepath.Base(path))
}
