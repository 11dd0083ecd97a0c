package file

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/listing-studio/internal/logger"
)

// reloadQuiet coalesces the burst of events an editor produces on save.
const reloadQuiet = 100 * time.Millisecond

// Watcher reloads the config store when its file changes, and clears the
// prompt cache when a prompt file changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	config   *ConfigStore
	prompts  *PromptStore
	onReload func()
	debounce func(func())
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher watches the directory holding config's file and, when prompts
// is non-nil, the prompt directory. onReload runs after every config reload.
func NewWatcher(config *ConfigStore, prompts *PromptStore, onReload func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsWatcher,
		config:   config,
		prompts:  prompts,
		onReload: onReload,
		debounce: debounce.New(reloadQuiet),
		done:     make(chan struct{}),
	}

	// Editors often replace the file, so watch the directory.
	if err := fsWatcher.Add(filepath.Dir(config.Path())); err != nil {
		fsWatcher.Close()
		return nil, err
	}
	if prompts != nil {
		if err := fsWatcher.Add(prompts.Dir()); err != nil {
			logger.Warn("[Watch] prompt directory not watched: %v", err)
		}
	}

	return w, nil
}

// Start begins watching for file changes.
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				w.handle(event)

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("[Watch] Error: %v", err)

			case <-w.done:
				return
			}
		}
	}()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	switch {
	case filepath.Clean(event.Name) == filepath.Clean(w.config.Path()):
		w.debounce(w.reloadConfig)
	case w.prompts != nil && filepath.Ext(event.Name) == ".txt" &&
		filepath.Dir(event.Name) == filepath.Clean(w.prompts.Dir()):
		logger.Debug("[Watch] Prompt changed: %s", filepath.Base(event.Name))
		w.prompts.Reload()
	}
}

func (w *Watcher) reloadConfig() {
	select {
	case <-w.done:
		return
	default:
	}

	if err := w.config.Load(); err != nil {
		logger.Warn("[Watch] Reload failed for %s: %v", w.config.Path(), err)
		return
	}
	logger.Info("[Watch] Reloaded %s", w.config.Path())
	if w.onReload != nil {
		w.onReload()
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
