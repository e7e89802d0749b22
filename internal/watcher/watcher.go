package watcher

import (
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"

	"keycap/internal/config"
)

// WatcherInterval is how often the config file is polled for changes
const WatcherInterval = 2 * time.Second

// ConfigWatcher polls the configuration file and reloads it when it changes
// on disk, so style tweaks (colors, border thickness, placeholder text) show
// up in a running editor without a restart.
type ConfigWatcher struct {
	manager  config.ManagerInterface
	path     string
	onReload func(*config.Config)

	mu         sync.Mutex // Protects lastModTime from concurrent access
	lastMod    time.Time
	ticker     *time.Ticker
	stopChan   chan bool
	stopped    bool
	debugPrint func(format string, args ...interface{})
}

// NewConfigWatcher creates a watcher for the given config file path.
// onReload runs on the UI thread with the freshly loaded configuration.
func NewConfigWatcher(manager config.ManagerInterface, path string, onReload func(*config.Config), debugPrint func(format string, args ...interface{})) *ConfigWatcher {
	return &ConfigWatcher{
		manager:    manager,
		path:       path,
		onReload:   onReload,
		stopChan:   make(chan bool),
		debugPrint: debugPrint,
	}
}

// Start begins polling the config file for changes
func (cw *ConfigWatcher) Start() {
	if cw.ticker != nil && !cw.stopped {
		return // Already running
	}

	cw.stopped = false
	if cw.stopChan == nil {
		cw.stopChan = make(chan bool)
	}

	cw.updateSnapshot()
	cw.ticker = time.NewTicker(WatcherInterval)

	ticker := cw.ticker // Capture ticker reference for this goroutine
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cw.checkForChanges()
			case <-cw.stopChan:
				return
			}
		}
	}()
}

// Stop stops the config watcher
func (cw *ConfigWatcher) Stop() {
	if cw.stopped {
		return // Already stopped, do nothing
	}

	cw.stopped = true
	cw.ticker = nil // Just clear reference, goroutine will handle cleanup

	close(cw.stopChan)
	cw.stopChan = nil
}

// updateSnapshot records the current modification time of the config file
func (cw *ConfigWatcher) updateSnapshot() {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	info, err := os.Stat(cw.path)
	if err != nil {
		cw.lastMod = time.Time{}
		return
	}
	cw.lastMod = info.ModTime()
}

// checkForChanges reloads the config when the file's mtime moved
func (cw *ConfigWatcher) checkForChanges() {
	info, err := os.Stat(cw.path)
	if err != nil {
		return // File missing or unreadable, skip this check
	}

	cw.mu.Lock()
	changed := !info.ModTime().Equal(cw.lastMod)
	if changed {
		cw.lastMod = info.ModTime()
	}
	cw.mu.Unlock()

	if !changed {
		return
	}

	cw.debugPrint("ConfigWatcher: Config file changed, reloading")
	newConfig, err := cw.manager.Load()
	if err != nil {
		cw.debugPrint("ConfigWatcher: Reload failed: %v", err)
		return
	}

	// UI update must happen on the main thread
	if cw.onReload != nil && !cw.stopped {
		fyne.Do(func() {
			cw.onReload(newConfig)
		})
	}
}
