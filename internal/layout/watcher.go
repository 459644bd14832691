package layout

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// PresetWatcher watches a presets directory and re-runs a callback when
// preset files change. Events are debounced so editors that write in
// several steps trigger a single reload.
type PresetWatcher struct {
	watcher  *fsnotify.Watcher
	onChange func()

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}
}

// WatchPresets starts watching dir and invokes onChange after file changes
// settle. Close the returned watcher to stop.
func WatchPresets(dir string, onChange func()) (*PresetWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("layout: create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("layout: watch %s: %w", dir, err)
	}

	pw := &PresetWatcher{
		watcher:  fw,
		onChange: onChange,
		done:     make(chan struct{}),
	}
	go pw.loop()
	return pw, nil
}

func (pw *PresetWatcher) loop() {
	defer close(pw.done)
	for {
		select {
		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}
			if !presetEvent(event) {
				continue
			}
			pw.schedule()
		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("preset watcher error", "error", err)
		}
	}
}

func presetEvent(event fsnotify.Event) bool {
	if !isPresetFileName(strings.ToLower(event.Name)) {
		return false
	}
	return event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Write) ||
		event.Op.Has(fsnotify.Remove) ||
		event.Op.Has(fsnotify.Rename)
}

func (pw *PresetWatcher) schedule() {
	pw.mu.Lock()
	defer pw.mu.Unlock()
	if pw.closed {
		return
	}
	if pw.timer != nil {
		pw.timer.Stop()
	}
	pw.timer = time.AfterFunc(watchDebounce, pw.onChange)
}

// Close stops the watcher and cancels any pending reload.
func (pw *PresetWatcher) Close() error {
	pw.mu.Lock()
	if pw.closed {
		pw.mu.Unlock()
		return nil
	}
	pw.closed = true
	if pw.timer != nil {
		pw.timer.Stop()
	}
	pw.mu.Unlock()

	err := pw.watcher.Close()
	<-pw.done
	return err
}
