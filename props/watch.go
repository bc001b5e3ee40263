package props

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports writes to a set of property files. Events are delivered on
// Changes from a background goroutine; applying them to a tree (ReadFile then
// Merge) is left to the frame loop so that notifications stay serialized with
// canvas updates.
type Watcher struct {
	fsw     *fsnotify.Watcher
	files   map[string]bool
	changes chan string
	errs    chan error
	done    chan struct{}
}

// NewWatcher watches the given files. The containing directories are watched
// so that editors which replace files on save are still observed.
func NewWatcher(paths ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("props watcher: %w", err)
	}
	w := &Watcher{
		fsw:     fsw,
		files:   make(map[string]bool),
		changes: make(chan string, 16),
		errs:    make(chan error, 4),
		done:    make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("props watcher: %w", err)
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("props watcher: watch %s: %w", dir, err)
		}
	}
	go w.loop()
	return w, nil
}

// Changes delivers the absolute path of each watched file that was written
// or recreated. Bursts are coalesced when the buffer is full.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Errors delivers watcher errors. Errors are dropped when nobody reads them.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher and closes the Changes channel.
func (w *Watcher) Close() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.changes)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || !w.files[name] {
				continue
			}
			select {
			case w.changes <- name:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}
