package world

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// Watcher reports world files that changed on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches the given directories for world file changes.
func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops the watcher. Events and Errors are closed once the
// background goroutine exits.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

// fired is sent by a debounce timer once a path has been quiet.
type fired struct {
	path string
	gen  uint64
}

// run forwards a path only after it has seen no events for the debounce
// window, so a save split across several writes is reported once.
func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	timers := make(map[string]*time.Timer)
	gens := make(map[string]uint64)
	quiet := make(chan fired)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !IsWorldFile(event.Name) {
				continue
			}
			if t, ok := timers[event.Name]; ok {
				t.Stop()
			}
			gens[event.Name]++
			f := fired{path: event.Name, gen: gens[event.Name]}
			timers[event.Name] = time.AfterFunc(debounce, func() {
				select {
				case quiet <- f:
				case <-w.closeCh:
				}
			})
		case f := <-quiet:
			// A newer event restarted the window.
			if gens[f.path] != f.gen {
				continue
			}
			delete(timers, f.path)
			delete(gens, f.path)
			select {
			case w.Events <- f.path:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
