package browse

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/smais007/mistake-pattern-analyzer/internal/store"
)

// fileChangedMsg signals that the data file was modified outside this
// process.
type fileChangedMsg struct{}

// watcher wraps fsnotify over the home directory. The directory is
// watched rather than the file itself so rewrites (save = overwrite)
// keep being observed.
type watcher struct {
	fsw      *fsnotify.Watcher
	dataFile string
}

func newWatcher(st *store.Store) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(st.DataPath())); err != nil {
		fsw.Close()
		return nil, err
	}
	return &watcher{fsw: fsw, dataFile: filepath.Base(st.DataPath())}, nil
}

// wait blocks until the data file changes, absorbing the event bursts a
// single save produces.
func (w *watcher) wait() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.fsw.Events:
				if !ok {
					return nil
				}
				if filepath.Base(ev.Name) != w.dataFile {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				// Debounce: a save produces several events in quick
				// succession.
				time.Sleep(100 * time.Millisecond)
				w.drain()
				return fileChangedMsg{}
			case _, ok := <-w.fsw.Errors:
				if !ok {
					return nil
				}
			}
		}
	}
}

func (w *watcher) drain() {
	for {
		select {
		case <-w.fsw.Events:
		default:
			return
		}
	}
}

func (w *watcher) close() {
	if w.fsw != nil {
		w.fsw.Close()
	}
}
