package fetch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/veldt-labs/eventscope/internal/logger"
)

// Watcher signals when a local artifact file is rewritten, so a
// long-running presenter can reload the working set without restarting.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan struct{}
}

// NewWatcher watches the artifact at path. The parent directory is
// watched rather than the file itself, because harvesters typically
// replace the artifact atomically (write + rename).
func NewWatcher(path string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{
		path:    path,
		watcher: fsw,
		changes: make(chan struct{}, 1),
	}, nil
}

// Changes returns the channel that receives a signal per rewrite.
// Signals are coalesced: a burst of writes yields one pending signal.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Run forwards relevant filesystem events until the context is done.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("Artifact changed: %s (%s)", event.Name, event.Op)
			select {
			case w.changes <- struct{}{}:
			default:
				// A signal is already pending.
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}
