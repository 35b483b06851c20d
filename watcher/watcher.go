// Package watcher observes the dataset file after the one-time startup
// load. The knowledge base is never reloaded at runtime, so a change on
// disk means the running process is serving stale data until restarted;
// the watcher makes that visible in logs and metrics.
package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/medsafe/interactions-api/logging"
	"github.com/medsafe/interactions-api/metrics"
)

// DatasetWatcher warns when the loaded dataset file changes on disk.
type DatasetWatcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// NewDatasetWatcher creates a watcher for the dataset at path.
func NewDatasetWatcher(path string) (*DatasetWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory, not the file: editors and atomic writers replace
	// the file, which drops a direct file watch.
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}

	return &DatasetWatcher{path: path, watcher: w}, nil
}

// Start consumes events until Close is called.
func (dw *DatasetWatcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-dw.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(dw.path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					logging.Warn("Dataset file changed on disk; restart the service to load the new data",
						"path", dw.path, "op", event.Op.String())
					metrics.DatasetDriftDetected.Set(1)
				}
			case err, ok := <-dw.watcher.Errors:
				if !ok {
					return
				}
				logging.Error("Dataset watcher error", "error", err)
			}
		}
	}()
}

// Close stops the watcher.
func (dw *DatasetWatcher) Close() error {
	return dw.watcher.Close()
}
