package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"caselist/internal/logging"
)

// Watcher reports writes to a fixed set of files. It watches the parent
// directories so files replaced by rename are still seen.
type Watcher struct {
	fsnotify *fsnotify.Watcher
	files    map[string]struct{}
}

// New starts watching files
func New(files []string) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New("no files to watch")
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{fsnotify: fsWatch, files: make(map[string]struct{})}
	dirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			fsWatch.Close()
			return nil, err
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsWatch.Add(dir); err != nil {
			fsWatch.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run calls onChange with the path of every watched file that is written or
// recreated, until ctx is done. The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, onChange func(file string)) error {
	defer w.fsnotify.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return nil
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			name, err := filepath.Abs(e.Name)
			if err != nil {
				continue
			}
			if _, watched := w.files[name]; watched {
				logging.Debug("case list changed", "file", name, "op", e.Op.String())
				onChange(name)
			}
		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return nil
			}
			logging.Error("watch error", "err", err)
		}
	}
}
