package starterblog

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher reports changes under a set of directories, coalescing bursts of
// events into a single callback.
type Watcher struct {
	Debounce time.Duration
	OnChange func(paths []string)
	Log      *zap.Logger

	fsw *fsnotify.Watcher
}

// NewWatcher watches every directory below each root. Missing roots are
// skipped.
func NewWatcher(log *zap.Logger, onChange func(paths []string), roots ...string) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		Debounce: defaultDebounce,
		OnChange: onChange,
		Log:      log,
		fsw:      fsw,
	}
	for _, root := range roots {
		if _, err := os.Stat(root); errors.Is(err, fs.ErrNotExist) {
			log.Debug("watch root missing, skipping", zap.String("dir", root))
			continue
		}
		if err := w.addTree(root); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(p)
		}
		return nil
	})
}

// Run delivers debounced change notifications until ctx is cancelled. It
// closes the underlying watcher before returning.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	timer := time.NewTimer(w.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var pending []string
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) &&
				!ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						w.Log.Warn("watch new directory", zap.String("dir", ev.Name), zap.Error(err))
					}
				}
			}
			w.Log.Debug("change detected", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			pending = append(pending, ev.Name)
			timer.Reset(w.Debounce)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := pending
			pending = nil
			if w.OnChange != nil {
				w.OnChange(changed)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.Log.Warn("watcher error", zap.Error(err))
		}
	}
}
