// Package watch reruns a build whenever Markdown sources change.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/kamusis/skilldex/internal/logger"
)

// DefaultDebounce is how long the watcher waits for more changes before
// rebuilding.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Roots are watched recursively. Missing roots are skipped.
	Roots []string
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// Extensions selects the files that trigger a rebuild; defaults to .md.
	Extensions []string
}

// Watcher watches source roots and debounces change events.
type Watcher struct {
	fsw        *fsnotify.Watcher
	debounce   time.Duration
	extensions map[string]bool
}

// New creates a watcher over opts.Roots.
func New(ctx context.Context, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "cannot create file watcher")
	}

	w := &Watcher{
		fsw:        fsw,
		debounce:   opts.Debounce,
		extensions: make(map[string]bool),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".md"}
	}
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		w.extensions[strings.ToLower(ext)] = true
	}

	for _, root := range opts.Roots {
		if _, err := os.Stat(root); err != nil {
			logger.G(ctx).WithField("root", root).WithError(err).Warn("not watching missing source root")
			continue
		}
		if err := w.addRecursive(ctx, root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// WatchList returns the directories currently watched.
func (w *Watcher) WatchList() []string {
	return w.fsw.WatchList()
}

// Run calls rebuild once per burst of relevant changes until ctx is done.
// Rebuild errors are logged and do not stop the loop. Run closes the watcher
// before returning.
func (w *Watcher) Run(ctx context.Context, rebuild func(context.Context) error) error {
	defer w.fsw.Close()
	log := logger.G(ctx)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ctx, ev) {
				continue
			}
			log.WithFields(logrus.Fields{"path": ev.Name, "op": ev.Op.String()}).Debug("source changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("file watcher error")

		case <-fire:
			fire = nil
			if err := rebuild(ctx); err != nil {
				log.WithError(err).Error("rebuild failed")
			}
		}
	}
}

// relevant reports whether ev should trigger a rebuild. New directories are
// added to the watch list.
func (w *Watcher) relevant(ctx context.Context, ev fsnotify.Event) bool {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(ctx, ev.Name); err != nil {
				logger.G(ctx).WithError(err).WithField("path", ev.Name).Warn("cannot watch new directory")
			}
			return true
		}
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return w.extensions[strings.ToLower(filepath.Ext(ev.Name))]
}

func (w *Watcher) addRecursive(ctx context.Context, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			logger.G(ctx).WithField("path", path).WithError(err).Debug("skipping unreadable path")
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		base := d.Name()
		if path != root && strings.HasPrefix(base, ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return errors.Wrapf(err, "cannot watch %s", path)
		}
		return nil
	})
}
