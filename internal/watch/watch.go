// Package watch recompiles resource scripts when they or their inputs change.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// Watcher calls Build after a quiet period following relevant file changes.
type Watcher struct {
	Dirs     []string
	Debounce time.Duration
	Build    func(ctx context.Context) error
	Logger   *clog.Logger
}

// relevant lists the inputs a resource script typically pulls in.
var relevant = map[string]bool{
	".rc":       true,
	".rc2":      true,
	".h":        true,
	".ico":      true,
	".cur":      true,
	".bmp":      true,
	".manifest": true,
	".xml":      true,
}

// IsRelevantFile reports whether a change to path should trigger a rebuild.
func IsRelevantFile(path string) bool {
	return relevant[strings.ToLower(filepath.Ext(path))]
}

// Run builds once, then watches until ctx is done. Build errors are logged
// and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer fw.Close()
	for _, d := range w.Dirs {
		if err := fw.Add(d); err != nil {
			return errors.Wrapf(err, "watch %s", d)
		}
	}

	w.build(ctx)
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}
	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !IsRelevantFile(ev.Name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger().Warn("watch error", "err", err)
		case <-fire:
			fire = nil
			w.build(ctx)
		}
	}
}

func (w *Watcher) build(ctx context.Context) {
	if w.Build == nil {
		return
	}
	if err := w.Build(ctx); err != nil {
		w.logger().Error("build failed", "err", err)
		return
	}
	w.logger().Info("build ok")
}

func (w *Watcher) logger() *clog.Logger {
	if w.Logger == nil {
		return clog.Default()
	}
	return w.Logger
}
