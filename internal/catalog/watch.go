package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"finitefield.org/docsite/internal/content"
)

const watchDebounce = 150 * time.Millisecond

// Watch rebuilds the catalog whenever the manifest or a page under dir
// changes and passes the result to onChange. Bursts of events collapse into
// one rebuild. A rebuild that fails is logged and the previous catalog stays
// in place. Watch blocks until ctx is done.
func Watch(ctx context.Context, dir string, logger *zap.Logger, onChange func(*Catalog)) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return fmt.Errorf("catalog: watch %s: %w", dir, err)
	}
	docs := filepath.Join(dir, content.DocsSubdir)
	if err := w.Add(docs); err != nil {
		logger.Warn("docs directory not watched", zap.String("dir", docs), zap.Error(err))
	}

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op == fsnotify.Chmod {
				continue
			}
			timer.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("content watcher error", zap.Error(err))
		case <-timer.C:
			cat, err := Load(dir)
			if err != nil {
				logger.Warn("catalog rebuild failed", zap.Error(err))
				continue
			}
			if err := cat.Validate(); err != nil {
				logger.Warn("catalog has authoring defects", zap.Error(err))
			}
			logger.Info("catalog rebuilt", zap.Int("pages", len(cat.Flat())))
			onChange(cat)
		}
	}
}
