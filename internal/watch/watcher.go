// Package watch observes the question library on disk and reports edits
// to registered set sources.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mkarlsen/tally/internal/checksum"
	"github.com/mkarlsen/tally/internal/library"
	"github.com/mkarlsen/tally/internal/registry"
)

// Callback is invoked with the id of a set whose source file changed.
type Callback func(setID string)

// Run starts an fsnotify watcher on the library root and processes file
// change events until ctx is cancelled. Unchanged-content writes (editor
// save churn) are suppressed by checksum comparison. New directories
// created at runtime are added to the watch list.
func Run(ctx context.Context, lib *library.FS, reg *registry.Registry, logger *slog.Logger, cb Callback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	root := lib.Root()
	if err := addDirsRecursive(w, root); err != nil {
		return err
	}

	// Seed known checksums so startup state never fires events.
	sums := make(map[string]string)
	if metas, listErr := lib.List(); listErr == nil {
		for _, m := range metas {
			sums[m.Path] = m.Checksum
		}
	}

	logger.Info("watcher: started", slog.String("root", root))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			absPath := ev.Name

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(absPath); statErr == nil && info.IsDir() {
					if addErr := addDirsRecursive(w, absPath); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", absPath),
							slog.String("error", addErr.Error()))
					}
					continue
				}
			}

			if !library.IsSource(absPath) {
				continue
			}
			rel, relErr := filepath.Rel(root, absPath)
			if relErr != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			set, registered := reg.FileOf(rel)
			if !registered {
				continue
			}

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, readErr := lib.Read(rel)
				if readErr != nil {
					logger.Warn("watcher: read failed", slog.String("path", rel), slog.String("error", readErr.Error()))
					continue
				}
				sum := checksum.Sum(data)
				if sums[rel] == sum {
					continue
				}
				sums[rel] = sum
				logger.Debug("watcher: set source changed", slog.String("set", set.ID), slog.String("path", rel))
				if cb != nil {
					cb(set.ID)
				}

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				delete(sums, rel)
				logger.Warn("watcher: set source removed", slog.String("set", set.ID), slog.String("path", rel))
				if cb != nil {
					cb(set.ID)
				}
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}
