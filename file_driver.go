package vigil

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/zoobzio/capitan"
)

// FileDriver invokes an Updater whenever one of the watched files is
// written. Pair it with an observer whose accessor reads the file, or with
// a registry holding several.
type FileDriver struct {
	paths []string
}

// NewFileDriver creates a driver watching the given file paths.
func NewFileDriver(paths ...string) *FileDriver {
	return &FileDriver{paths: paths}
}

// Run drives the target until the context is canceled. Every write or
// create event on a watched path triggers one Update call; the observer's
// own change detection decides whether anything actually moved.
func (d *FileDriver) Run(ctx context.Context, target Updater) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range d.paths {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch file %s: %w", path, err)
		}
	}

	capitan.Emit(ctx, DriverStarted,
		KeyCount.Field(len(d.paths)),
	)
	defer capitan.Emit(ctx, DriverStopped)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only update on write or create events
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			_ = target.Update(ctx) //nolint:errcheck // Errors recorded via LastError

		case _, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			// Keep watching despite errors
		}
	}
}
