package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher defines the interface for file system monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is a function that handles one new file
type EventHandler func(ctx context.Context, filePath string) error

type implWatcher struct {
	inputDir      string
	exts          map[string]bool
	handler       EventHandler
	logger        *zap.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	settle        time.Duration
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// New creates a Watcher on inputDir that hands files with one of the given
// extensions to handler, at most maxConcurrent at a time.
func New(inputDir string, exts []string, handler EventHandler, logger *zap.Logger, maxConcurrent int) (Watcher, error) {
	return newWatcher(inputDir, exts, handler, logger, maxConcurrent, 500*time.Millisecond)
}

func newWatcher(inputDir string, exts []string, handler EventHandler, logger *zap.Logger, maxConcurrent int, settle time.Duration) (*implWatcher, error) {
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create watch dir: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(inputDir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		set[strings.ToLower(e)] = true
	}

	return &implWatcher{
		inputDir:      inputDir,
		exts:          set,
		handler:       handler,
		logger:        logger,
		watcher:       fw,
		maxConcurrent: maxConcurrent,
		settle:        settle,
		semaphore:     make(chan struct{}, maxConcurrent),
	}, nil
}

// Start handles files already in the directory, then every file created
// afterwards, until ctx is done. In-flight handlers finish before it returns.
func (w *implWatcher) Start(ctx context.Context) error {
	w.log().Info("watcher.started",
		zap.String("dir", w.inputDir),
		zap.Int("max_concurrent", w.maxConcurrent))

	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return fmt.Errorf("read watch dir: %w", err)
	}
	for _, e := range entries {
		if e.Type().IsRegular() {
			if err := w.dispatch(ctx, filepath.Join(w.inputDir, e.Name()), false); err != nil {
				return w.drain(err)
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			return w.drain(ctx.Err())

		case event, ok := <-w.watcher.Events:
			if !ok {
				return w.drain(fmt.Errorf("watcher events channel closed"))
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if err := w.dispatch(ctx, event.Name, true); err != nil {
					return w.drain(err)
				}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return w.drain(fmt.Errorf("watcher errors channel closed"))
			}
			w.log().Error("watcher.error", zap.Error(err))
		}
	}
}

// dispatch runs the handler for a supported file once a semaphore slot is
// free. Files seen through an event get a short delay so writers can finish.
func (w *implWatcher) dispatch(ctx context.Context, path string, fresh bool) error {
	if !w.supported(path) {
		w.log().Debug("watcher.ignored", zap.String("file", path))
		return nil
	}
	if fresh && w.settle > 0 {
		select {
		case <-time.After(w.settle):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()

		if err := w.handler(ctx, path); err != nil {
			w.log().Error("watcher.handle_failed", zap.String("file", path), zap.Error(err))
		}
	}()
	return nil
}

func (w *implWatcher) drain(err error) error {
	w.wg.Wait()
	w.log().Info("watcher.stopped")
	return err
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) supported(path string) bool {
	return w.exts[strings.ToLower(filepath.Ext(path))]
}

func (w *implWatcher) log() *zap.Logger {
	if w.logger == nil {
		return zap.NewNop()
	}
	return w.logger
}
