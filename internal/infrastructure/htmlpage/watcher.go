package htmlpage

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/sitealert/internal/logging"
)

// FileWatcher refreshes an Adapter whenever its HTML snapshot file is written.
// It watches the parent directory so that editors replacing the file
// atomically are still picked up.
type FileWatcher struct {
	adapter *Adapter
	path    string
	// debounce coalesces bursts of write events from a single save.
	debounce time.Duration
}

// NewFileWatcher creates a watcher for path feeding adapter.
func NewFileWatcher(adapter *Adapter, path string) *FileWatcher {
	return &FileWatcher{
		adapter:  adapter,
		path:     path,
		debounce: 50 * time.Millisecond,
	}
}

// Run watches until ctx is cancelled.
func (w *FileWatcher) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)

	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}
	log.Debug().Str("file", target).Msg("watching page snapshot")

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			log.Trace().Str("op", event.Op.String()).Msg("page snapshot changed")
			pending = time.After(w.debounce)

		case <-pending:
			pending = nil
			if _, _, err := w.adapter.Refresh(ctx); err != nil {
				// The file may be mid-write; the next event retries.
				log.Warn().Err(err).Str("file", target).Msg("failed to refresh page")
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("file watcher error")
		}
	}
}

// Poller refreshes an Adapter on a fixed interval, for sources that cannot
// push change events (HTTP).
type Poller struct {
	adapter  *Adapter
	interval time.Duration
}

// NewPoller creates a poller. A non-positive interval defaults to 2 seconds.
func NewPoller(adapter *Adapter, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Poller{adapter: adapter, interval: interval}
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, _, err := p.adapter.Refresh(ctx); err != nil {
				log.Warn().Err(err).Str("source", p.adapter.Source().Location()).Msg("failed to refresh page")
			}
		}
	}
}
