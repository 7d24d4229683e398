package notify

import (
	"context"
	"sync"

	"github.com/bnema/sitealert/internal/application/port"
	"github.com/bnema/sitealert/internal/logging"
)

// Log records detections as log events.
type Log struct {
	mu     sync.Mutex
	active string
}

var _ port.Notifier = (*Log)(nil)

// NewLog creates a log notifier.
func NewLog() *Log {
	return &Log{}
}

// Notify implements port.Notifier.
func (l *Log) Notify(ctx context.Context, siteCode string) {
	l.mu.Lock()
	l.active = siteCode
	l.mu.Unlock()

	logging.FromContext(ctx).Warn().
		Str("site", siteCode).
		Msg("urgent site detected")
}

// Retract implements port.Notifier.
func (l *Log) Retract(ctx context.Context) {
	l.mu.Lock()
	site := l.active
	l.active = ""
	l.mu.Unlock()

	if site == "" {
		return
	}
	logging.FromContext(ctx).Info().
		Str("site", site).
		Msg("urgent alert withdrawn")
}
