// Package notify contains the port.Notifier implementations used to present
// urgent site detections: a terminal banner, log events and the clipboard
// comment auto-fill.
package notify

import (
	"context"

	"github.com/bnema/sitealert/internal/application/port"
)

// Multi fans out to several notifiers in order.
type Multi []port.Notifier

var _ port.Notifier = Multi(nil)

// NewMulti builds a Multi, skipping nil notifiers.
func NewMulti(notifiers ...port.Notifier) Multi {
	m := make(Multi, 0, len(notifiers))
	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}
	return m
}

// Notify implements port.Notifier.
func (m Multi) Notify(ctx context.Context, siteCode string) {
	for _, n := range m {
		n.Notify(ctx, siteCode)
	}
}

// Retract implements port.Notifier.
func (m Multi) Retract(ctx context.Context) {
	for _, n := range m {
		n.Retract(ctx)
	}
}
