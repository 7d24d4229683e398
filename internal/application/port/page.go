package port

import (
	"context"

	"github.com/bnema/sitealert/internal/domain/entity"
)

// SubscriptionID identifies a change subscription on a PageAdapter.
type SubscriptionID uint64

// PageChangeCallback receives change notifications from a PageAdapter.
type PageChangeCallback func(change entity.PageChange)

// PageAdapter abstracts the page the detector observes.
// Implementations own all DOM heuristics; the detector only asks questions.
type PageAdapter interface {
	// IsUnassigned reports whether the work order on the page has no assignee yet.
	IsUnassigned(ctx context.Context) bool

	// LocationText returns the raw location string, or false when the page
	// has not rendered it (yet).
	LocationText(ctx context.Context) (string, bool)

	// SubscribeToChanges registers a callback invoked on page changes.
	SubscribeToChanges(callback PageChangeCallback) SubscriptionID

	// Unsubscribe removes a subscription. Unknown IDs are ignored.
	Unsubscribe(id SubscriptionID)
}

// PageInspector is implemented by adapters that can describe the loaded page
// as a whole. It backs diagnostics only; detection never depends on it.
type PageInspector interface {
	// Identity returns the page's identity (canonical URL, og:url or title).
	Identity() (string, error)

	// BodyText returns the visible text of the page, one entry per line.
	BodyText() (string, error)
}
