package entity

// PageChangeKind classifies a change reported by a page adapter.
type PageChangeKind int

const (
	// PageChangeMutation is a content change within the same page view.
	PageChangeMutation PageChangeKind = iota
	// PageChangeNavigation means the page now shows a different document.
	PageChangeNavigation
	// PageChangeReplacement means most of the content was swapped out.
	PageChangeReplacement
)

// String returns a human-readable representation of the change kind.
func (k PageChangeKind) String() string {
	switch k {
	case PageChangeMutation:
		return "mutation"
	case PageChangeNavigation:
		return "navigation"
	case PageChangeReplacement:
		return "replacement"
	default:
		return "unknown"
	}
}

// PageChange describes one change notification.
type PageChange struct {
	Kind PageChangeKind
	// Identity is the page identity after the change (canonical URL or title).
	Identity string
}

// Structural reports whether the change invalidates cached detection state.
func (c PageChange) Structural() bool {
	return c.Kind == PageChangeNavigation || c.Kind == PageChangeReplacement
}
