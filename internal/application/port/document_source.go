package port

import "context"

// DocumentSource loads the raw HTML of the observed page.
type DocumentSource interface {
	// Fetch returns the current document body.
	Fetch(ctx context.Context) ([]byte, error)

	// Location describes where the document comes from (file path or URL).
	Location() string
}
