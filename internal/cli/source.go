package cli

import (
	"errors"
	"strings"

	"github.com/bnema/sitealert/internal/application/port"
	"github.com/bnema/sitealert/internal/infrastructure/htmlpage"
)

// ErrNoSource is returned when neither a file nor a URL is given.
var ErrNoSource = errors.New("a page file or URL is required")

// SourceOptions select where the page comes from. Exactly one is expected.
type SourceOptions struct {
	File string
	URL  string
}

// SourceFromTarget treats http(s) targets as URLs and anything else as a file.
func SourceFromTarget(target string) SourceOptions {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return SourceOptions{URL: target}
	}
	return SourceOptions{File: target}
}

// NewSource builds the document source for opts.
func NewSource(opts SourceOptions) (port.DocumentSource, error) {
	switch {
	case opts.File != "":
		return htmlpage.NewFileSource(opts.File), nil
	case opts.URL != "":
		return htmlpage.NewHTTPSource(opts.URL), nil
	default:
		return nil, ErrNoSource
	}
}
