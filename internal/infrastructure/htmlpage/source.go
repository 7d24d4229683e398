package htmlpage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/bnema/sitealert/internal/application/port"
	"github.com/bnema/sitealert/internal/logging"
)

// maxDocumentBytes caps how much of a response body is read.
const maxDocumentBytes = 16 << 20

// FileSource reads the page from an HTML snapshot on disk.
type FileSource struct {
	path string
}

var _ port.DocumentSource = (*FileSource)(nil)

// NewFileSource creates a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Fetch implements port.DocumentSource.
func (s *FileSource) Fetch(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, s.path, err)
	}
	return data, nil
}

// Location implements port.DocumentSource.
func (s *FileSource) Location() string {
	return s.path
}

// HTTPSource fetches the page over HTTP, retrying transient failures with
// exponential backoff. Client errors (4xx) are not retried.
type HTTPSource struct {
	url        string
	client     *http.Client
	maxRetries uint64
	maxElapsed time.Duration
	// newBackOff is replaced in tests to avoid real sleeps.
	newBackOff func() backoff.BackOff
}

var _ port.DocumentSource = (*HTTPSource)(nil)

// HTTPSourceOption configures an HTTPSource.
type HTTPSourceOption func(*HTTPSource)

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(client *http.Client) HTTPSourceOption {
	return func(s *HTTPSource) { s.client = client }
}

// WithMaxRetries bounds the number of retries after the first attempt.
func WithMaxRetries(n uint64) HTTPSourceOption {
	return func(s *HTTPSource) { s.maxRetries = n }
}

// WithBackOff replaces the retry schedule.
func WithBackOff(factory func() backoff.BackOff) HTTPSourceOption {
	return func(s *HTTPSource) { s.newBackOff = factory }
}

// NewHTTPSource creates an HTTPSource for url.
func NewHTTPSource(url string, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{
		url:        url,
		client:     &http.Client{Timeout: 10 * time.Second},
		maxRetries: 3,
		maxElapsed: 30 * time.Second,
	}
	s.newBackOff = func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = 250 * time.Millisecond
		b.MaxElapsedTime = s.maxElapsed
		return b
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch implements port.DocumentSource.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	log := logging.FromContext(ctx)
	attempt := 0

	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), s.maxRetries), ctx)
	body, err := backoff.RetryNotifyWithData(func() ([]byte, error) {
		attempt++
		return s.fetchOnce(ctx)
	}, policy, func(err error, wait time.Duration) {
		log.Debug().Err(err).Int("attempt", attempt).Dur("wait", wait).Str("url", s.url).Msg("page fetch failed, retrying")
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, s.url, err)
	}
	return body, nil
}

// Location implements port.DocumentSource.
func (s *HTTPSource) Location() string {
	return s.url
}

func (s *HTTPSource) fetchOnce(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, backoff.Permanent(fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
