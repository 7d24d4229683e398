package htmlpage_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sitealert/internal/infrastructure/htmlpage"
)

func zeroBackOff() backoff.BackOff {
	return &backoff.ZeroBackOff{}
}

func TestFileSource_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(unassignedDetail), 0o600))

	src := htmlpage.NewFileSource(path)
	body, err := src.Fetch(testContext())
	require.NoError(t, err)
	assert.Equal(t, unassignedDetail, string(body))
	assert.Equal(t, path, src.Location())
}

func TestFileSource_FetchMissing(t *testing.T) {
	src := htmlpage.NewFileSource(filepath.Join(t.TempDir(), "missing.html"))
	_, err := src.Fetch(testContext())
	assert.ErrorIs(t, err, htmlpage.ErrFetch)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHTTPSource_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(unassignedDetail))
	}))
	t.Cleanup(srv.Close)

	src := htmlpage.NewHTTPSource(srv.URL, htmlpage.WithBackOff(zeroBackOff), htmlpage.WithMaxRetries(5))
	body, err := src.Fetch(testContext())
	require.NoError(t, err)
	assert.Equal(t, unassignedDetail, string(body))
	assert.Equal(t, int32(3), hits.Load())
	assert.Equal(t, srv.URL, src.Location())
}

func TestHTTPSource_GivesUpAfterMaxRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	src := htmlpage.NewHTTPSource(srv.URL, htmlpage.WithBackOff(zeroBackOff), htmlpage.WithMaxRetries(2))
	_, err := src.Fetch(testContext())
	require.Error(t, err)
	assert.ErrorIs(t, err, htmlpage.ErrFetch)
	assert.Equal(t, int32(3), hits.Load())
}

func TestHTTPSource_ClientErrorIsPermanent(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	src := htmlpage.NewHTTPSource(srv.URL, htmlpage.WithBackOff(zeroBackOff), htmlpage.WithHTTPClient(srv.Client()))
	_, err := src.Fetch(testContext())
	require.Error(t, err)
	assert.ErrorIs(t, err, htmlpage.ErrFetch)
	assert.Contains(t, err.Error(), "404")
	assert.Equal(t, int32(1), hits.Load())
}
