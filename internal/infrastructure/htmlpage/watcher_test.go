package htmlpage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sitealert/internal/infrastructure/htmlpage"
)

func TestFileWatcher_RefreshesOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(assignedDetail), 0o600))

	adapter := htmlpage.NewAdapter(htmlpage.NewFileSource(path), htmlpage.Options{})
	ctx, cancel := context.WithCancel(testContext())
	t.Cleanup(cancel)

	_, _, err := adapter.Refresh(ctx)
	require.NoError(t, err)
	require.False(t, adapter.IsUnassigned(ctx))

	done := make(chan error, 1)
	go func() { done <- htmlpage.NewFileWatcher(adapter, path).Run(ctx) }()

	// Keep rewriting until the watcher is registered and picks one up.
	assert.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte(unassignedDetail), 0o600)
		return adapter.IsUnassigned(ctx)
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not exit")
	}
}

func TestPoller_RefreshesOnInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(unassignedDetail), 0o600))

	adapter := htmlpage.NewAdapter(htmlpage.NewFileSource(path), htmlpage.Options{})
	ctx, cancel := context.WithCancel(testContext())
	t.Cleanup(cancel)

	go func() { _ = htmlpage.NewPoller(adapter, 5*time.Millisecond).Run(ctx) }()

	assert.Eventually(t, adapter.Loaded, 2*time.Second, 5*time.Millisecond)
	text, ok := adapter.LocationText(ctx)
	require.True(t, ok)
	assert.Equal(t, "MCO3 - X1", text)
}
