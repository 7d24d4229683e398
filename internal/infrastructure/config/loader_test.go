package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sitealert/internal/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func loadManager(t *testing.T, path string) *Manager {
	t.Helper()
	m, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, m.Load())
	return m
}

func TestManager_LoadFileNormalizesRules(t *testing.T) {
	path := writeConfig(t, `
[rules]
exact_codes = ["stl5", " RDU1 ", "STL5", ""]
prefixes = ["mco"]

[detection]
check_interval_ms = 250
`)

	cfg := loadManager(t, path).Get()

	assert.Equal(t, []string{"STL5", "RDU1"}, cfg.Rules.ExactCodes)
	assert.Equal(t, []string{"MCO"}, cfg.Rules.Prefixes)
	assert.Equal(t, 250, cfg.Detection.CheckIntervalMs)
	assert.Equal(t, defaultMaxRetries, cfg.Detection.MaxRetries)
	assert.Equal(t, "Unassigned", cfg.Page.UnassignedMarker)
}

func TestManager_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	m := loadManager(t, "")
	cfg := m.Get()

	assert.Empty(t, m.GetConfigFile())
	assert.Equal(t, DefaultUrgentSites, cfg.Rules.ExactCodes)
	assert.Equal(t, DefaultUrgentPrefixes, cfg.Rules.Prefixes)
	assert.Equal(t, 500, cfg.Detection.CheckIntervalMs)
	assert.Equal(t, 20, cfg.Detection.MaxRetries)
	assert.True(t, cfg.Comment.Enabled)
	assert.True(t, cfg.Desktop.Enabled)
	assert.Equal(t, []string{"/service/", "/details/"}, cfg.Page.DetailPaths)
	assert.Contains(t, cfg.Page.DetailSelectors, `[class*="ServiceDetails"]`)
}

func TestConfig_PageOptionsCarriesDetailSignals(t *testing.T) {
	path := writeConfig(t, `
[page]
require_detail_page = true
detail_selectors = [" .wo-detail ", ""]
detail_paths = ["/wo/"]
`)
	opts := loadManager(t, path).Get().PageOptions()

	assert.True(t, opts.RequireDetailPage)
	assert.Equal(t, []string{".wo-detail"}, opts.DetailSelectors)
	assert.Equal(t, []string{"/wo/"}, opts.DetailPaths)
}

func TestManager_ExplicitFileMissing(t *testing.T) {
	m, err := NewManager(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Error(t, m.Load())
}

func TestManager_EnvOverrides(t *testing.T) {
	t.Setenv("SITEALERT_DETECTION_MAX_RETRIES", "7")
	t.Setenv("SITEALERT_LOG_LEVEL", "DEBUG")
	path := writeConfig(t, "[detection]\nmax_retries = 3\n")

	cfg := loadManager(t, path).Get()

	assert.Equal(t, 7, cfg.Detection.MaxRetries)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestManager_InvalidConfig(t *testing.T) {
	path := writeConfig(t, `
[detection]
check_interval_ms = 0

[logging]
level = "loud"
`)
	m, err := NewManager(path)
	require.NoError(t, err)

	err = m.Load()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "detection.check_interval_ms")
	assert.Contains(t, err.Error(), "logging.level")
}

func TestManager_GetReturnsCopy(t *testing.T) {
	m := loadManager(t, writeConfig(t, ""))

	cfg := m.Get()
	cfg.Rules.ExactCodes[0] = "XXXX"
	cfg.Detection.MaxRetries = 99

	again := m.Get()
	assert.Equal(t, "STL5", again.Rules.ExactCodes[0])
	assert.Equal(t, 20, again.Detection.MaxRetries)
}

func TestManager_WatchReloads(t *testing.T) {
	path := writeConfig(t, "[detection]\nmax_retries = 3\n")
	m := loadManager(t, path)

	changed := make(chan *Config, 4)
	m.OnConfigChange(func(cfg *Config) { changed <- cfg })
	require.NoError(t, m.Watch(context.Background()))
	require.NoError(t, m.Watch(context.Background()))

	require.NoError(t, os.WriteFile(path, []byte("[detection]\nmax_retries = 9\n"), 0o600))

	select {
	case cfg := <-changed:
		assert.Equal(t, 9, cfg.Detection.MaxRetries)
	case <-time.After(5 * time.Second):
		t.Fatal("config change was not reported")
	}
	assert.Equal(t, 9, m.Get().Detection.MaxRetries)
}

func TestManager_WatchWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	m := loadManager(t, "")
	assert.Error(t, m.Watch(context.Background()))
}

// lockedBuffer is written by the fsnotify goroutine and read by the test.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestManager_WatchLogsInvalidReloadToContextLogger(t *testing.T) {
	path := writeConfig(t, "[detection]\nmax_retries = 3\n")
	m := loadManager(t, path)

	var out lockedBuffer
	logger := logging.New(logging.Config{Level: zerolog.DebugLevel, Format: "json", Output: &out})
	ctx := logging.WithPage(logging.WithContext(context.Background(), logger), "work-order.html")
	require.NoError(t, m.Watch(ctx))

	assert.Eventually(t, func() bool {
		if err := os.WriteFile(path, []byte("[detection]\ncheck_interval_ms = 0\n"), 0o600); err != nil {
			return false
		}
		return strings.Contains(out.String(), "failed to reload config")
	}, 5*time.Second, 50*time.Millisecond)

	assert.Contains(t, out.String(), `"page":"work-order.html"`)
	assert.Equal(t, 3, m.Get().Detection.MaxRetries)
}
