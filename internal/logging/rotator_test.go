package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotator_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRotator(RotatorConfig{Dir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	_, err = r.Write([]byte("hello\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "sitealert.log"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestRotator_RotatesWhenFull(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRotator(RotatorConfig{Dir: dir, FileName: "watch.log", MaxSizeMB: 1, MaxBackups: 5})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	chunk := []byte(strings.Repeat("x", 700*1024))
	_, err = r.Write(chunk)
	require.NoError(t, err)
	_, err = r.Write(chunk)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var backups int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "watch.log.") {
			backups++
		}
	}
	assert.Equal(t, 1, backups)

	info, err := os.Stat(filepath.Join(dir, "watch.log"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(chunk)), info.Size())
}

func TestRotator_CloseIsIdempotent(t *testing.T) {
	r, err := NewRotator(RotatorConfig{Dir: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
}
