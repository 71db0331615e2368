package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for File Discovery:
// - Only .nix files are discovered, in deterministic lexical order
// - Hidden files and directories are skipped
// - Exclude glob patterns drop files and whole directories
// - An invalid exclude pattern is rejected at construction

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDiscoverFiles_OnlyNixInLexicalOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "zeta.nix", "{}")
	writeFile(t, dir, "alpha.nix", "{}")
	writeFile(t, dir, "readme.md", "not nix")
	writeFile(t, dir, "modules/web.nix", "{}")

	fd, err := NewFileDiscovery(dir, nil)
	require.NoError(t, err)
	files, err := fd.DiscoverFiles()
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha.nix", "modules/web.nix", "zeta.nix"}, files)
}

func TestDiscoverFiles_SkipsHidden(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "visible.nix", "{}")
	writeFile(t, dir, ".hidden.nix", "{}")
	writeFile(t, dir, ".git/config.nix", "{}")

	fd, err := NewFileDiscovery(dir, nil)
	require.NoError(t, err)
	files, err := fd.DiscoverFiles()
	require.NoError(t, err)

	assert.Equal(t, []string{"visible.nix"}, files)
}

func TestDiscoverFiles_ExcludePatterns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "keep.nix", "{}")
	writeFile(t, dir, "skip.nix", "{}")
	writeFile(t, dir, "vendor/dep.nix", "{}")

	fd, err := NewFileDiscovery(dir, []string{"skip.nix", "vendor/**"})
	require.NoError(t, err)
	files, err := fd.DiscoverFiles()
	require.NoError(t, err)

	assert.Equal(t, []string{"keep.nix"}, files)
}

func TestNewFileDiscovery_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewFileDiscovery(t.TempDir(), []string{"[unclosed"})
	assert.Error(t, err)
}
