package paths_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/envup/pkg/errors"
	"github.com/arthur-debert/envup/pkg/paths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPaths(t *testing.T) (*paths.Paths, string, string) {
	t.Helper()
	root := t.TempDir()
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := paths.New(root)
	require.NoError(t, err)
	return p, root, home
}

func TestNewResolvesRoot(t *testing.T) {
	p, root, home := newTestPaths(t)

	assert.Equal(t, root, p.Root())
	assert.Equal(t, home, p.Home())
	assert.False(t, p.UsedFallback())
}

func TestNewUsesEnvRoot(t *testing.T) {
	root := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(paths.EnvRoot, root)

	p, err := paths.New("")
	require.NoError(t, err)
	assert.Equal(t, root, p.Root())
	assert.False(t, p.UsedFallback())
}

func TestEnvOverridesForXDGDirs(t *testing.T) {
	data := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(paths.EnvDataDir, data)

	p, err := paths.New(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, data, p.DataDir())
}

func TestManifestPath(t *testing.T) {
	p, root, _ := newTestPaths(t)

	_, err := p.ManifestPath()
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))

	manifest := filepath.Join(root, "envup.toml")
	require.NoError(t, os.WriteFile(manifest, []byte(""), 0644))

	found, err := p.ManifestPath()
	require.NoError(t, err)
	assert.Equal(t, manifest, found)
}

func TestManifestPathPrefersToml(t *testing.T) {
	p, root, _ := newTestPaths(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, "envup.yaml"), []byte(""), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "envup.toml"), []byte(""), 0644))

	found, err := p.ManifestPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "envup.toml"), found)
}

func TestExpandHome(t *testing.T) {
	p, root, home := newTestPaths(t)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/.vimrc", filepath.Join(home, ".vimrc")},
		{"$HOME/.config/nvim", filepath.Join(home, ".config", "nvim")},
		{"/etc/profile", "/etc/profile"},
		{"vim/vimrc", filepath.Join(root, "vim", "vimrc")},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, p.ExpandHome(tt.in), "input %q", tt.in)
	}
}

func TestBackupSuffix(t *testing.T) {
	stamp := time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)
	assert.Equal(t, ".bak.20240309-140506", paths.BackupSuffix(stamp))
}

func TestLogFilePath(t *testing.T) {
	p, _, _ := newTestPaths(t)
	assert.Equal(t, "envup.log", filepath.Base(p.LogFilePath()))
}
