package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/envup/pkg/paths"
	"github.com/stretchr/testify/require"
)

// Env is an isolated bootstrap environment rooted in temp directories.
// HOME and the envup XDG overrides point inside it, so tests never touch
// the real user environment.
type Env struct {
	Root  string // the bootstrap repo
	Home  string // fake $HOME
	Paths *paths.Paths

	t *testing.T
}

// NewEnv creates an isolated environment for a test.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	root := t.TempDir()
	home := t.TempDir()

	t.Setenv("HOME", home)
	t.Setenv(paths.EnvRoot, root)
	t.Setenv(paths.EnvDataDir, filepath.Join(home, ".local", "share", "envup"))
	t.Setenv(paths.EnvConfigDir, filepath.Join(home, ".config", "envup"))
	t.Setenv(paths.EnvCacheDir, filepath.Join(home, ".cache", "envup"))

	p, err := paths.New(root)
	require.NoError(t, err)

	return &Env{Root: root, Home: home, Paths: p, t: t}
}

// WriteRepoFile creates a file inside the repo root, with parents.
func (e *Env) WriteRepoFile(rel, content string) string {
	e.t.Helper()
	path := filepath.Join(e.Root, rel)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// WriteHomeFile creates a file inside the fake home, with parents.
func (e *Env) WriteHomeFile(rel, content string) string {
	e.t.Helper()
	path := filepath.Join(e.Home, rel)
	require.NoError(e.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// HomePath returns an absolute path under the fake home.
func (e *Env) HomePath(rel string) string {
	return filepath.Join(e.Home, rel)
}
