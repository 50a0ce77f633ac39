package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/envup/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootWithoutArgsShowsHelpAndFails(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	out, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, out, "envup")
	assert.Contains(t, out, "up")
}

func TestGenconfigEmitsLoadableManifest(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	out, err := execute(t, "genconfig")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "envup.toml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0644))

	m, err := config.Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, m.Packages)
	assert.NotEmpty(t, m.Profile.Lines)
}

func TestTopicsListsAvailableTopics(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	out, err := execute(t, "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "manifest")
	assert.Contains(t, out, "idempotence")
}

func TestTopicsRendersATopic(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	out, err := execute(t, "topics", "idempotence")
	require.NoError(t, err)
	assert.Contains(t, out, "re-run")
}

func TestTopicsRejectsUnknownTopic(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	_, err := execute(t, "topics", "ghost")
	assert.Error(t, err)
}

func TestUpFailsWithoutManifest(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	root := t.TempDir()

	_, err := execute(t, "up", "--root", root, "--non-interactive")
	assert.Error(t, err)
}

func TestEffectiveNonInteractive(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENVUP_NONINTERACTIVE", "")

	flags := &rootFlags{}
	assert.False(t, flags.effectiveNonInteractive())

	flags.nonInteractive = true
	assert.True(t, flags.effectiveNonInteractive())

	flags.nonInteractive = false
	t.Setenv("CI", "true")
	assert.True(t, flags.effectiveNonInteractive())
}
