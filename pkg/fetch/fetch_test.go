package fetch_test

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/envup/pkg/config"
	"github.com/arthur-debert/envup/pkg/errors"
	"github.com/arthur-debert/envup/pkg/fetch"
	"github.com/arthur-debert/envup/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tarGzArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: name,
			Mode: 0644,
			Size: int64(len(content)),
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return buf.Bytes()
}

func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func serve(t *testing.T, routes map[string][]byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if body, ok := routes[r.URL.Path]; ok {
			_, _ = w.Write(body)
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEnsureSkipsPresentArtifact(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "fzf")
	require.NoError(t, os.MkdirAll(target, 0755))

	runner := testutil.NewFakeRunner()
	f := fetch.NewFetcher(runner)

	status, err := f.Ensure(context.Background(), config.ArtifactSpec{
		Name: "fzf", Method: config.MethodClone,
		URL: "https://example.com/fzf.git", Target: target,
	})

	require.NoError(t, err)
	assert.Equal(t, fetch.StatusPresent, status)
	assert.Empty(t, runner.Calls)
}

func TestEnsureClones(t *testing.T) {
	target := filepath.Join(t.TempDir(), "fzf")

	runner := testutil.NewFakeRunner()
	runner.Hooks["git"] = func(c testutil.Call) error {
		// Simulate the clone creating its target.
		return os.MkdirAll(target, 0755)
	}

	f := fetch.NewFetcher(runner)
	status, err := f.Ensure(context.Background(), config.ArtifactSpec{
		Name: "fzf", Method: config.MethodClone,
		URL: "https://github.com/junegunn/fzf.git", Target: target,
	})

	require.NoError(t, err)
	assert.Equal(t, fetch.StatusFetched, status)
	assert.True(t, runner.Ran("git clone --depth 1 https://github.com/junegunn/fzf.git "+target))
}

func TestEnsureCloneFailure(t *testing.T) {
	target := filepath.Join(t.TempDir(), "fzf")

	runner := testutil.NewFakeRunner()
	runner.Hooks["git"] = func(c testutil.Call) error {
		return fmt.Errorf("exit status 128")
	}

	f := fetch.NewFetcher(runner)
	status, err := f.Ensure(context.Background(), config.ArtifactSpec{
		Name: "fzf", Method: config.MethodClone,
		URL: "https://example.com/fzf.git", Target: target,
	})

	assert.Equal(t, fetch.StatusFailed, status)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFetchFailed))
	assert.NoDirExists(t, target)
}

func TestEnsureDownloadsTarGz(t *testing.T) {
	archive := tarGzArchive(t, map[string]string{
		"font/Regular.ttf": "ttf-bytes",
		"font/Bold.ttf":    "bold-bytes",
	})
	srv := serve(t, map[string][]byte{"/font.tar.gz": archive})
	target := filepath.Join(t.TempDir(), "fonts", "fira")

	f := fetch.NewFetcher(testutil.NewFakeRunner())
	status, err := f.Ensure(context.Background(), config.ArtifactSpec{
		Name: "fira", Method: config.MethodDownload,
		URL: srv.URL + "/font.tar.gz", Target: target,
	})

	require.NoError(t, err)
	assert.Equal(t, fetch.StatusFetched, status)

	content, err := os.ReadFile(filepath.Join(target, "font", "Regular.ttf"))
	require.NoError(t, err)
	assert.Equal(t, "ttf-bytes", string(content))
}

func TestEnsureDownloadsZip(t *testing.T) {
	archive := zipArchive(t, map[string]string{
		"FiraCode.ttf": "zip-bytes",
	})
	srv := serve(t, map[string][]byte{"/FiraCode.zip": archive})
	target := filepath.Join(t.TempDir(), "fonts", "FiraCode")

	f := fetch.NewFetcher(testutil.NewFakeRunner())
	status, err := f.Ensure(context.Background(), config.ArtifactSpec{
		Name: "firacode", Method: config.MethodDownload,
		URL: srv.URL + "/FiraCode.zip", Target: target,
	})

	require.NoError(t, err)
	assert.Equal(t, fetch.StatusFetched, status)
	assert.FileExists(t, filepath.Join(target, "FiraCode.ttf"))
}

func TestEnsureDownloadsPlainFile(t *testing.T) {
	srv := serve(t, map[string][]byte{"/theme.omp.json": []byte(`{"blocks":[]}`)})
	target := filepath.Join(t.TempDir(), "theme.omp.json")

	f := fetch.NewFetcher(testutil.NewFakeRunner())
	status, err := f.Ensure(context.Background(), config.ArtifactSpec{
		Name: "prompt-theme", Method: config.MethodDownload,
		URL: srv.URL + "/theme.omp.json", Target: target,
	})

	require.NoError(t, err)
	assert.Equal(t, fetch.StatusFetched, status)

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{"blocks":[]}`, string(content))
}

func TestEnsureDownloadHTTPError(t *testing.T) {
	srv := serve(t, nil)
	target := filepath.Join(t.TempDir(), "missing")

	f := fetch.NewFetcher(testutil.NewFakeRunner())
	status, err := f.Ensure(context.Background(), config.ArtifactSpec{
		Name: "missing", Method: config.MethodDownload,
		URL: srv.URL + "/nope.tar.gz", Target: target,
	})

	assert.Equal(t, fetch.StatusFailed, status)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFetchFailed))
}

func TestEnsureNetworkUnavailable(t *testing.T) {
	target := filepath.Join(t.TempDir(), "missing")

	f := fetch.NewFetcher(testutil.NewFakeRunner())
	status, err := f.Ensure(context.Background(), config.ArtifactSpec{
		Name: "missing", Method: config.MethodDownload,
		// Closed port: connection refused.
		URL: "http://127.0.0.1:1/archive.tar.gz", Target: target,
	})

	assert.Equal(t, fetch.StatusFailed, status)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFetchFailed))
}

func TestEnsureRunsInstallerScript(t *testing.T) {
	srv := serve(t, map[string][]byte{"/install.zsh": []byte("#!/bin/sh\nmkdir -p $HOME/.local/share/zap\n")})
	target := filepath.Join(t.TempDir(), "zap")

	runner := testutil.NewFakeRunner()
	runner.Hooks["sh"] = func(c testutil.Call) error {
		// Simulate the installer creating its target.
		return os.MkdirAll(target, 0755)
	}

	f := fetch.NewFetcher(runner)
	status, err := f.Ensure(context.Background(), config.ArtifactSpec{
		Name: "zap", Method: config.MethodScript,
		URL: srv.URL + "/install.zsh", Target: target,
	})

	require.NoError(t, err)
	assert.Equal(t, fetch.StatusFetched, status)
	require.Len(t, runner.Calls, 1)
	assert.Equal(t, "sh", runner.Calls[0].Name)
}

func TestEnsureFailsWhenFetchProducesNothing(t *testing.T) {
	target := filepath.Join(t.TempDir(), "fzf")

	// Clone "succeeds" but never creates the target.
	runner := testutil.NewFakeRunner()

	f := fetch.NewFetcher(runner)
	status, err := f.Ensure(context.Background(), config.ArtifactSpec{
		Name: "fzf", Method: config.MethodClone,
		URL: "https://example.com/fzf.git", Target: target,
	})

	assert.Equal(t, fetch.StatusFailed, status)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFetchFailed))
}

func TestEnsureUsesCheckPath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "zap")
	check := filepath.Join(dir, "zap", "zap.zsh")
	require.NoError(t, os.MkdirAll(target, 0755))
	require.NoError(t, os.WriteFile(check, []byte("#"), 0644))

	f := fetch.NewFetcher(testutil.NewFakeRunner())
	status, err := f.Ensure(context.Background(), config.ArtifactSpec{
		Name: "zap", Method: config.MethodScript,
		URL: "https://example.com/install.zsh", Target: target, Check: check,
	})

	require.NoError(t, err)
	assert.Equal(t, fetch.StatusPresent, status)
}
