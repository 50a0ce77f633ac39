// Package fetch materializes external artifacts: git repositories,
// release archives, and upstream installer scripts. Fetches are gated
// on a presence check, so a satisfied artifact is never re-fetched.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/envup/pkg/config"
	"github.com/arthur-debert/envup/pkg/errors"
	"github.com/arthur-debert/envup/pkg/logging"
	"github.com/arthur-debert/envup/pkg/run"
	"github.com/rs/zerolog"
)

// Status is the outcome of an Ensure call.
type Status string

const (
	StatusFetched Status = "fetched"
	StatusPresent Status = "already-present"
	StatusFailed  Status = "failed"
)

// Fetcher materializes artifacts. Paths in the specs it receives must
// already be absolute.
type Fetcher struct {
	runner run.Runner
	client *http.Client
	logger zerolog.Logger
}

// NewFetcher creates a Fetcher using the given process runner.
func NewFetcher(runner run.Runner) *Fetcher {
	return &Fetcher{
		runner: runner,
		client: &http.Client{},
		logger: logging.GetLogger("fetch"),
	}
}

// Ensure makes sure the artifact exists at its target. When the
// presence check passes the fetch is skipped entirely.
func (f *Fetcher) Ensure(ctx context.Context, spec config.ArtifactSpec) (Status, error) {
	if f.IsPresent(spec) {
		f.logger.Debug().Str("artifact", spec.Name).Msg("Artifact already present")
		return StatusPresent, nil
	}

	var err error
	switch spec.Method {
	case config.MethodClone:
		err = f.clone(ctx, spec)
	case config.MethodDownload:
		err = f.download(ctx, spec)
	case config.MethodScript:
		err = f.script(ctx, spec)
	default:
		err = errors.Newf(errors.ErrConfigValid, "unknown fetch method %q", spec.Method)
	}
	if err != nil {
		return StatusFailed, err
	}

	// The fetch ran; make sure it actually produced the target.
	if !f.IsPresent(spec) {
		return StatusFailed, errors.Newf(errors.ErrFetchFailed,
			"artifact %s missing at %s after fetch", spec.Name, spec.PresencePath())
	}

	f.logger.Info().Str("artifact", spec.Name).Str("target", spec.Target).Msg("Artifact fetched")
	return StatusFetched, nil
}

// IsPresent runs the artifact's presence check.
func (f *Fetcher) IsPresent(spec config.ArtifactSpec) bool {
	_, err := os.Lstat(spec.PresencePath())
	return err == nil
}

func (f *Fetcher) clone(ctx context.Context, spec config.ArtifactSpec) error {
	if err := os.MkdirAll(filepath.Dir(spec.Target), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent of %s", spec.Target)
	}
	if err := f.runner.Run(ctx, "git", "clone", "--depth", "1", spec.URL, spec.Target); err != nil {
		return errors.Wrapf(err, errors.ErrFetchFailed, "clone of %s failed", spec.URL)
	}
	return nil
}

func (f *Fetcher) download(ctx context.Context, spec config.ArtifactSpec) error {
	tmp, err := f.fetchToTemp(ctx, spec.URL)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp) }()

	switch {
	case hasSuffix(spec.URL, ".tar.gz", ".tgz"):
		return extractTarGz(tmp, spec.Target)
	case hasSuffix(spec.URL, ".zip"):
		return extractZip(tmp, spec.Target)
	default:
		return copyFile(tmp, spec.Target)
	}
}

func (f *Fetcher) script(ctx context.Context, spec config.ArtifactSpec) error {
	tmp, err := f.fetchToTemp(ctx, spec.URL)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp) }()

	if err := f.runner.Run(ctx, "sh", tmp); err != nil {
		return errors.Wrapf(err, errors.ErrFetchFailed, "installer script %s failed", spec.URL)
	}
	return nil
}

// fetchToTemp downloads a URL to a temp file and returns its path.
func (f *Fetcher) fetchToTemp(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFetchFailed, "bad url %s", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFetchFailed, "download of %s failed", url)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf(errors.ErrFetchFailed, "download of %s: HTTP %d", url, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "envup-fetch-*")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileWrite, "cannot create temp file")
	}
	defer func() { _ = tmp.Close() }()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = os.Remove(tmp.Name())
		return "", errors.Wrapf(err, errors.ErrFetchFailed, "download of %s interrupted", url)
	}
	return tmp.Name(), nil
}

func copyFile(src, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent of %s", dest)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", src)
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", dest)
	}
	return nil
}

func hasSuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// securePath joins name under dir, rejecting entries that escape it.
func securePath(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	if path != dir && !strings.HasPrefix(path, dir+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry %q escapes extraction dir", name)
	}
	return path, nil
}
