// Package paths provides centralized path handling for envup.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/envup/pkg/errors"
)

// Environment variable names
const (
	// EnvRoot is the primary environment variable for the bootstrap repo location
	EnvRoot = "ENVUP_ROOT"

	// EnvDataDir overrides the XDG data directory for envup
	EnvDataDir = "ENVUP_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for envup
	EnvConfigDir = "ENVUP_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for envup
	EnvCacheDir = "ENVUP_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

const (
	// AppDirName is the directory name for envup-specific files
	AppDirName = "envup"

	// LogFileName is the name of the log file
	LogFileName = "envup.log"

	// BackupTimeFormat is the timestamp suffix format for backup files
	BackupTimeFormat = "20060102-150405"
)

// ManifestNames are the file names probed for the bootstrap manifest,
// in order of preference.
var ManifestNames = []string{"envup.toml", "envup.yaml", "envup.yml"}

// Paths provides centralized path management for envup
type Paths struct {
	root         string
	usedFallback bool
	home         string
	xdgData      string
	xdgConfig    string
	xdgCache     string
	xdgState     string
}

// New creates a Paths instance rooted at the given repo directory.
// An empty root triggers discovery: ENVUP_ROOT, then the enclosing git
// repository, then the current working directory as a last resort.
func New(root string) (*Paths, error) {
	var usedFallback bool
	if root == "" {
		var err error
		root, usedFallback, err = discoverRoot()
		if err != nil {
			return nil, err
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot resolve root %s", root)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot determine home directory")
	}

	return &Paths{
		root:         absRoot,
		usedFallback: usedFallback,
		home:         home,
		xdgData:      envOr(EnvDataDir, filepath.Join(xdg.DataHome, AppDirName)),
		xdgConfig:    envOr(EnvConfigDir, filepath.Join(xdg.ConfigHome, AppDirName)),
		xdgCache:     envOr(EnvCacheDir, filepath.Join(xdg.CacheHome, AppDirName)),
		xdgState:     filepath.Join(xdg.StateHome, AppDirName),
	}, nil
}

// Root returns the bootstrap repository root
func (p *Paths) Root() string { return p.root }

// UsedFallback reports whether root discovery fell back to the working directory
func (p *Paths) UsedFallback() bool { return p.usedFallback }

// Home returns the user's home directory
func (p *Paths) Home() string { return p.home }

// DataDir returns the envup data directory
func (p *Paths) DataDir() string { return p.xdgData }

// ConfigDir returns the envup config directory
func (p *Paths) ConfigDir() string { return p.xdgConfig }

// CacheDir returns the envup cache directory
func (p *Paths) CacheDir() string { return p.xdgCache }

// StateDir returns the envup state directory
func (p *Paths) StateDir() string { return p.xdgState }

// LogFilePath returns the path to the log file
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// ManifestPath returns the first manifest file found under the root,
// or an error if none exists.
func (p *Paths) ManifestPath() (string, error) {
	for _, name := range ManifestNames {
		candidate := filepath.Join(p.root, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.Newf(errors.ErrConfigLoad, "no manifest (%s) found in %s",
		strings.Join(ManifestNames, ", "), p.root)
}

// BackupSuffix returns the backup filename suffix for the given run timestamp
func BackupSuffix(t time.Time) string {
	return ".bak." + t.Format(BackupTimeFormat)
}

// ExpandHome resolves a leading ~ or $HOME in a path against the user's home.
// Relative paths are resolved against the repo root.
func (p *Paths) ExpandHome(path string) string {
	switch {
	case path == "~":
		return p.home
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(p.home, path[2:])
	case strings.HasPrefix(path, "$HOME/"):
		return filepath.Join(p.home, strings.TrimPrefix(path, "$HOME/"))
	case filepath.IsAbs(path):
		return path
	default:
		return filepath.Join(p.root, path)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// discoverRoot locates the bootstrap repo: ENVUP_ROOT wins, then the
// enclosing git repository, then the current working directory.
func discoverRoot() (string, bool, error) {
	if root := os.Getenv(EnvRoot); root != "" {
		return root, false, nil
	}

	if gitRoot, err := findGitRoot(); err == nil {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
	}
	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}
