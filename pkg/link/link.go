// Package link ensures repo config files appear at their runtime
// locations as symlinks. Conflicting files are renamed aside with a
// timestamped suffix, never deleted, so the operation converges on
// repeated runs without data loss.
package link

import (
	"os"
	"path/filepath"
	"time"

	"github.com/arthur-debert/envup/pkg/errors"
	"github.com/arthur-debert/envup/pkg/logging"
	"github.com/arthur-debert/envup/pkg/paths"
	"github.com/rs/zerolog"
)

// Status is the outcome of a link operation.
type Status string

const (
	// StatusLinked means a fresh symlink was created.
	StatusLinked Status = "linked"

	// StatusAlreadyLinked means dest already pointed at source.
	StatusAlreadyLinked Status = "already-linked"

	// StatusReplaced means dest existed, was backed up, and is now a symlink.
	StatusReplaced Status = "replaced"

	// StatusSkipped means the source does not exist; dest was left untouched.
	StatusSkipped Status = "skipped"
)

// Result carries the outcome plus the backup path when one was made.
type Result struct {
	Status Status
	Backup string
}

// Manager creates symlinks with backup-on-conflict. All backups within
// one run share the run's timestamp, so a single run produces at most
// one backup per destination and a re-run produces none.
type Manager struct {
	suffix string
	logger zerolog.Logger
}

// NewManager creates a Manager stamped with the run's start time.
func NewManager(stamp time.Time) *Manager {
	return &Manager{
		suffix: paths.BackupSuffix(stamp),
		logger: logging.GetLogger("link"),
	}
}

// Link ensures dest is a symlink to source. Both paths must be absolute.
func (m *Manager) Link(source, dest string) (Result, error) {
	if _, err := os.Lstat(source); err != nil {
		m.logger.Warn().Str("source", source).Msg("Link source missing, skipping")
		return Result{Status: StatusSkipped}, nil
	}

	existing, err := os.Lstat(dest)
	switch {
	case err == nil && existing.Mode()&os.ModeSymlink != 0:
		if target, rerr := os.Readlink(dest); rerr == nil && target == source {
			m.logger.Debug().Str("dest", dest).Msg("Already linked")
			return Result{Status: StatusAlreadyLinked}, nil
		}
		// Symlink to somewhere else: back it up like any other conflict.
		fallthrough

	case err == nil:
		backup := dest + m.suffix
		if renameErr := os.Rename(dest, backup); renameErr != nil {
			return Result{}, errors.Wrapf(renameErr, errors.ErrLinkFailed,
				"cannot back up %s", dest)
		}
		if linkErr := m.symlink(source, dest); linkErr != nil {
			return Result{}, linkErr
		}
		m.logger.Info().
			Str("source", source).
			Str("dest", dest).
			Str("backup", backup).
			Msg("Replaced existing file with symlink")
		return Result{Status: StatusReplaced, Backup: backup}, nil

	case os.IsNotExist(err):
		if linkErr := m.symlink(source, dest); linkErr != nil {
			return Result{}, linkErr
		}
		m.logger.Info().Str("source", source).Str("dest", dest).Msg("Linked")
		return Result{Status: StatusLinked}, nil

	default:
		return Result{}, errors.Wrapf(err, errors.ErrLinkFailed, "cannot stat %s", dest)
	}
}

// Check predicts what Link would do, without mutating anything.
func (m *Manager) Check(source, dest string) (Status, error) {
	if _, err := os.Lstat(source); err != nil {
		return StatusSkipped, nil
	}

	existing, err := os.Lstat(dest)
	switch {
	case err == nil && existing.Mode()&os.ModeSymlink != 0:
		if target, rerr := os.Readlink(dest); rerr == nil && target == source {
			return StatusAlreadyLinked, nil
		}
		return StatusReplaced, nil
	case err == nil:
		return StatusReplaced, nil
	case os.IsNotExist(err):
		return StatusLinked, nil
	default:
		return "", errors.Wrapf(err, errors.ErrLinkFailed, "cannot stat %s", dest)
	}
}

func (m *Manager) symlink(source, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent of %s", dest)
	}
	if err := os.Symlink(source, dest); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "cannot link %s -> %s", dest, source)
	}
	return nil
}
