// Package pkgmgr abstracts OS package managers behind a single capability
// interface. One implementation exists per manager; the environment probe
// decides which one a run gets, and nothing downstream re-branches on OS.
package pkgmgr

import (
	"context"

	"github.com/arthur-debert/envup/pkg/config"
	"github.com/arthur-debert/envup/pkg/errors"
	"github.com/arthur-debert/envup/pkg/logging"
	"github.com/arthur-debert/envup/pkg/platform"
	"github.com/arthur-debert/envup/pkg/run"
	"github.com/rs/zerolog"
)

// Manager is the capability surface envup needs from a package manager.
type Manager interface {
	// Name is the short manager identifier used in manifest rename maps
	// (apt, dnf, pacman, brew).
	Name() string

	// IsInstalled queries whether the package is already registered.
	IsInstalled(ctx context.Context, pkg string) (bool, error)

	// Install installs a single package non-interactively.
	Install(ctx context.Context, pkg string) error

	// Upgrade refreshes the package index and upgrades installed packages.
	Upgrade(ctx context.Context) error
}

// ForProfile returns the Manager implementation matching the probed profile.
func ForProfile(profile platform.Profile, runner run.Runner) (Manager, error) {
	switch profile.Manager {
	case "apt-get":
		return &Apt{runner: runner}, nil
	case "dnf":
		return &Dnf{runner: runner}, nil
	case "pacman":
		return &Pacman{runner: runner}, nil
	case "brew":
		return &Brew{runner: runner}, nil
	default:
		return nil, errors.Newf(errors.ErrUnsupportedPlatform,
			"no manager implementation for %q", profile.Manager)
	}
}

// Status is the outcome of an Ensure call.
type Status string

const (
	StatusInstalled Status = "installed"
	StatusPresent   Status = "already-present"
	StatusFailed    Status = "failed"
)

// Installer applies PackageSpecs through a Manager, idempotently.
type Installer struct {
	mgr    Manager
	logger zerolog.Logger
}

// NewInstaller creates an Installer bound to a manager.
func NewInstaller(mgr Manager) *Installer {
	return &Installer{
		mgr:    mgr,
		logger: logging.GetLogger("pkgmgr.installer"),
	}
}

// Ensure makes sure the package is installed. A package that is already
// registered is never reinstalled. Install failures are returned with
// ErrInstallFailed so the orchestrator can record and continue.
func (i *Installer) Ensure(ctx context.Context, spec config.PackageSpec) (Status, error) {
	name := spec.NameFor(i.mgr.Name())

	installed, err := i.mgr.IsInstalled(ctx, name)
	if err != nil {
		return StatusFailed, errors.Wrapf(err, errors.ErrInstallFailed,
			"cannot query %s for %s", i.mgr.Name(), name)
	}
	if installed {
		i.logger.Debug().Str("package", name).Msg("Package already present")
		return StatusPresent, nil
	}

	i.logger.Info().Str("package", name).Str("manager", i.mgr.Name()).Msg("Installing package")
	if err := i.mgr.Install(ctx, name); err != nil {
		return StatusFailed, errors.Wrapf(err, errors.ErrInstallFailed,
			"%s failed to install %s", i.mgr.Name(), name)
	}
	return StatusInstalled, nil
}

// Upgrade runs the manager's upgrade step.
func (i *Installer) Upgrade(ctx context.Context) error {
	i.logger.Info().Str("manager", i.mgr.Name()).Msg("Upgrading system packages")
	return i.mgr.Upgrade(ctx)
}

// IsInstalled exposes the underlying query for read-only status passes.
func (i *Installer) IsInstalled(ctx context.Context, spec config.PackageSpec) (bool, error) {
	return i.mgr.IsInstalled(ctx, spec.NameFor(i.mgr.Name()))
}

// queryInstalled is shared by managers whose install query signals
// absence with a non-zero exit.
func queryInstalled(ctx context.Context, runner run.Runner, name string, args ...string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if _, err := runner.Output(ctx, name, args...); err != nil {
		// Non-zero exit means not installed; cancellation still surfaces.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return false, ctxErr
		}
		return false, nil
	}
	return true, nil
}
