package pkgmgr

import (
	"context"

	"github.com/arthur-debert/envup/pkg/run"
)

// Apt drives apt-get on Debian-family systems.
type Apt struct {
	runner run.Runner
}

func (a *Apt) Name() string { return "apt" }

func (a *Apt) IsInstalled(ctx context.Context, pkg string) (bool, error) {
	return queryInstalled(ctx, a.runner, "dpkg", "-s", pkg)
}

func (a *Apt) Install(ctx context.Context, pkg string) error {
	return a.runner.Run(ctx, "sudo", "apt-get", "install", "-y", pkg)
}

func (a *Apt) Upgrade(ctx context.Context) error {
	if err := a.runner.Run(ctx, "sudo", "apt-get", "update"); err != nil {
		return err
	}
	return a.runner.Run(ctx, "sudo", "apt-get", "upgrade", "-y")
}
