package pkgmgr

import (
	"context"

	"github.com/arthur-debert/envup/pkg/run"
)

// Dnf drives dnf on Fedora-family systems (including Oracle and RHEL).
type Dnf struct {
	runner run.Runner
}

func (d *Dnf) Name() string { return "dnf" }

func (d *Dnf) IsInstalled(ctx context.Context, pkg string) (bool, error) {
	return queryInstalled(ctx, d.runner, "rpm", "-q", pkg)
}

func (d *Dnf) Install(ctx context.Context, pkg string) error {
	return d.runner.Run(ctx, "sudo", "dnf", "install", "-y", pkg)
}

func (d *Dnf) Upgrade(ctx context.Context) error {
	return d.runner.Run(ctx, "sudo", "dnf", "upgrade", "-y")
}
