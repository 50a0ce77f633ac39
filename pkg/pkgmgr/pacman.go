package pkgmgr

import (
	"context"

	"github.com/arthur-debert/envup/pkg/run"
)

// Pacman drives pacman on Arch-family systems.
type Pacman struct {
	runner run.Runner
}

func (p *Pacman) Name() string { return "pacman" }

func (p *Pacman) IsInstalled(ctx context.Context, pkg string) (bool, error) {
	return queryInstalled(ctx, p.runner, "pacman", "-Qi", pkg)
}

func (p *Pacman) Install(ctx context.Context, pkg string) error {
	return p.runner.Run(ctx, "sudo", "pacman", "-S", "--noconfirm", "--needed", pkg)
}

func (p *Pacman) Upgrade(ctx context.Context) error {
	return p.runner.Run(ctx, "sudo", "pacman", "-Syu", "--noconfirm")
}
