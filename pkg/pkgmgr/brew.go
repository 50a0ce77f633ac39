package pkgmgr

import (
	"context"

	"github.com/arthur-debert/envup/pkg/run"
)

// Brew drives Homebrew on macOS and Linuxbrew hosts. Homebrew never
// needs sudo.
type Brew struct {
	runner run.Runner
}

func (b *Brew) Name() string { return "brew" }

func (b *Brew) IsInstalled(ctx context.Context, pkg string) (bool, error) {
	return queryInstalled(ctx, b.runner, "brew", "list", "--versions", pkg)
}

func (b *Brew) Install(ctx context.Context, pkg string) error {
	return b.runner.Run(ctx, "brew", "install", pkg)
}

func (b *Brew) Upgrade(ctx context.Context) error {
	if err := b.runner.Run(ctx, "brew", "update"); err != nil {
		return err
	}
	return b.runner.Run(ctx, "brew", "upgrade")
}
