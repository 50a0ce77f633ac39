package commands

import (
	"fmt"
	"os"

	"github.com/arthur-debert/envup/pkg/bootstrap"
	"github.com/arthur-debert/envup/pkg/config"
	"github.com/arthur-debert/envup/pkg/paths"
	"github.com/arthur-debert/envup/pkg/run"
	"github.com/arthur-debert/envup/pkg/style"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newUpCmd(flags *rootFlags) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:     "up",
		Short:   MsgUpShort,
		Long:    MsgUpLong,
		Example: MsgUpExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			orchestrator, err := buildOrchestrator(cmd, flags, true)
			if err != nil {
				return err
			}

			var result *bootstrap.Result
			if dryRun {
				result, err = orchestrator.Status(cmd.Context())
			} else {
				result, err = orchestrator.Run(cmd.Context())
			}
			if err != nil {
				pterm.Error.Println(err.Error())
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), style.RenderSummary(result))
			if !dryRun && !flags.effectiveNonInteractive() {
				pterm.Info.Println(MsgShellHandoff)
			}
			// Partial failure is a valid outcome: exit zero unless the
			// probe itself failed, which returned above.
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")
	return cmd
}

// buildOrchestrator assembles the orchestrator shared by up and status.
func buildOrchestrator(cmd *cobra.Command, flags *rootFlags, live bool) (*bootstrap.Orchestrator, error) {
	p, err := paths.New(flags.root)
	if err != nil {
		return nil, err
	}
	if p.UsedFallback() {
		pterm.Warning.Println("No repo root found; using the current directory. Set --root or ENVUP_ROOT.")
	}

	manifestPath, err := p.ManifestPath()
	if err != nil {
		pterm.Error.Println(err.Error())
		return nil, err
	}

	manifest, err := config.Load(manifestPath)
	if err != nil {
		pterm.Error.Println(err.Error())
		return nil, err
	}

	opts := bootstrap.Options{
		Manifest:       manifest,
		Paths:          p,
		Runner:         run.NewExecRunner(),
		NonInteractive: flags.effectiveNonInteractive(),
		Confirm: func(prompt string) bool {
			ok, _ := pterm.DefaultInteractiveConfirm.Show(prompt)
			return ok
		},
	}
	if live {
		opts.OnOutcome = func(o bootstrap.Outcome) {
			fmt.Fprintln(cmd.OutOrStdout(), style.RenderOutcome(o))
		}
	}
	return bootstrap.New(opts), nil
}

// effectiveNonInteractive folds the flag together with CI-style
// environment detection.
func (f *rootFlags) effectiveNonInteractive() bool {
	if f.nonInteractive {
		return true
	}
	if os.Getenv("CI") != "" || os.Getenv("ENVUP_NONINTERACTIVE") != "" {
		return true
	}
	return false
}
