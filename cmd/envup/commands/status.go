package commands

import (
	"fmt"

	"github.com/arthur-debert/envup/pkg/style"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Long:  MsgStatusLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			orchestrator, err := buildOrchestrator(cmd, flags, false)
			if err != nil {
				return err
			}

			result, err := orchestrator.Status(cmd.Context())
			if err != nil {
				pterm.Error.Println(err.Error())
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), style.RenderSummary(result))
			return nil
		},
	}
}
