package commands

import (
	"github.com/arthur-debert/envup/pkg/config"
	"github.com/spf13/cobra"
)

func newGenconfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenconfigShort,
		Long:  MsgGenconfigLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(config.Sample())
			return err
		},
	}
}
