package commands

import (
	"embed"
	"fmt"

	"github.com/arthur-debert/envup/pkg/topics"
	"github.com/spf13/cobra"
)

//go:embed docs
var docsFS embed.FS

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "topics [topic]",
		Short:     MsgTopicsShort,
		Long:      MsgTopicsLong,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: topicNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := topics.New(docsFS, "docs", topics.NewGlamourRenderer())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Available topics:")
				for _, name := range manager.Names() {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
				}
				return nil
			}

			content, err := manager.Render(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), content)
			return nil
		},
	}
}

func topicNames() []string {
	manager, err := topics.New(docsFS, "docs", nil)
	if err != nil {
		return nil
	}
	return manager.Names()
}
