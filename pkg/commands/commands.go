package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "unsent",
		Short: base.Wrap80("Browse a personal archive of prose and poems, and keep private drafts."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addKey(topLevel)
	addGet(topLevel)
	addShow(topLevel)
	addDraft(topLevel)
	addReading(topLevel)
	addShell(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
