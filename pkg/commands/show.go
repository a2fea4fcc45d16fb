package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/unsent/pkg/commands/options"
	"tableflip.dev/unsent/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry in full",
		Example: `
unsent show 2024-letter-to-m
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime()
			if err != nil {
				return oo.HandleError(err)
			}
			s := show.Show{
				Options:  rt.options(),
				ID:       args[0],
				Renderer: oo.Renderer(false),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
