package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/unsent/pkg/commands/options"
	"tableflip.dev/unsent/pkg/runner/get"
	"tableflip.dev/unsent/pkg/snake"
)

func addGet(topLevel *cobra.Command) {
	fo := &options.FilterOptions{}
	io := &options.IDOptions{}
	i := &options.InteractiveOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"get", "list"},
		Short:   "List the archive, newest first",
		Example: `
unsent ls
unsent ls --category poem
unsent ls -q winter --show-id
unsent ls --unsent --json
unsent ls -i
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := fo.State()
			if err != nil {
				return oo.HandleError(err)
			}
			rt, err := loadRuntime()
			if err != nil {
				return oo.HandleError(err)
			}
			g := get.Get{
				Options:  rt.options(),
				Filter:   st,
				Unsent:   fo.Unsent,
				Renderer: oo.Renderer(io.ShowID),
			}
			if i.Interactive {
				g.Prompt = &snake.Prompter{In: os.Stdin, Out: os.Stdout}
			}
			err = g.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddFilterArgs(cmd, fo)
	_ = cmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return categoryCompletions(), cobra.ShellCompDirectiveNoFileComp
	})
	options.AddShowIDArgs(cmd, io)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
