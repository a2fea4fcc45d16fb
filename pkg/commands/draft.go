package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/unsent/pkg/commands/options"
	"tableflip.dev/unsent/pkg/runner/draft"
)

func addDraft(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Write and manage private drafts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addDraftAction(cmd, draft.Add, "add <text...>", "Save a new draft", cobra.MinimumNArgs(1), `
unsent draft add "some things are better left unsent"
`)
	addDraftAction(cmd, draft.List, "ls", "List drafts, oldest first", cobra.NoArgs, `
unsent draft ls
`)
	addDraftAction(cmd, draft.Restore, "restore <id>", "Print the content of a draft", cobra.ExactArgs(1), `
unsent draft restore 1714564800000
`)
	addDraftAction(cmd, draft.Remove, "rm <id>", "Delete a draft", cobra.ExactArgs(1), `
unsent draft rm 1714564800000
`)
	addDraftAction(cmd, draft.Export, "export <file>", "Write all drafts to a JSON file", cobra.ExactArgs(1), `
unsent draft export ~/drafts.json
`)

	topLevel.AddCommand(cmd)
}

func addDraftAction(parent *cobra.Command, action draft.Action, use, short string, args cobra.PositionalArgs, example string) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     use,
		Short:   short,
		Example: example,
		Args:    args,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime()
			if err != nil {
				return oo.HandleError(err)
			}
			d := draft.Draft{
				KV:     rt.disk,
				Logger: rt.log,
				Action: action,
				Arg:    strings.Join(args, " "),
				JSON:   oo.JSON,
			}
			err = d.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}
