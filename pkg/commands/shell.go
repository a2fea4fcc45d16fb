package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/unsent/pkg/runner/shell"
)

func addShell(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Browse the archive from a command prompt",
		Example: `
unsent shell
echo "category poem" | unsent shell
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			s := shell.Shell{
				Options:     rt.options(),
				In:          os.Stdin,
				Out:         cmd.OutOrStdout(),
				HistoryFile: shell.HistoryFile(rt.disk.BasePath()),
			}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
