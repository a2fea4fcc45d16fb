package commands

import (
	"context"

	"github.com/spf13/cobra"

	teaui "tableflip.dev/unsent/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
unsent ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			i := teaui.UI{Options: rt.options(), Watcher: rt.disk}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
