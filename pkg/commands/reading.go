package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/unsent/pkg/runner/reading"
	"tableflip.dev/unsent/pkg/snake"
)

func addReading(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:       "reading [on|off]",
		Short:     "Toggle the reading layout for focused entries",
		ValidArgs: []string{"on", "off"},
		Args:      cobra.MaximumNArgs(1),
		Example: `
unsent reading
unsent reading on
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := reading.Reading{}
			if len(args) == 1 {
				on, err := snake.ParseBool(args[0])
				if err != nil {
					return err
				}
				r.Set = &on
			}
			rt, err := loadRuntime()
			if err != nil {
				return err
			}
			r.KV = rt.disk
			r.Logger = rt.log
			return r.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
