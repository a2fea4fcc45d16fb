// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/unsent/pkg/filter"
)

// FilterOptions captures the archive filter flags.
type FilterOptions struct {
	Category string
	Query    string
	Unsent   bool
}

// AddFilterArgs wires the filter flags on the provided command.
func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Category, "category", "c", "all",
		"Specify the category: all, prose or poem.")
	cmd.Flags().StringVarP(&o.Query, "query", "q", "",
		"Only show entries whose title, excerpt or tags contain the query.")
	cmd.Flags().BoolVar(&o.Unsent, "unsent", false,
		"List only the unsent entries.")
}

// State returns the filter state the flags describe.
func (o *FilterOptions) State() (filter.State, error) {
	c, err := filter.ParseCategory(o.Category)
	if err != nil {
		return filter.State{}, err
	}
	return filter.State{Category: c, Query: o.Query}, nil
}
