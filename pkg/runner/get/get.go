// Package get lists the archive through a filter.
package get

import (
	"context"
	"fmt"

	"tableflip.dev/unsent/pkg/app"
	"tableflip.dev/unsent/pkg/filter"
	"tableflip.dev/unsent/pkg/printers"
)

// FilterPrompter asks for filter inputs interactively.
type FilterPrompter interface {
	Filter(st filter.State) (filter.State, error)
}

type Get struct {
	Options app.Options
	Filter  filter.State
	Unsent  bool
	// Prompt, when set, is asked for the filter before listing.
	Prompt   FilterPrompter
	Renderer app.Renderer
}

func (g *Get) Do(ctx context.Context) error {
	last := &printers.Last{}
	opts := g.Options
	opts.Renderer = last
	s, err := app.Start(ctx, opts)
	if err != nil {
		return err
	}

	st := g.Filter
	if g.Prompt != nil {
		if st, err = g.Prompt.Filter(st); err != nil {
			return fmt.Errorf("interactive filter: %w", err)
		}
	}
	s.SetFilter(st)
	if g.Unsent {
		s.ToggleUnsentListing()
	}

	r := g.Renderer
	if r == nil {
		r = &printers.PrettyPrint{}
	}
	r.Render(last.Frame)
	return nil
}
