// Package show prints a single entry.
package show

import (
	"context"
	"fmt"

	"tableflip.dev/unsent/pkg/app"
	"tableflip.dev/unsent/pkg/archive"
	"tableflip.dev/unsent/pkg/printers"
)

type Show struct {
	Options  app.Options
	ID       string
	Renderer app.Renderer
}

func (s *Show) Do(ctx context.Context) error {
	last := &printers.Last{}
	opts := s.Options
	opts.Renderer = last
	sess, err := app.Start(ctx, opts)
	if err != nil {
		return err
	}
	if !sess.OpenFocus(s.ID) {
		return fmt.Errorf("show %s: %w", s.ID, archive.ErrNotFound)
	}

	r := s.Renderer
	if r == nil {
		r = &printers.PrettyPrint{}
	}
	r.Render(last.Frame)
	return nil
}
