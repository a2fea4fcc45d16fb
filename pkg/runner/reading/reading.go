// Package reading switches the persisted reading-mode preference.
package reading

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"tableflip.dev/unsent/pkg/mode"
	"tableflip.dev/unsent/pkg/store"
)

type Reading struct {
	KV     store.KV
	Logger zerolog.Logger
	// Set forces the flag; nil toggles it.
	Set *bool
	Out io.Writer
}

func (r *Reading) Do(ctx context.Context) error {
	if r.KV == nil {
		return errors.New("can not change reading mode, no store")
	}
	c := mode.New(r.KV, nil, mode.WithLogger(r.Logger))

	var err error
	if r.Set == nil {
		err = c.ToggleReadingMode()
	} else {
		err = c.SetReadingMode(*r.Set)
	}
	if err != nil {
		return err
	}

	out := r.Out
	if out == nil {
		out = color.Output
	}
	state := "off"
	if c.State().ReadingMode {
		state = "on"
	}
	_, _ = fmt.Fprintf(out, "reading mode %s\n", state)
	return nil
}
