// Package draft manages drafts from the command line.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"tableflip.dev/unsent/pkg/drafts"
	"tableflip.dev/unsent/pkg/printers"
	"tableflip.dev/unsent/pkg/store"
)

// Action selects what Do performs.
type Action string

const (
	Add     Action = "add"
	List    Action = "ls"
	Restore Action = "restore"
	Remove  Action = "rm"
	Export  Action = "export"
)

type Draft struct {
	KV     store.KV
	Logger zerolog.Logger
	Action Action
	// Arg is the draft text for Add, the id for Restore and Remove, and the
	// destination path for Export.
	Arg  string
	JSON bool
	Out  io.Writer
}

func (d *Draft) out() io.Writer {
	if d.Out == nil {
		return color.Output
	}
	return d.Out
}

func (d *Draft) Do(ctx context.Context) error {
	if d.KV == nil {
		return errors.New("can not manage drafts, no store")
	}
	s := drafts.New(d.KV, drafts.WithLogger(d.Logger))

	switch d.Action {
	case Add:
		created, err := s.Create(d.Arg)
		if err != nil {
			return err
		}
		return d.print(created, func(w io.Writer) {
			_, _ = fmt.Fprintf(w, "saved draft %s\n", created.ID)
		})
	case List:
		list := s.List()
		return d.print(list, func(w io.Writer) {
			pp := printers.PrettyPrint{Out: w}
			pp.TitleWithCount("Drafts", len(list))
			pp.Drafts(list...)
		})
	case Restore:
		content, err := s.RestoreContent(d.Arg)
		if err != nil {
			return fmt.Errorf("restore %s: %w", d.Arg, err)
		}
		return d.print(map[string]string{"id": d.Arg, "content": content}, func(w io.Writer) {
			_, _ = fmt.Fprintln(w, content)
		})
	case Remove:
		if err := s.Delete(d.Arg); err != nil {
			return fmt.Errorf("remove %s: %w", d.Arg, err)
		}
		return d.print(map[string]string{"deleted": d.Arg}, func(w io.Writer) {
			_, _ = fmt.Fprintf(w, "deleted draft %s\n", d.Arg)
		})
	case Export:
		if strings.TrimSpace(d.Arg) == "" {
			return errors.New("export needs a destination file")
		}
		if err := s.Export(d.Arg); err != nil {
			return err
		}
		return d.print(map[string]interface{}{"path": d.Arg, "count": s.Len()}, func(w io.Writer) {
			_, _ = fmt.Fprintf(w, "exported %d drafts to %s\n", s.Len(), d.Arg)
		})
	}
	return fmt.Errorf("unknown draft action %q", d.Action)
}

func (d *Draft) print(v interface{}, pretty func(io.Writer)) error {
	if d.JSON {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(d.out(), string(b))
		return nil
	}
	pretty(d.out())
	return nil
}
