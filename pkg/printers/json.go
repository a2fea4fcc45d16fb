package printers

import (
	"encoding/json"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/unsent/pkg/app"
)

// JSON writes each frame as one JSON document.
type JSON struct {
	Out io.Writer
}

var _ app.Renderer = (*JSON)(nil)

func (j *JSON) out() io.Writer {
	if j.Out == nil {
		return color.Output
	}
	return j.Out
}

func (j *JSON) Render(f app.Frame) {
	enc := json.NewEncoder(j.out())
	enc.SetIndent("", "  ")
	_ = enc.Encode(f)
}

func (j *JSON) RenderError(err error) {
	_ = json.NewEncoder(j.out()).Encode(map[string]string{"error": err.Error()})
}

// Last keeps only the most recent frame, for commands that print once.
type Last struct {
	Frame app.Frame
	Err   error
}

func (l *Last) Render(f app.Frame) { l.Frame = f }
func (l *Last) RenderError(err error) { l.Err = err }
