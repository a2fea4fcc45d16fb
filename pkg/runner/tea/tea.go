// Package teaui is the full-screen archive browser.
package teaui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/unsent/pkg/app"
	"tableflip.dev/unsent/pkg/store"
)

// Watcher reports changes made to the store by other processes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// UI starts a session and runs the browser until the user quits.
type UI struct {
	Options app.Options
	// Watcher is optional; without it external draft edits are not picked up.
	Watcher Watcher
}

func (u *UI) Do(ctx context.Context) error {
	sink := &Sink{}
	opts := u.Options
	opts.Renderer = sink
	s, err := app.Start(ctx, opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var events <-chan store.Event
	if u.Watcher != nil {
		if events, err = u.Watcher.Watch(ctx); err != nil {
			return fmt.Errorf("watch store: %w", err)
		}
	}

	p := tea.NewProgram(New(s, sink, events), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// Sink is the session renderer of the browser. It keeps the latest frame.
type Sink struct {
	frame app.Frame
	err   error
}

func (f *Sink) Render(frame app.Frame) { f.frame = frame }
func (f *Sink) RenderError(err error) { f.err = err }
