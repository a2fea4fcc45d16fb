// Package app wires the archive, filter, projector, mode controller and
// draft store into a Session that UIs and CLIs drive one event at a time.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/unsent/pkg/archive"
	"tableflip.dev/unsent/pkg/drafts"
	"tableflip.dev/unsent/pkg/filter"
	"tableflip.dev/unsent/pkg/mode"
	"tableflip.dev/unsent/pkg/store"
	"tableflip.dev/unsent/pkg/viewmodel"
)

// Loader performs the one-time archive load.
type Loader interface {
	Load(ctx context.Context) (*archive.Collection, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (*archive.Collection, error)

func (f LoaderFunc) Load(ctx context.Context) (*archive.Collection, error) {
	return f(ctx)
}

// Renderer receives every recomputed frame.
type Renderer interface {
	Render(Frame)
	RenderError(error)
}

// Frame is everything a surface needs to draw the current state.
type Frame struct {
	Filter  filter.State            `json:"filter"`
	Mode    mode.State              `json:"mode"`
	Entries []viewmodel.RenderModel `json:"entries"`
	Unsent  []viewmodel.RenderModel `json:"unsent,omitempty"`
	Focus   *viewmodel.FocusModel   `json:"focus,omitempty"`
	Drafts  []drafts.Draft          `json:"drafts"`
	Buffer  string                  `json:"buffer,omitempty"`
	Effects []mode.Effect           `json:"effects,omitempty"`
	Notice  string                  `json:"notice,omitempty"`
	Total   int                     `json:"total"`
}

// Options configures Start.
type Options struct {
	Loader   Loader
	KV       store.KV
	Renderer Renderer
	// Logger defaults to a no-op logger.
	Logger *zerolog.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Session is the running browser. It is not safe for concurrent use.
type Session struct {
	archive  *archive.Collection
	filter   filter.State
	mode     *mode.Controller
	drafts   *drafts.Store
	renderer Renderer
	log      zerolog.Logger

	buffer  string
	effects []mode.Effect
	notice  string
}

var errNoLoader = errors.New("app: no loader configured")

// Start loads the archive and builds a session in browsing mode. A failed
// load is rendered once and returned; no session is created.
func Start(ctx context.Context, opts Options) (*Session, error) {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	r := opts.Renderer
	if r == nil {
		r = discard{}
	}

	if opts.Loader == nil {
		r.RenderError(errNoLoader)
		return nil, errNoLoader
	}
	c, err := opts.Loader.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("archive load failed")
		r.RenderError(err)
		return nil, err
	}
	log.Debug().Int("entries", c.Len()).Msg("archive loaded")

	kv := opts.KV
	if kv == nil {
		kv = store.NewMemory(nil)
	}
	draftOpts := []drafts.Option{drafts.WithLogger(log)}
	if opts.Clock != nil {
		draftOpts = append(draftOpts, drafts.WithClock(opts.Clock))
	}

	s := &Session{
		archive:  c,
		filter:   filter.State{Category: filter.All},
		mode:     mode.New(kv, c, mode.WithLogger(log)),
		drafts:   drafts.New(kv, draftOpts...),
		renderer: r,
		log:      log,
	}
	s.render()
	return s, nil
}

// Archive returns the loaded collection.
func (s *Session) Archive() *archive.Collection {
	return s.archive
}

// Frame recomputes the full frame from the current state.
func (s *Session) Frame() Frame {
	st := s.mode.State()
	f := Frame{
		Filter:  s.filter,
		Mode:    st,
		Entries: viewmodel.ProjectAll(filter.Apply(s.archive.Entries(), s.filter)),
		Drafts:  s.drafts.List(),
		Buffer:  s.buffer,
		Effects: append([]mode.Effect(nil), s.effects...),
		Notice:  s.notice,
		Total:   s.archive.Len(),
	}
	if st.Primary == mode.UnsentListing {
		f.Unsent = viewmodel.ProjectAll(s.archive.Unsent())
	}
	if st.Focused() {
		if e, err := s.archive.FindByID(st.Focus); err == nil {
			fm := viewmodel.Focus(e)
			f.Focus = &fm
		}
	}
	return f
}

// begin clears the per-event outputs of the previous event.
func (s *Session) begin() {
	s.effects = nil
	s.notice = ""
}

func (s *Session) render() {
	s.renderer.Render(s.Frame())
}

func (s *Session) SetCategory(c filter.Category) {
	s.begin()
	s.filter.Category = c
	s.render()
}

func (s *Session) SetQuery(q string) {
	s.begin()
	s.filter.Query = q
	s.render()
}

// SetFilter replaces both filter inputs in one event.
func (s *Session) SetFilter(st filter.State) {
	s.begin()
	s.filter = st
	if s.filter.Category == "" {
		s.filter.Category = filter.All
	}
	s.render()
}

// OpenFocus focuses entry id. Unknown ids leave the state unchanged and
// report false.
func (s *Session) OpenFocus(id string) bool {
	s.begin()
	ok := s.mode.OpenFocus(id)
	s.render()
	return ok
}

func (s *Session) CloseFocus() {
	s.begin()
	s.mode.CloseFocus()
	s.render()
}

func (s *Session) ToggleDraftAuthoring() {
	s.begin()
	s.effects = s.mode.ToggleDraftAuthoring()
	s.render()
}

func (s *Session) ToggleUnsentListing() {
	s.begin()
	s.effects = s.mode.ToggleUnsentListing()
	s.render()
}

// ToggleReadingMode flips the persisted reading-mode flag. A failed write
// leaves the flag unchanged and is surfaced as a notice.
func (s *Session) ToggleReadingMode() error {
	return s.SetReadingMode(!s.mode.State().ReadingMode)
}

func (s *Session) SetReadingMode(on bool) error {
	s.begin()
	err := s.mode.SetReadingMode(on)
	if err != nil {
		s.log.Error().Err(err).Msg("reading mode not saved")
		s.notice = "reading mode could not be saved"
	}
	s.render()
	return err
}

// SetBuffer replaces the draft authoring buffer.
func (s *Session) SetBuffer(text string) {
	s.begin()
	s.buffer = text
	s.render()
}

// SaveDraft stores the buffer as a new draft and clears it. Blank buffers
// are rejected with a notice and change nothing.
func (s *Session) SaveDraft() (drafts.Draft, error) {
	s.begin()
	d, err := s.drafts.Create(s.buffer)
	if err != nil {
		var verr *drafts.ValidationError
		if errors.As(err, &verr) {
			s.notice = verr.Reason
		} else {
			s.log.Error().Err(err).Msg("draft not saved")
			s.notice = "draft could not be saved"
		}
		s.render()
		return drafts.Draft{}, err
	}
	s.buffer = ""
	s.render()
	return d, nil
}

// RestoreDraft copies the content of draft id into the buffer. The draft
// itself is kept.
func (s *Session) RestoreDraft(id string) bool {
	s.begin()
	content, err := s.drafts.RestoreContent(id)
	if err != nil {
		s.log.Warn().Str("id", id).Err(err).Msg("restore requested for unknown draft")
		s.render()
		return false
	}
	s.buffer = content
	s.render()
	return true
}

// DeleteDraft removes draft id. Unknown ids are a logged no-op.
func (s *Session) DeleteDraft(id string) error {
	s.begin()
	err := s.drafts.Delete(id)
	switch {
	case errors.Is(err, drafts.ErrNotFound):
		s.log.Warn().Str("id", id).Msg("delete requested for unknown draft")
		err = nil
	case err != nil:
		s.log.Error().Err(err).Msg("draft not deleted")
		s.notice = "draft could not be deleted"
	}
	s.render()
	return err
}

// ExportDrafts writes the current drafts to path.
func (s *Session) ExportDrafts(path string) error {
	if err := s.drafts.Export(path); err != nil {
		return fmt.Errorf("app: %w", err)
	}
	return nil
}

// Reload re-reads drafts and the reading-mode flag from the store, for when
// another process changed them.
func (s *Session) Reload() {
	s.begin()
	s.drafts.Reload()
	s.mode.Reload()
	s.render()
}

type discard struct{}

func (discard) Render(Frame) {}
func (discard) RenderError(error) {}
