package mode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"tableflip.dev/unsent/pkg/entry"
	"tableflip.dev/unsent/pkg/store"
)

// ReadingModeKey is the store key of the persisted reading-mode flag.
const ReadingModeKey = "prefs/reading-mode"

// Resolver looks up entries by id. *archive.Collection satisfies it.
type Resolver interface {
	FindByID(id string) (entry.Entry, error)
}

// Option customises a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for recovered storage problems and
// unresolved focus requests.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = log
	}
}

// Controller holds the current State and applies the transitions to it.
type Controller struct {
	state    State
	kv       store.KV
	resolver Resolver
	log      zerolog.Logger
}

// New returns a controller in browsing mode with the reading-mode flag
// restored from kv. A missing or unreadable flag means false.
func New(kv store.KV, r Resolver, opts ...Option) *Controller {
	c := &Controller{kv: kv, resolver: r, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(c)
	}
	c.state = State{Primary: Browsing, ReadingMode: c.loadReadingMode()}
	return c
}

func (c *Controller) loadReadingMode() bool {
	if c.kv == nil {
		return false
	}
	raw, ok, err := c.kv.Get(ReadingModeKey)
	if err != nil {
		c.log.Warn().Err(err).Msg("reading mode flag unreadable, using default")
		return false
	}
	if !ok {
		return false
	}
	on, err := strconv.ParseBool(strings.TrimSpace(string(raw)))
	if err != nil {
		c.log.Warn().Str("value", string(raw)).Msg("reading mode flag malformed, using default")
		return false
	}
	return on
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

func (c *Controller) ToggleDraftAuthoring() []Effect {
	var effects []Effect
	c.state, effects = ToggleDraftAuthoring(c.state)
	return effects
}

func (c *Controller) ToggleUnsentListing() []Effect {
	var effects []Effect
	c.state, effects = ToggleUnsentListing(c.state)
	return effects
}

// OpenFocus focuses id. Ids that do not resolve leave the state untouched
// and report false.
func (c *Controller) OpenFocus(id string) bool {
	if c.resolver == nil {
		c.log.Warn().Str("id", id).Msg("focus requested without an archive")
		return false
	}
	if _, err := c.resolver.FindByID(id); err != nil {
		c.log.Warn().Str("id", id).Err(err).Msg("focus requested for unknown entry")
		return false
	}
	c.state = OpenFocus(c.state, id)
	return true
}

func (c *Controller) CloseFocus() {
	c.state = CloseFocus(c.state)
}

// ToggleReadingMode flips and persists the reading-mode flag. The new value
// is only kept once it has been written.
func (c *Controller) ToggleReadingMode() error {
	return c.SetReadingMode(!c.state.ReadingMode)
}

// SetReadingMode persists on and applies it.
func (c *Controller) SetReadingMode(on bool) error {
	if c.kv != nil {
		if err := c.kv.Put(ReadingModeKey, []byte(strconv.FormatBool(on))); err != nil {
			return fmt.Errorf("mode: persist reading mode: %w", err)
		}
	}
	if c.state.ReadingMode != on {
		c.state = ToggleReadingMode(c.state)
	}
	return nil
}

// Reload re-reads the persisted reading-mode flag, for when another process
// changed it.
func (c *Controller) Reload() {
	c.state.ReadingMode = c.loadReadingMode()
}
