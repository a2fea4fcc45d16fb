// Package mode holds the presentation mode state machine: one primary mode,
// an optional single-entry focus overlay and the reading-mode preference.
package mode

import "encoding/json"

// Mode is the primary presentation mode. Exactly one is active.
type Mode int

const (
	Browsing Mode = iota
	DraftAuthoring
	UnsentListing
)

var modeNames = map[Mode]string{
	Browsing:       "browsing",
	DraftAuthoring: "draftAuthoring",
	UnsentListing:  "unsentListing",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Effect is a side effect the rendering collaborator should perform after a
// transition. The controller never performs them itself.
type Effect int

const (
	// FocusDraftInput asks the renderer to put input focus on the draft editor.
	FocusDraftInput Effect = iota
	// RefreshUnsent asks for a fresh derivation of the unsent subset.
	RefreshUnsent
)

func (e Effect) String() string {
	switch e {
	case FocusDraftInput:
		return "focusDraftInput"
	case RefreshUnsent:
		return "refreshUnsent"
	default:
		return "unknown"
	}
}

func (e Effect) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// State is the complete mode state. Focus is the id of the focused entry,
// empty when no entry is focused.
type State struct {
	Primary     Mode   `json:"primary"`
	Focus       string `json:"focus,omitempty"`
	ReadingMode bool   `json:"readingMode"`
}

// Focused reports whether the focus overlay is open.
func (s State) Focused() bool {
	return s.Focus != ""
}

func (s State) String() string {
	b, _ := json.Marshal(s)
	return string(b)
}

// ToggleDraftAuthoring enters draft authoring from browsing or unsent
// listing, and returns to browsing when already authoring.
func ToggleDraftAuthoring(s State) (State, []Effect) {
	if s.Primary == DraftAuthoring {
		s.Primary = Browsing
		return s, nil
	}
	s.Primary = DraftAuthoring
	return s, []Effect{FocusDraftInput}
}

// ToggleUnsentListing enters the unsent listing from browsing or draft
// authoring, and returns to browsing when already listing.
func ToggleUnsentListing(s State) (State, []Effect) {
	if s.Primary == UnsentListing {
		s.Primary = Browsing
		return s, nil
	}
	s.Primary = UnsentListing
	return s, []Effect{RefreshUnsent}
}

// OpenFocus lays the focus overlay for id over the current primary mode,
// replacing any previous focus.
func OpenFocus(s State, id string) State {
	s.Focus = id
	return s
}

// CloseFocus removes the overlay; the primary mode is untouched.
func CloseFocus(s State) State {
	s.Focus = ""
	return s
}

// ToggleReadingMode flips the reading-mode preference.
func ToggleReadingMode(s State) State {
	s.ReadingMode = !s.ReadingMode
	return s
}
