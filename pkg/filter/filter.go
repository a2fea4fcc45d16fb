// Package filter derives the visible subset of a collection from a category
// and a free-text query.
package filter

import (
	"fmt"
	"strings"

	"tableflip.dev/unsent/pkg/entry"
)

// Category selects which entries pass the category predicate.
type Category string

const (
	All   Category = "all"
	Prose Category = Category(entry.Prose)
	Poem  Category = Category(entry.Poem)
)

// Categories returns the selectable categories in display order.
func Categories() []Category {
	return []Category{All, Prose, Poem}
}

// ParseCategory maps user input onto a Category. Empty input selects All.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return All, nil
	}
	for _, candidate := range Categories() {
		if candidate == c {
			return candidate, nil
		}
	}
	return All, fmt.Errorf("filter: unknown category %q", raw)
}

func (c Category) String() string {
	return string(c)
}

// State is the complete input of the filter. It is a plain value; two equal
// states always produce the same view.
type State struct {
	Category Category `json:"category"`
	Query    string   `json:"query"`
}

// Normalized returns s with an empty category defaulted to All and the query
// trimmed and lower-cased.
func (s State) Normalized() State {
	if s.Category == "" {
		s.Category = All
	}
	s.Query = strings.ToLower(strings.TrimSpace(s.Query))
	return s
}

// Apply returns the entries matching st, in their original order.
func Apply(entries []entry.Entry, st State) []entry.Entry {
	st = st.Normalized()
	out := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if matches(e, st) {
			out = append(out, e)
		}
	}
	return out
}

// Matches reports whether e passes both predicates of st.
func Matches(e entry.Entry, st State) bool {
	return matches(e, st.Normalized())
}

func matches(e entry.Entry, st State) bool {
	if st.Category != All && Category(e.Category) != st.Category {
		return false
	}
	if st.Query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(e.Title), st.Query) ||
		strings.Contains(strings.ToLower(e.Excerpt), st.Query) {
		return true
	}
	for _, tag := range e.Tags {
		if strings.Contains(strings.ToLower(tag), st.Query) {
			return true
		}
	}
	return false
}
