// Package entry defines the archived writing entries and their raw source form.
package entry

import (
	"errors"
	"fmt"
	"strings"
)

// Category identifies which source an entry was loaded from.
type Category string

const (
	// Prose entries come from the prose source.
	Prose Category = "prose"
	// Poem entries come from the poem source.
	Poem Category = "poem"
)

// Categories returns the known categories in display order.
func Categories() []Category {
	return []Category{Prose, Poem}
}

func (c Category) String() string {
	return string(c)
}

// Entry is one archived piece of writing. Entries are read-only once loaded.
type Entry struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Excerpt  string    `json:"excerpt"`
	Date     Timestamp `json:"date"`
	Tags     []string  `json:"tags"`
	Category Category  `json:"category"`
	Pinned   bool      `json:"pinned"`
	Featured bool      `json:"featured"`
	Unsent   bool      `json:"unsent"`
}

// Raw is an entry record as it appears in a source payload. It has no
// category; that is assigned from the source it was read from.
type Raw struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Date     string   `json:"date"`
	Tags     []string `json:"tags"`
	Pinned   bool     `json:"pinned"`
	Featured bool     `json:"featured"`
	Unsent   bool     `json:"unsent"`
}

// ErrMissingField is returned by Raw.Entry when a required field is empty.
var ErrMissingField = errors.New("entry: missing required field")

// Entry validates r and converts it into an Entry of the given category.
func (r Raw) Entry(c Category) (Entry, error) {
	for _, f := range []struct {
		name  string
		value string
	}{
		{"id", r.ID},
		{"title", r.Title},
		{"excerpt", r.Excerpt},
		{"date", r.Date},
	} {
		if strings.TrimSpace(f.value) == "" {
			return Entry{}, fmt.Errorf("%w %q", ErrMissingField, f.name)
		}
	}
	when, err := ParseTime(r.Date)
	if err != nil {
		return Entry{}, fmt.Errorf("entry %s: %w", r.ID, err)
	}
	tags := make([]string, len(r.Tags))
	copy(tags, r.Tags)
	return Entry{
		ID:       r.ID,
		Title:    r.Title,
		Excerpt:  r.Excerpt,
		Date:     Timestamp{Time: when},
		Tags:     tags,
		Category: c,
		Pinned:   r.Pinned,
		Featured: r.Featured,
		Unsent:   r.Unsent,
	}, nil
}

func (e Entry) String() string {
	return fmt.Sprintf("%s [%s] %s", e.ID, e.Category, e.Title)
}
