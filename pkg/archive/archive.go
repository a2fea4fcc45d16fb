// Package archive holds the sorted master collection of entries.
package archive

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/tailscale/hujson"

	"tableflip.dev/unsent/pkg/entry"
)

// ErrNotFound is returned when an id does not resolve to an entry.
var ErrNotFound = errors.New("archive: entry not found")

// LoadError reports why a collection could not be built. Source names the
// payload (and record, when known) that failed.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("archive: load: %v", e.Err)
	}
	return fmt.Sprintf("archive: load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

const (
	SourceProse = "prose"
	SourcePoems = "poems"
)

// Collection is the immutable, sorted set of loaded entries.
type Collection struct {
	entries []entry.Entry
	byID    map[string]int
}

// Load tags each raw record with the category of its source, concatenates
// prose then poems and sorts by pinned, featured and date (all descending).
// Entries equal on all three keys keep their input order. Load either
// returns a complete collection or a *LoadError.
func Load(prose, poems []entry.Raw) (*Collection, error) {
	all := make([]entry.Entry, 0, len(prose)+len(poems))
	for _, src := range []struct {
		name     string
		category entry.Category
		records  []entry.Raw
	}{
		{SourceProse, entry.Prose, prose},
		{SourcePoems, entry.Poem, poems},
	} {
		for i, r := range src.records {
			e, err := r.Entry(src.category)
			if err != nil {
				return nil, &LoadError{Source: fmt.Sprintf("%s[%d]", src.name, i), Err: err}
			}
			all = append(all, e)
		}
	}

	byID := make(map[string]int, len(all))
	for _, e := range all {
		if _, dup := byID[e.ID]; dup {
			return nil, &LoadError{Err: fmt.Errorf("duplicate entry id %q", e.ID)}
		}
		byID[e.ID] = 0
	}

	sortEntries(all)
	for i, e := range all {
		byID[e.ID] = i
	}
	return &Collection{entries: all, byID: byID}, nil
}

// Decode parses the two source payloads and loads them. Payloads may use
// JSON with comments and trailing commas.
func Decode(prose, poems []byte) (*Collection, error) {
	p, err := decodeRecords(prose)
	if err != nil {
		return nil, &LoadError{Source: SourceProse, Err: err}
	}
	q, err := decodeRecords(poems)
	if err != nil {
		return nil, &LoadError{Source: SourcePoems, Err: err}
	}
	return Load(p, q)
}

func decodeRecords(data []byte) ([]entry.Raw, error) {
	std, err := hujson.Standardize(append([]byte(nil), data...))
	if err != nil {
		return nil, fmt.Errorf("parse payload: %w", err)
	}
	std = bytes.TrimSpace(std)
	if len(std) == 0 || std[0] != '[' {
		return nil, errors.New("payload is not an array of records")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(std, &items); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	records := make([]entry.Raw, 0, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, fmt.Errorf("record %d is not an object", i)
		}
		var r entry.Raw
		if err := json.Unmarshal(item, &r); err != nil {
			return nil, fmt.Errorf("decode record %d: %w", i, err)
		}
		records = append(records, r)
	}
	return records, nil
}

func sortEntries(entries []entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left, right := entries[i], entries[j]
		if left.Pinned != right.Pinned {
			return left.Pinned
		}
		if left.Featured != right.Featured {
			return left.Featured
		}
		return left.Date.After(right.Date.Time)
	})
}

// Entries returns the collection in its load order.
func (c *Collection) Entries() []entry.Entry {
	if c == nil {
		return nil
	}
	out := make([]entry.Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// FindByID resolves an entry by id.
func (c *Collection) FindByID(id string) (entry.Entry, error) {
	if c == nil {
		return entry.Entry{}, ErrNotFound
	}
	i, ok := c.byID[id]
	if !ok {
		return entry.Entry{}, ErrNotFound
	}
	return c.entries[i], nil
}

// Unsent returns the entries flagged unsent, in collection order.
func (c *Collection) Unsent() []entry.Entry {
	if c == nil {
		return nil
	}
	out := make([]entry.Entry, 0)
	for _, e := range c.entries {
		if e.Unsent {
			out = append(out, e)
		}
	}
	return out
}

func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Count returns how many entries belong to category.
func (c *Collection) Count(category entry.Category) int {
	if c == nil {
		return 0
	}
	n := 0
	for _, e := range c.entries {
		if e.Category == category {
			n++
		}
	}
	return n
}
