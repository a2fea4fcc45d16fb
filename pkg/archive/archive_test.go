package archive

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"tableflip.dev/unsent/pkg/entry"
)

func raw(id, date string) entry.Raw {
	return entry.Raw{ID: id, Title: "Title " + id, Excerpt: "Body " + id, Date: date}
}

func ids(entries []entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestLoadOrdersByDateDescending(t *testing.T) {
	c, err := Load([]entry.Raw{
		raw("jan", "2024-01-01"),
		raw("feb", "2024-02-01"),
		raw("mar", "2024-03-01"),
	}, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"mar", "feb", "jan"}, ids(c.Entries())); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestLoadPinnedBeforeLaterDate(t *testing.T) {
	a := raw("a", "2024-01-01")
	a.Pinned = true
	b := raw("b", "2024-12-01")

	c, err := Load([]entry.Raw{b}, []entry.Raw{a})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, ids(c.Entries())); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestLoadFeaturedAfterPinned(t *testing.T) {
	pinned := raw("pinned", "2020-01-01")
	pinned.Pinned = true
	featured := raw("featured", "2023-01-01")
	featured.Featured = true
	both := raw("both", "2019-01-01")
	both.Pinned = true
	both.Featured = true
	plain := raw("plain", "2024-06-01")

	c, err := Load([]entry.Raw{plain, featured, pinned, both}, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"both", "pinned", "featured", "plain"}, ids(c.Entries())); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestLoadAssignsCategoryBySource(t *testing.T) {
	c, err := Load([]entry.Raw{raw("p", "2024-01-01")}, []entry.Raw{raw("q", "2024-01-02")})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	p, err := c.FindByID("p")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if p.Category != entry.Prose {
		t.Fatalf("expected prose, got %s", p.Category)
	}
	q, _ := c.FindByID("q")
	if q.Category != entry.Poem {
		t.Fatalf("expected poem, got %s", q.Category)
	}
	if c.Count(entry.Prose) != 1 || c.Count(entry.Poem) != 1 || c.Len() != 2 {
		t.Fatalf("unexpected counts: prose=%d poem=%d len=%d", c.Count(entry.Prose), c.Count(entry.Poem), c.Len())
	}
}

func TestLoadRejectsDuplicateIDsAcrossSources(t *testing.T) {
	c, err := Load([]entry.Raw{raw("x", "2024-01-01")}, []entry.Raw{raw("x", "2024-01-02")})
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if c != nil {
		t.Fatalf("expected no collection on failure")
	}
}

func TestLoadRejectsMissingField(t *testing.T) {
	bad := raw("x", "2024-01-01")
	bad.Title = ""
	_, err := Load(nil, []entry.Raw{raw("ok", "2024-01-01"), bad})
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if loadErr.Source != "poems[1]" {
		t.Fatalf("unexpected source %q", loadErr.Source)
	}
	if !errors.Is(err, entry.ErrMissingField) {
		t.Fatalf("expected wrapped ErrMissingField, got %v", err)
	}
}

func TestFindByIDNotFound(t *testing.T) {
	c, err := Load([]entry.Raw{raw("a", "2024-01-01")}, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if _, err := c.FindByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUnsentKeepsCollectionOrder(t *testing.T) {
	a := raw("a", "2024-01-01")
	a.Unsent = true
	b := raw("b", "2024-05-01")
	c1 := raw("c", "2024-03-01")
	c1.Unsent = true

	c, err := Load([]entry.Raw{a, b, c1}, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"c", "a"}, ids(c.Unsent())); diff != "" {
		t.Fatalf("unexpected unsent subset (-want +got):\n%s", diff)
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	c, err := Load([]entry.Raw{raw("a", "2024-01-01"), raw("b", "2024-01-02")}, nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	got := c.Entries()
	got[0].Title = "mutated"
	if again := c.Entries(); again[0].Title == "mutated" {
		t.Fatalf("collection was mutated through Entries()")
	}
}

func TestDecode(t *testing.T) {
	prose := []byte(`[
		// the long one
		{"id": "p1", "title": "On leaving", "excerpt": "a\n\nb", "date": "2024-01-05", "tags": ["Grief"], "pinned": true},
	]`)
	poems := []byte(`[{"id": "q1", "title": "Ode", "excerpt": "x", "date": "2024-02-05T10:00:00Z", "unsent": true}]`)

	c, err := Decode(prose, poems)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if diff := cmp.Diff([]string{"p1", "q1"}, ids(c.Entries())); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
	q, _ := c.FindByID("q1")
	if !q.Unsent || q.Category != entry.Poem {
		t.Fatalf("unexpected poem entry: %+v", q)
	}
}

func TestDecodeMalformed(t *testing.T) {
	good := []byte(`[]`)
	cases := map[string]struct {
		prose, poems []byte
		source       string
	}{
		"not json":         {[]byte(`{{`), good, SourceProse},
		"object not array": {good, []byte(`{"id": "x"}`), SourcePoems},
		"array of strings": {[]byte(`["a"]`), good, SourceProse},
		"empty payload":    {good, []byte(``), SourcePoems},
		"wrong field type": {[]byte(`[{"id": 1}]`), good, SourceProse},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := Decode(tc.prose, tc.poems)
			var loadErr *LoadError
			if !errors.As(err, &loadErr) {
				t.Fatalf("expected *LoadError, got %v", err)
			}
			if loadErr.Source != tc.source {
				t.Fatalf("expected source %q, got %q", tc.source, loadErr.Source)
			}
			if c != nil {
				t.Fatalf("expected nil collection")
			}
		})
	}
}

func TestLoadSortIsStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		dates := []string{"2024-01-01", "2024-02-01", "2024-03-01"}
		records := make([]entry.Raw, n)
		for i := range records {
			r := raw(fmt.Sprintf("e%d", i), rapid.SampledFrom(dates).Draw(t, "date"))
			r.Pinned = rapid.Bool().Draw(t, "pinned")
			r.Featured = rapid.Bool().Draw(t, "featured")
			records[i] = r
		}
		split := rapid.IntRange(0, n).Draw(t, "split")

		c, err := Load(records[:split], records[split:])
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		position := make(map[string]int, n)
		for i, r := range records {
			position[r.ID] = i
		}
		got := c.Entries()
		for i := 1; i < len(got); i++ {
			prev, cur := got[i-1], got[i]
			if prev.Pinned != cur.Pinned {
				if !prev.Pinned {
					t.Fatalf("unpinned %s before pinned %s", prev.ID, cur.ID)
				}
				continue
			}
			if prev.Featured != cur.Featured {
				if !prev.Featured {
					t.Fatalf("unfeatured %s before featured %s", prev.ID, cur.ID)
				}
				continue
			}
			if prev.Date.Before(cur.Date.Time) {
				t.Fatalf("older %s before newer %s", prev.ID, cur.ID)
			}
			if prev.Date.Equal(cur.Date.Time) && position[prev.ID] > position[cur.ID] {
				t.Fatalf("equal keys reordered: %s before %s", prev.ID, cur.ID)
			}
		}
	})
}
