package filter

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"tableflip.dev/unsent/pkg/entry"
)

func newEntry(id string, c entry.Category, title, excerpt string, tags ...string) entry.Entry {
	return entry.Entry{
		ID:       id,
		Title:    title,
		Excerpt:  excerpt,
		Category: c,
		Tags:     tags,
		Date:     entry.Timestamp{Time: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func ids(entries []entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func fixture() []entry.Entry {
	return []entry.Entry{
		newEntry("a", entry.Prose, "The kitchen at night", "I left the light on."),
		newEntry("b", entry.Poem, "Ode to a Train", "steel and WEATHER", "travel"),
		newEntry("c", entry.Prose, "After", "nothing in the title", "Grief", "winter"),
		newEntry("d", entry.Poem, "Small hours", "the kitchen clock"),
	}
}

func TestApplyAllEmptyIsIdentity(t *testing.T) {
	got := Apply(fixture(), State{Category: All})
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, ids(got)); diff != "" {
		t.Fatalf("unexpected view (-want +got):\n%s", diff)
	}
}

func TestApply(t *testing.T) {
	cases := []struct {
		name  string
		state State
		want  []string
	}{
		{"prose only", State{Category: Prose}, []string{"a", "c"}},
		{"poem only", State{Category: Poem}, []string{"b", "d"}},
		{"zero state means all", State{}, []string{"a", "b", "c", "d"}},
		{"title match", State{Query: "ode"}, []string{"b"}},
		{"excerpt match is case insensitive", State{Query: "weather"}, []string{"b"}},
		{"query trimmed", State{Query: "  KITCHEN "}, []string{"a", "d"}},
		{"tag match is case insensitive", State{Query: "grief"}, []string{"c"}},
		{"category and query compose", State{Category: Poem, Query: "kitchen"}, []string{"d"}},
		{"no match", State{Query: "zebra"}, []string{}},
		{"whitespace query is empty", State{Category: Prose, Query: "   "}, []string{"a", "c"}},
		{"substring not token", State{Query: "itch"}, []string{"a", "d"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ids(Apply(fixture(), tc.state))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("unexpected view (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{"": All, "ALL": All, " poem ": Poem, "Prose": Prose} {
		got, err := ParseCategory(in)
		if err != nil {
			t.Fatalf("ParseCategory(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseCategory(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseCategory("letters"); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func genEntries(t *rapid.T) []entry.Entry {
	words := []string{"grief", "Kitchen", "train", "winter", "LIGHT", "ode", "a", ""}
	n := rapid.IntRange(0, 30).Draw(t, "n")
	out := make([]entry.Entry, n)
	for i := range out {
		c := rapid.SampledFrom(entry.Categories()).Draw(t, "category")
		tags := rapid.SliceOfN(rapid.SampledFrom(words), 0, 3).Draw(t, "tags")
		out[i] = newEntry(
			fmt.Sprintf("e%d", i),
			c,
			strings.Join(rapid.SliceOfN(rapid.SampledFrom(words), 0, 3).Draw(t, "title"), " "),
			strings.Join(rapid.SliceOfN(rapid.SampledFrom(words), 0, 5).Draw(t, "excerpt"), " "),
			tags...,
		)
	}
	return out
}

func genState(t *rapid.T) State {
	return State{
		Category: rapid.SampledFrom(Categories()).Draw(t, "state.category"),
		Query:    rapid.SampledFrom([]string{"", " ", "grief", "KIT", "in", "ode ", "zzz"}).Draw(t, "state.query"),
	}
}

func isSubsequence(sub, full []entry.Entry) bool {
	j := 0
	for _, e := range full {
		if j < len(sub) && sub[j].ID == e.ID {
			j++
		}
	}
	return j == len(sub)
}

func TestApplyIsOrderedSubsequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := genEntries(t)
		got := Apply(c, genState(t))
		if !isSubsequence(got, c) {
			t.Fatalf("result %v is not a subsequence of %v", ids(got), ids(c))
		}
	})
}

func TestApplyIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := genEntries(t)
		st := genState(t)
		once := Apply(c, st)
		twice := Apply(once, st)
		if diff := cmp.Diff(ids(once), ids(twice)); diff != "" {
			t.Fatalf("re-applying changed the view (-once +twice):\n%s", diff)
		}
		if diff := cmp.Diff(once, Apply(c, st)); diff != "" {
			t.Fatalf("repeated call differs (-first +second):\n%s", diff)
		}
	})
}

func TestApplyQueryNarrows(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		c := genEntries(t)
		st := genState(t)
		wide := Apply(c, State{Category: st.Category})
		narrow := Apply(c, st)
		if !isSubsequence(narrow, wide) {
			t.Fatalf("query widened the view: %v not within %v", ids(narrow), ids(wide))
		}
	})
}
