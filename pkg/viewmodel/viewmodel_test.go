package viewmodel

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/unsent/pkg/entry"
)

func TestProjectEscapesText(t *testing.T) {
	e := entry.Entry{
		ID:       "x",
		Title:    `<script>alert("hi")</script>`,
		Excerpt:  "fish & chips <b>bold</b>",
		Tags:     []string{"<i>", "plain"},
		Category: entry.Prose,
		Date:     entry.Timestamp{Time: time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)},
	}
	got := Project(e)

	for _, field := range append([]string{got.Title, got.Excerpt}, got.Tags...) {
		if strings.ContainsAny(field, "<>") {
			t.Fatalf("unescaped markup in %q", field)
		}
	}
	if got.Title != "&lt;script&gt;alert(&#34;hi&#34;)&lt;/script&gt;" {
		t.Fatalf("unexpected title %q", got.Title)
	}
	if got.Excerpt != "fish &amp; chips &lt;b&gt;bold&lt;/b&gt;" {
		t.Fatalf("unexpected excerpt %q", got.Excerpt)
	}
	if diff := cmp.Diff([]string{"&lt;i&gt;", "plain"}, got.Tags); diff != "" {
		t.Fatalf("unexpected tags (-want +got):\n%s", diff)
	}
	if e.Tags[0] != "<i>" {
		t.Fatalf("source entry was modified")
	}
}

func TestFormatDate(t *testing.T) {
	cases := map[string]time.Time{
		"Jan 5, 2024":  time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		"Dec 31, 1999": time.Date(1999, time.December, 31, 23, 0, 0, 0, time.UTC),
		"":             {},
	}
	for want, in := range cases {
		if got := FormatDate(in); got != want {
			t.Fatalf("FormatDate(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestBadgesOrder(t *testing.T) {
	cases := []struct {
		name string
		e    entry.Entry
		want []Badge
	}{
		{"none", entry.Entry{}, []Badge{}},
		{"all", entry.Entry{Pinned: true, Featured: true, Unsent: true}, []Badge{BadgePinned, BadgeFeatured, BadgeUnsent}},
		{"featured and unsent", entry.Entry{Featured: true, Unsent: true}, []Badge{BadgeFeatured, BadgeUnsent}},
		{"pinned and unsent", entry.Entry{Pinned: true, Unsent: true}, []Badge{BadgePinned, BadgeUnsent}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Badges(tc.e)); diff != "" {
				t.Fatalf("unexpected badges (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBadgeJSON(t *testing.T) {
	b, err := json.Marshal(Badges(entry.Entry{Pinned: true, Unsent: true}))
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(b) != `["pinned","unsent"]` {
		t.Fatalf("unexpected encoding %s", b)
	}
	if BadgeFeatured.Label() != "Featured" {
		t.Fatalf("unexpected label %q", BadgeFeatured.Label())
	}
}

func TestParagraphs(t *testing.T) {
	text := "first line\nsecond line\n\n  \nnext <para>\r\n\r\nlast"
	want := []Paragraph{
		{Lines: []string{"first line", "second line"}},
		{Lines: []string{"next &lt;para&gt;"}},
		{Lines: []string{"last"}},
	}
	if diff := cmp.Diff(want, Paragraphs(text)); diff != "" {
		t.Fatalf("unexpected paragraphs (-want +got):\n%s", diff)
	}
}

func TestParagraphsEmpty(t *testing.T) {
	if got := Paragraphs("\n\n  \n"); len(got) != 0 {
		t.Fatalf("expected no paragraphs, got %+v", got)
	}
}

func TestFocusCarriesProjection(t *testing.T) {
	e := entry.Entry{ID: "f", Title: "T", Excerpt: "a\n\nb", Featured: true}
	got := Focus(e)
	if got.ID != "f" || len(got.Badges) != 1 || got.Badges[0] != BadgeFeatured {
		t.Fatalf("unexpected focus projection: %+v", got)
	}
	if len(got.Paragraphs) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(got.Paragraphs))
	}
}
