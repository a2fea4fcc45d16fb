// Package viewmodel maps entries onto render-ready values. Every text field
// that reaches a rendering surface is escaped here, so renderers can treat
// the values as inert text.
package viewmodel

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"

	"tableflip.dev/unsent/pkg/entry"
)

const dateFormat = "Jan 2, 2006"

// Badge is a status marker derived from an entry's flags.
type Badge int

const (
	BadgePinned Badge = iota
	BadgeFeatured
	BadgeUnsent
)

var badgeNames = map[Badge][2]string{
	BadgePinned:   {"pinned", "Pinned"},
	BadgeFeatured: {"featured", "Featured"},
	BadgeUnsent:   {"unsent", "Unsent"},
}

// AllBadges returns every badge kind in display order.
func AllBadges() []Badge {
	return []Badge{BadgePinned, BadgeFeatured, BadgeUnsent}
}

func (b Badge) String() string {
	return badgeNames[b][0]
}

// Label is the human readable badge text.
func (b Badge) Label() string {
	return badgeNames[b][1]
}

func (b Badge) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// RenderModel is the projection of one entry for list rendering.
type RenderModel struct {
	ID       string         `json:"id"`
	Category entry.Category `json:"category"`
	Title    string         `json:"title"`
	Excerpt  string         `json:"excerpt"`
	Date     string         `json:"date"`
	Badges   []Badge        `json:"badges"`
	Tags     []string       `json:"tags"`
}

// Paragraph is one blank-line separated block of text; each line within it
// is a soft break.
type Paragraph struct {
	Lines []string `json:"lines"`
}

// FocusModel is the projection used by the single-entry view.
type FocusModel struct {
	RenderModel
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Project builds the list projection of e.
func Project(e entry.Entry) RenderModel {
	tags := make([]string, len(e.Tags))
	for i, tag := range e.Tags {
		tags[i] = Sanitize(tag)
	}
	return RenderModel{
		ID:       e.ID,
		Category: e.Category,
		Title:    Sanitize(e.Title),
		Excerpt:  Sanitize(e.Excerpt),
		Date:     FormatDate(e.Date.Time),
		Badges:   Badges(e),
		Tags:     tags,
	}
}

// ProjectAll projects entries, keeping their order.
func ProjectAll(entries []entry.Entry) []RenderModel {
	out := make([]RenderModel, len(entries))
	for i, e := range entries {
		out[i] = Project(e)
	}
	return out
}

// Focus builds the focused projection of e.
func Focus(e entry.Entry) FocusModel {
	return FocusModel{
		RenderModel: Project(e),
		Paragraphs:  Paragraphs(e.Excerpt),
	}
}

// Badges lists the badges for e: pinned, featured, unsent, each only when set.
func Badges(e entry.Entry) []Badge {
	badges := make([]Badge, 0, 3)
	if e.Pinned {
		badges = append(badges, BadgePinned)
	}
	if e.Featured {
		badges = append(badges, BadgeFeatured)
	}
	if e.Unsent {
		badges = append(badges, BadgeUnsent)
	}
	return badges
}

// FormatDate renders t as "Jan 5, 2024".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

var blankLine = regexp.MustCompile(`\n(?:[ \t]*\n)+`)

// Paragraphs splits text on blank lines. Lines inside a paragraph are kept
// apart so a renderer can join them with soft breaks. Output is escaped.
func Paragraphs(text string) []Paragraph {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []Paragraph
	for _, block := range blankLine.Split(text, -1) {
		lines := trimBlankLines(strings.Split(block, "\n"))
		if len(lines) == 0 {
			continue
		}
		for i, line := range lines {
			lines[i] = Sanitize(strings.TrimRight(line, " \t"))
		}
		out = append(out, Paragraph{Lines: lines})
	}
	return out
}

func trimBlankLines(lines []string) []string {
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Sanitize neutralizes markup-significant characters.
func Sanitize(s string) string {
	return html.EscapeString(s)
}
