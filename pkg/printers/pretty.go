// Package printers renders session frames to a terminal.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/net/html"

	"tableflip.dev/unsent/pkg/app"
	"tableflip.dev/unsent/pkg/drafts"
	"tableflip.dev/unsent/pkg/mode"
	"tableflip.dev/unsent/pkg/viewmodel"
)

const (
	defaultWidth = 80
	readingWidth = 64
	readingLeft  = 8
)

var spacing = strings.Repeat(" ", len("p-0000-000  "))

// PrettyPrint writes human readable frames.
type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
	// Width is the wrap width of focused text; zero means 80.
	Width int
}

var _ app.Renderer = (*PrettyPrint)(nil)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

// Render draws whichever view the frame's mode selects.
func (pp *PrettyPrint) Render(f app.Frame) {
	switch {
	case f.Focus != nil:
		pp.Focus(*f.Focus, f.Mode.ReadingMode)
	case f.Mode.Primary == mode.UnsentListing:
		pp.TitleWithCount("Unsent", len(f.Unsent))
		pp.Entries(f.Unsent...)
	case f.Mode.Primary == mode.DraftAuthoring:
		pp.TitleWithCount("Drafts", len(f.Drafts))
		pp.Drafts(f.Drafts...)
	default:
		pp.TitleWithCount(listTitle(f), len(f.Entries))
		pp.Entries(f.Entries...)
	}
	if f.Notice != "" {
		pp.Notice(f.Notice)
	}
}

func (pp *PrettyPrint) RenderError(err error) {
	r := color.New(color.FgRed, color.Bold)
	_, _ = r.Fprintf(pp.out(), "error: %v\n", err)
}

func listTitle(f app.Frame) string {
	title := "Archive"
	if c := f.Filter.Category.String(); c != "" && c != "all" {
		title = strings.ToUpper(c[:1]) + c[1:]
	}
	if q := strings.TrimSpace(f.Filter.Query); q != "" {
		title += fmt.Sprintf(" matching %q", q)
	}
	return title
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	w := pp.out()

	if pp.ShowID {
		_, _ = t.Fprint(w, spacing)
	}
	_, _ = t.Fprintln(w, title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	w := pp.out()

	if pp.ShowID {
		_, _ = t.Fprint(w, spacing)
	}
	_, _ = t.Fprint(w, title)
	_, _ = c.Fprintf(w, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(w, " entry")
	default:
		_, _ = c.Fprintln(w, " entries")
	}
}

func none(w io.Writer, showID bool) {
	f := color.New(color.Faint, color.Italic)
	if showID {
		_, _ = f.Fprint(w, spacing)
	}
	_, _ = f.Fprint(w, " none\n\n")
}

// Entries prints one row per entry.
func (pp *PrettyPrint) Entries(entries ...viewmodel.RenderModel) {
	w := pp.out()
	if len(entries) == 0 {
		none(w, pp.ShowID)
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, e := range entries {
		row := []interface{}{}
		if pp.ShowID {
			row = append(row, y.Sprint(e.ID))
		}
		row = append(row,
			faint.Sprint(e.Date),
			BadgeMarks(e.Badges),
			bold.Sprint(text(e.Title)),
			text(e.Excerpt),
		)
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w, "")
}

// Drafts prints the draft list.
func (pp *PrettyPrint) Drafts(list ...drafts.Draft) {
	w := pp.out()
	if len(list) == 0 {
		none(w, pp.ShowID)
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	for _, d := range list {
		tbl.AddRow(y.Sprint(d.ID), faint.Sprint(viewmodel.FormatDate(d.Date)), d.Content)
	}
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w, "")
}

// Focus prints a single entry with its paragraphs wrapped. Reading mode
// narrows the column and indents it.
func (pp *PrettyPrint) Focus(m viewmodel.FocusModel, reading bool) {
	w := pp.out()
	width := pp.Width
	if width <= 0 {
		width = defaultWidth
	}
	left := uint(0)
	if reading {
		if width > readingWidth {
			width = readingWidth
		}
		left = readingLeft
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	header := bold.Sprint(text(m.Title))
	meta := faint.Sprintf("%s · %s", m.Category, m.Date)
	if marks := BadgeMarks(m.Badges); marks != "" {
		meta += " " + marks
	}
	var b strings.Builder
	b.WriteString(header + "\n" + meta + "\n\n")
	for i, p := range m.Paragraphs {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, line := range p.Lines {
			b.WriteString(wordwrap.String(text(line), width))
			b.WriteString("\n")
		}
	}
	if len(m.Tags) > 0 {
		tags := make([]string, len(m.Tags))
		for i, t := range m.Tags {
			tags[i] = "#" + text(t)
		}
		b.WriteString("\n" + faint.Sprint(strings.Join(tags, " ")) + "\n")
	}
	_, _ = fmt.Fprintln(w, indent.String(b.String(), left))
}

func (pp *PrettyPrint) Notice(msg string) {
	m := color.New(color.FgYellow)
	_, _ = m.Fprintf(pp.out(), "! %s\n", msg)
}

// BadgeMarks renders badges as short coloured markers.
func BadgeMarks(badges []viewmodel.Badge) string {
	marks := make([]string, 0, len(badges))
	for _, b := range badges {
		marks = append(marks, badgeColor(b).Sprint(Mark(b)))
	}
	return strings.Join(marks, "")
}

// Mark is the one-character symbol of a badge.
func Mark(b viewmodel.Badge) string {
	switch b {
	case viewmodel.BadgePinned:
		return "^"
	case viewmodel.BadgeFeatured:
		return "*"
	case viewmodel.BadgeUnsent:
		return "~"
	}
	return "?"
}

func badgeColor(b viewmodel.Badge) *color.Color {
	switch b {
	case viewmodel.BadgePinned:
		return color.New(color.FgHiCyan, color.Bold)
	case viewmodel.BadgeFeatured:
		return color.New(color.FgHiYellow)
	default:
		return color.New(color.FgHiMagenta)
	}
}

// text undoes the markup escaping of projected fields for terminal output.
func text(s string) string {
	return html.UnescapeString(s)
}
