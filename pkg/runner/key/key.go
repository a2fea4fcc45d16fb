// Package key provides CLI helpers to display the archive legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/unsent/pkg/filter"
	"tableflip.dev/unsent/pkg/printers"
	"tableflip.dev/unsent/pkg/viewmodel"
)

var categoryMeaning = map[filter.Category]string{
	filter.All:   "every entry",
	filter.Prose: "prose pieces",
	filter.Poem:  "poems",
}

var badgeMeaning = map[viewmodel.Badge]string{
	viewmodel.BadgePinned:   "kept at the top of the archive",
	viewmodel.BadgeFeatured: "highlighted, listed before the rest",
	viewmodel.BadgeUnsent:   "written for someone, never sent",
}

// Key prints the badge and category legend.
type Key struct {
	Out io.Writer
}

func (k *Key) out() io.Writer {
	if k.Out == nil {
		return color.Output
	}
	return k.Out
}

// Do renders the badge and category keys.
func (k *Key) Do(ctx context.Context) error {
	w := k.out()
	_, _ = fmt.Fprintln(w, "")

	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Badges"), bold.Sprint("Meaning"))
	for _, b := range viewmodel.AllBadges() {
		tbl.AddRow(printers.BadgeMarks([]viewmodel.Badge{b})+" "+b.Label(), badgeMeaning[b])
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w, "")

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Categories"), bold.Sprint("Meaning"))
	for _, c := range filter.Categories() {
		tbl.AddRow(c.String(), categoryMeaning[c])
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(w, tbl)

	_, _ = fmt.Fprintln(w, "")
	return nil
}
