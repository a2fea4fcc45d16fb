package options

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/unsent/pkg/filter"
)

func TestFilterArgs(t *testing.T) {
	o := &FilterOptions{}
	cmd := &cobra.Command{Use: "ls", RunE: func(*cobra.Command, []string) error { return nil }}
	AddFilterArgs(cmd, o)
	cmd.SetArgs([]string{"--category", "Poem", "-q", "steel", "--unsent"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	st, err := o.State()
	if err != nil {
		t.Fatalf("State returned error: %v", err)
	}
	if st.Category != filter.Poem || st.Query != "steel" || !o.Unsent {
		t.Fatalf("unexpected options %+v / %+v", o, st)
	}

	o.Category = "essays"
	if _, err := o.State(); err == nil {
		t.Fatal("expected unknown category error")
	}
}

func TestHandleErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	prev := color.Output
	color.Output = &buf
	defer func() { color.Output = prev }()
	o := &OutputOptions{JSON: true}
	if err := o.HandleError(errors.New("boom")); err != nil {
		t.Fatalf("expected error to be printed, got %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"error":"boom"}` {
		t.Fatalf("unexpected output %q", got)
	}

	o.JSON = false
	if err := o.HandleError(errors.New("boom")); err == nil {
		t.Fatal("expected error to be returned")
	}
}
