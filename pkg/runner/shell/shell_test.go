package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"tableflip.dev/unsent/pkg/app"
	"tableflip.dev/unsent/pkg/archive"
	"tableflip.dev/unsent/pkg/drafts"
	"tableflip.dev/unsent/pkg/entry"
	"tableflip.dev/unsent/pkg/store"
)

func options(t *testing.T, kv store.KV) app.Options {
	t.Helper()
	c, err := archive.Load(
		[]entry.Raw{{ID: "p1", Title: "Kitchen", Excerpt: "light", Date: "2024-01-01"}},
		[]entry.Raw{{ID: "q1", Title: "Ode", Excerpt: "steel", Date: "2024-02-01"}},
	)
	if err != nil {
		t.Fatalf("archive.Load: %v", err)
	}
	return app.Options{
		Loader: app.LoaderFunc(func(context.Context) (*archive.Collection, error) { return c, nil }),
		KV:     kv,
	}
}

func TestScriptedSession(t *testing.T) {
	color.NoColor = true
	kv := store.NewMemory(nil)
	script := strings.Join([]string{
		"category poem",
		"open q1",
		"close",
		"drafts",
		"write dear you",
		"save",
		"reading on",
		"bogus",
		"quit",
		"write never reached",
	}, "\n")

	var out bytes.Buffer
	s := &Shell{Options: options(t, kv), In: strings.NewReader(script), Out: &out}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}

	f := s.session.Frame()
	if f.Buffer != "" || len(f.Drafts) != 1 || f.Drafts[0].Content != "dear you" {
		t.Fatalf("unexpected drafts state %+v", f)
	}
	if !f.Mode.ReadingMode {
		t.Fatal("expected reading mode on")
	}
	if !strings.Contains(out.String(), "Unknown command: bogus") {
		t.Fatalf("expected unknown command message:\n%s", out.String())
	}

	persisted := drafts.New(kv).List()
	if len(persisted) != 1 {
		t.Fatalf("expected draft persisted, got %d", len(persisted))
	}
}

func TestExecErrors(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	s := &Shell{Options: options(t, store.NewMemory(nil)), In: strings.NewReader(""), Out: &out}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do returned error: %v", err)
	}

	out.Reset()
	s.Exec("category essays")
	s.Exec("open missing")
	s.Exec("reading maybe")
	got := out.String()
	for _, want := range []string{`unknown category "essays"`, `no entry "missing"`, "invalid syntax"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestCompleter(t *testing.T) {
	if diff := cmp.Diff([]string{"reading", "restore", "rm"}, completer("r")); diff != "" {
		t.Fatalf("completer mismatch (-want +got):\n%s", diff)
	}
}
