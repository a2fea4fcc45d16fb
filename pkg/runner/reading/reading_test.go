package reading

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"tableflip.dev/unsent/pkg/mode"
	"tableflip.dev/unsent/pkg/store"
)

func TestReadingToggleAndSet(t *testing.T) {
	kv := store.NewMemory(nil)

	var buf bytes.Buffer
	if err := (&Reading{KV: kv, Out: &buf}).Do(context.Background()); err != nil {
		t.Fatalf("toggle returned error: %v", err)
	}
	if buf.String() != "reading mode on\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}

	off := false
	buf.Reset()
	if err := (&Reading{KV: kv, Set: &off, Out: &buf}).Do(context.Background()); err != nil {
		t.Fatalf("set returned error: %v", err)
	}
	raw, _, _ := kv.Get(mode.ReadingModeKey)
	if string(raw) != "false" || buf.String() != "reading mode off\n" {
		t.Fatalf("unexpected state %q / %q", raw, buf.String())
	}
}

func TestReadingWriteFailure(t *testing.T) {
	kv := store.NewMemory(nil)
	kv.PutErr = errors.New("read-only")
	var buf bytes.Buffer
	if err := (&Reading{KV: kv, Out: &buf}).Do(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
