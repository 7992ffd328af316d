package errors

import (
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestRunErrorMessageIncludesIndex(t *testing.T) {
	err := &RunError{Kind: InvalidInput, Message: "unknown action \"q\"", Index: 3}
	if got := err.Error(); got != `[INVALID_INPUT] action 3: unknown action "q"` {
		t.Errorf("unexpected message %q", got)
	}
	err.Index = 0
	if got := err.Error(); got != `[INVALID_INPUT] unknown action "q"` {
		t.Errorf("unexpected message %q", got)
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	inner := NewNonZeroExit(3, "false")
	wrapped := fmt.Errorf("dispatch: %w", inner)
	if KindOf(wrapped) != NonZeroExit {
		t.Errorf("expected %s, got %q", NonZeroExit, KindOf(wrapped))
	}
	re, ok := As(wrapped)
	if !ok || re.Code != 3 {
		t.Fatalf("expected code 3, got %+v", re)
	}
	if KindOf(fmt.Errorf("plain")) != "" {
		t.Error("expected empty kind for plain error")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	err := Wrap(SourceUnreadable, fs.ErrNotExist, "reading template %s", "a.tmpl")
	if !strings.Contains(err.Error(), "a.tmpl") || !strings.Contains(err.Error(), "not exist") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if err.Unwrap() != fs.ErrNotExist {
		t.Error("expected cause to be preserved")
	}
}
