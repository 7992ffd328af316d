package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	drterrors "github.com/stevehiehn/drt/internal/errors"
)

func TestSubstituteReplacesEveryOccurrence(t *testing.T) {
	vars := Table{"name": "world"}
	got, unresolved := Substitute(vars, "hello @@name@@, bye @@name@@!")
	if got != "hello world, bye world!" {
		t.Errorf("expected 'hello world, bye world!', got %q", got)
	}
	if len(unresolved) != 0 {
		t.Errorf("expected no unresolved placeholders, got %v", unresolved)
	}
}

func TestSubstituteMultipleKeys(t *testing.T) {
	vars := Table{"env": "prod", "ver": "2.0"}
	got, _ := Substitute(vars, "deploy @@env@@ @@ver@@")
	if got != "deploy prod 2.0" {
		t.Errorf("expected 'deploy prod 2.0', got %q", got)
	}
}

func TestSubstitutePassthroughNoPlaceholders(t *testing.T) {
	vars := Table{"a": "b"}
	for _, in := range []string{"", "plain string", "email me @ home", "a @@ b", "x\n@@\n"} {
		got, _ := Substitute(vars, in)
		if got != in {
			t.Errorf("expected %q unchanged, got %q", in, got)
		}
	}
}

func TestSubstituteLeavesUnknownVerbatim(t *testing.T) {
	vars := Table{"known": "K"}
	got, unresolved := Substitute(vars, "@@unknown@@ and @@known@@")
	if got != "@@unknown@@ and K" {
		t.Errorf("expected '@@unknown@@ and K', got %q", got)
	}
	if diff := cmp.Diff([]string{"unknown"}, unresolved); diff != "" {
		t.Errorf("unresolved mismatch (-want +got):\n%s", diff)
	}
}

func TestSubstituteDoesNotRescanValues(t *testing.T) {
	vars := Table{"a": "@@b@@", "b": "boom", "self": "@@self@@"}
	got, _ := Substitute(vars, "@@a@@ @@self@@")
	if got != "@@b@@ @@self@@" {
		t.Errorf("expected values to be inserted literally, got %q", got)
	}
}

func TestSubstituteNamesDoNotSpanLines(t *testing.T) {
	vars := Table{"x": "X"}
	got, unresolved := Substitute(vars, "a@@\nb@@x@@")
	if got != "a@@\nbX" {
		t.Errorf("expected 'a@@\\nbX', got %q", got)
	}
	if len(unresolved) != 0 {
		t.Errorf("expected no unresolved, got %v", unresolved)
	}
}

func TestSubstituteNextToStrayMarkers(t *testing.T) {
	vars := Table{"a": "1"}
	cases := []struct {
		in         string
		want       string
		unresolved []string
	}{
		{"x@@y then @@a@@", "x@@y then 1", nil},
		{"x@@y @@a@@", "x@@y 1", nil},
		{"@@x@@a@@", "@@x1", []string{"x"}},
		{"@@@a@@", "@1", nil},
		{"@@a@@@@a@@", "11", nil},
		{"@@a@@@", "1@", nil},
		{"mail a@b.c @@a@@", "mail a@b.c 1", nil},
		{"@@ x @@a@@ @@", "@@ x 1 @@", nil},
	}
	for _, tc := range cases {
		got, unresolved := Substitute(vars, tc.in)
		if got != tc.want {
			t.Errorf("%q: expected %q, got %q", tc.in, tc.want, got)
		}
		if diff := cmp.Diff(tc.unresolved, unresolved); diff != "" {
			t.Errorf("%q: unresolved mismatch (-want +got):\n%s", tc.in, diff)
		}
		if line, changed := RewriteLine(vars, tc.in); !changed || line != tc.want {
			t.Errorf("%q: expected rewrite to %q, got %q changed=%v", tc.in, tc.want, line, changed)
		}
	}
}

func TestUnresolvedNames(t *testing.T) {
	got := Unresolved(Table{"set": "v"}, "@@set@@ @@missing@@ @@not a name@@")
	if diff := cmp.Diff([]string{"missing"}, got); diff != "" {
		t.Errorf("unresolved mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriteLineReportsSubstitution(t *testing.T) {
	vars := Table{"dir": "/tmp", "same": "@@same@@"}

	line, changed := RewriteLine(vars, "ls @@dir@@")
	if !changed || line != "ls /tmp" {
		t.Errorf("expected changed 'ls /tmp', got %q changed=%v", line, changed)
	}

	line, changed = RewriteLine(vars, "ls -la")
	if changed || line != "ls -la" {
		t.Errorf("expected unchanged 'ls -la', got %q changed=%v", line, changed)
	}

	// A substitution that yields identical text still counts.
	line, changed = RewriteLine(vars, "@@same@@")
	if !changed || line != "@@same@@" {
		t.Errorf("expected changed identical line, got %q changed=%v", line, changed)
	}
}

func TestTableSetOverwrites(t *testing.T) {
	vars := Table{}
	vars.Set("k", "1")
	vars.Set("k", "2")
	if v, ok := vars.Lookup("k"); !ok || v != "2" {
		t.Errorf("expected latest value '2', got %q", v)
	}
}

func TestRenderWritesArtifact(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "greet.tmpl")
	if err := os.WriteFile(src, []byte("@@greeting@@, world\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	art, err := Render(Table{"greeting": "hello"}, src, Options{TempDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer art.Discard()

	data, err := os.ReadFile(art.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello, world\n" {
		t.Errorf("expected 'hello, world\\n', got %q", data)
	}

	if err := art.Discard(); err != nil {
		t.Fatalf("discard: %v", err)
	}
	if _, err := os.Stat(art.Path); !os.IsNotExist(err) {
		t.Error("expected artifact to be removed")
	}
}

func TestRenderWithoutPlaceholdersIsByteIdentical(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "plain.tmpl")
	raw := []byte("line one\r\nno markers @ all\n\x00binary-ish\n")
	if err := os.WriteFile(src, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	art, err := Render(Table{"a": "b"}, src, Options{TempDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer art.Discard()
	data, _ := os.ReadFile(art.Path)
	if diff := cmp.Diff(raw, data); diff != "" {
		t.Errorf("render changed content (-want +got):\n%s", diff)
	}
}

func TestRenderMissingSource(t *testing.T) {
	_, err := Render(Table{}, filepath.Join(t.TempDir(), "missing.tmpl"), Options{})
	if err == nil {
		t.Fatal("expected error for missing template")
	}
	if drterrors.KindOf(err) != drterrors.SourceUnreadable {
		t.Errorf("expected %s, got %q", drterrors.SourceUnreadable, drterrors.KindOf(err))
	}
}

func TestRenderStrictFailsOnUnresolved(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "t.tmpl")
	os.WriteFile(src, []byte("@@a@@ @@b@@ @@a@@"), 0o644)

	_, err := Render(Table{}, src, Options{Strict: true, TempDir: dir})
	if drterrors.KindOf(err) != drterrors.UnresolvedPlaceholder {
		t.Fatalf("expected %s, got %v", drterrors.UnresolvedPlaceholder, err)
	}

	art, err := Render(Table{}, src, Options{TempDir: dir})
	if err != nil {
		t.Fatalf("non-strict render failed: %v", err)
	}
	defer art.Discard()
	if diff := cmp.Diff([]string{"a", "b", "a"}, art.Unresolved); diff != "" {
		t.Errorf("unresolved mismatch (-want +got):\n%s", diff)
	}
}
