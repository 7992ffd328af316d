package cmd

import (
	"bytes"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stevehiehn/drt/internal/action"
)

func requirePassiveEnv(t *testing.T) {
	t.Helper()
	if _, ok := os.LookupEnv("DRT_ACTIVE"); ok {
		t.Skip("DRT_ACTIVE is set in the test environment")
	}
}

func runRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand(io.NopCloser(strings.NewReader(stdin)))
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestParseVars(t *testing.T) {
	got, err := parseVars([]string{"a=1", "b=x=y", "c="})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []action.Action{
		action.SetVar{Name: "a", Value: "1"},
		action.SetVar{Name: "b", Value: "x=y"},
		action.SetVar{Name: "c", Value: ""},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d actions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("action %d: expected %v, got %v", i, want[i], got[i])
		}
	}

	for _, bad := range []string{"novalue", "=x"} {
		if _, err := parseVars([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestFlagsStopAtFirstAction(t *testing.T) {
	requirePassiveEnv(t)
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")
	src := filepath.Join(dir, "in.tmpl")
	os.WriteFile(src, []byte("@@k@@\n"), 0o644)

	// -a after the first action belongs to the action, not to drt.
	_, _, err := runRoot(t, "", "v", "k", "-a", "t", src, dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("expected simulate mode to leave destination absent")
	}
}

func TestActiveWritesDestination(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")
	src := filepath.Join(dir, "in.tmpl")
	os.WriteFile(src, []byte("@@greeting@@, world\n"), 0o644)

	out, _, err := runRoot(t, "", "-a", "--", "v", "greeting", "hello", "t", src, dest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello, world\n" {
		t.Errorf("expected 'hello, world\\n', got %q", data)
	}
	if !strings.Contains(out, "new file") {
		t.Errorf("expected new-file report, got:\n%s", out)
	}
}

func TestConflictingModeFlagsAreUsageErrors(t *testing.T) {
	_, _, err := runRoot(t, "", "-a", "-i", "x", "true")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("expected exit code 2, got %v", err)
	}
}

func TestFailureExitsOne(t *testing.T) {
	requirePassiveEnv(t)
	_, _, err := runRoot(t, "", "bogus")
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("expected exit code 1, got %v", err)
	}
	if !strings.Contains(exitErr.Message, "action 1 failed") {
		t.Errorf("unexpected message %q", exitErr.Message)
	}
}

func TestNoActionsShowsHelp(t *testing.T) {
	out, _, err := runRoot(t, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "ACTIONS") {
		t.Errorf("expected help text, got:\n%s", out)
	}
}

func TestJSONResult(t *testing.T) {
	requirePassiveEnv(t)
	out, _, err := runRoot(t, "", "--json", "v", "a", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, `"success":true`) {
		t.Errorf("expected JSON result on stdout, got:\n%s", out)
	}
}

func TestExplain(t *testing.T) {
	out, _, err := runRoot(t, "", "explain", "v", "a", "b", "x", "ls", "-la", "q")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"1. [var] var a=b", "2. [exec] exec ls -la q"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	os.WriteFile(good, []byte("name: ok\nsteps:\n  - exec: [echo, hi]\n"), 0o644)
	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("name: bad\nsteps:\n  - id: x\n"), 0o644)

	out, _, err := runRoot(t, "", "validate", good)
	if err != nil || !strings.Contains(out, "is valid") {
		t.Errorf("expected valid, got err=%v out=%q", err, out)
	}
	if _, _, err := runRoot(t, "", "validate", bad); err == nil {
		t.Error("expected validation failure")
	}
}

func TestInteractivePromptsWithCommandLine(t *testing.T) {
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}
	cases := []struct {
		name    string
		stdin   string
		spawned bool
		prompts int
	}{
		{"junk then yes", "maybe\ny\n", true, 2},
		{"no", "n\n", false, 1},
		{"eof", "", false, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, _, err := runRoot(t, tc.stdin, "-i", "x", "echo", "drt-ran")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if n := strings.Count(out, "run (y/n): echo drt-ran"); n != tc.prompts {
				t.Errorf("expected %d prompts, got %d in:\n%s", tc.prompts, n, out)
			}
			ran := strings.Contains(out, "LIVE: run echo drt-ran")
			if ran != tc.spawned {
				t.Errorf("expected spawned=%v, got output:\n%s", tc.spawned, out)
			}
			if !tc.spawned && !strings.Contains(out, "WOULD: run echo drt-ran") {
				t.Errorf("expected would-run report, got:\n%s", out)
			}
		})
	}
}

func TestActionFileForwardReference(t *testing.T) {
	requirePassiveEnv(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "actions.yaml")
	os.WriteFile(file, []byte("name: fwd\nsteps:\n  - exec: [echo, \"@@later@@\"]\n  - var: {name: later, value: x}\n"), 0o644)

	if _, _, err := runRoot(t, "", "-f", file); err != nil {
		t.Fatalf("expected the run to proceed without --strict, got %v", err)
	}

	_, _, err := runRoot(t, "", "--strict", "-f", file)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("expected exit code 2 with --strict, got %v", err)
	}
	if !strings.Contains(exitErr.Message, "UNRESOLVED_PLACEHOLDER") {
		t.Errorf("unexpected message %q", exitErr.Message)
	}

	out, stderr, err := runRoot(t, "", "validate", file)
	if err != nil || !strings.Contains(out, "is valid") || !strings.Contains(stderr, "Warning:") {
		t.Errorf("expected valid with warning, got err=%v out=%q stderr=%q", err, out, stderr)
	}
	if _, _, err := runRoot(t, "", "validate", "--strict", file); err == nil {
		t.Error("expected strict validation failure")
	}
}
