package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"unicode"
)

// Result holds the outcome of a spawned process.
type Result struct {
	Stdout   string
	ExitCode int  // -1 when the process did not exit normally
	Signaled bool // terminated without an exit code
}

// Spawner starts a process from a literal argument vector and waits for it.
type Spawner interface {
	// Resolve finds the executable Run would start for name.
	Resolve(name string) (string, error)
	Run(ctx context.Context, argv []string, stdout, stderr io.Writer) (*Result, error)
}

// LookPath resolves name to an executable path through PATH. Names containing a
// separator are checked as given.
func LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Exec spawns real processes.
type Exec struct {
	Dir string
}

// Resolve implements Spawner. Relative names containing a separator are
// resolved against Dir, as Run does.
func (e Exec) Resolve(name string) (string, error) {
	if e.Dir != "" && strings.ContainsRune(name, filepath.Separator) && !filepath.IsAbs(name) {
		return LookPath(filepath.Join(e.Dir, name))
	}
	return LookPath(name)
}

// Run executes argv without a shell. Stdout is captured and copied to stdout;
// stderr goes straight to stderr. A non-nil error means the process could not
// be started; exit classification is left to the caller.
func (e Exec) Run(ctx context.Context, argv []string, stdout, stderr io.Writer) (*Result, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //#nosec G204 -- argv is authored by the operator
	if e.Dir != "" {
		cmd.Dir = e.Dir
	}
	var captured bytes.Buffer
	if stdout != nil {
		cmd.Stdout = io.MultiWriter(&captured, stdout)
	} else {
		cmd.Stdout = &captured
	}
	if stderr != nil {
		cmd.Stderr = stderr
	}

	err := cmd.Run()
	res := &Result{}
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, err
		}
		res.ExitCode = exitErr.ExitCode()
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			res.Signaled = true
			res.ExitCode = -1
		} else if res.ExitCode < 0 {
			res.Signaled = true
		}
	}
	res.Stdout = captured.String()
	return res, nil
}

// CommandLine joins argv for display. Empty arguments and arguments containing
// whitespace or quotes are quoted.
func CommandLine(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		if arg == "" || strings.ContainsFunc(arg, func(r rune) bool {
			return unicode.IsSpace(r) || r == '"' || r == '\''
		}) {
			arg = strconv.Quote(arg)
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}
