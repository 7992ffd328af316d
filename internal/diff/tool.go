package diff

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
)

// Tool compares files with an external diff(1)-compatible program.
type Tool struct {
	Path string // executable, "diff" when empty
	Args []string
}

// FromExitStatus maps a diff(1) exit status to a Status.
func FromExitStatus(code int) Status {
	switch code {
	case 0:
		return NoChanges
	case 1:
		return Changed
	default:
		return Failed
	}
}

// Compare implements Differ by running `<tool> <args> destination candidate`.
func (t Tool) Compare(ctx context.Context, candidate, destination string) Outcome {
	if _, err := os.Stat(destination); os.IsNotExist(err) {
		return Outcome{Status: NewFile}
	}

	path := t.Path
	if path == "" {
		path = "diff"
	}
	args := append(append([]string{}, t.Args...), destination, candidate)
	cmd := exec.CommandContext(ctx, path, args...) //#nosec G204 -- diff tool is chosen by the operator
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	code := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Outcome{Status: Failed, Text: err.Error()}
		}
		code = exitErr.ExitCode()
	}

	status := FromExitStatus(code)
	switch status {
	case Changed:
		return Outcome{Status: Changed, Text: stdout.String()}
	case Failed:
		text := stderr.String()
		if text == "" {
			text = stdout.String()
		}
		return Outcome{Status: Failed, Text: text}
	}
	return Outcome{Status: status}
}
