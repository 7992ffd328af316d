package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/stevehiehn/drt/internal/diff"
	drterrors "github.com/stevehiehn/drt/internal/errors"
)

// Reporter prints one human-readable line (or block) per engine event.
type Reporter struct {
	out io.Writer
	st  styles
}

// NewReporter writes the report to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out, st: newStyles(out)}
}

// Writer returns the underlying writer, used to echo spawned process output.
func (r *Reporter) Writer() io.Writer {
	return r.out
}

// Diff reports a comparison between a rendered candidate and its destination.
// phase is "pending" before a write and "result" after it.
func (r *Reporter) Diff(phase, candidate, dest string, o diff.Outcome) {
	fmt.Fprintf(r.out, "%s %s %s\n", r.st.header.Render("diff "+phase+":"), candidate, dest)
	switch o.Status {
	case diff.NoChanges:
		fmt.Fprintf(r.out, "  %s\n", r.st.dim.Render("no changes"))
	case diff.NewFile:
		fmt.Fprintf(r.out, "  %s %s\n", r.st.added.Render("new file"), dest)
	case diff.Changed:
		fmt.Fprintf(r.out, "  %s\n", r.st.would.Render("changed"))
		r.diffText(o.Text)
	case diff.Failed:
		fmt.Fprintf(r.out, "  %s %s\n", r.st.err.Render("comparison failed:"), strings.TrimSpace(o.Text))
	}
}

func (r *Reporter) diffText(text string) {
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		trimmed := strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(trimmed, "+++"), strings.HasPrefix(trimmed, "---"), strings.HasPrefix(trimmed, "@@"):
			fmt.Fprintln(r.out, r.st.dim.Render(trimmed))
		case strings.HasPrefix(trimmed, "+"):
			fmt.Fprintln(r.out, r.st.added.Render(trimmed))
		case strings.HasPrefix(trimmed, "-"):
			fmt.Fprintln(r.out, r.st.removed.Render(trimmed))
		default:
			fmt.Fprintln(r.out, trimmed)
		}
	}
}

// Written reports that dest was replaced.
func (r *Reporter) Written(dest string) {
	fmt.Fprintf(r.out, "%s %s\n", r.st.live.Render("LIVE: write"), dest)
}

// WouldWrite reports a write that the current mode does not perform.
func (r *Reporter) WouldWrite(dest string) {
	fmt.Fprintf(r.out, "%s %s\n", r.st.would.Render("WOULD: write"), dest)
}

// WouldRun reports a command that was not spawned.
func (r *Reporter) WouldRun(cmdline string) {
	fmt.Fprintf(r.out, "%s %s\n", r.st.would.Render("WOULD: run"), cmdline)
}

// LiveRun reports a command about to be spawned.
func (r *Reporter) LiveRun(cmdline string) {
	fmt.Fprintf(r.out, "%s %s\n", r.st.live.Render("LIVE: run"), cmdline)
}

// ExitStatus reports a spawned process's exit code.
func (r *Reporter) ExitStatus(code int) {
	style := r.st.live
	if code != 0 {
		style = r.st.err
	}
	fmt.Fprintf(r.out, "%s %d\n", style.Render("status code:"), code)
}

// VarSet reports a variable assignment.
func (r *Reporter) VarSet(name, value string) {
	fmt.Fprintf(r.out, "%s %s=%s\n", r.st.dim.Render("var"), name, value)
}

// Unresolved warns about placeholders left verbatim in a rendered file.
func (r *Reporter) Unresolved(src string, names []string) {
	fmt.Fprintf(r.out, "%s %s: %s\n", r.st.would.Render("unresolved:"), src, strings.Join(names, ", "))
}

// Error reports a failed action.
func (r *Reporter) Error(where string, err error) {
	fmt.Fprintf(r.out, "%s %s %s\n", where+":", r.st.err.Render("error:"), r.st.err.Render(err.Error()))
	if re, ok := drterrors.As(err); ok && re.Hint != "" {
		fmt.Fprintf(r.out, "  %s %s\n", r.st.dim.Render("hint:"), re.Hint)
	}
}
