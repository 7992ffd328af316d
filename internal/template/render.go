package template

import (
	"fmt"
	"os"
	"sort"
	"strings"

	drterrors "github.com/stevehiehn/drt/internal/errors"
)

// Artifact is the rendered form of a template, held in a temporary file until
// the action that produced it completes.
type Artifact struct {
	Path       string
	Source     string
	Unresolved []string // placeholder names left verbatim
}

// Discard removes the temporary file backing the artifact.
func (a *Artifact) Discard() error {
	if a == nil || a.Path == "" {
		return nil
	}
	err := os.Remove(a.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Options controls rendering.
type Options struct {
	// Strict fails the render when a placeholder has no table entry.
	Strict bool
	// TempDir holds the artifact file; empty means os.TempDir().
	TempDir string
}

// Render reads the template at src, substitutes vars into it and writes the
// result to a fresh temporary file.
func Render(vars Table, src string, opts Options) (*Artifact, error) {
	raw, err := os.ReadFile(src)
	if err != nil {
		return nil, drterrors.Wrap(drterrors.SourceUnreadable, err, "reading template %s", src)
	}

	out, unresolved := Substitute(vars, string(raw))
	if opts.Strict && len(unresolved) > 0 {
		return nil, &drterrors.RunError{
			Kind:    drterrors.UnresolvedPlaceholder,
			Message: fmt.Sprintf("%s: no value for %s", src, joinPlaceholders(unresolved)),
			Hint:    "Set the missing keys with 'var <key> <value>' before the template action",
		}
	}

	f, err := os.CreateTemp(opts.TempDir, "drt-render-*")
	if err != nil {
		return nil, fmt.Errorf("creating render file: %w", err)
	}
	if _, err := f.WriteString(out); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("writing render file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("closing render file: %w", err)
	}

	return &Artifact{Path: f.Name(), Source: src, Unresolved: unresolved}, nil
}

func joinPlaceholders(names []string) string {
	seen := map[string]bool{}
	var uniq []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			uniq = append(uniq, Marker+n+Marker)
		}
	}
	sort.Strings(uniq)
	return strings.Join(uniq, ", ")
}
