// Package diff compares a rendered candidate file against its destination and
// classifies the relationship between the two.
package diff

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pmezard/go-difflib/difflib"
)

// Status classifies a comparison.
type Status int

const (
	NoChanges Status = iota
	NewFile
	Changed
	Failed
)

func (s Status) String() string {
	switch s {
	case NoChanges:
		return "no-changes"
	case NewFile:
		return "new-file"
	case Changed:
		return "changed"
	default:
		return "failed"
	}
}

// MarshalText renders the status in reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome is the result of comparing a candidate with a destination.
type Outcome struct {
	Status Status
	Text   string // line diff for Changed, reason for Failed
}

// Differ compares two files without modifying either.
type Differ interface {
	Compare(ctx context.Context, candidate, destination string) Outcome
}

// binarySniffLen matches the window diff(1) and git inspect for NUL bytes.
const binarySniffLen = 8000

// Builtin compares files in-process.
type Builtin struct {
	// Context is the number of unchanged lines around each hunk.
	Context int
}

// Compare implements Differ. The destination's existence is checked on every
// call.
func (b Builtin) Compare(_ context.Context, candidate, destination string) Outcome {
	if _, err := os.Stat(destination); os.IsNotExist(err) {
		return Outcome{Status: NewFile}
	}

	want, err := os.ReadFile(candidate)
	if err != nil {
		return Outcome{Status: Failed, Text: err.Error()}
	}
	have, err := os.ReadFile(destination)
	if err != nil {
		return Outcome{Status: Failed, Text: err.Error()}
	}

	if bytes.Equal(want, have) {
		return Outcome{Status: NoChanges}
	}
	if isBinary(want) || isBinary(have) {
		return Outcome{Status: Failed, Text: fmt.Sprintf("binary files %s and %s differ", candidate, destination)}
	}

	ctxLines := b.Context
	if ctxLines <= 0 {
		ctxLines = 3
	}
	text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(have)),
		B:        difflib.SplitLines(string(want)),
		FromFile: destination,
		ToFile:   candidate,
		Context:  ctxLines,
	})
	if err != nil {
		return Outcome{Status: Failed, Text: err.Error()}
	}
	return Outcome{Status: Changed, Text: text}
}

func isBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
