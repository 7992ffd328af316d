package errors

import (
	stderrors "errors"
	"fmt"
)

// Error kind constants
const (
	SourceUnreadable      = "SOURCE_UNREADABLE"
	ExecutableNotFound    = "EXECUTABLE_NOT_FOUND"
	NonZeroExit           = "NON_ZERO_EXIT"
	AbnormalTermination   = "ABNORMAL_TERMINATION"
	MissingArgument       = "MISSING_ARGUMENT"
	InvalidInput          = "INVALID_INPUT"
	ComparisonFailed      = "COMPARISON_FAILED"
	UnresolvedPlaceholder = "UNRESOLVED_PLACEHOLDER"
	WriteFailed           = "WRITE_FAILED"
	Internal              = "INTERNAL"
)

// RunError is a structured error describing why one action failed.
type RunError struct {
	Kind    string `json:"kind"`
	Code    int    `json:"code,omitempty"` // exit code for NON_ZERO_EXIT
	Message string `json:"message"`
	Index   int    `json:"index,omitempty"` // 1-based action position, 0 when unknown
	Hint    string `json:"hint,omitempty"`
	Err     error  `json:"-"`
}

func (e *RunError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("[%s] action %d: %s", e.Kind, e.Index, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *RunError) Unwrap() error { return e.Err }

// New builds a RunError of the given kind.
func New(kind, msg string) *RunError {
	return &RunError{Kind: kind, Message: msg}
}

// Wrap builds a RunError of the given kind around cause.
func Wrap(kind string, cause error, format string, args ...any) *RunError {
	msg := fmt.Sprintf(format, args...)
	if cause != nil {
		msg = msg + ": " + cause.Error()
	}
	return &RunError{Kind: kind, Message: msg, Err: cause}
}

func NewNonZeroExit(code int, cmdline string) *RunError {
	return &RunError{
		Kind:    NonZeroExit,
		Code:    code,
		Message: fmt.Sprintf("%s exited with status %d", cmdline, code),
	}
}

func NewMissingArgument(msg, hint string) *RunError {
	return &RunError{Kind: MissingArgument, Message: msg, Hint: hint}
}

// KindOf returns the kind of the first RunError in err's chain, or "".
func KindOf(err error) string {
	var re *RunError
	if stderrors.As(err, &re) {
		return re.Kind
	}
	return ""
}

// As is a shorthand for extracting a *RunError from err's chain.
func As(err error) (*RunError, bool) {
	var re *RunError
	ok := stderrors.As(err, &re)
	return re, ok
}
