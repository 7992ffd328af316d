package engine

import (
	"github.com/stevehiehn/drt/internal/action"
	"github.com/stevehiehn/drt/internal/diff"
	drterrors "github.com/stevehiehn/drt/internal/errors"
)

// Action status values.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Result is the structured output of a run.
type Result struct {
	RunID       string               `json:"run_id"`
	Mode        Mode                 `json:"mode"`
	Success     bool                 `json:"success"`
	Processed   int                  `json:"processed"`
	FailedIndex int                  `json:"failed_index,omitempty"` // 1-based
	Actions     []ActionResult       `json:"actions"`
	Errors      []drterrors.RunError `json:"errors,omitempty"`
}

// ActionResult describes the outcome of a single action.
type ActionResult struct {
	Index       int          `json:"index"`
	Kind        action.Kind  `json:"kind"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Command     string       `json:"command,omitempty"` // resolved command line
	Spawned     bool         `json:"spawned,omitempty"`
	ExitCode    int          `json:"exit_code,omitempty"`
	Pending     *diff.Status `json:"pending,omitempty"` // comparison before any write
	Outcome     *diff.Status `json:"outcome,omitempty"` // comparison after the action
	DiffText    string       `json:"diff,omitempty"`
	Written     bool         `json:"written,omitempty"`
	Error       string       `json:"error,omitempty"`
}
