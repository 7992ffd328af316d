package engine

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/stevehiehn/drt/internal/diff"
	"github.com/stevehiehn/drt/internal/runner"
	"github.com/stevehiehn/drt/internal/template"
	"github.com/stevehiehn/drt/internal/ui"
)

// RunContext holds state for one invocation.
type RunContext struct {
	RunID    string
	WorkDir  string
	Mode     Mode
	Vars     template.Table
	Strict   bool // unresolved placeholders fail the render
	Reporter *ui.Reporter
	Prompter ui.Prompter
	Differ   diff.Differ
	Spawner  runner.Spawner
	Stderr   io.Writer // spawned process stderr; nil discards it
	TempDir  string    // where rendered artifacts live; empty means os.TempDir()
}

// NewRunContext creates a context with the default collaborators: builtin
// differ, real process spawner, report on stdout.
func NewRunContext(workDir string, mode Mode) *RunContext {
	return &RunContext{
		RunID:    uuid.New().String(),
		WorkDir:  workDir,
		Mode:     mode,
		Vars:     template.Table{},
		Reporter: ui.NewReporter(os.Stdout),
		Differ:   diff.Builtin{},
		Spawner:  runner.Exec{Dir: workDir},
		Stderr:   os.Stderr,
	}
}
