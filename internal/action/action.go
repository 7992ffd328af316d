package action

import (
	"fmt"
	"strings"
)

// Action is one unit of work produced by a parser and consumed once by the
// engine.
type Action interface {
	// Describe returns a human-readable summary of the action.
	Describe() string
	kind() Kind
}

// Template renders Source into Dest.
type Template struct {
	Source string
	Dest   string
}

// Exec runs Argv[0] with the remaining elements as its arguments.
type Exec struct {
	Argv []string
}

// SetVar assigns Value to Name in the variable table.
type SetVar struct {
	Name  string
	Value string
}

// NoOp does nothing.
type NoOp struct{}

// Invalid is a token sequence the parser could not turn into an action.
type Invalid struct {
	Token string
	Err   error
}

func (a Template) Describe() string { return fmt.Sprintf("template %s -> %s", a.Source, a.Dest) }
func (a Exec) Describe() string     { return "exec " + strings.Join(a.Argv, " ") }
func (a SetVar) Describe() string   { return fmt.Sprintf("var %s=%s", a.Name, a.Value) }
func (NoOp) Describe() string       { return "noop" }
func (a Invalid) Describe() string  { return fmt.Sprintf("invalid %q", a.Token) }

func (Template) kind() Kind { return KindTemplate }
func (Exec) kind() Kind     { return KindExec }
func (SetVar) kind() Kind   { return KindVar }
func (NoOp) kind() Kind     { return KindNoOp }
func (Invalid) kind() Kind  { return KindInvalid }

// KindOf returns the tag of a.
func KindOf(a Action) Kind {
	if a == nil {
		return KindNoOp
	}
	return a.kind()
}
