package engine

import "fmt"

// Mode controls whether actions have real side effects. It is chosen once per
// invocation and passed by value.
type Mode int

const (
	// Simulate reports what would happen and never writes or spawns.
	Simulate Mode = iota
	// Confirm asks before each command; templates are report-only.
	Confirm
	// Apply writes destinations and spawns commands.
	Apply
)

func (m Mode) String() string {
	switch m {
	case Simulate:
		return "simulate"
	case Confirm:
		return "confirm"
	case Apply:
		return "apply"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMode accepts the names returned by String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "simulate", "passive":
		return Simulate, nil
	case "confirm", "interactive":
		return Confirm, nil
	case "apply", "active":
		return Apply, nil
	}
	return Simulate, fmt.Errorf("unknown mode %q", s)
}

// writes reports whether destinations may be written in this mode.
func (m Mode) writes() bool {
	return m == Apply
}

// Destination is a target path tagged with the mode it was opened under.
type Destination struct {
	Path string
	Mode Mode
}

func openDestination(path string, mode Mode) Destination {
	return Destination{Path: path, Mode: mode}
}
