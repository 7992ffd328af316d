package action

// Kind tags an Action variant.
type Kind string

const (
	KindTemplate Kind = "template"
	KindExec     Kind = "exec"
	KindVar      Kind = "var"
	KindNoOp     Kind = "noop"
	KindInvalid  Kind = "invalid"
)

// usage lists the operands each tag expects, for error hints.
var usage = map[Kind]string{
	KindTemplate: "template <source> <dest>",
	KindExec:     "exec <command> [arg...]",
	KindVar:      "var <key> <value>",
}

var registry = map[string]Kind{}

func init() {
	for _, tag := range []string{"t", "template"} {
		registry[tag] = KindTemplate
	}
	for _, tag := range []string{"x", "exec"} {
		registry[tag] = KindExec
	}
	for _, tag := range []string{"v", "var"} {
		registry[tag] = KindVar
	}
}

// Lookup returns the kind registered for a command-line tag.
func Lookup(tag string) (Kind, bool) {
	k, ok := registry[tag]
	return k, ok
}

// Known returns true if tag names an action.
func Known(tag string) bool {
	_, ok := registry[tag]
	return ok
}

// Usage returns the operand synopsis for k.
func Usage(k Kind) string {
	return usage[k]
}
