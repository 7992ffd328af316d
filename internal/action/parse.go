package action

import (
	"fmt"

	drterrors "github.com/stevehiehn/drt/internal/errors"
)

// Parse turns command-line tokens into actions in order. Parsing stops at the
// first malformed action, which is returned as an Invalid at its position so
// the actions before it still run.
func Parse(tokens []string) []Action {
	var out []Action
	for i := 0; i < len(tokens); {
		tag := tokens[i]
		kind, ok := Lookup(tag)
		if !ok {
			out = append(out, Invalid{
				Token: tag,
				Err: &drterrors.RunError{
					Kind:    drterrors.InvalidInput,
					Message: fmt.Sprintf("unknown action %q", tag),
					Hint:    "Actions are: t|template, x|exec, v|var",
				},
			})
			return out
		}
		i++

		switch kind {
		case KindTemplate:
			if len(tokens)-i < 2 {
				return append(out, missing(tag, kind, tokens[i:]))
			}
			out = append(out, Template{Source: tokens[i], Dest: tokens[i+1]})
			i += 2
		case KindVar:
			if len(tokens)-i < 2 {
				return append(out, missing(tag, kind, tokens[i:]))
			}
			out = append(out, SetVar{Name: tokens[i], Value: tokens[i+1]})
			i += 2
		case KindExec:
			if len(tokens)-i < 1 {
				return append(out, missing(tag, kind, nil))
			}
			argv := make([]string, len(tokens)-i)
			copy(argv, tokens[i:])
			out = append(out, Exec{Argv: argv})
			i = len(tokens)
		}
	}
	return out
}

func missing(tag string, kind Kind, got []string) Invalid {
	return Invalid{
		Token: tag,
		Err: drterrors.NewMissingArgument(
			fmt.Sprintf("%s expects %s, got %d operand(s)", tag, Usage(kind), len(got)),
			"Usage: "+Usage(kind),
		),
	}
}
