package plan

import (
	"fmt"

	drterrors "github.com/stevehiehn/drt/internal/errors"
	"github.com/stevehiehn/drt/internal/template"
)

// Validate checks a plan for structural correctness. Command arguments that
// reference variables not defined before their step are returned as warnings,
// or fail with UNRESOLVED_PLACEHOLDER when strict is set.
func Validate(p *Plan, strict bool) ([]string, error) {
	seen := map[string]int{}
	defined := template.Table{}
	var warnings []string
	for k := range p.Vars {
		if k == "" {
			return nil, &drterrors.RunError{Kind: drterrors.MissingArgument, Message: "vars has an empty key"}
		}
		defined.Set(k, "")
	}

	for i, s := range p.Steps {
		label := stepLabel(s, i)

		if s.ID != "" {
			if _, dup := seen[s.ID]; dup {
				return nil, &drterrors.RunError{
					Kind:    drterrors.InvalidInput,
					Message: fmt.Sprintf("duplicate step id %q", s.ID),
				}
			}
			seen[s.ID] = i
		}

		// Exactly one of var, template, or exec must be set
		count := 0
		if s.Var != nil {
			count++
		}
		if s.Template != nil {
			count++
		}
		if s.Exec != nil {
			count++
		}
		if count != 1 {
			return nil, &drterrors.RunError{
				Kind:    drterrors.InvalidInput,
				Message: fmt.Sprintf("%s has %d of var/template/exec", label, count),
				Hint:    "A step must have exactly one of: var, template, or exec",
			}
		}

		switch {
		case s.Var != nil:
			if s.Var.Name == "" {
				return nil, drterrors.NewMissingArgument(fmt.Sprintf("%s: var requires a name", label), "var: {name: <key>, value: <value>}")
			}
			defined.Set(s.Var.Name, "")
		case s.Template != nil:
			if s.Template.Source == "" || s.Template.Dest == "" {
				return nil, drterrors.NewMissingArgument(fmt.Sprintf("%s: template requires source and dest", label), "template: {source: <path>, dest: <path>}")
			}
		default:
			if len(s.Exec) == 0 || s.Exec[0] == "" {
				return nil, drterrors.NewMissingArgument(fmt.Sprintf("%s: exec requires a command", label), "exec: [<command>, <arg>...]")
			}
			for _, arg := range s.Exec {
				for _, name := range template.Unresolved(defined, arg) {
					msg := fmt.Sprintf("%s references variable %q before it is set", label, name)
					if strict {
						return nil, &drterrors.RunError{Kind: drterrors.UnresolvedPlaceholder, Message: msg}
					}
					warnings = append(warnings, msg)
				}
			}
		}
	}
	return warnings, nil
}

func stepLabel(s Step, i int) string {
	if s.ID != "" {
		return fmt.Sprintf("step %q", s.ID)
	}
	return fmt.Sprintf("step %d", i+1)
}
