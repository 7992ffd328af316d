package cmd

import (
	"fmt"
	"strings"

	"github.com/stevehiehn/drt/internal/action"
)

// parseVars converts ["key=value", ...] to SetVar actions, preserving order.
func parseVars(raw []string) ([]action.Action, error) {
	var out []action.Action
	for _, kv := range raw {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid --var %q: expected key=value", kv)
		}
		out = append(out, action.SetVar{Name: parts[0], Value: parts[1]})
	}
	return out, nil
}
