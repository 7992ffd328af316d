package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stevehiehn/drt/internal/plan"
)

func newValidateCommand(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "validate <actions.yaml>",
		Short: "Validate an action file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var warnings []string
			p, err := plan.LoadFile(args[0])
			if err == nil {
				warnings, err = plan.Validate(p, opts.flags.Strict)
			}
			if err != nil {
				if opts.flags.JSON {
					json.NewEncoder(out).Encode(map[string]any{"valid": false, "error": err.Error()})
				} else {
					fmt.Fprintf(cmd.ErrOrStderr(), "Validation failed: %s\n", err)
				}
				return &ExitError{Code: 1}
			}
			if opts.flags.JSON {
				return json.NewEncoder(out).Encode(map[string]any{"valid": true, "actions": len(p.Actions()), "warnings": warnings})
			}
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			fmt.Fprintf(out, "Action file %q is valid (%d actions).\n", p.Name, len(p.Actions()))
			return nil
		},
	}
	c.Flags().BoolVar(&opts.flags.Strict, "strict", false, "Fail on placeholders that reference variables not yet set")
	return c
}
