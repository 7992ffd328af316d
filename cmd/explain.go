package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stevehiehn/drt/internal/action"
)

type explainedAction struct {
	Index       int         `json:"index"`
	Kind        action.Kind `json:"kind"`
	Description string      `json:"description"`
	Error       string      `json:"error,omitempty"`
}

func newExplainCommand(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "explain [--] <action>...",
		Short: "Show the parsed actions without running them",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			actions, err := collectActions(cmd.Context(), opts.flags.ActionFile, false, opts.vars, args)
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}

			var explained []explainedAction
			for i, a := range actions {
				ea := explainedAction{Index: i + 1, Kind: action.KindOf(a), Description: a.Describe()}
				if inv, ok := a.(action.Invalid); ok && inv.Err != nil {
					ea.Error = inv.Err.Error()
				}
				explained = append(explained, ea)
			}

			out := cmd.OutOrStdout()
			if opts.flags.JSON {
				return json.NewEncoder(out).Encode(explained)
			}
			for _, ea := range explained {
				fmt.Fprintf(out, "%d. [%s] %s\n", ea.Index, ea.Kind, ea.Description)
				if ea.Error != "" {
					fmt.Fprintf(out, "   Error: %s\n", ea.Error)
				}
			}
			return nil
		},
	}
	c.Flags().SetInterspersed(false)
	return c
}
