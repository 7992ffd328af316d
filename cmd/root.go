package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/stevehiehn/drt/internal/action"
	"github.com/stevehiehn/drt/internal/config"
	"github.com/stevehiehn/drt/internal/ctxlog"
	"github.com/stevehiehn/drt/internal/diff"
	"github.com/stevehiehn/drt/internal/engine"
	"github.com/stevehiehn/drt/internal/plan"
	"github.com/stevehiehn/drt/internal/ui"
)

const actionHelp = `ACTIONS
  v key value            set template variable
  t infile outfile       copy infile to outfile replacing @@key@@ with value
  x command arg1 arg2    run command (consumes the remaining arguments)

  The long forms var, template and exec are accepted too. Flags must come
  before the first action; put -- before the actions to be explicit.

MODES
  default                simulate: show diffs and commands, change nothing
  -i, --interactive      ask before running each command
  -a, --active           write files and run commands
  DRT_ACTIVE=<any>       same as --active`

// ExitError carries a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

type options struct {
	flags config.Flags
	vars  []string
	stdin io.ReadCloser
}

// NewRootCommand builds the drt command tree. stdin feeds confirmation
// prompts.
func NewRootCommand(stdin io.ReadCloser) *cobra.Command {
	opts := &options{stdin: stdin}

	root := &cobra.Command{
		Use:           "drt [flags] [--] <action>...",
		Short:         "Render templates and run commands, simulated unless told otherwise",
		Long:          "drt renders @@key@@ templates into files and runs commands.\nEvery change is shown as a diff first; nothing is written or spawned unless --active or --interactive is given.\n\n" + actionHelp,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActions(cmd, opts, args)
		},
	}
	root.Flags().SetInterspersed(false)

	pf := root.PersistentFlags()
	pf.BoolVarP(&opts.flags.Debug, "debug", "D", false, "Debug logging")
	pf.StringVar(&opts.flags.LogFormat, "log-format", "text", "Log output format: text or json")
	pf.BoolVar(&opts.flags.JSON, "json", false, "Print the run result as JSON")
	pf.StringVarP(&opts.flags.ActionFile, "file", "f", "", "Read actions from a YAML action file before the command-line actions")
	pf.StringArrayVar(&opts.vars, "var", nil, "Set a template variable (key=value) before any action")

	root.Flags().BoolVarP(&opts.flags.Interactive, "interactive", "i", false, "Ask before running each command")
	root.Flags().BoolVarP(&opts.flags.Active, "active", "a", false, "Write files and run commands without asking")
	root.Flags().BoolVar(&opts.flags.Strict, "strict", false, "Fail templates that contain placeholders with no value")
	root.Flags().StringVar(&opts.flags.DiffTool, "diff-tool", "", "Compare with an external diff program, e.g. \"diff -u\"")

	root.AddCommand(newValidateCommand(opts), newExplainCommand(opts))
	return root
}

// Execute runs the root command and exits with its status.
func Execute() {
	root := NewRootCommand(os.Stdin)
	if err := root.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			if exitErr.Message != "" {
				fmt.Fprintln(os.Stderr, exitErr.Message)
			}
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func runActions(cmd *cobra.Command, opts *options, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	cfg, err := config.Resolve(opts.flags, wd, os.LookupEnv)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	logger := ctxlog.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	ctx := ctxlog.WithLogger(cmd.Context(), logger)
	logger.Debug("run mode resolved", "mode", cfg.Mode.String(), "source", cfg.ModeSource)

	actions, err := collectActions(ctx, cfg.ActionFile, cfg.Strict, opts.vars, args)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}
	if len(actions) == 0 {
		return cmd.Help()
	}

	report := cmd.OutOrStdout()
	if cfg.JSON {
		report = cmd.ErrOrStderr()
	}
	rc := engine.NewRunContext(cfg.WorkDir, cfg.Mode)
	rc.Strict = cfg.Strict
	rc.Reporter = ui.NewReporter(report)
	rc.Stderr = cmd.ErrOrStderr()
	if cfg.DiffTool != "" {
		fields := strings.Fields(cfg.DiffTool)
		rc.Differ = diff.Tool{Path: fields[0], Args: fields[1:]}
	}
	if cfg.Mode == engine.Confirm {
		prompter := &ui.Readline{In: opts.stdin, Out: cmd.OutOrStdout()}
		defer prompter.Close()
		rc.Prompter = prompter
	}

	result := engine.Execute(ctx, actions, rc)

	if cfg.JSON {
		if err := json.NewEncoder(cmd.OutOrStdout()).Encode(result); err != nil {
			return err
		}
	}
	if !result.Success {
		return &ExitError{
			Code:    1,
			Message: fmt.Sprintf("processed %d of %d actions, action %d failed", result.Processed, len(actions), result.FailedIndex),
		}
	}
	return nil
}

// collectActions gathers actions from the action file, --var flags and the
// positional arguments, in that order.
func collectActions(ctx context.Context, file string, strict bool, vars []string, args []string) ([]action.Action, error) {
	var actions []action.Action
	if file != "" {
		p, err := plan.LoadFile(file)
		if err != nil {
			return nil, err
		}
		warnings, err := plan.Validate(p, strict)
		if err != nil {
			return nil, err
		}
		for _, w := range warnings {
			ctxlog.FromContext(ctx).Warn("action file", "file", file, "warning", w)
		}
		actions = append(actions, p.Actions()...)
	}
	kv, err := parseVars(vars)
	if err != nil {
		return nil, err
	}
	actions = append(actions, kv...)
	actions = append(actions, action.Parse(args)...)
	return actions, nil
}
