package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"

	"github.com/stevehiehn/drt/internal/ctxlog"
	drterrors "github.com/stevehiehn/drt/internal/errors"
	"github.com/stevehiehn/drt/internal/runner"
	"github.com/stevehiehn/drt/internal/template"
	"github.com/stevehiehn/drt/internal/ui"
)

// rewrite substitutes variables into one command argument.
func rewrite(ctx context.Context, rc *RunContext, arg string) string {
	out, changed := template.RewriteLine(rc.Vars, arg)
	if changed {
		ctxlog.FromContext(ctx).Debug("rewrote argument", "from", arg, "to", out)
	}
	return out
}

// runCommand applies the mode policy to one command.
func runCommand(ctx context.Context, rc *RunContext, argv []string, ar *ActionResult) error {
	if len(argv) == 0 || argv[0] == "" {
		return drterrors.NewMissingArgument("exec needs a command", "Usage: exec <command> [arg...]")
	}
	ar.Command = runner.CommandLine(argv)

	switch rc.Mode {
	case Simulate:
		return simulateCommand(ctx, rc, argv, ar)
	case Confirm:
		return confirmCommand(ctx, rc, argv, ar)
	case Apply:
		return applyCommand(ctx, rc, argv, ar)
	default:
		return drterrors.New(drterrors.Internal, fmt.Sprintf("unknown mode %s", rc.Mode))
	}
}

func simulateCommand(ctx context.Context, rc *RunContext, argv []string, ar *ActionResult) error {
	path, err := runner.LookPath(argv[0])
	if err != nil {
		return notFound(argv[0], err)
	}
	resolved := append([]string{path}, argv[1:]...)
	ar.Command = runner.CommandLine(resolved)
	ctxlog.FromContext(ctx).Debug("resolved executable", "name", argv[0], "path", path)
	rc.Reporter.WouldRun(ar.Command)
	return nil
}

func confirmCommand(ctx context.Context, rc *RunContext, argv []string, ar *ActionResult) error {
	if rc.Prompter == nil {
		return drterrors.New(drterrors.Internal, "confirm mode requires a prompter")
	}
	yes, err := ui.Confirm(rc.Prompter, fmt.Sprintf("run (y/n): %s ", ar.Command))
	if err != nil {
		return drterrors.Wrap(drterrors.Internal, err, "reading confirmation")
	}
	if yes {
		return applyCommand(ctx, rc, argv, ar)
	}
	rc.Reporter.WouldRun(ar.Command)
	return nil
}

func applyCommand(ctx context.Context, rc *RunContext, argv []string, ar *ActionResult) error {
	log := ctxlog.FromContext(ctx)
	path, err := rc.Spawner.Resolve(argv[0])
	if err != nil {
		return notFound(argv[0], err)
	}
	log.Debug("spawning", "argv", argv, "path", path)
	rc.Reporter.LiveRun(ar.Command)

	res, err := rc.Spawner.Run(ctx, argv, rc.Reporter.Writer(), rc.Stderr)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return notFound(argv[0], err)
		}
		return drterrors.Wrap(drterrors.Internal, err, "starting %s", argv[0])
	}
	ar.Spawned = true

	if res.Signaled {
		ar.ExitCode = res.ExitCode
		return &drterrors.RunError{
			Kind:    drterrors.AbnormalTermination,
			Message: fmt.Sprintf("%s terminated without an exit status", ar.Command),
		}
	}
	ar.ExitCode = res.ExitCode
	rc.Reporter.ExitStatus(res.ExitCode)
	if res.ExitCode != 0 {
		return drterrors.NewNonZeroExit(res.ExitCode, ar.Command)
	}
	return nil
}

func notFound(name string, err error) error {
	re := drterrors.Wrap(drterrors.ExecutableNotFound, err, "resolving %s", name)
	re.Hint = "Check that the command is installed and on PATH"
	return re
}
