package engine

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/stevehiehn/drt/internal/action"
	"github.com/stevehiehn/drt/internal/ctxlog"
	drterrors "github.com/stevehiehn/drt/internal/errors"
)

// Execute runs actions in order, one at a time. The first failing action stops
// the run; the rest are recorded as skipped.
func Execute(ctx context.Context, actions []action.Action, rc *RunContext) *Result {
	log := ctxlog.FromContext(ctx).With("run_id", rc.RunID, "mode", rc.Mode.String())
	ctx = ctxlog.WithLogger(ctx, log)

	result := &Result{
		RunID:   rc.RunID,
		Mode:    rc.Mode,
		Success: true,
	}

	failed := false
	for i, a := range actions {
		ar := ActionResult{
			Index:       i + 1,
			Kind:        action.KindOf(a),
			Description: describe(a),
		}
		if failed {
			ar.Status = StatusSkipped
			result.Actions = append(result.Actions, ar)
			continue
		}

		log.Debug("dispatching action", "index", ar.Index, "action", ar.Description)
		err := dispatch(ctx, rc, a, &ar)
		result.Processed = ar.Index

		if err != nil {
			ar.Status = StatusFailed
			ar.Error = err.Error()
			re := asRunError(err, ar.Index)
			result.Errors = append(result.Errors, *re)
			result.Success = false
			result.FailedIndex = ar.Index
			failed = true
			rc.Reporter.Error("do_action", err)
			log.Debug("action failed", "index", ar.Index, "kind", re.Kind, "error", err)
		} else {
			ar.Status = StatusSuccess
		}
		result.Actions = append(result.Actions, ar)
	}
	return result
}

// dispatch maps one action onto the renderer, differ and mode engine. It never
// touches the filesystem or spawns processes itself.
func dispatch(ctx context.Context, rc *RunContext, a action.Action, ar *ActionResult) error {
	switch a := a.(type) {
	case action.Template:
		if a.Source == "" || a.Dest == "" {
			return drterrors.NewMissingArgument("template needs a source and a destination", "Usage: "+action.Usage(action.KindTemplate))
		}
		return materialize(ctx, rc, resolvePath(rc.WorkDir, a.Source), resolvePath(rc.WorkDir, a.Dest), ar)
	case action.Exec:
		argv := make([]string, len(a.Argv))
		for i, arg := range a.Argv {
			argv[i] = rewrite(ctx, rc, arg)
		}
		return runCommand(ctx, rc, argv, ar)
	case action.SetVar:
		if a.Name == "" {
			return drterrors.NewMissingArgument("var needs a key", "Usage: "+action.Usage(action.KindVar))
		}
		rc.Vars.Set(a.Name, a.Value)
		rc.Reporter.VarSet(a.Name, a.Value)
		return nil
	case action.NoOp, nil:
		return nil
	case action.Invalid:
		if a.Err != nil {
			return a.Err
		}
		return drterrors.New(drterrors.InvalidInput, fmt.Sprintf("invalid action %q", a.Token))
	default:
		return drterrors.New(drterrors.InvalidInput, fmt.Sprintf("unsupported action %T", a))
	}
}

func describe(a action.Action) string {
	if a == nil {
		return action.NoOp{}.Describe()
	}
	return a.Describe()
}

// resolvePath anchors relative paths at workDir.
func resolvePath(workDir, p string) string {
	if filepath.IsAbs(p) || workDir == "" {
		return p
	}
	return filepath.Join(workDir, p)
}

func asRunError(err error, index int) *drterrors.RunError {
	re, ok := drterrors.As(err)
	if !ok {
		re = &drterrors.RunError{Kind: drterrors.Internal, Message: err.Error(), Err: err}
	}
	out := *re
	if out.Index == 0 {
		out.Index = index
	}
	return &out
}
