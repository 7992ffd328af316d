package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/stevehiehn/drt/internal/ctxlog"
	"github.com/stevehiehn/drt/internal/diff"
	drterrors "github.com/stevehiehn/drt/internal/errors"
	"github.com/stevehiehn/drt/internal/stage"
	"github.com/stevehiehn/drt/internal/template"
)

// materialize renders src and converges dest towards it. The destination is
// compared before and after; only Apply writes it, and only when it differs.
func materialize(ctx context.Context, rc *RunContext, src, destPath string, ar *ActionResult) error {
	log := ctxlog.FromContext(ctx)
	dest := openDestination(destPath, rc.Mode)

	art, err := template.Render(rc.Vars, src, template.Options{Strict: rc.Strict, TempDir: rc.TempDir})
	if err != nil {
		return err
	}
	defer func() {
		if err := art.Discard(); err != nil {
			log.Warn("removing rendered artifact", "path", art.Path, "error", err)
		}
	}()
	log.Debug("rendered template", "source", src, "artifact", art.Path)

	if len(art.Unresolved) > 0 {
		names := uniqueSorted(art.Unresolved)
		log.Warn("unresolved placeholders left verbatim", "source", src, "names", names)
		rc.Reporter.Unresolved(src, names)
	}

	pending := rc.Differ.Compare(ctx, art.Path, dest.Path)
	rc.Reporter.Diff("pending", src, dest.Path, pending)
	ar.Pending = statusPtr(pending.Status)
	ar.DiffText = pending.Text
	if pending.Status == diff.Failed {
		return comparisonFailed(src, dest.Path, pending)
	}

	if pending.Status != diff.NoChanges {
		if dest.Mode.writes() {
			if err := write(art.Path, dest.Path); err != nil {
				return err
			}
			ar.Written = true
			rc.Reporter.Written(dest.Path)
		} else {
			rc.Reporter.WouldWrite(dest.Path)
		}
	}

	post := rc.Differ.Compare(ctx, art.Path, dest.Path)
	rc.Reporter.Diff("result", src, dest.Path, post)
	ar.Outcome = statusPtr(post.Status)
	if post.Status == diff.Failed {
		return comparisonFailed(src, dest.Path, post)
	}
	if dest.Mode.writes() && post.Status != diff.NoChanges {
		return &drterrors.RunError{
			Kind:    drterrors.WriteFailed,
			Message: fmt.Sprintf("%s does not match the rendered template after writing (%s)", dest.Path, post.Status),
		}
	}
	return nil
}

// write replaces dest with the artifact's content atomically.
func write(artifact, dest string) error {
	s, err := stage.New(dest)
	if err != nil {
		return drterrors.Wrap(drterrors.WriteFailed, err, "staging %s", dest)
	}
	if err := s.CopyFrom(artifact); err != nil {
		s.Discard()
		return drterrors.Wrap(drterrors.WriteFailed, err, "staging %s", dest)
	}
	if err := s.Commit(); err != nil {
		return drterrors.Wrap(drterrors.WriteFailed, err, "writing %s", dest)
	}
	return nil
}

func comparisonFailed(src, dest string, o diff.Outcome) error {
	return &drterrors.RunError{
		Kind:    drterrors.ComparisonFailed,
		Message: fmt.Sprintf("comparing %s with %s: %s", src, dest, o.Text),
	}
}

func statusPtr(s diff.Status) *diff.Status { return &s }

func uniqueSorted(names []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
