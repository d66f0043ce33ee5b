package syncer

import (
	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/types"
)

// ReportError summarizes what a report left undone. Failed entries take
// precedence over skipped conflicts. It returns nil for a clean report.
func ReportError(report *types.SyncReport) error {
	if report == nil {
		return nil
	}

	if failures := report.Failures(); len(failures) > 0 {
		first := failures[0]
		code := errors.GetErrorCode(first.Err)
		if code == errors.ErrUnknown {
			code = errors.ErrInternal
		}
		return errors.Wrapf(first.Err, code, "%d of %d entries failed", len(failures), len(report.Results)).
			WithPaths(resultPaths(failures)).
			WithDetail("profile", report.Profile)
	}

	if conflicts := report.Conflicts(); len(conflicts) > 0 {
		return errors.Newf(errors.ErrConflict,
			"%d path(s) hold real content where a link belongs; re-run with --force to back them up",
			len(conflicts)).
			WithPaths(resultPaths(conflicts)).
			WithDetail("profile", report.Profile)
	}

	return nil
}

func resultPaths(results []types.EntryResult) []string {
	out := make([]string, 0, len(results))
	for _, res := range results {
		if res.SystemPath != "" {
			out = append(out, res.SystemPath)
		} else {
			out = append(out, res.Entry.Rel)
		}
	}
	return out
}
