package track

import (
	"path/filepath"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/paths"
	"github.com/arthur-debert/configma/pkg/repo"
	"github.com/arthur-debert/configma/pkg/syncer"
	"github.com/arthur-debert/configma/pkg/types"
)

// Remove stops tracking a path: the symlink is deleted and the repo content
// moves back to the system path. path may name either side.
func (t *Tracker) Remove(profile, path string) (types.TrackResult, error) {
	abs, err := paths.NormalizePath(path)
	if err != nil {
		return types.TrackResult{}, err
	}

	m, err := t.resolver.Resolve(profile, abs)
	if err != nil {
		return types.TrackResult{}, err
	}
	logger := t.logger.With().Str("profile", profile).Str("path", m.SystemPath).Logger()

	profileDir := t.resolver.ProfileDir(profile)
	entry, err := repo.FindTracked(t.fs, profileDir, m.Rel)
	if err != nil {
		return types.TrackResult{}, err
	}

	state, target, err := syncer.Inspect(t.fs, m.SystemPath, m.RepoPath)
	if err != nil {
		return types.TrackResult{}, err
	}
	if state != types.StateLinked {
		e := errors.Newf(errors.ErrUnexpectedState, "expected a symlink to the repository, found %s", state).
			WithPath(m.SystemPath).
			WithDetail("expected_target", m.RepoPath)
		if target != "" {
			e = e.WithDetail("target", target)
		}
		return types.TrackResult{}, e
	}

	result := types.TrackResult{
		Action:     types.TrackRemoved,
		Profile:    profile,
		Entry:      entry,
		SystemPath: m.SystemPath,
		RepoPath:   m.RepoPath,
		DryRun:     t.dryRun,
	}
	if t.dryRun {
		logger.Info().Msg("Would remove path")
		return result, nil
	}

	if err := t.fs.Remove(m.SystemPath); err != nil {
		return types.TrackResult{}, errors.Wrap(err, errors.ErrFileAccess, "cannot remove symlink").WithPath(m.SystemPath)
	}
	restoreLink := func() {
		if err := t.fs.Symlink(m.RepoPath, m.SystemPath); err != nil {
			logger.Error().Err(err).Msg("Failed to restore symlink")
		}
	}

	sentinel := filepath.Join(m.RepoPath, types.StubFileName)
	if entry.Kind == types.EntryStubDir {
		if err := t.fs.Remove(sentinel); err != nil {
			restoreLink()
			return types.TrackResult{}, errors.Wrap(err, errors.ErrFileAccess, "cannot remove stub sentinel").WithPath(sentinel)
		}
	}

	if err := t.fs.Rename(m.RepoPath, m.SystemPath); err != nil {
		if entry.Kind == types.EntryStubDir {
			if werr := t.fs.WriteFile(sentinel, nil, 0644); werr != nil {
				logger.Error().Err(werr).Msg("Failed to restore stub sentinel")
			}
		}
		restoreLink()
		return types.TrackResult{}, moveError(err, m.RepoPath, m.SystemPath)
	}

	t.pruneEmptyParents(filepath.Dir(m.RepoPath), profileDir)

	logger.Info().Str("kind", entry.Kind.String()).Msg("Removed path")
	return result, nil
}

// pruneEmptyParents removes empty directories from dir up to, but not
// including, stop.
func (t *Tracker) pruneEmptyParents(dir, stop string) {
	for dir != stop && paths.ContainsPath(stop, dir) {
		children, err := t.fs.ReadDir(dir)
		if err != nil || len(children) > 0 {
			return
		}
		if err := t.fs.Remove(dir); err != nil {
			t.logger.Debug().Err(err).Str("path", dir).Msg("Could not prune empty directory")
			return
		}
		dir = filepath.Dir(dir)
	}
}
