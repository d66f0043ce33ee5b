package track

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/filesystem"
	"github.com/arthur-debert/configma/pkg/paths"
	"github.com/arthur-debert/configma/pkg/repo"
	"github.com/arthur-debert/configma/pkg/syncer"
	"github.com/arthur-debert/configma/pkg/types"
)

// Add moves a real file or directory into profile and replaces it with a
// symlink to its new location. Directories are tracked as a whole: the stub
// sentinel is written inside them before the move.
func (t *Tracker) Add(profile, path string) (types.TrackResult, error) {
	systemPath, err := paths.NormalizePath(path)
	if err != nil {
		return types.TrackResult{}, err
	}
	logger := t.logger.With().Str("profile", profile).Str("path", systemPath).Logger()

	if _, err := t.fs.Lstat(systemPath); err != nil {
		if os.IsNotExist(err) {
			return types.TrackResult{}, errors.New(errors.ErrNotFound, "path does not exist").WithPath(systemPath)
		}
		return types.TrackResult{}, errors.Wrap(err, errors.ErrFileAccess, "cannot inspect path").WithPath(systemPath)
	}

	rel, err := t.resolver.ToRepoPath(profile, systemPath)
	if err != nil {
		return types.TrackResult{}, err
	}
	m := t.resolver.Mapping(profile, rel)
	profileDir := t.resolver.ProfileDir(profile)

	if !repo.ProfileExists(t.fs, t.resolver.RepoRoot(), profile) {
		return types.TrackResult{}, errors.Newf(errors.ErrProfileNotFound, "profile %q does not exist", profile).
			WithDetail("profile", profile)
	}

	if inside, same, err := syncer.ThroughRepo(t.fs, t.resolver, m); err != nil {
		return types.TrackResult{}, err
	} else if same {
		return types.TrackResult{}, errors.New(errors.ErrAlreadyExists, "path is already tracked through a linked parent directory").
			WithPath(systemPath).
			WithDetail("profile", profile)
	} else if inside {
		return types.TrackResult{}, errors.New(errors.ErrPathResolution, "path reaches into the repository through a symlinked directory").
			WithPath(systemPath)
	}

	if state, _, err := syncer.Inspect(t.fs, m.SystemPath, m.RepoPath); err == nil && state == types.StateLinked {
		return types.TrackResult{}, errors.New(errors.ErrAlreadyExists, "path is already tracked").
			WithPath(systemPath).
			WithDetail("profile", profile)
	}

	kind, err := repo.ClassifyAddTarget(t.fs, systemPath)
	if err != nil {
		return types.TrackResult{}, err
	}
	entry := types.TrackedEntry{Rel: rel, Kind: kind}

	if ancestor, ok, err := repo.StubAncestor(t.fs, profileDir, rel); err != nil {
		return types.TrackResult{}, err
	} else if ok {
		return types.TrackResult{}, errors.Newf(errors.ErrPathResolution, "path is inside tracked directory %s", ancestor).
			WithPath(systemPath).
			WithDetail("tracked", t.resolver.ToSystemPath(profile, ancestor))
	}

	if _, err := t.fs.Lstat(m.RepoPath); err == nil {
		return types.TrackResult{}, errors.New(errors.ErrAlreadyExists, "repository already has an entry at this path").
			WithPath(m.RepoPath).
			WithDetail("profile", profile)
	}

	result := types.TrackResult{
		Action:     types.TrackAdded,
		Profile:    profile,
		Entry:      entry,
		SystemPath: m.SystemPath,
		RepoPath:   m.RepoPath,
		DryRun:     t.dryRun,
	}
	if t.dryRun {
		logger.Info().Str("kind", kind.String()).Msg("Would add path")
		return result, nil
	}

	if err := t.moveIn(entry, m); err != nil {
		return types.TrackResult{}, err
	}

	res := t.engine.SyncEntry(profile, entry, false)
	if res.Outcome != types.OutcomeLinked {
		linkErr := res.Err
		if linkErr == nil {
			linkErr = errors.Newf(errors.ErrUnexpectedState, "unexpected outcome %q linking new entry", res.Outcome).
				WithPath(m.SystemPath)
		}
		logger.Error().Err(linkErr).Msg("Failed to link new entry, rolling back")
		if rbErr := t.moveOut(entry, m); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to roll back add")
			return types.TrackResult{}, errors.Wrap(linkErr, errors.GetErrorCode(linkErr), "linking failed and the move could not be undone").
				WithPath(m.SystemPath).
				WithDetail("repo_path", m.RepoPath)
		}
		return types.TrackResult{}, linkErr
	}

	logger.Info().
		Str("kind", kind.String()).
		Str("repo_path", m.RepoPath).
		Msg("Added path")
	return result, nil
}

// moveIn moves the system content to the repo path. On failure nothing is
// left changed.
func (t *Tracker) moveIn(entry types.TrackedEntry, m paths.Mapping) error {
	sentinel := filepath.Join(m.SystemPath, types.StubFileName)
	if entry.Kind == types.EntryStubDir {
		if err := t.fs.WriteFile(sentinel, nil, 0644); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "cannot write stub sentinel").WithPath(sentinel)
		}
	}
	undoSentinel := func() {
		if entry.Kind == types.EntryStubDir {
			_ = t.fs.Remove(sentinel)
		}
	}

	parent := filepath.Dir(m.RepoPath)
	if err := t.fs.MkdirAll(parent, 0755); err != nil {
		undoSentinel()
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create repository directory").WithPath(parent)
	}

	if err := t.fs.Rename(m.SystemPath, m.RepoPath); err != nil {
		undoSentinel()
		t.pruneEmptyParents(parent, t.resolver.ProfileDir(m.Profile))
		return moveError(err, m.SystemPath, m.RepoPath)
	}
	return nil
}

// moveOut reverses moveIn after the symlink, if any, has been removed
func (t *Tracker) moveOut(entry types.TrackedEntry, m paths.Mapping) error {
	if info, err := t.fs.Lstat(m.SystemPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if err := t.fs.Remove(m.SystemPath); err != nil {
			return errors.Wrap(err, errors.ErrFileAccess, "cannot remove symlink").WithPath(m.SystemPath)
		}
	}
	if err := t.fs.Rename(m.RepoPath, m.SystemPath); err != nil {
		return moveError(err, m.RepoPath, m.SystemPath)
	}
	if entry.Kind == types.EntryStubDir {
		_ = t.fs.Remove(filepath.Join(m.SystemPath, types.StubFileName))
	}
	t.pruneEmptyParents(filepath.Dir(m.RepoPath), t.resolver.ProfileDir(m.Profile))
	return nil
}

func moveError(err error, from, to string) error {
	msg := "cannot move path"
	if filesystem.IsCrossDevice(err) {
		msg = "cannot move path across filesystems; the repository must be on the same filesystem"
	}
	return errors.Wrap(err, errors.ErrMove, msg).
		WithPath(from).
		WithDetail("destination", to)
}
