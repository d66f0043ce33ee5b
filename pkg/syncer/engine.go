package syncer

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/filesystem"
	"github.com/arthur-debert/configma/pkg/logging"
	"github.com/arthur-debert/configma/pkg/paths"
	"github.com/arthur-debert/configma/pkg/repo"
	"github.com/arthur-debert/configma/pkg/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// backupTimeFormat names backup sessions; it sorts chronologically.
const backupTimeFormat = "20060102T150405.000Z"

// Options configures an Engine
type Options struct {
	FS       types.FS
	Resolver *paths.Resolver
	// BackupRoot is where force-sync creates its backup session directory.
	BackupRoot string
	// DryRun inspects only; outcomes describe what would happen.
	DryRun bool
	// Now is used for backup session names. Defaults to time.Now.
	Now func() time.Time
}

// Engine applies a profile's tracked entries to the system side
type Engine struct {
	fs         types.FS
	resolver   *paths.Resolver
	backupRoot string
	dryRun     bool
	now        func() time.Time
	session    string
	logger     zerolog.Logger
}

// New creates a sync engine
func New(opts Options) *Engine {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		fs:         opts.FS,
		resolver:   opts.Resolver,
		backupRoot: opts.BackupRoot,
		dryRun:     opts.DryRun,
		now:        opts.Now,
		logger:     logging.GetLogger("syncer"),
	}
}

// DryRun reports whether the engine only inspects
func (e *Engine) DryRun() bool { return e.dryRun }

// BackupSession returns the backup directory used by this engine, empty if
// nothing has been backed up yet.
func (e *Engine) BackupSession() string { return e.session }

// Inspect reports the state of a tracked entry's system path
func (e *Engine) Inspect(profile string, entry types.TrackedEntry) (types.LinkState, string, error) {
	m := e.resolver.Mapping(profile, entry.Rel)
	return Inspect(e.fs, m.SystemPath, m.RepoPath)
}

// Sync applies every tracked entry of profile. Conflicts are skipped
// unless force is set, in which case the conflicting content is moved into
// the backup session first. The returned error is reserved for failures
// that prevent the run altogether, such as a missing profile; per-entry
// failures are in the report.
func (e *Engine) Sync(profile string, force bool) (*types.SyncReport, error) {
	done := logging.LogOperationStart(e.logger, "sync")
	defer done()

	profileDir := e.resolver.ProfileDir(profile)
	report := types.NewSyncReport(profile, force, e.dryRun)

	e.warnNestedStubs(profileDir)

	for entry, err := range repo.ListTrackedEntries(e.fs, profileDir) {
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrProfileNotFound) {
				return nil, err
			}
			e.logger.Error().Err(err).Str("rel", entry.Rel).Msg("Failed to enumerate entries")
			report.Add(types.EntryResult{
				Entry:   entry,
				Outcome: types.OutcomeFailed,
				Err:     err,
			})
			continue
		}
		report.Add(e.SyncEntry(profile, entry, force))
	}

	e.logger.Info().
		Str("profile", profile).
		Bool("force", force).
		Bool("dryRun", e.dryRun).
		Interface("counts", report.Counts()).
		Msg("Sync finished")

	return report, nil
}

// SyncEntry applies a single tracked entry
func (e *Engine) SyncEntry(profile string, entry types.TrackedEntry, force bool) types.EntryResult {
	m := e.resolver.Mapping(profile, entry.Rel)
	res := types.EntryResult{
		Entry:      entry,
		SystemPath: m.SystemPath,
		RepoPath:   m.RepoPath,
	}
	logger := e.logger.With().
		Str("profile", profile).
		Str("path", m.SystemPath).
		Str("kind", entry.Kind.String()).
		Logger()

	if e.resolver.IsInRepo(m.SystemPath) {
		return fail(logger, res, errors.New(errors.ErrPathResolution, "system path lies inside the repository").
			WithPath(m.SystemPath))
	}

	inside, same, err := ThroughRepo(e.fs, e.resolver, m)
	if err != nil {
		return fail(logger, res, err)
	}
	if inside {
		if !same {
			return fail(logger, res, errors.New(errors.ErrUnexpectedState,
				"system path reaches into the repository through a symlinked directory").
				WithPaths([]string{m.SystemPath, m.RepoPath}))
		}
		logger.Debug().Msg("Reached through a linked parent directory")
		res.Prior = types.StateLinked
		res.Outcome = types.OutcomeAlreadyCorrect
		return res
	}

	state, target, err := Inspect(e.fs, m.SystemPath, m.RepoPath)
	if err != nil {
		return fail(logger, res, err)
	}
	res.Prior = state

	switch state {
	case types.StateLinked:
		res.Outcome = types.OutcomeAlreadyCorrect

	case types.StateAbsent:
		if !e.dryRun {
			if err := e.link(m); err != nil {
				return fail(logger, res, err)
			}
		}
		res.Outcome = types.OutcomeLinked

	case types.StateWrongLink:
		logger.Debug().Str("target", target).Msg("Replacing link pointing elsewhere")
		if !e.dryRun {
			if err := e.replaceLink(m); err != nil {
				return fail(logger, res, err)
			}
		}
		res.Outcome = types.OutcomeLinked

	case types.StateOccupied:
		if !force {
			logger.Warn().Msg("Real content where a link belongs; skipping")
			res.Outcome = types.OutcomeConflict
			break
		}
		res.BackupPath = e.backupPath(entry.Rel)
		if !e.dryRun {
			if err := e.backup(m.SystemPath, res.BackupPath); err != nil {
				res.BackupPath = ""
				return fail(logger, res, err)
			}
			if err := e.link(m); err != nil {
				return fail(logger, res, err)
			}
		}
		res.Outcome = types.OutcomeBackedUp

	default:
		return fail(logger, res, errors.Newf(errors.ErrInternal, "unknown link state %q", state))
	}

	logger.Debug().Str("outcome", string(res.Outcome)).Msg("Entry synced")
	return res
}

// Unlink removes every system symlink that correctly points into profile.
// Anything else at a tracked system path is left alone and reported as
// skipped.
func (e *Engine) Unlink(profile string) (*types.SyncReport, error) {
	done := logging.LogOperationStart(e.logger, "unlink")
	defer done()

	report := types.NewSyncReport(profile, false, e.dryRun)
	for entry, err := range repo.ListTrackedEntries(e.fs, e.resolver.ProfileDir(profile)) {
		if err != nil {
			if errors.IsErrorCode(err, errors.ErrProfileNotFound) {
				return nil, err
			}
			report.Add(types.EntryResult{Entry: entry, Outcome: types.OutcomeFailed, Err: err})
			continue
		}

		m := e.resolver.Mapping(profile, entry.Rel)
		res := types.EntryResult{Entry: entry, SystemPath: m.SystemPath, RepoPath: m.RepoPath}
		logger := e.logger.With().Str("profile", profile).Str("path", m.SystemPath).Logger()

		inside, _, err := ThroughRepo(e.fs, e.resolver, m)
		if err != nil {
			report.Add(fail(logger, res, err))
			continue
		}
		if inside {
			logger.Debug().Msg("Reached through a linked parent directory; leaving it alone")
			res.Outcome = types.OutcomeSkipped
			report.Add(res)
			continue
		}

		state, _, err := Inspect(e.fs, m.SystemPath, m.RepoPath)
		if err != nil {
			report.Add(fail(logger, res, err))
			continue
		}
		res.Prior = state

		if state != types.StateLinked {
			res.Outcome = types.OutcomeSkipped
			report.Add(res)
			continue
		}

		if !e.dryRun {
			if err := e.fs.Remove(m.SystemPath); err != nil {
				report.Add(fail(logger, res, errors.Wrap(err, errors.ErrFileAccess, "cannot remove symlink").
					WithPath(m.SystemPath)))
				continue
			}
		}
		res.Outcome = types.OutcomeUnlinked
		report.Add(res)
	}

	return report, nil
}

// link creates the symlink for m, creating plain parent directories
func (e *Engine) link(m paths.Mapping) error {
	parent := filepath.Dir(m.SystemPath)
	if err := e.fs.MkdirAll(parent, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create parent directory").WithPath(parent)
	}
	if err := e.fs.Symlink(m.RepoPath, m.SystemPath); err != nil {
		return errors.Wrap(err, errors.ErrSymlinkCreate, "cannot create symlink").
			WithPath(m.SystemPath).
			WithDetail("target", m.RepoPath)
	}
	return nil
}

// replaceLink swaps a stale link for a correct one in a single rename
func (e *Engine) replaceLink(m paths.Mapping) error {
	tmp := filepath.Join(filepath.Dir(m.SystemPath),
		"."+filepath.Base(m.SystemPath)+".configma-"+uuid.NewString()[:8])

	if err := e.fs.Symlink(m.RepoPath, tmp); err != nil {
		return errors.Wrap(err, errors.ErrSymlinkCreate, "cannot create replacement symlink").
			WithPath(tmp).
			WithDetail("target", m.RepoPath)
	}
	if err := e.fs.Rename(tmp, m.SystemPath); err != nil {
		_ = e.fs.Remove(tmp)
		return errors.Wrap(err, errors.ErrSymlinkCreate, "cannot replace symlink").
			WithPath(m.SystemPath)
	}
	return nil
}

// backup moves conflicting content out of the way
func (e *Engine) backup(systemPath, backupPath string) error {
	parent := filepath.Dir(backupPath)
	if err := e.fs.MkdirAll(parent, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "cannot create backup directory").WithPath(parent)
	}
	if err := e.fs.Rename(systemPath, backupPath); err != nil {
		msg := "cannot move conflicting content to backup"
		if filesystem.IsCrossDevice(err) {
			msg = "backup area is on a different filesystem"
		}
		return errors.Wrap(err, errors.ErrMove, msg).
			WithPath(systemPath).
			WithDetail("backup", backupPath)
	}
	e.logger.Info().Str("path", systemPath).Str("backup", backupPath).Msg("Moved conflicting content to backup")
	return nil
}

// backupPath returns where rel goes in this engine's backup session
func (e *Engine) backupPath(rel string) string {
	if e.session == "" {
		name := e.now().UTC().Format(backupTimeFormat) + "-" + uuid.NewString()[:8]
		e.session = filepath.Join(e.backupRoot, name)
	}
	return filepath.Join(e.session, filepath.FromSlash(rel))
}

func (e *Engine) warnNestedStubs(profileDir string) {
	nested, err := repo.FindNestedStubs(e.fs, profileDir)
	if err != nil {
		return
	}
	for _, rel := range nested {
		e.logger.Warn().
			Str("rel", rel).
			Msg("Nested stub directory is ignored; its enclosing stub directory is linked as a whole")
	}
}

func fail(logger zerolog.Logger, res types.EntryResult, err error) types.EntryResult {
	logger.Error().Err(err).Msg("Entry failed")
	res.Outcome = types.OutcomeFailed
	res.Err = err
	return res
}
