package profiles

import (
	"github.com/arthur-debert/configma/pkg/config"
	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/filesystem"
	"github.com/arthur-debert/configma/pkg/logging"
	"github.com/arthur-debert/configma/pkg/paths"
	"github.com/arthur-debert/configma/pkg/repo"
	"github.com/arthur-debert/configma/pkg/syncer"
	"github.com/arthur-debert/configma/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a Manager
type Options struct {
	FS     types.FS
	Store  *config.Store
	DryRun bool
}

// Manager operates on the profiles of one repository
type Manager struct {
	fs       types.FS
	store    *config.Store
	resolver *paths.Resolver
	dryRun   bool
	logger   zerolog.Logger
}

// CreateResult describes a newly created profile
type CreateResult struct {
	Name      string
	Dir       string
	Activated bool
	DryRun    bool
}

// SwitchResult holds what switching did to each profile
type SwitchResult struct {
	From string
	To   string
	// Unlinked is nil when there was no previous profile to unlink.
	Unlinked *types.SyncReport
	Synced   *types.SyncReport
}

// NewManager creates a profile manager
func NewManager(opts Options) *Manager {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	return &Manager{
		fs:       opts.FS,
		store:    opts.Store,
		resolver: opts.Store.Resolver(),
		dryRun:   opts.DryRun,
		logger:   logging.GetLogger("profiles"),
	}
}

// Create makes a new, empty profile. It becomes active when no profile is
// active yet.
func (m *Manager) Create(name string) (*CreateResult, error) {
	if err := paths.ValidateProfileName(name); err != nil {
		return nil, err
	}

	dir := m.resolver.ProfileDir(name)
	if _, err := m.fs.Lstat(dir); err == nil {
		return nil, errors.Newf(errors.ErrAlreadyExists, "profile %q already exists", name).
			WithPath(dir).
			WithDetail("profile", name)
	}

	result := &CreateResult{
		Name:      name,
		Dir:       dir,
		Activated: !m.store.HasActiveProfile(),
		DryRun:    m.dryRun,
	}
	if m.dryRun {
		return result, nil
	}

	if err := m.fs.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, errors.ErrDirCreate, "cannot create profile directory").WithPath(dir)
	}
	if result.Activated {
		if err := m.store.SetActiveProfile(name); err != nil {
			return nil, err
		}
	}

	m.logger.Info().
		Str("profile", name).
		Bool("activated", result.Activated).
		Msg("Created profile")
	return result, nil
}

// Switch makes name the active profile. The previous profile's links are
// removed first; the new profile is then synced, backing up conflicts
// when force is set.
func (m *Manager) Switch(name string, force bool) (*SwitchResult, error) {
	if err := paths.ValidateProfileName(name); err != nil {
		return nil, err
	}
	if !repo.ProfileExists(m.fs, m.resolver.RepoRoot(), name) {
		return nil, errors.Newf(errors.ErrProfileNotFound, "profile %q does not exist", name).
			WithDetail("profile", name)
	}

	engine := syncer.New(syncer.Options{
		FS:         m.fs,
		Resolver:   m.resolver,
		BackupRoot: m.store.BackupRoot(),
		DryRun:     m.dryRun,
	})
	result := &SwitchResult{To: name}

	if current, err := m.store.ActiveProfile(); err == nil {
		result.From = current
		if current != name && repo.ProfileExists(m.fs, m.resolver.RepoRoot(), current) {
			report, err := engine.Unlink(current)
			if err != nil {
				return nil, err
			}
			result.Unlinked = report
		}
	}

	if !m.dryRun {
		if err := m.store.SetActiveProfile(name); err != nil {
			return nil, err
		}
	}

	report, err := engine.Sync(name, force)
	if err != nil {
		return result, err
	}
	result.Synced = report

	m.logger.Info().
		Str("from", result.From).
		Str("to", name).
		Bool("force", force).
		Msg("Switched profile")
	return result, nil
}

// List returns every profile with its number of tracked entries
func (m *Manager) List() ([]types.ProfileInfo, error) {
	names, err := repo.ListProfiles(m.fs, m.resolver.RepoRoot())
	if err != nil {
		return nil, err
	}
	active, _ := m.store.ActiveProfile()

	infos := make([]types.ProfileInfo, 0, len(names))
	for _, name := range names {
		entries, err := repo.Collect(repo.ListTrackedEntries(m.fs, m.resolver.ProfileDir(name)))
		if err != nil {
			m.logger.Warn().Err(err).Str("profile", name).Msg("Could not enumerate profile")
		}
		infos = append(infos, types.ProfileInfo{
			Name:    name,
			Active:  name == active,
			Entries: len(entries),
		})
	}
	return infos, nil
}
