package config

import (
	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/paths"
	"github.com/arthur-debert/configma/pkg/types"
)

// Store is the per-invocation view of configma's configuration: the
// repository root, where backups go, and the active profile.
type Store struct {
	fs         types.FS
	paths      paths.Paths
	config     *Config
	configFile string
	repoRoot   string
	backupRoot string
}

// NewStore loads the configuration found in p's config directory.
// It fails with a CONFIG error when no config file exists or it does not
// name a repository.
func NewStore(fs types.FS, p paths.Paths) (*Store, error) {
	cfg, configFile, err := Load(p.ConfigDir())
	if err != nil {
		return nil, err
	}
	return newStore(fs, p, cfg, configFile)
}

// NewStoreFromConfig builds a Store from an already decoded Config.
func NewStoreFromConfig(fs types.FS, p paths.Paths, cfg *Config) (*Store, error) {
	return newStore(fs, p, cfg, "")
}

func newStore(fs types.FS, p paths.Paths, cfg *Config, configFile string) (*Store, error) {
	if cfg.Repo == "" {
		if configFile == "" {
			return nil, errors.New(errors.ErrConfig, "no config file found and CONFIGMA_REPO is not set").
				WithPath(p.ConfigFile())
		}
		return nil, errors.New(errors.ErrConfig, "config does not set 'repo'").WithPath(configFile)
	}

	repoRoot, err := paths.NormalizePath(cfg.Repo)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfig, "invalid repo path").WithPath(cfg.Repo)
	}

	backupRoot := p.BackupsDir()
	if cfg.BackupDir != "" {
		backupRoot, err = paths.NormalizePath(cfg.BackupDir)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfig, "invalid backup_dir").WithPath(cfg.BackupDir)
		}
	}
	if paths.ContainsPath(repoRoot, backupRoot) {
		return nil, errors.New(errors.ErrConfig, "backup directory must be outside the repository").
			WithPaths([]string{backupRoot, repoRoot})
	}

	return &Store{
		fs:         fs,
		paths:      p,
		config:     cfg,
		configFile: configFile,
		repoRoot:   repoRoot,
		backupRoot: backupRoot,
	}, nil
}

// RepoRoot returns the absolute repository root
func (s *Store) RepoRoot() string { return s.repoRoot }

// BackupRoot returns where force-sync backup sessions are created
func (s *Store) BackupRoot() string { return s.backupRoot }

// ConfigFile returns the config file in use, empty if none
func (s *Store) ConfigFile() string { return s.configFile }

// Paths returns the locations the store was loaded from
func (s *Store) Paths() paths.Paths { return s.paths }

// Resolver returns the path resolver mapping home onto the repository
func (s *Store) Resolver() *paths.Resolver {
	return paths.NewResolver(s.paths.HomeDir(), s.repoRoot)
}

// ActiveProfile returns the name of the active profile
func (s *Store) ActiveProfile() (string, error) {
	return ReadActiveProfile(s.fs, s.paths.ActiveProfilePath())
}

// HasActiveProfile reports whether a readable marker exists
func (s *Store) HasActiveProfile() bool {
	_, err := s.ActiveProfile()
	return err == nil
}

// SetActiveProfile writes the active profile marker
func (s *Store) SetActiveProfile(name string) error {
	return WriteActiveProfile(s.fs, s.paths.ActiveProfilePath(), name)
}
