package paths

import (
	"path/filepath"

	"github.com/arthur-debert/configma/pkg/errors"
)

// Resolver maps tracked entries between the system side (the user's home
// directory) and the repo side (a profile directory in the repository).
// It is pure: no method touches the filesystem.
type Resolver struct {
	home     string
	repoRoot string
}

// Mapping is a fully resolved tracked path.
type Mapping struct {
	Profile    string
	Rel        string // slash-separated, relative to the profile root
	SystemPath string
	RepoPath   string
}

// NewResolver creates a resolver for the given home and repository root.
// Both must be absolute.
func NewResolver(home, repoRoot string) *Resolver {
	return &Resolver{
		home:     filepath.Clean(home),
		repoRoot: filepath.Clean(repoRoot),
	}
}

// Home returns the system root entries are mapped onto
func (r *Resolver) Home() string { return r.home }

// RepoRoot returns the repository root
func (r *Resolver) RepoRoot() string { return r.repoRoot }

// ProfileDir returns the directory holding a profile's tracked entries
func (r *Resolver) ProfileDir(profile string) string {
	return filepath.Join(r.repoRoot, profile)
}

// RepoPath returns the absolute repo path of a relative entry path
func (r *Resolver) RepoPath(profile, rel string) string {
	return filepath.Join(r.ProfileDir(profile), filepath.FromSlash(rel))
}

// ToSystemPath returns where the entry lives on the machine
func (r *Resolver) ToSystemPath(profile, rel string) string {
	return filepath.Join(r.home, filepath.FromSlash(rel))
}

// IsInRepo reports whether an absolute, clean path is inside the repository
func (r *Resolver) IsInRepo(path string) bool {
	return ContainsPath(r.repoRoot, path)
}

// ToRepoPath maps an absolute system path to its profile-relative path.
func (r *Resolver) ToRepoPath(profile, systemPath string) (string, error) {
	systemPath = filepath.Clean(systemPath)
	if !filepath.IsAbs(systemPath) {
		return "", errors.New(errors.ErrPathResolution, "system path must be absolute").WithPath(systemPath)
	}
	if r.IsInRepo(systemPath) {
		return "", errors.New(errors.ErrPathResolution, "path is inside the repository").WithPath(systemPath)
	}
	if !ContainsPath(r.home, systemPath) || systemPath == r.home {
		return "", errors.Newf(errors.ErrPathResolution, "path is not under %s", r.home).WithPath(systemPath)
	}
	rel, err := filepath.Rel(r.home, systemPath)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrPathResolution, "cannot relativize path").WithPath(systemPath)
	}
	return filepath.ToSlash(rel), nil
}

// FromRepoPath maps an absolute repo path back to its profile-relative path
func (r *Resolver) FromRepoPath(profile, repoPath string) (string, error) {
	repoPath = filepath.Clean(repoPath)
	profileDir := r.ProfileDir(profile)
	if !ContainsPath(profileDir, repoPath) || repoPath == profileDir {
		return "", errors.Newf(errors.ErrPathResolution, "path is not inside profile %q", profile).
			WithPath(repoPath).
			WithDetail("profile", profile)
	}
	rel, err := filepath.Rel(profileDir, repoPath)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrPathResolution, "cannot relativize path").WithPath(repoPath)
	}
	return filepath.ToSlash(rel), nil
}

// Resolve accepts either a system path or a repo path (repo paths are under
// the repository root, system paths are not) and returns the full mapping.
func (r *Resolver) Resolve(profile, path string) (Mapping, error) {
	path = filepath.Clean(path)

	var (
		rel string
		err error
	)
	if r.IsInRepo(path) {
		rel, err = r.FromRepoPath(profile, path)
	} else {
		rel, err = r.ToRepoPath(profile, path)
	}
	if err != nil {
		return Mapping{}, err
	}

	return r.Mapping(profile, rel), nil
}

// Mapping builds the mapping for a relative entry path
func (r *Resolver) Mapping(profile, rel string) Mapping {
	return Mapping{
		Profile:    profile,
		Rel:        rel,
		SystemPath: r.ToSystemPath(profile, rel),
		RepoPath:   r.RepoPath(profile, rel),
	}
}
