package syncer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/paths"
	"github.com/arthur-debert/configma/pkg/types"
)

// maxLinkHops matches the usual ELOOP limit
const maxLinkHops = 40

// Inspect reports the state of systemPath relative to the symlink that
// should point at repoPath. For links it also returns the current target.
func Inspect(fs types.FS, systemPath, repoPath string) (types.LinkState, string, error) {
	info, err := fs.Lstat(systemPath)
	if err != nil {
		if os.IsNotExist(err) {
			return types.StateAbsent, "", nil
		}
		return "", "", errors.Wrap(err, errors.ErrFileAccess, "cannot inspect system path").
			WithPath(systemPath)
	}

	if info.Mode()&os.ModeSymlink == 0 {
		return types.StateOccupied, "", nil
	}

	target, err := fs.Readlink(systemPath)
	if err != nil {
		return "", "", errors.Wrap(err, errors.ErrFileAccess, "cannot read symlink").
			WithPath(systemPath)
	}

	if SameTarget(systemPath, target, repoPath) {
		return types.StateLinked, target, nil
	}
	return types.StateWrongLink, target, nil
}

// SameTarget reports whether the link at linkPath with the given raw target
// resolves to expected. Relative targets are taken relative to the link's
// directory.
func SameTarget(linkPath, target, expected string) bool {
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(linkPath), target)
	}
	return filepath.Clean(target) == filepath.Clean(expected)
}

// ThroughRepo reports whether m's system path reaches into the repository
// through a symlinked parent directory, as it does when a whole directory is
// linked on this machine while the profile tracks files inside it. same is
// set when the path then lands on m's own repo path. Lstat on such a path
// sees the repository content itself, so it must never be moved or replaced.
func ThroughRepo(fs types.FS, r *paths.Resolver, m paths.Mapping) (inside, same bool, err error) {
	realParent, err := RealPath(fs, filepath.Dir(m.SystemPath))
	if err != nil {
		return false, false, err
	}
	realRoot, err := RealPath(fs, r.RepoRoot())
	if err != nil {
		return false, false, err
	}

	realSystem := filepath.Join(realParent, filepath.Base(m.SystemPath))
	if !paths.ContainsPath(realRoot, realSystem) {
		return false, false, nil
	}

	realRepoParent, err := RealPath(fs, filepath.Dir(m.RepoPath))
	if err != nil {
		return true, false, err
	}
	return true, realSystem == filepath.Join(realRepoParent, filepath.Base(m.RepoPath)), nil
}

// RealPath resolves every symlink in path through fs, like
// filepath.EvalSymlinks. The first missing component and everything after
// it are kept as written.
func RealPath(fs types.FS, path string) (string, error) {
	sep := string(filepath.Separator)
	resolved := sep
	rest := strings.Split(filepath.Clean(path), sep)
	hops := 0

	for len(rest) > 0 {
		name := rest[0]
		rest = rest[1:]
		switch name {
		case "", ".":
			continue
		case "..":
			resolved = filepath.Dir(resolved)
			continue
		}

		next := filepath.Join(resolved, name)
		info, err := fs.Lstat(next)
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.Join(append([]string{next}, rest...)...), nil
			}
			return "", errors.Wrap(err, errors.ErrFileAccess, "cannot resolve path").WithPath(path)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			resolved = next
			continue
		}

		hops++
		if hops > maxLinkHops {
			return "", errors.New(errors.ErrFileAccess, "too many levels of symbolic links").WithPath(path)
		}
		target, err := fs.Readlink(next)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrFileAccess, "cannot read symlink").WithPath(next)
		}
		if filepath.IsAbs(target) {
			resolved = sep
		}
		rest = append(strings.Split(target, sep), rest...)
	}

	return resolved, nil
}
