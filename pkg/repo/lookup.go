package repo

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/types"
)

// ClassifyAddTarget reports which kind of entry a system path would become
// once tracked. Directories become stub directories, regular files become
// tracked files. Symlinks and special files cannot be tracked.
func ClassifyAddTarget(fs types.FS, systemPath string) (types.EntryKind, error) {
	info, err := fs.Lstat(systemPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, errors.New(errors.ErrNotFound, "path does not exist").WithPath(systemPath)
		}
		return 0, errors.Wrap(err, errors.ErrFileAccess, "cannot inspect path").WithPath(systemPath)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return 0, errors.New(errors.ErrInvalidInput, "cannot track a symlink").WithPath(systemPath)
	case info.IsDir():
		return types.EntryStubDir, nil
	case info.Mode().IsRegular():
		return types.EntryFile, nil
	default:
		return 0, errors.Newf(errors.ErrInvalidInput, "cannot track special file (%s)", info.Mode().Type()).
			WithPath(systemPath)
	}
}

// FindTracked returns the tracked entry stored at rel in a profile.
// It fails with NOT_TRACKED when nothing is tracked at exactly rel: the
// path is missing from the repo, is a plain structural directory, or lies
// inside a stub directory.
func FindTracked(fs types.FS, profileDir, rel string) (types.TrackedEntry, error) {
	notTracked := func(msg string) error {
		return errors.New(errors.ErrNotTracked, msg).
			WithPath(rel).
			WithDetail("profile", filepath.Base(profileDir))
	}

	if rel == "" || rel == "." || path.Base(rel) == types.StubFileName {
		return types.TrackedEntry{}, notTracked("path is not tracked")
	}

	if ancestor, ok, err := StubAncestor(fs, profileDir, rel); err != nil {
		return types.TrackedEntry{}, err
	} else if ok {
		return types.TrackedEntry{}, errors.Newf(errors.ErrNotTracked,
			"path is inside tracked directory %s; remove that instead", ancestor).
			WithPath(rel).
			WithDetail("tracked", ancestor)
	}

	repoPath := filepath.Join(profileDir, filepath.FromSlash(rel))
	info, err := fs.Lstat(repoPath)
	if err != nil {
		if os.IsNotExist(err) {
			return types.TrackedEntry{}, notTracked("path is not tracked")
		}
		return types.TrackedEntry{}, errors.Wrap(err, errors.ErrFileAccess, "cannot inspect repo path").
			WithPath(repoPath)
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return types.TrackedEntry{}, errors.New(errors.ErrUnexpectedState, "repo path is a symlink").
			WithPath(repoPath)
	case info.IsDir():
		isStub, err := hasStub(fs, repoPath)
		if err != nil {
			return types.TrackedEntry{}, err
		}
		if !isStub {
			return types.TrackedEntry{}, notTracked("directory is not tracked as a whole")
		}
		return types.TrackedEntry{Rel: rel, Kind: types.EntryStubDir}, nil
	case info.Mode().IsRegular():
		return types.TrackedEntry{Rel: rel, Kind: types.EntryFile}, nil
	default:
		return types.TrackedEntry{}, notTracked("path is not a regular file or directory")
	}
}

// StubAncestor finds the outermost stub directory strictly enclosing rel.
// It returns that directory's relative path and true when one exists.
func StubAncestor(fs types.FS, profileDir, rel string) (string, bool, error) {
	parts := strings.Split(path.Clean(rel), "/")
	for i := 1; i < len(parts); i++ {
		ancestor := strings.Join(parts[:i], "/")
		dir := filepath.Join(profileDir, filepath.FromSlash(ancestor))

		info, err := fs.Lstat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return "", false, nil
			}
			return "", false, errors.Wrap(err, errors.ErrFileAccess, "cannot inspect repo path").WithPath(dir)
		}
		if !info.IsDir() {
			return "", false, nil
		}

		ok, err := hasStub(fs, dir)
		if err != nil {
			return "", false, err
		}
		if ok {
			return ancestor, true, nil
		}
	}
	return "", false, nil
}

// FindNestedStubs returns stub directories found inside other stub
// directories. They are inert: the outer directory is what gets linked.
func FindNestedStubs(fs types.FS, profileDir string) ([]string, error) {
	var nested []string
	for entry, err := range ListTrackedEntries(fs, profileDir) {
		if err != nil {
			return nested, err
		}
		if entry.Kind != types.EntryStubDir {
			continue
		}
		found, err := findStubsBelow(fs, profileDir, entry.Rel)
		if err != nil {
			return nested, err
		}
		nested = append(nested, found...)
	}
	return nested, nil
}

func findStubsBelow(fs types.FS, profileDir, rel string) ([]string, error) {
	dir := filepath.Join(profileDir, filepath.FromSlash(rel))
	children, err := fs.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read repository directory").WithPath(dir)
	}

	var found []string
	for _, child := range children {
		if !child.IsDir() || child.Type()&os.ModeSymlink != 0 {
			continue
		}
		childRel := path.Join(rel, child.Name())
		ok, err := hasStub(fs, filepath.Join(dir, child.Name()))
		if err != nil {
			return found, err
		}
		if ok {
			found = append(found, childRel)
		}
		below, err := findStubsBelow(fs, profileDir, childRel)
		if err != nil {
			return found, err
		}
		found = append(found, below...)
	}
	return found, nil
}
