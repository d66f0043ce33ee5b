package repo

import (
	"iter"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/logging"
	"github.com/arthur-debert/configma/pkg/types"
)

// ListTrackedEntries lazily walks a profile directory in lexical order and
// yields every tracked entry. A directory holding the stub sentinel is
// yielded once as EntryStubDir and not descended into. Symlinks and special
// files inside the repository are skipped.
//
// Errors reading a directory are yielded and the walk continues with the
// next sibling. A missing profile directory yields a single
// PROFILE_NOT_FOUND error.
func ListTrackedEntries(fs types.FS, profileDir string) iter.Seq2[types.TrackedEntry, error] {
	return func(yield func(types.TrackedEntry, error) bool) {
		info, err := fs.Stat(profileDir)
		if err != nil || !info.IsDir() {
			yield(types.TrackedEntry{}, errors.Wrap(orNotDir(err), errors.ErrProfileNotFound, "profile directory does not exist").
				WithPath(profileDir).
				WithDetail("profile", filepath.Base(profileDir)))
			return
		}

		if ok, _ := hasStub(fs, profileDir); ok {
			logger := logging.GetLogger("repo")
			logger.Warn().
				Str("path", profileDir).
				Msg("Ignoring stub sentinel at the profile root")
		}

		walk(fs, profileDir, "", yield)
	}
}

// Collect drains an entry sequence, stopping at the first error.
func Collect(seq iter.Seq2[types.TrackedEntry, error]) ([]types.TrackedEntry, error) {
	var entries []types.TrackedEntry
	for entry, err := range seq {
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// walk yields the entries below root/rel. It returns false once the
// consumer stops.
func walk(fs types.FS, root, rel string, yield func(types.TrackedEntry, error) bool) bool {
	logger := logging.GetLogger("repo")
	dir := filepath.Join(root, filepath.FromSlash(rel))

	children, err := fs.ReadDir(dir)
	if err != nil {
		return yield(types.TrackedEntry{Rel: rel},
			errors.Wrap(err, errors.ErrFileAccess, "cannot read repository directory").WithPath(dir))
	}
	slices.SortFunc(children, func(a, b os.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})

	for _, child := range children {
		name := child.Name()
		if name == types.StubFileName {
			continue
		}

		childRel := path.Join(rel, name)
		childPath := filepath.Join(dir, name)
		mode := child.Type()

		switch {
		case mode&os.ModeSymlink != 0:
			logger.Warn().
				Str("path", childPath).
				Msg("Skipping symlink inside the repository; tracked entries must be real files")

		case child.IsDir():
			isStub, err := hasStub(fs, childPath)
			if err != nil {
				if !yield(types.TrackedEntry{Rel: childRel}, err) {
					return false
				}
				continue
			}
			if isStub {
				logger.Trace().Str("rel", childRel).Msg("Found stub directory")
				if !yield(types.TrackedEntry{Rel: childRel, Kind: types.EntryStubDir}, nil) {
					return false
				}
				continue
			}
			if !walk(fs, root, childRel, yield) {
				return false
			}

		case mode.IsRegular():
			logger.Trace().Str("rel", childRel).Msg("Found tracked file")
			if !yield(types.TrackedEntry{Rel: childRel, Kind: types.EntryFile}, nil) {
				return false
			}

		default:
			logger.Debug().
				Str("path", childPath).
				Str("mode", mode.String()).
				Msg("Skipping special file inside the repository")
		}
	}

	return true
}

// hasStub reports whether dir directly contains the stub sentinel
func hasStub(fs types.FS, dir string) (bool, error) {
	sentinel := filepath.Join(dir, types.StubFileName)
	_, err := fs.Lstat(sentinel)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, errors.Wrap(err, errors.ErrFileAccess, "cannot check for stub sentinel").WithPath(sentinel)
	}
}

// IsStubDir reports whether dir is a directory tracked as a whole
func IsStubDir(fs types.FS, dir string) (bool, error) {
	return hasStub(fs, dir)
}

func orNotDir(err error) error {
	if err != nil {
		return err
	}
	return errors.New(errors.ErrInvalidInput, "not a directory")
}
