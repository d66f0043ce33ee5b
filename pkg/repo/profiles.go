package repo

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/logging"
	"github.com/arthur-debert/configma/pkg/types"
)

// ListProfiles returns the names of all profiles in the repository, sorted.
// Hidden directories such as .git are not profiles.
func ListProfiles(fs types.FS, repoRoot string) ([]string, error) {
	logger := logging.GetLogger("repo.profiles")
	logger.Trace().Str("root", repoRoot).Msg("Listing profiles")

	info, err := fs.Stat(repoRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "repository root does not exist").
				WithPath(repoRoot)
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot access repository root").
			WithPath(repoRoot)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrInvalidInput, "repository root is not a directory").
			WithPath(repoRoot)
	}

	entries, err := fs.ReadDir(repoRoot)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read repository root").
			WithPath(repoRoot)
	}

	var profiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			logger.Trace().Str("name", name).Msg("Skipping hidden directory")
			continue
		}
		if entry.IsDir() {
			profiles = append(profiles, name)
		}
	}

	sort.Strings(profiles)
	logger.Debug().Int("count", len(profiles)).Msg("Found profiles")
	return profiles, nil
}

// ProfileExists reports whether a profile directory exists
func ProfileExists(fs types.FS, repoRoot, name string) bool {
	info, err := fs.Stat(filepath.Join(repoRoot, name))
	return err == nil && info.IsDir()
}
