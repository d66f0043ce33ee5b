// Package status inspects a profile without changing anything.
package status

import (
	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/paths"
	"github.com/arthur-debert/configma/pkg/repo"
	"github.com/arthur-debert/configma/pkg/syncer"
	"github.com/arthur-debert/configma/pkg/types"
)

// Checker reports the link state of every tracked entry
type Checker struct {
	fs       types.FS
	resolver *paths.Resolver
}

// NewChecker creates a status checker
func NewChecker(fs types.FS, resolver *paths.Resolver) *Checker {
	return &Checker{fs: fs, resolver: resolver}
}

// Check inspects every tracked entry of profile
func (c *Checker) Check(profile string) ([]types.EntryStatus, error) {
	var statuses []types.EntryStatus

	for entry, err := range repo.ListTrackedEntries(c.fs, c.resolver.ProfileDir(profile)) {
		if err != nil {
			return statuses, err
		}

		m := c.resolver.Mapping(profile, entry.Rel)
		state, target, err := c.inspect(m)
		if err != nil {
			return statuses, errors.Wrap(err, errors.GetErrorCode(err), "cannot inspect entry").
				WithDetail("rel", entry.Rel)
		}

		statuses = append(statuses, types.EntryStatus{
			Rel:        entry.Rel,
			Kind:       entry.Kind,
			SystemPath: m.SystemPath,
			RepoPath:   m.RepoPath,
			State:      state,
			Target:     target,
		})
	}

	return statuses, nil
}

// inspect treats a path reached through a linked parent directory as linked
// when it lands on its own repo path, and as occupied otherwise.
func (c *Checker) inspect(m paths.Mapping) (types.LinkState, string, error) {
	inside, same, err := syncer.ThroughRepo(c.fs, c.resolver, m)
	if err != nil {
		return "", "", err
	}
	switch {
	case inside && same:
		return types.StateLinked, m.RepoPath, nil
	case inside:
		return types.StateOccupied, "", nil
	}
	return syncer.Inspect(c.fs, m.SystemPath, m.RepoPath)
}

// Summary counts entries per state
func Summary(statuses []types.EntryStatus) map[types.LinkState]int {
	counts := make(map[types.LinkState]int)
	for _, s := range statuses {
		counts[s.State]++
	}
	return counts
}

// InSync reports whether every entry is correctly linked
func InSync(statuses []types.EntryStatus) bool {
	for _, s := range statuses {
		if s.State != types.StateLinked {
			return false
		}
	}
	return true
}
