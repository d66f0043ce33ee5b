// pkg/paths/resolver_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: None (pure path mapping)
// PURPOSE: Test system path <-> repo path resolution

package paths

import (
	"testing"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverMapping(t *testing.T) {
	r := NewResolver("/home/u", "/r")

	assert.Equal(t, "/r/p", r.ProfileDir("p"))
	assert.Equal(t, "/home/u/.bashrc", r.ToSystemPath("p", ".bashrc"))
	assert.Equal(t, "/r/p/.config/nvim", r.RepoPath("p", ".config/nvim"))

	rel, err := r.ToRepoPath("p", "/home/u/.config/nvim")
	require.NoError(t, err)
	assert.Equal(t, ".config/nvim", rel)

	rel, err = r.FromRepoPath("p", "/r/p/.bashrc")
	require.NoError(t, err)
	assert.Equal(t, ".bashrc", rel)
}

func TestResolverRoundTrip(t *testing.T) {
	r := NewResolver("/home/u", "/home/u/dotfiles")

	for _, rel := range []string{".bashrc", ".config/nvim", ".local/bin/tool"} {
		sys := r.ToSystemPath("work", rel)
		got, err := r.ToRepoPath("work", sys)
		require.NoError(t, err)
		assert.Equal(t, rel, got)

		got, err = r.FromRepoPath("work", r.RepoPath("work", rel))
		require.NoError(t, err)
		assert.Equal(t, rel, got)
	}
}

func TestToRepoPathRejects(t *testing.T) {
	r := NewResolver("/home/u", "/home/u/dotfiles")

	tests := []struct {
		name string
		path string
	}{
		{"outside home", "/etc/hosts"},
		{"home itself", "/home/u"},
		{"inside repo", "/home/u/dotfiles/p/.bashrc"},
		{"repo root", "/home/u/dotfiles"},
		{"relative", "relative/path"},
		{"sibling prefix", "/home/user2/.bashrc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.ToRepoPath("p", tt.path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrPathResolution))
		})
	}
}

func TestFromRepoPathRejects(t *testing.T) {
	r := NewResolver("/home/u", "/r")

	for _, path := range []string{"/r/other/.bashrc", "/r/p", "/elsewhere"} {
		_, err := r.FromRepoPath("p", path)
		require.Error(t, err, path)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPathResolution), path)
	}
}

func TestResolve(t *testing.T) {
	r := NewResolver("/home/u", "/home/u/dotfiles")

	fromSystem, err := r.Resolve("p", "/home/u/.bashrc")
	require.NoError(t, err)
	fromRepo, err := r.Resolve("p", "/home/u/dotfiles/p/.bashrc")
	require.NoError(t, err)

	assert.Equal(t, fromSystem, fromRepo)
	assert.Equal(t, Mapping{
		Profile:    "p",
		Rel:        ".bashrc",
		SystemPath: "/home/u/.bashrc",
		RepoPath:   "/home/u/dotfiles/p/.bashrc",
	}, fromSystem)

	_, err = r.Resolve("p", "/home/u/dotfiles/other/.bashrc")
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathResolution))
}
