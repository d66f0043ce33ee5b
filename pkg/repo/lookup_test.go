// pkg/repo/lookup_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: Real filesystem in a temp dir
// PURPOSE: Test add-target classification and tracked entry lookups

package repo

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/testutil"
	"github.com/arthur-debert/configma/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAddTarget(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	file := env.CreateHomeFile(".bashrc", "x")
	dir := env.CreateHomeDir(".config/nvim", map[string]string{"init.lua": "x"})
	link := env.HomePath(".link")
	env.Symlink(file, link)

	kind, err := ClassifyAddTarget(env.FS, file)
	require.NoError(t, err)
	assert.Equal(t, types.EntryFile, kind)

	kind, err = ClassifyAddTarget(env.FS, dir)
	require.NoError(t, err)
	assert.Equal(t, types.EntryStubDir, kind)

	_, err = ClassifyAddTarget(env.FS, link)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	_, err = ClassifyAddTarget(env.FS, env.HomePath(".missing"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestFindTracked(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	profileDir := env.CreateProfile("p")
	env.CreateRepoFile("p", ".bashrc", "x")
	env.CreateRepoFile("p", ".config/git/config", "x")
	env.CreateStubDir("p", ".config/nvim", map[string]string{"init.lua": "x"})

	entry, err := FindTracked(env.FS, profileDir, ".bashrc")
	require.NoError(t, err)
	assert.Equal(t, types.TrackedEntry{Rel: ".bashrc", Kind: types.EntryFile}, entry)

	entry, err = FindTracked(env.FS, profileDir, ".config/nvim")
	require.NoError(t, err)
	assert.Equal(t, types.TrackedEntry{Rel: ".config/nvim", Kind: types.EntryStubDir}, entry)

	for _, rel := range []string{
		".missing",
		".config",
		".config/nvim/init.lua",
		".config/nvim/" + types.StubFileName,
		"",
	} {
		_, err := FindTracked(env.FS, profileDir, rel)
		require.Error(t, err, rel)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotTracked), rel)
	}
}

func TestStubAncestor(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	profileDir := env.CreateProfile("p")
	env.CreateStubDir("p", ".config/nvim", nil)
	env.CreateStubDir("p", ".config/nvim/lua/inner", nil)

	ancestor, ok, err := StubAncestor(env.FS, profileDir, ".config/nvim/lua/inner/x.lua")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ".config/nvim", ancestor, "outermost stub wins")

	_, ok, err = StubAncestor(env.FS, profileDir, ".config/nvim")
	require.NoError(t, err)
	assert.False(t, ok, "an entry is not its own ancestor")

	_, ok, err = StubAncestor(env.FS, profileDir, ".config/other/file")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindNestedStubs(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	profileDir := env.CreateProfile("p")
	env.CreateStubDir("p", ".config/nvim", nil)
	env.CreateStubDir("p", ".config/nvim/lua/inner", nil)
	env.CreateStubDir("p", ".vim", nil)

	nested, err := FindNestedStubs(env.FS, profileDir)
	require.NoError(t, err)
	assert.Equal(t, []string{".config/nvim/lua/inner"}, nested)

	entries, err := Collect(ListTrackedEntries(env.FS, profileDir))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "inner stubs are inert")
}

func TestListProfiles(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.CreateProfile("work")
	env.CreateProfile("home")
	env.CreateProfile(".git")
	env.CreateRepoFile("", "README.md", "not a profile")

	profiles, err := ListProfiles(env.FS, env.RepoRoot)
	require.NoError(t, err)
	assert.Equal(t, []string{"home", "work"}, profiles)

	assert.True(t, ProfileExists(env.FS, env.RepoRoot, "work"))
	assert.False(t, ProfileExists(env.FS, env.RepoRoot, "README.md"))

	_, err = ListProfiles(env.FS, filepath.Join(env.Root, "nowhere"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
