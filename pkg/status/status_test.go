// pkg/status/status_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: Real filesystem in a temp dir
// PURPOSE: Test read-only status inspection

package status

import (
	"testing"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/testutil"
	"github.com/arthur-debert/configma/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	bashrc := env.CreateRepoFile("p", ".bashrc", "x")
	env.CreateRepoFile("p", ".vimrc", "x")
	nvim := env.CreateStubDir("p", ".config/nvim", nil)
	env.CreateRepoFile("p", ".zshrc", "x")

	env.Symlink(bashrc, env.HomePath(".bashrc"))
	env.CreateHomeFile(".vimrc", "local")
	env.Symlink(env.HomePath("elsewhere"), env.HomePath(".zshrc"))

	statuses, err := NewChecker(env.FS, env.Resolver).Check("p")
	require.NoError(t, err)

	assert.Equal(t, []types.EntryStatus{
		{Rel: ".bashrc", Kind: types.EntryFile, SystemPath: env.HomePath(".bashrc"), RepoPath: bashrc, State: types.StateLinked, Target: bashrc},
		{Rel: ".config/nvim", Kind: types.EntryStubDir, SystemPath: env.HomePath(".config/nvim"), RepoPath: nvim, State: types.StateAbsent},
		{Rel: ".vimrc", Kind: types.EntryFile, SystemPath: env.HomePath(".vimrc"), RepoPath: env.RepoPath("p", ".vimrc"), State: types.StateOccupied},
		{Rel: ".zshrc", Kind: types.EntryFile, SystemPath: env.HomePath(".zshrc"), RepoPath: env.RepoPath("p", ".zshrc"), State: types.StateWrongLink, Target: env.HomePath("elsewhere")},
	}, statuses)

	assert.Equal(t, map[types.LinkState]int{
		types.StateLinked:    1,
		types.StateAbsent:    1,
		types.StateOccupied:  1,
		types.StateWrongLink: 1,
	}, Summary(statuses))
	assert.False(t, InSync(statuses))

	// nothing changed
	testutil.AssertNotExists(t, env.HomePath(".config/nvim"))
	testutil.AssertFileContent(t, env.HomePath(".vimrc"), "local")
}

func TestCheckInSync(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	bashrc := env.CreateRepoFile("p", ".bashrc", "x")
	env.Symlink(bashrc, env.HomePath(".bashrc"))

	statuses, err := NewChecker(env.FS, env.Resolver).Check("p")
	require.NoError(t, err)
	assert.True(t, InSync(statuses))
}

func TestCheckMissingProfile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	_, err := NewChecker(env.FS, env.Resolver).Check("nope")
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))
}

func TestCheckThroughLinkedParentDirectory(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	colors := env.CreateRepoFile("p", ".vim/colors/dark.vim", "x")
	env.Symlink(env.RepoPath("p", ".vim"), env.HomePath(".vim"))

	statuses, err := NewChecker(env.FS, env.Resolver).Check("p")
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, types.StateLinked, statuses[0].State)
	assert.Equal(t, colors, statuses[0].Target)
	assert.True(t, InSync(statuses))

	// Linked to another profile's copy
	env.CreateRepoFile("q", ".vim/colors/dark.vim", "y")
	statuses, err = NewChecker(env.FS, env.Resolver).Check("q")
	require.NoError(t, err)
	assert.Equal(t, types.StateOccupied, statuses[0].State)
}
