// pkg/profiles/profiles_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: Real filesystem in a temp dir
// PURPOSE: Test profile creation, activation, switching and listing

package profiles

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/configma/pkg/config"
	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/testutil"
	"github.com/arthur-debert/configma/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, env *testutil.TestEnvironment, dryRun bool) (*Manager, *config.Store) {
	t.Helper()
	store, err := config.NewStoreFromConfig(env.FS, env.Paths, &config.Config{
		Repo:      env.RepoRoot,
		BackupDir: filepath.Join(env.Root, "backups"),
	})
	require.NoError(t, err)
	return NewManager(Options{FS: env.FS, Store: store, DryRun: dryRun}), store
}

func TestCreate(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	mgr, store := newManager(t, env, false)

	res, err := mgr.Create("work")
	require.NoError(t, err)
	assert.True(t, res.Activated, "first profile becomes active")
	testutil.AssertRealDir(t, filepath.Join(env.RepoRoot, "work"))

	active, err := store.ActiveProfile()
	require.NoError(t, err)
	assert.Equal(t, "work", active)

	res, err = mgr.Create("home")
	require.NoError(t, err)
	assert.False(t, res.Activated)

	active, err = store.ActiveProfile()
	require.NoError(t, err)
	assert.Equal(t, "work", active)
}

func TestCreateErrors(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.CreateProfile("work")
	mgr, _ := newManager(t, env, false)

	_, err := mgr.Create("work")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	for _, name := range []string{"", ".git", "a/b"} {
		_, err := mgr.Create(name)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), name)
	}
}

func TestCreateDryRun(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	mgr, store := newManager(t, env, true)

	res, err := mgr.Create("work")
	require.NoError(t, err)
	assert.True(t, res.DryRun)
	testutil.AssertNotExists(t, filepath.Join(env.RepoRoot, "work"))
	assert.False(t, store.HasActiveProfile())
}

func TestSwitch(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	workRC := env.CreateRepoFile("work", ".bashrc", "work")
	env.CreateRepoFile("work", ".workonly", "w")
	homeRC := env.CreateRepoFile("home", ".bashrc", "home")
	mgr, store := newManager(t, env, false)

	res, err := mgr.Switch("work", false)
	require.NoError(t, err)
	assert.Empty(t, res.From)
	assert.Nil(t, res.Unlinked)
	testutil.AssertSymlink(t, env.HomePath(".bashrc"), workRC)
	testutil.AssertSymlink(t, env.HomePath(".workonly"), env.RepoPath("work", ".workonly"))

	res, err = mgr.Switch("home", false)
	require.NoError(t, err)
	assert.Equal(t, "work", res.From)
	require.NotNil(t, res.Unlinked)
	assert.Equal(t, 2, res.Unlinked.Counts()[types.OutcomeUnlinked])

	testutil.AssertSymlink(t, env.HomePath(".bashrc"), homeRC)
	testutil.AssertNotExists(t, env.HomePath(".workonly"))

	active, err := store.ActiveProfile()
	require.NoError(t, err)
	assert.Equal(t, "home", active)
}

func TestSwitchForceBacksUpConflicts(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	homeRC := env.CreateRepoFile("home", ".bashrc", "home")
	env.CreateHomeFile(".bashrc", "local")
	mgr, _ := newManager(t, env, false)

	res, err := mgr.Switch("home", false)
	require.NoError(t, err)
	assert.Len(t, res.Synced.Conflicts(), 1)
	testutil.AssertFileContent(t, env.HomePath(".bashrc"), "local")

	res, err = mgr.Switch("home", true)
	require.NoError(t, err)
	require.Len(t, res.Synced.Results, 1)
	assert.Equal(t, types.OutcomeBackedUp, res.Synced.Results[0].Outcome)
	testutil.AssertSymlink(t, env.HomePath(".bashrc"), homeRC)
	testutil.AssertFileContent(t, res.Synced.Results[0].BackupPath, "local")
}

func TestSwitchMissingProfile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	mgr, store := newManager(t, env, false)

	_, err := mgr.Switch("nope", false)
	assert.True(t, errors.IsErrorCode(err, errors.ErrProfileNotFound))
	assert.False(t, store.HasActiveProfile())
}

func TestList(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.CreateRepoFile("work", ".bashrc", "x")
	env.CreateStubDir("work", ".config/nvim", nil)
	env.CreateProfile("home")
	env.CreateProfile(".git")
	mgr, store := newManager(t, env, false)
	require.NoError(t, store.SetActiveProfile("work"))

	infos, err := mgr.List()
	require.NoError(t, err)
	assert.Equal(t, []types.ProfileInfo{
		{Name: "home", Active: false, Entries: 0},
		{Name: "work", Active: true, Entries: 2},
	}, infos)
}
