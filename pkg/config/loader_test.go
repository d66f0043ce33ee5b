// pkg/config/loader_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: Real config files in an isolated environment
// PURPOSE: Test config layering: defaults, file, environment, ~ expansion

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaultsOnly(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	cfg, file, err := Load(env.ConfigDir)
	require.NoError(t, err)
	assert.Empty(t, file)
	assert.Empty(t, cfg.Repo)
	assert.Empty(t, cfg.BackupDir)
}

func TestLoadTOML(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	path := env.WriteConfig("backup_dir = \"/tmp/backups\"\n")

	cfg, file, err := Load(env.ConfigDir)
	require.NoError(t, err)
	assert.Equal(t, path, file)
	assert.Equal(t, env.RepoRoot, cfg.Repo)
	assert.Equal(t, "/tmp/backups", cfg.BackupDir)
}

func TestLoadYAML(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	path := writeConfigFile(t, env.ConfigDir, "config.yaml", "repo: /srv/dotfiles\n")

	cfg, file, err := Load(env.ConfigDir)
	require.NoError(t, err)
	assert.Equal(t, path, file)
	assert.Equal(t, "/srv/dotfiles", cfg.Repo)
}

func TestLoadPrefersTOML(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	writeConfigFile(t, env.ConfigDir, "config.yaml", "repo: /from/yaml\n")
	writeConfigFile(t, env.ConfigDir, "config.toml", "repo = \"/from/toml\"\n")

	cfg, _, err := Load(env.ConfigDir)
	require.NoError(t, err)
	assert.Equal(t, "/from/toml", cfg.Repo)
}

func TestLoadExpandsHome(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	writeConfigFile(t, env.ConfigDir, "config.toml", "repo = \"~/dotfiles\"\nbackup_dir = \"~/bak\"\n")

	cfg, _, err := Load(env.ConfigDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.HomeDir, "dotfiles"), cfg.Repo)
	assert.Equal(t, filepath.Join(env.HomeDir, "bak"), cfg.BackupDir)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("")
	t.Setenv("CONFIGMA_REPO", "~/elsewhere")
	t.Setenv("CONFIGMA_BACKUP_DIR", "/var/bak")

	cfg, _, err := Load(env.ConfigDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.HomeDir, "elsewhere"), cfg.Repo)
	assert.Equal(t, "/var/bak", cfg.BackupDir)
}

func TestLoadEmptyEnvironmentKeepsFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WriteConfig("")
	t.Setenv("CONFIGMA_REPO", "")

	cfg, _, err := Load(env.ConfigDir)
	require.NoError(t, err)
	assert.Equal(t, env.RepoRoot, cfg.Repo)
}

func TestLoadMalformed(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	writeConfigFile(t, env.ConfigDir, "config.toml", "repo = [unterminated\n")

	_, _, err := Load(env.ConfigDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfig))
}

func TestDefaultsDocumentEveryKey(t *testing.T) {
	content := string(defaultConfig)
	assert.Contains(t, content, "repo = \"\"")
	assert.Contains(t, content, "backup_dir")
}
