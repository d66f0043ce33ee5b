// pkg/testutil/environment.go
// DEPENDENCIES: pkg/paths, pkg/filesystem
// PURPOSE: Orchestrate isolated test environments

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/configma/pkg/filesystem"
	"github.com/arthur-debert/configma/pkg/paths"
	"github.com/arthur-debert/configma/pkg/types"
)

// TestEnvironment provides a complete, isolated configma environment
type TestEnvironment struct {
	// Core paths
	Root      string
	HomeDir   string
	RepoRoot  string
	ConfigDir string
	DataDir   string
	StateDir  string

	// Core dependencies
	FS       types.FS
	Paths    paths.Paths
	Resolver *paths.Resolver

	t *testing.T
}

// NewTestEnvironment creates a new test environment rooted in a temp dir.
// The repository lives inside the home directory, as it usually does.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	root := t.TempDir()
	// macOS temp dirs sit behind a /var -> /private/var symlink
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	home := filepath.Join(root, "home")
	env := &TestEnvironment{
		Root:     root,
		HomeDir:  home,
		RepoRoot: filepath.Join(home, "dotfiles"),
		FS:       filesystem.NewOS(),
		t:        t,
	}

	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))
	for _, key := range []string{
		paths.EnvConfigDir, paths.EnvDataDir, paths.EnvStateDir,
		"CONFIGMA_REPO", "CONFIGMA_BACKUP_DIR",
	} {
		t.Setenv(key, "")
	}

	for _, dir := range []string{home, env.RepoRoot} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	p, err := paths.New("")
	if err != nil {
		t.Fatalf("Failed to create paths: %v", err)
	}
	env.Paths = p
	env.ConfigDir = p.ConfigDir()
	env.DataDir = p.DataDir()
	env.StateDir = p.StateDir()
	env.Resolver = paths.NewResolver(home, env.RepoRoot)

	return env
}

// HomePath returns the absolute path of rel inside the home directory
func (env *TestEnvironment) HomePath(rel string) string {
	return filepath.Join(env.HomeDir, filepath.FromSlash(rel))
}

// RepoPath returns the absolute path of rel inside a profile
func (env *TestEnvironment) RepoPath(profile, rel string) string {
	return env.Resolver.RepoPath(profile, rel)
}

// WriteConfig writes a config.toml naming the test repository
func (env *TestEnvironment) WriteConfig(extra string) string {
	env.t.Helper()
	content := "repo = \"" + env.RepoRoot + "\"\n" + extra
	path := filepath.Join(env.ConfigDir, paths.ConfigFileName)
	env.writeFile(path, content)
	return path
}

// CreateProfile creates an empty profile directory
func (env *TestEnvironment) CreateProfile(name string) string {
	env.t.Helper()
	dir := env.Resolver.ProfileDir(name)
	env.mkdir(dir)
	return dir
}

// CreateHomeFile creates a regular file at rel inside home
func (env *TestEnvironment) CreateHomeFile(rel, content string) string {
	env.t.Helper()
	path := env.HomePath(rel)
	env.writeFile(path, content)
	return path
}

// CreateHomeDir creates a directory at rel inside home containing files
func (env *TestEnvironment) CreateHomeDir(rel string, files map[string]string) string {
	env.t.Helper()
	dir := env.HomePath(rel)
	env.mkdir(dir)
	for name, content := range files {
		env.writeFile(filepath.Join(dir, filepath.FromSlash(name)), content)
	}
	return dir
}

// CreateRepoFile creates a tracked file entry in a profile
func (env *TestEnvironment) CreateRepoFile(profile, rel, content string) string {
	env.t.Helper()
	path := env.RepoPath(profile, rel)
	env.writeFile(path, content)
	return path
}

// CreateStubDir creates a wholly tracked directory entry in a profile
func (env *TestEnvironment) CreateStubDir(profile, rel string, files map[string]string) string {
	env.t.Helper()
	dir := env.RepoPath(profile, rel)
	env.mkdir(dir)
	env.writeFile(filepath.Join(dir, types.StubFileName), "")
	for name, content := range files {
		env.writeFile(filepath.Join(dir, filepath.FromSlash(name)), content)
	}
	return dir
}

// Symlink creates link pointing at target, creating parents
func (env *TestEnvironment) Symlink(target, link string) {
	env.t.Helper()
	env.mkdir(filepath.Dir(link))
	if err := os.Symlink(target, link); err != nil {
		env.t.Fatalf("Failed to create symlink %s -> %s: %v", link, target, err)
	}
}

func (env *TestEnvironment) writeFile(path, content string) {
	env.t.Helper()
	env.mkdir(filepath.Dir(path))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		env.t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func (env *TestEnvironment) mkdir(dir string) {
	env.t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		env.t.Fatalf("Failed to create %s: %v", dir, err)
	}
}
