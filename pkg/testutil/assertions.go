package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSymlink checks that link is a symlink pointing at target
func AssertSymlink(t *testing.T, link, target string) {
	t.Helper()

	info, err := os.Lstat(link)
	require.NoError(t, err, "expected symlink at %s", link)
	require.True(t, info.Mode()&os.ModeSymlink != 0, "%s is not a symlink", link)

	got, err := os.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got, "symlink %s points to the wrong target", link)
}

// AssertFileContent checks that path is a regular file with content
func AssertFileContent(t *testing.T, path, content string) {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err, "expected file at %s", path)
	require.True(t, info.Mode().IsRegular(), "%s is not a regular file", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data), "unexpected content in %s", path)
}

// AssertRealDir checks that path is a directory and not a symlink to one
func AssertRealDir(t *testing.T, path string) {
	t.Helper()

	info, err := os.Lstat(path)
	require.NoError(t, err, "expected directory at %s", path)
	assert.True(t, info.IsDir(), "%s is not a real directory", path)
}

// AssertNotExists checks that nothing, not even a dangling symlink, is at path
func AssertNotExists(t *testing.T, path string) {
	t.Helper()

	_, err := os.Lstat(path)
	assert.True(t, os.IsNotExist(err), "expected nothing at %s", path)
}

// ListFiles returns every regular file below root as slash-separated
// relative paths
func ListFiles(t *testing.T, root string) []string {
	t.Helper()

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	return files
}
