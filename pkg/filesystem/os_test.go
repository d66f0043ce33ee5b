package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	assert.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	err := fs.WriteFile(testFile, testContent, 0644)
	require.NoError(t, err)

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	subDir := filepath.Join(tmpDir, "sub", "dir")
	err = fs.MkdirAll(subDir, 0755)
	require.NoError(t, err)

	entries, err := fs.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2) // test.txt and sub/

	renamed := filepath.Join(tmpDir, "renamed.txt")
	require.NoError(t, fs.Rename(testFile, renamed))
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fs.Remove(renamed))
	require.NoError(t, fs.RemoveAll(filepath.Join(tmpDir, "sub")))
}

func TestOSSymlinks(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()

	target := filepath.Join(tmpDir, "target")
	link := filepath.Join(tmpDir, "link")
	require.NoError(t, fs.WriteFile(target, []byte("x"), 0644))
	require.NoError(t, fs.Symlink(target, link))

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0, "Lstat should not follow the link")

	info, err = fs.Stat(link)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular(), "Stat should follow the link")

	got, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}
