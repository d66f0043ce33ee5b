// pkg/filesystem/afero_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: afero MemMapFs and OsFs
// PURPOSE: Test the afero-backed types.FS adapter

package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFS(t *testing.T) {
	fs := NewMemoryFS()

	require.NoError(t, fs.MkdirAll("/repo/work/.config", 0755))
	require.NoError(t, fs.WriteFile("/repo/work/.bashrc", []byte("bash"), 0644))
	require.NoError(t, fs.WriteFile("/repo/work/.config/starship.toml", []byte("x"), 0644))

	content, err := fs.ReadFile("/repo/work/.bashrc")
	require.NoError(t, err)
	assert.Equal(t, "bash", string(content))

	_, err = fs.ReadFile("/repo/work")
	assert.Error(t, err, "reading a directory")

	entries, err := fs.ReadDir("/repo/work")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, ".bashrc", entries[0].Name())
	assert.True(t, entries[0].Type().IsRegular())
	assert.Equal(t, ".config", entries[1].Name())
	assert.True(t, entries[1].IsDir())

	info, err := fs.Lstat("/repo/work/.bashrc")
	require.NoError(t, err)
	assert.Equal(t, int64(4), info.Size())

	require.NoError(t, fs.Rename("/repo/work/.bashrc", "/repo/work/.profile"))
	_, err = fs.Stat("/repo/work/.bashrc")
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fs.RemoveAll("/repo/work/.config"))
	_, err = fs.Stat("/repo/work/.config")
	assert.True(t, os.IsNotExist(err))
}

func TestMemoryFSHasNoSymlinks(t *testing.T) {
	fs := NewMemoryFS()

	err := fs.Symlink("/repo/work/.bashrc", "/home/.bashrc")
	assert.ErrorIs(t, err, afero.ErrNoSymlink)

	_, err = fs.Readlink("/home/.bashrc")
	assert.ErrorIs(t, err, afero.ErrNoReadlink)
}

func TestAferoOsFsSymlinks(t *testing.T) {
	fs := NewAferoFS(afero.NewOsFs())
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")

	require.NoError(t, fs.WriteFile(target, []byte("x"), 0644))
	require.NoError(t, fs.Symlink(target, link))

	got, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)
}
