package filesystem

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/configma/pkg/types"
)

// osFS forwards every call to package os
type osFS struct{}

// NewOS returns the real filesystem
func NewOS() types.FS {
	return osFS{}
}

func (osFS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (osFS) Lstat(name string) (fs.FileInfo, error) { return os.Lstat(name) }
func (osFS) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (osFS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }
func (osFS) Readlink(name string) (string, error) { return os.Readlink(name) }
func (osFS) Remove(name string) error { return os.Remove(name) }
func (osFS) RemoveAll(path string) error { return os.RemoveAll(path) }
func (osFS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }
func (osFS) Symlink(oldname, newname string) error { return os.Symlink(oldname, newname) }

func (osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (osFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}
