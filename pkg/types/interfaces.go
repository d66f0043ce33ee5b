package types

import (
	"io/fs"
)

// FS is every filesystem call configma makes. The sync engine relies on
// Rename replacing an existing symlink atomically and on Lstat not
// following links; implementations without symlinks can only serve the
// repository side.
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	ReadFile(name string) ([]byte, error)

	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error

	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
}
