//go:build unix

package filesystem

import (
	"errors"

	"golang.org/x/sys/unix"
)

// IsCrossDevice reports whether err is a rename failing because source and
// destination are on different filesystems.
func IsCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
