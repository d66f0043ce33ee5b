//go:build !unix

package filesystem

// IsCrossDevice always reports false where EXDEV does not exist.
func IsCrossDevice(err error) bool {
	return false
}
