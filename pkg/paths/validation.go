package paths

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/configma/pkg/errors"
)

// maxPathLen matches PATH_MAX on Linux
const maxPathLen = 4096

// ValidatePath rejects paths no filesystem call could accept
func ValidatePath(path string) error {
	switch {
	case path == "":
		return errors.New(errors.ErrInvalidInput, "path cannot be empty")
	case strings.ContainsRune(path, 0):
		return errors.New(errors.ErrInvalidInput, "path contains null bytes")
	case len(path) > maxPathLen:
		return errors.New(errors.ErrInvalidInput, "path exceeds maximum length")
	}
	return nil
}

// ValidateProfileName checks that name can be a top-level directory of the
// repository. Names starting with a dot are reserved for .git and similar
// entries that live next to the profiles.
func ValidateProfileName(name string) error {
	invalid := func(reason string) error {
		return errors.New(errors.ErrInvalidInput, "invalid profile name: "+reason).
			WithDetail("profile", name)
	}

	switch {
	case name == "":
		return invalid("empty")
	case strings.ContainsAny(name, `/\`):
		return invalid("contains a path separator")
	case strings.HasPrefix(name, "."):
		return invalid("starts with '.'")
	case strings.ContainsAny(name, `:*?"<>|`):
		return invalid(`contains one of :*?"<>|`)
	case strings.ContainsFunc(name, unicode.IsControl):
		return invalid("contains control characters")
	}
	return nil
}
