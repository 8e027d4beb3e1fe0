package errors

import (
	"strings"
	"unicode"
)

// ValidateNetworkFilename validates an entry of a network list file.
// Entries name files inside the data directory, so they must be plain
// basenames:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or parent-directory references
//   - Maximum length of 255 characters
func ValidateNetworkFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "network file name cannot be empty")
	}

	if len(name) > 255 {
		return New(ErrCodeInvalidPath, "network file name too long (max 255 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "network file name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "network file name cannot contain path separators: %q", name)
	}

	if name == "." || name == ".." {
		return New(ErrCodeInvalidPath, "network file name cannot be %q", name)
	}

	return nil
}
