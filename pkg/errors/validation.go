package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// ValidateInputPath validates a data file path supplied on the command line.
//
// The validation rules are intentionally conservative:
//   - No empty paths
//   - No control characters or null bytes
//   - Maximum length of 500 characters
//
// Existence is checked separately by the loader so that a missing file
// surfaces as FILE_NOT_FOUND rather than INVALID_PATH.
func ValidateInputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "input path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "input path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "input path contains invalid characters")
		}
	}

	return nil
}

// ValidateOutputPath validates an output file path for rendered artifacts.
// An empty path is allowed (it means "do not save").
// A non-empty path must carry a file extension so the output format can be
// inferred from it.
func ValidateOutputPath(path string) error {
	if path == "" {
		return nil
	}

	if err := ValidateInputPath(path); err != nil {
		return New(ErrCodeInvalidPath, "output path: %s", UserMessage(err))
	}

	ext := filepath.Ext(path)
	if ext == "" || ext == "." {
		return New(ErrCodeInvalidPath, "output path %q has no file extension to infer a format from", path)
	}

	return nil
}

// FormatFromPath returns the lower-cased extension of path without the
// leading dot, e.g. "out/figure.PNG" yields "png".
// Returns an empty string when the path carries no extension.
func FormatFromPath(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
