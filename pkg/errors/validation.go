package errors

import (
	"strings"
	"unicode"
)

// ValidateMeshName validates a mesh snapshot name for safety and correctness.
// Names are used as store keys and file names, so the rules are intentionally
// conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateMeshName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "mesh name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "mesh name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "mesh name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
		"/",    // Forward slash
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "mesh name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
// It prevents null bytes and control characters and enforces a reasonable
// length. Relative and absolute paths are both allowed; this is not a
// sandboxing check, only a sanity check for obviously broken input.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > 500 {
		return New(ErrCodeInvalidPath, "path too long (max 500 characters)")
	}

	for _, r := range path {
		if r == 0 || (unicode.IsControl(r) && r != '\t') {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}

	return nil
}
