package errors

import (
	"os"
	"regexp"
	"strings"
	"unicode"
)

// ValidateRoot checks that path names an existing directory to scan.
func ValidateRoot(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "root directory cannot be empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return Wrap(ErrCodeInvalidPath, err, "cannot access root %q", path)
	}
	if !info.IsDir() {
		return New(ErrCodeInvalidPath, "root %q is not a directory", path)
	}
	return nil
}

// ValidateRepoPath validates a file path within a repository for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateRepoPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidInput, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidInput, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// cratePrefixRegex matches the leading part of a crates.io package name.
var cratePrefixRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_-]*$`)

// ValidateCratePrefix validates a dependency name prefix such as "bevy".
func ValidateCratePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidInput, "dependency prefix cannot be empty")
	}
	if !cratePrefixRegex.MatchString(prefix) {
		return New(ErrCodeInvalidInput, "invalid crate name prefix: %q", prefix)
	}
	return nil
}
