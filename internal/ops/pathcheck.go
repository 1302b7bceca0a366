package ops

import (
	"fmt"
	"os"
	"strings"

	"github.com/hpungsan/jotter/internal/errors"
)

// maxFilenameTitle bounds the title portion of an export filename.
const maxFilenameTitle = 60

// validateExportDir requires the exports directory to exist as a real directory.
// Artifacts are written directly into it, so only the final component needs
// O_NOFOLLOW protection at open time.
func validateExportDir(dir string) error {
	if containsTraversal(dir) {
		return errors.NewInvalidRequest("exports directory must not contain directory traversal (..)")
	}
	info, err := os.Lstat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewInvalidRequest(fmt.Sprintf("exports directory does not exist: %s", dir))
		}
		return errors.NewInternal(err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return errors.NewInvalidRequest("exports directory must not be a symlink")
	}
	if !info.IsDir() {
		return errors.NewInvalidRequest("exports path is not a directory")
	}
	return nil
}

// containsTraversal checks if path contains a ".." component.
func containsTraversal(path string) bool {
	for _, part := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if part == ".." {
			return true
		}
	}
	return false
}

// SanitizeForFilename sanitizes a note title for safe use in a filename.
func SanitizeForFilename(s string) string {
	// Replace path separators and whitespace with dashes
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ', '\t', '\n', '\r':
			return '-'
		}
		return r
	}, s)

	s = strings.ReplaceAll(s, "..", "-")

	// Remove null bytes and other control characters
	var result strings.Builder
	for _, r := range s {
		if r >= 32 && r != 127 {
			result.WriteRune(r)
		}
	}
	s = result.String()

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}

	s = strings.Trim(s, "-.")

	if runes := []rune(s); len(runes) > maxFilenameTitle {
		s = strings.TrimRight(string(runes[:maxFilenameTitle]), "-.")
	}

	if s == "" {
		s = "note"
	}

	return s
}
