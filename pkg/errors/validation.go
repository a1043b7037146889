package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidatePath validates a local input path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
//
// "-" (stdin) is a valid path.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}
	return nil
}

// ValidateURL validates a source URL. It must parse, use http or https, and
// name a host.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid URL")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidInput, "URL must include a host")
	}
	return nil
}

// ValidateSheetName validates a workbook sheet name against the rules
// spreadsheet applications enforce. An empty name is valid and selects the
// first sheet.
func ValidateSheetName(name string) error {
	if name == "" {
		return nil
	}
	if n := len([]rune(name)); n > 31 {
		return New(ErrCodeInvalidSheet, "sheet name too long (max 31 characters, got %d)", n)
	}
	if strings.ContainsAny(name, `[]:*?/\`) {
		return New(ErrCodeInvalidSheet, "sheet name cannot contain any of []:*?/\\: %q", name)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return New(ErrCodeInvalidSheet, "sheet name cannot start or end with an apostrophe")
	}
	return nil
}
