package organizer

import (
	"fmt"
	"regexp"
	"strings"

	"tnivo/internal/category"
	"tnivo/internal/errs"
)

// Matcher decides whether a file participates in a run and which
// subdirectory it belongs in.
type Matcher interface {
	// Match returns the destination subdirectory for a file name. ok is
	// false when the file should be left alone.
	Match(name string) (subdir string, ok bool)
	// Describe returns a short label for logs and history rows.
	Describe() string
}

// RegexMatcher groups files by the first capture group of a user pattern.
type RegexMatcher struct {
	pattern *regexp.Regexp
}

// NewRegexMatcher compiles and validates a user-supplied pattern. The pattern
// must contain at least one capture group since the group names the
// destination directory.
func NewRegexMatcher(pattern string) (*RegexMatcher, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, errs.Wrap(errs.ErrValidation, "organize", "compile pattern", "pattern is empty", nil)
	}
	compiled, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errs.Wrap(errs.ErrValidation, "organize", "compile pattern", fmt.Sprintf("invalid pattern %q", pattern), err)
	}
	if compiled.NumSubexp() < 1 {
		return nil, errs.Wrap(errs.ErrValidation, "organize", "compile pattern", "pattern needs a capture group to name the destination directory", nil)
	}
	return &RegexMatcher{pattern: compiled}, nil
}

func (m *RegexMatcher) Match(name string) (string, bool) {
	groups := m.pattern.FindStringSubmatch(name)
	if groups == nil || len(groups) < 2 {
		return "", false
	}
	folder := sanitizeFolder(groups[1])
	if folder == "" {
		return "", false
	}
	return folder, true
}

func (m *RegexMatcher) Describe() string {
	return m.pattern.String()
}

// CategoryMatcher groups files into extension-category folders.
type CategoryMatcher struct{}

func NewCategoryMatcher() *CategoryMatcher {
	return &CategoryMatcher{}
}

func (CategoryMatcher) Match(name string) (string, bool) {
	return category.FolderName(category.ForName(name)), true
}

func (CategoryMatcher) Describe() string {
	return "by filetype"
}

// sanitizeFolder turns a capture group into a safe single-level directory
// name. Path separators become hyphens, control characters are dropped, and
// leading/trailing dots and spaces are trimmed.
func sanitizeFolder(raw string) string {
	var builder strings.Builder
	for _, r := range raw {
		switch {
		case r == '/' || r == '\\':
			builder.WriteRune('-')
		case r < 0x20 || r == 0x7f:
			// drop control characters
		default:
			builder.WriteRune(r)
		}
	}
	cleaned := strings.Trim(builder.String(), " .")
	if cleaned == "." || cleaned == ".." {
		return ""
	}
	return cleaned
}
