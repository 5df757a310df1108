package slug

import (
	"regexp"
	"strings"
)

var (
	whitespace   = regexp.MustCompile(`\s+`)
	invalidChars = regexp.MustCompile(`[^\w-]`)
	multiHyphen  = regexp.MustCompile(`-+`)
)

// Make derives a URL-safe identifier from a display name: lower-case, runs of
// whitespace become a single hyphen, anything outside [word chars, hyphen] is
// stripped, repeated hyphens collapse, leading/trailing hyphens are trimmed.
// Pure and total: an empty name yields an empty slug, and Make is idempotent.
func Make(name string) string {
	s := strings.ToLower(name)
	s = whitespace.ReplaceAllString(s, "-")
	s = invalidChars.ReplaceAllString(s, "")
	s = multiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
