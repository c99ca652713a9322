package normalize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(`\s+`)

// NormalizeLabel trims and collapses whitespace in a free-text cell.
// Returns fallback if the input is nil or the result is empty.
func NormalizeLabel(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return fallback
	}
	return multiSpace.ReplaceAllString(s, " ")
}
