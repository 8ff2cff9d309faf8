package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims leading/trailing whitespace and collapses any
// internal whitespace run to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeVenue(venue string) string {
	return TrimAndNormalize(venue)
}

func NormalizeGroup(group string) string {
	return TrimAndNormalize(group)
}

// NormalizeToken trims a value that must not contain internal whitespace
// at all, such as a date or a time of day.
func NormalizeToken(s string) string {
	return strings.TrimSpace(s)
}
