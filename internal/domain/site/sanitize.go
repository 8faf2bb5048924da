package site

import (
	"strings"
	"unicode"
)

// Sanitize turns s into a URL path segment: whitespace becomes '-', every
// character outside [0-9A-Za-z-] is dropped and the result is lower-cased.
// Runs of whitespace are not collapsed.
func Sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte('-')
		case r == '-', '0' <= r && r <= '9', 'a' <= r && r <= 'z':
			b.WriteRune(r)
		case 'A' <= r && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return b.String()
}
