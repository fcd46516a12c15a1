package movie

import (
	"strings"
	"unicode"
)

// CleanTitleOf derives the normalized comparison key for a title: case-folded
// with punctuation and whitespace stripped. Two titles that differ only in
// casing or punctuation produce the same key.
func CleanTitleOf(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SortTitleOf derives the locale-invariant sort title: the display title
// lower-cased.
func SortTitleOf(title string) string {
	return strings.ToLower(title)
}
