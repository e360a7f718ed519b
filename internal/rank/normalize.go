package rank

import (
	"strings"
	"unicode"

	"github.com/qkariin/queendom/internal/domain"
)

// NormalizeName lowercases s and drops every rune that is not a letter or a
// digit, so "Foot Man", "footman" and "FOOT-MAN" compare equal.
func NormalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// IndexOf returns the ladder position of the tier whose normalized name
// matches name, or -1.
func IndexOf(ladder domain.Ladder, name string) int {
	key := NormalizeName(name)
	if key == "" {
		return -1
	}
	for i, t := range ladder {
		if NormalizeName(t.Name) == key {
			return i
		}
	}
	return -1
}
