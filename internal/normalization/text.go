package normalization

import (
	"strings"
	"unicode"
)

// CleanText collapses whitespace runs to a single space, drops every rune
// that is not a word character, whitespace or one of . , ! ? ; : and trims
// the result.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))

	space := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte(' ')
				space = true
			}
			continue
		}
		if !isAllowedRune(r) {
			// Dropping a rune must not join the spaces around it.
			continue
		}
		space = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isAllowedRune(r rune) bool {
	if isWordRune(r) {
		return true
	}
	switch r {
	case '.', ',', '!', '?', ';', ':':
		return true
	default:
		return false
	}
}

// IsClean reports whether text already satisfies the CleanText invariants.
func IsClean(text string) bool {
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace || r != ' ' {
				return false
			}
			prevSpace = true
			continue
		}
		if !isAllowedRune(r) {
			return false
		}
		prevSpace = false
	}
	return strings.TrimSpace(text) == text
}

// TokenCount counts whitespace separated tokens.
func TokenCount(s string) int {
	return len(strings.Fields(s))
}
