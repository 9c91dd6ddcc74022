package normalization

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// SplitSentences cuts text wherever a terminal mark (. ! ?) is directly
// followed by whitespace. The mark stays with the preceding sentence; the
// whitespace is dropped along with any empty fragment.
func SplitSentences(text string) []string {
	out := []string{}
	start := 0
	var prev rune
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if unicode.IsSpace(r) && isTerminal(prev) {
			out = appendFragment(out, text[start:i])
			j := i
			for j < len(text) {
				rr, sz := utf8.DecodeRuneInString(text[j:])
				if !unicode.IsSpace(rr) {
					break
				}
				j += sz
			}
			start = j
			i = j
			prev = 0
			continue
		}
		prev = r
		i += size
	}
	return appendFragment(out, text[start:])
}

func appendFragment(out []string, frag string) []string {
	frag = strings.TrimSpace(frag)
	if frag == "" {
		return out
	}
	return append(out, frag)
}

// QualifyingSentences splits text and keeps sentences with more than
// minTokens whitespace separated tokens, in source order.
func QualifyingSentences(text string, minTokens int) []string {
	all := SplitSentences(text)
	out := make([]string, 0, len(all))
	for _, s := range all {
		if TokenCount(s) > minTokens {
			out = append(out, s)
		}
	}
	return out
}
