package normalization

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"only spaces", "   \t\n ", ""},
		{"collapse", "The  sky\t\tis\nblue.", "The sky is blue."},
		{"keeps punctuation", "Wait, what? Yes! a; b: c.", "Wait, what? Yes! a; b: c."},
		{"drops symbols", "H2O (water) costs $5 #cheap", "H2O water costs 5 cheap"},
		{"dropped rune between spaces", "a - b", "a b"},
		{"unicode letters", "Café über naïve", "Café über naïve"},
		{"underscore is word", "snake_case value", "snake_case value"},
		{"trims", "  hello world.  ", "hello world."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanText(tc.in))
		})
	}
}

func TestCleanTextInvariantHoldsForRandomInput(t *testing.T) {
	alphabet := []rune("abcXYZ019_ .,!?;:\t\n\r-()[]{}$#@'\"/\\é€  ")
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		n := rng.Intn(60)
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		out := CleanText(b.String())
		require.Truef(t, IsClean(out), "input %q produced unclean output %q", b.String(), out)
		require.Equal(t, out, CleanText(out), "CleanText must be idempotent")
	}
}

func TestIsClean(t *testing.T) {
	assert.True(t, IsClean(""))
	assert.True(t, IsClean("a b. c"))
	assert.False(t, IsClean("a  b"))
	assert.False(t, IsClean("a\tb"))
	assert.False(t, IsClean(" a"))
	assert.False(t, IsClean("a-b"))
}

func TestTokenCount(t *testing.T) {
	assert.Equal(t, 0, TokenCount("  "))
	assert.Equal(t, 4, TokenCount("The sky is blue."))
}
