package normalization

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"single without mark", "no terminal mark here", []string{"no terminal mark here"}},
		{"basic", "One. Two! Three? Four", []string{"One.", "Two!", "Three?", "Four"}},
		{"mark must be followed by space", "v1.2 is out.Really", []string{"v1.2 is out.Really"}},
		{"whitespace runs", "A.   B.\n\nC.", []string{"A.", "B.", "C."}},
		{"trailing whitespace", "End.   ", []string{"End."}},
		{"ellipsis", "Wait... what?", []string{"Wait...", "what?"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SplitSentences(tc.in))
		})
	}
}

func TestSplitSentencesIsRestartable(t *testing.T) {
	text := "First one. Second one."
	a := SplitSentences(text)
	a[0] = "mutated"
	b := SplitSentences(text)
	assert.Equal(t, []string{"First one.", "Second one."}, b)
}

func TestQualifyingSentences(t *testing.T) {
	text := CleanText("The sky is blue. Photosynthesis converts sunlight into chemical energy in plants.")
	got := QualifyingSentences(text, 5)
	require.Len(t, got, 1)
	assert.Equal(t, "Photosynthesis converts sunlight into chemical energy in plants.", got[0])
}

func TestQualifyingSentencesBoundary(t *testing.T) {
	five := "one two three four five."
	six := "one two three four five six."
	got := QualifyingSentences(five+" "+six, 5)
	assert.Equal(t, []string{six}, got)
}

func TestQualifyingSentencesPreserveSourceOrder(t *testing.T) {
	sentences := []string{
		"Alpha beta gamma delta epsilon zeta.",
		"Short one.",
		"Eta theta iota kappa lambda mu nu.",
		"Xi omicron pi rho sigma tau upsilon!",
	}
	text := CleanText(strings.Join(sentences, " "))
	got := QualifyingSentences(text, 5)
	require.Len(t, got, 3)
	last := -1
	for _, s := range got {
		assert.Greater(t, TokenCount(s), 5)
		idx := strings.Index(text, s)
		require.GreaterOrEqual(t, idx, 0)
		assert.Greater(t, idx, last, "sentences must keep source order")
		last = idx
	}
}
