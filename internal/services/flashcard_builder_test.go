package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/flashcards-backend/internal/domain/flashcards"
	"github.com/yungbote/flashcards-backend/internal/platform/hfinference"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

func newBuilder(client hfinference.Client) FlashcardBuilder {
	log := logger.NewNop()
	return NewFlashcardBuilder(log, NewQuestionGenerator(log, client))
}

func TestBuildRejectsBlankNotes(t *testing.T) {
	b := newBuilder(&fakeInference{text: "q"})
	for _, notes := range []string{"", "   ", "\n\t"} {
		_, err := b.Build(context.Background(), notes)
		require.Error(t, err)
		assert.True(t, types.IsCode(err, types.CodeValidation), "notes=%q err=%v", notes, err)
	}
}

func TestBuildNoQualifyingSentences(t *testing.T) {
	fake := &fakeInference{text: "q"}
	b := newBuilder(fake)
	_, err := b.Build(context.Background(), "Too short. Also short! $$$")
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.CodeNoFlashcards))
	assert.Zero(t, fake.calls)
}

func TestBuildPhotosynthesisScenario(t *testing.T) {
	fake := &fakeInference{text: "What does photosynthesis convert sunlight into?"}
	b := newBuilder(fake)

	cards, err := b.Build(context.Background(), "The sky is blue. Photosynthesis converts sunlight into chemical energy in plants.")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Photosynthesis converts sunlight into chemical energy in plants.", cards[0].Answer)
	assert.Equal(t, "What does photosynthesis convert sunlight into?", cards[0].Question)
	assert.Equal(t, 1, fake.calls)
}

func TestBuildCapsAtTenAndKeepsOrder(t *testing.T) {
	var sentences []string
	for i := 0; i < 14; i++ {
		sentences = append(sentences, fmt.Sprintf("Sentence number %d has enough words inside.", i))
		sentences = append(sentences, "Tiny.")
	}
	b := newBuilder(&fakeInference{text: "q?"})

	cards, err := b.Build(context.Background(), strings.Join(sentences, " "))
	require.NoError(t, err)
	require.Len(t, cards, types.MaxPerRequest)
	for i, c := range cards {
		assert.Equal(t, fmt.Sprintf("Sentence number %d has enough words inside.", i), c.Answer)
		assert.NotEmpty(t, c.Question)
	}
}

func TestBuildWithUnreachableEndpointUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client, err := hfinference.NewClient(logger.NewNop(), hfinference.Config{
		URL:        url,
		Token:      "hf_test",
		HTTPClient: &http.Client{Timeout: 200 * time.Millisecond},
	})
	require.NoError(t, err)

	notes := "Water boils at one hundred degrees Celsius at sea level. Ice melts when its temperature rises above zero degrees."
	cards, err := newBuilder(client).Build(context.Background(), notes)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	for _, c := range cards {
		assert.Equal(t, FallbackQuestion(c.Answer), c.Question)
		assert.Contains(t, c.Question, BlankMarker)
	}
}

func TestBuildCleansNotesBeforeSplitting(t *testing.T) {
	b := newBuilder(&fakeInference{text: "q?"})
	cards, err := b.Build(context.Background(), "  Energy   (E) equals mass times   the speed of light squared!!  ")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Energy E equals mass times the speed of light squared!!", cards[0].Answer)
}
