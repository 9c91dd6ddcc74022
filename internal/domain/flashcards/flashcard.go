package flashcards

import (
	"time"
)

const (
	// DefaultGroupID is the deck every generated flashcard is filed under.
	DefaultGroupID uint = 1
	// MaxPerRequest caps how many flashcards one set of notes can produce.
	MaxPerRequest = 10
	// MinSentenceTokens is the exclusive lower bound on words per usable sentence.
	MinSentenceTokens = 5
)

type Flashcard struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id,omitempty"`
	GroupID   uint      `gorm:"column:group_id;not null;index" json:"group_id,omitempty"`
	Question  string    `gorm:"column:question;type:text;not null" json:"question"`
	Answer    string    `gorm:"column:answer;type:text;not null" json:"answer"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at,omitempty"`
}

func (Flashcard) TableName() string { return "flashcards" }

// Card is the question/answer pair returned to callers.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (f *Flashcard) Card() Card {
	if f == nil {
		return Card{}
	}
	return Card{Question: f.Question, Answer: f.Answer}
}

func Cards(batch []*Flashcard) []Card {
	out := make([]Card, 0, len(batch))
	for _, f := range batch {
		if f == nil {
			continue
		}
		out = append(out, f.Card())
	}
	return out
}
