package domain

import (
	"context"
	"time"
)

// UnknownAnswer is reported as the correct answer when a session is missing,
// already consumed or expired.
const UnknownAnswer = "unknown"

// Category is one animal the quiz can ask about. Key doubles as the filename
// prefix used to find ingested assets for it.
type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// DefaultCategories is the fixed category set offered in every quiz.
var DefaultCategories = []Category{
	{Key: "tanuki", Label: "タヌキ"},
	{Key: "anaguma", Label: "アナグマ"},
	{Key: "hakubishin", Label: "ハクビシン"},
}

// FindCategory looks up a category by key.
func FindCategory(categories []Category, key string) (Category, bool) {
	for _, c := range categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// QuizChoice is one selectable image in a quiz.
type QuizChoice struct {
	ID       int    `json:"id"`
	ImageURL string `json:"image_url"`
	Category string `json:"category"`
}

// QuizSession is a generated quiz. CorrectCategory is never sent to clients
// before the session is consumed.
type QuizSession struct {
	ID              string       `json:"id"`
	Question        string       `json:"question"`
	Choices         []QuizChoice `json:"choices"`
	CorrectCategory string       `json:"correct_category"`
}

// Validate checks that the correct category names exactly one choice.
func (s *QuizSession) Validate() error {
	if s.Question == "" {
		return NewInvalidInputError("question is required")
	}
	matches := 0
	for _, c := range s.Choices {
		if c.Category == s.CorrectCategory {
			matches++
		}
	}
	if matches != 1 {
		return NewInvalidInputError("correct category must match exactly one choice")
	}
	return nil
}

// StoredSession pairs a session with the moment it was registered.
type StoredSession struct {
	Session   QuizSession `json:"session"`
	CreatedAt time.Time   `json:"created_at"`
}

// Verdict is the outcome of consuming a session with a selected category.
type Verdict struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

// UnknownVerdict is returned for sessions that do not exist (any more).
func UnknownVerdict() Verdict {
	return Verdict{Correct: false, CorrectAnswer: UnknownAnswer}
}

// QuizSessionStore holds live quiz sessions until they are answered or expire.
//
// Consume never fails: a missing session is folded into UnknownVerdict so
// callers cannot tell whether an id ever existed.
type QuizSessionStore interface {
	Create(ctx context.Context, session QuizSession) (string, error)
	Consume(ctx context.Context, id, selectedCategory string) Verdict
}
