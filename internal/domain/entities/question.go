package entities

import "fmt"

// OptionsPerQuestion is the number of choices shown for every question.
const OptionsPerQuestion = 4

// QuestionKind is what a single question asks for.
type QuestionKind string

const (
	QuestionKindMeaning QuestionKind = "meaning"
	QuestionKindReading QuestionKind = "reading"
)

// QuizKind is the question kind chosen while configuring a quiz.
type QuizKind string

const (
	QuizKindMeaning QuizKind = "meaning"
	QuizKindReading QuizKind = "reading"
	QuizKindMixed   QuizKind = "mixed" // a fair coin per question
)

// ParseQuizKind validates a quiz kind coming from a user.
func ParseQuizKind(s string) (QuizKind, error) {
	k := QuizKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown quiz kind %q", ErrInvalidSettings, s)
	}
	return k, nil
}

// Valid reports whether k is a known quiz kind.
func (k QuizKind) Valid() bool {
	switch k {
	case QuizKindMeaning, QuizKindReading, QuizKindMixed:
		return true
	default:
		return false
	}
}

// Question is a single multiple choice question about one kanji.
type Question struct {
	TargetSymbol  string       `json:"targetSymbol"`
	Kind          QuestionKind `json:"kind"`
	CorrectAnswer string       `json:"correctAnswer"`
	Options       []string     `json:"options"`
	CorrectIndex  int          `json:"correctOptionIndex"`
}

// Answer returns the expected answer of k for the given question kind.
func (k Kanji) Answer(kind QuestionKind) string {
	if kind == QuestionKindReading {
		return ReadingOf(k)
	}
	return k.Meaning
}
