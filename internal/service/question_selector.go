package service

import (
	"math/rand"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

// QuestionSelector picks the kanji a quiz asks about.
type QuestionSelector struct {
	rng *rand.Rand
}

// NewQuestionSelector creates a new QuestionSelector.
func NewQuestionSelector(rng *rand.Rand) *QuestionSelector {
	return &QuestionSelector{rng: rng}
}

// Select draws up to count records from pool without replacement.
// Records repeating an already drawn glyph are skipped, so the result is
// shorter than count when the pool runs out of distinct glyphs.
func (s *QuestionSelector) Select(pool []entities.Kanji, count int) []entities.Kanji {
	if count <= 0 || len(pool) == 0 {
		return nil
	}

	out := make([]entities.Kanji, 0, min(count, len(pool)))
	seen := make(map[string]struct{}, cap(out))

	for _, i := range s.rng.Perm(len(pool)) {
		if len(out) >= count {
			break
		}
		k := pool[i]
		if _, ok := seen[k.Symbol]; ok {
			continue
		}
		seen[k.Symbol] = struct{}{}
		out = append(out, k)
	}

	return out
}

// Kind resolves the kind of a single question; mixed quizzes flip a fair coin.
func (s *QuestionSelector) Kind(kind entities.QuizKind) entities.QuestionKind {
	switch kind {
	case entities.QuizKindReading:
		return entities.QuestionKindReading
	case entities.QuizKindMixed:
		if s.rng.Intn(2) == 0 {
			return entities.QuestionKindMeaning
		}
		return entities.QuestionKindReading
	default:
		return entities.QuestionKindMeaning
	}
}
