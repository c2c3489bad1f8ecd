package service

import (
	"fmt"
	"math/rand"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

// OptionGenerator builds multiple choice questions.
type OptionGenerator struct {
	all []entities.Kanji
	rng *rand.Rand
}

// NewOptionGenerator creates a generator drawing distractors from all.
func NewOptionGenerator(all []entities.Kanji, rng *rand.Rand) *OptionGenerator {
	return &OptionGenerator{
		all: all,
		rng: rng,
	}
}

// Generate creates a question about target with entities.OptionsPerQuestion
// distinct options, exactly one of them correct.
func (g *OptionGenerator) Generate(target entities.Kanji, kind entities.QuestionKind) entities.Question {
	correct := target.Answer(kind)

	options := make([]string, 0, entities.OptionsPerQuestion)
	options = append(options, correct)
	used := map[string]struct{}{correct: {}}

	// Distractors come from the whole dataset, not only the filtered pool.
	maxAttempts := 2 * len(g.all)
	for attempts := 0; len(options) < entities.OptionsPerQuestion && attempts < maxAttempts; attempts++ {
		candidate := g.all[g.rng.Intn(len(g.all))].Answer(kind)
		if candidate == "" {
			continue
		}
		if _, ok := used[candidate]; ok {
			continue
		}
		used[candidate] = struct{}{}
		options = append(options, candidate)
	}

	for n := len(options); len(options) < entities.OptionsPerQuestion; n++ {
		filler := placeholder(kind, n)
		if _, ok := used[filler]; ok {
			continue
		}
		used[filler] = struct{}{}
		options = append(options, filler)
	}

	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correctIndex := 0
	for i, o := range options {
		if o == correct {
			correctIndex = i
			break
		}
	}

	return entities.Question{
		TargetSymbol:  target.Symbol,
		Kind:          kind,
		CorrectAnswer: correct,
		Options:       options,
		CorrectIndex:  correctIndex,
	}
}

func placeholder(kind entities.QuestionKind, n int) string {
	if kind == entities.QuestionKindReading {
		return fmt.Sprintf("読み方%d", n)
	}
	return fmt.Sprintf("Вариант %d", n)
}
