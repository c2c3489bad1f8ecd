package service

import (
	"context"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

type KanjiRepository interface {
	Count() int
	ByIndex(i int) (entities.Kanji, bool)
	All() []entities.Kanji
	Filter(week, day int) []entities.Kanji
	FilterRefs(week, day int) []entities.KanjiRef
	GroupByWeekAndDay() entities.Groups
	FindBySymbol(symbol string) (entities.Kanji, int, error)
	Random() (entities.Kanji, int, error)
	Statistics() entities.Statistics
}

type QuizStorage interface {
	Store(session *entities.QuizSession)
	Get(id string) (*entities.QuizSession, bool)
	Delete(id string)
}

// StateStore persists opaque state blobs under string keys.
type StateStore interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}

// BatchStateStore writes several states in one atomic step.
type BatchStateStore interface {
	StateStore
	SaveMany(ctx context.Context, values map[string][]byte) error
}
