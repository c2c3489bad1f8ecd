package telegram

import (
	"context"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
	"github.com/aliskhannn/kanji-cards/internal/service"
)

type KanjiService interface {
	Count() int
	ByIndex(index int) (entities.Kanji, error)
	Groups() []*entities.DayGroup
	Search(query string) []entities.KanjiRef
	Lookup(symbol string) (entities.KanjiRef, error)
	GroupStatistics() entities.GroupStatistics
}

type WordsService interface {
	List(q service.WordQuery) []entities.WordEntry
	Statistics() entities.WordsStatistics
}

type StateService interface {
	Get(ctx context.Context, owner string) entities.AppState
	SetIndex(ctx context.Context, owner string, index int) (entities.AppState, bool)
	SetSection(ctx context.Context, owner string, section entities.Section) (entities.AppState, error)
	Next(ctx context.Context, owner string) entities.AppState
	Previous(ctx context.Context, owner string) entities.AppState
	Random(ctx context.Context, owner string) entities.AppState
	StudyStatistics(ctx context.Context, owner string) entities.StudyStatistics
}

type QuizService interface {
	Open(id string) *entities.QuizSession
	Configure(id string, settings entities.QuizSettings) error
	Start(id string) (*entities.QuizSession, error)
	Answer(id string, option int) error
	Advance(id string) (bool, error)
	Stop(id string) error
	Result(id string) (entities.QuizResult, error)
	Reset(id string) error
	FirstMistakeIndex(result entities.QuizResult) (int, bool)
}

type ExportService interface {
	StudyJSON(ctx context.Context, owner string) (service.Document, error)
	WordsWorkbook() (service.Document, error)
}
