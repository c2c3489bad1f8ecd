package httpapi

import (
	"context"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
	"github.com/aliskhannn/kanji-cards/internal/service"
)

type KanjiService interface {
	Count() int
	ByIndex(index int) (entities.Kanji, error)
	Filter(week, day int) []entities.KanjiRef
	Groups() []*entities.DayGroup
	Search(query string) []entities.KanjiRef
	Random() (entities.KanjiRef, error)
	Statistics() entities.Statistics
	GroupStatistics() entities.GroupStatistics
}

type WordsService interface {
	List(q service.WordQuery) []entities.WordEntry
	Statistics() entities.WordsStatistics
}

type QuizService interface {
	Defaults() entities.QuizSettings
	Create(settings entities.QuizSettings) (*entities.QuizSession, error)
	Get(id string) (*entities.QuizSession, error)
	Configure(id string, settings entities.QuizSettings) error
	Start(id string) (*entities.QuizSession, error)
	Answer(id string, option int) error
	Advance(id string) (bool, error)
	Stop(id string) error
	Result(id string) (entities.QuizResult, error)
	Reset(id string) error
	Delete(id string)
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

type ExportService interface {
	StudyJSON(ctx context.Context, owner string) (service.Document, error)
	WordsJSON() (service.Document, error)
	WordsWorkbook() (service.Document, error)
}
