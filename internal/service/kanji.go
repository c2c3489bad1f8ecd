package service

import (
	"errors"
	"fmt"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
	"github.com/aliskhannn/kanji-cards/internal/repository"
)

type KanjiService struct {
	repository KanjiRepository
	normalizer *Normalizer
}

func NewKanjiService(repository KanjiRepository) *KanjiService {
	return &KanjiService{
		repository: repository,
		normalizer: NewNormalizer(),
	}
}

func (s *KanjiService) Count() int {
	return s.repository.Count()
}

// ByIndex returns the record at index or repository.ErrKanjiNotFound.
func (s *KanjiService) ByIndex(index int) (entities.Kanji, error) {
	k, ok := s.repository.ByIndex(index)
	if !ok {
		return entities.Kanji{}, fmt.Errorf("kanji %d: %w", index, repository.ErrKanjiNotFound)
	}
	return k, nil
}

func (s *KanjiService) Filter(week, day int) []entities.KanjiRef {
	return s.repository.FilterRefs(week, day)
}

func (s *KanjiService) Groups() []*entities.DayGroup {
	return s.repository.GroupByWeekAndDay().Ordered()
}

// Search finds records whose glyph, meaning or readings contain query.
func (s *KanjiService) Search(query string) []entities.KanjiRef {
	var out []entities.KanjiRef
	for _, ref := range s.repository.FilterRefs(entities.Any, entities.Any) {
		k := ref.Kanji
		fields := append([]string{k.Symbol, k.Meaning}, k.Readings.All()...)
		if s.normalizer.Contains(query, fields...) {
			out = append(out, ref)
		}
	}
	return out
}

// Lookup resolves a glyph to its first record.
func (s *KanjiService) Lookup(symbol string) (entities.KanjiRef, error) {
	k, i, err := s.repository.FindBySymbol(symbol)
	if err != nil {
		return entities.KanjiRef{}, err
	}
	return entities.KanjiRef{Index: i, Kanji: k}, nil
}

// Random returns a random record.
func (s *KanjiService) Random() (entities.KanjiRef, error) {
	k, i, err := s.repository.Random()
	if err != nil {
		return entities.KanjiRef{}, err
	}
	return entities.KanjiRef{Index: i, Kanji: k}, nil
}

func (s *KanjiService) Statistics() entities.Statistics {
	return s.repository.Statistics()
}

// GroupStatistics summarizes the grouped grid by week.
func (s *KanjiService) GroupStatistics() entities.GroupStatistics {
	groups := s.repository.GroupByWeekAndDay()

	stats := entities.GroupStatistics{Weeks: []entities.WeekSummary{}}
	for _, w := range groups.Weeks() {
		days := groups.Days(w)
		summary := entities.WeekSummary{
			Week:  w,
			Title: entities.WeekTitle(w),
			Days:  len(days),
		}
		for _, d := range days {
			summary.TotalKanji += len(groups[w][d].Kanji)
		}

		stats.TotalWeeks++
		stats.TotalDays += summary.Days
		stats.TotalKanji += summary.TotalKanji
		stats.Weeks = append(stats.Weeks, summary)
	}

	return stats
}

// IsNotFound reports whether err means a record does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrKanjiNotFound)
}
