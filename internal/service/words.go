package service

import (
	"math"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

// WordQuery selects and orders the word list.
type WordQuery struct {
	Week   int
	Day    int
	Search string
	Sort   entities.WordSort
}

// WordsService builds the vocabulary list from every record's words.
type WordsService struct {
	repository KanjiRepository
	normalizer *Normalizer
}

func NewWordsService(repository KanjiRepository) *WordsService {
	return &WordsService{
		repository: repository,
		normalizer: NewNormalizer(),
	}
}

// All returns every word in dataset order.
func (s *WordsService) All() []entities.WordEntry {
	var out []entities.WordEntry
	for i, k := range s.repository.All() {
		out = append(out, entities.WordsFor(i, k)...)
	}
	return out
}

// List returns the words matching q in the requested order.
func (s *WordsService) List(q WordQuery) []entities.WordEntry {
	var out []entities.WordEntry
	for _, ref := range s.repository.FilterRefs(q.Week, q.Day) {
		for _, w := range entities.WordsFor(ref.Index, ref.Kanji) {
			if s.normalizer.Contains(q.Search, w.Word, w.Kanji, w.KanjiMeaning) {
				out = append(out, w)
			}
		}
	}

	SortWords(out, q.Sort)
	return out
}

// SortWords orders words in place. Unknown orders keep dataset order.
func SortWords(words []entities.WordEntry, by entities.WordSort) {
	switch by {
	case entities.WordSortAlphabetical:
		c := collate.New(language.Japanese)
		sort.SliceStable(words, func(i, j int) bool {
			return c.CompareString(words[i].Word, words[j].Word) < 0
		})
	case entities.WordSortLength:
		sort.SliceStable(words, func(i, j int) bool {
			return utf8.RuneCountInString(words[i].Word) < utf8.RuneCountInString(words[j].Word)
		})
	default:
		sort.SliceStable(words, func(i, j int) bool {
			return words[i].KanjiIndex < words[j].KanjiIndex
		})
	}
}

// Statistics summarizes the whole word list.
func (s *WordsService) Statistics() entities.WordsStatistics {
	words := s.All()
	stats := entities.WordsStatistics{TotalWords: len(words)}

	unique := make(map[string]struct{}, len(words))
	perKanji := make(map[string]int)
	for _, w := range words {
		unique[w.Word] = struct{}{}
		perKanji[w.Kanji]++
	}
	stats.UniqueWords = len(unique)

	for _, k := range s.repository.All() {
		if len(k.Words) == 0 {
			stats.KanjiWithoutWords++
		}
	}

	if len(words) == 0 {
		return stats
	}

	avg := float64(len(words)) / float64(len(perKanji))
	stats.AverageWordsPerKanji = math.Round(avg*10) / 10

	byLength := append([]entities.WordEntry(nil), words...)
	SortWords(byLength, entities.WordSortLength)
	stats.ShortestWord = byLength[0].Word
	stats.LongestWord = byLength[len(byLength)-1].Word

	return stats
}
