package entities

import "fmt"

// WordEntry is one vocabulary word together with the kanji it was listed under.
type WordEntry struct {
	Word         string `json:"word"`
	Kanji        string `json:"kanji"`
	KanjiMeaning string `json:"kanjiMeaning"`
	KanjiIndex   int    `json:"kanjiIndex"`
	Week         int    `json:"week"`
	Day          int    `json:"day"`
	Theme        string `json:"theme"`
}

// WordSort is the order of the word list.
type WordSort string

const (
	WordSortIndex        WordSort = "index"
	WordSortAlphabetical WordSort = "alphabetical"
	WordSortLength       WordSort = "length"
)

// WordSorts lists every supported word order.
var WordSorts = []WordSort{WordSortIndex, WordSortAlphabetical, WordSortLength}

// ParseWordSort validates a sort name; empty means dataset order.
func ParseWordSort(s string) (WordSort, error) {
	if s == "" {
		return WordSortIndex, nil
	}
	for _, known := range WordSorts {
		if WordSort(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown word sort %q", s)
}

// WordsFor expands the word list of the record at dataset index i.
func WordsFor(i int, k Kanji) []WordEntry {
	out := make([]WordEntry, 0, len(k.Words))
	for _, w := range k.Words {
		out = append(out, WordEntry{
			Word:         w,
			Kanji:        k.Symbol,
			KanjiMeaning: k.Meaning,
			KanjiIndex:   i,
			Week:         k.Week,
			Day:          k.Day,
			Theme:        k.ThemeOrDefault(),
		})
	}
	return out
}
