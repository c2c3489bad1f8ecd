package entities

// Statistics summarizes the loaded dataset.
type Statistics struct {
	TotalKanji    int            `json:"totalKanji"`
	WeekBreakdown map[int]int    `json:"weekBreakdown"`
	DayBreakdown  map[string]int `json:"dayBreakdown"` // keyed "week-day"
	Themes        []string       `json:"themes"`       // distinct, in first-seen order
}

// WeekSummary is the grid header data for one week.
type WeekSummary struct {
	Week       int    `json:"week"`
	Title      string `json:"title"`
	Days       int    `json:"days"`
	TotalKanji int    `json:"totalKanji"`
}

// GroupStatistics summarizes the grouped grid.
type GroupStatistics struct {
	TotalWeeks int           `json:"totalWeeks"`
	TotalDays  int           `json:"totalDays"`
	TotalKanji int           `json:"totalKanji"`
	Weeks      []WeekSummary `json:"weeks"`
}

// WordsStatistics summarizes the word list.
type WordsStatistics struct {
	TotalWords           int     `json:"totalWords"`
	UniqueWords          int     `json:"uniqueWords"`
	AverageWordsPerKanji float64 `json:"averageWordsPerKanji"` // one decimal place
	LongestWord          string  `json:"longestWord"`
	ShortestWord         string  `json:"shortestWord"`
	KanjiWithoutWords    int     `json:"kanjiWithoutWords"`
}

// StudyStatistics describes the card browser position.
type StudyStatistics struct {
	CurrentIndex       int    `json:"currentIndex"`
	TotalKanji         int    `json:"totalKanji"`
	ProgressPercentage int    `json:"progressPercentage"`
	CurrentKanji       *Kanji `json:"currentKanji,omitempty"`
}
