// Package entities contains domain entities used across the application.
package entities

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

const (
	// NoReading is returned by ReadingOf when a record carries no readings at all.
	NoReading = "Нет чтения"
	// DefaultTheme labels a (week, day) group whose records have no theme.
	DefaultTheme = "Без темы"
	// Any is the week/day wildcard used by filters.
	Any = 0

	defaultWeek = 1
	defaultDay  = 1
)

// Kanji represents one character's full study data from the N3 kanji book.
// Week and Day are normalized at decode time: absent or invalid values become 1.
type Kanji struct {
	Symbol   string    `json:"kanji"`    // the character glyph
	Meaning  string    `json:"meaning"`  // short gloss
	Readings Readings  `json:"readings"` // on/kun or flat readings
	Words    []string  `json:"words"`    // example vocabulary
	Examples []Example `json:"examples"` // example sentences with translation
	Week     int       `json:"week"`     // textbook week (grouping key)
	Day      int       `json:"day"`      // textbook day inside the week (grouping key)
	Theme    string    `json:"theme"`    // label of the (week, day) lesson
}

// KanjiRef pairs a record with its position in the loaded dataset.
type KanjiRef struct {
	Index int   `json:"index"`
	Kanji Kanji `json:"kanji"`
}

// ReadingOf returns a single representative reading of k.
func ReadingOf(k Kanji) string {
	return k.Readings.First()
}

// Reading is a shorthand for ReadingOf(k).
func (k Kanji) Reading() string {
	return ReadingOf(k)
}

// ThemeOrDefault returns the theme label used for grouping.
func (k Kanji) ThemeOrDefault() string {
	if strings.TrimSpace(k.Theme) == "" {
		return DefaultTheme
	}
	return k.Theme
}

// Matches reports whether k belongs to the given week and day; Any matches everything.
func (k Kanji) Matches(week, day int) bool {
	return (week == Any || k.Week == week) && (day == Any || k.Day == day)
}

// UnmarshalJSON decodes a record tolerating legacy shapes of the grouping keys
// and of the word list.
func (k *Kanji) UnmarshalJSON(data []byte) error {
	var raw struct {
		Symbol   json.RawMessage `json:"kanji"`
		Meaning  json.RawMessage `json:"meaning"`
		Readings Readings        `json:"readings"`
		Words    json.RawMessage `json:"words"`
		Examples json.RawMessage `json:"examples"`
		Week     json.RawMessage `json:"week"`
		Day      json.RawMessage `json:"day"`
		Theme    json.RawMessage `json:"theme"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*k = Kanji{
		Symbol:   decodeString(raw.Symbol),
		Meaning:  decodeString(raw.Meaning),
		Readings: raw.Readings,
		Week:     decodePositiveInt(raw.Week, defaultWeek),
		Day:      decodePositiveInt(raw.Day, defaultDay),
		Theme:    decodeString(raw.Theme),
	}

	for _, w := range decodeList(raw.Words) {
		if s := decodeString(w); s != "" {
			k.Words = append(k.Words, s)
		}
	}

	for _, e := range decodeList(raw.Examples) {
		var ex Example
		if err := json.Unmarshal(e, &ex); err == nil {
			k.Examples = append(k.Examples, ex)
		}
	}

	return nil
}

// decodeList returns the elements of a JSON array, or nil for anything else.
func decodeList(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}
	return list
}

// Normalize applies the defaults enforced by UnmarshalJSON to records built in code.
func (k Kanji) Normalize() Kanji {
	k.Symbol = strings.TrimSpace(k.Symbol)
	if k.Week <= 0 {
		k.Week = defaultWeek
	}
	if k.Day <= 0 {
		k.Day = defaultDay
	}
	return k
}

// decodeString returns the string value of raw, or "" for anything that is not a JSON string.
func decodeString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// decodePositiveInt accepts a JSON number or a numeric string.
func decodePositiveInt(raw json.RawMessage, def int) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return def
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return def
		}
		n = json.Number(strings.TrimSpace(s))
	}

	v, err := strconv.Atoi(n.String())
	if err != nil || v <= 0 {
		return def
	}
	return v
}
