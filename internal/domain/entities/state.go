package entities

import (
	"encoding/json"
	"fmt"
)

// Section is one of the application's top level screens.
type Section string

const (
	SectionFlashcards Section = "flashcards"
	SectionAllKanji   Section = "all-kanji"
	SectionAllWords   Section = "all-words"
	SectionTest       Section = "test"
)

// Sections lists every section in navigation order.
var Sections = []Section{SectionFlashcards, SectionAllKanji, SectionAllWords, SectionTest}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	for _, known := range Sections {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSection validates a section name.
func ParseSection(s string) (Section, error) {
	section := Section(s)
	if !section.Valid() {
		return "", fmt.Errorf("unknown section %q", s)
	}
	return section, nil
}

// AppState is the position that survives restarts.
type AppState struct {
	CurrentIndex   int     `json:"currentIndex"`
	CurrentSection Section `json:"currentSection"`
	Timestamp      int64   `json:"timestamp"` // unix milliseconds of the last change
}

// DefaultAppState is used when nothing usable was persisted.
func DefaultAppState() AppState {
	return AppState{CurrentSection: SectionFlashcards}
}

// Normalize clamps the state to a dataset of count records.
func (s AppState) Normalize(count int) AppState {
	if s.CurrentIndex < 0 || s.CurrentIndex >= count {
		s.CurrentIndex = 0
	}
	if !s.CurrentSection.Valid() {
		s.CurrentSection = SectionFlashcards
	}
	return s
}

// UnmarshalJSON also accepts the older currentKanjiIndex key.
func (s *AppState) UnmarshalJSON(data []byte) error {
	var raw struct {
		CurrentIndex      *int    `json:"currentIndex"`
		CurrentKanjiIndex *int    `json:"currentKanjiIndex"`
		CurrentSection    Section `json:"currentSection"`
		Timestamp         int64   `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = AppState{CurrentSection: raw.CurrentSection, Timestamp: raw.Timestamp}
	switch {
	case raw.CurrentIndex != nil:
		s.CurrentIndex = *raw.CurrentIndex
	case raw.CurrentKanjiIndex != nil:
		s.CurrentIndex = *raw.CurrentKanjiIndex
	}
	return nil
}
