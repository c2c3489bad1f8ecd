package service

import (
	"strings"

	"golang.org/x/text/width"
)

// Normalizer prepares user queries and dataset text for comparison.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize lowercases s, folds full and half width forms, maps katakana to
// hiragana and collapses whitespace.
func (n *Normalizer) Normalize(s string) string {
	s = width.Fold.String(s)
	s = strings.ToLower(s)
	s = strings.Map(katakanaToHiragana, s)
	return strings.Join(strings.Fields(s), " ")
}

// Contains reports whether query occurs in any of the fields after normalization.
// An empty query matches everything.
func (n *Normalizer) Contains(query string, fields ...string) bool {
	q := n.Normalize(query)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(n.Normalize(f), q) {
			return true
		}
	}
	return false
}

// katakanaToHiragana shifts ァ..ヶ onto ぁ..ゖ.
func katakanaToHiragana(r rune) rune {
	if r >= 'ァ' && r <= 'ヶ' {
		return r - ('ァ' - 'ぁ')
	}
	return r
}
