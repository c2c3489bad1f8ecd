package service

import "testing"

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer()

	cases := []struct {
		in   string
		want string
	}{
		{"Вода", "вода"},
		{"カタカナ", "かたかな"},
		{"ｶﾀｶﾅ", "かたかな"},
		{"ＡＢＣ１２", "abc12"},
		{"  two   words ", "two words"},
		{"漢字", "漢字"},
		{"ー", "ー"},
	}

	for _, tc := range cases {
		if got := n.Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestNormalizer_Contains(t *testing.T) {
	n := NewNormalizer()

	if !n.Contains("", "anything") {
		t.Fatalf("expected empty query to match")
	}
	if !n.Contains("ミズ", "かわ", "みず") {
		t.Fatalf("expected katakana query to match a later field")
	}
	if n.Contains("みず", "かわ", "やま") {
		t.Fatalf("expected no match")
	}
}
