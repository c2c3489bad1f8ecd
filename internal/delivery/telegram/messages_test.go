package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

func TestBuildProgressBar(t *testing.T) {
	cases := []struct {
		current, total, length int
		want                   string
	}{
		{0, 10, 10, "[░░░░░░░░░░]"},
		{5, 10, 10, "[█████░░░░░]"},
		{10, 10, 10, "[██████████]"},
		{12, 10, 4, "[████]"},
		{-1, 10, 4, "[░░░░]"},
		{3, 0, 4, "[░░░░]"},
	}

	for _, tc := range cases {
		if got := buildProgressBar(tc.current, tc.total, tc.length); got != tc.want {
			t.Fatalf("buildProgressBar(%d, %d, %d): expected %s, got %s", tc.current, tc.total, tc.length, tc.want, got)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[time.Duration]string{
		0:                       "0 сек",
		42 * time.Second:        "42 сек",
		1500 * time.Millisecond: "2 сек",
		125 * time.Second:       "2 мин 5 сек",
	}
	for d, want := range cases {
		if got := formatDuration(d); got != want {
			t.Fatalf("formatDuration(%s): expected %q, got %q", d, want, got)
		}
	}
}

func TestFormatCard(t *testing.T) {
	k := entities.Kanji{
		Symbol:   "券",
		Meaning:  "билет",
		Readings: entities.GroupedReadings([]string{"ケン"}, nil),
		Words:    []string{"定期券"},
		Week:     1,
		Day:      2,
	}

	hidden := formatCard(k, 0, 3, false)
	if strings.Contains(hidden, "билет") {
		t.Fatalf("expected the meaning to be hidden, got %s", hidden)
	}
	if !strings.Contains(hidden, "1 / 3") {
		t.Fatalf("expected position in footer, got %s", hidden)
	}

	revealed := formatCard(k, 0, 3, true)
	for _, want := range []string{"*билет*", "ケン", "定期券"} {
		if !strings.Contains(revealed, want) {
			t.Fatalf("expected %q in revealed card, got %s", want, revealed)
		}
	}
}

func TestFormatResult(t *testing.T) {
	res := entities.QuizResult{
		Total:      3,
		Answered:   2,
		Correct:    1,
		Percentage: 50,
		Grade:      entities.GradeFor(50),
		Mistakes: []entities.QuestionResult{{
			Question: entities.Question{TargetSymbol: "符", CorrectAnswer: "знак", Options: []string{"знак", "билет"}},
			Selected: 1,
		}},
	}

	text := formatResult(res)
	for _, want := range []string{"50%", "1 из 2", "досрочно", "符 — правильно: знак, ваш ответ: билет"} {
		if !strings.Contains(text, md(want)) && !strings.Contains(text, want) {
			t.Fatalf("expected %q in result, got %s", want, text)
		}
	}
}
