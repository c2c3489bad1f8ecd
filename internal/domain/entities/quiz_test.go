package entities

import (
	"errors"
	"testing"
	"time"
)

func testQuestions(n int) []Question {
	out := make([]Question, n)
	for i := range out {
		out[i] = Question{
			TargetSymbol:  string(rune('A' + i)),
			Kind:          QuestionKindMeaning,
			CorrectAnswer: "right",
			Options:       []string{"right", "w1", "w2", "w3"},
			CorrectIndex:  0,
		}
	}
	return out
}

func runningSession(t *testing.T, n int) *QuizSession {
	t.Helper()
	s := NewQuizSession("q", DefaultQuizSettings())
	if err := s.Begin(testQuestions(n), time.Unix(0, 0)); err != nil {
		t.Fatalf("begin: %v", err)
	}
	return s
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		correct, answered, want int
	}{
		{0, 0, 0},
		{3, 3, 100},
		{1, 3, 33},
		{2, 3, 67},
		{0, 5, 0},
	}
	for _, tc := range cases {
		if got := Percentage(tc.correct, tc.answered); got != tc.want {
			t.Fatalf("Percentage(%d, %d): expected %d, got %d", tc.correct, tc.answered, tc.want, got)
		}
	}
}

func TestGradeFor(t *testing.T) {
	cases := map[int]Grade{
		100: GradeExcellent,
		90:  GradeExcellent,
		89:  GradeGood,
		75:  GradeGood,
		60:  GradeSatisfactory,
		59:  GradeNeedPractice,
		0:   GradeNeedPractice,
	}
	for p, want := range cases {
		if got := GradeFor(p); got != want {
			t.Fatalf("GradeFor(%d): expected %q, got %q", p, want, got)
		}
	}
}

func TestQuizSettingsValidate(t *testing.T) {
	cases := []struct {
		name    string
		s       QuizSettings
		wantErr bool
	}{
		{"defaults", DefaultQuizSettings(), false},
		{"zero count", QuizSettings{QuestionCount: 0, Kind: QuizKindMeaning}, true},
		{"too many", QuizSettings{QuestionCount: MaxQuestionCount + 1, Kind: QuizKindMeaning}, true},
		{"unknown kind", QuizSettings{QuestionCount: 5, Kind: "kanji"}, true},
		{"negative week", QuizSettings{QuestionCount: 5, Kind: QuizKindMixed, Week: -1}, true},
		{"filtered", QuizSettings{QuestionCount: 5, Kind: QuizKindReading, Week: 2, Day: 3}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.s.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("expected error=%v, got %v", tc.wantErr, err)
			}
			if err != nil && !errors.Is(err, ErrInvalidSettings) {
				t.Fatalf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestQuizSession_AdvanceRequiresAnswer(t *testing.T) {
	s := runningSession(t, 2)

	if _, err := s.Advance(time.Now()); !errors.Is(err, ErrNoAnswerSelected) {
		t.Fatalf("expected ErrNoAnswerSelected, got %v", err)
	}
	if _, pos, _ := s.CurrentQuestion(); pos != 0 {
		t.Fatalf("expected to stay on question 0, got %d", pos)
	}
}

func TestQuizSession_RecordAnswerOverwrites(t *testing.T) {
	s := runningSession(t, 1)

	if err := s.RecordAnswer(2); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.RecordAnswer(0); err != nil {
		t.Fatalf("record: %v", err)
	}
	if v := s.View(); v.Selected != 0 {
		t.Fatalf("expected selection 0, got %d", v.Selected)
	}
	if err := s.RecordAnswer(4); !errors.Is(err, ErrAnswerOutOfRange) {
		t.Fatalf("expected ErrAnswerOutOfRange, got %v", err)
	}
}

func TestQuizSession_FullRun(t *testing.T) {
	s := runningSession(t, 3)
	start := time.Unix(0, 0)

	answers := []int{0, 1, 0}
	for i, a := range answers {
		if err := s.RecordAnswer(a); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		finished, err := s.Advance(start.Add(time.Duration(i+1) * time.Second))
		if err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
		if finished != (i == len(answers)-1) {
			t.Fatalf("question %d: unexpected finished=%v", i, finished)
		}
	}

	if s.State() != QuizFinished {
		t.Fatalf("expected finished, got %s", s.State())
	}

	res, err := s.Result()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if res.Total != 3 || res.Answered != 3 || res.Correct != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Percentage != 67 || res.Grade != GradeSatisfactory {
		t.Fatalf("unexpected score: %d %q", res.Percentage, res.Grade)
	}
	if len(res.Mistakes) != 1 || res.Mistakes[0].Question.TargetSymbol != "B" || res.Mistakes[0].Selected != 1 {
		t.Fatalf("unexpected mistakes: %+v", res.Mistakes)
	}
	if res.Duration != 3*time.Second {
		t.Fatalf("unexpected duration: %s", res.Duration)
	}
}

func TestQuizSession_StopEarlyScoresAdvancedQuestions(t *testing.T) {
	s := runningSession(t, 5)

	_ = s.RecordAnswer(0)
	if _, err := s.Advance(time.Now()); err != nil {
		t.Fatalf("advance: %v", err)
	}
	_ = s.RecordAnswer(3) // selected but not advanced

	if err := s.StopEarly(time.Now()); err != nil {
		t.Fatalf("stop: %v", err)
	}

	res, err := s.Result()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if res.Answered != 1 || res.Correct != 1 || res.Percentage != 100 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestQuizSession_StopBeforeAnyAnswer(t *testing.T) {
	s := runningSession(t, 3)
	if err := s.StopEarly(time.Now()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	res, _ := s.Result()
	if res.Answered != 0 || res.Percentage != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestQuizSession_InvalidTransitions(t *testing.T) {
	s := NewQuizSession("q", DefaultQuizSettings())

	if err := s.RecordAnswer(0); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("answer while configuring: expected ErrInvalidTransition, got %v", err)
	}
	if _, err := s.Result(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("result while configuring: expected ErrInvalidTransition, got %v", err)
	}
	if err := s.Begin(nil, time.Now()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("begin without questions: expected ErrInvalidTransition, got %v", err)
	}

	s = runningSession(t, 1)
	if err := s.Configure(DefaultQuizSettings()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("configure while running: expected ErrInvalidTransition, got %v", err)
	}
	if err := s.Begin(testQuestions(1), time.Now()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("begin while running: expected ErrInvalidTransition, got %v", err)
	}
}

func TestQuizSession_ResetKeepsSettings(t *testing.T) {
	settings := QuizSettings{QuestionCount: 15, Kind: QuizKindReading, Week: 2}
	s := NewQuizSession("q", settings)
	if err := s.Begin(testQuestions(2), time.Now()); err != nil {
		t.Fatalf("begin: %v", err)
	}

	s.Reset()

	v := s.View()
	if v.State != QuizConfiguring || v.Total != 0 || v.Question != nil {
		t.Fatalf("unexpected view after reset: %+v", v)
	}
	if v.Settings != settings {
		t.Fatalf("expected settings to survive reset, got %+v", v.Settings)
	}
}
