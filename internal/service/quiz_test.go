package service

import (
	"errors"
	"math/rand"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

func newTestQuizService(t *testing.T, kanji []entities.Kanji) *QuizService {
	t.Helper()
	svc := NewQuizService(newTestRepository(t, kanji), newQuizMap(), zap.NewNop())
	svc.rng = rand.New(rand.NewSource(42))
	return svc
}

func answerAll(t *testing.T, svc *QuizService, id string, correct bool) {
	t.Helper()
	session, err := svc.Get(id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	for {
		q, _, err := session.CurrentQuestion()
		if err != nil {
			t.Fatalf("current question: %v", err)
		}
		option := q.CorrectIndex
		if !correct {
			option = (q.CorrectIndex + 1) % len(q.Options)
		}
		if err := svc.Answer(id, option); err != nil {
			t.Fatalf("answer: %v", err)
		}
		finished, err := svc.Advance(id)
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if finished {
			return
		}
	}
}

func TestQuiz_AllCorrect(t *testing.T) {
	svc := newTestQuizService(t, kanjiSet(5))

	session, err := svc.Create(entities.QuizSettings{QuestionCount: 4, Kind: entities.QuizKindMeaning})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Start(session.ID()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if v := session.View(); v.Total != 4 || v.State != entities.QuizRunning {
		t.Fatalf("unexpected session: %+v", v)
	}

	answerAll(t, svc, session.ID(), true)

	res, err := svc.Result(session.ID())
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if res.Percentage != 100 || len(res.Mistakes) != 0 || res.Grade != entities.GradeExcellent {
		t.Fatalf("unexpected result: %+v", res)
	}
	if _, ok := svc.FirstMistakeIndex(res); ok {
		t.Fatalf("expected no mistake to review")
	}
}

func TestQuiz_BatchShorterThanRequested(t *testing.T) {
	svc := newTestQuizService(t, kanjiSet(4))

	session, err := svc.Create(entities.QuizSettings{QuestionCount: 10, Kind: entities.QuizKindReading})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Start(session.ID()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if v := session.View(); v.Total != 4 {
		t.Fatalf("expected 4 questions, got %d", v.Total)
	}
}

func TestQuiz_InsufficientData(t *testing.T) {
	svc := newTestQuizService(t, kanjiSet(10))

	cases := []struct {
		name     string
		settings entities.QuizSettings
	}{
		{"no matches", entities.QuizSettings{QuestionCount: 5, Kind: entities.QuizKindMeaning, Week: 7}},
		{"too few matches", entities.QuizSettings{QuestionCount: 5, Kind: entities.QuizKindMeaning, Week: 1, Day: 2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			session, err := svc.Create(tc.settings)
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if _, err := svc.Start(session.ID()); !errors.Is(err, ErrInsufficientData) {
				t.Fatalf("expected ErrInsufficientData, got %v", err)
			}
			if session.State() != entities.QuizConfiguring {
				t.Fatalf("expected session to stay configuring, got %s", session.State())
			}
		})
	}
}

func TestQuiz_FilteredPoolWithDistractorsFromWholeDataset(t *testing.T) {
	svc := newTestQuizService(t, kanjiSet(10))

	questions := svc.GenerateQuestions(svc.repository.Filter(2, entities.Any), entities.QuizSettings{
		QuestionCount: 10,
		Kind:          entities.QuizKindMixed,
	})
	if len(questions) != 5 {
		t.Fatalf("expected 5 questions from week 2, got %d", len(questions))
	}

	week2 := make(map[string]bool)
	for _, k := range svc.repository.Filter(2, entities.Any) {
		week2[k.Symbol] = true
	}
	for _, q := range questions {
		assertQuestion(t, q)
		if !week2[q.TargetSymbol] {
			t.Fatalf("target %q is outside the filtered pool", q.TargetSymbol)
		}
	}
}

func TestQuiz_MistakesAndReview(t *testing.T) {
	kanji := kanjiSet(6)
	svc := newTestQuizService(t, kanji)

	session, err := svc.Create(entities.QuizSettings{QuestionCount: 3, Kind: entities.QuizKindMeaning})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Start(session.ID()); err != nil {
		t.Fatalf("start: %v", err)
	}
	answerAll(t, svc, session.ID(), false)

	res, err := svc.Result(session.ID())
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if res.Percentage != 0 || len(res.Mistakes) != 3 || res.Grade != entities.GradeNeedPractice {
		t.Fatalf("unexpected result: %+v", res)
	}

	index, ok := svc.FirstMistakeIndex(res)
	if !ok {
		t.Fatalf("expected a mistake to review")
	}
	if kanji[index].Symbol != res.Mistakes[0].Question.TargetSymbol {
		t.Fatalf("review index %d does not point at %q", index, res.Mistakes[0].Question.TargetSymbol)
	}
}

func TestQuiz_StopAndReset(t *testing.T) {
	svc := newTestQuizService(t, kanjiSet(8))

	session, err := svc.Create(entities.DefaultQuizSettings())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Stop(session.ID()); !errors.Is(err, entities.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition when stopping a configuring quiz, got %v", err)
	}

	if _, err := svc.Start(session.ID()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.Advance(session.ID()); !errors.Is(err, entities.ErrNoAnswerSelected) {
		t.Fatalf("expected ErrNoAnswerSelected, got %v", err)
	}
	if err := svc.Stop(session.ID()); err != nil {
		t.Fatalf("stop: %v", err)
	}

	res, err := svc.Result(session.ID())
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if res.Answered != 0 || res.Percentage != 0 {
		t.Fatalf("unexpected early stop result: %+v", res)
	}

	if err := svc.Reset(session.ID()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if session.State() != entities.QuizConfiguring {
		t.Fatalf("expected configuring after reset, got %s", session.State())
	}
}

func TestQuiz_SessionLookup(t *testing.T) {
	svc := newTestQuizService(t, kanjiSet(4))

	if _, err := svc.Get("missing"); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
	if _, err := svc.Create(entities.QuizSettings{QuestionCount: 0, Kind: entities.QuizKindMeaning}); !errors.Is(err, entities.ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings, got %v", err)
	}

	svc.SetDefaultCount(25)
	svc.SetDefaultCount(0)
	opened := svc.Open("chat")
	if opened.Settings().QuestionCount != 25 {
		t.Fatalf("expected default count 25, got %d", opened.Settings().QuestionCount)
	}
	if again := svc.Open("chat"); again != opened {
		t.Fatalf("expected Open to return the existing session")
	}

	svc.Delete("chat")
	if _, err := svc.Get("chat"); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected session to be deleted, got %v", err)
	}
}
