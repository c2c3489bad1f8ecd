package entities

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

// QuizState is a stage of the quiz lifecycle.
type QuizState string

const (
	QuizConfiguring QuizState = "configuring"
	QuizRunning     QuizState = "running"
	QuizFinished    QuizState = "finished"
)

// noAnswer marks a question that has not been answered yet.
const noAnswer = -1

// MaxQuestionCount caps the number of questions a single quiz can ask.
const MaxQuestionCount = 100

// QuestionCounts are the question counts offered to users.
var QuestionCounts = []int{5, 10, 15, 20, 25, 30}

var (
	ErrNoAnswerSelected  = errors.New("no answer selected")
	ErrInvalidTransition = errors.New("invalid quiz state transition")
	ErrAnswerOutOfRange  = errors.New("answer index out of range")
	ErrInvalidSettings   = errors.New("invalid quiz settings")
)

// QuizSettings is what a user chooses before starting a quiz.
type QuizSettings struct {
	QuestionCount int      `json:"questionCount"`
	Kind          QuizKind `json:"kind"`
	Week          int      `json:"week"` // Any for every week
	Day           int      `json:"day"`  // Any for every day
}

// DefaultQuizSettings returns ten meaning questions over the whole dataset.
func DefaultQuizSettings() QuizSettings {
	return QuizSettings{
		QuestionCount: 10,
		Kind:          QuizKindMeaning,
		Week:          Any,
		Day:           Any,
	}
}

// Validate checks the settings ranges.
func (s QuizSettings) Validate() error {
	if s.QuestionCount < 1 || s.QuestionCount > MaxQuestionCount {
		return fmt.Errorf("%w: question count %d", ErrInvalidSettings, s.QuestionCount)
	}
	if !s.Kind.Valid() {
		return fmt.Errorf("%w: unknown quiz kind %q", ErrInvalidSettings, s.Kind)
	}
	if s.Week < 0 || s.Day < 0 {
		return fmt.Errorf("%w: negative week or day", ErrInvalidSettings)
	}
	return nil
}

// QuizSession drives one quiz through Configuring → Running → Finished.
// All methods are safe for concurrent use.
type QuizSession struct {
	mu sync.Mutex

	id         string
	state      QuizState
	settings   QuizSettings
	questions  []Question
	answers    []int
	current    int
	startedAt  time.Time
	finishedAt time.Time
}

// NewQuizSession creates a session in the Configuring state.
func NewQuizSession(id string, settings QuizSettings) *QuizSession {
	return &QuizSession{
		id:       id,
		state:    QuizConfiguring,
		settings: settings,
	}
}

// ID returns the session identifier.
func (s *QuizSession) ID() string {
	return s.id
}

// State returns the current lifecycle stage.
func (s *QuizSession) State() QuizState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Settings returns the current settings.
func (s *QuizSession) Settings() QuizSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Configure replaces the settings. Only allowed while configuring.
func (s *QuizSession) Configure(settings QuizSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != QuizConfiguring {
		return fmt.Errorf("%w: configure in state %s", ErrInvalidTransition, s.state)
	}
	s.settings = settings
	return nil
}

// Begin moves the session to Running with the given question batch.
func (s *QuizSession) Begin(questions []Question, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != QuizConfiguring {
		return fmt.Errorf("%w: begin in state %s", ErrInvalidTransition, s.state)
	}
	if len(questions) == 0 {
		return fmt.Errorf("%w: begin without questions", ErrInvalidTransition)
	}

	s.questions = questions
	s.answers = make([]int, len(questions))
	for i := range s.answers {
		s.answers[i] = noAnswer
	}
	s.current = 0
	s.startedAt = now
	s.finishedAt = time.Time{}
	s.state = QuizRunning

	return nil
}

// CurrentQuestion returns the question being asked and its position.
func (s *QuizSession) CurrentQuestion() (Question, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != QuizRunning {
		return Question{}, 0, fmt.Errorf("%w: no current question in state %s", ErrInvalidTransition, s.state)
	}
	return s.questions[s.current], s.current, nil
}

// RecordAnswer stores the selected option for the current question.
// Calling it again before Advance overwrites the previous choice.
func (s *QuizSession) RecordAnswer(option int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != QuizRunning {
		return fmt.Errorf("%w: answer in state %s", ErrInvalidTransition, s.state)
	}
	if option < 0 || option >= len(s.questions[s.current].Options) {
		return fmt.Errorf("%w: %d", ErrAnswerOutOfRange, option)
	}

	s.answers[s.current] = option
	return nil
}

// Advance moves past the current question. It finishes the quiz after the
// last question and reports whether it did.
func (s *QuizSession) Advance(now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != QuizRunning {
		return false, fmt.Errorf("%w: advance in state %s", ErrInvalidTransition, s.state)
	}
	if s.answers[s.current] == noAnswer {
		return false, ErrNoAnswerSelected
	}

	s.current++
	if s.current >= len(s.questions) {
		s.finish(now)
		return true, nil
	}
	return false, nil
}

// StopEarly finishes a running quiz. Only questions already advanced past are scored.
func (s *QuizSession) StopEarly(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != QuizRunning {
		return fmt.Errorf("%w: stop in state %s", ErrInvalidTransition, s.state)
	}
	s.finish(now)
	return nil
}

func (s *QuizSession) finish(now time.Time) {
	s.state = QuizFinished
	s.finishedAt = now
}

// Reset returns the session to Configuring, keeping the settings.
func (s *QuizSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = QuizConfiguring
	s.questions = nil
	s.answers = nil
	s.current = 0
	s.startedAt = time.Time{}
	s.finishedAt = time.Time{}
}

// Result summarizes a finished quiz.
func (s *QuizSession) Result() (QuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != QuizFinished {
		return QuizResult{}, fmt.Errorf("%w: result in state %s", ErrInvalidTransition, s.state)
	}

	res := QuizResult{
		Total:    len(s.questions),
		Answered: s.current,
		Duration: s.finishedAt.Sub(s.startedAt),
	}

	for i := 0; i < s.current; i++ {
		qr := QuestionResult{
			Question: s.questions[i],
			Selected: s.answers[i],
			Correct:  s.answers[i] == s.questions[i].CorrectIndex,
		}
		if qr.Correct {
			res.Correct++
		} else {
			res.Mistakes = append(res.Mistakes, qr)
		}
		res.Questions = append(res.Questions, qr)
	}

	res.Percentage = Percentage(res.Correct, res.Answered)
	res.Grade = GradeFor(res.Percentage)

	return res, nil
}

// QuizView is a read-only snapshot of a session.
type QuizView struct {
	ID         string
	State      QuizState
	Settings   QuizSettings
	Total      int
	Position   int       // zero-based index of the current question
	Question   *Question // nil unless running
	Selected   int       // selected option of the current question, -1 if none
	StartedAt  time.Time
	FinishedAt time.Time
}

// View returns a consistent snapshot of the session.
func (s *QuizSession) View() QuizView {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := QuizView{
		ID:         s.id,
		State:      s.state,
		Settings:   s.settings,
		Total:      len(s.questions),
		Position:   s.current,
		Selected:   noAnswer,
		StartedAt:  s.startedAt,
		FinishedAt: s.finishedAt,
	}
	if s.state == QuizRunning {
		q := s.questions[s.current]
		v.Question = &q
		v.Selected = s.answers[s.current]
	}
	return v
}

// QuestionResult is the outcome of one answered question.
type QuestionResult struct {
	Question Question `json:"question"`
	Selected int      `json:"selected"`
	Correct  bool     `json:"correct"`
}

// QuizResult is the summary of a finished quiz.
type QuizResult struct {
	Total      int              `json:"totalQuestions"`
	Answered   int              `json:"answered"`
	Correct    int              `json:"correctAnswers"`
	Percentage int              `json:"percentage"`
	Duration   time.Duration    `json:"-"`
	Questions  []QuestionResult `json:"questions"`
	Mistakes   []QuestionResult `json:"mistakes"`
	Grade      Grade            `json:"grade"`
}

// Percentage returns round(100·correct/answered), or 0 when nothing was answered.
func Percentage(correct, answered int) int {
	if answered <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) * 100 / float64(answered)))
}

// Grade is a human readable verdict on a score.
type Grade string

const (
	GradeExcellent    Grade = "🏆 Отлично!"
	GradeGood         Grade = "🥈 Хорошо!"
	GradeSatisfactory Grade = "🥉 Удовлетворительно"
	GradeNeedPractice Grade = "📚 Нужно больше практики"
)

// GradeFor maps a percentage to a grade.
func GradeFor(percentage int) Grade {
	switch {
	case percentage >= 90:
		return GradeExcellent
	case percentage >= 75:
		return GradeGood
	case percentage >= 60:
		return GradeSatisfactory
	default:
		return GradeNeedPractice
	}
}
