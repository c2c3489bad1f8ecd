package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

// MinPoolSize is the smallest filtered pool a quiz can be built from.
const MinPoolSize = entities.OptionsPerQuestion

var (
	ErrInsufficientData = errors.New("not enough kanji to build a quiz")
	ErrQuizNotFound     = errors.New("quiz not found")
)

// QuizService creates quiz sessions and drives them through their lifecycle.
type QuizService struct {
	repository KanjiRepository
	storage    QuizStorage
	logger     *zap.Logger

	defaults entities.QuizSettings

	mu    sync.Mutex // guards rng
	rng   *rand.Rand
	now   func() time.Time
	newID func() string
}

func NewQuizService(repository KanjiRepository, storage QuizStorage, logger *zap.Logger) *QuizService {
	return &QuizService{
		repository: repository,
		storage:    storage,
		logger:     logger,
		defaults:   entities.DefaultQuizSettings(),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// SetDefaultCount changes the question count of sessions opened with defaults.
func (s *QuizService) SetDefaultCount(n int) {
	if n >= 1 && n <= entities.MaxQuestionCount {
		s.defaults.QuestionCount = n
	}
}

// Defaults returns the settings new sessions start with.
func (s *QuizService) Defaults() entities.QuizSettings {
	return s.defaults
}

// Create stores a new session in the Configuring state.
func (s *QuizService) Create(settings entities.QuizSettings) (*entities.QuizSession, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	session := entities.NewQuizSession(s.newID(), settings)
	s.storage.Store(session)
	return session, nil
}

// Open returns the session with the given id, creating it with default
// settings when it does not exist.
func (s *QuizService) Open(id string) *entities.QuizSession {
	if session, ok := s.storage.Get(id); ok {
		return session
	}

	session := entities.NewQuizSession(id, s.defaults)
	s.storage.Store(session)
	return session
}

func (s *QuizService) Get(id string) (*entities.QuizSession, error) {
	session, ok := s.storage.Get(id)
	if !ok {
		return nil, fmt.Errorf("quiz %s: %w", id, ErrQuizNotFound)
	}
	return session, nil
}

func (s *QuizService) Configure(id string, settings entities.QuizSettings) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}
	return session.Configure(settings)
}

// Start generates the questions and moves the session to Running.
// When the filtered pool has fewer than MinPoolSize records the session
// stays in Configuring and ErrInsufficientData is returned.
func (s *QuizService) Start(id string) (*entities.QuizSession, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if state := session.State(); state != entities.QuizConfiguring {
		return nil, fmt.Errorf("%w: start in state %s", entities.ErrInvalidTransition, state)
	}

	settings := session.Settings()
	pool := s.repository.Filter(settings.Week, settings.Day)
	if len(pool) < MinPoolSize {
		return nil, fmt.Errorf("%w: %d kanji for week %d day %d, need %d",
			ErrInsufficientData, len(pool), settings.Week, settings.Day, MinPoolSize)
	}

	questions := s.GenerateQuestions(pool, settings)
	if err := session.Begin(questions, s.now()); err != nil {
		return nil, err
	}

	s.logger.Info("quiz started",
		zap.String("quiz_id", id),
		zap.Int("questions", len(questions)),
		zap.String("kind", string(settings.Kind)),
		zap.Int("week", settings.Week),
		zap.Int("day", settings.Day),
	)

	return session, nil
}

// GenerateQuestions builds a question batch from pool.
func (s *QuizService) GenerateQuestions(pool []entities.Kanji, settings entities.QuizSettings) []entities.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	selector := NewQuestionSelector(s.rng)
	generator := NewOptionGenerator(s.repository.All(), s.rng)

	targets := selector.Select(pool, settings.QuestionCount)
	questions := make([]entities.Question, 0, len(targets))
	for _, k := range targets {
		questions = append(questions, generator.Generate(k, selector.Kind(settings.Kind)))
	}

	return questions
}

func (s *QuizService) Answer(id string, option int) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}
	return session.RecordAnswer(option)
}

// Advance moves to the next question and reports whether the quiz finished.
func (s *QuizService) Advance(id string) (bool, error) {
	session, err := s.Get(id)
	if err != nil {
		return false, err
	}

	finished, err := session.Advance(s.now())
	if err != nil {
		return false, err
	}
	if finished {
		s.logFinished(session)
	}
	return finished, nil
}

// Stop finishes a running quiz early.
func (s *QuizService) Stop(id string) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := session.StopEarly(s.now()); err != nil {
		return err
	}
	s.logFinished(session)
	return nil
}

func (s *QuizService) Result(id string) (entities.QuizResult, error) {
	session, err := s.Get(id)
	if err != nil {
		return entities.QuizResult{}, err
	}
	return session.Result()
}

// Reset returns the session to Configuring.
func (s *QuizService) Reset(id string) error {
	session, err := s.Get(id)
	if err != nil {
		return err
	}
	session.Reset()
	return nil
}

func (s *QuizService) Delete(id string) {
	s.storage.Delete(id)
}

// FirstMistakeIndex resolves the dataset index of the first wrongly answered kanji.
func (s *QuizService) FirstMistakeIndex(result entities.QuizResult) (int, bool) {
	if len(result.Mistakes) == 0 {
		return 0, false
	}
	_, i, err := s.repository.FindBySymbol(result.Mistakes[0].Question.TargetSymbol)
	if err != nil {
		return 0, false
	}
	return i, true
}

func (s *QuizService) logFinished(session *entities.QuizSession) {
	res, err := session.Result()
	if err != nil {
		return
	}
	s.logger.Info("quiz finished",
		zap.String("quiz_id", session.ID()),
		zap.Int("answered", res.Answered),
		zap.Int("correct", res.Correct),
		zap.Int("percentage", res.Percentage),
		zap.Duration("duration", res.Duration),
	)
}
