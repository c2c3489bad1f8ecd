package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
	"github.com/aliskhannn/kanji-cards/internal/repository"
)

type sliceSource []entities.Kanji

func (s sliceSource) Name() string { return "test" }

func (s sliceSource) Load(context.Context) ([]entities.Kanji, error) {
	return s, nil
}

func newTestRepository(t *testing.T, kanji []entities.Kanji) *repository.KanjiRepository {
	t.Helper()
	repo := repository.NewKanjiRepository(zap.NewNop(), sliceSource(kanji))
	if _, err := repo.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return repo
}

// kanjiSet builds n records with distinct meanings and readings spread over weeks 1 and 2.
func kanjiSet(n int) []entities.Kanji {
	symbols := []rune("券符片往復精払戻料駐輪停路販個袋割税額替")
	out := make([]entities.Kanji, 0, n)
	for i := 0; i < n; i++ {
		week := 1
		if i%2 == 1 {
			week = 2
		}
		out = append(out, entities.Kanji{
			Symbol:   string(symbols[i%len(symbols)]),
			Meaning:  "значение " + string(rune('a'+i)),
			Readings: entities.FlatReadings("よみ" + string(rune('a'+i))),
			Words:    []string{string(symbols[i%len(symbols)]) + "語"},
			Week:     week,
			Day:      1,
		})
	}
	return out
}

// memoryStore is a StateStore that can be told to fail.
type memoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
	fail   bool
	saves  int
}

var errStoreDown = errors.New("store down")

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string][]byte)}
}

func (m *memoryStore) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errStoreDown
	}
	m.saves++
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *memoryStore) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, repository.ErrStateNotFound
	}
	return v, nil
}

type quizMap struct {
	mu       sync.Mutex
	sessions map[string]*entities.QuizSession
}

func newQuizMap() *quizMap {
	return &quizMap{sessions: make(map[string]*entities.QuizSession)}
}

func (q *quizMap) Store(s *entities.QuizSession) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sessions[s.ID()] = s
}

func (q *quizMap) Get(id string) (*entities.QuizSession, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	s, ok := q.sessions[id]
	return s, ok
}

func (q *quizMap) Delete(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.sessions, id)
}

// batchStore is a memoryStore that also writes in batches.
type batchStore struct {
	*memoryStore
	batches int
}

func (b *batchStore) SaveMany(_ context.Context, values map[string][]byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fail {
		return errStoreDown
	}
	b.batches++
	for k, v := range values {
		b.values[k] = append([]byte(nil), v...)
	}
	return nil
}
