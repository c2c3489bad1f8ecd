package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
	"github.com/aliskhannn/kanji-cards/internal/repository"
)

// StateKey is the store key of the default owner's state.
const StateKey = "kanjiAppState"

// StateKeyFor returns the store key for an owner; "" is the default owner.
func StateKeyFor(owner string) string {
	if owner == "" {
		return StateKey
	}
	return StateKey + ":" + owner
}

// StateService keeps each owner's card position and section.
// States are cached in memory, changes are marked dirty and written to the
// store by Save or Flush.
type StateService struct {
	repository KanjiRepository
	store      StateStore
	logger     *zap.Logger

	mu     sync.Mutex
	states map[string]entities.AppState
	dirty  map[string]struct{}
	rng    *rand.Rand
	now    func() time.Time
}

func NewStateService(repository KanjiRepository, store StateStore, logger *zap.Logger) *StateService {
	return &StateService{
		repository: repository,
		store:      store,
		logger:     logger,
		states:     make(map[string]entities.AppState),
		dirty:      make(map[string]struct{}),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
		now:        time.Now,
	}
}

// Get returns the owner's state. Missing or unreadable persisted state
// yields the defaults.
func (s *StateService) Get(ctx context.Context, owner string) entities.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(ctx, owner)
}

func (s *StateService) get(ctx context.Context, owner string) entities.AppState {
	if st, ok := s.states[owner]; ok {
		return st
	}

	st := s.restore(ctx, owner).Normalize(s.repository.Count())
	s.states[owner] = st
	return st
}

func (s *StateService) restore(ctx context.Context, owner string) entities.AppState {
	key := StateKeyFor(owner)

	raw, err := s.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, repository.ErrStateNotFound) {
			s.logger.Warn("failed to load state, using defaults", zap.String("key", key), zap.Error(err))
		}
		return entities.DefaultAppState()
	}

	var st entities.AppState
	if err := json.Unmarshal(raw, &st); err != nil {
		s.logger.Warn("corrupt state, using defaults", zap.String("key", key), zap.Error(err))
		return entities.DefaultAppState()
	}
	return st
}

// Update applies fn to the owner's state and marks it dirty.
func (s *StateService) Update(ctx context.Context, owner string, fn func(*entities.AppState)) entities.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(ctx, owner)
	fn(&st)
	return s.put(owner, st)
}

func (s *StateService) put(owner string, st entities.AppState) entities.AppState {
	st = st.Normalize(s.repository.Count())
	st.Timestamp = s.now().UnixMilli()
	s.states[owner] = st
	s.dirty[owner] = struct{}{}
	return st
}

// SetIndex moves to index. Out of range indexes are ignored and reported false.
func (s *StateService) SetIndex(ctx context.Context, owner string, index int) (entities.AppState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(ctx, owner)
	if index < 0 || index >= s.repository.Count() {
		return st, false
	}
	st.CurrentIndex = index
	return s.put(owner, st), true
}

func (s *StateService) SetSection(ctx context.Context, owner string, section entities.Section) (entities.AppState, error) {
	if !section.Valid() {
		return entities.AppState{}, fmt.Errorf("unknown section %q", section)
	}
	return s.Update(ctx, owner, func(st *entities.AppState) {
		st.CurrentSection = section
	}), nil
}

// Next moves one card forward, stopping at the last card.
func (s *StateService) Next(ctx context.Context, owner string) entities.AppState {
	return s.Update(ctx, owner, func(st *entities.AppState) {
		if st.CurrentIndex < s.repository.Count()-1 {
			st.CurrentIndex++
		}
	})
}

// Previous moves one card back, stopping at the first card.
func (s *StateService) Previous(ctx context.Context, owner string) entities.AppState {
	return s.Update(ctx, owner, func(st *entities.AppState) {
		if st.CurrentIndex > 0 {
			st.CurrentIndex--
		}
	})
}

// Random jumps to a random card other than the current one when there is more than one.
func (s *StateService) Random(ctx context.Context, owner string) entities.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(ctx, owner)
	count := s.repository.Count()
	if count == 0 {
		return st
	}

	next := s.rng.Intn(count)
	for count > 1 && next == st.CurrentIndex {
		next = s.rng.Intn(count)
	}
	st.CurrentIndex = next
	return s.put(owner, st)
}

// StudyStatistics describes the owner's position in the dataset.
func (s *StateService) StudyStatistics(ctx context.Context, owner string) entities.StudyStatistics {
	st := s.Get(ctx, owner)
	count := s.repository.Count()

	stats := entities.StudyStatistics{
		CurrentIndex: st.CurrentIndex,
		TotalKanji:   count,
	}
	if count > 0 {
		stats.ProgressPercentage = int(math.Round(float64(st.CurrentIndex+1) / float64(count) * 100))
	}
	if k, ok := s.repository.ByIndex(st.CurrentIndex); ok {
		stats.CurrentKanji = &k
	}
	return stats
}

// Persisted returns the raw state currently in the store, or nil.
func (s *StateService) Persisted(ctx context.Context, owner string) *entities.AppState {
	raw, err := s.store.Load(ctx, StateKeyFor(owner))
	if err != nil {
		return nil
	}
	var st entities.AppState
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil
	}
	return &st
}

// Save writes the owner's state to the store right away.
func (s *StateService) Save(ctx context.Context, owner string) error {
	s.mu.Lock()
	st := s.get(ctx, owner)
	delete(s.dirty, owner)
	s.mu.Unlock()

	if err := s.write(ctx, owner, st); err != nil {
		s.markDirty(owner)
		return err
	}
	return nil
}

// Flush writes every dirty state. States that fail to save stay dirty.
// Stores implementing BatchStateStore get all states in a single call.
func (s *StateService) Flush(ctx context.Context) error {
	s.mu.Lock()
	pending := make(map[string]entities.AppState, len(s.dirty))
	for owner := range s.dirty {
		pending[owner] = s.states[owner]
	}
	s.dirty = make(map[string]struct{})
	s.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	var (
		failed int
		err    error
	)
	if batch, ok := s.store.(BatchStateStore); ok {
		failed, err = s.flushBatch(ctx, batch, pending)
	} else {
		failed, err = s.flushEach(ctx, pending)
	}

	s.logger.Debug("app states flushed",
		zap.Int("count", len(pending)-failed),
		zap.Int("failed", failed),
	)

	return err
}

func (s *StateService) flushEach(ctx context.Context, pending map[string]entities.AppState) (int, error) {
	var errs []error
	for owner, st := range pending {
		if err := s.write(ctx, owner, st); err != nil {
			s.markDirty(owner)
			errs = append(errs, err)
		}
	}
	return len(errs), errors.Join(errs...)
}

func (s *StateService) flushBatch(ctx context.Context, batch BatchStateStore, pending map[string]entities.AppState) (int, error) {
	values := make(map[string][]byte, len(pending))
	for owner, st := range pending {
		raw, err := json.Marshal(st)
		if err != nil {
			s.logger.Error("failed to marshal state", zap.String("owner", owner), zap.Error(err))
			continue
		}
		values[StateKeyFor(owner)] = raw
	}

	if err := batch.SaveMany(ctx, values); err != nil {
		for owner := range pending {
			s.markDirty(owner)
		}
		return len(pending), fmt.Errorf("save %d states: %w", len(values), err)
	}
	return len(pending) - len(values), nil
}

func (s *StateService) write(ctx context.Context, owner string, st entities.AppState) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := s.store.Save(ctx, StateKeyFor(owner), raw); err != nil {
		return fmt.Errorf("save state %s: %w", StateKeyFor(owner), err)
	}
	return nil
}

func (s *StateService) markDirty(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dirty[owner] = struct{}{}
}
