package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/aliskhannn/kanji-cards/internal/domain/entities"
)

var (
	ErrDataUnavailable = errors.New("kanji data unavailable")
	ErrKanjiNotFound   = errors.New("kanji not found")
	ErrEmptyDataset    = errors.New("dataset is empty")
)

// KanjiRepository provides read access to the kanji dataset.
// The dataset is loaded once from the first source that yields records and
// is never modified afterwards, so slices it returns must not be changed.
type KanjiRepository struct {
	logger  *zap.Logger
	sources []Source

	mu     sync.RWMutex
	kanji  []entities.Kanji
	loaded bool
	source string
}

// NewKanjiRepository creates a repository that tries sources in order.
func NewKanjiRepository(logger *zap.Logger, sources ...Source) *KanjiRepository {
	return &KanjiRepository{
		logger:  logger,
		sources: sources,
	}
}

// Load fills the cache from the first source that yields a non-empty dataset.
// Subsequent calls return the cached dataset without touching the sources.
func (r *KanjiRepository) Load(ctx context.Context) ([]entities.Kanji, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loaded {
		return r.kanji, nil
	}

	var errs []error
	for _, src := range r.sources {
		list, err := src.Load(ctx)
		if err == nil {
			list = r.dropInvalid(src.Name(), list)
			if len(list) == 0 {
				err = ErrEmptyDataset
			}
		}
		if err != nil {
			r.logger.Warn("kanji source failed",
				zap.String("source", src.Name()),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}

		r.kanji = list
		r.loaded = true
		r.source = src.Name()
		r.logger.Info("kanji dataset loaded",
			zap.String("source", src.Name()),
			zap.Int("count", len(list)),
		)
		return list, nil
	}

	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no sources configured", ErrDataUnavailable)
	}
	return nil, fmt.Errorf("%w: %w", ErrDataUnavailable, errors.Join(errs...))
}

// dropInvalid removes records without a symbol; they cannot be displayed or asked about.
func (r *KanjiRepository) dropInvalid(source string, list []entities.Kanji) []entities.Kanji {
	out := make([]entities.Kanji, 0, len(list))
	for i, k := range list {
		if k.Symbol == "" {
			r.logger.Warn("skipping record without kanji",
				zap.String("source", source),
				zap.Int("position", i),
			)
			continue
		}
		out = append(out, k)
	}
	return out
}

// IsLoaded reports whether Load has succeeded.
func (r *KanjiRepository) IsLoaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded
}

// SourceName returns the name of the source the dataset came from.
func (r *KanjiRepository) SourceName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.source
}

func (r *KanjiRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.kanji)
}

// ByIndex returns the record at i. Out of range indexes report false.
func (r *KanjiRepository) ByIndex(i int) (entities.Kanji, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i < 0 || i >= len(r.kanji) {
		return entities.Kanji{}, false
	}
	return r.kanji[i], true
}

// All returns the whole dataset in load order.
func (r *KanjiRepository) All() []entities.Kanji {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.kanji
}

// Filter returns the records of a week and day in dataset order.
// entities.Any matches every week or day.
func (r *KanjiRepository) Filter(week, day int) []entities.Kanji {
	refs := r.FilterRefs(week, day)
	out := make([]entities.Kanji, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Kanji)
	}
	return out
}

// FilterRefs is Filter that also reports each record's dataset index.
func (r *KanjiRepository) FilterRefs(week, day int) []entities.KanjiRef {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []entities.KanjiRef
	for i, k := range r.kanji {
		if k.Matches(week, day) {
			out = append(out, entities.KanjiRef{Index: i, Kanji: k})
		}
	}
	return out
}

// GroupByWeekAndDay buckets the dataset into lessons.
func (r *KanjiRepository) GroupByWeekAndDay() entities.Groups {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make(entities.Groups)
	for i, k := range r.kanji {
		groups.Add(i, k)
	}
	return groups
}

// ReadingOf returns a single representative reading of k.
func (r *KanjiRepository) ReadingOf(k entities.Kanji) string {
	return entities.ReadingOf(k)
}

// FindBySymbol returns the first record with the given glyph and its index.
func (r *KanjiRepository) FindBySymbol(symbol string) (entities.Kanji, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i, k := range r.kanji {
		if k.Symbol == symbol {
			return k, i, nil
		}
	}
	return entities.Kanji{}, -1, ErrKanjiNotFound
}

// Random returns a uniformly chosen record and its index.
func (r *KanjiRepository) Random() (entities.Kanji, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.kanji) == 0 {
		return entities.Kanji{}, -1, ErrKanjiNotFound
	}
	i := rand.Intn(len(r.kanji))
	return r.kanji[i], i, nil
}

// Statistics summarizes the dataset.
func (r *KanjiRepository) Statistics() entities.Statistics {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := entities.Statistics{
		TotalKanji:    len(r.kanji),
		WeekBreakdown: make(map[int]int),
		DayBreakdown:  make(map[string]int),
		Themes:        []string{},
	}

	seen := make(map[string]struct{})
	for _, k := range r.kanji {
		stats.WeekBreakdown[k.Week]++
		stats.DayBreakdown[strconv.Itoa(k.Week)+"-"+strconv.Itoa(k.Day)]++

		if k.Theme == "" {
			continue
		}
		if _, ok := seen[k.Theme]; !ok {
			seen[k.Theme] = struct{}{}
			stats.Themes = append(stats.Themes, k.Theme)
		}
	}

	return stats
}
