package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aliskhannn/kanji-cards/internal/repository"
)

// fakeRedis implements the string commands the state repository uses.
type fakeRedis struct {
	goredis.Cmdable
	values  map[string]string
	getErr  error
	execErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: make(map[string]string)}
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *goredis.StatusCmd {
	f.values[key] = string(value.([]byte))
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	if f.getErr != nil {
		return goredis.NewStringResult("", f.getErr)
	}
	value, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(value, nil)
}

// TxPipelined applies the queued writes only when EXEC succeeds.
func (f *fakeRedis) TxPipelined(ctx context.Context, fn func(goredis.Pipeliner) error) ([]goredis.Cmder, error) {
	pipe := &fakePipe{queued: make(map[string]string)}
	if err := fn(pipe); err != nil {
		return nil, err
	}
	if f.execErr != nil {
		return nil, f.execErr
	}
	for k, v := range pipe.queued {
		f.values[k] = v
	}
	return nil, nil
}

type fakePipe struct {
	goredis.Pipeliner
	queued map[string]string
}

func (p *fakePipe) Set(_ context.Context, key string, value interface{}, _ time.Duration) *goredis.StatusCmd {
	p.queued[key] = string(value.([]byte))
	return goredis.NewStatusResult("", nil)
}

func TestStateRepository_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	repo := NewStateRepository(rdb, "kanji:")

	if _, err := repo.Load(ctx, "kanjiAppState"); !errors.Is(err, repository.ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}

	if err := repo.Save(ctx, "kanjiAppState", []byte(`{"currentIndex":2}`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := rdb.values["kanji:kanjiAppState"]; !ok {
		t.Fatalf("expected the key to be prefixed, got %v", rdb.values)
	}

	got, err := repo.Load(ctx, "kanjiAppState")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `{"currentIndex":2}` {
		t.Fatalf("unexpected value %s", got)
	}
}

func TestStateRepository_LoadError(t *testing.T) {
	rdb := newFakeRedis()
	rdb.getErr = errors.New("connection refused")
	repo := NewStateRepository(rdb, "kanji:")

	_, err := repo.Load(context.Background(), "kanjiAppState")
	if errors.Is(err, repository.ErrStateNotFound) || !errors.Is(err, rdb.getErr) {
		t.Fatalf("expected the client error to be wrapped, got %v", err)
	}
}

func TestStateRepository_SaveMany(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()
	repo := NewStateRepository(rdb, "kanji:")

	values := map[string][]byte{
		"kanjiAppState:1": []byte("1"),
		"kanjiAppState:2": []byte("2"),
	}
	if err := repo.SaveMany(ctx, values); err != nil {
		t.Fatalf("save many: %v", err)
	}
	if len(rdb.values) != 2 || rdb.values["kanji:kanjiAppState:1"] != "1" {
		t.Fatalf("unexpected stored values: %v", rdb.values)
	}

	rdb.values = make(map[string]string)
	rdb.execErr = errors.New("EXECABORT")
	err := repo.SaveMany(ctx, values)
	if !errors.Is(err, rdb.execErr) {
		t.Fatalf("expected exec error, got %v", err)
	}
	if len(rdb.values) != 0 {
		t.Fatalf("expected nothing stored after a failed exec, got %v", rdb.values)
	}
}
