// Package redis stores app states in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/aliskhannn/kanji-cards/internal/repository"
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

// NewClient connects to Redis and pings it.
func NewClient(ctx context.Context, opts Options) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return rdb, nil
}

// StateRepository keeps app states as plain string values.
type StateRepository struct {
	rdb    goredis.Cmdable
	prefix string
}

func NewStateRepository(rdb goredis.Cmdable, prefix string) *StateRepository {
	return &StateRepository{rdb: rdb, prefix: prefix}
}

func (r *StateRepository) Save(ctx context.Context, key string, value []byte) error {
	if err := r.rdb.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

// SaveMany writes all values in one MULTI/EXEC block.
func (r *StateRepository) SaveMany(ctx context.Context, values map[string][]byte) error {
	_, err := r.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for key, value := range values {
			pipe.Set(ctx, r.prefix+key, value, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save states: %w", err)
	}
	return nil
}

func (r *StateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	value, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repository.ErrStateNotFound
		}
		return nil, fmt.Errorf("load state: %w", err)
	}
	return value, nil
}
