package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aliskhannn/kanji-cards/internal/infra/postgres"
	"github.com/aliskhannn/kanji-cards/internal/repository"
)

// StateRepository stores serialized app states in the app_state table.
type StateRepository struct {
	db postgres.DBTX
	tr *postgres.Transactor
}

func NewStateRepository(pool *pgxpool.Pool) *StateRepository {
	return newStateRepository(pool, postgres.NewTransactor(pool))
}

func newStateRepository(db postgres.DBTX, tr *postgres.Transactor) *StateRepository {
	return &StateRepository{db: db, tr: tr}
}

// EnsureSchema creates the app_state table when it does not exist yet.
func (r *StateRepository) EnsureSchema(ctx context.Context) error {
	query := `
        CREATE TABLE IF NOT EXISTS app_state (
            key        TEXT PRIMARY KEY,
            value      BYTEA NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )
    `

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("ensure app_state schema: %w", err)
	}

	return nil
}

// Save inserts or replaces the value stored under key.
func (r *StateRepository) Save(ctx context.Context, key string, value []byte) error {
	query := `
        INSERT INTO app_state (key, value, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE
        SET value = EXCLUDED.value,
            updated_at = NOW()
    `

	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	return nil
}

// SaveMany upserts every value in one transaction.
func (r *StateRepository) SaveMany(ctx context.Context, values map[string][]byte) error {
	return r.tr.WithinTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		txRepo := &StateRepository{db: tx}
		for key, value := range values {
			if err := txRepo.Save(ctx, key, value); err != nil {
				return fmt.Errorf("key %s: %w", key, err)
			}
		}
		return nil
	})
}

// Load returns the value stored under key.
// Returns repository.ErrStateNotFound if nothing was saved yet.
func (r *StateRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM app_state WHERE key = $1`

	var value []byte
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrStateNotFound
		}
		return nil, fmt.Errorf("load state: %w", err)
	}

	return value, nil
}

// Delete removes the value stored under key.
func (r *StateRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM app_state WHERE key = $1`

	if _, err := r.db.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("delete state: %w", err)
	}

	return nil
}
