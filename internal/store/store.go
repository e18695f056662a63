package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// EnsureSchema creates the interactions table if it does not exist.
// Idempotent; safe to run on every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS interactions (
			id             bigserial PRIMARY KEY,
			created_at     timestamptz NOT NULL,
			session_id     text NOT NULL,
			input_text     text NOT NULL,
			language       text NOT NULL DEFAULT '',
			context        text NOT NULL,
			tone           text NOT NULL,
			model          text NOT NULL,
			subject        text NOT NULL DEFAULT '',
			polished_text  text NOT NULL,
			notes          jsonb NOT NULL DEFAULT '[]',
			input_len      integer NOT NULL,
			output_len     integer NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("create interactions table: %w", err)
	}
	return nil
}
