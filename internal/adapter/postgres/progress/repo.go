// Package progress implements the enrichment checkpoint store. Each long
// running job keeps a single row with the last word ID it fully processed.
package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/oneword-app/oneword-backend/internal/adapter/postgres"
)

// Repo provides checkpoint persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new progress repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `SELECT last_word_id FROM import_progress WHERE job = $1`

// Get returns the checkpoint for a job. ok is false when the job has no
// checkpoint yet; a run then starts from the beginning.
func (r *Repo) Get(ctx context.Context, job string) (lastWordID uuid.UUID, ok bool, err error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var stored *uuid.UUID
	err = querier.QueryRow(ctx, getSQL, job).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("get checkpoint %q: %w", job, err)
	}
	if stored == nil {
		return uuid.Nil, false, nil
	}

	return *stored, true, nil
}

const setSQL = `
INSERT INTO import_progress (job, last_word_id, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (job) DO UPDATE
SET last_word_id = EXCLUDED.last_word_id,
    updated_at = EXCLUDED.updated_at`

// Set stores the checkpoint for a job, creating the row if needed.
func (r *Repo) Set(ctx context.Context, job string, lastWordID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	if _, err := querier.Exec(ctx, setSQL, job, lastWordID, now); err != nil {
		return fmt.Errorf("set checkpoint %q: %w", job, err)
	}

	return nil
}

const clearSQL = `DELETE FROM import_progress WHERE job = $1`

// Clear removes the checkpoint so the next run starts from the beginning.
func (r *Repo) Clear(ctx context.Context, job string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := querier.Exec(ctx, clearSQL, job); err != nil {
		return fmt.Errorf("clear checkpoint %q: %w", job, err)
	}

	return nil
}
