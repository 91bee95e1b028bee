// Package assignment implements persistence for daily word assignments.
package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/oneword-app/oneword-backend/internal/adapter/postgres"
	"github.com/oneword-app/oneword-backend/internal/domain"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repo provides daily word assignment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new assignment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getByDateSQL = `
SELECT a.id, a.date, a.difficulty_level, a.word_id, a.relaxed_constraint, a.created_at,
       w.text, w.part_of_speech
FROM daily_words a
JOIN words w ON w.id = a.word_id
WHERE a.date = $1
ORDER BY a.difficulty_level ASC, w.text ASC`

// GetByDate returns all assignments for a calendar date with their words.
func (r *Repo) GetByDate(ctx context.Context, date time.Time) ([]domain.AssignedWord, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, getByDateSQL, domain.DateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("get assignments by date: %w", err)
	}
	defer rows.Close()

	var result []domain.AssignedWord
	for rows.Next() {
		var a domain.AssignedWord
		var level, pos string
		err := rows.Scan(
			&a.ID, &a.Date, &level, &a.WordID, &a.RelaxedConstraint, &a.CreatedAt,
			&a.WordText, &pos,
		)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		a.DifficultyLevel = domain.DifficultyLevel(level)
		a.PartOfSpeech = domain.PartOfSpeech(pos)
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}

	if result == nil {
		result = []domain.AssignedWord{}
	}

	return result, nil
}

const existsForDateSQL = `SELECT EXISTS(SELECT 1 FROM daily_words WHERE date = $1)`

// ExistsForDate reports whether any assignment exists for the date.
func (r *Repo) ExistsForDate(ctx context.Context, date time.Time) (bool, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	if err := querier.QueryRow(ctx, existsForDateSQL, domain.DateOnly(date)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check assignments for date: %w", err)
	}

	return exists, nil
}

const historySQL = `
SELECT word_id, max(date)
FROM daily_words
WHERE date >= $1 AND date < $2
GROUP BY word_id`

// History returns the most recent assignment date per word within
// [since, until). The selector uses it to exclude recently shown words.
func (r *Repo) History(ctx context.Context, since, until time.Time) (map[uuid.UUID]time.Time, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, historySQL, domain.DateOnly(since), domain.DateOnly(until))
	if err != nil {
		return nil, fmt.Errorf("load assignment history: %w", err)
	}
	defer rows.Close()

	history := make(map[uuid.UUID]time.Time)
	for rows.Next() {
		var wordID uuid.UUID
		var last time.Time
		if err := rows.Scan(&wordID, &last); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		history[wordID] = last
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return history, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// CreateBatch inserts assignments. A duplicate (date, level, word) results in
// domain.ErrAlreadyExists for the whole batch.
func (r *Repo) CreateBatch(ctx context.Context, assignments []domain.DailyWordAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	now := time.Now().UTC().Truncate(time.Microsecond)

	query := psql.Insert("daily_words").
		Columns("id", "date", "difficulty_level", "word_id", "relaxed_constraint", "created_at")
	for _, a := range assignments {
		id := a.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		query = query.Values(id, domain.DateOnly(a.Date), string(a.DifficultyLevel), a.WordID, a.RelaxedConstraint, now)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert assignments: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return mapError(err, "assignment")
	}

	return nil
}

const deleteByDateSQL = `DELETE FROM daily_words WHERE date = $1`

// DeleteByDate removes all assignments for a date. Used inside a transaction
// when regenerating a day with force.
func (r *Repo) DeleteByDate(ctx context.Context, date time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteByDateSQL, domain.DateOnly(date))
	if err != nil {
		return 0, mapError(err, "assignment")
	}

	return int(tag.RowsAffected()), nil
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", entity, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", entity, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", entity, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w", entity, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s: %w", entity, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s: %w", entity, err)
}
