// Package word implements the Word repository using PostgreSQL.
// Batch upserts and dynamic filters are built with squirrel; fixed-shape
// queries use raw SQL.
package word

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

// psql builds queries with $N placeholders for pgx.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// EligibilityCount holds an eligibility status and its count.
type EligibilityCount struct {
	Status domain.EligibilityStatus
	Count  int
}

// Repo provides word persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new word repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const wordColumns = `id, text, part_of_speech, frequency_signal, frequency_measured,
       syllable_count, polysemy_count, difficulty_score, difficulty_level,
       eligibility, eligibility_reason, created_at, updated_at`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getByIDSQL = `
SELECT ` + wordColumns + `
FROM words
WHERE id = $1`

const getByTextSQL = `
SELECT ` + wordColumns + `
FROM words
WHERE text = $1 AND part_of_speech = $2`

// GetByID returns a word by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, id)
	word, err := scanWord(row)
	if err != nil {
		return domain.Word{}, mapError(err, "word", id)
	}

	return word, nil
}

// GetByTextAndPOS returns a word by its natural key.
func (r *Repo) GetByTextAndPOS(ctx context.Context, text string, pos domain.PartOfSpeech) (domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByTextSQL, text, string(pos))
	word, err := scanWord(row)
	if err != nil {
		return domain.Word{}, mapError(err, "word", uuid.Nil)
	}

	return word, nil
}

// ListAfterID returns words ordered by ascending ID, starting strictly after
// afterID. Pass uuid.Nil to start from the beginning. Ineligible words are
// skipped. Used by the enrichment loop to walk the table in stable order.
func (r *Repo) ListAfterID(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Word, error) {
	query := psql.Select(wordColumns).
		From("words").
		Where(squirrel.NotEq{"eligibility": string(domain.EligibilityIneligible)}).
		OrderBy("id ASC").
		Limit(uint64(limit))
	if afterID != uuid.Nil {
		query = query.Where(squirrel.Gt{"id": afterID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list after id: %w", err)
	}

	return r.list(ctx, sql, args...)
}

// ListUnscored returns eligible single words that have no difficulty score yet,
// ordered by ascending ID.
func (r *Repo) ListUnscored(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Word, error) {
	query := psql.Select(wordColumns).
		From("words").
		Where(squirrel.Eq{"eligibility": string(domain.EligibilityWord)}).
		Where("difficulty_score IS NULL").
		OrderBy("id ASC").
		Limit(uint64(limit))
	if afterID != uuid.Nil {
		query = query.Where(squirrel.Gt{"id": afterID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list unscored: %w", err)
	}

	return r.list(ctx, sql, args...)
}

// ListCandidates returns scored, eligible words at the given difficulty level,
// ordered by text for deterministic downstream selection.
func (r *Repo) ListCandidates(ctx context.Context, level domain.DifficultyLevel) ([]domain.Word, error) {
	query := psql.Select(wordColumns).
		From("words").
		Where(squirrel.Eq{
			"eligibility":      string(domain.EligibilityWord),
			"difficulty_level": string(level),
		}).
		OrderBy("text ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list candidates: %w", err)
	}

	return r.list(ctx, sql, args...)
}

const countByEligibilitySQL = `
SELECT eligibility, count(*)
FROM words
GROUP BY eligibility`

// CountByEligibility returns word counts grouped by eligibility status.
// Only non-zero groups are returned.
func (r *Repo) CountByEligibility(ctx context.Context) ([]EligibilityCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countByEligibilitySQL)
	if err != nil {
		return nil, fmt.Errorf("count words by eligibility: %w", err)
	}
	defer rows.Close()

	var counts []EligibilityCount
	for rows.Next() {
		var ec EligibilityCount
		var status string
		if err := rows.Scan(&status, &ec.Count); err != nil {
			return nil, fmt.Errorf("scan eligibility count: %w", err)
		}
		ec.Status = domain.EligibilityStatus(status)
		counts = append(counts, ec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate eligibility counts: %w", err)
	}

	if counts == nil {
		counts = []EligibilityCount{}
	}

	return counts, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// UpsertBatch inserts words in a single statement. On conflict with the
// (text, part_of_speech) key the polysemy count and updated_at are refreshed,
// leaving enrichment and scoring fields intact. Returns the persisted rows
// including IDs of pre-existing words.
func (r *Repo) UpsertBatch(ctx context.Context, words []domain.Word) ([]domain.Word, error) {
	if len(words) == 0 {
		return []domain.Word{}, nil
	}

	now := time.Now().UTC().Truncate(time.Microsecond)

	query := psql.Insert("words").
		Columns("id", "text", "part_of_speech", "polysemy_count", "eligibility", "eligibility_reason", "created_at", "updated_at")
	for _, w := range words {
		id := w.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		query = query.Values(id, w.Text, string(w.PartOfSpeech), w.PolysemyCount, string(w.Eligibility), w.EligibilityReason, now, now)
	}
	query = query.Suffix(`ON CONFLICT (text, part_of_speech) DO UPDATE
		SET polysemy_count = EXCLUDED.polysemy_count,
		    updated_at = EXCLUDED.updated_at
		RETURNING ` + wordColumns)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert words: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, mapError(err, "word", uuid.Nil)
	}
	defer rows.Close()

	result, err := scanWords(rows)
	if err != nil {
		return nil, fmt.Errorf("upsert words: %w", err)
	}

	return result, nil
}

const updateEnrichmentSQL = `
UPDATE words
SET frequency_signal = $2,
    frequency_measured = $3,
    syllable_count = COALESCE($4, syllable_count),
    updated_at = $5
WHERE id = $1`

// UpdateEnrichment stores the frequency signal and optional syllable count
// fetched from the external provider. A nil syllables keeps any existing value.
func (r *Repo) UpdateEnrichment(ctx context.Context, id uuid.UUID, signal *float64, measured bool, syllables *int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	tag, err := querier.Exec(ctx, updateEnrichmentSQL, id, signal, measured, syllables, now)
	if err != nil {
		return mapError(err, "word", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

const updateScoreSQL = `
UPDATE words
SET difficulty_score = $2,
    difficulty_level = $3,
    syllable_count = COALESCE(syllable_count, $4),
    updated_at = $5
WHERE id = $1`

// UpdateScore stores the computed difficulty score and tier. The syllable
// estimate is only written when no provider-supplied count exists.
func (r *Repo) UpdateScore(ctx context.Context, id uuid.UUID, score float64, level domain.DifficultyLevel, syllableEstimate int) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	now := time.Now().UTC().Truncate(time.Microsecond)
	tag, err := querier.Exec(ctx, updateScoreSQL, id, score, string(level), syllableEstimate, now)
	if err != nil {
		return mapError(err, "word", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("word %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Scan helpers
// ---------------------------------------------------------------------------

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(row rowScanner) (domain.Word, error) {
	var w domain.Word
	var pos, eligibility string
	var level *string

	err := row.Scan(
		&w.ID, &w.Text, &pos, &w.FrequencySignal, &w.FrequencyMeasured,
		&w.SyllableCount, &w.PolysemyCount, &w.DifficultyScore, &level,
		&eligibility, &w.EligibilityReason, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return domain.Word{}, err
	}

	w.PartOfSpeech = domain.PartOfSpeech(pos)
	w.Eligibility = domain.EligibilityStatus(eligibility)
	if level != nil {
		l := domain.DifficultyLevel(*level)
		w.DifficultyLevel = &l
	}

	return w, nil
}

func scanWords(rows pgx.Rows) ([]domain.Word, error) {
	var words []domain.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate words: %w", err)
	}

	if words == nil {
		words = []domain.Word{}
	}

	return words, nil
}

func (r *Repo) list(ctx context.Context, sql string, args ...any) ([]domain.Word, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	return scanWords(rows)
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %s: %w", entity, id, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrAlreadyExists)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
		case "23514": // check_violation
			return fmt.Errorf("%s %s: %w", entity, id, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %s: %w", entity, id, err)
}
