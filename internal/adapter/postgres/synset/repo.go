// Package synset implements persistence for synsets, word-synset links and
// synset relationships.
package synset

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

// Repo provides synset persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new synset repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Synsets
// ---------------------------------------------------------------------------

// UpsertBatch inserts synsets in a single statement. Re-importing the same
// data file refreshes definitions and examples in place.
func (r *Repo) UpsertBatch(ctx context.Context, synsets []domain.Synset) error {
	if len(synsets) == 0 {
		return nil
	}

	now := time.Now().UTC().Truncate(time.Microsecond)

	query := psql.Insert("synsets").
		Columns("id", "byte_offset", "part_of_speech", "definition", "examples", "lex_file_num", "domain", "created_at", "updated_at")
	for _, s := range synsets {
		examples := s.Examples
		if examples == nil {
			examples = []string{}
		}
		query = query.Values(s.ID, s.Offset, string(s.PartOfSpeech), s.Definition, examples, s.LexFileNum, s.Domain, now, now)
	}
	query = query.Suffix(`ON CONFLICT (id) DO UPDATE
		SET definition = EXCLUDED.definition,
		    examples = EXCLUDED.examples,
		    lex_file_num = EXCLUDED.lex_file_num,
		    domain = EXCLUDED.domain,
		    updated_at = EXCLUDED.updated_at`)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert synsets: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return mapError(err, "synset")
	}

	return nil
}

const getByIDSQL = `
SELECT id, byte_offset, part_of_speech, definition, examples, lex_file_num, domain
FROM synsets
WHERE id = $1`

// GetByID returns a synset by its canonical identifier.
func (r *Repo) GetByID(ctx context.Context, id string) (domain.Synset, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.Synset
	var pos string
	err := querier.QueryRow(ctx, getByIDSQL, id).Scan(
		&s.ID, &s.Offset, &pos, &s.Definition, &s.Examples, &s.LexFileNum, &s.Domain,
	)
	if err != nil {
		return domain.Synset{}, mapError(err, "synset")
	}
	s.PartOfSpeech = domain.PartOfSpeech(pos)

	return s, nil
}

const listByWordIDSQL = `
SELECT s.id, s.byte_offset, s.part_of_speech, s.definition, s.examples, s.lex_file_num, s.domain
FROM synsets s
JOIN word_synsets ws ON ws.synset_id = s.id
WHERE ws.word_id = $1
ORDER BY ws.sense_number ASC`

// ListByWordID returns all synsets linked to the word, ordered by sense number.
func (r *Repo) ListByWordID(ctx context.Context, wordID uuid.UUID) ([]domain.Synset, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByWordIDSQL, wordID)
	if err != nil {
		return nil, fmt.Errorf("list synsets by word: %w", err)
	}
	defer rows.Close()

	var synsets []domain.Synset
	for rows.Next() {
		var s domain.Synset
		var pos string
		if err := rows.Scan(&s.ID, &s.Offset, &pos, &s.Definition, &s.Examples, &s.LexFileNum, &s.Domain); err != nil {
			return nil, fmt.Errorf("scan synset: %w", err)
		}
		s.PartOfSpeech = domain.PartOfSpeech(pos)
		synsets = append(synsets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate synsets: %w", err)
	}

	if synsets == nil {
		synsets = []domain.Synset{}
	}

	return synsets, nil
}

const listIDsSQL = `SELECT id FROM synsets`

// ListIDs returns the identifiers of all stored synsets. The importer uses the
// result to drop pointers into synsets that were never parsed.
func (r *Repo) ListIDs(ctx context.Context) (map[string]struct{}, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listIDsSQL)
	if err != nil {
		return nil, fmt.Errorf("list synset ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan synset id: %w", err)
		}
		ids[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate synset ids: %w", err)
	}

	return ids, nil
}

// ---------------------------------------------------------------------------
// Word-synset links
// ---------------------------------------------------------------------------

// LinkWords inserts word-synset links in a single statement. Existing links
// get their sense number refreshed.
func (r *Repo) LinkWords(ctx context.Context, links []domain.WordSynsetLink) error {
	if len(links) == 0 {
		return nil
	}

	query := psql.Insert("word_synsets").
		Columns("word_id", "synset_id", "sense_number")
	for _, l := range links {
		query = query.Values(l.WordID, l.SynsetID, l.SenseNumber)
	}
	query = query.Suffix(`ON CONFLICT (word_id, synset_id) DO UPDATE
		SET sense_number = EXCLUDED.sense_number`)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build link words: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return mapError(err, "word_synset")
	}

	return nil
}

// ---------------------------------------------------------------------------
// Relationships
// ---------------------------------------------------------------------------

// InsertRelationships stores relationships, silently skipping duplicates.
func (r *Repo) InsertRelationships(ctx context.Context, rels []domain.Relationship) error {
	if len(rels) == 0 {
		return nil
	}

	query := psql.Insert("relationships").
		Columns("from_synset_id", "to_synset_id", "type")
	for _, rel := range rels {
		query = query.Values(rel.FromSynsetID, rel.ToSynsetID, string(rel.Type))
	}
	query = query.Suffix(`ON CONFLICT (from_synset_id, to_synset_id, type) DO NOTHING`)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert relationships: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return mapError(err, "relationship")
	}

	return nil
}

const listRelationshipsSQL = `
SELECT from_synset_id, to_synset_id, type
FROM relationships
WHERE from_synset_id = $1
ORDER BY type ASC, to_synset_id ASC`

// ListRelationships returns all outgoing relationships of a synset.
func (r *Repo) ListRelationships(ctx context.Context, fromSynsetID string) ([]domain.Relationship, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listRelationshipsSQL, fromSynsetID)
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	defer rows.Close()

	var rels []domain.Relationship
	for rows.Next() {
		var rel domain.Relationship
		var relType string
		if err := rows.Scan(&rel.FromSynsetID, &rel.ToSynsetID, &relType); err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		rel.Type = domain.RelationshipType(relType)
		rels = append(rels, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate relationships: %w", err)
	}

	if rels == nil {
		rels = []domain.Relationship{}
	}

	return rels, nil
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
