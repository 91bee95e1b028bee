// Package catalog implements the dictionary import pipeline: WordNet data
// and index files in, words, synsets and relationships in PostgreSQL out.
package catalog

import (
	"context"
	"log/slog"

	"github.com/oneword-app/oneword-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	UpsertBatch(ctx context.Context, words []domain.Word) ([]domain.Word, error)
}

type synsetRepo interface {
	UpsertBatch(ctx context.Context, synsets []domain.Synset) error
	LinkWords(ctx context.Context, links []domain.WordSynsetLink) error
	InsertRelationships(ctx context.Context, rels []domain.Relationship) error
	ListIDs(ctx context.Context) (map[string]struct{}, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// batchSize bounds multi-row INSERT statements during import.
const batchSize = 500

// Service implements the catalog import business logic.
type Service struct {
	log     *slog.Logger
	words   wordRepo
	synsets synsetRepo
	tx      txManager
}

// NewService creates a new Catalog service.
func NewService(logger *slog.Logger, words wordRepo, synsets synsetRepo, tx txManager) *Service {
	return &Service{
		log:     logger.With("service", "catalog"),
		words:   words,
		synsets: synsets,
		tx:      tx,
	}
}
