package synset_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oneword-app/oneword-backend/internal/adapter/postgres/synset"
	"github.com/oneword-app/oneword-backend/internal/adapter/postgres/testhelper"
	"github.com/oneword-app/oneword-backend/internal/domain"
)

func newRepo(t *testing.T) (*synset.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return synset.New(pool), pool
}

func TestRepo_UpsertBatch_AndGetByID(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	s := domain.Synset{
		ID:           domain.SynsetID(domain.PartOfSpeechNoun, 1740),
		Offset:       1740,
		PartOfSpeech: domain.PartOfSpeechNoun,
		Definition:   "that which is perceived to have its own distinct existence",
		Examples:     []string{},
		LexFileNum:   3,
	}

	if err := repo.UpsertBatch(ctx, []domain.Synset{s}); err != nil {
		t.Fatalf("UpsertBatch: %v", err)
	}

	got, err := repo.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Definition != s.Definition {
		t.Errorf("Definition mismatch: got %q", got.Definition)
	}
	if got.Offset != 1740 {
		t.Errorf("Offset mismatch: got %d", got.Offset)
	}

	// Re-import with changed definition refreshes in place.
	s.Definition = "updated gloss"
	s.Examples = []string{"an example"}
	if err := repo.UpsertBatch(ctx, []domain.Synset{s}); err != nil {
		t.Fatalf("second UpsertBatch: %v", err)
	}

	got, err = repo.GetByID(ctx, s.ID)
	if err != nil {
		t.Fatalf("GetByID after refresh: %v", err)
	}
	if got.Definition != "updated gloss" {
		t.Errorf("expected refreshed definition, got %q", got.Definition)
	}
	if len(got.Examples) != 1 || got.Examples[0] != "an example" {
		t.Errorf("expected refreshed examples, got %v", got.Examples)
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), "n99999999")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_LinkWords_AndListByWordID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	word := testhelper.SeedWord(t, pool)
	first := testhelper.SeedSynset(t, pool, domain.PartOfSpeechNoun, "first sense")
	second := testhelper.SeedSynset(t, pool, domain.PartOfSpeechNoun, "second sense")

	err := repo.LinkWords(ctx, []domain.WordSynsetLink{
		{WordID: word.ID, SynsetID: second.ID, SenseNumber: 2},
		{WordID: word.ID, SynsetID: first.ID, SenseNumber: 1},
	})
	if err != nil {
		t.Fatalf("LinkWords: %v", err)
	}

	synsets, err := repo.ListByWordID(ctx, word.ID)
	if err != nil {
		t.Fatalf("ListByWordID: %v", err)
	}
	if len(synsets) != 2 {
		t.Fatalf("expected 2 synsets, got %d", len(synsets))
	}
	if synsets[0].ID != first.ID || synsets[1].ID != second.ID {
		t.Errorf("expected sense-number order, got %s then %s", synsets[0].ID, synsets[1].ID)
	}

	// Linking again is idempotent.
	err = repo.LinkWords(ctx, []domain.WordSynsetLink{
		{WordID: word.ID, SynsetID: first.ID, SenseNumber: 1},
	})
	if err != nil {
		t.Fatalf("repeated LinkWords: %v", err)
	}
}

func TestRepo_InsertRelationships_SkipsDuplicates(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	from := testhelper.SeedSynset(t, pool, domain.PartOfSpeechNoun, "specific")
	to := testhelper.SeedSynset(t, pool, domain.PartOfSpeechNoun, "general")

	rel := domain.Relationship{FromSynsetID: from.ID, ToSynsetID: to.ID, Type: domain.RelationHypernym}

	if err := repo.InsertRelationships(ctx, []domain.Relationship{rel}); err != nil {
		t.Fatalf("InsertRelationships: %v", err)
	}
	// Same edge again must not fail.
	if err := repo.InsertRelationships(ctx, []domain.Relationship{rel}); err != nil {
		t.Fatalf("repeated InsertRelationships: %v", err)
	}

	rels, err := repo.ListRelationships(ctx, from.ID)
	if err != nil {
		t.Fatalf("ListRelationships: %v", err)
	}
	if len(rels) != 1 {
		t.Fatalf("expected 1 relationship, got %d", len(rels))
	}
	if rels[0].Type != domain.RelationHypernym {
		t.Errorf("Type mismatch: got %s", rels[0].Type)
	}
	if rels[0].ToSynsetID != to.ID {
		t.Errorf("ToSynsetID mismatch: got %s", rels[0].ToSynsetID)
	}
}

func TestRepo_ListIDs(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedSynset(t, pool, domain.PartOfSpeechVerb, "known synset")

	ids, err := repo.ListIDs(ctx)
	if err != nil {
		t.Fatalf("ListIDs: %v", err)
	}
	if _, ok := ids[seeded.ID]; !ok {
		t.Errorf("expected %s in ListIDs result", seeded.ID)
	}
}
