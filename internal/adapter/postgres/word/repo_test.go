package word_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oneword-app/oneword-backend/internal/adapter/postgres/testhelper"
	"github.com/oneword-app/oneword-backend/internal/adapter/postgres/word"
	"github.com/oneword-app/oneword-backend/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*word.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return word.New(pool), pool
}

// ---------------------------------------------------------------------------
// UpsertBatch + GetByID
// ---------------------------------------------------------------------------

func TestRepo_UpsertBatch_AndGetByID(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	text := "upsert-" + uuid.New().String()[:8]
	created, err := repo.UpsertBatch(ctx, []domain.Word{{
		Text:          text,
		PartOfSpeech:  domain.PartOfSpeechNoun,
		PolysemyCount: 2,
		Eligibility:   domain.EligibilityWord,
	}})
	if err != nil {
		t.Fatalf("UpsertBatch: unexpected error: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("UpsertBatch: expected 1 word, got %d", len(created))
	}
	if created[0].ID == uuid.Nil {
		t.Fatal("UpsertBatch: expected generated ID")
	}
	if created[0].PolysemyCount != 2 {
		t.Errorf("PolysemyCount mismatch: got %d, want 2", created[0].PolysemyCount)
	}

	got, err := repo.GetByID(ctx, created[0].ID)
	if err != nil {
		t.Fatalf("GetByID: unexpected error: %v", err)
	}
	if got.Text != text {
		t.Errorf("Text mismatch: got %q, want %q", got.Text, text)
	}
	if got.PartOfSpeech != domain.PartOfSpeechNoun {
		t.Errorf("PartOfSpeech mismatch: got %s", got.PartOfSpeech)
	}
	if got.FrequencyMeasured {
		t.Error("expected FrequencyMeasured to be false before enrichment")
	}
}

func TestRepo_UpsertBatch_ConflictKeepsIDAndRefreshesPolysemy(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	text := "conflict-" + uuid.New().String()[:8]
	seed := domain.Word{
		Text:          text,
		PartOfSpeech:  domain.PartOfSpeechVerb,
		PolysemyCount: 1,
		Eligibility:   domain.EligibilityWord,
	}

	first, err := repo.UpsertBatch(ctx, []domain.Word{seed})
	if err != nil {
		t.Fatalf("first UpsertBatch: %v", err)
	}

	seed.PolysemyCount = 5
	second, err := repo.UpsertBatch(ctx, []domain.Word{seed})
	if err != nil {
		t.Fatalf("second UpsertBatch: %v", err)
	}

	if second[0].ID != first[0].ID {
		t.Errorf("expected stable ID on conflict: got %s, want %s", second[0].ID, first[0].ID)
	}
	if second[0].PolysemyCount != 5 {
		t.Errorf("expected refreshed polysemy count 5, got %d", second[0].PolysemyCount)
	}
}

func TestRepo_UpsertBatch_ConflictKeepsEnrichment(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedWord(t, pool, testhelper.WithFrequency(12.5))

	again, err := repo.UpsertBatch(ctx, []domain.Word{{
		Text:          seeded.Text,
		PartOfSpeech:  seeded.PartOfSpeech,
		PolysemyCount: 3,
		Eligibility:   seeded.Eligibility,
	}})
	if err != nil {
		t.Fatalf("UpsertBatch: %v", err)
	}

	if again[0].FrequencySignal == nil || *again[0].FrequencySignal != 12.5 {
		t.Errorf("expected enrichment data to survive re-import, got %v", again[0].FrequencySignal)
	}
	if !again[0].FrequencyMeasured {
		t.Error("expected FrequencyMeasured to survive re-import")
	}
}

func TestRepo_GetByID_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_GetByTextAndPOS(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedWord(t, pool, testhelper.WithPOS(domain.PartOfSpeechAdverb))

	got, err := repo.GetByTextAndPOS(ctx, seeded.Text, domain.PartOfSpeechAdverb)
	if err != nil {
		t.Fatalf("GetByTextAndPOS: %v", err)
	}
	if got.ID != seeded.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, seeded.ID)
	}

	// Same text, different POS is a different word.
	_, err = repo.GetByTextAndPOS(ctx, seeded.Text, domain.PartOfSpeechNoun)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other POS, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Enrichment and scoring updates
// ---------------------------------------------------------------------------

func TestRepo_UpdateEnrichment(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedWord(t, pool)

	signal := 42.5
	syllables := 3
	if err := repo.UpdateEnrichment(ctx, seeded.ID, &signal, true, &syllables); err != nil {
		t.Fatalf("UpdateEnrichment: %v", err)
	}

	got, err := repo.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FrequencySignal == nil || *got.FrequencySignal != 42.5 {
		t.Errorf("FrequencySignal mismatch: got %v", got.FrequencySignal)
	}
	if !got.FrequencyMeasured {
		t.Error("expected FrequencyMeasured true")
	}
	if got.SyllableCount == nil || *got.SyllableCount != 3 {
		t.Errorf("SyllableCount mismatch: got %v", got.SyllableCount)
	}
}

func TestRepo_UpdateEnrichment_NilSyllablesKeepsExisting(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedWord(t, pool)

	signal := 1.0
	syllables := 2
	if err := repo.UpdateEnrichment(ctx, seeded.ID, &signal, true, &syllables); err != nil {
		t.Fatalf("first UpdateEnrichment: %v", err)
	}
	if err := repo.UpdateEnrichment(ctx, seeded.ID, &signal, true, nil); err != nil {
		t.Fatalf("second UpdateEnrichment: %v", err)
	}

	got, err := repo.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.SyllableCount == nil || *got.SyllableCount != 2 {
		t.Errorf("expected syllable count 2 to survive, got %v", got.SyllableCount)
	}
}

func TestRepo_UpdateEnrichment_NotFound(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	err := repo.UpdateEnrichment(context.Background(), uuid.New(), nil, false, nil)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_UpdateScore(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedWord(t, pool)

	if err := repo.UpdateScore(ctx, seeded.ID, 0.42, domain.DifficultyIntermediate, 2); err != nil {
		t.Fatalf("UpdateScore: %v", err)
	}

	got, err := repo.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.DifficultyScore == nil || *got.DifficultyScore != 0.42 {
		t.Errorf("DifficultyScore mismatch: got %v", got.DifficultyScore)
	}
	if got.DifficultyLevel == nil || *got.DifficultyLevel != domain.DifficultyIntermediate {
		t.Errorf("DifficultyLevel mismatch: got %v", got.DifficultyLevel)
	}
	if got.SyllableCount == nil || *got.SyllableCount != 2 {
		t.Errorf("expected syllable estimate 2, got %v", got.SyllableCount)
	}
}

func TestRepo_UpdateScore_KeepsProviderSyllables(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	seeded := testhelper.SeedWord(t, pool)

	signal := 5.0
	syllables := 4
	if err := repo.UpdateEnrichment(ctx, seeded.ID, &signal, true, &syllables); err != nil {
		t.Fatalf("UpdateEnrichment: %v", err)
	}
	if err := repo.UpdateScore(ctx, seeded.ID, 0.5, domain.DifficultyIntermediate, 2); err != nil {
		t.Fatalf("UpdateScore: %v", err)
	}

	got, err := repo.GetByID(ctx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.SyllableCount == nil || *got.SyllableCount != 4 {
		t.Errorf("expected provider syllable count 4 to win, got %v", got.SyllableCount)
	}
}

// ---------------------------------------------------------------------------
// Listing
// ---------------------------------------------------------------------------

func TestRepo_ListAfterID_OrderAndCursor(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	ids := make(map[uuid.UUID]bool, 3)
	for range 3 {
		w := testhelper.SeedWord(t, pool)
		ids[w.ID] = true
	}
	ineligible := testhelper.SeedWord(t, pool, testhelper.WithEligibility(domain.EligibilityIneligible))

	// Walk the whole table in pages of 2 and collect our seeded words.
	var seen []uuid.UUID
	after := uuid.Nil
	for {
		page, err := repo.ListAfterID(ctx, after, 2)
		if err != nil {
			t.Fatalf("ListAfterID: %v", err)
		}
		if len(page) == 0 {
			break
		}
		for _, w := range page {
			if w.ID == ineligible.ID {
				t.Fatal("ListAfterID returned an ineligible word")
			}
			if ids[w.ID] {
				seen = append(seen, w.ID)
			}
		}
		after = page[len(page)-1].ID
	}

	if len(seen) != 3 {
		t.Fatalf("expected to see all 3 seeded words, got %d", len(seen))
	}
	if !sort.SliceIsSorted(seen, func(i, j int) bool {
		return seen[i].String() < seen[j].String()
	}) {
		t.Error("expected ascending ID order")
	}
}

func TestRepo_ListUnscored(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	unscored := testhelper.SeedWord(t, pool)
	scored := testhelper.SeedWord(t, pool, testhelper.WithDifficulty(0.3, domain.DifficultyBeginner))
	phrase := testhelper.SeedWord(t, pool, testhelper.WithEligibility(domain.EligibilityPhrase))

	var found bool
	after := uuid.Nil
	for {
		page, err := repo.ListUnscored(ctx, after, 50)
		if err != nil {
			t.Fatalf("ListUnscored: %v", err)
		}
		if len(page) == 0 {
			break
		}
		for _, w := range page {
			switch w.ID {
			case scored.ID:
				t.Fatal("ListUnscored returned an already-scored word")
			case phrase.ID:
				t.Fatal("ListUnscored returned a phrase")
			case unscored.ID:
				found = true
			}
		}
		after = page[len(page)-1].ID
	}

	if !found {
		t.Error("expected unscored word in results")
	}
}

func TestRepo_ListCandidates_FiltersByLevel(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	beginner := testhelper.SeedWord(t, pool, testhelper.WithDifficulty(0.2, domain.DifficultyBeginner))
	advanced := testhelper.SeedWord(t, pool, testhelper.WithDifficulty(0.9, domain.DifficultyAdvanced))

	candidates, err := repo.ListCandidates(ctx, domain.DifficultyBeginner)
	if err != nil {
		t.Fatalf("ListCandidates: %v", err)
	}

	var sawBeginner bool
	for _, w := range candidates {
		if w.ID == advanced.ID {
			t.Fatal("ListCandidates returned a word from another level")
		}
		if w.ID == beginner.ID {
			sawBeginner = true
		}
	}
	if !sawBeginner {
		t.Error("expected beginner word in candidates")
	}
}

func TestRepo_CountByEligibility(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	testhelper.SeedWord(t, pool)
	testhelper.SeedWord(t, pool, testhelper.WithEligibility(domain.EligibilityPhrase))

	counts, err := repo.CountByEligibility(ctx)
	if err != nil {
		t.Fatalf("CountByEligibility: %v", err)
	}

	byStatus := make(map[domain.EligibilityStatus]int, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	if byStatus[domain.EligibilityWord] < 1 {
		t.Error("expected at least one ELIGIBLE_WORD")
	}
	if byStatus[domain.EligibilityPhrase] < 1 {
		t.Error("expected at least one ELIGIBLE_PHRASE")
	}
}
