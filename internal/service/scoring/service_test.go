package scoring

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneword-app/oneword-backend/internal/config"
	"github.com/oneword-app/oneword-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

type scoredUpdate struct {
	score     float64
	level     domain.DifficultyLevel
	syllables int
}

type mockWordRepo struct {
	words           []domain.Word
	updates         map[uuid.UUID]scoredUpdate
	UpdateScoreFunc func(ctx context.Context, id uuid.UUID, score float64, level domain.DifficultyLevel, syllableEstimate int) error
}

func newMockWordRepo(words ...domain.Word) *mockWordRepo {
	m := &mockWordRepo{updates: make(map[uuid.UUID]scoredUpdate)}
	for _, w := range words {
		if w.ID == uuid.Nil {
			w.ID = uuid.New()
		}
		m.words = append(m.words, w)
	}
	sort.Slice(m.words, func(i, j int) bool {
		return m.words[i].ID.String() < m.words[j].ID.String()
	})
	return m
}

func (m *mockWordRepo) GetByTextAndPOS(ctx context.Context, text string, pos domain.PartOfSpeech) (domain.Word, error) {
	for _, w := range m.words {
		if w.Text == text && w.PartOfSpeech == pos {
			return w, nil
		}
	}
	return domain.Word{}, domain.ErrNotFound
}

func (m *mockWordRepo) ListAfterID(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Word, error) {
	return m.page(afterID, limit, func(domain.Word) bool { return true }), nil
}

func (m *mockWordRepo) ListUnscored(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Word, error) {
	return m.page(afterID, limit, func(w domain.Word) bool {
		return w.Eligibility == domain.EligibilityWord && w.DifficultyScore == nil
	}), nil
}

func (m *mockWordRepo) page(afterID uuid.UUID, limit int, keep func(domain.Word) bool) []domain.Word {
	var result []domain.Word
	for _, w := range m.words {
		if afterID != uuid.Nil && w.ID.String() <= afterID.String() {
			continue
		}
		if !keep(w) {
			continue
		}
		// Previously written scores must not resurface in later pages.
		if _, done := m.updates[w.ID]; done {
			continue
		}
		result = append(result, w)
		if len(result) == limit {
			break
		}
	}
	return result
}

func (m *mockWordRepo) UpdateScore(ctx context.Context, id uuid.UUID, score float64, level domain.DifficultyLevel, syllableEstimate int) error {
	if m.UpdateScoreFunc != nil {
		if err := m.UpdateScoreFunc(ctx, id, score, level, syllableEstimate); err != nil {
			return err
		}
	}
	m.updates[id] = scoredUpdate{score: score, level: level, syllables: syllableEstimate}
	return nil
}

type mockSynsetRepo struct {
	ListByWordIDFunc func(ctx context.Context, wordID uuid.UUID) ([]domain.Synset, error)
}

func (m *mockSynsetRepo) ListByWordID(ctx context.Context, wordID uuid.UUID) ([]domain.Synset, error) {
	if m.ListByWordIDFunc != nil {
		return m.ListByWordIDFunc(ctx, wordID)
	}
	return nil, nil
}

func testScoringConfig() config.ScoringConfig {
	return config.ScoringConfig{
		Weights: config.WeightConfig{
			Length: 0.15, Syllables: 0.15, Frequency: 0.35,
			Polysemy: 0.15, POS: 0.1, Domain: 0.1,
		},
		BeginnerMax:          0.35,
		IntermediateMax:      0.65,
		MaxExpectedFrequency: 75,
		FrequencyExponent:    0.85,
		FrequencyFloor:       0.1,
	}
}

func newTestService(words *mockWordRepo, synsets *mockSynsetRepo) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, words, synsets, testScoringConfig())
}

func eligibleWord(text string, pos domain.PartOfSpeech) domain.Word {
	return domain.Word{
		ID:           uuid.New(),
		Text:         text,
		PartOfSpeech: pos,
		Eligibility:  domain.EligibilityWord,
	}
}

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

// ===========================================================================
// Tests
// ===========================================================================

func TestService_Run_ScoresUnscoredWords(t *testing.T) {
	t.Parallel()

	common := eligibleWord("cat", domain.PartOfSpeechNoun)
	common.FrequencySignal = floatPtr(70)
	common.FrequencyMeasured = true
	common.SyllableCount = intPtr(1)
	common.PolysemyCount = 8

	rare := eligibleWord("perspicacious", domain.PartOfSpeechAdjective)
	rare.FrequencySignal = floatPtr(0.01)
	rare.FrequencyMeasured = true
	rare.SyllableCount = intPtr(4)
	rare.PolysemyCount = 1

	words := newMockWordRepo(common, rare)
	svc := newTestService(words, &mockSynsetRepo{})

	summary, err := svc.Run(context.Background(), RunParams{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Scored)
	require.Len(t, words.updates, 2)

	commonUpdate := words.updates[common.ID]
	rareUpdate := words.updates[rare.ID]
	assert.Less(t, commonUpdate.score, rareUpdate.score,
		"a common short noun must score easier than a rare long adjective")
	assert.Equal(t, domain.DifficultyBeginner, commonUpdate.level)
	assert.Equal(t, domain.DifficultyAdvanced, rareUpdate.level)

	for _, update := range words.updates {
		assert.GreaterOrEqual(t, update.score, 0.0)
		assert.LessOrEqual(t, update.score, 1.0)
	}
}

func TestService_Run_SkipsAlreadyScoredByDefault(t *testing.T) {
	t.Parallel()

	scored := eligibleWord("done", domain.PartOfSpeechNoun)
	scored.DifficultyScore = floatPtr(0.4)
	fresh := eligibleWord("pending", domain.PartOfSpeechNoun)

	words := newMockWordRepo(scored, fresh)
	svc := newTestService(words, &mockSynsetRepo{})

	summary, err := svc.Run(context.Background(), RunParams{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Scored)
	_, rescored := words.updates[scored.ID]
	assert.False(t, rescored)
}

func TestService_Run_RecomputeRescoresEverything(t *testing.T) {
	t.Parallel()

	scored := eligibleWord("done", domain.PartOfSpeechNoun)
	scored.DifficultyScore = floatPtr(0.4)
	fresh := eligibleWord("pending", domain.PartOfSpeechNoun)

	words := newMockWordRepo(scored, fresh)
	svc := newTestService(words, &mockSynsetRepo{})

	summary, err := svc.Run(context.Background(), RunParams{Recompute: true})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Scored)
	assert.Len(t, words.updates, 2)
}

func TestService_Run_RecomputeSkipsPhrases(t *testing.T) {
	t.Parallel()

	phrase := domain.Word{
		ID:           uuid.New(),
		Text:         "give up",
		PartOfSpeech: domain.PartOfSpeechVerb,
		Eligibility:  domain.EligibilityPhrase,
	}
	word := eligibleWord("yield", domain.PartOfSpeechVerb)

	words := newMockWordRepo(phrase, word)
	svc := newTestService(words, &mockSynsetRepo{})

	summary, err := svc.Run(context.Background(), RunParams{Recompute: true})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Scored)
	assert.Equal(t, 1, summary.Skipped)
	_, scored := words.updates[phrase.ID]
	assert.False(t, scored)
}

func TestService_Run_UnmeasuredFrequencyUsesDefault(t *testing.T) {
	t.Parallel()

	// Same word shape, one with a measured mid-range frequency matching
	// the unknown default, one unmeasured: scores must agree.
	measured := eligibleWord("glimmer", domain.PartOfSpeechNoun)
	measured.FrequencySignal = floatPtr(37.5) // 37.5/75 = 0.5
	measured.FrequencyMeasured = true
	measured.SyllableCount = intPtr(2)
	measured.PolysemyCount = 2

	unmeasured := eligibleWord("glimmer", domain.PartOfSpeechNoun)
	unmeasured.SyllableCount = intPtr(2)
	unmeasured.PolysemyCount = 2

	words := newMockWordRepo(measured, unmeasured)
	svc := newTestService(words, &mockSynsetRepo{})

	_, err := svc.Run(context.Background(), RunParams{})
	require.NoError(t, err)

	assert.InDelta(t, words.updates[measured.ID].score, words.updates[unmeasured.ID].score, 1e-9)
}

func TestService_Run_SyllableFallback(t *testing.T) {
	t.Parallel()

	w := eligibleWord("banana", domain.PartOfSpeechNoun)
	// No provider syllable count: the heuristic estimate is persisted.
	words := newMockWordRepo(w)
	svc := newTestService(words, &mockSynsetRepo{})

	_, err := svc.Run(context.Background(), RunParams{})
	require.NoError(t, err)

	assert.Equal(t, 3, words.updates[w.ID].syllables)
}

func TestService_Run_SynsetsFeedDomainSpecificity(t *testing.T) {
	t.Parallel()

	technical := eligibleWord("osmosis", domain.PartOfSpeechNoun)
	plain := eligibleWord("osmosis", domain.PartOfSpeechVerb)

	chemistry := "chemistry"
	words := newMockWordRepo(technical, plain)
	synsets := &mockSynsetRepo{
		ListByWordIDFunc: func(ctx context.Context, wordID uuid.UUID) ([]domain.Synset, error) {
			if wordID == technical.ID {
				return []domain.Synset{{
					ID:         "n01234567",
					Definition: "a process in chemistry",
					Domain:     &chemistry,
				}}, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(words, synsets)

	_, err := svc.Run(context.Background(), RunParams{})
	require.NoError(t, err)

	// Identical words except POS and domain; verb POS alone outweighs the
	// noun, so check domain effect via the sub-score ordering instead:
	// rescore both through ScoreOne to inspect sub-scores.
	res, err := svc.ScoreOne(context.Background(), "osmosis", domain.PartOfSpeechNoun)
	require.NoError(t, err)
	assert.Greater(t, res.SubScores.Domain, 0.5)
}

func TestService_ScoreOne(t *testing.T) {
	t.Parallel()

	w := eligibleWord("serendipity", domain.PartOfSpeechNoun)
	w.FrequencySignal = floatPtr(0.05)
	w.FrequencyMeasured = true
	w.SyllableCount = intPtr(5)
	w.PolysemyCount = 1

	words := newMockWordRepo(w)
	svc := newTestService(words, &mockSynsetRepo{})

	result, err := svc.ScoreOne(context.Background(), "Serendipity", domain.PartOfSpeechNoun)
	require.NoError(t, err)

	assert.Equal(t, domain.DifficultyAdvanced, result.Level)
	assert.Contains(t, words.updates, w.ID)
}

func TestService_ScoreOne_NotFound(t *testing.T) {
	t.Parallel()

	words := newMockWordRepo()
	svc := newTestService(words, &mockSynsetRepo{})

	_, err := svc.ScoreOne(context.Background(), "missing", domain.PartOfSpeechNoun)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_ScoreOne_RejectsPhrase(t *testing.T) {
	t.Parallel()

	phrase := domain.Word{
		ID:           uuid.New(),
		Text:         "give up",
		PartOfSpeech: domain.PartOfSpeechVerb,
		Eligibility:  domain.EligibilityPhrase,
	}
	words := newMockWordRepo(phrase)
	svc := newTestService(words, &mockSynsetRepo{})

	_, err := svc.ScoreOne(context.Background(), "give up", domain.PartOfSpeechVerb)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestService_Run_SkipsRejectedWriteAndContinues(t *testing.T) {
	t.Parallel()

	words := newMockWordRepo(
		eligibleWord("cat", domain.PartOfSpeechNoun),
		eligibleWord("dog", domain.PartOfSpeechNoun),
		eligibleWord("fox", domain.PartOfSpeechNoun),
	)
	rejectID := words.words[1].ID
	words.UpdateScoreFunc = func(ctx context.Context, id uuid.UUID, score float64, level domain.DifficultyLevel, syllableEstimate int) error {
		if id == rejectID {
			return domain.ErrValidation
		}
		return nil
	}
	svc := newTestService(words, &mockSynsetRepo{})

	summary, err := svc.Run(context.Background(), RunParams{})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Scored)
	assert.Equal(t, 1, summary.Failed)
	_, updated := words.updates[rejectID]
	assert.False(t, updated, "rejected word must not be recorded as scored")
}

func TestService_Run_AbortsAfterConsecutiveStoreFailures(t *testing.T) {
	t.Parallel()

	var pool []domain.Word
	for _, text := range []string{
		"ant", "bee", "cow", "doe", "eel", "fly",
		"gnu", "hen", "ibex", "jay", "kite", "lark",
	} {
		pool = append(pool, eligibleWord(text, domain.PartOfSpeechNoun))
	}
	words := newMockWordRepo(pool...)
	wantErr := errors.New("connection reset")
	words.UpdateScoreFunc = func(ctx context.Context, id uuid.UUID, score float64, level domain.DifficultyLevel, syllableEstimate int) error {
		return wantErr
	}
	svc := newTestService(words, &mockSynsetRepo{})

	summary, err := svc.Run(context.Background(), RunParams{})
	require.ErrorIs(t, err, ErrTooManyFailures)

	assert.Equal(t, 0, summary.Scored)
	assert.Equal(t, maxConsecutiveFailures, summary.Failed)
}
