package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oneword-app/oneword-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// WordOption mutates a word before it is inserted.
type WordOption func(*domain.Word)

// WithPOS sets the word's part of speech.
func WithPOS(pos domain.PartOfSpeech) WordOption {
	return func(w *domain.Word) { w.PartOfSpeech = pos }
}

// WithText sets the word's text.
func WithText(text string) WordOption {
	return func(w *domain.Word) { w.Text = text }
}

// WithEligibility sets the word's eligibility status.
func WithEligibility(e domain.EligibilityStatus) WordOption {
	return func(w *domain.Word) { w.Eligibility = e }
}

// WithDifficulty sets the word's difficulty score and level.
func WithDifficulty(score float64, level domain.DifficultyLevel) WordOption {
	return func(w *domain.Word) {
		w.DifficultyScore = &score
		w.DifficultyLevel = &level
	}
}

// WithFrequency sets a measured frequency signal on the word.
func WithFrequency(signal float64) WordOption {
	return func(w *domain.Word) {
		w.FrequencySignal = &signal
		w.FrequencyMeasured = true
	}
}

// SeedWord inserts an eligible noun with a unique text and returns it.
// Options override defaults before insert.
func SeedWord(t *testing.T, pool *pgxpool.Pool, opts ...WordOption) domain.Word {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	word := domain.Word{
		ID:            uuid.New(),
		Text:          "word" + uniqueSuffix(),
		PartOfSpeech:  domain.PartOfSpeechNoun,
		PolysemyCount: 1,
		Eligibility:   domain.EligibilityWord,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(&word)
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO words (id, text, part_of_speech, frequency_signal, frequency_measured,
		                    syllable_count, polysemy_count, difficulty_score, difficulty_level,
		                    eligibility, eligibility_reason, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		word.ID, word.Text, string(word.PartOfSpeech), word.FrequencySignal, word.FrequencyMeasured,
		word.SyllableCount, word.PolysemyCount, word.DifficultyScore, levelPtr(word.DifficultyLevel),
		string(word.Eligibility), word.EligibilityReason, word.CreatedAt, word.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWord insert: %v", err)
	}

	return word
}

func levelPtr(level *domain.DifficultyLevel) *string {
	if level == nil {
		return nil
	}
	s := string(*level)
	return &s
}

// seedOffset is bumped per SeedSynset call so generated offsets never collide.
var seedOffset = 10000000

// SeedSynset inserts a synset with a generated offset and returns it.
func SeedSynset(t *testing.T, pool *pgxpool.Pool, pos domain.PartOfSpeech, definition string) domain.Synset {
	t.Helper()
	ctx := context.Background()

	seedOffset++
	now := time.Now().UTC().Truncate(time.Microsecond)
	synset := domain.Synset{
		ID:           domain.SynsetID(pos, seedOffset),
		Offset:       seedOffset,
		PartOfSpeech: pos,
		Definition:   definition,
		Examples:     []string{},
		LexFileNum:   3,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO synsets (id, byte_offset, part_of_speech, definition, examples, lex_file_num, domain, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
		synset.ID, synset.Offset, string(synset.PartOfSpeech), synset.Definition,
		synset.Examples, synset.LexFileNum, synset.Domain, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSynset insert: %v", err)
	}

	return synset
}

// SeedWordSynset links a word to a synset with the given sense number.
func SeedWordSynset(t *testing.T, pool *pgxpool.Pool, wordID uuid.UUID, synsetID string, senseNumber int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO word_synsets (word_id, synset_id, sense_number) VALUES ($1, $2, $3)`,
		wordID, synsetID, senseNumber,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedWordSynset insert: %v", err)
	}
}

// SeedRelationship inserts a relationship between two synsets.
func SeedRelationship(t *testing.T, pool *pgxpool.Pool, fromID, toID string, relType domain.RelationshipType) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO relationships (from_synset_id, to_synset_id, type) VALUES ($1, $2, $3)`,
		fromID, toID, string(relType),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRelationship insert: %v", err)
	}
}

// SeedDailyWord inserts a daily word assignment and returns it.
func SeedDailyWord(t *testing.T, pool *pgxpool.Pool, date time.Time, level domain.DifficultyLevel, wordID uuid.UUID) domain.DailyWordAssignment {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	assignment := domain.DailyWordAssignment{
		ID:              uuid.New(),
		Date:            domain.DateOnly(date),
		DifficultyLevel: level,
		WordID:          wordID,
		CreatedAt:       now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO daily_words (id, date, difficulty_level, word_id, relaxed_constraint, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		assignment.ID, assignment.Date, string(assignment.DifficultyLevel), assignment.WordID,
		assignment.RelaxedConstraint, assignment.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDailyWord insert: %v", err)
	}

	return assignment
}
