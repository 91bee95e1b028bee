// Package scoring walks enriched words, computes their composite
// difficulty score, and persists score + tier. The math lives in the
// difficulty package; this service only assembles features and writes
// results back.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/oneword-app/oneword-backend/internal/config"
	"github.com/oneword-app/oneword-backend/internal/difficulty"
	"github.com/oneword-app/oneword-backend/internal/domain"
)

const batchSize = 200

// maxConsecutiveFailures aborts a run when the store rejects this many
// writes in a row, which points at connectivity rather than bad rows.
const maxConsecutiveFailures = 10

// ErrTooManyFailures aborts a run after too many consecutive store failures.
var ErrTooManyFailures = errors.New("too many consecutive failures")

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	GetByTextAndPOS(ctx context.Context, text string, pos domain.PartOfSpeech) (domain.Word, error)
	ListAfterID(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Word, error)
	ListUnscored(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Word, error)
	UpdateScore(ctx context.Context, id uuid.UUID, score float64, level domain.DifficultyLevel, syllableEstimate int) error
}

type synsetRepo interface {
	ListByWordID(ctx context.Context, wordID uuid.UUID) ([]domain.Synset, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements difficulty scoring runs.
type Service struct {
	log     *slog.Logger
	words   wordRepo
	synsets synsetRepo
	scorer  *difficulty.Scorer
	cfg     config.ScoringConfig
}

// NewService creates a new Scoring service.
func NewService(
	logger *slog.Logger,
	words wordRepo,
	synsets synsetRepo,
	cfg config.ScoringConfig,
) *Service {
	return &Service{
		log:     logger.With("service", "scoring"),
		words:   words,
		synsets: synsets,
		scorer:  difficulty.NewScorer(cfg),
		cfg:     cfg,
	}
}

// RunParams tunes a single scoring run.
type RunParams struct {
	// Recompute rescores every eligible word instead of only the ones
	// without a score.
	Recompute bool
}

// RunSummary reports the outcome of one scoring run.
type RunSummary struct {
	Scored  int
	Skipped int // entries not scored (phrases when recomputing)
	Failed  int // entries whose score could not be read or written
	Levels  map[domain.DifficultyLevel]int
}

// Run scores eligible single words in ascending ID order. By default only
// words without a score are processed; Recompute walks the full eligible
// set. Phrases keep their import-time record but are never scored. A word
// whose synsets cannot be read or whose score write is rejected is counted
// as failed and the run moves on; maxConsecutiveFailures failures in a row
// abort with ErrTooManyFailures.
func (s *Service) Run(ctx context.Context, params RunParams) (*RunSummary, error) {
	summary := &RunSummary{Levels: make(map[domain.DifficultyLevel]int)}

	list := s.words.ListUnscored
	if params.Recompute {
		list = s.words.ListAfterID
	}

	var cursor uuid.UUID
	consecutiveFailures := 0
	for {
		batch, err := list(ctx, cursor, batchSize)
		if err != nil {
			return summary, fmt.Errorf("list words: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for _, w := range batch {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			cursor = w.ID

			if w.Eligibility != domain.EligibilityWord {
				summary.Skipped++
				continue
			}

			result, err := s.scoreWord(ctx, w)
			if err != nil {
				summary.Failed++
				consecutiveFailures++
				s.log.WarnContext(ctx, "scoring word failed",
					slog.String("word", w.Text),
					slog.Int("consecutive", consecutiveFailures),
					slog.String("error", err.Error()),
				)
				if consecutiveFailures >= maxConsecutiveFailures {
					return summary, fmt.Errorf("%w after %d words", ErrTooManyFailures, summary.Scored)
				}
				continue
			}
			consecutiveFailures = 0
			summary.Scored++
			summary.Levels[result.Level]++
		}
	}

	s.log.InfoContext(ctx, "scoring run finished",
		slog.Int("scored", summary.Scored),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
	)

	return summary, nil
}

// ScoreOne rescores a single word addressed by its natural key. Used by
// the score binary's --word flag.
func (s *Service) ScoreOne(ctx context.Context, text string, pos domain.PartOfSpeech) (difficulty.Result, error) {
	w, err := s.words.GetByTextAndPOS(ctx, domain.NormalizeText(text), pos)
	if err != nil {
		return difficulty.Result{}, fmt.Errorf("get word %q: %w", text, err)
	}
	if w.Eligibility != domain.EligibilityWord {
		return difficulty.Result{}, fmt.Errorf("word %q: %w: only single words are scored", text, domain.ErrValidation)
	}
	return s.scoreWord(ctx, w)
}

// scoreWord assembles the feature vector, scores it, and persists the
// result together with the syllable count actually used.
func (s *Service) scoreWord(ctx context.Context, w domain.Word) (difficulty.Result, error) {
	synsets, err := s.synsets.ListByWordID(ctx, w.ID)
	if err != nil {
		return difficulty.Result{}, fmt.Errorf("list synsets for %s: %w", w.Text, err)
	}

	syllables := s.syllableCount(w)

	result := s.scorer.Score(difficulty.Features{
		Text:          w.Text,
		PartOfSpeech:  w.PartOfSpeech,
		Frequency:     s.frequencySignal(w),
		SyllableCount: syllables,
		PolysemyCount: w.PolysemyCount,
		Synsets:       synsets,
	})

	if err := s.words.UpdateScore(ctx, w.ID, result.Score, result.Level, syllables); err != nil {
		return difficulty.Result{}, fmt.Errorf("update score for %s: %w", w.Text, err)
	}

	s.log.DebugContext(ctx, "word scored",
		slog.String("word", w.Text),
		slog.Float64("score", result.Score),
		slog.String("level", string(result.Level)),
	)

	return result, nil
}

// frequencySignal converts the stored raw signal to a normalized one.
// Words without a measured value get the flagged mid-range default.
func (s *Service) frequencySignal(w domain.Word) difficulty.Signal {
	if !w.FrequencyMeasured || w.FrequencySignal == nil {
		return difficulty.UnknownFrequency()
	}
	return difficulty.NormalizeFrequency(*w.FrequencySignal, difficulty.NormalizerConfig{
		MaxExpectedFrequency: s.cfg.MaxExpectedFrequency,
		Exponent:             s.cfg.FrequencyExponent,
		Floor:                s.cfg.FrequencyFloor,
	})
}

// syllableCount prefers the provider-enriched count and falls back to
// the heuristic estimate.
func (s *Service) syllableCount(w domain.Word) int {
	if w.SyllableCount != nil && *w.SyllableCount > 0 {
		return *w.SyllableCount
	}
	return difficulty.EstimateSyllables(w.Text)
}
