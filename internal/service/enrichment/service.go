// Package enrichment walks the word table in ascending ID order and attaches
// frequency signals from the external provider. Runs are resumable: a
// checkpoint row records the last fully processed word.
package enrichment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/oneword-app/oneword-backend/internal/config"
	"github.com/oneword-app/oneword-backend/internal/domain"
	"github.com/oneword-app/oneword-backend/internal/provider"
)

// Job is the checkpoint key for the frequency enrichment run.
const Job = "frequency-enrichment"

// ErrTooManyFailures aborts a run after MaxConsecutiveFailures provider or
// store errors in a row, which usually means the API or the database is
// unreachable rather than single words being bad.
var ErrTooManyFailures = errors.New("too many consecutive failures")

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	ListAfterID(ctx context.Context, afterID uuid.UUID, limit int) ([]domain.Word, error)
	UpdateEnrichment(ctx context.Context, id uuid.UUID, signal *float64, measured bool, syllables *int) error
}

type checkpointRepo interface {
	Get(ctx context.Context, job string) (uuid.UUID, bool, error)
	Set(ctx context.Context, job string, lastWordID uuid.UUID) error
	Clear(ctx context.Context, job string) error
}

type frequencyProvider interface {
	FetchFrequency(ctx context.Context, word string) (*provider.FrequencyResult, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements the enrichment run.
type Service struct {
	log         *slog.Logger
	words       wordRepo
	checkpoints checkpointRepo
	provider    frequencyProvider
	clock       clockwork.Clock
	cfg         config.EnrichmentConfig
}

// NewService creates a new Enrichment service.
func NewService(
	logger *slog.Logger,
	words wordRepo,
	checkpoints checkpointRepo,
	freq frequencyProvider,
	clock clockwork.Clock,
	cfg config.EnrichmentConfig,
) *Service {
	return &Service{
		log:         logger.With("service", "enrichment"),
		words:       words,
		checkpoints: checkpoints,
		provider:    freq,
		clock:       clock,
		cfg:         cfg,
	}
}

// RunParams tunes a single enrichment run.
type RunParams struct {
	// Restart discards the stored checkpoint and starts from the first word.
	Restart bool
	// Limit stops the run after this many words (0 means no limit). The
	// checkpoint is saved so the next run picks up where this one stopped.
	Limit int
}

// RunSummary reports the outcome of one enrichment run.
type RunSummary struct {
	Processed     int // words handled, including unknown ones
	Measured      int // words with a real frequency measurement
	Unknown       int // words the provider has no data for
	Failed        int // words skipped due to provider errors
	PersistFailed int // words skipped because the store rejected the write
	Resumed       bool
	Duration      time.Duration
}

// Run processes words in ascending ID order starting after the checkpoint.
// Provider and store failures skip the word and are counted in the summary;
// MaxConsecutiveFailures failures in a row on either side abort the run with
// ErrTooManyFailures. The checkpoint advances after every batch, so an
// aborted run resumes where it left off.
func (s *Service) Run(ctx context.Context, params RunParams) (*RunSummary, error) {
	started := s.clock.Now()
	summary := &RunSummary{}

	if params.Restart {
		if err := s.checkpoints.Clear(ctx, Job); err != nil {
			return summary, fmt.Errorf("clear checkpoint: %w", err)
		}
	}

	cursor, resumed, err := s.checkpoints.Get(ctx, Job)
	if err != nil {
		return summary, fmt.Errorf("load checkpoint: %w", err)
	}
	summary.Resumed = resumed

	s.log.InfoContext(ctx, "enrichment run started",
		slog.Bool("resumed", resumed),
		slog.String("cursor", cursor.String()),
	)

	consecutiveFailures := 0
	consecutiveStoreFailures := 0
	for {
		batch, err := s.words.ListAfterID(ctx, cursor, s.cfg.BatchSize)
		if err != nil {
			return summary, fmt.Errorf("list words: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for _, w := range batch {
			if params.Limit > 0 && summary.Processed+summary.Failed+summary.PersistFailed >= params.Limit {
				s.saveCheckpoint(ctx, cursor)
				summary.Duration = s.clock.Since(started)
				s.log.InfoContext(ctx, "enrichment limit reached", slog.Int("limit", params.Limit))
				return summary, nil
			}
			if err := ctx.Err(); err != nil {
				s.saveCheckpoint(ctx, cursor)
				summary.Duration = s.clock.Since(started)
				return summary, err
			}

			result, err := s.provider.FetchFrequency(ctx, w.Text)
			if err != nil {
				summary.Failed++
				consecutiveFailures++
				s.log.WarnContext(ctx, "enrichment fetch failed",
					slog.String("word", w.Text),
					slog.Int("consecutive", consecutiveFailures),
					slog.String("error", err.Error()),
				)
				if consecutiveFailures >= s.cfg.MaxConsecutiveFailures {
					s.saveCheckpoint(ctx, cursor)
					summary.Duration = s.clock.Since(started)
					return summary, fmt.Errorf("%w after %d words", ErrTooManyFailures, summary.Processed)
				}
				cursor = w.ID
				continue
			}
			consecutiveFailures = 0

			if err := s.applyResult(ctx, w, result); err != nil {
				summary.PersistFailed++
				consecutiveStoreFailures++
				s.log.WarnContext(ctx, "enrichment store rejected word",
					slog.String("word", w.Text),
					slog.Int("consecutive", consecutiveStoreFailures),
					slog.String("error", err.Error()),
				)
				if consecutiveStoreFailures >= s.cfg.MaxConsecutiveFailures {
					s.saveCheckpoint(ctx, cursor)
					summary.Duration = s.clock.Since(started)
					return summary, fmt.Errorf("%w after %d words", ErrTooManyFailures, summary.Processed)
				}
				cursor = w.ID
				continue
			}
			consecutiveStoreFailures = 0

			summary.Processed++
			if result != nil && result.Frequency != nil {
				summary.Measured++
			} else {
				summary.Unknown++
			}
			cursor = w.ID
		}

		if err := s.checkpoints.Set(ctx, Job, cursor); err != nil {
			return summary, fmt.Errorf("save checkpoint: %w", err)
		}
	}

	summary.Duration = s.clock.Since(started)
	s.log.InfoContext(ctx, "enrichment run finished",
		slog.Int("processed", summary.Processed),
		slog.Int("measured", summary.Measured),
		slog.Int("unknown", summary.Unknown),
		slog.Int("failed", summary.Failed),
		slog.Int("persist_failed", summary.PersistFailed),
		slog.Duration("duration", summary.Duration),
	)

	return summary, nil
}

// applyResult writes the provider outcome to the word. A nil result means the
// provider does not know the word: the signal stays empty and measured false,
// which the scorer later treats as mid-range frequency.
func (s *Service) applyResult(ctx context.Context, w domain.Word, result *provider.FrequencyResult) error {
	var (
		signal    *float64
		measured  bool
		syllables *int
	)
	if result != nil {
		syllables = result.Syllables
		if result.Frequency != nil {
			signal = result.Frequency
			measured = true
		}
	}

	if err := s.words.UpdateEnrichment(ctx, w.ID, signal, measured, syllables); err != nil {
		return fmt.Errorf("update word %s: %w", w.ID, err)
	}
	return nil
}

// saveCheckpoint persists the cursor on abnormal exits. Best effort: the
// original error matters more than a checkpoint write failure.
func (s *Service) saveCheckpoint(ctx context.Context, cursor uuid.UUID) {
	if cursor == uuid.Nil {
		return
	}
	if err := s.checkpoints.Set(context.WithoutCancel(ctx), Job, cursor); err != nil {
		s.log.WarnContext(ctx, "checkpoint save failed", slog.String("error", err.Error()))
	}
}
