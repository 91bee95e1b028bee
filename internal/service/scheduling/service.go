// Package scheduling assigns daily words. It loads candidate pools and
// assignment history, delegates the actual picking to the selection
// package, and persists the result.
package scheduling

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/oneword-app/oneword-backend/internal/config"
	"github.com/oneword-app/oneword-backend/internal/domain"
	"github.com/oneword-app/oneword-backend/internal/selection"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type wordRepo interface {
	ListCandidates(ctx context.Context, level domain.DifficultyLevel) ([]domain.Word, error)
}

type assignmentRepo interface {
	GetByDate(ctx context.Context, date time.Time) ([]domain.AssignedWord, error)
	ExistsForDate(ctx context.Context, date time.Time) (bool, error)
	History(ctx context.Context, since, until time.Time) (map[uuid.UUID]time.Time, error)
	CreateBatch(ctx context.Context, assignments []domain.DailyWordAssignment) error
	DeleteByDate(ctx context.Context, date time.Time) (int, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service implements daily word scheduling.
type Service struct {
	log         *slog.Logger
	words       wordRepo
	assignments assignmentRepo
	tx          txManager
	selector    *selection.Selector
	clock       clockwork.Clock
	cfg         config.SelectionConfig
}

// NewService creates a new Scheduling service.
func NewService(
	logger *slog.Logger,
	words wordRepo,
	assignments assignmentRepo,
	tx txManager,
	clock clockwork.Clock,
	cfg config.SelectionConfig,
) *Service {
	return &Service{
		log:         logger.With("service", "scheduling"),
		words:       words,
		assignments: assignments,
		tx:          tx,
		selector: selection.New(selection.Params{
			PerLevelCounts: cfg.PerLevelCounts,
			LookbackDays:   cfg.LookbackDays,
			POSTargets: map[domain.PartOfSpeech]float64{
				domain.PartOfSpeechNoun:      cfg.POSTargets.Noun,
				domain.PartOfSpeechVerb:      cfg.POSTargets.Verb,
				domain.PartOfSpeechAdjective: cfg.POSTargets.Adjective,
				domain.PartOfSpeechAdverb:    cfg.POSTargets.Adverb,
			},
		}),
		clock: clock,
		cfg:   cfg,
	}
}

// SelectParams tunes a selection run.
type SelectParams struct {
	// From and To bound the date range, inclusive. Zero From defaults to
	// today; zero To defaults to From.
	From time.Time
	To   time.Time
	// Force regenerates dates that already have assignments, replacing
	// them atomically.
	Force bool
}

// DaySummary reports the outcome for one date.
type DaySummary struct {
	Date     time.Time
	Picked   int
	Relaxed  int // picks made from the full pool after exclusion emptied it
	Replaced int // prior assignments removed by force
	Skipped  bool
}

// RunSummary reports the outcome of a selection run.
type RunSummary struct {
	Days []DaySummary
}

// Run selects daily words for each date in the range, in order. A date
// that already has assignments is skipped unless Force is set. Words
// picked for earlier dates in the range are excluded for later ones.
func (s *Service) Run(ctx context.Context, params SelectParams) (*RunSummary, error) {
	from, to, err := s.resolveRange(params)
	if err != nil {
		return nil, err
	}

	candidates, err := s.loadCandidates(ctx)
	if err != nil {
		return nil, err
	}

	windowStart := from.AddDate(0, 0, -s.cfg.LookbackDays)
	history, err := s.assignments.History(ctx, windowStart, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	summary := &RunSummary{}
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		day, err := s.selectDay(ctx, date, candidates, history, params.Force)
		if err != nil {
			return summary, err
		}
		summary.Days = append(summary.Days, day)
	}

	return summary, nil
}

// DailyWords returns the assignments for a calendar date with their
// words. Used by the read API.
func (s *Service) DailyWords(ctx context.Context, date time.Time) ([]domain.AssignedWord, error) {
	assigned, err := s.assignments.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get daily words: %w", err)
	}
	return assigned, nil
}

// selectDay picks and persists one date. History gains the new picks so
// subsequent dates in the same run exclude them.
func (s *Service) selectDay(
	ctx context.Context,
	date time.Time,
	candidates map[domain.DifficultyLevel][]selection.Candidate,
	history selection.History,
	force bool,
) (DaySummary, error) {
	day := DaySummary{Date: date}

	exists, err := s.assignments.ExistsForDate(ctx, date)
	if err != nil {
		return day, fmt.Errorf("check date %s: %w", date.Format(time.DateOnly), err)
	}
	if exists && !force {
		day.Skipped = true
		s.log.InfoContext(ctx, "date already assigned, skipping",
			slog.String("date", date.Format(time.DateOnly)))
		return day, nil
	}

	picks := s.selector.SelectForDate(date, candidates, history)
	if len(picks) == 0 {
		return day, fmt.Errorf("date %s: %w: no candidates available", date.Format(time.DateOnly), domain.ErrValidation)
	}

	assignments := make([]domain.DailyWordAssignment, 0, len(picks))
	for _, p := range picks {
		assignments = append(assignments, domain.DailyWordAssignment{
			Date:              p.Date,
			DifficultyLevel:   p.Level,
			WordID:            p.WordID,
			RelaxedConstraint: p.RelaxedConstraint,
		})
		if p.RelaxedConstraint {
			day.Relaxed++
			s.log.WarnContext(ctx, "lookback constraint relaxed",
				slog.String("date", date.Format(time.DateOnly)),
				slog.String("level", string(p.Level)),
				slog.String("word", p.Text),
			)
		}
	}

	if exists {
		// Replace the date's assignments atomically.
		err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
			removed, err := s.assignments.DeleteByDate(ctx, date)
			if err != nil {
				return err
			}
			day.Replaced = removed
			return s.assignments.CreateBatch(ctx, assignments)
		})
	} else {
		err = s.assignments.CreateBatch(ctx, assignments)
	}
	if err != nil {
		return day, fmt.Errorf("persist assignments for %s: %w", date.Format(time.DateOnly), err)
	}

	for _, p := range picks {
		history[p.WordID] = p.Date
	}
	day.Picked = len(picks)

	return day, nil
}

// loadCandidates builds the per-level candidate pools from scored words.
func (s *Service) loadCandidates(ctx context.Context) (map[domain.DifficultyLevel][]selection.Candidate, error) {
	candidates := make(map[domain.DifficultyLevel][]selection.Candidate)
	for _, level := range domain.AllDifficultyLevels() {
		words, err := s.words.ListCandidates(ctx, level)
		if err != nil {
			return nil, fmt.Errorf("list candidates for %s: %w", level, err)
		}
		pool := make([]selection.Candidate, 0, len(words))
		for _, w := range words {
			pool = append(pool, selection.Candidate{
				WordID:       w.ID,
				Text:         w.Text,
				PartOfSpeech: w.PartOfSpeech,
			})
		}
		candidates[level] = pool
	}
	return candidates, nil
}

func (s *Service) resolveRange(params SelectParams) (from, to time.Time, err error) {
	from = params.From
	if from.IsZero() {
		from = s.clock.Now()
	}
	from = domain.DateOnly(from)

	to = params.To
	if to.IsZero() {
		to = from
	}
	to = domain.DateOnly(to)

	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range end %s before start %s",
			domain.ErrValidation, to.Format(time.DateOnly), from.Format(time.DateOnly))
	}
	return from, to, nil
}
