// Command score computes difficulty scores and tiers for enriched words.
//
// Flags:
//
//	--recompute  rescore every eligible word, not just unscored ones
//	--word       score a single word and print the result
//	--pos        part of speech for --word (default: noun)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/oneword-app/oneword-backend/internal/adapter/postgres"
	"github.com/oneword-app/oneword-backend/internal/adapter/postgres/synset"
	"github.com/oneword-app/oneword-backend/internal/adapter/postgres/word"
	"github.com/oneword-app/oneword-backend/internal/app"
	"github.com/oneword-app/oneword-backend/internal/config"
	"github.com/oneword-app/oneword-backend/internal/domain"
	"github.com/oneword-app/oneword-backend/internal/service/scoring"
)

// posFlags maps the --pos flag values to domain parts of speech.
var posFlags = map[string]domain.PartOfSpeech{
	"noun": domain.PartOfSpeechNoun,
	"verb": domain.PartOfSpeechVerb,
	"adj":  domain.PartOfSpeechAdjective,
	"adv":  domain.PartOfSpeechAdverb,
}

func main() {
	recomputeFlag := flag.Bool("recompute", false, "rescore every eligible word")
	wordFlag := flag.String("word", "", "score a single word")
	posFlag := flag.String("pos", "noun", "part of speech for --word")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := scoring.NewService(logger, word.New(pool), synset.New(pool), cfg.Scoring)

	if *wordFlag != "" {
		pos, ok := posFlags[*posFlag]
		if !ok {
			logger.Error("unknown part of speech", slog.String("pos", *posFlag))
			os.Exit(1)
		}

		result, err := svc.ScoreOne(ctx, *wordFlag, pos)
		if err != nil {
			logger.Error("score word failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		fmt.Printf("%s (%s): score=%.3f level=%s\n", *wordFlag, pos, result.Score, result.Level)
		fmt.Printf("  length=%.2f syllables=%.2f frequency=%.2f polysemy=%.2f pos=%.2f domain=%.2f\n",
			result.SubScores.Length, result.SubScores.Syllables, result.SubScores.Frequency,
			result.SubScores.Polysemy, result.SubScores.POS, result.SubScores.Domain)
		return
	}

	summary, err := svc.Run(ctx, scoring.RunParams{Recompute: *recomputeFlag})
	if err != nil {
		logger.Error("scoring failed",
			slog.String("error", err.Error()),
			slog.Int("scored", summary.Scored),
		)
		os.Exit(1)
	}

	logger.Info("scoring complete",
		slog.Int("scored", summary.Scored),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
		slog.Int("beginner", summary.Levels[domain.DifficultyBeginner]),
		slog.Int("intermediate", summary.Levels[domain.DifficultyIntermediate]),
		slog.Int("advanced", summary.Levels[domain.DifficultyAdvanced]),
	)
}
