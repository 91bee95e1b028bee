// Command enrich attaches frequency signals and syllable counts to
// imported words using the Datamuse API. Runs are resumable: interrupted
// runs continue from the last processed word unless --reset-progress is
// given.
//
// Flags:
//
//	--reset-progress  discard the stored checkpoint and start from the first word
//	--limit           stop after this many words (0 = no limit)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oneword-app/oneword-backend/internal/adapter/postgres"
	"github.com/oneword-app/oneword-backend/internal/adapter/postgres/progress"
	"github.com/oneword-app/oneword-backend/internal/adapter/postgres/word"
	"github.com/oneword-app/oneword-backend/internal/adapter/provider/datamuse"
	"github.com/oneword-app/oneword-backend/internal/app"
	"github.com/oneword-app/oneword-backend/internal/config"
	"github.com/oneword-app/oneword-backend/internal/service/enrichment"
)

func main() {
	resetFlag := flag.Bool("reset-progress", false, "discard the checkpoint and start over")
	limitFlag := flag.Int("limit", 0, "stop after this many words (0 = no limit)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 12*time.Hour)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	freq, err := datamuse.NewProvider(datamuse.Config{
		BaseURL:           cfg.Enrichment.BaseURL,
		RequestTimeout:    cfg.Enrichment.RequestTimeout,
		RateLimitInterval: cfg.Enrichment.RateLimitInterval,
		MaxRetries:        cfg.Enrichment.MaxRetries,
		CacheSize:         cfg.Enrichment.CacheSize,
	}, logger)
	if err != nil {
		logger.Error("create frequency provider", slog.String("error", err.Error()))
		os.Exit(1)
	}

	svc := enrichment.NewService(logger, word.New(pool), progress.New(pool), freq, clockwork.NewRealClock(), cfg.Enrichment)

	summary, err := svc.Run(ctx, enrichment.RunParams{Restart: *resetFlag, Limit: *limitFlag})
	if err != nil {
		logger.Error("enrichment failed",
			slog.String("error", err.Error()),
			slog.Int("processed", summary.Processed),
		)
		os.Exit(1)
	}

	logger.Info("enrichment complete",
		slog.Int("processed", summary.Processed),
		slog.Int("measured", summary.Measured),
		slog.Int("unknown", summary.Unknown),
		slog.Int("failed", summary.Failed),
		slog.Int("persist_failed", summary.PersistFailed),
		slog.Bool("resumed", summary.Resumed),
		slog.Duration("duration", summary.Duration),
	)
}
