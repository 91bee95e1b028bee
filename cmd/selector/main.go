// Command selector assigns daily words for a date or a date range.
// Without flags it assigns words for today. Dates that already have
// assignments are skipped unless --force is given.
//
// Flags:
//
//	--date   single date to assign (YYYY-MM-DD)
//	--from   range start (YYYY-MM-DD), used with --to
//	--to     range end (YYYY-MM-DD), inclusive
//	--force  replace existing assignments for the date(s)
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
	"github.com/oneword-app/oneword-backend/internal/adapter/postgres/assignment"
	"github.com/oneword-app/oneword-backend/internal/adapter/postgres/word"
	"github.com/oneword-app/oneword-backend/internal/app"
	"github.com/oneword-app/oneword-backend/internal/config"
	"github.com/oneword-app/oneword-backend/internal/service/scheduling"
)

func main() {
	dateFlag := flag.String("date", "", "single date to assign (YYYY-MM-DD)")
	fromFlag := flag.String("from", "", "range start (YYYY-MM-DD)")
	toFlag := flag.String("to", "", "range end (YYYY-MM-DD), inclusive")
	forceFlag := flag.Bool("force", false, "replace existing assignments")
	flag.Parse()

	params, err := buildParams(*dateFlag, *fromFlag, *toFlag, *forceFlag)
	if err != nil {
		log.Fatalf("invalid flags: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := scheduling.NewService(logger, word.New(pool), assignment.New(pool),
		postgres.NewTxManager(pool), clockwork.NewRealClock(), cfg.Selection)

	summary, err := svc.Run(ctx, params)
	if err != nil {
		logger.Error("selection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, day := range summary.Days {
		if day.Skipped {
			logger.Info("date skipped",
				slog.String("date", day.Date.Format(time.DateOnly)))
			continue
		}
		logger.Info("date assigned",
			slog.String("date", day.Date.Format(time.DateOnly)),
			slog.Int("picked", day.Picked),
			slog.Int("relaxed", day.Relaxed),
			slog.Int("replaced", day.Replaced),
		)
	}
}

func buildParams(date, from, to string, force bool) (scheduling.SelectParams, error) {
	params := scheduling.SelectParams{Force: force}

	parse := func(s string) (time.Time, error) {
		return time.Parse(time.DateOnly, s)
	}

	var err error
	switch {
	case date != "":
		params.From, err = parse(date)
		if err != nil {
			return scheduling.SelectParams{}, err
		}
		params.To = params.From
	case from != "" || to != "":
		if params.From, err = parse(from); err != nil {
			return scheduling.SelectParams{}, err
		}
		if params.To, err = parse(to); err != nil {
			return scheduling.SelectParams{}, err
		}
	}

	return params, nil
}
