// Package app wires configuration, logging, persistence, services, and
// the HTTP server together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/oneword-app/oneword-backend/internal/adapter/postgres"
	"github.com/oneword-app/oneword-backend/internal/adapter/postgres/assignment"
	"github.com/oneword-app/oneword-backend/internal/adapter/postgres/word"
	"github.com/oneword-app/oneword-backend/internal/config"
	"github.com/oneword-app/oneword-backend/internal/service/scheduling"
	"github.com/oneword-app/oneword-backend/internal/transport/middleware"
	"github.com/oneword-app/oneword-backend/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, connects to the
// database, wires the read services, and serves HTTP until the process
// receives SIGINT or SIGTERM.
func Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting server",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	words := word.New(pool)
	assignments := assignment.New(pool)
	tx := postgres.NewTxManager(pool)

	scheduler := scheduling.NewService(logger, words, assignments, tx, clockwork.NewRealClock(), cfg.Selection)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	handler := buildRouter(cfg, logger, pool, scheduler, rateLimiter)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}

// dbPinger narrows the pool for health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

func buildRouter(
	cfg *config.Config,
	logger *slog.Logger,
	db dbPinger,
	scheduler *scheduling.Service,
	rateLimiter *middleware.RateLimiter,
) http.Handler {
	health := rest.NewHealthHandler(db, BuildVersion())
	daily := rest.NewDailyWordsHandler(scheduler)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /v1/daily-words", daily.Get)

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.CORS(cfg.Server.CORS),
		rateLimiter.Limit(cfg.Server.RateLimitPerMinute),
	)

	return chain(mux)
}
