package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/studydrill/studydrill/internal/config"
	"github.com/studydrill/studydrill/internal/db"
	"github.com/studydrill/studydrill/internal/db/repository"
	"github.com/studydrill/studydrill/internal/ingest"
	"github.com/studydrill/studydrill/internal/logging"
	"github.com/studydrill/studydrill/internal/practice"
	"github.com/studydrill/studydrill/internal/selector"
	"github.com/studydrill/studydrill/internal/server"
)

// Application aggregates shared infrastructure (DB, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool      *pgxpool.Pool
	http      *http.Server
	ingestSvc *ingest.Service
}

// New bootstraps config, logger, Postgres schema and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	if err := db.EnsureSchema(ctx, cfg.Postgres); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	pool, err := db.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}

	questionRepo := repository.NewQuestionRepository(pool)

	practiceSvc := practice.NewService(questionRepo, selector.New(0), logger)
	ingestSvc := ingest.NewService(questionRepo, cfg.Ingest.WorkbookPaths, logger)

	practiceHandler := practice.NewHTTPHandler(practiceSvc, logger, cfg.Practice.MostMissedDefault, cfg.Practice.MostMissedMax)
	ingestHandler := ingest.NewHTTPHandler(ingestSvc, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, practiceHandler, ingestHandler)

	app := &Application{
		cfg:       cfg,
		logger:    logger,
		pool:      pool,
		http:      apiServer,
		ingestSvc: ingestSvc,
	}

	if cfg.Ingest.AutoLoad {
		// The original tool seeds itself from a workbook sitting next to
		// the binary; a failed or absent workbook must not stop startup.
		if err := ingestSvc.AutoLoad(ctx); err != nil {
			logger.Warn().Err(err).Msg("workbook auto-load failed")
		}
	}

	return app, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()

	a.logger.Info().Msg("shutdown complete")
	return nil
}
