package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/studydrill/studydrill/internal/config"
	"github.com/studydrill/studydrill/internal/ingest"
	"github.com/studydrill/studydrill/internal/logging"
	"github.com/studydrill/studydrill/internal/practice"
)

// NewHTTPServer wires base routes (health, metrics) and the v1 API.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, practiceHandler *practice.HTTPHandler, ingestHandler *ingest.HTTPHandler) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pool.Ping(r.Context()); err != nil {
			logger.Error().Err(err).Msg("database ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	// Practice + stats endpoints
	mux.HandleFunc("GET /v1/practice/next", practiceHandler.HandleNext)
	mux.HandleFunc("POST /v1/practice/attempts", practiceHandler.HandleRecordAttempt)
	mux.HandleFunc("GET /v1/questions", practiceHandler.HandleListQuestions)
	mux.HandleFunc("GET /v1/questions/{id}", practiceHandler.HandleGetQuestion)
	mux.HandleFunc("GET /v1/stats/summary", practiceHandler.HandleSummary)
	mux.HandleFunc("GET /v1/stats/most-missed", practiceHandler.HandleMostMissed)
	mux.HandleFunc("POST /v1/stats/reset", practiceHandler.HandleReset)

	// Ingestion endpoint
	mux.HandleFunc("POST /v1/ingest", ingestHandler.HandleImport)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: withRequestID(logger, mux),
	}
}

// withRequestID tags every request with an id and puts a request-scoped
// logger into the context for downstream handlers.
func withRequestID(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		reqLogger := logger.With().Str("request_id", requestID).Logger()
		next.ServeHTTP(w, r.WithContext(logging.IntoContext(r.Context(), reqLogger)))
	})
}
