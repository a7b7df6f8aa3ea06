package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/crypto-news/internal/adapters/config"
	"github.com/selivandex/crypto-news/internal/pipeline"
	"github.com/selivandex/crypto-news/pkg/logger"
	"github.com/selivandex/crypto-news/pkg/models"
)

// HealthChecker is any dependency that can report its own liveness.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HistoryReader serves archived enriched articles by sentiment label.
// Nil when the archive is disabled.
type HistoryReader interface {
	RecentBySentiment(ctx context.Context, sentiment models.Sentiment, since time.Duration, limit int) ([]models.EnrichedArticle, error)
}

// Server exposes the news endpoint plus K8s-style probes.
type Server struct {
	server    *http.Server
	pipe      *pipeline.Pipeline
	history   HistoryReader
	checks    map[string]HealthChecker
	startTime time.Time
}

// New creates new HTTP server
func New(cfg *config.ServerConfig, pipe *pipeline.Pipeline, history HistoryReader, checks map[string]HealthChecker) *Server {
	mux := http.NewServeMux()

	s := &Server{
		server: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		pipe:      pipe,
		history:   history,
		checks:    checks,
		startTime: time.Now(),
	}

	mux.HandleFunc("/news", s.handleNews)
	mux.HandleFunc("/news/history", s.handleHistory)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReadiness)
	mux.HandleFunc("/readyz", s.handleReadiness)

	return s
}

// Start begins serving. Blocks until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	logger.Info("http server starting", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("http server shutting down")
	return s.server.Shutdown(ctx)
}
