package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/selivandex/crypto-news/internal/adapters/ai"
	"github.com/selivandex/crypto-news/internal/adapters/cache"
	"github.com/selivandex/crypto-news/internal/adapters/config"
	"github.com/selivandex/crypto-news/internal/adapters/database"
	"github.com/selivandex/crypto-news/internal/adapters/newsdata"
	redisAdapter "github.com/selivandex/crypto-news/internal/adapters/redis"
	"github.com/selivandex/crypto-news/internal/adapters/telegram"
	"github.com/selivandex/crypto-news/internal/archive"
	"github.com/selivandex/crypto-news/internal/pipeline"
	"github.com/selivandex/crypto-news/internal/sentiment"
	"github.com/selivandex/crypto-news/internal/server"
	"github.com/selivandex/crypto-news/internal/workers"
	"github.com/selivandex/crypto-news/pkg/logger"
	"github.com/selivandex/crypto-news/pkg/worker"
)

func main() {
	// Setup signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("crypto news enricher starting",
		zap.String("ai_provider", cfg.AI.Provider),
		zap.Int64("cache_ttl_seconds", cfg.Cache.TTLSeconds),
	)

	// Cache backend
	redisClient, err := redisAdapter.New(&cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	cacheStore := cache.New(cache.NewRedisStore(redisClient), cfg.Cache.TTLSeconds)

	checks := map[string]server.HealthChecker{
		"redis": redisClient,
	}

	// Optional postgres archive
	var archiveRepo *archive.Repository
	if cfg.Archive.Enabled {
		db, err := database.New(&cfg.Archive)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.RunMigrations(db.Conn(), cfg.Archive.MigrationsPath); err != nil {
			return err
		}

		archiveRepo = archive.NewRepository(db)
		checks["postgres"] = db
	}

	// Optional telegram alerts
	var notifier *telegram.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewNotifier(&cfg.Telegram)
		if err != nil {
			return err
		}
	}

	pipe := pipeline.New(
		&cfg.News,
		newsdata.NewClient(cfg.News.APIKey),
		cacheStore,
		buildCascade(&cfg.AI),
		asArchiver(archiveRepo),
		asAlerter(notifier),
	)

	// Optional warm-cache worker
	if cfg.Worker.RefreshEnabled {
		pw := worker.RunBackground(ctx, workers.NewCacheRefreshWorker(pipe), cfg.Worker.RefreshInterval)
		defer pw.Stop(cfg.Server.ShutdownTimeout)
	}

	srv := server.New(&cfg.Server, pipe, asHistory(archiveRepo), checks)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// buildCascade wires the configured classifier tiers in cascade order:
// primary LLM, optional hosted inference endpoint, keyword fallback.
func buildCascade(cfg *config.AIConfig) *sentiment.Cascade {
	var primary sentiment.Classifier
	switch cfg.Provider {
	case "openai":
		if cfg.OpenAIAPIKey != "" {
			primary = ai.NewOpenAIClassifier(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		}
	default:
		if cfg.ClaudeAPIKey != "" {
			primary = ai.NewClaudeClassifier(cfg.ClaudeAPIKey, cfg.ClaudeModel)
		}
	}

	var secondary sentiment.Classifier
	if cfg.InferenceEndpoint != "" {
		secondary = ai.NewInferenceClassifier(cfg.InferenceEndpoint, cfg.InferenceAPIKey)
	}

	return sentiment.NewCascade(primary, secondary)
}

// asArchiver converts a possibly-nil repository into the pipeline's
// optional interface without producing a typed-nil interface value.
func asArchiver(repo *archive.Repository) pipeline.Archiver {
	if repo == nil {
		return nil
	}
	return repo
}

func asAlerter(n *telegram.Notifier) pipeline.Alerter {
	if n == nil {
		return nil
	}
	return n
}

func asHistory(repo *archive.Repository) server.HistoryReader {
	if repo == nil {
		return nil
	}
	return repo
}
