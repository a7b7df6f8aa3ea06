package pipeline

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/crypto-news/internal/adapters/cache"
	"github.com/selivandex/crypto-news/internal/adapters/config"
	"github.com/selivandex/crypto-news/internal/adapters/newsdata"
	"github.com/selivandex/crypto-news/internal/dedup"
	"github.com/selivandex/crypto-news/pkg/models"
	"github.com/selivandex/crypto-news/pkg/retry"
)

// Fetcher is the upstream search collaborator.
type Fetcher interface {
	Fetch(ctx context.Context, log *zap.Logger, query, language, category string, size int) ([]models.RawArticle, error)
}

// CacheStore is the cache-aside collaborator.
type CacheStore interface {
	Get(ctx context.Context, log *zap.Logger, queryKey string) (*models.CacheEntry, bool)
	Put(ctx context.Context, log *zap.Logger, queryKey string, articles []models.CachedArticle) (*models.CacheEntry, error)
}

// Classifier is the infallible sentiment cascade.
type Classifier interface {
	Classify(ctx context.Context, log *zap.Logger, title, snippet string) models.SentimentResult
}

// Archiver persists enriched articles for history, best-effort.
type Archiver interface {
	Save(ctx context.Context, log *zap.Logger, articles []models.EnrichedArticle) error
}

// Alerter pushes notable articles out-of-band, best-effort.
type Alerter interface {
	AlertNegativeNews(log *zap.Logger, articles []models.EnrichedArticle)
}

// Pipeline composes fetch, normalization, dedup, concurrent sentiment
// classification and the cache-aside layer into one stateless request path.
type Pipeline struct {
	cfg        *config.NewsConfig
	fetcher    Fetcher
	cache      CacheStore
	classifier Classifier
	archiver   Archiver
	alerter    Alerter
	retry      retry.Policy
}

// New creates new pipeline. Archiver and alerter may be nil when those
// integrations are disabled.
func New(cfg *config.NewsConfig, fetcher Fetcher, cacheStore CacheStore, classifier Classifier, archiver Archiver, alerter Alerter) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		fetcher:    fetcher,
		cache:      cacheStore,
		classifier: classifier,
		archiver:   archiver,
		alerter:    alerter,
		retry: retry.Policy{
			MaxAttempts:  cfg.MaxRetries,
			InitialDelay: cfg.InitialBackoff(),
		},
	}
}

// QueryKey returns the cache fingerprint of the configured semantic query.
func (p *Pipeline) QueryKey() string {
	return cache.QueryKey(p.cfg.Query, p.cfg.Language, p.cfg.Category)
}

// Query returns the configured free-text query string.
func (p *Pipeline) Query() string {
	return p.cfg.Query
}

// Run serves one request: cache hit short-circuits; on a miss the fresh
// path fetches, enriches and caches. A cache write failure fails the whole
// request even though fresh data was already computed; a caller on the
// cold path pays for cache durability.
func (p *Pipeline) Run(ctx context.Context, log *zap.Logger) (*models.CacheEntry, error) {
	queryKey := p.QueryKey()

	if entry, hit := p.cache.Get(ctx, log, queryKey); hit {
		return entry, nil
	}

	return p.Refresh(ctx, log)
}

// Refresh forces the fresh-data path regardless of cache state and writes
// the result back. Used on cache misses and by the warm-cache worker.
func (p *Pipeline) Refresh(ctx context.Context, log *zap.Logger) (*models.CacheEntry, error) {
	enriched, err := p.refresh(ctx, log)
	if err != nil {
		return nil, err
	}

	entry, err := p.cache.Put(ctx, log, p.QueryKey(), toCached(enriched))
	if err != nil {
		return nil, err
	}

	// Post-cache side effects never fail the request.
	if p.archiver != nil {
		if err := p.archiver.Save(ctx, log, enriched); err != nil {
			log.Warn("failed to archive articles", zap.Error(err))
		}
	}
	if p.alerter != nil {
		p.alerter.AlertNegativeNews(log, enriched)
	}

	return entry, nil
}

// refresh runs the fresh-data path: fetch with retry, normalize at the
// boundary, dedupe, classify every survivor concurrently.
func (p *Pipeline) refresh(ctx context.Context, log *zap.Logger) ([]models.EnrichedArticle, error) {
	var raw []models.RawArticle
	err := p.retry.Do(ctx, "newsdata api", func(ctx context.Context) error {
		fetched, err := p.fetcher.Fetch(ctx, log, p.cfg.Query, p.cfg.Language, p.cfg.Category, p.cfg.PageSize)
		if err != nil {
			return err
		}
		raw = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	normalized := make([]models.NormalizedArticle, 0, len(raw))
	for _, r := range raw {
		a := newsdata.Normalize(r, now)
		a.TrustScore = dedup.ScoreTrust(a.SourceName, a.URL)
		normalized = append(normalized, a)
	}

	deduped := dedup.Deduplicate(log, normalized)

	// Fan out one classification per article; results land in their
	// original slot so output order stays the post-dedup order no matter
	// which cascade call finishes first.
	enriched := make([]models.EnrichedArticle, len(deduped))
	var wg sync.WaitGroup
	for i, article := range deduped {
		wg.Add(1)
		go func(i int, article models.NormalizedArticle) {
			defer wg.Done()
			result := p.classifier.Classify(ctx, log, article.Title, article.Snippet)
			enriched[i] = models.EnrichedArticle{
				NormalizedArticle: article,
				Sentiment:         result,
			}
		}(i, article)
	}
	wg.Wait()

	return enriched, nil
}

// toCached flattens enriched articles into the persisted cache shape.
// The cachedAt field is left zero; the cache stamps it on write so the
// article and entry timestamps come from the same clock read.
func toCached(enriched []models.EnrichedArticle) []models.CachedArticle {
	cached := make([]models.CachedArticle, 0, len(enriched))
	for _, a := range enriched {
		cached = append(cached, models.CachedArticle{
			Title:      a.Title,
			URL:        a.URL,
			SourceName: a.SourceName,
			PubDate:    a.PublishedAt.UTC().Format(time.RFC3339),
			Tickers:    a.Tickers,
			Snippet:    a.Snippet,
			Sentiment:  string(a.Sentiment.Sentiment),
			Score:      a.Sentiment.Score,
			Emoji:      a.Sentiment.Emoji,
			TrustScore: a.TrustScore,
		})
	}
	return cached
}

// FilterBySentiment returns the articles matching the requested label, or
// all of them for "all". The parameter must already be validated.
func FilterBySentiment(articles []models.CachedArticle, sentiment string) []models.CachedArticle {
	if sentiment == "" || sentiment == "all" {
		return articles
	}

	label := strings.ToUpper(sentiment[:1]) + strings.ToLower(sentiment[1:])
	filtered := make([]models.CachedArticle, 0, len(articles))
	for _, a := range articles {
		if a.Sentiment == label {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
