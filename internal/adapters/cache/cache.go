package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/crypto-news/pkg/models"
)

// ErrNotFound is returned by a Store when a key is absent from the backend.
var ErrNotFound = errors.New("cache: key not found")

// Store is the minimal key-value surface the cache needs from a backend.
// The expiration passed to Set is only a sweep hint for the backend; logical
// expiry is always enforced by the reader via the entry's own ttl field.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// Cache implements the cache-aside layer over a key-value backend, keyed by
// a deterministic query fingerprint.
type Cache struct {
	store      Store
	ttlSeconds int64
	now        func() time.Time
}

// New creates new cache with the given entry TTL in seconds
func New(store Store, ttlSeconds int64) *Cache {
	return &Cache{
		store:      store,
		ttlSeconds: ttlSeconds,
		now:        time.Now,
	}
}

// QueryKey computes the stable fingerprint for a semantic query. Identical
// inputs produce an identical 64-char lowercase hex digest across processes.
func QueryKey(query, language, category string) string {
	sum := sha256.Sum256([]byte(query + "|" + language + "|" + category))
	return hex.EncodeToString(sum[:])
}

// Get looks up a cache entry by fingerprint. Misses, expired entries and
// transport errors all come back as (nil, false): a read failure must not
// block the request, it only forces a recompute.
func (c *Cache) Get(ctx context.Context, log *zap.Logger, queryKey string) (*models.CacheEntry, bool) {
	raw, err := c.store.Get(ctx, queryKey)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Debug("cache miss", zap.String("query_key", queryKey))
		} else {
			log.Error("cache read failed, treating as miss",
				zap.String("query_key", queryKey),
				zap.Error(err),
			)
		}
		return nil, false
	}

	var entry models.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		log.Error("corrupt cache entry, treating as miss",
			zap.String("query_key", queryKey),
			zap.Error(err),
		)
		return nil, false
	}

	if entry.Expired(c.now()) {
		log.Debug("cache entry expired",
			zap.String("query_key", queryKey),
			zap.Int64("ttl", entry.TTL),
		)
		return nil, false
	}

	log.Info("cache hit",
		zap.String("query_key", queryKey),
		zap.Int("article_count", len(entry.Articles)),
	)

	return &entry, true
}

// Put persists a fresh entry for the fingerprint, overwriting any prior
// entry unconditionally. Unlike reads, a write failure propagates to the
// caller rather than failing open. Articles and the entry are stamped from
// a single clock read so their cachedAt fields never disagree.
func (c *Cache) Put(ctx context.Context, log *zap.Logger, queryKey string, articles []models.CachedArticle) (*models.CacheEntry, error) {
	now := c.now().Unix()
	for i := range articles {
		articles[i].CachedAt = now
	}

	entry := &models.CacheEntry{
		QueryKey: queryKey,
		Articles: articles,
		CachedAt: now,
		TTL:      now + c.ttlSeconds,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	expiration := time.Duration(c.ttlSeconds) * time.Second
	if err := c.store.Set(ctx, queryKey, string(data), expiration); err != nil {
		return nil, fmt.Errorf("failed to write cache entry: %w", err)
	}

	log.Info("articles cached",
		zap.String("query_key", queryKey),
		zap.Int("article_count", len(articles)),
		zap.Int64("ttl_seconds", c.ttlSeconds),
	)

	return entry, nil
}
