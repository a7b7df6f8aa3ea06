package cache

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/crypto-news/pkg/models"
)

// memStore is an in-memory Store for tests.
type memStore struct {
	data map[string]string
	sets int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(ctx context.Context, key string) (string, error) {
	v, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *memStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.sets++
	m.data[key] = fmt.Sprint(value)
	return nil
}

// failStore fails every operation with a transport error.
type failStore struct{}

func (failStore) Get(ctx context.Context, key string) (string, error) {
	return "", errors.New("connection reset by peer")
}

func (failStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return errors.New("connection reset by peer")
}

func TestQueryKey(t *testing.T) {
	t.Run("deterministic across calls", func(t *testing.T) {
		a := QueryKey("cryptocurrency", "en", "business")
		b := QueryKey("cryptocurrency", "en", "business")
		if a != b {
			t.Errorf("same inputs produced different keys: %s vs %s", a, b)
		}
	})

	t.Run("fixed-length lowercase hex", func(t *testing.T) {
		key := QueryKey("cryptocurrency", "en", "business")
		if len(key) != 64 {
			t.Errorf("expected 64-char digest, got %d", len(key))
		}
		for _, c := range key {
			if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
				t.Fatalf("non-hex character %q in key", c)
			}
		}
	})

	t.Run("any differing input changes the key", func(t *testing.T) {
		base := QueryKey("cryptocurrency", "en", "business")
		variants := []string{
			QueryKey("bitcoin", "en", "business"),
			QueryKey("cryptocurrency", "de", "business"),
			QueryKey("cryptocurrency", "en", "technology"),
		}
		for i, v := range variants {
			if v == base {
				t.Errorf("variant %d collided with base key", i)
			}
		}
	})
}

func TestCache_GetPut(t *testing.T) {
	log := zap.NewNop()
	ctx := context.Background()

	articles := []models.CachedArticle{
		{Title: "BTC rally", URL: "https://example.com/1", Sentiment: "Positive", Score: 0.8, Emoji: "🐂"},
	}

	t.Run("fresh entry is a hit with payload intact", func(t *testing.T) {
		c := New(newMemStore(), 900)

		written, err := c.Put(ctx, log, "key1", articles)
		if err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if written.TTL != written.CachedAt+900 {
			t.Errorf("ttl should be cachedAt+900, got %d vs %d", written.TTL, written.CachedAt)
		}

		entry, hit := c.Get(ctx, log, "key1")
		if !hit {
			t.Fatal("expected cache hit")
		}
		if len(entry.Articles) != 1 || entry.Articles[0].URL != "https://example.com/1" {
			t.Errorf("payload not intact: %+v", entry.Articles)
		}
		if entry.Articles[0].Score != 0.8 {
			t.Errorf("score not intact: %v", entry.Articles[0].Score)
		}
	})

	t.Run("article timestamps share the entry clock", func(t *testing.T) {
		c := New(newMemStore(), 900)
		frozen := time.Unix(1700000000, 0)
		c.now = func() time.Time { return frozen }

		written, err := c.Put(ctx, log, "key1", articles)
		if err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if written.CachedAt != frozen.Unix() {
			t.Errorf("entry cachedAt = %d, want %d", written.CachedAt, frozen.Unix())
		}
		for i, a := range written.Articles {
			if a.CachedAt != written.CachedAt {
				t.Errorf("article %d cachedAt = %d, entry = %d", i, a.CachedAt, written.CachedAt)
			}
		}
	})

	t.Run("expired entry is a miss even while physically present", func(t *testing.T) {
		store := newMemStore()
		c := New(store, 900)

		if _, err := c.Put(ctx, log, "key1", articles); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		// Move the cache's clock past the entry's expiry. The entry is
		// still in the backend.
		c.now = func() time.Time { return time.Now().Add(1000 * time.Second) }

		if _, hit := c.Get(ctx, log, "key1"); hit {
			t.Error("expected expired entry to read as a miss")
		}
		if _, ok := store.data["key1"]; !ok {
			t.Error("entry should still be physically present")
		}
	})

	t.Run("read failure is a miss, not an error", func(t *testing.T) {
		c := New(failStore{}, 900)
		if _, hit := c.Get(ctx, log, "key1"); hit {
			t.Error("expected transport failure to read as a miss")
		}
	})

	t.Run("write failure propagates", func(t *testing.T) {
		c := New(failStore{}, 900)
		if _, err := c.Put(ctx, log, "key1", articles); err == nil {
			t.Error("expected write failure to propagate")
		}
	})

	t.Run("write overwrites unconditionally", func(t *testing.T) {
		store := newMemStore()
		c := New(store, 900)

		if _, err := c.Put(ctx, log, "key1", articles); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		newer := []models.CachedArticle{{Title: "ETH dip", URL: "https://example.com/2", Sentiment: "Negative"}}
		if _, err := c.Put(ctx, log, "key1", newer); err != nil {
			t.Fatalf("second put failed: %v", err)
		}

		entry, hit := c.Get(ctx, log, "key1")
		if !hit {
			t.Fatal("expected cache hit")
		}
		if len(entry.Articles) != 1 || entry.Articles[0].URL != "https://example.com/2" {
			t.Errorf("expected last writer to win, got %+v", entry.Articles)
		}
	})
}
