package models

import "time"

// RawArticle represents a single record as returned by the news search API.
// The upstream shape is loose: fields may be absent or appear under
// alternative names, so everything is optional here and normalization
// happens at the adapter boundary.
type RawArticle struct {
	Title      string   `json:"title"`
	Link       string   `json:"link"`
	URL        string   `json:"url"`
	SourceID   string   `json:"source_id"`
	SourceName string   `json:"source_name"`
	PubDate    string   `json:"pubDate"`
	PubDateAlt string   `json:"pubdate"`
	Desc       string   `json:"description"`
	Content    string   `json:"content"`
	ImageURL   string   `json:"image_url"`
	Tickers    []string `json:"tickers"`
}

// NormalizedArticle is the strict, request-scoped article shape the
// pipeline works with after boundary parsing.
type NormalizedArticle struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	SourceName  string    `json:"source"`
	PublishedAt time.Time `json:"pubDate"`
	Snippet     string    `json:"snippet"`
	Tickers     []string  `json:"tickers"`
	TrustScore  float64   `json:"trust_score"`
}

// EnrichedArticle is a normalized article plus its sentiment result.
type EnrichedArticle struct {
	NormalizedArticle
	Sentiment SentimentResult `json:"sentiment_result"`
}

// CachedArticle is the flattened record persisted inside a CacheEntry.
type CachedArticle struct {
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	SourceName string   `json:"source_name"`
	PubDate    string   `json:"pubDate"`
	Tickers    []string `json:"tickers"`
	Snippet    string   `json:"snippet"`
	Sentiment  string   `json:"sentiment"`
	Score      float64  `json:"score"`
	Emoji      string   `json:"emoji"`
	TrustScore float64  `json:"trust_score"`
	CachedAt   int64    `json:"cachedAt"`
}

// CacheEntry is the unit stored in the key-value backend, one per query
// fingerprint. TTL is an absolute epoch-seconds expiry enforced by the
// reader, not by the backend.
type CacheEntry struct {
	QueryKey string          `json:"queryKey"`
	Articles []CachedArticle `json:"articles"`
	CachedAt int64           `json:"cachedAt"`
	TTL      int64           `json:"ttl"`
}

// Expired reports whether the entry is logically dead at the given time,
// regardless of whether the backend still holds it physically.
func (e *CacheEntry) Expired(now time.Time) bool {
	return e.TTL < now.Unix()
}
