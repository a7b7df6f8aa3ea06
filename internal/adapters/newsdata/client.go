package newsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/selivandex/crypto-news/pkg/models"
)

const newsdataAPIURL = "https://newsdata.io/api/1/news"

const userAgent = "crypto-news-enricher/1.0"

// Client fetches raw articles from the newsdata.io search API.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates new newsdata client
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: newsdataAPIURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Fetch runs one search call and returns the raw article records. Transient
// failures surface as errors for the caller's retry policy to classify.
func (c *Client) Fetch(ctx context.Context, log *zap.Logger, query, language, category string, size int) ([]models.RawArticle, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("q", query)
	params.Set("language", language)
	params.Set("category", category)
	params.Set("size", strconv.Itoa(size))

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Results []models.RawArticle `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Info("fetched crypto news", zap.Int("article_count", len(result.Results)))

	return result.Results, nil
}
