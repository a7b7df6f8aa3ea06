package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/selivandex/crypto-news/pkg/models"
)

const claudeAPIURL = "https://api.anthropic.com/v1/messages"

// ClaudeClassifier implements the primary sentiment tier on the Claude
// messages API.
type ClaudeClassifier struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewClaudeClassifier creates new Claude classifier
func NewClaudeClassifier(apiKey, model string) *ClaudeClassifier {
	return &ClaudeClassifier{
		apiKey:  apiKey,
		model:   model,
		baseURL: claudeAPIURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *ClaudeClassifier) Name() string {
	return "claude"
}

func (c *ClaudeClassifier) Classify(ctx context.Context, title, snippet string) (models.SentimentResult, error) {
	reqBody := map[string]interface{}{
		"model":      c.model,
		"max_tokens": 100,
		"system":     systemPrompt,
		"messages": []map[string]string{
			{"role": "user", "content": buildUserPrompt(title, snippet)},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return models.SentimentResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return models.SentimentResult{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	resp, err := c.client.Do(req)
	if err != nil {
		return models.SentimentResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.SentimentResult{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.SentimentResult{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Content) == 0 {
		return models.SentimentResult{}, fmt.Errorf("no content in response")
	}

	return parseModelResponse(result.Content[0].Text)
}
