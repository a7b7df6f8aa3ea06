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

// InferenceClassifier implements the secondary sentiment tier against a
// hosted binary-label inference endpoint. The endpoint takes raw text and
// answers with a POSITIVE/NEGATIVE label plus confidence.
type InferenceClassifier struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewInferenceClassifier creates new inference endpoint classifier
func NewInferenceClassifier(endpoint, apiKey string) *InferenceClassifier {
	return &InferenceClassifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (i *InferenceClassifier) Name() string {
	return "inference"
}

func (i *InferenceClassifier) Classify(ctx context.Context, title, snippet string) (models.SentimentResult, error) {
	reqBody := map[string]interface{}{
		"inputs": []string{title + " " + snippet},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return models.SentimentResult{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", i.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return models.SentimentResult{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if i.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+i.apiKey)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return models.SentimentResult{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.SentimentResult{}, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result []struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.SentimentResult{}, fmt.Errorf("failed to decode response: %w", err)
	}

	label := "NEUTRAL"
	score := 0.5
	if len(result) > 0 {
		if result[0].Label != "" {
			label = result[0].Label
		}
		if result[0].Score != 0 {
			score = result[0].Score
		}
	}

	var sentiment models.Sentiment
	var explicit bool
	switch label {
	case "POSITIVE":
		sentiment, explicit = models.SentimentPositive, true
	case "NEGATIVE":
		sentiment, explicit = models.SentimentNegative, true
	default:
		sentiment, explicit = models.SentimentNeutral, false
	}

	return models.Normalize(sentiment, score, explicit), nil
}
