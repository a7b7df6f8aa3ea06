package ai

import (
	"encoding/json"
	"fmt"

	"github.com/selivandex/crypto-news/pkg/models"
)

const systemPrompt = `You are a sentiment classifier for cryptocurrency news. Analyze the provided article title and snippet, then respond with ONLY a JSON object (no markdown, no extra text) with these fields:
{
  "sentiment": "Positive" or "Negative" or "Neutral",
  "score": a number between 0.0 and 1.0
}

Guidelines:
- Positive: news about adoption, records, partnerships, institutional interest, price surges, regulatory approval
- Negative: news about hacks, crashes, investigations, bans, vulnerabilities, lawsuits
- Neutral: factual news without clear sentiment`

// buildUserPrompt formats one article for classification
func buildUserPrompt(title, snippet string) string {
	return fmt.Sprintf("Title: %s\nDescription: %s", title, snippet)
}

// parseModelResponse extracts the sentiment JSON object from a model's
// free-form text reply. Anything that is not the expected JSON counts as
// a tier failure so the cascade can fall through.
func parseModelResponse(content string) (models.SentimentResult, error) {
	var payload struct {
		Sentiment string  `json:"sentiment"`
		Score     float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return models.SentimentResult{}, fmt.Errorf("failed to parse model response: %w", err)
	}

	label, explicit := models.ParseSentiment(payload.Sentiment)
	return models.Normalize(label, payload.Score, explicit), nil
}
