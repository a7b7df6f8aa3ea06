package ai

import (
	"testing"

	"github.com/selivandex/crypto-news/pkg/models"
)

func TestParseModelResponse(t *testing.T) {
	tests := []struct {
		name          string
		content       string
		wantSentiment models.Sentiment
		wantScore     float64
		wantErr       bool
	}{
		{
			name:          "explicit positive label",
			content:       `{"sentiment": "Positive", "score": 0.9}`,
			wantSentiment: models.SentimentPositive,
			wantScore:     0.9,
		},
		{
			name:          "explicit negative label",
			content:       `{"sentiment": "Negative", "score": 0.1}`,
			wantSentiment: models.SentimentNegative,
			wantScore:     0.1,
		},
		{
			// A model claiming neutral with a polar score is not trusted;
			// the label is re-derived from the score.
			name:          "neutral label with high score derives positive",
			content:       `{"sentiment": "Neutral", "score": 0.9}`,
			wantSentiment: models.SentimentPositive,
			wantScore:     0.9,
		},
		{
			name:          "mid score stays neutral",
			content:       `{"sentiment": "Neutral", "score": 0.5}`,
			wantSentiment: models.SentimentNeutral,
			wantScore:     0.5,
		},
		{
			name:          "out-of-range score is clamped",
			content:       `{"sentiment": "Positive", "score": 1.7}`,
			wantSentiment: models.SentimentPositive,
			wantScore:     1.0,
		},
		{
			name:    "markdown-wrapped reply fails the tier",
			content: "```json\n{\"sentiment\": \"Positive\", \"score\": 0.9}\n```",
			wantErr: true,
		},
		{
			name:    "free text fails the tier",
			content: "The sentiment is positive.",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseModelResponse(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected parse failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Sentiment != tt.wantSentiment {
				t.Errorf("sentiment = %q, want %q", result.Sentiment, tt.wantSentiment)
			}
			if result.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", result.Score, tt.wantScore)
			}
		})
	}
}
