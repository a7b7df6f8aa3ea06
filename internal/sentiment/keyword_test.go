package sentiment

import (
	"context"
	"testing"

	"github.com/selivandex/crypto-news/pkg/models"
)

func TestKeyword_Classify(t *testing.T) {
	k := NewKeyword()
	ctx := context.Background()

	t.Run("positive tokens only", func(t *testing.T) {
		result, err := k.Classify(ctx, "ETF approval sparks institutional investment surge", "")
		if err != nil {
			t.Fatalf("keyword classifier must not fail: %v", err)
		}
		if result.Sentiment != models.SentimentPositive {
			t.Errorf("expected Positive, got %s", result.Sentiment)
		}
		if result.Score <= 0.65 {
			t.Errorf("expected score > 0.65, got %v", result.Score)
		}
		if result.Emoji != "🐂" {
			t.Errorf("expected bull glyph, got %q", result.Emoji)
		}
	})

	t.Run("negative tokens only", func(t *testing.T) {
		result, err := k.Classify(ctx, "Exchange hack under investigation", "vulnerability led to heavy loss")
		if err != nil {
			t.Fatalf("keyword classifier must not fail: %v", err)
		}
		if result.Sentiment != models.SentimentNegative {
			t.Errorf("expected Negative, got %s", result.Sentiment)
		}
		if result.Score >= 0.35 {
			t.Errorf("expected score < 0.35, got %v", result.Score)
		}
		if result.Emoji != "🐻" {
			t.Errorf("expected bear glyph, got %q", result.Emoji)
		}
	})

	t.Run("no tokens is exactly neutral", func(t *testing.T) {
		result, _ := k.Classify(ctx, "Weekly market report published", "Prices were discussed")
		if result.Sentiment != models.SentimentNeutral {
			t.Errorf("expected Neutral, got %s", result.Sentiment)
		}
		if result.Score != 0.5 {
			t.Errorf("expected score exactly 0.5, got %v", result.Score)
		}
		if result.Emoji != "⚪" {
			t.Errorf("expected neutral glyph, got %q", result.Emoji)
		}
	})

	t.Run("positive majority wins despite negative tokens", func(t *testing.T) {
		result, _ := k.Classify(ctx, "Partnership and funding surge despite lawsuit", "")
		if result.Sentiment != models.SentimentPositive {
			t.Errorf("expected Positive, got %s", result.Sentiment)
		}
	})

	t.Run("equal counts are neutral", func(t *testing.T) {
		result, _ := k.Classify(ctx, "Approval granted amid investigation", "")
		if result.Sentiment != models.SentimentNeutral {
			t.Errorf("expected Neutral, got %s", result.Sentiment)
		}
		if result.Score != 0.5 {
			t.Errorf("expected score 0.5, got %v", result.Score)
		}
	})

	t.Run("score stays within bounds", func(t *testing.T) {
		// Every negative token present drives the raw score below zero
		// before clamping.
		text := "hack exploit lawsuit ban investigation vulnerability dip crash fall decline loss"
		result, _ := k.Classify(ctx, text, text)
		if result.Score < 0 || result.Score > 1 {
			t.Errorf("score out of bounds: %v", result.Score)
		}
		if result.Score != 0 {
			t.Errorf("expected clamp to 0, got %v", result.Score)
		}
	})
}
