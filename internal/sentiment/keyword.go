package sentiment

import (
	"context"
	"strings"

	"github.com/selivandex/crypto-news/pkg/models"
)

// negativeTokens and positiveTokens are the fixed keyword vocabularies of
// the deterministic fallback tier. A token counts once when present as a
// case-insensitive substring of title+snippet.
var negativeTokens = []string{
	"hack", "exploit", "lawsuit", "ban", "investigation",
	"vulnerability", "dip", "crash", "fall", "decline", "loss",
}

var positiveTokens = []string{
	"approval", "investment", "surge", "record", "all-time high",
	"partnership", "funding", "gain", "rise", "moon", "bull",
}

// Keyword is the local, deterministic fallback classifier. It always
// succeeds, which makes it the guaranteed terminal tier of a cascade.
type Keyword struct{}

// NewKeyword creates new keyword classifier
func NewKeyword() *Keyword {
	return &Keyword{}
}

func (k *Keyword) Name() string {
	return "keyword"
}

func (k *Keyword) Classify(_ context.Context, title, snippet string) (models.SentimentResult, error) {
	text := strings.ToLower(title + " " + snippet)

	negativeCount := countTokens(text, negativeTokens)
	positiveCount := countTokens(text, positiveTokens)

	var label models.Sentiment
	var score float64

	switch {
	case positiveCount > negativeCount:
		label = models.SentimentPositive
		score = 0.65 + 0.05*float64(positiveCount)
	case negativeCount > positiveCount:
		label = models.SentimentNegative
		score = 0.35 - 0.05*float64(negativeCount)
	default:
		label = models.SentimentNeutral
		score = 0.5
	}

	return models.Normalize(label, score, true), nil
}

func countTokens(text string, tokens []string) int {
	count := 0
	for _, token := range tokens {
		if strings.Contains(text, token) {
			count++
		}
	}
	return count
}
