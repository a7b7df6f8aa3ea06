package sentiment

import (
	"context"

	"go.uber.org/zap"

	"github.com/selivandex/crypto-news/pkg/models"
)

// Classifier is a single sentiment classification strategy.
type Classifier interface {
	// Name returns tier name for logging
	Name() string

	// Classify produces a sentiment result for one (title, snippet) pair
	Classify(ctx context.Context, title, snippet string) (models.SentimentResult, error)
}

// Cascade tries an ordered list of classifier tiers until one succeeds.
// The keyword fallback is always appended as the final tier, so a cascade
// as a whole cannot fail and callers never handle classification errors.
type Cascade struct {
	tiers []Classifier
}

// NewCascade creates new cascade from the given remote tiers. Nil entries
// (unconfigured tiers) are skipped.
func NewCascade(remote ...Classifier) *Cascade {
	tiers := make([]Classifier, 0, len(remote)+1)
	for _, c := range remote {
		if c != nil {
			tiers = append(tiers, c)
		}
	}
	tiers = append(tiers, NewKeyword())
	return &Cascade{tiers: tiers}
}

// Classify runs the cascade. A tier failure (transport error, bad payload,
// timeout) falls through to the next tier and is logged, never propagated.
func (c *Cascade) Classify(ctx context.Context, log *zap.Logger, title, snippet string) models.SentimentResult {
	last := len(c.tiers) - 1
	for i, tier := range c.tiers {
		result, err := tier.Classify(ctx, title, snippet)
		if err == nil {
			return result
		}
		if i < last {
			log.Warn("sentiment tier failed, falling through",
				zap.String("tier", tier.Name()),
				zap.String("next", c.tiers[i+1].Name()),
				zap.Error(err),
			)
		}
	}

	// Unreachable: the keyword tier is infallible. Kept so the compiler
	// sees a return on every path.
	result, _ := NewKeyword().Classify(ctx, title, snippet)
	return result
}
