package models

// Sentiment is one of the three fixed article sentiment labels.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Score thresholds used when a classifier tier returns a score without an
// explicit label.
const (
	PositiveThreshold = 0.65
	NegativeThreshold = 0.35
)

// SentimentResult is the outcome of classifying one (title, snippet) pair.
type SentimentResult struct {
	Sentiment Sentiment `json:"sentiment"`
	Score     float64   `json:"score"`
	Emoji     string    `json:"emoji"`
}

// Normalize clamps the score to [0,1], derives the label from the score
// thresholds when no explicit label was supplied, and sets the display
// glyph. Every classifier tier's raw output passes through here.
func Normalize(label Sentiment, score float64, labelExplicit bool) SentimentResult {
	score = ClampScore(score)

	sentiment := label
	if !labelExplicit {
		switch {
		case score >= PositiveThreshold:
			sentiment = SentimentPositive
		case score <= NegativeThreshold:
			sentiment = SentimentNegative
		default:
			sentiment = SentimentNeutral
		}
	}

	return SentimentResult{
		Sentiment: sentiment,
		Score:     score,
		Emoji:     EmojiFor(sentiment),
	}
}

// ClampScore bounds a score to the [0,1] interval.
func ClampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// EmojiFor returns the fixed display glyph for a sentiment label.
func EmojiFor(s Sentiment) string {
	switch s {
	case SentimentPositive:
		return "🐂"
	case SentimentNegative:
		return "🐻"
	default:
		return "⚪"
	}
}

// ParseSentiment maps a free-form label to a Sentiment, reporting whether
// the input named one of the two polar labels explicitly.
func ParseSentiment(label string) (Sentiment, bool) {
	switch label {
	case "Positive", "positive":
		return SentimentPositive, true
	case "Negative", "negative":
		return SentimentNegative, true
	default:
		return SentimentNeutral, false
	}
}
