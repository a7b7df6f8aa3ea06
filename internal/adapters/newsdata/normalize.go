package newsdata

import (
	"regexp"
	"strings"
	"time"

	"github.com/selivandex/crypto-news/pkg/models"
)

// tickerRegex matches the fixed vocabulary of common crypto ticker symbols
// anywhere in title+description, case-insensitively.
var tickerRegex = regexp.MustCompile(`(?i)\b(BTC|ETH|SOL|DOGE|XRP|ADA|USDT|USDC|BNB|XLM|LINK|SHIB|AVAX|MATIC)\b`)

// pubDateFormats are the timestamp layouts newsdata.io has been seen using.
var pubDateFormats = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// Normalize parses one loosely-shaped upstream record into the strict
// article type the pipeline works with. Missing fields get explicit
// defaults: url falls back from link to url, source from name to id to
// "unknown", and an absent or unparseable publish time becomes now.
func Normalize(raw models.RawArticle, now time.Time) models.NormalizedArticle {
	articleURL := raw.Link
	if articleURL == "" {
		articleURL = raw.URL
	}

	sourceName := raw.SourceName
	if sourceName == "" {
		sourceName = raw.SourceID
	}
	if sourceName == "" {
		sourceName = "unknown"
	}

	snippet := raw.Desc
	if snippet == "" {
		snippet = raw.Content
	}

	return models.NormalizedArticle{
		Title:       raw.Title,
		URL:         articleURL,
		SourceName:  sourceName,
		PublishedAt: parsePubDate(raw, now),
		Snippet:     snippet,
		Tickers:     parseTickers(raw),
	}
}

func parsePubDate(raw models.RawArticle, now time.Time) time.Time {
	value := raw.PubDate
	if value == "" {
		value = raw.PubDateAlt
	}
	if value == "" {
		return now
	}
	for _, layout := range pubDateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return now
}

// parseTickers merges tickers declared by the API with regex matches over
// title+description, uppercased and deduplicated in first-seen order.
func parseTickers(raw models.RawArticle) []string {
	seen := make(map[string]struct{})
	tickers := make([]string, 0)

	add := func(t string) {
		t = strings.ToUpper(t)
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		tickers = append(tickers, t)
	}

	for _, t := range raw.Tickers {
		add(t)
	}

	for _, match := range tickerRegex.FindAllString(raw.Title+" "+raw.Desc, -1) {
		add(match)
	}

	return tickers
}
