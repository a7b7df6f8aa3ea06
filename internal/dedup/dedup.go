package dedup

import (
	"strings"

	"go.uber.org/zap"

	"github.com/selivandex/crypto-news/pkg/models"
)

// Deduplicate removes redundant articles from an ordered list, preserving
// first-occurrence order. The primary key is the exact trimmed URL; the
// secondary key is case-insensitive title equality against already-accepted
// articles. Articles with an empty URL cannot be deduplicated safely and
// are dropped as noise.
func Deduplicate(log *zap.Logger, articles []models.NormalizedArticle) []models.NormalizedArticle {
	seen := make(map[string]struct{})
	deduplicated := make([]models.NormalizedArticle, 0, len(articles))

	for _, article := range articles {
		url := strings.TrimSpace(article.URL)
		title := strings.TrimSpace(article.Title)

		if url == "" {
			log.Debug("skipping article with no URL", zap.String("title", title))
			continue
		}

		if _, ok := seen[url]; ok {
			log.Debug("duplicate URL found", zap.String("url", url))
			continue
		}

		// Exact title equality only, so a linear scan over accepted
		// articles is the whole algorithm.
		titleKey := strings.ToLower(title)
		duplicate := false
		for _, kept := range deduplicated {
			if strings.ToLower(strings.TrimSpace(kept.Title)) == titleKey {
				duplicate = true
				break
			}
		}
		if duplicate {
			log.Debug("duplicate title found", zap.String("title", title))
			continue
		}

		seen[url] = struct{}{}
		deduplicated = append(deduplicated, article)
	}

	log.Info("deduplication complete",
		zap.Int("before", len(articles)),
		zap.Int("after", len(deduplicated)),
		zap.Int("removed", len(articles)-len(deduplicated)),
	)

	return deduplicated
}
