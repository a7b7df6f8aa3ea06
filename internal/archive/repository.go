package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/selivandex/crypto-news/internal/adapters/database"
	"github.com/selivandex/crypto-news/pkg/models"
)

// Repository keeps a history of every enriched article in postgres. The
// archive is observational: the serving path never reads it, so failures
// here are logged and swallowed by the caller.
type Repository struct {
	db *database.DB
}

// NewRepository creates new archive repository
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Save upserts enriched articles keyed by url, refreshing sentiment on
// re-observation.
func (r *Repository) Save(ctx context.Context, log *zap.Logger, articles []models.EnrichedArticle) error {
	if len(articles) == 0 {
		return nil
	}

	tx, err := r.db.DB().BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO enriched_articles (
			url, title, source_name, published_at, snippet,
			tickers, sentiment, score, trust_score, enriched_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (url) DO UPDATE SET
			sentiment = EXCLUDED.sentiment,
			score = EXCLUDED.score,
			enriched_at = EXCLUDED.enriched_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	saved := 0
	for _, a := range articles {
		_, err := stmt.ExecContext(ctx,
			a.URL,
			a.Title,
			a.SourceName,
			a.PublishedAt,
			a.Snippet,
			pq.Array(a.Tickers),
			string(a.Sentiment.Sentiment),
			a.Sentiment.Score,
			a.TrustScore,
			time.Now(),
		)
		if err != nil {
			log.Warn("failed to archive article",
				zap.String("url", a.URL),
				zap.Error(err),
			)
			continue
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	log.Debug("archived enriched articles",
		zap.Int("total", len(articles)),
		zap.Int("saved", saved),
	)

	return nil
}

// RecentBySentiment returns archived articles with the given label since
// the cutoff, newest first.
func (r *Repository) RecentBySentiment(ctx context.Context, sentiment models.Sentiment, since time.Duration, limit int) ([]models.EnrichedArticle, error) {
	cutoff := time.Now().Add(-since)

	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT url, title, source_name, published_at, snippet,
		       tickers, sentiment, score, trust_score
		FROM enriched_articles
		WHERE sentiment = $1 AND published_at > $2
		ORDER BY published_at DESC
		LIMIT $3
	`, string(sentiment), cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query archive: %w", err)
	}
	defer rows.Close()

	articles := make([]models.EnrichedArticle, 0)
	for rows.Next() {
		var a models.EnrichedArticle
		var label string
		var tickers pq.StringArray

		err := rows.Scan(
			&a.URL,
			&a.Title,
			&a.SourceName,
			&a.PublishedAt,
			&a.Snippet,
			&tickers,
			&label,
			&a.Sentiment.Score,
			&a.TrustScore,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan archive row: %w", err)
		}

		a.Tickers = tickers
		a.Sentiment.Sentiment = models.Sentiment(label)
		a.Sentiment.Emoji = models.EmojiFor(a.Sentiment.Sentiment)
		articles = append(articles, a)
	}

	return articles, rows.Err()
}
