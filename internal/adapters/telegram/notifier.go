package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/selivandex/crypto-news/internal/adapters/config"
	"github.com/selivandex/crypto-news/pkg/logger"
	"github.com/selivandex/crypto-news/pkg/models"
)

// Notifier pushes strongly negative news to a Telegram chat.
type Notifier struct {
	api *tgbotapi.BotAPI
	cfg *config.TelegramConfig
}

// NewNotifier creates new Telegram notifier
func NewNotifier(cfg *config.TelegramConfig) (*Notifier, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	bot.Debug = false

	logger.Info("telegram notifier initialized",
		zap.String("bot_username", bot.Self.UserName),
	)

	return &Notifier{api: bot, cfg: cfg}, nil
}

// AlertNegativeNews sends one alert per article scoring at or below the
// configured threshold. Send failures are logged and skipped; alerting is
// best-effort and never blocks the serving path.
func (n *Notifier) AlertNegativeNews(log *zap.Logger, articles []models.EnrichedArticle) {
	for _, a := range articles {
		if a.Sentiment.Sentiment != models.SentimentNegative || a.Sentiment.Score > n.cfg.AlertThreshold {
			continue
		}

		text := fmt.Sprintf("%s *Negative crypto news*\n\n%s\n%s\n\nSource: %s\nScore: %.2f",
			a.Sentiment.Emoji, escapeMarkdown(a.Title), a.URL, escapeMarkdown(a.SourceName), a.Sentiment.Score)

		msg := tgbotapi.NewMessage(n.cfg.ChatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.DisableWebPagePreview = false

		if _, err := n.api.Send(msg); err != nil {
			log.Warn("failed to send telegram alert",
				zap.String("url", a.URL),
				zap.Error(err),
			)
			continue
		}

		log.Debug("telegram alert sent",
			zap.String("url", a.URL),
			zap.Float64("score", a.Sentiment.Score),
		)
	}
}

var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"`", "\\`",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
