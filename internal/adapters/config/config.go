package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration
type Config struct {
	Server   ServerConfig   `envconfig:"SERVER"`
	News     NewsConfig     `envconfig:"NEWS"`
	AI       AIConfig       `envconfig:"AI"`
	Cache    CacheConfig    `envconfig:"CACHE"`
	Redis    RedisConfig    `envconfig:"REDIS"`
	Archive  ArchiveConfig  `envconfig:"ARCHIVE"`
	Telegram TelegramConfig `envconfig:"TELEGRAM"`
	Worker   WorkerConfig   `envconfig:"WORKER"`
	Logging  LoggingConfig  `envconfig:"LOGGING"`
}

// WorkerConfig represents the optional warm-cache background worker
type WorkerConfig struct {
	RefreshEnabled  bool          `envconfig:"WORKER_REFRESH_ENABLED" default:"false"`
	RefreshInterval time.Duration `envconfig:"WORKER_REFRESH_INTERVAL" default:"10m"`
}

// ServerConfig represents HTTP server parameters
type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// NewsConfig represents upstream news API parameters
type NewsConfig struct {
	APIKey           string `envconfig:"NEWSDATA_API_KEY" required:"true"`
	Query            string `envconfig:"NEWS_QUERY" default:"cryptocurrency AND (Regulation OR Investigation OR Investment OR Institutional OR Hack OR Exploit OR Vulnerability OR AI OR Partnership OR Crash OR Surge OR \"All-Time High\" OR Record OR Dip)"`
	Language         string `envconfig:"NEWS_LANGUAGE" default:"en"`
	Category         string `envconfig:"NEWS_CATEGORY" default:"business"`
	PageSize         int    `envconfig:"NEWS_PAGE_SIZE" default:"10"`
	MaxRetries       int    `envconfig:"NEWS_MAX_RETRIES" default:"5"`
	InitialBackoffMs int    `envconfig:"NEWS_INITIAL_BACKOFF_MS" default:"1000"`
}

// AIConfig represents sentiment classifier tier configuration
type AIConfig struct {
	Provider          string `envconfig:"AI_PROVIDER" default:"claude"` // claude or openai
	ClaudeAPIKey      string `envconfig:"AI_CLAUDE_API_KEY" required:"false"`
	ClaudeModel       string `envconfig:"AI_CLAUDE_MODEL" default:"claude-3-haiku-20240307"`
	OpenAIAPIKey      string `envconfig:"AI_OPENAI_API_KEY" required:"false"`
	OpenAIModel       string `envconfig:"AI_OPENAI_MODEL" default:"gpt-4o-mini"`
	InferenceEndpoint string `envconfig:"AI_INFERENCE_ENDPOINT" required:"false"`
	InferenceAPIKey   string `envconfig:"AI_INFERENCE_API_KEY" required:"false"`
}

// CacheConfig represents cache-aside parameters
type CacheConfig struct {
	TTLSeconds int64 `envconfig:"CACHE_TTL_SECONDS" default:"900"`
}

// RedisConfig represents redis connection parameters
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" required:"false"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// ArchiveConfig represents the optional postgres article archive
type ArchiveConfig struct {
	Enabled        bool   `envconfig:"ARCHIVE_ENABLED" default:"false"`
	Host           string `envconfig:"ARCHIVE_DB_HOST" default:"localhost"`
	Port           int    `envconfig:"ARCHIVE_DB_PORT" default:"5432"`
	Name           string `envconfig:"ARCHIVE_DB_NAME" default:"cryptonews"`
	User           string `envconfig:"ARCHIVE_DB_USER" required:"false"`
	Password       string `envconfig:"ARCHIVE_DB_PASSWORD" required:"false"`
	SSLMode        string `envconfig:"ARCHIVE_DB_SSLMODE" default:"disable"`
	MigrationsPath string `envconfig:"ARCHIVE_MIGRATIONS_PATH" default:"migrations"`
}

// TelegramConfig represents the optional negative-news alert channel
type TelegramConfig struct {
	Enabled        bool    `envconfig:"TELEGRAM_ENABLED" default:"false"`
	BotToken       string  `envconfig:"TELEGRAM_BOT_TOKEN" required:"false"`
	ChatID         int64   `envconfig:"TELEGRAM_CHAT_ID" required:"false"`
	AlertThreshold float64 `envconfig:"TELEGRAM_ALERT_THRESHOLD" default:"0.2"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" default:""`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case "claude", "openai":
	default:
		return fmt.Errorf("unknown AI provider: %q (valid: claude, openai)", c.AI.Provider)
	}

	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("cache TTL must be positive, got %d", c.Cache.TTLSeconds)
	}

	if c.News.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1, got %d", c.News.MaxRetries)
	}

	if c.Archive.Enabled && c.Archive.User == "" {
		return fmt.Errorf("archive enabled but ARCHIVE_DB_USER not set")
	}

	if c.Telegram.Enabled && c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram alerts enabled but TELEGRAM_BOT_TOKEN not set")
	}

	return nil
}

// GetDSN returns the postgres connection string for the archive database
func (a *ArchiveConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		a.Host, a.Port, a.User, a.Password, a.Name, a.SSLMode)
}

// InitialBackoff returns the configured initial backoff as a duration
func (n *NewsConfig) InitialBackoff() time.Duration {
	return time.Duration(n.InitialBackoffMs) * time.Millisecond
}
