// Package config loads bot configuration from a YAML file with environment
// variable overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot related settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	AdminID int64  `yaml:"admin_id" envconfig:"TELEGRAM_ADMIN_ID"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

// RateLimitConfig holds settings for per-user rate limiting.
type RateLimitConfig struct {
	IntervalMS int `yaml:"interval_ms" envconfig:"RATE_LIMIT_INTERVAL_MS"`
}

// LocaleConfig points at localized prompt string files.
type LocaleConfig struct {
	Dir             string `yaml:"dir" envconfig:"LOCALE_DIR"`
	DefaultLanguage string `yaml:"default_language" envconfig:"LOCALE_DEFAULT_LANGUAGE"`
}

// KnowledgeConfig locates the curated question/answer data.
type KnowledgeConfig struct {
	QnAPath       string `yaml:"qna_path" envconfig:"KNOWLEDGE_QNA_PATH"`
	KnowledgePath string `yaml:"knowledge_path" envconfig:"KNOWLEDGE_PATH"`
}

// EmbeddingConfig describes the embedding backend used for semantic answer
// lookup. The backend speaks the Ollama embeddings HTTP API.
type EmbeddingConfig struct {
	BaseURL             string  `yaml:"base_url" envconfig:"EMBEDDING_BASE_URL"`
	Model               string  `yaml:"model" envconfig:"EMBEDDING_MODEL"`
	TimeoutSeconds      int     `yaml:"timeout_seconds" envconfig:"EMBEDDING_TIMEOUT_SECONDS"`
	SimilarityThreshold float64 `yaml:"similarity_threshold" envconfig:"EMBEDDING_SIMILARITY_THRESHOLD"`
}

// DatabaseConfig holds database connection settings. It mirrors
// database.Config field for field so the composition root can convert it
// directly; keeping the struct here leaves this package free of imports
// into the layers that log through the configured logger.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// SessionConfig bounds the lifetime of abandoned conversational forms.
type SessionConfig struct {
	TTLMinutes     int `yaml:"ttl_minutes" envconfig:"SESSION_TTL_MINUTES"`
	CleanupMinutes int `yaml:"cleanup_minutes" envconfig:"SESSION_CLEANUP_MINUTES"`
}

// Config aggregates the full bot configuration.
type Config struct {
	Telegram  TelegramConfig  `yaml:"telegram"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Logging   LoggingConfig   `yaml:"logging"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Database  DatabaseConfig  `yaml:"database"`
	Locale    LocaleConfig    `yaml:"locale"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Session   SessionConfig   `yaml:"session"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize performs basic validation of required configuration fields and adjusts defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if cfg.Locale.Dir == "" {
		cfg.Locale.Dir = "lang"
	}
	if cfg.Locale.DefaultLanguage == "" {
		cfg.Locale.DefaultLanguage = "en"
	}
	if cfg.Knowledge.QnAPath == "" {
		cfg.Knowledge.QnAPath = "data/qna.json"
	}
	if cfg.Knowledge.KnowledgePath == "" {
		cfg.Knowledge.KnowledgePath = "data/knowledge.json"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "nomic-embed-text"
	}
	if cfg.Embedding.TimeoutSeconds <= 0 {
		cfg.Embedding.TimeoutSeconds = 10
	}
	if cfg.Embedding.SimilarityThreshold <= 0 {
		cfg.Embedding.SimilarityThreshold = 0.8
	}
	if cfg.Embedding.SimilarityThreshold > 1 {
		return fmt.Errorf("embedding.similarity_threshold must be <= 1")
	}
	if cfg.Session.TTLMinutes <= 0 {
		cfg.Session.TTLMinutes = 60
	}
	if cfg.Session.CleanupMinutes <= 0 {
		cfg.Session.CleanupMinutes = 10
	}
	return nil
}
