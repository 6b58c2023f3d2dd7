package config

import (
	"os"
	"path/filepath"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{Token: "123:abc"},
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
telegram:
  token: "123:abc"
  admin_id: 42
  run_mode: "longpoll"
logging:
  level: "debug"
  format: "json"
database:
  host: "localhost"
  port: "5432"
  user: "bot"
session:
  ttl_minutes: 30
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Telegram.Token != "123:abc" {
		t.Errorf("token = %q", cfg.Telegram.Token)
	}
	if cfg.Telegram.AdminID != 42 {
		t.Errorf("admin_id = %d", cfg.Telegram.AdminID)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("logging format = %q", cfg.Logging.Format)
	}
	if cfg.Session.TTLMinutes != 30 {
		t.Errorf("session ttl = %d", cfg.Session.TTLMinutes)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != "5432" {
		t.Errorf("database = %+v", cfg.Database)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNormalizeRequiresToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := validConfig()
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q", cfg.Telegram.RunMode)
	}
	if cfg.Locale.Dir != "lang" || cfg.Locale.DefaultLanguage != "en" {
		t.Errorf("locale defaults = %+v", cfg.Locale)
	}
	if cfg.Knowledge.QnAPath != "data/qna.json" {
		t.Errorf("qna path = %q", cfg.Knowledge.QnAPath)
	}
	if cfg.Embedding.SimilarityThreshold != 0.8 {
		t.Errorf("threshold = %v", cfg.Embedding.SimilarityThreshold)
	}
	if cfg.Session.TTLMinutes != 60 || cfg.Session.CleanupMinutes != 10 {
		t.Errorf("session defaults = %+v", cfg.Session)
	}
}

func TestNormalizePollingAlias(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "Polling"
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if cfg.Telegram.RunMode != RunModeLongpoll {
		t.Errorf("run_mode = %q", cfg.Telegram.RunMode)
	}
}

func TestNormalizeWebhookRequirements(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = RunModeWebhook
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error without webhook url")
	}

	cfg.Webhook.URL = "https://bot.example.com/hook"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error without webhook listen")
	}

	cfg.Webhook.Listen = "0.0.0.0"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error without webhook port")
	}

	cfg.Webhook.Port = 8443
	if err := Normalize(cfg); err != nil {
		t.Fatalf("Normalize: %v", err)
	}
}

func TestNormalizeInvalidRunMode(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.RunMode = "carrier-pigeon"
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for unknown run mode")
	}
}

func TestNormalizeThresholdAboveOne(t *testing.T) {
	cfg := validConfig()
	cfg.Embedding.SimilarityThreshold = 1.5
	if err := Normalize(cfg); err == nil {
		t.Fatal("expected error for threshold > 1")
	}
}
