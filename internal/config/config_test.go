package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Database.Path != "cyberhawk.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if len(cfg.Sources.Keywords) == 0 {
		t.Error("expected default keywords")
	}
	if cfg.Scheduler.IntervalHours != 6 {
		t.Errorf("interval = %d, want 6", cfg.Scheduler.IntervalHours)
	}
	if cfg.Reporting.WindowDays != 1 || cfg.Reporting.TopSources != 5 {
		t.Errorf("reporting defaults = %+v", cfg.Reporting)
	}
}

func TestLoadMergesFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := []byte(`
database:
  path: /var/lib/hawk/evidence.db
scheduler:
  intervalHours: 2
sources:
  platforms: [reddit]
  subreddits: [netsec]
  onionUrls: [http://example0000000000000.onion]
  torProxy: socks5://10.0.0.1:9050
reputation:
  enabled: true
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)
	t.Setenv(logLevelEnv, "debug")
	t.Setenv(telegramTokenEnv, "env-token")

	cfg := Load()

	if cfg.Database.Path != "/var/lib/hawk/evidence.db" {
		t.Errorf("database path = %q", cfg.Database.Path)
	}
	if cfg.Scheduler.IntervalHours != 2 {
		t.Errorf("interval = %d, want 2", cfg.Scheduler.IntervalHours)
	}
	if len(cfg.Sources.Platforms) != 1 || cfg.Sources.Platforms[0] != "reddit" {
		t.Errorf("platforms = %v", cfg.Sources.Platforms)
	}
	// fields absent from the file keep their defaults
	if len(cfg.Sources.Keywords) == 0 {
		t.Error("expected default keywords preserved")
	}
	if !cfg.Reputation.Enabled {
		t.Error("expected reputation enabled")
	}
	if cfg.Sources.TorProxy != "socks5://10.0.0.1:9050" {
		t.Errorf("tor proxy = %q", cfg.Sources.TorProxy)
	}
	if len(cfg.Sources.OnionURLs) != 1 {
		t.Errorf("onion urls = %v", cfg.Sources.OnionURLs)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Notifications.Telegram.BotToken != "env-token" {
		t.Errorf("bot token = %q, want env-token", cfg.Notifications.Telegram.BotToken)
	}
}

func TestLoadIgnoresBrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()
	if cfg.Database.Path != "cyberhawk.db" {
		t.Errorf("expected defaults on parse failure, got %q", cfg.Database.Path)
	}
}
