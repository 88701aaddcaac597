package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv     = "CYBERHAWK_CONFIG"
	databasePathEnv   = "CYBERHAWK_DB_PATH"
	logLevelEnv       = "CYBERHAWK_LOG_LEVEL"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database      DatabaseConfig     `yaml:"database"`
	Logging       LoggingConfig      `yaml:"logging"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Sources       SourcesConfig      `yaml:"sources"`
	Reporting     ReportingConfig    `yaml:"reporting"`
	Notifications NotificationConfig `yaml:"notifications"`
	Reputation    ReputationConfig   `yaml:"reputation"`
}

// DatabaseConfig locates the SQLite evidence database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SchedulerConfig defines how often collection cycles run.
type SchedulerConfig struct {
	IntervalHours int `yaml:"intervalHours"`
}

// SourcesConfig lists the platforms to collect from and their targets.
type SourcesConfig struct {
	Platforms        []string `yaml:"platforms"`
	Keywords         []string `yaml:"keywords"`
	NewsURLs         []string `yaml:"newsUrls"`
	ForumURLs        []string `yaml:"forumUrls"`
	Subreddits       []string `yaml:"subreddits"`
	TelegramChannels []string `yaml:"telegramChannels"`
	NitterInstances  []string `yaml:"nitterInstances"`
	OnionURLs        []string `yaml:"onionUrls"`
	TorProxy         string   `yaml:"torProxy"`
	ItemLimit        int      `yaml:"itemLimit"`
}

// ReportingConfig controls the daily summary window.
type ReportingConfig struct {
	WindowDays int `yaml:"windowDays"`
	TopSources int `yaml:"topSources"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// ReputationConfig enables IP context lookups for high-tier evidence.
type ReputationConfig struct {
	Enabled    bool   `yaml:"enabled"`
	IPInfoBase string `yaml:"ipinfoBase"`
	IPAPIBase  string `yaml:"ipapiBase"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Sources.Platforms) == 0 {
		cfg.Sources.Platforms = defaultConfig().Sources.Platforms
	}
	if len(cfg.Sources.Keywords) == 0 {
		cfg.Sources.Keywords = defaultConfig().Sources.Keywords
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Database.Path != "" {
		base.Database = override.Database
	}

	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Scheduler.IntervalHours > 0 {
		base.Scheduler.IntervalHours = override.Scheduler.IntervalHours
	}

	if len(override.Sources.Platforms) > 0 {
		base.Sources.Platforms = override.Sources.Platforms
	}
	if len(override.Sources.Keywords) > 0 {
		base.Sources.Keywords = override.Sources.Keywords
	}
	if len(override.Sources.NewsURLs) > 0 {
		base.Sources.NewsURLs = override.Sources.NewsURLs
	}
	if len(override.Sources.ForumURLs) > 0 {
		base.Sources.ForumURLs = override.Sources.ForumURLs
	}
	if len(override.Sources.Subreddits) > 0 {
		base.Sources.Subreddits = override.Sources.Subreddits
	}
	if len(override.Sources.TelegramChannels) > 0 {
		base.Sources.TelegramChannels = override.Sources.TelegramChannels
	}
	if len(override.Sources.NitterInstances) > 0 {
		base.Sources.NitterInstances = override.Sources.NitterInstances
	}
	if len(override.Sources.OnionURLs) > 0 {
		base.Sources.OnionURLs = override.Sources.OnionURLs
	}
	if override.Sources.TorProxy != "" {
		base.Sources.TorProxy = override.Sources.TorProxy
	}
	if override.Sources.ItemLimit > 0 {
		base.Sources.ItemLimit = override.Sources.ItemLimit
	}

	if override.Reporting.WindowDays > 0 {
		base.Reporting.WindowDays = override.Reporting.WindowDays
	}
	if override.Reporting.TopSources > 0 {
		base.Reporting.TopSources = override.Reporting.TopSources
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Reputation.Enabled {
		base.Reputation.Enabled = true
	}
	if override.Reputation.IPInfoBase != "" {
		base.Reputation.IPInfoBase = override.Reputation.IPInfoBase
	}
	if override.Reputation.IPAPIBase != "" {
		base.Reputation.IPAPIBase = override.Reputation.IPAPIBase
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Database:  DatabaseConfig{Path: "cyberhawk.db"},
		Logging:   LoggingConfig{Level: "info"},
		Scheduler: SchedulerConfig{IntervalHours: 6},
		Sources: SourcesConfig{
			Platforms: []string{"news", "reddit", "twitter", "telegram"},
			Keywords: []string{
				"TNI AU", "cyber attack", "malware", "ransomware",
				"data breach", "hacking", "cybersecurity",
				"threat intelligence", "vulnerability",
			},
			NewsURLs: []string{
				"https://www.antaranews.com/berita/teknologi",
				"https://tekno.kompas.com/keamanan-siber",
			},
			Subreddits:       []string{"cybersecurity", "netsec", "InfoSec"},
			TelegramChannels: []string{"security", "cybersec"},
			TorProxy:         "socks5://127.0.0.1:9050",
			ItemLimit:        20,
		},
		Reporting: ReportingConfig{WindowDays: 1, TopSources: 5},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{BotToken: "", ChatID: ""},
		},
		Reputation: ReputationConfig{Enabled: false},
	}
}
