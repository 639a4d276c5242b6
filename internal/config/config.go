package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	ModeEmbedded = "embedded"
	ModeHosted   = "hosted"

	// FallbackStrict aborts startup when the hosted backend is unreachable;
	// FallbackEmbedded deterministically opens the embedded store instead.
	FallbackStrict   = "strict"
	FallbackEmbedded = "embedded"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Mode     string         `yaml:"mode"`
	Embedded EmbeddedConfig `yaml:"embedded"`
	Hosted   HostedConfig   `yaml:"hosted"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Session  SessionConfig  `yaml:"session"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type EmbeddedConfig struct {
	Path string `yaml:"path"`
}

type HostedConfig struct {
	URL string `yaml:"url"`
	Key string `yaml:"key"`

	// Forced mirrors the platform-detection flag: when the process runs on a
	// managed host there is no writable filesystem, so hosted mode wins over
	// the configured mode selector.
	Forced   bool   `yaml:"forced"`
	Fallback string `yaml:"fallback"`
}

type OpenAIConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

type SessionConfig struct {
	Secret     string `yaml:"secret"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

func Load(configFile string) *Config {
	c := &Config{
		Server:   ServerConfig{Port: 5000},
		Log:      LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Mode:     ModeEmbedded,
		Embedded: EmbeddedConfig{Path: "journal.db"},
		Hosted:   HostedConfig{Fallback: FallbackStrict},
		OpenAI:   OpenAIConfig{BaseURL: "https://api.openai.com", Model: "gpt-4o"},
		Session:  SessionConfig{TTLMinutes: 60},
	}

	paths := []string{"etc/config-dev.yaml", "/etc/sentient-journal/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	envOverride(&c.Mode, "MODE")
	envOverride(&c.Embedded.Path, "DATABASE_PATH")
	envOverride(&c.Hosted.URL, "SUPABASE_URL")
	envOverride(&c.Hosted.Key, "SUPABASE_KEY")
	envOverride(&c.Hosted.Fallback, "HOSTED_FALLBACK")
	envOverride(&c.OpenAI.BaseURL, "OPENAI_BASE_URL")
	envOverride(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	envOverride(&c.OpenAI.Model, "OPENAI_MODEL")
	envOverride(&c.Session.Secret, "SESSION_SECRET")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverrideInt(&c.Server.Port, "PORT")
	envOverrideBool(&c.Hosted.Forced, "MANAGED_HOST")

	// A managed host has no writable disk for the embedded store.
	if c.Hosted.Forced {
		c.Mode = ModeHosted
	}

	return c
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// HostedDSN assembles the connection string for the hosted Postgres backend
// from its URL/key pair.
func (c *Config) HostedDSN() string {
	if c.Hosted.Key == "" {
		return c.Hosted.URL
	}
	return fmt.Sprintf("%s password=%s", c.Hosted.URL, c.Hosted.Key)
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envOverrideBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
