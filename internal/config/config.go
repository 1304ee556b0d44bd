// Package config loads service configuration from .worksphere.yaml via
// Viper, with defaults for every key and environment-variable overrides for
// connection URLs (WORKSPHERE_DATABASE_URL, WORKSPHERE_REDIS_URL).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/WorksphereAI/worksphereai-sub002/internal/observability"
)

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Assistant AssistantConfig
	Log       observability.LogConfig
	// EventLogPath is where the JSONL query event log is written.
	// Empty disables event logging.
	EventLogPath string
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port       int
	CORSOrigin string
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds the redis connection settings. An empty URL switches the
// session store to its in-process implementation.
type RedisConfig struct {
	URL string
}

// AssistantConfig bounds handler result sets.
type AssistantConfig struct {
	PageSize         int
	ApprovalPageSize int
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:       8090,
			CORSOrigin: "*",
		},
		Database: DatabaseConfig{
			URL: "postgres://localhost:5432/worksphere?sslmode=disable",
		},
		Assistant: AssistantConfig{
			PageSize:         10,
			ApprovalPageSize: 50,
		},
		Log: observability.LogConfig{
			Level:  "info",
			Format: "json",
		},
		EventLogPath: ".worksphere_events.jsonl",
	}
}

// Load reads .worksphere.yaml from basePath. A missing file returns defaults.
func Load(basePath string) (*Config, error) {
	cfg := defaultConfig()

	v := viper.New()
	v.SetConfigName(".worksphere")
	v.SetConfigType("yaml")
	v.AddConfigPath(basePath)

	v.SetEnvPrefix("worksphere")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set Viper defaults so missing keys fall back gracefully.
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.cors_origin", cfg.Server.CORSOrigin)
	v.SetDefault("database.url", cfg.Database.URL)
	v.SetDefault("redis.url", cfg.Redis.URL)
	v.SetDefault("assistant.page_size", cfg.Assistant.PageSize)
	v.SetDefault("assistant.approval_page_size", cfg.Assistant.ApprovalPageSize)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("event_log_path", cfg.EventLogPath)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading .worksphere.yaml: %w", err)
		}
	}

	cfg.Server.Port = v.GetInt("server.port")
	cfg.Server.CORSOrigin = v.GetString("server.cors_origin")
	cfg.Database.URL = v.GetString("database.url")
	cfg.Redis.URL = v.GetString("redis.url")
	cfg.Assistant.PageSize = v.GetInt("assistant.page_size")
	cfg.Assistant.ApprovalPageSize = v.GetInt("assistant.approval_page_size")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.Log.File = v.GetString("log.file")
	cfg.EventLogPath = v.GetString("event_log_path")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database.url must not be empty")
	}
	return nil
}
