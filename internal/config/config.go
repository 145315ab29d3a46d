// internal/config/config.go
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	appErrors "github.com/unclebandit/campaign-generator/internal/errors"
)

const DefaultModel = "gemini-2.5-flash"

type Config struct {
	Port string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	DatabaseURL string
	AMQPURL     string

	LogLevel       string
	LogDevelopment bool

	SessionTTL  time.Duration
	MaxSessions int
}

// Load reads .env (if present) and the process environment. A missing API key is a ConfigError.
func Load() (*Config, error) {
	cfg := read()
	if cfg.GeminiAPIKey == "" {
		return nil, appErrors.NewConfigError("API_KEY")
	}
	return cfg, nil
}

// LoadWorker is Load for cmd/worker, which needs the broker and the database but no model.
func LoadWorker() (*Config, error) {
	cfg := read()
	if cfg.DatabaseURL == "" {
		return nil, appErrors.NewConfigError("DATABASE_URL")
	}
	if cfg.AMQPURL == "" {
		return nil, appErrors.NewConfigError("AMQP_URL")
	}
	return cfg, nil
}

func read() *Config {
	// a missing .env is fine, the OS environment is used as-is
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("GEMINI_MODEL", DefaultModel)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DEVELOPMENT", false)
	v.SetDefault("SESSION_TTL", time.Hour)
	v.SetDefault("MAX_SESSIONS", 10000)
	_ = v.BindEnv("API_KEY", "API_KEY", "GEMINI_API_KEY")
	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetString("PORT"),
		GeminiAPIKey:   strings.TrimSpace(v.GetString("API_KEY")),
		GeminiModel:    v.GetString("GEMINI_MODEL"),
		GeminiBaseURL:  v.GetString("GEMINI_BASE_URL"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		AMQPURL:        v.GetString("AMQP_URL"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogDevelopment: v.GetBool("LOG_DEVELOPMENT"),
		SessionTTL:     v.GetDuration("SESSION_TTL"),
		MaxSessions:    v.GetInt("MAX_SESSIONS"),
	}

	if cfg.GeminiModel == "" {
		cfg.GeminiModel = DefaultModel
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = time.Hour
	}
	return cfg
}

func (c *Config) Addr() string {
	return ":" + c.Port
}
