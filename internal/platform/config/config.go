// Package config loads application configuration from the environment.
//
// Values come from struct defaults, then an optional .env file and the process
// environment, and are validated before use.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config is the root application configuration.
type Config struct {
	HTTPAddr      string  `default:":8080" validate:"required"`
	BaseCapital   float64 `default:"10000" validate:"gt=0"`
	StaticDir     string  `default:"./static"`
	RunMigrations bool    `default:"true"`

	Log    LogConfig
	DB     DBConfig
	Redis  RedisConfig
	Market MarketConfig
	LLM    LLMConfig
}

// LogConfig controls the global logger.
type LogConfig struct {
	Level  string `default:"info" validate:"oneof=trace debug info warn error"`
	Format string `default:"console" validate:"oneof=json console"`
}

// DBConfig selects the gorm dialect and its DSN.
type DBConfig struct {
	Driver string `default:"sqlite" validate:"oneof=sqlite postgres"`
	DSN    string `default:"./data/etf_advisor.db" validate:"required"`
}

// RedisConfig holds the price cache connection. An empty Host disables Redis.
type RedisConfig struct {
	Host     string
	Port     string `default:"6379"`
	Password string
}

// Enabled reports whether a Redis host is configured.
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// MarketConfig configures the Twelve Data market API. Without an API key the
// service runs on synthetic data only.
type MarketConfig struct {
	APIKey  string
	BaseURL string        `default:"https://api.twelvedata.com" validate:"url"`
	Timeout time.Duration `default:"10s" validate:"gt=0"`
}

// LLMConfig selects the natural-language provider.
type LLMConfig struct {
	Provider string `default:"deterministic" validate:"oneof=gemini openai deepseek deterministic none"`
	APIKey   string
	BaseURL  string
	Model    string
}

// Load reads configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	envStr(&cfg.HTTPAddr, "HTTP_ADDR")
	envStr(&cfg.StaticDir, "STATIC_DIR")
	envStr(&cfg.Log.Level, "LOG_LEVEL")
	envStr(&cfg.Log.Format, "LOG_FORMAT")
	envStr(&cfg.DB.Driver, "DB_DRIVER")
	envStr(&cfg.DB.DSN, "DB_DSN")
	envStr(&cfg.Redis.Host, "REDIS_HOST")
	envStr(&cfg.Redis.Port, "REDIS_PORT")
	envStr(&cfg.Redis.Password, "REDIS_PASSWORD")
	envStr(&cfg.Market.APIKey, "TWELVE_DATA_API_KEY")
	envStr(&cfg.Market.BaseURL, "TWELVE_DATA_BASE_URL")
	envStr(&cfg.LLM.Provider, "LLM_PROVIDER")
	envStr(&cfg.LLM.APIKey, "LLM_API_KEY")
	envStr(&cfg.LLM.BaseURL, "LLM_BASE_URL")
	envStr(&cfg.LLM.Model, "LLM_MODEL")

	if err := envFloat(&cfg.BaseCapital, "BASE_CAPITAL"); err != nil {
		return err
	}
	if err := envBool(&cfg.RunMigrations, "RUN_MIGRATIONS"); err != nil {
		return err
	}
	return envDuration(&cfg.Market.Timeout, "TWELVE_DATA_TIMEOUT")
}

func envStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envFloat(dst *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	*dst = f
	return nil
}

func envBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	*dst = b
	return nil
}

func envDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parse %s=%q: %w", key, v, err)
	}
	*dst = d
	return nil
}
