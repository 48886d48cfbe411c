package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds what every process needs to reach the provider.
type Config struct {
	OpenAIAPIKey        string        `env:"OPENAI_API_KEY,required,notEmpty"`
	OpenAIBaseURL       string        `env:"OPENAI_BASE_URL"`
	OpenAIModel         string        `env:"OPENAI_MODEL"          envDefault:"gpt-4.1-mini"`
	MaxOutputTokens     int64         `env:"MAX_OUTPUT_TOKENS"     envDefault:"500"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT"       envDefault:"30s"`
	MaxRetries          int           `env:"MAX_RETRIES"           envDefault:"0"`
	RetryBackoff        time.Duration `env:"RETRY_BACKOFF"         envDefault:"1s"`
	RetryMaxBackoff     time.Duration `env:"RETRY_MAX_BACKOFF"     envDefault:"10s"`
	ProviderMinInterval time.Duration `env:"PROVIDER_MIN_INTERVAL" envDefault:"1s"`
	LogLevel            slog.Level    `env:"LOG_LEVEL"             envDefault:"INFO"`
	LogFile             string        `env:"LOG_FILE"`
}

// BotConfig extends Config with the Telegram front-end settings.
type BotConfig struct {
	Config

	Token        string  `env:"TOKEN,required,notEmpty"`
	AllowedUsers []int64 `env:"ALLOWED_USERS"`
	DBPath       string  `env:"DB_PATH"                 envDefault:"db.sqlite"`
}

// LoadDotEnv loads a .env file from the working directory when one exists.
// Variables already present in the environment win.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func Parse() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.validate()
}

func ParseBot() (BotConfig, error) {
	cfg, err := env.ParseAs[BotConfig]()
	if err != nil {
		return BotConfig{}, err
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error

	if c.MaxOutputTokens <= 0 {
		errs = append(errs, fmt.Errorf("MAX_OUTPUT_TOKENS must be positive, got %d", c.MaxOutputTokens))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout))
	}
	if c.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("MAX_RETRIES must not be negative, got %d", c.MaxRetries))
	}

	return errors.Join(errs...)
}
