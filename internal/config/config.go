package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	GeminiAPIKey    string     `env:"GEMINI_API_KEY,required,notEmpty"`
	GeminiModel     string     `env:"GEMINI_MODEL"      envDefault:"gemini-1.5-flash"`
	GeminiBaseURL   string     `env:"GEMINI_BASE_URL"   envDefault:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	SummaryMaxChars int        `env:"SUMMARY_MAX_CHARS" envDefault:"12000"`
	HTTPAddr        string     `env:"HTTP_ADDR"         envDefault:"0.0.0.0:10000"`
	MaxUploadBytes  int64      `env:"MAX_UPLOAD_BYTES"  envDefault:"33554432"`
	LogLevel        slog.Level `env:"LOG_LEVEL"         envDefault:"INFO"`
}

// Load reads the optional .env file and then parses the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env file: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.SummaryMaxChars < 0 {
		return Config{}, fmt.Errorf("SUMMARY_MAX_CHARS must be >= 0 (got %d)", cfg.SummaryMaxChars)
	}
	if cfg.MaxUploadBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD_BYTES must be > 0 (got %d)", cfg.MaxUploadBytes)
	}

	return cfg, nil
}
