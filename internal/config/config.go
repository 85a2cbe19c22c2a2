package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration, populated from the environment.
// Game-balance tunables live here rather than as hard-coded constants.
type Config struct {
	HTTPAddr    string     `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel    slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	LogFormat   string     `env:"LOG_FORMAT" envDefault:"text"`
	DatabaseURL string     `env:"DATABASE_URL"`

	// PerfectCoverage is the canvas coverage percent that counts as
	// perfect quality.
	PerfectCoverage float64 `env:"PERFECT_COVERAGE" envDefault:"30"`
	// GalleryLimit caps the number of retained gallery pieces.
	GalleryLimit int `env:"GALLERY_LIMIT" envDefault:"100"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
