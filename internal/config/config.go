// Package config centralizes environment-driven settings. Provider API keys
// are deliberately not here; the router reads them per request so a missing
// key only blocks that model.
package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	DefaultModel   string        `env:"CHATTERLIT_MODEL" envDefault:"gpt-5-mini"`
	CatalogPath    string        `env:"CHATTERLIT_CATALOG"`
	RequestTimeout time.Duration `env:"CHATTERLIT_TIMEOUT" envDefault:"2m"`
	ImageSize      string        `env:"CHATTERLIT_IMAGE_SIZE" envDefault:"1024x1024"`

	Archive ArchiveConfig
}

type ArchiveConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT" envDefault:"minio:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	UseSSL    bool   `env:"MINIO_USE_SSL"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"chatterlit-images"`
}

// Enabled reports whether archive credentials are present.
func (c ArchiveConfig) Enabled() bool {
	return c.AccessKey != "" && c.SecretKey != ""
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
