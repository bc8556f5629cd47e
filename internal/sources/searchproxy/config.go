package searchproxy

import (
	"time"

	"sonnimal/internal/common/config"
)

type Config struct {
	BaseURL string
	APIKey  string
	Engine  string
	Where   string
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	serp := cfg.APIs.SerpAPI
	return &Config{
		BaseURL: serp.BaseURL,
		APIKey:  serp.APIKey,
		Engine:  serp.Engine,
		Where:   serp.Where,
		Timeout: config.GetDuration(serp.Timeout),
	}
}
