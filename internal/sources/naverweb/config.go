package naverweb

import (
	"time"

	"sonnimal/internal/common/config"
)

type Config struct {
	BaseURL         string
	MetadataTimeout time.Duration
	ReviewsTimeout  time.Duration
	RatePerSecond   float64
}

func LoadConfig(cfg *config.Config) *Config {
	web := cfg.APIs.NaverWeb
	return &Config{
		BaseURL:         web.BaseURL,
		MetadataTimeout: config.GetDuration(web.MetadataTimeout),
		ReviewsTimeout:  config.GetDuration(web.ReviewsTimeout),
		RatePerSecond:   web.RatePerSecond,
	}
}
