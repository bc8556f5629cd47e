package naverapi

import (
	"time"

	"sonnimal/internal/common/config"
)

type Config struct {
	GraphQLURL      string
	MetadataTimeout time.Duration
	ReviewsTimeout  time.Duration
	RatePerSecond   float64
}

func LoadConfig(cfg *config.Config) *Config {
	api := cfg.APIs.NaverAPI
	return &Config{
		GraphQLURL:      api.GraphQLURL,
		MetadataTimeout: config.GetDuration(api.MetadataTimeout),
		ReviewsTimeout:  config.GetDuration(api.ReviewsTimeout),
		RatePerSecond:   api.RatePerSecond,
	}
}
