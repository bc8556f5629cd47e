// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Server        ServerConfig            `mapstructure:"server"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	APIs          APIsConfig              `mapstructure:"apis"`
	Analysis      AnalysisConfig          `mapstructure:"analysis"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
	RegistryPath  string                  `mapstructure:"registry_path"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port        int `mapstructure:"port"`
	HealthPort  int `mapstructure:"health_port"`
	ReadTimeout int `mapstructure:"read_timeout"` // milliseconds
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// APIsConfig holds settings for the review providers.
type APIsConfig struct {
	NaverAPI struct {
		GraphQLURL      string  `mapstructure:"graphql_url"`
		MetadataTimeout int     `mapstructure:"metadata_timeout"` // milliseconds
		ReviewsTimeout  int     `mapstructure:"reviews_timeout"`  // milliseconds
		PageSize        int     `mapstructure:"page_size"`
		RatePerSecond   float64 `mapstructure:"rate_per_second"`
	} `mapstructure:"naver_api"`

	NaverWeb struct {
		BaseURL         string  `mapstructure:"base_url"`
		MetadataTimeout int     `mapstructure:"metadata_timeout"` // milliseconds
		ReviewsTimeout  int     `mapstructure:"reviews_timeout"`  // milliseconds
		RatePerSecond   float64 `mapstructure:"rate_per_second"`
	} `mapstructure:"naver_web"`

	SerpAPI struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
		Engine  string `mapstructure:"engine"`
		Where   string `mapstructure:"where"`
		Timeout int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"serpapi"`
}

// AnalysisConfig controls caching and fallback behaviour of the orchestrator.
type AnalysisConfig struct {
	CachePrefix        string `mapstructure:"cache_prefix"`
	CacheTTL           string `mapstructure:"cache_ttl"`
	SyntheticEnabled   *bool  `mapstructure:"synthetic_enabled"`
	MergeProxySkeleton bool   `mapstructure:"merge_proxy_skeleton"`
	CacheSynthetic     bool   `mapstructure:"cache_synthetic"`
	HistoryEnabled     bool   `mapstructure:"history_enabled"`
}

// IsSyntheticEnabled defaults to true when unset.
func (a AnalysisConfig) IsSyntheticEnabled() bool {
	return a.SyntheticEnabled == nil || *a.SyntheticEnabled
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type ObservabilityConfig struct {
	ServiceName string `mapstructure:"service_name"`
}
