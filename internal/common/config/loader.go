// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like APIS_SERPAPI_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	// LOAD BASE CONFIG
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// LOAD ENV CONFIG
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	// EXPAND ENV PLACEHOLDERS
	expandEnvVars(viper.GetViper())

	// Unmarshal final config
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	// DIRECT OVERRIDE IF STILL EMPTY
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the first location that has one
func loadEnvFile() {
	// Try multiple paths (for running from different directories)
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	// Also try to find project root by looking for go.mod
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				fmt.Printf("loaded .env from: %s\n", path)
				return
			}
		}
	}

	fmt.Printf(".env file not found, using system environment variables\n")
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Walk up directories looking for go.mod
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars replaces ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		// Unset variables expand to "" so defaults and overrides still apply.
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			if expanded := os.ExpandEnv(strVal); expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.APIs.SerpAPI.APIKey == "" {
		if val := os.Getenv("SERPAPI_API_KEY"); val != "" {
			cfg.APIs.SerpAPI.APIKey = val
		}
	}
	if cfg.Database.Redis.Address == "" {
		if val := os.Getenv("REDIS_ADDRESS"); val != "" {
			cfg.Database.Redis.Address = val
		}
	}

	// Database overrides
	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile() // Load env file first

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Expand environment variables before unmarshal
	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "sonnimal"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.HealthPort == 0 {
		cfg.Server.HealthPort = 8081
	}

	// Camunda defaults
	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	// Database defaults
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		// Timeout stays 0 so the activity registry timeout applies.
		if worker.MaxRetries == 0 {
			worker.MaxRetries = 3
		}
		cfg.Workers[key] = worker
	}

	// Provider defaults
	api := &cfg.APIs.NaverAPI
	if api.GraphQLURL == "" {
		api.GraphQLURL = "https://pcmap-api.place.naver.com/place/graphql"
	}
	if api.MetadataTimeout == 0 {
		api.MetadataTimeout = 5000
	}
	if api.ReviewsTimeout == 0 {
		api.ReviewsTimeout = 8000
	}
	if api.PageSize == 0 {
		api.PageSize = 50
	}

	web := &cfg.APIs.NaverWeb
	if web.BaseURL == "" {
		web.BaseURL = "https://m.place.naver.com"
	}
	if web.MetadataTimeout == 0 {
		web.MetadataTimeout = 5000
	}
	if web.ReviewsTimeout == 0 {
		web.ReviewsTimeout = 8000
	}

	serp := &cfg.APIs.SerpAPI
	if serp.BaseURL == "" {
		serp.BaseURL = "https://serpapi.com/search.json"
	}
	if serp.Engine == "" {
		serp.Engine = "naver"
	}
	if serp.Where == "" {
		serp.Where = "nexearch"
	}
	if serp.Timeout == 0 {
		serp.Timeout = 10000
	}

	if cfg.Analysis.CachePrefix == "" {
		cfg.Analysis.CachePrefix = "sonnimal:analysis:"
	}
	if cfg.Analysis.CacheTTL == "" {
		cfg.Analysis.CacheTTL = "24h"
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Camunda.Enabled && cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required when camunda is enabled")
	}

	if cfg.Analysis.HistoryEnabled {
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required when history is enabled")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required when history is enabled")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required when history is enabled")
		}
	}

	if _, err := time.ParseDuration(cfg.Analysis.CacheTTL); err != nil {
		return fmt.Errorf("analysis.cache_ttl: %w", err)
	}

	if cfg.APIs.NaverAPI.PageSize < 1 || cfg.APIs.NaverAPI.PageSize > 100 {
		return fmt.Errorf("apis.naver_api.page_size must be between 1 and 100")
	}

	return nil
}

// TTL returns the parsed analysis cache TTL.
func (a AnalysisConfig) TTL() time.Duration {
	d, err := time.ParseDuration(a.CacheTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}

	// Return default worker config if not found
	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		MaxRetries:    3,
	}
}

// IsWorkerEnabled checks if a specific worker is enabled
func IsWorkerEnabled(cfg *Config, workerName string) bool {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker.Enabled
	}
	return true
}
