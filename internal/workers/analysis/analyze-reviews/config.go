// internal/workers/analysis/analyze-reviews/config.go
package analyzereviews

import (
	"time"

	"sonnimal/internal/common/config"
	"sonnimal/pkg/registry"
)

type Config struct {
	Timeout       time.Duration
	MaxJobsActive int
}

const defaultTimeout = 30 * time.Second

// LoadConfig reads the worker section for TaskType. When it sets no timeout
// the registry activity's timeout applies.
func LoadConfig(cfg *config.Config, activity *registry.Activity) *Config {
	wc := config.GetWorkerConfig(cfg, TaskType)
	c := &Config{
		Timeout:       config.GetDuration(wc.Timeout),
		MaxJobsActive: wc.MaxJobsActive,
	}
	if c.Timeout <= 0 {
		c.Timeout = activity.JobTimeout(defaultTimeout)
	}
	if c.MaxJobsActive <= 0 {
		c.MaxJobsActive = 5
	}
	return c
}
