// pkg/registry/schema.go
package registry

import "time"

// ActivityRegistry is the catalogue of job types the worker manager can serve.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one Zeebe task type and the contract of its variables.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`
}

// JobTimeout parses Timeout ("30s", "2m"). Empty or malformed values yield fallback.
func (a *Activity) JobTimeout(fallback time.Duration) time.Duration {
	if a == nil || a.Timeout == "" {
		return fallback
	}
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// Throws reports whether code is one of the BPMN errors the activity declares.
func (a *Activity) Throws(code string) bool {
	if a == nil {
		return false
	}
	for _, c := range a.ErrorCodes {
		if c == code {
			return true
		}
	}
	return false
}
