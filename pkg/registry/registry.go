// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"sonnimal/internal/common/validation"
)

//go:embed activities.json
var builtin []byte

// LoadRegistry reads a registry file. An empty path loads the built-in one.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	data := builtin
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, err
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse activity registry: %w", err)
	}
	return &reg, nil
}

// Default returns the built-in registry.
func Default() *ActivityRegistry {
	reg, err := Parse(builtin)
	if err != nil {
		panic(err)
	}
	return reg
}

// FindByTaskType returns the activity registered for taskType.
func (r *ActivityRegistry) FindByTaskType(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// Validate checks ids, required fields and that every input schema compiles.
func (r *ActivityRegistry) Validate() error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool)
	for _, activity := range r.Activities {
		if activity.ID == "" {
			return fmt.Errorf("activity missing required field: ID")
		}
		if ids[activity.ID] {
			return fmt.Errorf("duplicate activity ID: %s", activity.ID)
		}
		ids[activity.ID] = true

		if err := validation.ValidateActivityNaming(activity.ID); err != nil {
			return fmt.Errorf("activity %s: %w", activity.ID, err)
		}
		if activity.TaskType == "" {
			return fmt.Errorf("activity %s missing required field: TaskType", activity.ID)
		}
		if activity.Timeout != "" {
			if _, err := time.ParseDuration(activity.Timeout); err != nil {
				return fmt.Errorf("activity %s has an invalid timeout %q", activity.ID, activity.Timeout)
			}
		}
		if len(activity.InputSchema) > 0 {
			if _, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(activity.InputSchema)); err != nil {
				return fmt.Errorf("activity %s has an invalid input schema: %w", activity.ID, err)
			}
		}
	}
	return nil
}
