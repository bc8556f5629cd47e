package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidateInput checks input against a JSON schema given as a decoded map.
// An empty schema accepts everything.
func ValidateInput(input interface{}, schema map[string]interface{}) (*ValidationResult, error) {
	if len(schema) == 0 {
		return &ValidationResult{Valid: true}, nil
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(schema), gojsonschema.NewGoLoader(input))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	vr := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		vr.Errors = append(vr.Errors, ValidationError{
			Field:   fieldName(desc),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return vr, nil
}

const rootContext = "(root)"

// fieldName reports the offending property. Missing required properties are
// reported against their parent, so the name comes from the error details.
func fieldName(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if desc.Type() != "required" {
		return field
	}
	prop, ok := desc.Details()["property"].(string)
	switch {
	case !ok || field == prop || strings.HasSuffix(field, "."+prop):
		return field
	case field == rootContext || field == "":
		return prop
	default:
		return field + "." + prop
	}
}

var activityNaming = regexp.MustCompile(`^[a-z]+\.[a-z]+\.[a-z]+$`)

// ValidateActivityNaming validates activity ID follows naming convention
func ValidateActivityNaming(activityID string) error {
	if !activityNaming.MatchString(activityID) {
		return fmt.Errorf("activity ID must follow format: domain.subdomain.action (e.g., analysis.reviews.analyze)")
	}
	return nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}
