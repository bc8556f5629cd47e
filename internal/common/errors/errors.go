// Package errors provides standardized error handling for the HTTP route
// layer and BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// URL carries no recognizable place identifier.
	ErrCodeInputInvalid ErrorCode = "INPUT_INVALID"

	// A provider failed. Recovered by the next tier; only logged.
	ErrCodeSourceUnavailable ErrorCode = "SOURCE_UNAVAILABLE"

	// Every tier, synthetic generation included, produced nothing.
	ErrCodeNoDataFound ErrorCode = "NO_DATA_FOUND"

	ErrCodeUnexpectedFault ErrorCode = "UNEXPECTED_FAULT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewInputInvalidError is returned when no place identifier can be extracted.
func NewInputInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInputInvalid,
		Message:   "유효한 네이버 플레이스 URL이 아닙니다",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewSourceUnavailableError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceUnavailable,
		Message:   "Review provider unavailable",
		Details:   fmt.Sprintf("source: %s, error: %v", source, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBrokerUnavailableError reports a workflow broker that could not be reached.
func NewBrokerUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSourceUnavailable,
		Message:   "Workflow broker unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoDataFoundError is returned when every tier is exhausted and synthetic
// generation is disabled.
func NewNoDataFoundError(placeID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeNoDataFound,
		Message:   "리뷰 데이터를 가져올 수 없습니다",
		Details:   fmt.Sprintf("placeId: %s", placeID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewUnexpectedFaultError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnexpectedFault,
		Message:   "분석 중 오류가 발생했습니다",
		Details:   fmt.Sprint(err),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInputInvalid:      "INPUT_INVALID",
	ErrCodeSourceUnavailable: "SOURCE_UNAVAILABLE",
	ErrCodeNoDataFound:       "NO_DATA_FOUND",
	ErrCodeUnexpectedFault:   "UNEXPECTED_FAULT",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeSourceUnavailable:
		return 2
	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// HTTPStatus maps an error to the status code the route layer returns.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	stdErr, ok := AsStandard(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch stdErr.Code {
	case ErrCodeInputInvalid:
		return http.StatusBadRequest
	case ErrCodeNoDataFound, ErrCodeSourceUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// AsStandard unwraps err to a *StandardError.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// HasCode reports whether err is a StandardError with the given code.
func HasCode(err error, code ErrorCode) bool {
	stdErr, ok := AsStandard(err)
	return ok && stdErr.Code == code
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeInputInvalid:
		return "VALIDATION"
	case ErrCodeSourceUnavailable, ErrCodeNoDataFound:
		return "SOURCE"
	default:
		return "OTHER"
	}
}
