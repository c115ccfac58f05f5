package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeConflict indicates a conflict with existing data
	ErrorTypeConflict ErrorType = "CONFLICT"

	// ErrorTypeUnauthorized indicates unauthorized access
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "INTERNAL"

	// ErrorTypeExternal indicates an error from the backend
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// Fallback texts shown when the backend gave nothing usable
const (
	FallbackTitle   = "Error"
	FallbackMessage = "Something went wrong, please try again later"
)

// ErrNotAuthenticated is returned when an operation needs a session and there is none
var ErrNotAuthenticated = NewUnauthorizedError("not authenticated")

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnauthorized,
		Message: message,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}

// APIError is a non-2xx backend response, kept verbatim.
//
// The backend answers failures with a flat JSON object: "error" names the
// failure class, "message" describes it and "statusCode" echoes the HTTP
// status. Field validation failures replace "message" with one entry per
// rejected field.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Fields     map[string]string
	Raw        []byte
}

// NewAPIError decodes a backend error body. Bodies that are not a JSON object
// still produce an APIError carrying only the status and raw bytes.
func NewAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Raw: body}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	for key, value := range payload {
		text, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "error":
			apiErr.Code = text
		case "message":
			apiErr.Message = text
		case "statusCode":
		default:
			if apiErr.Fields == nil {
				apiErr.Fields = make(map[string]string)
			}
			apiErr.Fields[key] = text
		}
	}
	return apiErr
}

// Error implements the error interface
func (e *APIError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("backend returned status %d: %s: %s", e.StatusCode, e.Code, e.Message)
	case len(e.Fields) > 0:
		return fmt.Sprintf("backend returned status %d: %s: %s", e.StatusCode, e.Code, strings.Join(e.FieldMessages(), "; "))
	default:
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
}

// FieldMessages returns the per-field messages ordered by field name
func (e *APIError) FieldMessages() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, e.Fields[k])
	}
	return out
}

// ValidationErrors holds local form validation failures keyed by field
type ValidationErrors struct {
	Fields map[string]string
}

// Add records a failure for a field, keeping the first one reported
func (v *ValidationErrors) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = make(map[string]string)
	}
	if _, exists := v.Fields[field]; !exists {
		v.Fields[field] = message
	}
}

// Has reports whether the field failed validation
func (v *ValidationErrors) Has(field string) bool {
	_, ok := v.Fields[field]
	return ok
}

// Error implements the error interface
func (v *ValidationErrors) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, v.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidation reports whether err is a local validation failure
func IsValidation(err error) bool {
	var v *ValidationErrors
	return stderrors.As(err, &v)
}

// AsAPIError unwraps a backend error
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Describe renders err as the (title, body) pair shown to the user
func Describe(err error) (string, string) {
	if err == nil {
		return "", ""
	}

	var v *ValidationErrors
	if stderrors.As(err, &v) {
		return "Invalid input", strings.TrimPrefix(v.Error(), "validation failed: ")
	}

	apiErr, ok := AsAPIError(err)
	if !ok {
		return FallbackTitle, FallbackMessage
	}

	title := apiErr.Code
	if title == "" {
		title = FallbackTitle
	}
	if apiErr.Message != "" {
		return title, apiErr.Message
	}
	if len(apiErr.Fields) > 0 {
		return title, strings.Join(apiErr.FieldMessages(), "\n")
	}
	return FallbackTitle, FallbackMessage
}
