package ai

import (
	"errors"
	"fmt"
)

var (
	// ErrBackendNotConfigured is returned for a backend whose credential is missing
	ErrBackendNotConfigured = errors.New("backend not configured")

	// ErrUnknownBackend is returned when no backend is registered under an id
	ErrUnknownBackend = errors.New("unknown backend")
)

// APIError represents an error from an AI API
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

// NewAPIError creates a new API error
func NewAPIError(provider string, statusCode int, message string, err error) *APIError {
	return &APIError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s API error (status %d): %s: %v", e.Provider, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping
func (e *APIError) Unwrap() error {
	return e.Err
}

// Detail returns the provider's message without the status prefix
func (e *APIError) Detail() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}
