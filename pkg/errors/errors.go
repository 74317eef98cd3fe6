// Package errors provides custom error types for the rostersync system.
// These errors let callers distinguish fatal setup failures (missing
// configuration, unreachable source) from recoverable per-member failures
// (a single fetch or parse gone wrong) without string matching.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the rostersync system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrTokenRequired indicates that a source credential is required but not provided
	ErrTokenRequired = errors.New("token required")

	// ErrSourceUnavailable indicates that the member source is temporarily unavailable
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrRateLimited indicates that the source API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")
)

// ConfigError represents a configuration error. Key names the first
// missing or invalid configuration key when known.
type ConfigError struct {
	Key     string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(key, message string, err error) *ConfigError {
	return &ConfigError{Key: key, Message: message, Err: err}
}

// ValidationError represents invalid input to a call, such as an empty
// scope or member identifier.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// APIError represents an upstream-reported failure from the member source.
// Code carries the source's error code when the envelope reported one.
type APIError struct {
	Source     string
	Endpoint   string
	StatusCode int
	Code       string
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	switch {
	case e.Code != "":
		return fmt.Sprintf("API error from %s (%s): %s", e.Source, e.Code, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("API error from %s (status %d): %s", e.Source, e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("API error from %s: %s", e.Source, e.Message)
	}
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 429 || e.Code == "ratelimited" {
		return target == ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return target == ErrSourceUnavailable
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(source, endpoint, code, message string) *APIError {
	return &APIError{Source: source, Endpoint: endpoint, Code: code, Message: message}
}

// ParseError represents a failure to parse source data, including a raw
// display name that does not match the expected two-token format.
type ParseError struct {
	Format  string // "display name", "json", "yaml"
	Input   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("%s parse error for %q: %s", e.Format, e.Input, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, input, message string, err error) *ParseError {
	return &ParseError{Format: format, Input: input, Message: message, Err: err}
}

// ShapeError indicates a non-rectangular row set passed to the tabular
// store writer. This is an internal invariant violation, not user input.
type ShapeError struct {
	Row  int
	Want int
	Got  int
}

// Error implements the error interface
func (e *ShapeError) Error() string {
	return fmt.Sprintf("row %d has %d columns, want %d", e.Row, e.Got, e.Want)
}

// Is implements errors.Is support
func (e *ShapeError) Is(target error) bool {
	return target == ErrInvalidInput
}

// IOError represents an error during store I/O operations
type IOError struct {
	Operation string // "read", "write", "clear", "create"
	Target    string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Target, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, target string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{Operation: operation, Target: target, Message: message, Err: err}
}

// SyncError represents a fatal error during a reconciliation run
type SyncError struct {
	Scope   string
	Members []string
	Err     error
}

// Error implements the error interface
func (e *SyncError) Error() string {
	if len(e.Members) > 0 {
		return fmt.Sprintf("sync error for scope %s (affected members: %v): %v", e.Scope, e.Members, e.Err)
	}
	return fmt.Sprintf("sync error for scope %s: %v", e.Scope, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError
func NewSyncError(scope string, members []string, err error) *SyncError {
	return &SyncError{Scope: scope, Members: members, Err: err}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsSourceUnavailable checks if an error indicates source unavailability
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, target string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, target, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, input string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, input, err.Error(), err)
}

// WrapAPI wraps an error as an APIError
func WrapAPI(source, endpoint string, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{Source: source, Endpoint: endpoint, Message: err.Error(), Err: err}
}
