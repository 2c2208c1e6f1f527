package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound indicates a requested entity does not exist.
var ErrNotFound = errors.New("domain: not found")

// ErrTrackNotFound distinguishes "no tracks matched the query" from a
// provider failure.
var ErrTrackNotFound = errors.New("domain: no tracks found")

// InvalidInputError reports malformed geometry inputs. Fatal to the call,
// not the process.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}

// ProviderError wraps an upstream network/auth/quota failure.
type ProviderError struct {
	Provider string
	Op       string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// SchemaError reports that the reasoning service returned content that does
// not parse as the expected top-level JSON object. Raw carries the offending
// payload for diagnostics.
type SchemaError struct {
	Detail string
	Raw    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: %s", e.Detail)
}

// ValidationError reports a persistence-time parsing failure.
type ValidationError struct {
	Field string
	Value any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %q: value %v is not a finite number", e.Field, e.Value)
}

// TrailGenerationError is the whole-call failure surfaced by GenerateTrail.
// It carries the upstream detail and a timestamp for the caller to display.
type TrailGenerationError struct {
	Message   string
	Detail    error
	Timestamp time.Time
}

func (e *TrailGenerationError) Error() string {
	if e.Detail != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Detail)
	}
	return e.Message
}

func (e *TrailGenerationError) Unwrap() error { return e.Detail }

// NewTrailGenerationError stamps the failure with the current time.
func NewTrailGenerationError(message string, detail error) *TrailGenerationError {
	return &TrailGenerationError{Message: message, Detail: detail, Timestamp: time.Now().UTC()}
}
