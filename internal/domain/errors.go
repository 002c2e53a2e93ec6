package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a client-side field failure.
type ErrorKind string

const (
	KindEmptyField    ErrorKind = "empty_field"
	KindInvalidFormat ErrorKind = "invalid_format"
)

var (
	ErrEmptyField     = errors.New("field is empty")
	ErrInvalidFormat  = errors.New("field has invalid format")
	ErrSubmitInFlight = errors.New("a submission is already in flight")
)

// Err returns the sentinel matching the kind.
func (k ErrorKind) Err() error {
	switch k {
	case KindEmptyField:
		return ErrEmptyField
	case KindInvalidFormat:
		return ErrInvalidFormat
	default:
		return nil
	}
}

// FieldError reports one invalid field. It unwraps to ErrEmptyField or
// ErrInvalidFormat.
type FieldError struct {
	FieldID string
	Kind    ErrorKind
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.FieldID, e.Message)
}

func (e *FieldError) Unwrap() error { return e.Kind.Err() }

// ValidationError aggregates the field failures that blocked an attempt.
type ValidationError struct {
	Fields []*FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes every field error so errors.Is sees both sentinels.
func (e *ValidationError) Unwrap() []error {
	out := make([]error, 0, len(e.Fields))
	for _, f := range e.Fields {
		out = append(out, f)
	}
	return out
}

// RelayError means the relay answered with a non-success status.
type RelayError struct {
	StatusCode int
	Messages   []string
}

func (e *RelayError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("relay rejected submission: status %d", e.StatusCode)
	}
	return fmt.Sprintf("relay rejected submission: status %d: %s", e.StatusCode, strings.Join(e.Messages, ", "))
}

// NetworkError means the request never produced a response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return "relay request failed"
	}
	return "relay request failed: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }
