// Package config loads the optional user configuration for nhb-express:
// author metadata written into generated manifests, default choices for the
// prompts, and overrides for the template and catalog sources.
package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig matches every validation failure.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrConfigNotFound is returned when an explicitly named file is missing.
	ErrConfigNotFound = errors.New("config: configuration file not found")
)

// ValidationError describes one rejected config key.
type ValidationError struct {
	Field   string // dotted key, e.g. "author.email"
	Message string
	Value   any // offending value; nil for missing keys
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%q %s", e.Field, e.Message)
	if e.Value != nil {
		msg += fmt.Sprintf(" (got: %v)", e.Value)
	}
	return msg
}

// Is makes every ValidationError match ErrInvalidConfig.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors struct {
	Errors []ValidationError
}

func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation: no errors"
	}
	parts := make([]string, 0, len(e.Errors))
	for i := range e.Errors {
		parts = append(parts, e.Errors[i].Error())
	}
	return fmt.Sprintf("invalid config, %d error(s): %s", len(e.Errors), strings.Join(parts, "; "))
}

// Is makes ValidationErrors match ErrInvalidConfig.
func (e *ValidationErrors) Is(target error) bool {
	return target == ErrInvalidConfig
}

// add records a problem with field.
func (e *ValidationErrors) add(field, message string, value any) {
	e.Errors = append(e.Errors, ValidationError{Field: field, Message: message, Value: value})
}
