// Package domain defines the core business entities, value objects and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a value object or entity fails its
	// construction-time invariant. Specific validation errors wrap it.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidOperation is returned when an operation violates a
	// state-machine or business rule. Specific rule errors wrap it.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrInvalidID is returned when an identifier is malformed or nil.
	ErrInvalidID = errors.New("invalid ID")
)
