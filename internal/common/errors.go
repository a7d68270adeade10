// Package common defines sentinel errors shared by the client and the
// reference backend. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Validation errors raised before anything is stored.
	ErrorValidation = errors.New("validation error")
)
