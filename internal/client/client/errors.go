package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the request could not complete (network failure).
	ErrUnavailable = errors.New("server unavailable")
	// ErrRejected is matched by every *RejectionError.
	ErrRejected = errors.New("request rejected by server")
)

// RejectionError is a non-2xx answer from the backend.
type RejectionError struct {
	StatusCode int
	Message    string
}

func (e *RejectionError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected request: status %d", e.StatusCode)
	}
	return fmt.Sprintf("server rejected request: status %d: %s", e.StatusCode, e.Message)
}

func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}

// Temporary reports whether retrying could help (5xx, 429).
func (e *RejectionError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
