// Package domain contains the core business entities for the MTN Mobile Money gateway.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - represent the ways a gateway call can fail.
var (
	// ErrInvalidRequest is returned for missing or malformed caller-supplied fields,
	// before any network call is made.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrSandboxOnly is returned when a provisioning call targets production.
	ErrSandboxOnly = fmt.Errorf("%w: only available in sandbox environment", ErrInvalidRequest)

	// ErrAuth is returned when the token exchange fails.
	ErrAuth = errors.New("authentication failed")

	// ErrTransport is returned when MTN could not be reached or the response could not be read.
	ErrTransport = errors.New("transport error")

	// ErrUnknownCallbackStatus is returned for callbacks with a status we do not handle.
	ErrUnknownCallbackStatus = errors.New("unknown callback status")

	// ErrNotifyFailed is returned when the merchant backend could not be notified.
	ErrNotifyFailed = errors.New("failed to notify merchant backend")
)

// Error codes carried by ServiceError.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeSandbox    = "SANDBOX_ONLY"
	CodeAuth       = "AUTH_ERROR"
	CodeTransport  = "TRANSPORT_ERROR"
	CodeCallback   = "CALLBACK_ERROR"
	CodeNotify     = "NOTIFY_ERROR"
)

// ServiceError wraps errors with additional context.
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(err error, message, code string) *ServiceError {
	return &ServiceError{Err: err, Message: message, Code: code}
}

// NewValidationError reports a caller-supplied field problem.
func NewValidationError(message string) *ServiceError {
	return NewServiceError(ErrInvalidRequest, message, CodeValidation)
}
