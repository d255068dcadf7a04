package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors for authentication operations.
var (
	// ErrNoCredentials indicates that no credentials are available.
	ErrNoCredentials = errors.New("no credentials available")

	// ErrUnsupportedChallenge indicates a WWW-Authenticate scheme the client cannot answer.
	ErrUnsupportedChallenge = errors.New("unsupported authentication challenge")

	// ErrNoToken indicates that the token store holds no token.
	ErrNoToken = errors.New("no token available")
)

// ProviderError represents an authentication error with context.
type ProviderError struct {
	Provider  string
	Operation string
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	var msg string
	switch {
	case e.Provider != "" && e.Operation != "":
		msg = fmt.Sprintf("auth %s (%s): %s", e.Operation, e.Provider, e.Message)
	case e.Provider != "":
		msg = fmt.Sprintf("auth (%s): %s", e.Provider, e.Message)
	default:
		msg = fmt.Sprintf("auth: %s", e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *ProviderError) Is(target error) bool {
	_, ok := target.(*ProviderError)
	return ok || errors.Is(e.Cause, target)
}

// NewProviderError creates a new ProviderError.
func NewProviderError(provider, operation, message string) *ProviderError {
	return &ProviderError{Provider: provider, Operation: operation, Message: message}
}

// NewProviderErrorWithCause creates a new ProviderError with a cause.
func NewProviderErrorWithCause(provider, operation, message string, cause error) *ProviderError {
	return &ProviderError{Provider: provider, Operation: operation, Message: message, Cause: cause}
}
