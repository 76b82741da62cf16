package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Extraction failure classes. Every one of these is absorbed at the
// orchestrator boundary and converted into a fallback transition; none of
// them surfaces past the engine.
var (
	ErrInvalidImageInput       = errors.New("invalid image input")
	ErrNetworkFailure          = errors.New("network failure")
	ErrBadStatus               = errors.New("bad response status")
	ErrMalformedResponse       = errors.New("malformed response")
	ErrLocalRecognitionFailure = errors.New("local recognition failure")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
