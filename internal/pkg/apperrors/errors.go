package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping. Internal error text stays
// server-side; clients only ever see the kind's public message.
type Kind int

const (
	KindUnknown Kind = iota
	KindConfiguration
	KindUnauthorized
	KindForbidden
	KindValidation
	KindNotFound
	KindLimitExceeded
	KindServiceUnavailable
	KindGeneration
	KindStorage
)

type AppError struct {
	Kind    Kind
	Message string // public, category-level message
	Err     error  // internal cause, logged but never sent to clients
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: cause}
}

func Configuration(message string) *AppError {
	return New(KindConfiguration, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, message, nil)
}

func Validation(message string, cause error) *AppError {
	return New(KindValidation, message, cause)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message, nil)
}

func LimitExceeded(message string) *AppError {
	return New(KindLimitExceeded, message, nil)
}

func ServiceUnavailable(message string, cause error) *AppError {
	return New(KindServiceUnavailable, message, cause)
}

func Generation(cause error) *AppError {
	return New(KindGeneration, "text generation failed", cause)
}

func Storage(cause error) *AppError {
	return New(KindStorage, "storage operation failed", cause)
}

// KindOf extracts the kind from any error in the chain, KindUnknown if none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
