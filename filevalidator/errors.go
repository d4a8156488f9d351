package filevalidator

import (
	"errors"
	"fmt"
)

// ValidationErrorType names the check that rejected a file
type ValidationErrorType string

const (
	ErrorTypeSize      ValidationErrorType = "size"
	ErrorTypeMIME      ValidationErrorType = "mime"
	ErrorTypeSignature ValidationErrorType = "signature"
	ErrorTypeCategory  ValidationErrorType = "category"
	ErrorTypeContent   ValidationErrorType = "content"
)

// ValidationError is returned for every rejected file; Type tells callers which check failed.
type ValidationError struct {
	Type    ValidationErrorType
	Message string

	// Category is the category the file was resolved to, if any.
	Category Category

	// Size and Limit are set for size violations.
	Size  int64
	Limit int64
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation error: %s", e.Type, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(errType ValidationErrorType, message string) *ValidationError {
	return &ValidationError{
		Type:    errType,
		Message: message,
	}
}

// NewSizeError creates a size ValidationError carrying the measured size and the ceiling
func NewSizeError(category Category, size, limit int64) *ValidationError {
	return &ValidationError{
		Type:     ErrorTypeSize,
		Message:  fmt.Sprintf("%s size too big: %s (max: %s)", category, FormatSizeReadable(size), FormatSizeReadable(limit)),
		Category: category,
		Size:     size,
		Limit:    limit,
	}
}

func asValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}

// IsValidationError reports whether err wraps a *ValidationError
func IsValidationError(err error) bool {
	_, ok := asValidationError(err)
	return ok
}

// IsErrorOfType reports whether err wraps a *ValidationError of errType
func IsErrorOfType(err error, errType ValidationErrorType) bool {
	verr, ok := asValidationError(err)
	return ok && verr.Type == errType
}

// GetErrorType returns the Type of a wrapped *ValidationError, or ""
func GetErrorType(err error) ValidationErrorType {
	if verr, ok := asValidationError(err); ok {
		return verr.Type
	}
	return ""
}

// GetErrorMessage returns the Message of a wrapped *ValidationError, or ""
func GetErrorMessage(err error) string {
	if verr, ok := asValidationError(err); ok {
		return verr.Message
	}
	return ""
}
