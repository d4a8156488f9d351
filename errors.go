package evidencekit

import (
	"errors"
	"fmt"

	"github.com/gobeaver/evidencekit/filevalidator"
)

// ErrorCode is the closed set of failure codes surfaced to callers
type ErrorCode string

const (
	CodeInvalidFileType    ErrorCode = "INVALID_FILE_TYPE"
	CodeImageTooLarge      ErrorCode = "IMAGE_TOO_LARGE"
	CodeDocumentTooLarge   ErrorCode = "DOCUMENT_TOO_LARGE"
	CodeCompressionFailed  ErrorCode = "COMPRESSION_FAILED"
	CodeProcessingCanceled ErrorCode = "PROCESSING_CANCELED"
)

// Codes lists every error code
var Codes = []ErrorCode{
	CodeInvalidFileType,
	CodeImageTooLarge,
	CodeDocumentTooLarge,
	CodeCompressionFailed,
	CodeProcessingCanceled,
}

// Error is the only error type returned by Process.
// Message is English; LocalizedMessage is in the configured secondary locale.
type Error struct {
	Code             ErrorCode
	Category         filevalidator.Category
	Message          string
	LocalizedMessage string

	// Size and Limit are set for the too-large codes
	Size  int64
	Limit int64

	// Err is the underlying cause, if any
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// IsCode reports whether err is an *Error with the given code
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// CodeOf returns the code of an *Error, or empty string for any other error
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsTooLarge reports whether err is either too-large code
func IsTooLarge(err error) bool {
	code := CodeOf(err)
	return code == CodeImageTooLarge || code == CodeDocumentTooLarge
}

// TooLargeCode returns the size-violation code for a category.
// Every category other than image maps to DOCUMENT_TOO_LARGE.
func TooLargeCode(category filevalidator.Category) ErrorCode {
	if category == filevalidator.CategoryImage {
		return CodeImageTooLarge
	}
	return CodeDocumentTooLarge
}
