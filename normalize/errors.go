package normalize

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors wrapped by *Error
var (
	ErrDecode      = errors.New("image decode failed")
	ErrEncode      = errors.New("image encode failed")
	ErrImageBounds = errors.New("image dimensions out of bounds")
)

// Error records the normalization step that failed
type Error struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("normalize %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// IsCanceled reports whether err came from a canceled or expired context
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func opError(op string, sentinel, cause error) *Error {
	if cause == nil {
		return &Error{Op: op, Err: sentinel}
	}
	return &Error{Op: op, Err: fmt.Errorf("%w: %v", sentinel, cause)}
}
