package evidencekit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gobeaver/evidencekit/filevalidator"
)

func TestError_Error(t *testing.T) {
	e := &Error{Code: CodeCompressionFailed, Message: "The image could not be processed."}
	assert.Equal(t, "COMPRESSION_FAILED: The image could not be processed.", e.Error())

	cause := errors.New("bad huffman table")
	e.Err = cause
	assert.Equal(t, "COMPRESSION_FAILED: The image could not be processed.: bad huffman table", e.Error())
	assert.ErrorIs(t, e, cause)
}

func TestCodeOf(t *testing.T) {
	e := &Error{Code: CodeImageTooLarge}

	assert.Equal(t, CodeImageTooLarge, CodeOf(e))
	assert.Equal(t, CodeImageTooLarge, CodeOf(fmt.Errorf("upload: %w", e)))
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))

	assert.True(t, IsCode(e, CodeImageTooLarge))
	assert.False(t, IsCode(e, CodeDocumentTooLarge))
	assert.True(t, IsTooLarge(e))
	assert.False(t, IsTooLarge(&Error{Code: CodeInvalidFileType}))
}

func TestTooLargeCode(t *testing.T) {
	assert.Equal(t, CodeImageTooLarge, TooLargeCode(filevalidator.CategoryImage))
	assert.Equal(t, CodeDocumentTooLarge, TooLargeCode(filevalidator.CategoryDocument))
}

func TestCodes_AreDistinct(t *testing.T) {
	seen := map[ErrorCode]bool{}
	for _, c := range Codes {
		assert.False(t, seen[c], "duplicate code %s", c)
		seen[c] = true
	}
	assert.Len(t, seen, 5)
}
