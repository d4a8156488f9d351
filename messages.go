package evidencekit

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/gobeaver/evidencekit/filevalidator"
)

// Message formats take, in order: declared type for INVALID_FILE_TYPE,
// readable size and limit for the too-large codes, nothing otherwise.
var builtinMessages = map[language.Tag]map[ErrorCode]string{
	language.English: {
		CodeInvalidFileType:    "File type %s is not accepted or does not match the file content.",
		CodeImageTooLarge:      "Image is too large: %s (maximum %s).",
		CodeDocumentTooLarge:   "Document is too large: %s (maximum %s).",
		CodeCompressionFailed:  "The image could not be processed.",
		CodeProcessingCanceled: "Processing was canceled.",
	},
	language.Spanish: {
		CodeInvalidFileType:    "El tipo de archivo %s no está permitido o no coincide con el contenido del archivo.",
		CodeImageTooLarge:      "La imagen es demasiado grande: %s (máximo %s).",
		CodeDocumentTooLarge:   "El documento es demasiado grande: %s (máximo %s).",
		CodeCompressionFailed:  "No se pudo procesar la imagen.",
		CodeProcessingCanceled: "El procesamiento fue cancelado.",
	},
}

// Messages renders user-facing error text in English and one secondary locale.
// Configure it before first use; it is read-only afterwards.
type Messages struct {
	cat       *catalog.Builder
	tags      []language.Tag
	secondary language.Tag
}

// NewMessages creates a message set with the built-in English and Spanish texts.
// A secondary locale without texts falls back to English.
func NewMessages(secondary language.Tag) *Messages {
	m := &Messages{
		cat:       catalog.NewBuilder(catalog.Fallback(language.English)),
		tags:      []language.Tag{language.English, language.Spanish},
		secondary: secondary,
	}
	for tag, texts := range builtinMessages {
		for code, format := range texts {
			_ = m.cat.SetString(tag, string(code), format)
		}
	}
	return m
}

// DefaultMessages returns English plus Spanish
func DefaultMessages() *Messages {
	return NewMessages(language.Spanish)
}

// Set adds or replaces the text for a code in a locale
func (m *Messages) Set(tag language.Tag, code ErrorCode, format string) error {
	if err := m.cat.SetString(tag, string(code), format); err != nil {
		return fmt.Errorf("set message %s for %s: %w", code, tag, err)
	}
	for _, t := range m.tags {
		if t == tag {
			return nil
		}
	}
	m.tags = append(m.tags, tag)
	return nil
}

// SecondaryLocale returns the configured secondary locale
func (m *Messages) SecondaryLocale() language.Tag {
	return m.secondary
}

// Format renders the text for code in the closest available locale
func (m *Messages) Format(tag language.Tag, code ErrorCode, args ...any) string {
	return message.NewPrinter(m.match(tag), message.Catalog(m.cat)).Sprintf(string(code), args...)
}

// match picks the closest locale with texts, English when nothing is close
func (m *Messages) match(tag language.Tag) language.Tag {
	_, idx, conf := language.NewMatcher(m.tags).Match(tag)
	if conf == language.No {
		return language.English
	}
	return m.tags[idx]
}

// newError builds an *Error with both messages filled in
func (m *Messages) newError(code ErrorCode, category filevalidator.Category, declared string, size, limit int64, cause error) *Error {
	var args []any
	switch code {
	case CodeInvalidFileType:
		if declared == "" {
			declared = "(none)"
		}
		args = []any{declared}
	case CodeImageTooLarge, CodeDocumentTooLarge:
		args = []any{filevalidator.FormatSizeReadable(size), filevalidator.FormatSizeReadable(limit)}
	}

	return &Error{
		Code:             code,
		Category:         category,
		Message:          m.Format(language.English, code, args...),
		LocalizedMessage: m.Format(m.secondary, code, args...),
		Size:             size,
		Limit:            limit,
		Err:              cause,
	}
}
