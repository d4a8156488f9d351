package evidencekit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/gobeaver/evidencekit/filevalidator"
)

func TestMessages_EveryCodeHasBothLocales(t *testing.T) {
	m := DefaultMessages()
	for _, code := range Codes {
		en := m.Format(language.English, code, "a", "b")
		es := m.Format(language.Spanish, code, "a", "b")
		assert.NotEqual(t, string(code), en, "missing English text for %s", code)
		assert.NotEqual(t, string(code), es, "missing Spanish text for %s", code)
		assert.NotEqual(t, en, es, "Spanish text for %s is not translated", code)
	}
}

func TestMessages_Matching(t *testing.T) {
	m := DefaultMessages()

	assert.Equal(t, "El procesamiento fue cancelado.", m.Format(language.MustParse("es-MX"), CodeProcessingCanceled))
	assert.Equal(t, "Processing was canceled.", m.Format(language.French, CodeProcessingCanceled))
	assert.Equal(t, "Processing was canceled.", m.Format(language.Und, CodeProcessingCanceled))
}

func TestMessages_Set(t *testing.T) {
	m := NewMessages(language.French)
	require.NoError(t, m.Set(language.French, CodeProcessingCanceled, "Le traitement a été annulé."))

	e := m.newError(CodeProcessingCanceled, filevalidator.CategoryImage, "image/png", 0, 0, nil)
	assert.Equal(t, "Processing was canceled.", e.Message)
	assert.Equal(t, "Le traitement a été annulé.", e.LocalizedMessage)
	assert.Equal(t, language.French, m.SecondaryLocale())
}

func TestMessages_NewError(t *testing.T) {
	m := DefaultMessages()

	e := m.newError(CodeInvalidFileType, filevalidator.CategoryNone, "", 0, 0, nil)
	assert.Equal(t, "File type (none) is not accepted or does not match the file content.", e.Message)

	e = m.newError(CodeImageTooLarge, filevalidator.CategoryImage, "image/png", 15*filevalidator.MB, 10*filevalidator.MB, nil)
	assert.Equal(t, "Image is too large: 15 MB (maximum 10 MB).", e.Message)
	assert.Equal(t, "La imagen es demasiado grande: 15 MB (máximo 10 MB).", e.LocalizedMessage)
	assert.Equal(t, 15*filevalidator.MB, e.Size)
}
