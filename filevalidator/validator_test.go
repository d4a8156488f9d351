package filevalidator

import (
	"bytes"
	"strings"
	"testing"
)

var (
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pngHeader  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}
	webpHeader = []byte{'R', 'I', 'F', 'F', 0x1A, 0, 0, 0, 'W', 'E', 'B', 'P', 'V', 'P', '8', ' '}
	waveHeader = []byte{'R', 'I', 'F', 'F', 0x24, 0, 0, 0, 'W', 'A', 'V', 'E', 'f', 'm', 't', ' '}
	pdfHeader  = []byte("%PDF-1.7\n%\xE2\xE3\xCF\xD3\n")
)

func TestFileValidator_Validate(t *testing.T) {
	validator := NewDefault()

	tests := []struct {
		name          string
		content       []byte
		declared      string
		wantValid     bool
		wantMatch     bool
		wantCategory  Category
		wantErrorType ValidationErrorType
	}{
		{
			name:         "valid JPEG",
			content:      jpegHeader,
			declared:     "image/jpeg",
			wantValid:    true,
			wantMatch:    true,
			wantCategory: CategoryImage,
		},
		{
			name:         "image/jpg alias",
			content:      jpegHeader,
			declared:     "image/jpg",
			wantValid:    true,
			wantMatch:    true,
			wantCategory: CategoryImage,
		},
		{
			name:         "valid PNG with parameters in declared type",
			content:      pngHeader,
			declared:     "Image/PNG; charset=binary",
			wantValid:    true,
			wantMatch:    true,
			wantCategory: CategoryImage,
		},
		{
			name:         "valid WebP",
			content:      webpHeader,
			declared:     "image/webp",
			wantValid:    true,
			wantMatch:    true,
			wantCategory: CategoryImage,
		},
		{
			name:         "valid PDF",
			content:      pdfHeader,
			declared:     "application/pdf",
			wantValid:    true,
			wantMatch:    true,
			wantCategory: CategoryDocument,
		},
		{
			name:          "only the middle JPEG byte matches",
			content:       []byte{0x00, 0xD8, 0x00},
			declared:      "image/jpeg",
			wantCategory:  CategoryImage,
			wantErrorType: ErrorTypeSignature,
		},
		{
			name:          "WAVE container declared as WebP",
			content:       waveHeader,
			declared:      "image/webp",
			wantCategory:  CategoryImage,
			wantErrorType: ErrorTypeSignature,
		},
		{
			name:          "PNG declared as JPEG",
			content:       pngHeader,
			declared:      "image/jpeg",
			wantCategory:  CategoryImage,
			wantErrorType: ErrorTypeSignature,
		},
		{
			name:          "PDF declared as image",
			content:       pdfHeader,
			declared:      "image/png",
			wantCategory:  CategoryImage,
			wantErrorType: ErrorTypeSignature,
		},
		{
			name:          "unknown declared type",
			content:       jpegHeader,
			declared:      "application/octet-stream",
			wantCategory:  CategoryNone,
			wantErrorType: ErrorTypeMIME,
		},
		{
			name:          "empty declared type",
			content:       jpegHeader,
			declared:      "",
			wantCategory:  CategoryNone,
			wantErrorType: ErrorTypeMIME,
		},
		{
			name:          "svg is not accepted",
			content:       []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`),
			declared:      "image/svg+xml",
			wantCategory:  CategoryNone,
			wantErrorType: ErrorTypeMIME,
		},
		{
			name:          "empty JPEG",
			content:       []byte{},
			declared:      "image/jpeg",
			wantCategory:  CategoryImage,
			wantErrorType: ErrorTypeSignature,
		},
		{
			name:          "empty PDF",
			content:       nil,
			declared:      "application/pdf",
			wantCategory:  CategoryDocument,
			wantErrorType: ErrorTypeSignature,
		},
		{
			name:          "truncated WebP",
			content:       webpHeader[:10],
			declared:      "image/webp",
			wantCategory:  CategoryImage,
			wantErrorType: ErrorTypeSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := validator.Validate(tt.content, tt.declared)

			if verdict.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v (%v)", verdict.IsValid, tt.wantValid, verdict.Err)
			}
			if verdict.MatchesSignature != tt.wantMatch {
				t.Errorf("MatchesSignature = %v, want %v", verdict.MatchesSignature, tt.wantMatch)
			}
			if verdict.Category != tt.wantCategory {
				t.Errorf("Category = %v, want %v", verdict.Category, tt.wantCategory)
			}
			if tt.wantValid {
				if verdict.Err != nil || verdict.Error() != nil {
					t.Errorf("valid verdict carries error %v", verdict.Err)
				}
				return
			}
			if verdict.Err == nil {
				t.Fatal("invalid verdict without error")
			}
			if verdict.Err.Type != tt.wantErrorType {
				t.Errorf("Err.Type = %v, want %v", verdict.Err.Type, tt.wantErrorType)
			}
			if !IsValidationError(verdict.Error()) {
				t.Errorf("Error() = %v, want *ValidationError", verdict.Error())
			}
		})
	}
}

// Deterministic: the same input fails identically every time
func TestFileValidator_Validate_Deterministic(t *testing.T) {
	validator := NewDefault()
	first := validator.Validate(waveHeader, "image/webp")
	for i := 0; i < 5; i++ {
		again := validator.Validate(waveHeader, "image/webp")
		if again.IsValid || again.Err.Type != first.Err.Type || again.Err.Message != first.Err.Message {
			t.Fatalf("run %d differs: %+v vs %+v", i, again.Err, first.Err)
		}
	}
}

func TestFileValidator_Validate_DisallowedCategory(t *testing.T) {
	validator := ForImages().MustBuild()

	verdict := validator.Validate(pdfHeader, "application/pdf")
	if verdict.IsValid {
		t.Fatal("document accepted by image-only validator")
	}
	if verdict.Err.Type != ErrorTypeCategory {
		t.Errorf("Err.Type = %v, want %v", verdict.Err.Type, ErrorTypeCategory)
	}
	if verdict.Category != CategoryDocument {
		t.Errorf("Category = %v, want document", verdict.Category)
	}
}

func TestFileValidator_Validate_Checks(t *testing.T) {
	validator := NewDefault()

	verdict := validator.Validate(jpegHeader, "image/jpeg")
	if len(verdict.Checks) != 3 {
		t.Fatalf("Checks = %d, want 3", len(verdict.Checks))
	}
	if len(verdict.FailedChecks()) != 0 {
		t.Errorf("FailedChecks() = %v, want none", verdict.FailedChecks())
	}
	if verdict.DetectedMIME != "image/jpeg" {
		t.Errorf("DetectedMIME = %v, want image/jpeg", verdict.DetectedMIME)
	}

	rejected := validator.Validate(pngHeader, "image/jpeg")
	failed := rejected.FailedChecks()
	if len(failed) != 1 || failed[0].Name != "signature" {
		t.Errorf("FailedChecks() = %+v, want one signature failure", failed)
	}
	if rejected.DetectedMIME != "image/png" {
		t.Errorf("DetectedMIME = %v, want image/png", rejected.DetectedMIME)
	}
}

func TestFileValidator_ValidateReader(t *testing.T) {
	validator := NewDefault()

	t.Run("reads bounded prefix", func(t *testing.T) {
		content := append(append([]byte(nil), webpHeader...), make([]byte, 1<<20)...)
		cr := &countingReader{r: bytes.NewReader(content)}

		verdict, err := validator.ValidateReader(cr, "image/webp")
		if err != nil {
			t.Fatalf("ValidateReader() error = %v", err)
		}
		if !verdict.IsValid {
			t.Fatalf("ValidateReader() rejected: %v", verdict.Err)
		}
		if cr.read != 12 {
			t.Errorf("read %d bytes, want 12", cr.read)
		}
	})

	t.Run("unknown type reads nothing", func(t *testing.T) {
		cr := &countingReader{r: bytes.NewReader(jpegHeader)}
		verdict, err := validator.ValidateReader(cr, "text/html")
		if err != nil {
			t.Fatalf("ValidateReader() error = %v", err)
		}
		if verdict.IsValid || verdict.Err.Type != ErrorTypeMIME {
			t.Errorf("verdict = %+v, want MIME rejection", verdict.Err)
		}
		if cr.read != 0 {
			t.Errorf("read %d bytes, want 0", cr.read)
		}
	})

	t.Run("mismatch", func(t *testing.T) {
		verdict, err := validator.ValidateReader(bytes.NewReader(waveHeader), "image/webp")
		if err != nil {
			t.Fatalf("ValidateReader() error = %v", err)
		}
		if verdict.IsValid || verdict.MatchesSignature {
			t.Error("WAVE accepted as WebP")
		}
	})

	t.Run("read error", func(t *testing.T) {
		_, err := validator.ValidateReader(failingReader{}, "image/jpeg")
		if err == nil {
			t.Error("expected error from failing reader")
		}
	})
}

func TestFileValidator_Summary(t *testing.T) {
	validator := NewDefault()

	ok := validator.Validate(jpegHeader, "image/jpeg")
	if !strings.HasPrefix(ok.Summary(), "✓ image/jpeg") {
		t.Errorf("Summary() = %q", ok.Summary())
	}

	bad := validator.Validate(jpegHeader, "image/png")
	if !strings.HasPrefix(bad.Summary(), "✗ image/png failed") {
		t.Errorf("Summary() = %q", bad.Summary())
	}
}

func TestFileValidator_Accessors(t *testing.T) {
	validator := NewDefault()
	if validator.Policy() == nil {
		t.Error("Policy() returned nil")
	}
	if validator.Registry() != DefaultSignatureRegistry() {
		t.Error("Registry() should be the default registry")
	}
}
