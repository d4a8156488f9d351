package filevalidator

import (
	"bytes"
	"testing"
)

// BenchmarkNewDefault benchmarks the creation of a default validator
func BenchmarkNewDefault(b *testing.B) {
	for i := 0; i < b.N; i++ {
		NewDefault()
	}
}

// BenchmarkValidator_Validate_JPEG benchmarks validation of a small JPEG header
func BenchmarkValidator_Validate_JPEG(b *testing.B) {
	validator := NewDefault()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		validator.Validate(jpegHeader, "image/jpeg")
	}
}

// BenchmarkValidator_Validate_LargePDF benchmarks validation of a 5 MB document
func BenchmarkValidator_Validate_LargePDF(b *testing.B) {
	validator := NewDefault()
	content := append(append([]byte(nil), pdfHeader...), make([]byte, 5*MB-int64(len(pdfHeader)))...)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		validator.Validate(content, "application/pdf")
	}
}

// BenchmarkValidator_ValidateReader benchmarks reader validation of a WebP stream
func BenchmarkValidator_ValidateReader(b *testing.B) {
	validator := NewDefault()
	content := append(append([]byte(nil), webpHeader...), make([]byte, 1<<20)...)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = validator.ValidateReader(bytes.NewReader(content), "image/webp")
	}
}

// BenchmarkDetectMIMEFromBytes benchmarks content sniffing
func BenchmarkDetectMIMEFromBytes(b *testing.B) {
	for i := 0; i < b.N; i++ {
		DetectMIMEFromBytes(webpHeader)
	}
}

func BenchmarkFormatSizeReadable(b *testing.B) {
	for i := 0; i < b.N; i++ {
		FormatSizeReadable(1572864)
	}
}
