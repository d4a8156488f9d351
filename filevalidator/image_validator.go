package filevalidator

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageValidator validates image dimensions from the header only.
// It guards the normalizer against decompression bombs before a full decode.
type ImageValidator struct {
	MaxWidth  int
	MaxHeight int
	MaxPixels int
	MinWidth  int
	MinHeight int
}

// DefaultImageValidator creates an image validator with sensible defaults
func DefaultImageValidator() *ImageValidator {
	return &ImageValidator{
		MaxWidth:  12000,
		MaxHeight: 12000,
		MaxPixels: 60000000, // 60 megapixels
		MinWidth:  1,
		MinHeight: 1,
	}
}

// ValidateContent validates an image by reading only the header.
// Uses image.DecodeConfig which only reads bytes needed for dimensions.
func (v *ImageValidator) ValidateContent(reader io.Reader, size int64) error {
	cfg, _, err := v.DecodeConfig(reader)
	if err != nil {
		return err
	}
	return v.CheckDimensions(cfg.Width, cfg.Height)
}

// DecodeConfig reads the image header and returns its configuration and format name
func (v *ImageValidator) DecodeConfig(reader io.Reader) (image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(reader)
	if err != nil {
		return image.Config{}, "", NewValidationError(ErrorTypeContent, fmt.Sprintf("cannot decode image: %v", err))
	}
	return cfg, format, nil
}

// CheckDimensions validates width and height against the configured bounds
func (v *ImageValidator) CheckDimensions(width, height int) error {
	if width > v.MaxWidth {
		return NewValidationError(ErrorTypeContent,
			fmt.Sprintf("image width %d exceeds maximum %d", width, v.MaxWidth))
	}

	if height > v.MaxHeight {
		return NewValidationError(ErrorTypeContent,
			fmt.Sprintf("image height %d exceeds maximum %d", height, v.MaxHeight))
	}

	if width < v.MinWidth {
		return NewValidationError(ErrorTypeContent,
			fmt.Sprintf("image width %d below minimum %d", width, v.MinWidth))
	}

	if height < v.MinHeight {
		return NewValidationError(ErrorTypeContent,
			fmt.Sprintf("image height %d below minimum %d", height, v.MinHeight))
	}

	// Check total pixels (decompression bomb protection)
	totalPixels := int64(width) * int64(height)
	if totalPixels > int64(v.MaxPixels) {
		return NewValidationError(ErrorTypeContent,
			fmt.Sprintf("total pixels %d exceeds maximum %d", totalPixels, v.MaxPixels))
	}

	return nil
}
