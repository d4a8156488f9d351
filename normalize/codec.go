package normalize

import (
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Codec decodes any supported input and encodes the canonical output format
type Codec interface {
	// Format returns the MIME type of encoded output
	Format() string

	// Name returns the decoder format name of canonical input, as reported by image.DecodeConfig
	Name() string

	// DecodeConfig reads only the header
	DecodeConfig(r io.Reader) (image.Config, string, error)

	// Decode reads the full image
	Decode(r io.Reader) (image.Image, string, error)

	// Encode writes img at the given quality
	Encode(w io.Writer, img image.Image, quality int) error
}

// JPEGCodec decodes JPEG, PNG, GIF, WebP and TIFF and encodes baseline JPEG
type JPEGCodec struct{}

// Format implements Codec
func (JPEGCodec) Format() string { return "image/jpeg" }

// Name implements Codec
func (JPEGCodec) Name() string { return "jpeg" }

// DecodeConfig implements Codec
func (JPEGCodec) DecodeConfig(r io.Reader) (image.Config, string, error) {
	return image.DecodeConfig(r)
}

// Decode implements Codec
func (JPEGCodec) Decode(r io.Reader) (image.Image, string, error) {
	return image.Decode(r)
}

// Encode implements Codec
func (JPEGCodec) Encode(w io.Writer, img image.Image, quality int) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
}
