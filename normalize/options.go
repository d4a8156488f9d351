package normalize

import (
	"errors"
	"log/slog"

	"github.com/gobeaver/evidencekit/filevalidator"
)

// Options controls normalization output
type Options struct {
	// Quality is the first encode quality, 1-100
	Quality int

	// MinQuality is the lowest quality the retry loop will try
	MinQuality int

	// QualityStep is how much quality drops per retry
	QualityStep int

	// MaxDimension bounds the longest side in pixels; 0 disables downscaling
	MaxDimension int

	// TargetSize is the output size in bytes the retry loop aims for; 0 disables retries
	TargetSize int64

	// FastPath returns small canonical inputs unchanged after verification
	FastPath bool

	// FastPathThreshold is the largest input in bytes eligible for the fast path
	FastPathThreshold int64
}

// DefaultOptions returns the production defaults
func DefaultOptions() Options {
	return Options{
		Quality:           82,
		MinQuality:        40,
		QualityStep:       10,
		MaxDimension:      1920,
		TargetSize:        1 * filevalidator.MB,
		FastPath:          true,
		FastPathThreshold: 500 * filevalidator.KB,
	}
}

// Validate checks the options for consistency
func (o Options) Validate() error {
	switch {
	case o.Quality < 1 || o.Quality > 100:
		return errors.New("quality must be between 1 and 100")
	case o.MinQuality < 1 || o.MinQuality > o.Quality:
		return errors.New("min quality must be between 1 and quality")
	case o.QualityStep < 1:
		return errors.New("quality step must be positive")
	case o.MaxDimension < 0:
		return errors.New("max dimension must not be negative")
	case o.TargetSize < 0:
		return errors.New("target size must not be negative")
	case o.FastPathThreshold < 0:
		return errors.New("fast path threshold must not be negative")
	}
	return nil
}

// Option configures a Normalizer
type Option func(*Normalizer)

// WithOptions replaces the normalization options
func WithOptions(opts Options) Option {
	return func(n *Normalizer) {
		n.opts = opts
	}
}

// WithCodec sets the canonical codec
func WithCodec(c Codec) Option {
	return func(n *Normalizer) {
		if c != nil {
			n.codec = c
		}
	}
}

// WithBoundsGuard sets the header dimension check run before decoding
func WithBoundsGuard(g *filevalidator.ImageValidator) Option {
	return func(n *Normalizer) {
		if g != nil {
			n.guard = g
		}
	}
}

// WithLogger sets the logger used when no logger is carried by the context
func WithLogger(l *slog.Logger) Option {
	return func(n *Normalizer) {
		n.logger = l
	}
}
