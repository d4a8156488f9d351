package evidencekit

import (
	"context"
	"log/slog"

	"github.com/gobeaver/evidencekit/filevalidator"
	"github.com/gobeaver/evidencekit/metrics"
	"github.com/gobeaver/evidencekit/normalize"
)

// ImageNormalizer converts a validated image into the canonical format
type ImageNormalizer interface {
	Normalize(ctx context.Context, data []byte, onProgress normalize.ProgressFunc) ([]byte, normalize.Stats, error)
	Format() string
}

// Option configures a Processor
type Option func(*Processor)

// WithValidator replaces the type validator and its size policy
func WithValidator(v filevalidator.Validator) Option {
	return func(p *Processor) {
		if v != nil {
			p.validator = v
		}
	}
}

// WithNormalizer replaces the image normalizer
func WithNormalizer(n ImageNormalizer) Option {
	return func(p *Processor) {
		if n != nil {
			p.normalizer = n
		}
	}
}

// WithMetrics records processing metrics; nil disables them
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Processor) {
		p.metrics = m
	}
}

// WithLogger sets the logger used when the context carries none
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = l
	}
}

// WithMessages replaces the user-facing message set
func WithMessages(m *Messages) Option {
	return func(p *Processor) {
		if m != nil {
			p.messages = m
		}
	}
}
