package evidencekit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/gobeaver/evidencekit/filevalidator"
	"github.com/gobeaver/evidencekit/logger"
	"github.com/gobeaver/evidencekit/metrics"
	"github.com/gobeaver/evidencekit/normalize"
)

// Processor runs the evidence pipeline: type validation, size policy, then
// image normalization or document pass-through.
// It holds no per-call state and is safe for concurrent use.
type Processor struct {
	cfg        *Config
	validator  filevalidator.Validator
	normalizer ImageNormalizer
	metrics    *metrics.Metrics
	logger     *slog.Logger
	messages   *Messages
	checksum   ChecksumAlgorithm
}

// New creates a Processor from cfg; a nil cfg uses DefaultConfig
func New(cfg *Config, opts ...Option) (*Processor, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	secondary, err := language.Parse(cfg.SecondaryLocale)
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	p := &Processor{
		cfg:        cfg,
		validator:  filevalidator.New(nil, cfg.SizePolicy()),
		normalizer: normalize.New(normalize.WithOptions(cfg.NormalizeOptions())),
		messages:   NewMessages(secondary),
		checksum:   ChecksumAlgorithm(cfg.ChecksumAlgorithm),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// NewDefault creates a Processor with the built-in defaults
func NewDefault() *Processor {
	p, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return p
}

// Config returns the configuration the processor was built from
func (p *Processor) Config() *Config {
	return p.cfg
}

// Process validates data against declaredType, enforces the size policy and
// normalizes images. Documents are returned unchanged.
//
// On failure the error is always an *Error and the result is nil.
// onProgress may be nil.
func (p *Processor) Process(ctx context.Context, data []byte, declaredType string, onProgress ProgressFunc) (*Result, error) {
	start := time.Now()
	id := uuid.NewString()
	log := p.log(ctx).With("processing_id", id, "declared_type", declaredType)
	log.Debug("processing stage", "stage", StageStart, "size", len(data))

	if err := ctx.Err(); err != nil {
		return nil, p.fail(log, start, p.messages.newError(CodeProcessingCanceled, filevalidator.CategoryNone, declaredType, 0, 0, err))
	}

	verdict := p.validator.Validate(data, declaredType)
	if !verdict.IsValid {
		return nil, p.fail(log, start, p.messages.newError(CodeInvalidFileType, verdict.Category, verdict.DeclaredMIME, 0, 0, verdict.Error()))
	}
	category := verdict.Category
	log.Debug("processing stage", "stage", StageTypeValidated, "category", category)

	size := int64(len(data))
	if err := p.validator.Policy().CheckSize(category, size); err != nil {
		limit, _ := p.validator.Policy().Limit(category)
		return nil, p.fail(log, start, p.messages.newError(TooLargeCode(category), category, verdict.DeclaredMIME, size, limit, err))
	}
	log.Debug("processing stage", "stage", StageSizeChecked, "size", size)

	var (
		out      []byte
		mimeType string
		stats    *normalize.Stats
	)
	switch category {
	case filevalidator.CategoryImage:
		normalized, s, err := p.normalizer.Normalize(ctx, data, normalize.ProgressFunc(onProgress))
		if err != nil {
			code := CodeCompressionFailed
			if normalize.IsCanceled(err) {
				code = CodeProcessingCanceled
			}
			return nil, p.fail(log, start, p.messages.newError(code, category, verdict.DeclaredMIME, size, 0, err))
		}
		out, mimeType, stats = normalized, p.normalizer.Format(), &s
		p.metrics.ObserveNormalization(s.OriginalSize, s.CompressedSize, s.FastPath)
		log.Debug("processing stage", "stage", StageNormalized,
			"compressed_size", s.CompressedSize, "quality", s.Quality, "fast_path", s.FastPath)

	default:
		if err := ctx.Err(); err != nil {
			return nil, p.fail(log, start, p.messages.newError(CodeProcessingCanceled, category, verdict.DeclaredMIME, size, 0, err))
		}
		out, mimeType = data, verdict.DetectedMIME
		if onProgress != nil {
			onProgress(100)
		}
		log.Debug("processing stage", "stage", StagePassThrough)
	}

	sum, err := CalculateChecksum(out, p.checksum)
	if err != nil {
		return nil, p.fail(log, start, p.messages.newError(CodeCompressionFailed, category, verdict.DeclaredMIME, size, 0, err))
	}

	result := &Result{
		ID:                id,
		Data:              out,
		Category:          category,
		MIMEType:          mimeType,
		Stats:             stats,
		Checksum:          sum,
		ChecksumAlgorithm: p.checksum,
		Duration:          time.Since(start),
	}

	p.metrics.IncrementOutcome(category.String(), "ok")
	p.metrics.ObserveDuration(category.String(), result.Duration)
	log.Info("file processed",
		"stage", StageDone,
		"category", category,
		"mime_type", mimeType,
		"original_size", size,
		"output_size", result.Size(),
		"duration", result.Duration,
	)
	return result, nil
}

// fail records a terminal failure and returns e
func (p *Processor) fail(log *slog.Logger, start time.Time, e *Error) *Error {
	category := e.Category.String()
	p.metrics.IncrementOutcome(category, string(e.Code))
	p.metrics.ObserveDuration(category, time.Since(start))

	level := slog.LevelWarn
	if e.Code == CodeCompressionFailed && !errors.Is(e.Err, normalize.ErrDecode) {
		level = slog.LevelError
	}
	log.Log(context.Background(), level, "file rejected",
		"code", e.Code,
		"category", e.Category,
		"size", e.Size,
		"limit", e.Limit,
		"error", e.Err,
	)
	return e
}

func (p *Processor) log(ctx context.Context) *slog.Logger {
	if p.logger != nil {
		return p.logger
	}
	return logger.FromContext(ctx)
}
