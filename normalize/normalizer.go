package normalize

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"log/slog"
	"math"

	"golang.org/x/image/draw"

	"github.com/gobeaver/evidencekit/filevalidator"
	"github.com/gobeaver/evidencekit/logger"
)

// Stats describes a successful normalization
type Stats struct {
	OriginalSize   int64
	CompressedSize int64
	OutputFormat   string
	Width          int
	Height         int
	Quality        int  // 0 when the input was returned unchanged
	FastPath       bool // input was already canonical and returned unchanged
}

// Ratio returns CompressedSize / OriginalSize, or 0 for empty input
func (s Stats) Ratio() float64 {
	if s.OriginalSize == 0 {
		return 0
	}
	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// Saved returns the number of bytes removed, never negative
func (s Stats) Saved() int64 {
	if s.CompressedSize >= s.OriginalSize {
		return 0
	}
	return s.OriginalSize - s.CompressedSize
}

// Normalizer converts images to the canonical format.
// It holds no per-call state and is safe for concurrent use.
type Normalizer struct {
	opts   Options
	codec  Codec
	guard  *filevalidator.ImageValidator
	logger *slog.Logger
}

// New creates a Normalizer with DefaultOptions and the JPEG codec unless overridden
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		opts:  DefaultOptions(),
		codec: JPEGCodec{},
		guard: filevalidator.DefaultImageValidator(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Options returns the active options
func (n *Normalizer) Options() Options {
	return n.opts
}

// Format returns the canonical output MIME type
func (n *Normalizer) Format() string {
	return n.codec.Format()
}

// Normalize decodes data and re-encodes it in the canonical format.
// onProgress may be nil; when set it sees strictly increasing values ending at 100 on success.
// On failure no output is returned and the error is an *Error.
func (n *Normalizer) Normalize(ctx context.Context, data []byte, onProgress ProgressFunc) ([]byte, Stats, error) {
	p := newProgress(onProgress)
	log := n.log(ctx)
	p.report(ProgressStart)

	if err := ctx.Err(); err != nil {
		return nil, Stats{}, &Error{Op: "start", Err: err}
	}

	cfg, format, err := n.codec.DecodeConfig(&ctxReader{ctx: ctx, r: bytes.NewReader(data)})
	if err != nil {
		return nil, Stats{}, n.ioError(ctx, "decode_config", ErrDecode, err)
	}
	if err := n.guard.CheckDimensions(cfg.Width, cfg.Height); err != nil {
		return nil, Stats{}, opError("bounds", ErrImageBounds, err)
	}

	img, _, err := n.codec.Decode(&ctxReader{ctx: ctx, r: bytes.NewReader(data)})
	if err != nil {
		return nil, Stats{}, n.ioError(ctx, "decode", ErrDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, &Error{Op: "decode", Err: err}
	}
	p.report(ProgressDecoded)

	if n.fastPathEligible(data, format, img) {
		b := img.Bounds()
		log.Debug("normalize fast path", "size", len(data), "width", b.Dx(), "height", b.Dy())
		p.report(ProgressDone)
		return data, Stats{
			OriginalSize:   int64(len(data)),
			CompressedSize: int64(len(data)),
			OutputFormat:   n.codec.Format(),
			Width:          b.Dx(),
			Height:         b.Dy(),
			FastPath:       true,
		}, nil
	}

	img = flatten(img)
	img = downscale(img, n.opts.MaxDimension)
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, &Error{Op: "resize", Err: err}
	}
	p.report(ProgressResized)

	out, quality, err := n.encode(ctx, img, p)
	if err != nil {
		return nil, Stats{}, err
	}

	b := img.Bounds()
	stats := Stats{
		OriginalSize:   int64(len(data)),
		CompressedSize: int64(len(out)),
		OutputFormat:   n.codec.Format(),
		Width:          b.Dx(),
		Height:         b.Dy(),
		Quality:        quality,
	}
	log.Debug("normalized image",
		"input_format", format,
		"original_size", stats.OriginalSize,
		"compressed_size", stats.CompressedSize,
		"quality", quality,
	)
	p.report(ProgressDone)
	return out, stats, nil
}

// fastPathEligible requires canonical magic bytes, a canonical decoder, a small input and in-bound dimensions.
// The caller has already fully decoded the input, which is the verification.
func (n *Normalizer) fastPathEligible(data []byte, format string, img image.Image) bool {
	if !n.opts.FastPath || int64(len(data)) > n.opts.FastPathThreshold {
		return false
	}
	if format != n.codec.Name() || filevalidator.DetectMIMEFromBytes(data) != n.codec.Format() {
		return false
	}
	b := img.Bounds()
	if n.opts.MaxDimension > 0 && (b.Dx() > n.opts.MaxDimension || b.Dy() > n.opts.MaxDimension) {
		return false
	}
	return true
}

// encode runs the quality loop and keeps the smallest output
func (n *Normalizer) encode(ctx context.Context, img image.Image, p *progress) ([]byte, int, error) {
	attempts := n.attempts()
	quality := n.opts.Quality

	var best []byte
	bestQuality := 0
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return nil, 0, &Error{Op: "encode", Err: err}
		}

		var buf bytes.Buffer
		if err := n.codec.Encode(&ctxWriter{ctx: ctx, w: &buf}, img, quality); err != nil {
			return nil, 0, n.ioError(ctx, "encode", ErrEncode, err)
		}
		if buf.Len() == 0 {
			return nil, 0, opError("encode", ErrEncode, nil)
		}
		if best == nil || buf.Len() < len(best) {
			best = buf.Bytes()
			bestQuality = quality
		}
		p.report(encodeStep(i, attempts))

		if n.opts.TargetSize <= 0 || int64(len(best)) <= n.opts.TargetSize {
			break
		}
		quality = max(quality-n.opts.QualityStep, n.opts.MinQuality)
	}
	p.report(ProgressEncoded)
	return best, bestQuality, nil
}

// attempts is the number of qualities from Quality down to MinQuality, inclusive
func (n *Normalizer) attempts() int {
	if n.opts.TargetSize <= 0 || n.opts.QualityStep <= 0 || n.opts.MinQuality >= n.opts.Quality {
		return 1
	}
	span := n.opts.Quality - n.opts.MinQuality
	return (span+n.opts.QualityStep-1)/n.opts.QualityStep + 1
}

func (n *Normalizer) ioError(ctx context.Context, op string, sentinel, cause error) error {
	if err := ctx.Err(); err != nil {
		return &Error{Op: op, Err: err}
	}
	return opError(op, sentinel, cause)
}

func (n *Normalizer) log(ctx context.Context) *slog.Logger {
	if n.logger != nil {
		return n.logger
	}
	return logger.FromContext(ctx)
}

// flatten composites transparent images onto white; opaque images pass through
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// downscale shrinks img so its longest side is at most maxDim, keeping aspect ratio
func downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	longest := max(w, h)
	if maxDim <= 0 || longest <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(longest)
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
