package evidencekit

import (
	"errors"
	"fmt"

	"github.com/gobeaver/beaver-kit/config"
	"golang.org/x/text/language"

	"github.com/gobeaver/evidencekit/filevalidator"
	"github.com/gobeaver/evidencekit/logger"
	"github.com/gobeaver/evidencekit/normalize"
)

type Config struct {
	// Size ceilings in bytes, inclusive
	DocumentMaxSize int64 `env:"EVIDENCEKIT_DOCUMENT_MAX_SIZE,default:5242880"` // 5MB
	ImageMaxSize    int64 `env:"EVIDENCEKIT_IMAGE_MAX_SIZE,default:10485760"`   // 10MB

	// Accepted categories
	AllowImages    bool `env:"EVIDENCEKIT_ALLOW_IMAGES,default:true"`
	AllowDocuments bool `env:"EVIDENCEKIT_ALLOW_DOCUMENTS,default:true"`

	// Image normalization
	ImageQuality      int   `env:"EVIDENCEKIT_IMAGE_QUALITY,default:82"`
	ImageMinQuality   int   `env:"EVIDENCEKIT_IMAGE_MIN_QUALITY,default:40"`
	ImageQualityStep  int   `env:"EVIDENCEKIT_IMAGE_QUALITY_STEP,default:10"`
	ImageMaxDimension int   `env:"EVIDENCEKIT_IMAGE_MAX_DIMENSION,default:1920"`
	ImageTargetSize   int64 `env:"EVIDENCEKIT_IMAGE_TARGET_SIZE,default:1048576"` // 1MB

	// Fast path for inputs that are already small canonical images
	FastPathEnabled   bool  `env:"EVIDENCEKIT_FAST_PATH_ENABLED,default:true"`
	FastPathThreshold int64 `env:"EVIDENCEKIT_FAST_PATH_THRESHOLD,default:512000"`

	// Locale of the second user-facing message, BCP 47
	SecondaryLocale string `env:"EVIDENCEKIT_SECONDARY_LOCALE,default:es"`

	// Output checksum: xxhash, sha256, sha512 or crc32
	ChecksumAlgorithm string `env:"EVIDENCEKIT_CHECKSUM_ALGORITHM,default:xxhash"`

	// Maximum files processed at once by ProcessBatch
	BatchConcurrency int `env:"EVIDENCEKIT_BATCH_CONCURRENCY,default:4"`

	// Logging
	LogLevel  string `env:"EVIDENCEKIT_LOG_LEVEL,default:info"`
	LogFormat string `env:"EVIDENCEKIT_LOG_FORMAT,default:text"`
}

// DefaultConfig returns the built-in defaults without reading the environment
func DefaultConfig() *Config {
	opts := normalize.DefaultOptions()
	return &Config{
		DocumentMaxSize:   filevalidator.DefaultDocumentMaxSize,
		ImageMaxSize:      filevalidator.DefaultImageMaxSize,
		AllowImages:       true,
		AllowDocuments:    true,
		ImageQuality:      opts.Quality,
		ImageMinQuality:   opts.MinQuality,
		ImageQualityStep:  opts.QualityStep,
		ImageMaxDimension: opts.MaxDimension,
		ImageTargetSize:   opts.TargetSize,
		FastPathEnabled:   opts.FastPath,
		FastPathThreshold: opts.FastPathThreshold,
		SecondaryLocale:   "es",
		ChecksumAlgorithm: string(ChecksumXXHash),
		BatchConcurrency:  4,
		LogLevel:          "info",
		LogFormat:         "text",
	}
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig returns config loaded from environment using a custom variable prefix
func LoadConfig(prefix string) (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: prefix}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	if c.DocumentMaxSize <= 0 {
		return errors.New("document max size must be positive")
	}
	if c.ImageMaxSize <= 0 {
		return errors.New("image max size must be positive")
	}
	if !c.AllowImages && !c.AllowDocuments {
		return errors.New("at least one file category must be allowed")
	}
	if err := c.NormalizeOptions().Validate(); err != nil {
		return fmt.Errorf("image normalization: %w", err)
	}
	if _, err := language.Parse(c.SecondaryLocale); err != nil {
		return fmt.Errorf("secondary locale %q: %w", c.SecondaryLocale, err)
	}
	if _, err := NewHasher(ChecksumAlgorithm(c.ChecksumAlgorithm)); err != nil {
		return err
	}
	if c.BatchConcurrency < 1 {
		return errors.New("batch concurrency must be at least 1")
	}
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("unknown log level: %s", c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format: %s", c.LogFormat)
	}
	return nil
}

// NormalizeOptions maps the image settings onto normalizer options
func (c *Config) NormalizeOptions() normalize.Options {
	return normalize.Options{
		Quality:           c.ImageQuality,
		MinQuality:        c.ImageMinQuality,
		QualityStep:       c.ImageQualityStep,
		MaxDimension:      c.ImageMaxDimension,
		TargetSize:        c.ImageTargetSize,
		FastPath:          c.FastPathEnabled,
		FastPathThreshold: c.FastPathThreshold,
	}
}

// SizePolicy builds the size and category policy
func (c *Config) SizePolicy() *filevalidator.SizePolicy {
	var allowed []filevalidator.Category
	if c.AllowImages {
		allowed = append(allowed, filevalidator.CategoryImage)
	}
	if c.AllowDocuments {
		allowed = append(allowed, filevalidator.CategoryDocument)
	}
	return filevalidator.NewSizePolicy(
		filevalidator.WithLimit(filevalidator.CategoryDocument, c.DocumentMaxSize),
		filevalidator.WithLimit(filevalidator.CategoryImage, c.ImageMaxSize),
		filevalidator.WithAllowedCategories(allowed...),
	)
}
