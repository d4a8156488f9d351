package evidencekit

import (
	"sync"

	"github.com/gobeaver/beaver-kit/config"
)

// Global instance
var (
	defaultProcessor *Processor
	defaultOnce      sync.Once
	defaultErr       error
)

// Builder provides a way to create Processor instances with custom prefixes
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// Init initializes the global Processor instance using the builder's prefix
func (b *Builder) Init() error {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return err
	}
	return Init(cfg)
}

// New creates a new Processor instance using the builder's prefix
func (b *Builder) New(opts ...Option) (*Processor, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// Init initializes the global processor instance
func Init(configs ...*Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultProcessor, defaultErr = New(cfg)
	})

	return defaultErr
}

// Default returns the global instance, initializing it from the environment if needed
func Default() (*Processor, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	return defaultProcessor, nil
}

// NewFromEnv creates instance from environment variables (convenience constructor)
func NewFromEnv(opts ...Option) (*Processor, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// Reset clears the global instance (for testing)
func Reset() {
	defaultProcessor = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}
