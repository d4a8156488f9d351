package filevalidator

// Builder provides a fluent API for constructing validators
type Builder struct {
	signatures []MediaSignature
	registry   *SignatureRegistry
	policy     *SizePolicy
	policyOpts []PolicyOption
}

// NewBuilder creates a new validator builder with the built-in signatures and default policy
func NewBuilder() *Builder {
	return &Builder{}
}

// --- Signatures ---

// WithRegistry uses a prebuilt signature registry
func (b *Builder) WithRegistry(registry *SignatureRegistry) *Builder {
	b.registry = registry
	b.signatures = nil
	return b
}

// WithSignatures builds the registry from the given signatures instead of the built-ins
func (b *Builder) WithSignatures(sigs ...MediaSignature) *Builder {
	b.signatures = append(b.signatures, sigs...)
	b.registry = nil
	return b
}

// --- Policy ---

// WithPolicy uses a prebuilt size policy; later MaxSize and Allow calls are applied on top of it
func (b *Builder) WithPolicy(policy *SizePolicy) *Builder {
	b.policy = policy
	b.policyOpts = nil
	return b
}

// MaxSize sets the inclusive ceiling for a category
func (b *Builder) MaxSize(category Category, size int64) *Builder {
	b.policyOpts = append(b.policyOpts, WithLimit(category, size))
	return b
}

// MaxDocumentSize sets the document ceiling
func (b *Builder) MaxDocumentSize(size int64) *Builder {
	return b.MaxSize(CategoryDocument, size)
}

// MaxImageSize sets the image ceiling
func (b *Builder) MaxImageSize(size int64) *Builder {
	return b.MaxSize(CategoryImage, size)
}

// Allow restricts accepted categories to the given ones
func (b *Builder) Allow(categories ...Category) *Builder {
	b.policyOpts = append(b.policyOpts, WithAllowedCategories(categories...))
	return b
}

// --- Build ---

// Build creates the validator. It fails if a custom signature is incomplete.
func (b *Builder) Build() (*FileValidator, error) {
	registry := b.registry
	if registry == nil && len(b.signatures) > 0 {
		var err error
		registry, err = NewSignatureRegistry(b.signatures...)
		if err != nil {
			return nil, err
		}
	}
	return New(registry, b.buildPolicy()), nil
}

func (b *Builder) buildPolicy() *SizePolicy {
	if b.policy == nil {
		return NewSizePolicy(b.policyOpts...)
	}
	if len(b.policyOpts) == 0 {
		return b.policy
	}
	p := b.policy.clone()
	for _, opt := range b.policyOpts {
		opt(p)
	}
	return p
}

// MustBuild is like Build but panics on an invalid signature table
func (b *Builder) MustBuild() *FileValidator {
	v, err := b.Build()
	if err != nil {
		panic(err)
	}
	return v
}

// --- Presets ---

// ForImages creates a builder that only accepts images
func ForImages() *Builder {
	return NewBuilder().Allow(CategoryImage)
}

// ForDocuments creates a builder that only accepts documents
func ForDocuments() *Builder {
	return NewBuilder().Allow(CategoryDocument)
}

// ForEvidence creates a builder for practitioner evidence uploads (images + documents)
func ForEvidence() *Builder {
	return NewBuilder().
		Allow(CategoryImage, CategoryDocument).
		MaxDocumentSize(DefaultDocumentMaxSize).
		MaxImageSize(DefaultImageMaxSize)
}
