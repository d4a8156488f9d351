package filevalidator

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrInvalidSignature is returned when a signature table entry is incomplete
var ErrInvalidSignature = errors.New("invalid media signature")

// containerWrappers are outer envelopes shared by unrelated formats.
// A signature made only of one of these is ambiguous.
var containerWrappers = [][]byte{
	[]byte("RIFF"),
	[]byte("RIFX"),
	[]byte("FORM"),
}

// SignatureRegistry maps declared MIME types to the signatures that must match.
// It is immutable after construction and safe for concurrent reads.
type SignatureRegistry struct {
	signatures []MediaSignature
	byMIME     map[string][]MediaSignature
	maxPrefix  int
}

// NewSignatureRegistry validates the signatures and builds a registry.
// Every signature must be fully specified; see ValidateSignature.
func NewSignatureRegistry(sigs ...MediaSignature) (*SignatureRegistry, error) {
	sigs = cloneSignatures(sigs)
	registry := &SignatureRegistry{
		signatures: sigs,
		byMIME:     make(map[string][]MediaSignature),
	}

	categoryOf := make(map[string]Category)
	for _, sig := range sigs {
		if err := ValidateSignature(sig); err != nil {
			return nil, err
		}
		for _, mime := range sig.MIMECandidates {
			mime = NormalizeMIME(mime)
			if existing, ok := categoryOf[mime]; ok && existing != sig.Category {
				return nil, fmt.Errorf("%w: %s is declared for both %s and %s", ErrInvalidSignature, mime, existing, sig.Category)
			}
			categoryOf[mime] = sig.Category
			registry.byMIME[mime] = append(registry.byMIME[mime], sig)
		}
		if p := sig.PrefixLen(); p > registry.maxPrefix {
			registry.maxPrefix = p
		}
	}

	return registry, nil
}

// ValidateSignature checks that a signature has a name, a known category,
// at least one MIME candidate and at least one non-empty rule, and that it
// does not rely on a shared container wrapper alone.
func ValidateSignature(sig MediaSignature) error {
	if strings.TrimSpace(sig.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidSignature)
	}
	if !sig.Category.Valid() {
		return fmt.Errorf("%w: %s has unknown category %q", ErrInvalidSignature, sig.Name, string(sig.Category))
	}
	if len(sig.MIMECandidates) == 0 {
		return fmt.Errorf("%w: %s has no MIME candidates", ErrInvalidSignature, sig.Name)
	}
	for _, mime := range sig.MIMECandidates {
		if NormalizeMIME(mime) == "" {
			return fmt.Errorf("%w: %s has an empty MIME candidate", ErrInvalidSignature, sig.Name)
		}
	}
	if len(sig.Rules) == 0 {
		return fmt.Errorf("%w: %s has no byte rules", ErrInvalidSignature, sig.Name)
	}
	for i, rule := range sig.Rules {
		if rule.Offset < 0 {
			return fmt.Errorf("%w: %s rule %d has negative offset", ErrInvalidSignature, sig.Name, i)
		}
		if len(rule.Expected) == 0 {
			return fmt.Errorf("%w: %s rule %d has no expected bytes", ErrInvalidSignature, sig.Name, i)
		}
	}
	if wrapperOnly(sig) {
		return fmt.Errorf("%w: %s only checks a container wrapper; an inner format marker is required", ErrInvalidSignature, sig.Name)
	}
	return nil
}

// wrapperOnly reports whether every rule of sig is a container wrapper at offset 0
func wrapperOnly(sig MediaSignature) bool {
	for _, rule := range sig.Rules {
		if rule.Offset != 0 || !isContainerWrapper(rule.Expected) {
			return false
		}
	}
	return true
}

func isContainerWrapper(expected []byte) bool {
	for _, wrapper := range containerWrappers {
		if bytes.Equal(expected, wrapper) {
			return true
		}
	}
	return false
}

// Global default registry (lazy initialized)
var (
	defaultRegistry     *SignatureRegistry
	defaultRegistryOnce sync.Once
)

// DefaultSignatureRegistry returns the registry built from the built-in signatures.
// Thread-safe, lazy initialization. It panics if the built-in table is invalid,
// which the package tests rule out.
func DefaultSignatureRegistry() *SignatureRegistry {
	defaultRegistryOnce.Do(func() {
		registry, err := NewSignatureRegistry(builtinSignatures...)
		if err != nil {
			panic(err)
		}
		defaultRegistry = registry
	})
	return defaultRegistry
}

// SignaturesFor returns the signatures registered for a declared MIME type
func (r *SignatureRegistry) SignaturesFor(declaredMIME string) []MediaSignature {
	return r.byMIME[NormalizeMIME(declaredMIME)]
}

// CategoryFor resolves a declared MIME type to its category.
// The second result is false when the type is not registered.
func (r *SignatureRegistry) CategoryFor(declaredMIME string) (Category, bool) {
	sigs := r.SignaturesFor(declaredMIME)
	if len(sigs) == 0 {
		return CategoryNone, false
	}
	return sigs[0].Category, true
}

// HasMIME returns true if a signature is registered for the declared MIME type
func (r *SignatureRegistry) HasMIME(declaredMIME string) bool {
	return len(r.SignaturesFor(declaredMIME)) > 0
}

// MIMETypes returns all registered MIME types, sorted
func (r *SignatureRegistry) MIMETypes() []string {
	types := make([]string, 0, len(r.byMIME))
	for mime := range r.byMIME {
		types = append(types, mime)
	}
	sort.Strings(types)
	return types
}

// Signatures returns a copy of every registered signature
func (r *SignatureRegistry) Signatures() []MediaSignature {
	return cloneSignatures(r.signatures)
}

// MaxPrefixLen returns the longest prefix any registered signature needs
func (r *SignatureRegistry) MaxPrefixLen() int {
	return r.maxPrefix
}

// Detect returns the primary MIME type of the first signature matching data,
// or application/octet-stream
func (r *SignatureRegistry) Detect(data []byte) string {
	for _, sig := range r.signatures {
		if sig.Matches(data) {
			return NormalizeMIME(sig.MIMECandidates[0])
		}
	}
	return "application/octet-stream"
}
