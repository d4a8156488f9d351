package filevalidator

import (
	"fmt"
	"io"
)

// Validator provides the main interface for validating files
type Validator interface {
	// Validate checks content against the signatures of the declared MIME type
	Validate(content []byte, declaredType string) *ValidationVerdict

	// ValidateReader validates by reading only the bounded prefix the declared type needs
	ValidateReader(reader io.Reader, declaredType string) (*ValidationVerdict, error)

	// Policy returns the size and category policy applied after type validation
	Policy() *SizePolicy
}

// FileValidator implements the Validator interface
type FileValidator struct {
	registry *SignatureRegistry
	policy   *SizePolicy
}

// New creates a new file validator with the given registry and policy.
// Nil arguments fall back to the defaults.
func New(registry *SignatureRegistry, policy *SizePolicy) *FileValidator {
	if registry == nil {
		registry = DefaultSignatureRegistry()
	}
	if policy == nil {
		policy = DefaultSizePolicy()
	}
	return &FileValidator{
		registry: registry,
		policy:   policy,
	}
}

// NewDefault creates a new file validator with the built-in signatures and default policy
func NewDefault() *FileValidator {
	return New(nil, nil)
}

// Validate validates content against the declared type.
// The declared type only selects which signatures to check; it is never trusted on its own.
func (v *FileValidator) Validate(content []byte, declaredType string) *ValidationVerdict {
	declared := NormalizeMIME(declaredType)
	b := newVerdictBuilder(declared)

	sigs, category, verr := v.resolve(declared)
	if verr != nil {
		b.verdict.Category = verr.Category
		b.check(string(verr.Type), false, verr.Message)
		return b.reject(verr)
	}
	b.verdict.Category = category
	b.check("mime", true, fmt.Sprintf("%s resolves to %s", declared, category))
	b.check("category", true, fmt.Sprintf("%s is accepted", category))

	return v.matchSignatures(b, sigs, content)
}

// ValidateReader validates a file from an io.Reader.
// Only the prefix required by the declared type's longest rule is read.
func (v *FileValidator) ValidateReader(reader io.Reader, declaredType string) (*ValidationVerdict, error) {
	declared := NormalizeMIME(declaredType)
	b := newVerdictBuilder(declared)

	sigs, category, verr := v.resolve(declared)
	if verr != nil {
		b.verdict.Category = verr.Category
		b.check(string(verr.Type), false, verr.Message)
		return b.reject(verr), nil
	}
	b.verdict.Category = category
	b.check("mime", true, fmt.Sprintf("%s resolves to %s", declared, category))
	b.check("category", true, fmt.Sprintf("%s is accepted", category))

	prefix, err := ReadPrefix(reader, MaxPrefix(sigs))
	if err != nil {
		return nil, err
	}

	return v.matchSignatures(b, sigs, prefix), nil
}

// Policy returns the size and category policy
func (v *FileValidator) Policy() *SizePolicy {
	return v.policy
}

// Registry returns the signature registry
func (v *FileValidator) Registry() *SignatureRegistry {
	return v.registry
}

// resolve maps a declared type to its signatures and category.
// Unknown types and disallowed categories fail closed.
func (v *FileValidator) resolve(declared string) ([]MediaSignature, Category, *ValidationError) {
	sigs := v.registry.SignaturesFor(declared)
	if len(sigs) == 0 {
		return nil, CategoryNone, NewValidationError(
			ErrorTypeMIME,
			fmt.Sprintf("file type %q is not accepted; allowed types: %v", declared, v.registry.MIMETypes()),
		)
	}

	category := sigs[0].Category
	if !v.policy.Allows(category) {
		return nil, category, &ValidationError{
			Type:     ErrorTypeCategory,
			Message:  fmt.Sprintf("%s files are not accepted; allowed categories: %v", category, v.policy.AllowedCategories()),
			Category: category,
		}
	}
	return sigs, category, nil
}

func (v *FileValidator) matchSignatures(b *verdictBuilder, sigs []MediaSignature, content []byte) *ValidationVerdict {
	b.verdict.DetectedMIME = v.registry.Detect(content)

	if need := minPrefix(sigs); len(content) < need {
		msg := fmt.Sprintf("file too short for %s signature: %d bytes (need %d)", b.verdict.DeclaredMIME, len(content), need)
		b.check("signature", false, msg)
		return b.reject(&ValidationError{
			Type:     ErrorTypeSignature,
			Message:  msg,
			Category: b.verdict.Category,
		})
	}

	if !MatchesAny(sigs, content) {
		msg := fmt.Sprintf("content does not match the %s signature (detected %s)", b.verdict.DeclaredMIME, b.verdict.DetectedMIME)
		b.check("signature", false, msg)
		return b.reject(&ValidationError{
			Type:     ErrorTypeSignature,
			Message:  msg,
			Category: b.verdict.Category,
		})
	}

	b.check("signature", true, fmt.Sprintf("content matches %s", b.verdict.DeclaredMIME))
	return b.accept()
}

// minPrefix returns the shortest prefix that could satisfy any of the signatures
func minPrefix(sigs []MediaSignature) int {
	n := -1
	for _, sig := range sigs {
		if p := sig.PrefixLen(); n < 0 || p < n {
			n = p
		}
	}
	if n < 0 {
		return 0
	}
	return n
}
