package filevalidator

import (
	"fmt"
	"time"
)

// ValidationVerdict contains the outcome of a single type validation.
// It is created per call and not retained by the validator.
type ValidationVerdict struct {
	// IsValid indicates whether the file may be trusted as its declared type
	IsValid bool

	// MatchesSignature is true only when the content matched a signature of the declared type
	MatchesSignature bool

	// Category is the category the declared type resolved to; CategoryNone if unknown.
	// It is reported on signature mismatch for diagnostics only.
	Category Category

	// DeclaredMIME is the normalized claimed MIME type
	DeclaredMIME string

	// DetectedMIME is the MIME type detected from the file content
	DetectedMIME string

	// Err describes the rejection; nil when valid
	Err *ValidationError

	// Duration is how long validation took
	Duration time.Duration

	// Checks contains details about each validation check performed
	Checks []CheckResult
}

// CheckResult represents the result of a single validation check
type CheckResult struct {
	Name    string        // e.g., "mime", "category", "signature"
	Passed  bool          // whether this check passed
	Message string        // human-readable result
	Took    time.Duration // how long this check took
}

// Error returns the rejection as an error, nil if valid
func (v *ValidationVerdict) Error() error {
	if v.IsValid || v.Err == nil {
		return nil
	}
	return v.Err
}

// Summary returns a human-readable summary of the verdict
func (v *ValidationVerdict) Summary() string {
	if v.IsValid {
		return fmt.Sprintf("✓ %s (%s) validated in %v",
			v.DeclaredMIME,
			v.Category,
			v.Duration.Round(time.Microsecond),
		)
	}

	msg := "rejected"
	if v.Err != nil {
		msg = v.Err.Message
	}
	return fmt.Sprintf("✗ %s failed: %s", v.DeclaredMIME, msg)
}

// FailedChecks returns only the checks that failed
func (v *ValidationVerdict) FailedChecks() []CheckResult {
	var failed []CheckResult
	for _, check := range v.Checks {
		if !check.Passed {
			failed = append(failed, check)
		}
	}
	return failed
}

// verdictBuilder helps construct a ValidationVerdict
type verdictBuilder struct {
	verdict   ValidationVerdict
	startTime time.Time
	lastCheck time.Time
}

func newVerdictBuilder(declared string) *verdictBuilder {
	now := time.Now()
	return &verdictBuilder{
		verdict: ValidationVerdict{
			DeclaredMIME: declared,
			Checks:       make([]CheckResult, 0, 3),
		},
		startTime: now,
		lastCheck: now,
	}
}

func (b *verdictBuilder) check(name string, passed bool, message string) *verdictBuilder {
	now := time.Now()
	b.verdict.Checks = append(b.verdict.Checks, CheckResult{
		Name:    name,
		Passed:  passed,
		Message: message,
		Took:    now.Sub(b.lastCheck),
	})
	b.lastCheck = now
	return b
}

func (b *verdictBuilder) reject(err *ValidationError) *ValidationVerdict {
	b.verdict.IsValid = false
	b.verdict.Err = err
	return b.build()
}

func (b *verdictBuilder) accept() *ValidationVerdict {
	b.verdict.IsValid = true
	b.verdict.MatchesSignature = true
	b.verdict.Err = nil
	return b.build()
}

func (b *verdictBuilder) build() *ValidationVerdict {
	b.verdict.Duration = time.Since(b.startTime)
	return &b.verdict
}
