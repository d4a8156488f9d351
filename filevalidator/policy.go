package filevalidator

import (
	"fmt"
)

// Size constants for easier file size configuration
const (
	KB = int64(1024)
	MB = KB * 1024
	GB = MB * 1024
)

// Default ceilings
const (
	DefaultDocumentMaxSize = 5 * MB
	DefaultImageMaxSize    = 10 * MB
)

// SizePolicy holds per-category size ceilings and the accepted-category allowlist.
// Build it with NewSizePolicy; it is read-only afterwards.
type SizePolicy struct {
	limits  map[Category]int64
	allowed map[Category]bool
}

// PolicyOption configures a SizePolicy under construction
type PolicyOption func(*SizePolicy)

// WithLimit sets the inclusive ceiling in bytes for a category.
// A limit of 0 or less removes the ceiling.
func WithLimit(category Category, maxBytes int64) PolicyOption {
	return func(p *SizePolicy) {
		if maxBytes <= 0 {
			delete(p.limits, category)
			return
		}
		p.limits[category] = maxBytes
	}
}

// WithAllowedCategories replaces the accepted-category allowlist
func WithAllowedCategories(categories ...Category) PolicyOption {
	return func(p *SizePolicy) {
		p.allowed = make(map[Category]bool, len(categories))
		for _, c := range categories {
			p.allowed[c] = true
		}
	}
}

// NewSizePolicy creates a policy starting from the defaults:
// documents up to 5 MB, images up to 10 MB, both categories allowed.
func NewSizePolicy(opts ...PolicyOption) *SizePolicy {
	p := &SizePolicy{
		limits: map[Category]int64{
			CategoryDocument: DefaultDocumentMaxSize,
			CategoryImage:    DefaultImageMaxSize,
		},
		allowed: map[Category]bool{
			CategoryDocument: true,
			CategoryImage:    true,
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *SizePolicy) clone() *SizePolicy {
	c := &SizePolicy{
		limits:  make(map[Category]int64, len(p.limits)),
		allowed: make(map[Category]bool, len(p.allowed)),
	}
	for k, v := range p.limits {
		c.limits[k] = v
	}
	for k, v := range p.allowed {
		c.allowed[k] = v
	}
	return c
}

// DefaultSizePolicy returns a policy with the default ceilings
func DefaultSizePolicy() *SizePolicy {
	return NewSizePolicy()
}

// Limit returns the ceiling for a category and whether one is set
func (p *SizePolicy) Limit(category Category) (int64, bool) {
	limit, ok := p.limits[category]
	return limit, ok
}

// Allows reports whether a category is on the allowlist
func (p *SizePolicy) Allows(category Category) bool {
	return p.allowed[category]
}

// AllowedCategories returns the allowlist in declaration order
func (p *SizePolicy) AllowedCategories() []Category {
	var out []Category
	for _, c := range Categories {
		if p.allowed[c] {
			out = append(out, c)
		}
	}
	return out
}

// CheckSize verifies size against the category ceiling.
// The bound is inclusive: a file exactly at the limit is accepted.
func (p *SizePolicy) CheckSize(category Category, size int64) error {
	if size < 0 {
		return &ValidationError{
			Type:     ErrorTypeSize,
			Message:  fmt.Sprintf("invalid file size: %d bytes", size),
			Category: category,
			Size:     size,
		}
	}
	limit, ok := p.limits[category]
	if !ok {
		return nil
	}
	if size > limit {
		return NewSizeError(category, size, limit)
	}
	return nil
}
