package filevalidator

import (
	"bytes"
	"errors"
	"io"
)

// Category is the coarse class a media type belongs to
type Category string

const (
	CategoryNone     Category = ""
	CategoryImage    Category = "image"
	CategoryDocument Category = "document"
)

// Categories lists every known category
var Categories = []Category{CategoryImage, CategoryDocument}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	if c == CategoryNone {
		return "none"
	}
	return string(c)
}

// ByteRule is an exact byte sequence expected at a fixed offset.
// Every byte of Expected must match; there are no wildcard positions.
type ByteRule struct {
	Offset   int
	Expected []byte
}

// End returns the number of bytes a buffer needs for the rule to be checkable
func (r ByteRule) End() int {
	return r.Offset + len(r.Expected)
}

// Matches reports whether data holds Expected at Offset.
// A buffer too short to contain the rule never matches.
func (r ByteRule) Matches(data []byte) bool {
	if len(r.Expected) == 0 || r.Offset < 0 || r.End() > len(data) {
		return false
	}
	return bytes.Equal(data[r.Offset:r.End()], r.Expected)
}

// MediaSignature identifies one binary format.
// All Rules must match; container formats carry the wrapper rule and the
// inner format marker as separate rules.
type MediaSignature struct {
	Name           string
	Category       Category
	MIMECandidates []string
	Rules          []ByteRule
}

// PrefixLen returns the number of leading bytes needed to evaluate every rule
func (s MediaSignature) PrefixLen() int {
	n := 0
	for _, rule := range s.Rules {
		if rule.End() > n {
			n = rule.End()
		}
	}
	return n
}

// Matches reports whether every rule of the signature matches data
func (s MediaSignature) Matches(data []byte) bool {
	if len(s.Rules) == 0 {
		return false
	}
	for _, rule := range s.Rules {
		if !rule.Matches(data) {
			return false
		}
	}
	return true
}

// AcceptsMIME reports whether mime is one of the signature's declared types
func (s MediaSignature) AcceptsMIME(mime string) bool {
	for _, candidate := range s.MIMECandidates {
		if candidate == mime {
			return true
		}
	}
	return false
}

// MatchesAny reports whether any of the signatures fully matches data.
// An empty signature list never matches.
func MatchesAny(sigs []MediaSignature, data []byte) bool {
	for _, sig := range sigs {
		if sig.Matches(data) {
			return true
		}
	}
	return false
}

// MaxPrefix returns the longest prefix any of the signatures needs
func MaxPrefix(sigs []MediaSignature) int {
	n := 0
	for _, sig := range sigs {
		if p := sig.PrefixLen(); p > n {
			n = p
		}
	}
	return n
}

// ReadPrefix reads at most n bytes from reader.
// Short input is not an error; the returned slice is simply shorter.
func ReadPrefix(reader io.Reader, n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(reader, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, NewValidationError(ErrorTypeSignature, "failed to read file prefix for signature check")
	}
	return buf[:read], nil
}

// builtinSignatures contains the accepted evidence formats.
// Ordered by specificity (most specific first)
var builtinSignatures = []MediaSignature{
	// Images
	{
		Name:           "jpeg",
		Category:       CategoryImage,
		MIMECandidates: []string{"image/jpeg", "image/jpg", "image/pjpeg"},
		Rules:          []ByteRule{{Offset: 0, Expected: []byte{0xFF, 0xD8, 0xFF}}},
	},
	{
		Name:           "png",
		Category:       CategoryImage,
		MIMECandidates: []string{"image/png", "image/x-png"},
		Rules:          []ByteRule{{Offset: 0, Expected: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}}},
	},
	{
		Name:           "gif87a",
		Category:       CategoryImage,
		MIMECandidates: []string{"image/gif"},
		Rules:          []ByteRule{{Offset: 0, Expected: []byte("GIF87a")}},
	},
	{
		Name:           "gif89a",
		Category:       CategoryImage,
		MIMECandidates: []string{"image/gif"},
		Rules:          []ByteRule{{Offset: 0, Expected: []byte("GIF89a")}},
	},
	{
		// RIFF is shared with WAVE and AVI, so the WEBP marker is mandatory
		Name:           "webp",
		Category:       CategoryImage,
		MIMECandidates: []string{"image/webp"},
		Rules: []ByteRule{
			{Offset: 0, Expected: []byte("RIFF")},
			{Offset: 8, Expected: []byte("WEBP")},
		},
	},
	{
		Name:           "tiff-le",
		Category:       CategoryImage,
		MIMECandidates: []string{"image/tiff"},
		Rules:          []ByteRule{{Offset: 0, Expected: []byte{0x49, 0x49, 0x2A, 0x00}}},
	},
	{
		Name:           "tiff-be",
		Category:       CategoryImage,
		MIMECandidates: []string{"image/tiff"},
		Rules:          []ByteRule{{Offset: 0, Expected: []byte{0x4D, 0x4D, 0x00, 0x2A}}},
	},

	// Documents
	{
		Name:           "pdf",
		Category:       CategoryDocument,
		MIMECandidates: []string{"application/pdf", "application/x-pdf"},
		Rules:          []ByteRule{{Offset: 0, Expected: []byte("%PDF-")}},
	},
}

// BuiltinSignatures returns a copy of the built-in signature table
func BuiltinSignatures() []MediaSignature {
	return cloneSignatures(builtinSignatures)
}

// DetectMIMEFromBytes detects the MIME type of a registered format from file content.
// Returns application/octet-stream when no built-in signature matches.
func DetectMIMEFromBytes(data []byte) string {
	return DefaultSignatureRegistry().Detect(data)
}

// DetectMIME detects the MIME type from a reader using the built-in signatures
func DetectMIME(reader io.Reader) (string, error) {
	registry := DefaultSignatureRegistry()
	buf, err := ReadPrefix(reader, registry.MaxPrefixLen())
	if err != nil {
		return "", err
	}
	return registry.Detect(buf), nil
}

func cloneSignatures(sigs []MediaSignature) []MediaSignature {
	out := make([]MediaSignature, len(sigs))
	for i, sig := range sigs {
		rules := make([]ByteRule, len(sig.Rules))
		for j, rule := range sig.Rules {
			rules[j] = ByteRule{Offset: rule.Offset, Expected: append([]byte(nil), rule.Expected...)}
		}
		out[i] = MediaSignature{
			Name:           sig.Name,
			Category:       sig.Category,
			MIMECandidates: append([]string(nil), sig.MIMECandidates...),
			Rules:          rules,
		}
	}
	return out
}
