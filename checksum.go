package evidencekit

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"hash/crc32"

	"github.com/cespare/xxhash/v2"
)

// ErrUnsupportedChecksum is returned for unknown checksum algorithms
var ErrUnsupportedChecksum = errors.New("unsupported checksum algorithm")

// ChecksumAlgorithm names a hash used for output checksums
type ChecksumAlgorithm string

const (
	ChecksumXXHash ChecksumAlgorithm = "xxhash"
	ChecksumSHA256 ChecksumAlgorithm = "sha256"
	ChecksumSHA512 ChecksumAlgorithm = "sha512"
	ChecksumCRC32  ChecksumAlgorithm = "crc32"
)

// NewHasher creates a new hash.Hash for the given algorithm.
// Returns an error if the algorithm is not supported.
func NewHasher(algorithm ChecksumAlgorithm) (hash.Hash, error) {
	switch algorithm {
	case ChecksumXXHash:
		return xxhash.New(), nil
	case ChecksumSHA256:
		return sha256.New(), nil
	case ChecksumSHA512:
		return sha512.New(), nil
	case ChecksumCRC32:
		return crc32.NewIEEE(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedChecksum, algorithm)
	}
}

// CalculateChecksum returns the hex-encoded checksum of data
func CalculateChecksum(data []byte, algorithm ChecksumAlgorithm) (string, error) {
	h, err := NewHasher(algorithm)
	if err != nil {
		return "", err
	}
	_, _ = h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyChecksum reports whether data hashes to expected
func VerifyChecksum(data []byte, expected string, algorithm ChecksumAlgorithm) (bool, error) {
	actual, err := CalculateChecksum(data, algorithm)
	if err != nil {
		return false, err
	}
	return actual == expected, nil
}
