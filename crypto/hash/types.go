package hash

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

//revive:disable:var-naming

// HashingAlgorithm is an identifier for a SHA-3 family function.
type HashingAlgorithm int

const (
	// Supported hashing algorithms
	UnknownHashingAlgorithm HashingAlgorithm = iota
	SHA3_224
	SHA3_256
	SHA3_384
	SHA3_512
	SHAKE128
	SHAKE256
	CSHAKE128
	CSHAKE256
)

var algorithmNames = [...]string{
	"UNKNOWN",
	"SHA3_224",
	"SHA3_256",
	"SHA3_384",
	"SHA3_512",
	"SHAKE128",
	"SHAKE256",
	"CSHAKE128",
	"CSHAKE256",
}

// String returns the string representation of this hashing algorithm.
func (f HashingAlgorithm) String() string {
	if f < 0 || int(f) >= len(algorithmNames) {
		return algorithmNames[UnknownHashingAlgorithm]
	}
	return algorithmNames[f]
}

// ParseHashingAlgorithm returns the algorithm named by s. Matching ignores
// case and treats '-' like '_', so "sha3-256", "SHA3_256" and "cSHAKE128" are
// all accepted.
func ParseHashingAlgorithm(s string) (HashingAlgorithm, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	for i, name := range algorithmNames {
		if i == int(UnknownHashingAlgorithm) {
			continue
		}
		if normalized == name || normalized == strings.ReplaceAll(name, "SHAKE", "SHAKE_") {
			return HashingAlgorithm(i), nil
		}
	}
	return UnknownHashingAlgorithm, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// IsExtendable reports whether the algorithm produces output of arbitrary length.
func (f HashingAlgorithm) IsExtendable() bool {
	fam, err := familyOf(f)
	return err == nil && fam.outputLen == 0
}

const (
	// Lengths of hash outputs in bytes
	HashLenSHA3_224 = 28
	HashLenSHA3_256 = 32
	HashLenSHA3_384 = 48
	HashLenSHA3_512 = 64

	// Sponge rates in bytes, 200 - 2*(security bits)/8
	rateSHA3_224 = 144
	rateSHA3_256 = 136
	rateSHA3_384 = 104
	rateSHA3_512 = 72
	rateSHAKE128 = 168
	rateSHAKE256 = 136

	// maxRate is the widest rate of the family (SHAKE128 and cSHAKE128).
	maxRate = rateSHAKE128
)

// Hash is the output of a hash function.
type Hash []byte

// Hex returns the hex string representation of the hash.
func (h Hash) Hex() string {
	return hex.EncodeToString(h)
}

// String returns the hex string representation of the hash.
func (h Hash) String() string {
	return h.Hex()
}

// Equal checks if a hash is equal to a given hash
func (h Hash) Equal(input Hash) bool {
	return bytes.Equal(h, input)
}
