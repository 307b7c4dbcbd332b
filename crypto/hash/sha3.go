package hash

import (
	"fmt"
	"hash"
)

// Hasher is a stateful hasher over one SHA-3 family function.
//
// Besides the standard library hash.Hash methods, it exposes the algorithm
// identifier and digest helpers returning a Hash. A Hasher must not be used
// concurrently.
type Hasher interface {
	hash.Hash

	// Algorithm returns the hashing algorithm of the hasher.
	Algorithm() HashingAlgorithm

	// ComputeHash resets the hasher and returns the digest of data.
	ComputeHash(data []byte) Hash

	// SumHash returns the digest of the data written so far.
	// It does not reset the state to allow further writing.
	SumHash() Hash
}

// sha3Algo implements Hasher on top of a Context.
type sha3Algo struct {
	ctx        Context
	algo       HashingAlgorithm
	outputSize int
	name       []byte
	custom     []byte
}

// NewSHA3_224 returns a new instance of SHA3-224 hasher
func NewSHA3_224() Hasher {
	return newFixed(SHA3_224, HashLenSHA3_224)
}

// NewSHA3_256 returns a new instance of SHA3-256 hasher
func NewSHA3_256() Hasher {
	return newFixed(SHA3_256, HashLenSHA3_256)
}

// NewSHA3_384 returns a new instance of SHA3-384 hasher
func NewSHA3_384() Hasher {
	return newFixed(SHA3_384, HashLenSHA3_384)
}

// NewSHA3_512 returns a new instance of SHA3-512 hasher
func NewSHA3_512() Hasher {
	return newFixed(SHA3_512, HashLenSHA3_512)
}

// NewSHAKE128 returns a new instance of SHAKE128 hasher producing
// outputSize bytes.
func NewSHAKE128(outputSize int) (Hasher, error) {
	return NewHasher(SHAKE128, outputSize)
}

// NewSHAKE256 returns a new instance of SHAKE256 hasher producing
// outputSize bytes.
func NewSHAKE256(outputSize int) (Hasher, error) {
	return NewHasher(SHAKE256, outputSize)
}

// NewCSHAKE128 returns a new instance of cSHAKE128 hasher with the
// function-name string name and customization string custom, producing
// outputSize bytes.
func NewCSHAKE128(name, custom []byte, outputSize int) (Hasher, error) {
	return newCustomized(CSHAKE128, name, custom, outputSize)
}

// NewCSHAKE256 returns a new instance of cSHAKE256 hasher with the
// function-name string name and customization string custom, producing
// outputSize bytes.
func NewCSHAKE256(name, custom []byte, outputSize int) (Hasher, error) {
	return newCustomized(CSHAKE256, name, custom, outputSize)
}

// NewHasher returns a hasher for algo. outputSize is ignored for SHA3
// functions and must be positive for extendable output functions.
func NewHasher(algo HashingAlgorithm, outputSize int) (Hasher, error) {
	return newCustomized(algo, nil, nil, outputSize)
}

func newFixed(algo HashingAlgorithm, size int) *sha3Algo {
	s := &sha3Algo{algo: algo, outputSize: size}
	s.Reset()
	return s
}

func newCustomized(algo HashingAlgorithm, name, custom []byte, outputSize int) (Hasher, error) {
	fam, err := familyOf(algo)
	if err != nil {
		return nil, fmt.Errorf("cannot create hasher: %w", err)
	}
	if fam.outputLen != 0 {
		outputSize = fam.outputLen
	} else if outputSize <= 0 {
		return nil, fmt.Errorf("%s output size must be positive, got %d: %w", algo, outputSize, ErrOutputLength)
	}

	s := &sha3Algo{
		algo:       algo,
		outputSize: outputSize,
		name:       append([]byte(nil), name...),
		custom:     append([]byte(nil), custom...),
	}
	if err := s.ctx.StartsCShake(algo, s.name, s.custom); err != nil {
		return nil, fmt.Errorf("cannot create hasher: %w", err)
	}
	return s, nil
}

func (s *sha3Algo) Algorithm() HashingAlgorithm {
	return s.algo
}

// Size returns the output size of the hasher in bytes.
func (s *sha3Algo) Size() int {
	return s.outputSize
}

// BlockSize returns the rate of the underlying sponge.
func (s *sha3Algo) BlockSize() int {
	return s.ctx.BlockSize()
}

// Reset starts a new computation with the same parameters.
func (s *sha3Algo) Reset() {
	// parameters were validated at construction
	_ = s.ctx.StartsCShake(s.algo, s.name, s.custom)
}

func (s *sha3Algo) Write(p []byte) (int, error) {
	return s.ctx.Write(p)
}

// Sum appends the digest of the data written so far to b. The hasher state
// is not modified.
func (s *sha3Algo) Sum(b []byte) []byte {
	var dup Context
	dup.CopyFrom(&s.ctx)
	defer dup.Free()

	digest := make([]byte, s.outputSize)
	if err := dup.Finish(digest); err != nil {
		panic(fmt.Sprintf("sha3: %v", err))
	}
	return append(b, digest...)
}

// ComputeHash resets the hasher and returns the output of input byte array.
// The state is not reset afterwards to allow further writing.
func (s *sha3Algo) ComputeHash(data []byte) Hash {
	s.Reset()
	_, _ = s.Write(data)
	return s.Sum(nil)
}

// SumHash returns the output of the data written so far.
// It does not reset the state to allow further writing.
func (s *sha3Algo) SumHash() Hash {
	return s.Sum(nil)
}
