// Package multihash binds the SHA-3 family engine to go-multihash.
//
// Importing the package registers the engine as the hasher of the SHA3 and
// SHAKE multihash codes, so that multihash.Sum and friends run through it.
package multihash

import (
	"fmt"
	gohash "hash"

	mh "github.com/multiformats/go-multihash"
	mhcore "github.com/multiformats/go-multihash/core"

	"github.com/onflow/flow-sha3/crypto/hash"
)

const (
	// default digest sizes of the SHAKE codes, twice the security level
	defaultSizeSHAKE128 = 32
	defaultSizeSHAKE256 = 64
)

func init() {
	Register()
}

// Register registers the engine's hashers with go-multihash. It is run when
// the package is imported and may be called again safely.
func Register() {
	mhcore.Register(mh.SHA3_224, func() gohash.Hash { return hash.NewSHA3_224() })
	mhcore.Register(mh.SHA3_256, func() gohash.Hash { return hash.NewSHA3_256() })
	mhcore.Register(mh.SHA3_384, func() gohash.Hash { return hash.NewSHA3_384() })
	mhcore.Register(mh.SHA3_512, func() gohash.Hash { return hash.NewSHA3_512() })
	mhcore.Register(mh.SHAKE_128, func() gohash.Hash { return mustHasher(hash.SHAKE128, defaultSizeSHAKE128) })
	mhcore.Register(mh.SHAKE_256, func() gohash.Hash { return mustHasher(hash.SHAKE256, defaultSizeSHAKE256) })
}

func mustHasher(algo hash.HashingAlgorithm, size int) hash.Hasher {
	h, err := hash.NewHasher(algo, size)
	if err != nil {
		panic(err)
	}
	return h
}

// Code returns the multihash code of algo. cSHAKE has no multihash code.
func Code(algo hash.HashingAlgorithm) (uint64, error) {
	switch algo {
	case hash.SHA3_224:
		return mh.SHA3_224, nil
	case hash.SHA3_256:
		return mh.SHA3_256, nil
	case hash.SHA3_384:
		return mh.SHA3_384, nil
	case hash.SHA3_512:
		return mh.SHA3_512, nil
	case hash.SHAKE128:
		return mh.SHAKE_128, nil
	case hash.SHAKE256:
		return mh.SHAKE_256, nil
	default:
		return 0, fmt.Errorf("no multihash code for %s", algo)
	}
}

// Algorithm returns the hashing algorithm of a multihash code.
func Algorithm(code uint64) (hash.HashingAlgorithm, error) {
	switch code {
	case mh.SHA3_224:
		return hash.SHA3_224, nil
	case mh.SHA3_256:
		return hash.SHA3_256, nil
	case mh.SHA3_384:
		return hash.SHA3_384, nil
	case mh.SHA3_512:
		return hash.SHA3_512, nil
	case mh.SHAKE_128:
		return hash.SHAKE128, nil
	case mh.SHAKE_256:
		return hash.SHAKE256, nil
	default:
		return hash.UnknownHashingAlgorithm, fmt.Errorf("multihash code 0x%x is not a SHA-3 function", code)
	}
}

// Encode wraps a digest computed with algo into a multihash.
func Encode(algo hash.HashingAlgorithm, digest []byte) (mh.Multihash, error) {
	code, err := Code(algo)
	if err != nil {
		return nil, err
	}
	m, err := mh.Encode(digest, code)
	if err != nil {
		return nil, fmt.Errorf("cannot encode %s digest: %w", algo, err)
	}
	return m, nil
}

// Sum hashes data with algo and returns the multihash of the digest. A
// negative length selects the default size of the code; SHA3 functions only
// accept their fixed length.
func Sum(algo hash.HashingAlgorithm, data []byte, length int) (mh.Multihash, error) {
	if length < 0 {
		switch algo {
		case hash.SHAKE128:
			length = defaultSizeSHAKE128
		case hash.SHAKE256:
			length = defaultSizeSHAKE256
		default:
			h, err := hash.NewHasher(algo, 0)
			if err != nil {
				return nil, err
			}
			length = h.Size()
		}
	}

	digest := make([]byte, length)
	if err := hash.Sum(algo, data, digest); err != nil {
		return nil, err
	}
	return Encode(algo, digest)
}

// Decode parses a multihash and returns its algorithm and raw digest.
func Decode(m []byte) (hash.HashingAlgorithm, hash.Hash, error) {
	decoded, err := mh.Decode(m)
	if err != nil {
		return hash.UnknownHashingAlgorithm, nil, fmt.Errorf("cannot decode multihash: %w", err)
	}
	algo, err := Algorithm(decoded.Code)
	if err != nil {
		return hash.UnknownHashingAlgorithm, nil, err
	}
	return algo, decoded.Digest, nil
}
