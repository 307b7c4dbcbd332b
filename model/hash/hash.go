package hash

import (
	"sync"

	"github.com/onflow/flow-sha3/crypto/hash"
)

// DefaultHasher is a process-wide SHA3-256 hasher. Every method takes the
// same lock, so it can be shared by goroutines that do not own a hasher of
// their own. Write/SumHash sequences from different goroutines still
// interleave; use ComputeHash for whole messages.
var DefaultHasher hash.Hasher

type defaultHasher struct {
	mu sync.Mutex
	h  hash.Hasher
}

var _ hash.Hasher = (*defaultHasher)(nil)

func (d *defaultHasher) Algorithm() hash.HashingAlgorithm {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.h.Algorithm()
}

func (d *defaultHasher) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.h.Size()
}

func (d *defaultHasher) BlockSize() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.h.BlockSize()
}

func (d *defaultHasher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.h.Reset()
}

func (d *defaultHasher) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.h.Write(p)
}

func (d *defaultHasher) Sum(b []byte) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.h.Sum(b)
}

func (d *defaultHasher) SumHash() hash.Hash {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.h.SumHash()
}

func (d *defaultHasher) ComputeHash(b []byte) hash.Hash {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.h.ComputeHash(b)
}

func init() {
	DefaultHasher = &defaultHasher{h: hash.NewSHA3_256()}
}
