package random

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Rand is a pseudo random number generator
type Rand interface {
	// Read fills the input slice with random bytes.
	Read([]byte)

	// UintN returns a random number in [0, n-1]. It panics if n is zero.
	UintN(n uint64) uint64

	// Permutation returns a permutation of the set [0,n-1].
	// The output space grows as n!, so n should be chosen small enough for
	// the generator to cover a meaningful part of it.
	// The returned error is non-nil if n is negative.
	Permutation(n int) ([]int, error)

	// SubPermutation returns the m first elements of a permutation of [0,n-1].
	// The returned error is non-nil if a parameter is negative or m > n.
	SubPermutation(n int, m int) ([]int, error)

	// Shuffle permutes a data structure of size n in place using swap,
	// typically the elements of a slice.
	// The returned error is non-nil if n is negative.
	Shuffle(n int, swap func(i, j int)) error

	// Samples picks m random ordered elements out of a data structure of
	// size n and moves them to indices [0,m-1] through in-place swaps. The
	// remaining n-m elements are not uniformly shuffled; use Shuffle for
	// that.
	// The returned error is non-nil if a parameter is negative or m > n.
	Samples(n int, m int, swap func(i, j int)) error

	// State returns the internal state of the generator. Passing it to
	// Restore gives a generator producing the same stream from that point.
	State() []byte
}

// randCore provides the byte stream all other Rand methods are built on.
type randCore interface {
	// Read fills the input slice with random bytes.
	Read([]byte)
}

// genericPRG implements the Rand methods on top of the embedded randCore.
// Generators only need to provide Read and State.
type genericPRG struct {
	randCore
}

// UintN returns an uint64 pseudo-random number in [0,n-1], using `p` as an
// entropy source. Draws above the largest multiple of n are rejected so the
// output is uniform.
func (p *genericPRG) UintN(n uint64) uint64 {
	if n == 0 {
		panic("random: UintN called with n = 0")
	}
	// largest multiple of n, minus one
	limit := uint64(math.MaxUint64) - (math.MaxUint64%n+1)%n
	var buf [8]byte
	for {
		p.Read(buf[:])
		random := binary.LittleEndian.Uint64(buf[:])
		if random <= limit {
			return random % n
		}
	}
}

// Permutation returns a permutation of the set [0,n-1], using the
// inside-out variant of the Fisher-Yates shuffle.
//
// O(n) space and O(n) time.
func (p *genericPRG) Permutation(n int) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("population size cannot be negative")
	}
	items := make([]int, n)
	for i := 0; i < n; i++ {
		j := p.UintN(uint64(i + 1))
		items[i] = items[j]
		items[j] = i
	}
	return items, nil
}

// SubPermutation returns the `m` first elements of a permutation of [0,n-1].
//
// O(n) space and O(n) time
func (p *genericPRG) SubPermutation(n int, m int) ([]int, error) {
	if m < 0 {
		return nil, fmt.Errorf("sample size cannot be negative")
	}
	if n < m {
		return nil, fmt.Errorf("sample size (%d) cannot be larger than entire population (%d)", m, n)
	}
	items, err := p.Permutation(n)
	if err != nil {
		return nil, err
	}
	return items[:m], nil
}

// Shuffle permutes the given data structure in place with the Fisher-Yates
// shuffle.
//
// O(1) space and O(n) time
func (p *genericPRG) Shuffle(n int, swap func(i, j int)) error {
	if n < 0 {
		return fmt.Errorf("population size cannot be negative")
	}
	for i := n - 1; i > 0; i-- {
		j := p.UintN(uint64(i + 1))
		swap(i, int(j))
	}
	return nil
}

// Samples runs the first m steps of a Fisher-Yates shuffle over n elements.
//
// O(1) space and O(m) time
func (p *genericPRG) Samples(n int, m int, swap func(i, j int)) error {
	if m < 0 {
		return fmt.Errorf("inputs cannot be negative")
	}
	if n < m {
		return fmt.Errorf("sample size (%d) cannot be larger than entire population (%d)", m, n)
	}
	for i := 0; i < m; i++ {
		j := p.UintN(uint64(n - i))
		swap(i, i+int(j))
	}
	return nil
}
