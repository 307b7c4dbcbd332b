package hash

import (
	"encoding/binary"
	"fmt"
)

// spongePhase indicates where a Context is in its lifecycle.
type spongePhase int

const (
	// spongeIdle indicates that no function has been selected yet.
	spongeIdle spongePhase = iota
	// spongeAbsorbing indicates that the sponge accepts input.
	spongeAbsorbing
	// spongeSqueezed indicates that the output was produced. A new
	// computation must be started before the context is used again.
	spongeSqueezed
)

// Context holds the state of one SHA-3 family computation.
//
// The zero value is an initialized, idle context. A computation is run by
// calling Starts (or StartsCShake), any number of Update calls and a single
// Finish. Free wipes the context once it is no longer needed.
//
// A Context is fixed-size and never allocates, so it can live on the stack
// or be embedded in a larger structure. It must not be used by several
// goroutines at the same time without external synchronization.
type Context struct {
	a     [25]uint64 // main state of the hash
	index int        // next byte position in the current block, 0 <= index < rate
	fam   family
	phase spongePhase
}

// Init resets c to the zero value.
func (c *Context) Init() {
	*c = Context{}
}

// Free overwrites the state, the fill index and the function parameters
// with zeros. It may be called any number of times, including on a nil or
// never started context.
func (c *Context) Free() {
	if c == nil {
		return
	}
	for i := range c.a {
		c.a[i] = 0
	}
	c.index = 0
	c.fam = family{}
	c.phase = spongeIdle
}

// CopyFrom sets c to an exact copy of src. Both contexts can be continued
// independently afterwards.
func (c *Context) CopyFrom(src *Context) {
	*c = *src
}

// Clone returns an independent copy of c.
func (c *Context) Clone() *Context {
	dup := *c
	return &dup
}

// Algorithm returns the function selected by the last Starts call, or
// UnknownHashingAlgorithm for an idle context.
func (c *Context) Algorithm() HashingAlgorithm {
	return c.fam.algo
}

// BlockSize returns the rate of the selected function in bytes, 0 for an
// idle context.
func (c *Context) BlockSize() int {
	return c.fam.rate
}

// Size returns the fixed output length of the selected function in bytes,
// or 0 for extendable output functions and idle contexts.
func (c *Context) Size() int {
	return c.fam.outputLen
}

// Starts selects algo and starts a new computation, discarding any previous
// state of c.
func (c *Context) Starts(algo HashingAlgorithm) error {
	fam, err := familyOf(algo)
	if err != nil {
		return fmt.Errorf("cannot start computation with algorithm %d: %w", int(algo), err)
	}
	c.start(fam)
	return nil
}

// StartsCShake starts a cSHAKE computation with the function-name string
// name and the customization string custom.
//
// When both strings are empty the computation is plain SHAKE of the same
// security level, as cSHAKE is defined to be. For any algo other than
// CSHAKE128 and CSHAKE256 the strings must be empty and the call is
// equivalent to Starts(algo).
func (c *Context) StartsCShake(algo HashingAlgorithm, name, custom []byte) error {
	if len(name) == 0 && len(custom) == 0 {
		if err := c.Starts(algo); err != nil {
			return err
		}
		if algo == CSHAKE128 || algo == CSHAKE256 {
			c.fam.dsByte = dsByteSHAKE
		}
		return nil
	}
	if algo != CSHAKE128 && algo != CSHAKE256 {
		return fmt.Errorf("cannot customize %s: %w", algo, ErrCustomization)
	}
	fam, err := familyOf(algo)
	if err != nil {
		return err
	}
	c.start(fam)
	c.absorbCShakePrefix(name, custom)
	return nil
}

// Update absorbs data. Input can be split over any number of Update calls
// of any size, the result only depends on the concatenated input.
func (c *Context) Update(data []byte) error {
	if c.phase != spongeAbsorbing {
		return fmt.Errorf("cannot absorb input: %w", ErrNotStarted)
	}
	c.absorb(data)
	return nil
}

// Write implements io.Writer on top of Update.
func (c *Context) Write(p []byte) (int, error) {
	if err := c.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Finish pads the absorbed input and writes len(out) bytes of output to out.
// For SHA3 functions len(out) must equal the fixed output length, otherwise
// an error is returned and out is left untouched. After Finish, the context
// rejects Update and Finish until a new computation is started.
func (c *Context) Finish(out []byte) error {
	if c.phase != spongeAbsorbing {
		return fmt.Errorf("cannot produce output: %w", ErrNotStarted)
	}
	if c.fam.outputLen != 0 && len(out) != c.fam.outputLen {
		return fmt.Errorf("%s produces %d bytes, %d requested: %w",
			c.fam.algo, c.fam.outputLen, len(out), ErrOutputLength)
	}

	// pad10*1: the domain separation byte carries the first "1" bit, the
	// final "1" bit is the MSB of the last byte of the block.
	c.xorByte(c.index, c.fam.dsByte)
	c.xorByte(c.fam.rate-1, 0x80)
	keccakF1600(&c.a)
	c.index = 0

	c.squeeze(out)
	c.phase = spongeSqueezed
	return nil
}

func (c *Context) start(fam family) {
	for i := range c.a {
		c.a[i] = 0
	}
	c.index = 0
	c.fam = fam
	c.phase = spongeAbsorbing
}

// absorb xors p into the state from c.index on, permuting every time a
// block is full.
func (c *Context) absorb(p []byte) {
	rate := c.fam.rate
	for len(p) > 0 {
		if c.index&7 == 0 && len(p) >= 8 {
			// The fast path; whole lanes up to the end of the block. Rates
			// are multiples of 8 so at least one lane fits.
			lanes := (rate - c.index) >> 3
			if n := len(p) >> 3; n < lanes {
				lanes = n
			}
			for i := 0; i < lanes; i++ {
				c.a[c.index>>3] ^= binary.LittleEndian.Uint64(p)
				p = p[8:]
				c.index += 8
			}
		} else {
			c.xorByte(c.index, p[0])
			p = p[1:]
			c.index++
		}

		if c.index == rate {
			keccakF1600(&c.a)
			c.index = 0
		}
	}
}

// squeeze fills out with rate-sized blocks of the state, permuting between
// consecutive blocks. The state must already be padded and permuted.
func (c *Context) squeeze(out []byte) {
	rate := c.fam.rate
	for len(out) > 0 {
		n := rate
		if len(out) < n {
			n = len(out)
		}
		copyOut(&c.a, out[:n])
		out = out[n:]
		if len(out) > 0 {
			keccakF1600(&c.a)
		}
	}
}

// xorByte xors b into byte position i of the state, lanes being little-endian.
func (c *Context) xorByte(i int, b byte) {
	c.a[i>>3] ^= uint64(b) << (8 * uint(i&7))
}

// copyOut copies the first len(out) bytes of the state to out.
func copyOut(a *[25]uint64, out []byte) {
	i := 0
	for ; i+8 <= len(out); i += 8 {
		binary.LittleEndian.PutUint64(out[i:], a[i>>3])
	}
	for ; i < len(out); i++ {
		out[i] = byte(a[i>>3] >> (8 * uint(i&7)))
	}
}
