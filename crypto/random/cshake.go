package random

import (
	"encoding/binary"
	"fmt"

	"github.com/onflow/flow-sha3/crypto/hash"
)

const (
	// Cshake128SeedMinLen is the minimum seed length in bytes, matching the
	// 128-bit security level of cSHAKE128.
	Cshake128SeedMinLen = 16

	// prgFunctionName is the cSHAKE function-name string of the generator.
	prgFunctionName = "PRG"

	// blockLen is the number of bytes produced per counter value, one
	// cSHAKE128 block.
	blockLen = 168

	// stateHeaderLen is the size of the counter, offset and seed length
	// fields at the start of a serialized state.
	stateHeaderLen = 24
)

// cshakeCore is a counter-mode generator: block i of the stream is
// cSHAKE128(le64(len(seed)) || seed || le64(i), 168 bytes) with function
// name "PRG" and the caller's customizer.
type cshakeCore struct {
	base       hash.Context // seed absorbed, never finished
	seed       []byte
	customizer []byte
	counter    uint64 // index of the next block to generate
	block      [blockLen]byte
	offset     int // next unread byte of block, blockLen when exhausted
}

// cshakePRG is a Rand over a cshakeCore.
type cshakePRG struct {
	genericPRG
	core *cshakeCore
}

// NewCShakePRG returns a deterministic generator seeded with seed, which
// must be at least Cshake128SeedMinLen bytes. Generators with the same seed
// and different customizers produce independent streams.
func NewCShakePRG(seed []byte, customizer []byte) (Rand, error) {
	core, err := newCShakeCore(seed, customizer)
	if err != nil {
		return nil, err
	}
	return newCShakePRG(core), nil
}

// Restore returns a generator from a state produced by Rand.State. The new
// generator continues the stream exactly where the original was when State
// was called.
func Restore(state []byte) (Rand, error) {
	if len(state) < stateHeaderLen {
		return nil, fmt.Errorf("state is too short: %d bytes", len(state))
	}
	counter := binary.LittleEndian.Uint64(state[0:])
	offset := binary.LittleEndian.Uint64(state[8:])
	seedLen := binary.LittleEndian.Uint64(state[16:])
	if seedLen > uint64(len(state)-stateHeaderLen) {
		return nil, fmt.Errorf("state holds a %d bytes seed but only has %d bytes left", seedLen, len(state)-stateHeaderLen)
	}
	if offset > blockLen || (offset < blockLen && counter == 0) {
		return nil, fmt.Errorf("invalid state position: block %d, offset %d", counter, offset)
	}
	seed := state[stateHeaderLen : stateHeaderLen+int(seedLen)]
	customizer := state[stateHeaderLen+int(seedLen):]

	core, err := newCShakeCore(seed, customizer)
	if err != nil {
		return nil, err
	}
	if offset < blockLen {
		// regenerate the partially consumed block
		core.counter = counter - 1
		core.refill()
	}
	core.counter = counter
	core.offset = int(offset)
	return newCShakePRG(core), nil
}

func newCShakePRG(core *cshakeCore) *cshakePRG {
	return &cshakePRG{
		genericPRG: genericPRG{randCore: core},
		core:       core,
	}
}

func newCShakeCore(seed []byte, customizer []byte) (*cshakeCore, error) {
	if len(seed) < Cshake128SeedMinLen {
		return nil, fmt.Errorf("seed length should be at least %d bytes, got %d", Cshake128SeedMinLen, len(seed))
	}
	core := &cshakeCore{
		seed:       append([]byte(nil), seed...),
		customizer: append([]byte(nil), customizer...),
		offset:     blockLen,
	}
	if err := core.base.StartsCShake(hash.CSHAKE128, []byte(prgFunctionName), core.customizer); err != nil {
		return nil, fmt.Errorf("cannot initialize generator: %w", err)
	}
	var length [8]byte
	binary.LittleEndian.PutUint64(length[:], uint64(len(seed)))
	if err := core.base.Update(length[:]); err != nil {
		return nil, err
	}
	if err := core.base.Update(core.seed); err != nil {
		return nil, err
	}
	return core, nil
}

// Read fills out with the next bytes of the stream.
func (c *cshakeCore) Read(out []byte) {
	for len(out) > 0 {
		if c.offset == blockLen {
			c.refill()
		}
		n := copy(out, c.block[c.offset:])
		c.offset += n
		out = out[n:]
	}
}

// refill computes block c.counter from a copy of the seeded context.
func (c *cshakeCore) refill() {
	var ctx hash.Context
	ctx.CopyFrom(&c.base)
	defer ctx.Free()

	var counter [8]byte
	binary.LittleEndian.PutUint64(counter[:], c.counter)
	// the copy of base is absorbing, neither call can fail
	_ = ctx.Update(counter[:])
	_ = ctx.Finish(c.block[:])

	c.counter++
	c.offset = 0
}

// State returns le64(counter) || le64(offset) || le64(len(seed)) || seed || customizer.
func (p *cshakePRG) State() []byte {
	c := p.core
	state := make([]byte, stateHeaderLen, stateHeaderLen+len(c.seed)+len(c.customizer))
	binary.LittleEndian.PutUint64(state[0:], c.counter)
	binary.LittleEndian.PutUint64(state[8:], uint64(c.offset))
	binary.LittleEndian.PutUint64(state[16:], uint64(len(c.seed)))
	state = append(state, c.seed...)
	return append(state, c.customizer...)
}
