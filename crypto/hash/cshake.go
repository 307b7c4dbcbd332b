package hash

import "encoding/binary"

// cSHAKE as defined in NIST SP 800-185: the input is prefixed with
// bytepad(encode_string(N) || encode_string(S), rate).

// absorbCShakePrefix absorbs the padded function-name and customization
// strings and leaves the sponge at a block boundary.
func (c *Context) absorbCShakePrefix(name, custom []byte) {
	var buf [9]byte
	c.absorb(leftEncode(buf[:], uint64(c.fam.rate)))
	c.absorbEncodedString(name)
	c.absorbEncodedString(custom)

	// bytepad fills the rest of the block with zeros. Absorbing zeros leaves
	// the lanes untouched, so only the permutation is due.
	if c.index != 0 {
		keccakF1600(&c.a)
		c.index = 0
	}
}

// absorbEncodedString absorbs encode_string(s): the bit length of s as a
// left_encode, followed by s.
func (c *Context) absorbEncodedString(s []byte) {
	var buf [9]byte
	c.absorb(leftEncode(buf[:], uint64(len(s))*8))
	c.absorb(s)
}

// leftEncode writes left_encode(value) into buf and returns the encoded
// bytes: the byte length n of value in big-endian, followed by those n
// bytes. Zero is encoded on one byte.
func leftEncode(buf []byte, value uint64) []byte {
	binary.BigEndian.PutUint64(buf[1:], value)
	offset := 1
	for offset < 8 && buf[offset] == 0 {
		offset++
	}
	buf[offset-1] = byte(9 - offset)
	return buf[offset-1 : 9]
}
