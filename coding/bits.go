// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

// Bits is a bit buffer, filled most significant bit first.
type Bits struct {
	b    []byte
	nbit int
}

// NewBits returns Bits with enough capacity for the data of a QR
// code of the given version.
func NewBits(v Version) *Bits {
	n := 0
	if v.valid() {
		n = vtab[v].bytes
	}
	return &Bits{b: make([]byte, 0, n)}
}

// BitsFromBools returns Bits holding the bits in bits, one per
// entry.  Each entry must be 0 or 1 and the number of entries a
// multiple of 8.
func BitsFromBools(bits []byte) (*Bits, error) {
	if len(bits)%8 != 0 {
		return nil, ErrBits
	}
	b := &Bits{b: make([]byte, 0, len(bits)/8)}
	for _, v := range bits {
		if v > 1 {
			return nil, ErrBits
		}
		b.Write(uint32(v), 1)
	}
	return b, nil
}

func (b *Bits) Reset() {
	b.b = b.b[:0]
	b.nbit = 0
}

// Bits returns the number of bits in b.
func (b *Bits) Bits() int {
	return b.nbit
}

// Bytes returns the contents of b.  It panics if b does not hold a
// whole number of bytes.
func (b *Bits) Bytes() []byte {
	if b.nbit%8 != 0 {
		panic("qr: fractional byte")
	}
	return b.b
}

// Bools returns the bits of b, one per entry.
func (b *Bits) Bools() []byte {
	s := NewBitStream(b.b)
	bb := make([]byte, b.nbit)
	for i := range bb {
		bb[i] = s.Next()
	}
	return bb
}

// Write appends the nbit low bits of v to b.
func (b *Bits) Write(v uint32, nbit int) {
	v <<= 32 - nbit
	if rem := -b.nbit & 7; rem != 0 {
		b.b[len(b.b)-1] |= byte(v >> (32 - rem))
		if rem >= nbit {
			b.nbit += nbit
			return
		}
		b.nbit += rem
		nbit -= rem
		v <<= rem
	}
	for n := nbit; n > 0; n -= 8 {
		b.b = append(b.b, byte(v>>24))
		v <<= 8
	}
	b.nbit += nbit
}

// WriteBytes appends the bytes of p to b, 8 bits each.
func (b *Bits) WriteBytes(p []byte) {
	if b.nbit%8 == 0 {
		b.b = append(b.b, p...)
		b.nbit = 8 * len(b.b)
		return
	}
	for _, c := range p {
		b.Write(uint32(c), 8)
	}
}

// PadByte pads b with zero bits to a byte boundary.
func (b *Bits) PadByte() {
	b.nbit = len(b.b) * 8
}

// PadTo pads b to a byte boundary and then to n bytes with the
// alternating pad codewords 0xec and 0x11.
func (b *Bits) PadTo(n int) {
	b.PadByte()
	for i := 0; len(b.b) < n; i++ {
		b.b = append(b.b, 0xec^0xfd&-byte(i&1))
	}
	b.nbit = len(b.b) * 8
}

// BitStream reads bits from the underlying buffer.
type BitStream struct {
	b   []byte
	pos int
}

// NewBitStream returns a BitStream reading from b.
func NewBitStream(b []byte) BitStream { return BitStream{b: b} }

// Bytes returns the data underlying s.
func (s *BitStream) Bytes() []byte { return s.b }

// Next returns the next bit from s as 0 or 1.
// Past end of buffer Next returns 0.
func (s *BitStream) Next() byte {
	var b byte
	if i := s.pos >> 3; i < len(s.b) {
		b = s.b[i] >> (7 &^ s.pos) & 1
		s.pos++
	}
	return b
}
