// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// ErrCapacity is returned for a capacity outside the range of the
// version and level.
var ErrCapacity = errors.New("qr: invalid capacity")

// A Charset converts text to byte mode data.
type Charset int

const (
	UTF8   Charset = iota // UTF-8 text, no conversion
	Latin1                // UTF-8 text encoded as ISO 8859-1
)

func (c Charset) String() string {
	switch c {
	case UTF8:
		return "utf-8"
	case Latin1:
		return "latin-1"
	}
	return fmt.Sprintf("charset(%d)", int(c))
}

// Bytes returns text converted to c.
func (c Charset) Bytes(text string) ([]byte, error) {
	switch c {
	case UTF8:
		return []byte(text), nil
	case Latin1:
		t, err := charmap.ISO8859_1.NewEncoder().String(text)
		if err != nil {
			return nil, &CharsetError{c, err}
		}
		return []byte(t), nil
	}
	return nil, ErrMode
}

// An Encoder encodes text in byte mode and adds error correction.
// The zero Encoder encodes UTF-8 text sequentially.
type Encoder struct {
	Charset  Charset // byte mode charset
	Parallel bool    // compute error correction of blocks concurrently
}

// Encode returns the codewords of text encoded in byte mode for a QR
// code of version v and level l: the data, padded to capacity bytes,
// split into blocks, each followed by its error correction bytes,
// interleaved.  Capacity is normally DataBytes(v, l).
func (e *Encoder) Encode(text string, v Version, capacity int, l Level) ([]byte, error) {
	if err := check(v, l); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, ErrEmpty
	}
	if capacity < 1 || capacity > v.dataBytes(l) {
		return nil, fmt.Errorf("%w %d for version %v-%v",
			ErrCapacity, capacity, v, l)
	}
	data, err := e.Charset.Bytes(text)
	if err != nil {
		return nil, err
	}

	cb := modes[Byte].count[v.SizeClass()]
	if n := (4 + cb + len(data)*8 + 7) >> 3; n > capacity {
		return nil, &CapacityError{v, l, n, capacity}
	}
	b := NewBits(v)
	b.Write(modes[Byte].indicator, 4)
	b.Write(uint32(len(data)), cb)
	b.WriteBytes(data)
	b.PadTo(capacity)
	if len(b.Bytes()) != capacity {
		panic("qr: internal error")
	}
	return e.blocks(b.Bytes(), v, l)
}

// blocks splits data into blocks, adds error correction and
// interleaves the result.
func (e *Encoder) blocks(data []byte, v Version, l Level) ([]byte, error) {
	sizes, err := BlockSizes(len(data), v, l)
	if err != nil {
		return nil, err
	}
	blocks := SplitBlocks(data, sizes)
	ecc, err := EncodeBlocks(blocks, vtab[v].level[l].check, e.Parallel)
	if err != nil {
		return nil, err
	}
	return Interleave(blocks, ecc), nil
}

// EncodeByteMode encodes UTF-8 text like Encoder.Encode.
func EncodeByteMode(text string, v Version, capacity int, l Level) ([]byte, error) {
	var e Encoder
	return e.Encode(text, v, capacity, l)
}
