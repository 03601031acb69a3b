// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package matrix lays out QR code symbols: the module grid, function
// patterns, data placement and masking.
package matrix // import "github.com/unixdj/qrsym/matrix"

import (
	"math/bits"

	"github.com/unixdj/qrsym/coding"
)

// A Grid is a square grid of modules.  Each module is dark or light
// and may be reserved for a function pattern.  Modules are addressed
// by row and column; accesses outside the grid read as light and
// unreserved and writes are ignored.
//
// Bitmaps are packed 8 modules per byte, most significant bit first,
// Stride bytes per row.
type Grid struct {
	Size   int // number of modules on a side
	Stride int // number of bytes per row
	Mask   int // committed mask pattern, -1 if none

	bits []byte // 1 is dark
	rsv  []byte // 1 is reserved
}

// New returns an empty grid of size×size modules.
func New(size int) *Grid {
	if size < 0 {
		size = 0
	}
	stride := (size + 7) >> 3
	b := make([]byte, 2*size*stride)
	return &Grid{
		Size:   size,
		Stride: stride,
		Mask:   -1,
		bits:   b[:size*stride],
		rsv:    b[size*stride:],
	}
}

// ForVersion returns an empty grid for a QR code of version v.
func ForVersion(v coding.Version) (*Grid, error) {
	if _, err := coding.TotalBytes(v); err != nil {
		return nil, err
	}
	return New(v.Size()), nil
}

// index returns the offset and bit of the module at row, col.
func (g *Grid) index(row, col int) (int, byte, bool) {
	if row < 0 || row >= g.Size || col < 0 || col >= g.Size {
		return 0, 0, false
	}
	return row*g.Stride + col>>3, 0x80 >> (col & 7), true
}

// Get reports whether the module at row, col is dark.
func (g *Grid) Get(row, col int) bool {
	off, b, ok := g.index(row, col)
	return ok && g.bits[off]&b != 0
}

// IsReserved reports whether the module at row, col is reserved.
func (g *Grid) IsReserved(row, col int) bool {
	off, b, ok := g.index(row, col)
	return ok && g.rsv[off]&b != 0
}

func (g *Grid) put(off int, b byte, dark bool) {
	if dark {
		g.bits[off] |= b
	} else {
		g.bits[off] &^= b
	}
}

// Set sets the module at row, col to dark or light,
// unless it is reserved.
func (g *Grid) Set(row, col int, dark bool) {
	if off, b, ok := g.index(row, col); ok && g.rsv[off]&b == 0 {
		g.put(off, b, dark)
	}
}

// SetFunction sets the module at row, col to dark or light
// and reserves it.
func (g *Grid) SetFunction(row, col int, dark bool) {
	if off, b, ok := g.index(row, col); ok {
		g.put(off, b, dark)
		g.rsv[off] |= b
	}
}

// Reserve reserves the h×w rectangle with its top left corner at
// row, col, leaving the modules' colours alone.
func (g *Grid) Reserve(row, col, h, w int) {
	for r := row; r < row+h; r++ {
		for c := col; c < col+w; c++ {
			if off, b, ok := g.index(r, c); ok {
				g.rsv[off] |= b
			}
		}
	}
}

// Invert flips the module at row, col unless it is reserved.
func (g *Grid) Invert(row, col int) {
	if off, b, ok := g.index(row, col); ok && g.rsv[off]&b == 0 {
		g.bits[off] ^= b
	}
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	c := *g
	b := make([]byte, len(g.bits)+len(g.rsv))
	c.bits = b[:copy(b, g.bits)]
	c.rsv = b[len(c.bits):]
	copy(c.rsv, g.rsv)
	return &c
}

// Clear resets all modules to light and unreserved.
func (g *Grid) Clear() {
	clear(g.bits)
	clear(g.rsv)
	g.Mask = -1
}

// Count returns the number of dark and reserved modules.
func (g *Grid) Count() (dark, reserved int) {
	for i := range g.bits {
		dark += bits.OnesCount8(g.bits[i])
		reserved += bits.OnesCount8(g.rsv[i])
	}
	return dark, reserved
}

// Bitmap returns a copy of the grid's bitmap: 1 is dark, 0 is light.
func (g *Grid) Bitmap() []byte {
	return append([]byte(nil), g.bits...)
}
