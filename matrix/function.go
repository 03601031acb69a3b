// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

import (
	"fmt"

	"github.com/unixdj/qrsym/coding"
)

// Function pattern bitmaps, one byte per row, most significant bit
// at the left.
const (
	// Finder pattern with the separator on its inner sides.
	finderPat uint64 = 0xfe82bababa82fe00
	// Alignment pattern.
	alignPat uint64 = 0xf888a888f8
)

// checkSize returns an error if g is not the size of version v.
func checkSize(g *Grid, v coding.Version) error {
	if _, err := coding.TotalBytes(v); err != nil {
		return err
	}
	if g.Size != v.Size() {
		return fmt.Errorf("%w %v for %d×%d grid",
			coding.ErrVersion, v, g.Size, g.Size)
	}
	return nil
}

// PlaceFunctionPatterns places all function patterns of a QR code of
// version v onto g and reserves the format information area.  The
// order matters: patterns that would overlap modules placed earlier
// are skipped.
func PlaceFunctionPatterns(g *Grid, v coding.Version) error {
	if err := checkSize(g, v); err != nil {
		return err
	}
	PlaceFinderPatterns(g)
	if err := PlaceAlignmentPatterns(g, v); err != nil {
		return err
	}
	PlaceTimingPatterns(g)
	PlaceDarkModule(g)
	ReserveFormatArea(g)
	return PlaceVersionInfo(g, v)
}

// PlaceFinderPatterns places the three finder patterns and their
// separators in the corners of g.
func PlaceFinderPatterns(g *Grid) {
	n := g.Size - 1
	for r := 0; r < 8; r++ {
		row := byte(finderPat >> (56 - 8*r))
		for c := 0; c < 8; c++ {
			dark := row<<c&0x80 != 0
			g.SetFunction(r, c, dark)
			g.SetFunction(r, n-c, dark)
			g.SetFunction(n-r, c, dark)
		}
	}
}

// PlaceAlignmentPatterns places alignment patterns centred on every
// pair of version v's alignment positions, except where the centre
// is already reserved.
func PlaceAlignmentPatterns(g *Grid, v coding.Version) error {
	if err := checkSize(g, v); err != nil {
		return err
	}
	pos, _ := coding.AlignmentPositions(v)
	for _, y := range pos {
		for _, x := range pos {
			if g.IsReserved(y, x) {
				continue
			}
			for r := 0; r < 5; r++ {
				row := byte(alignPat >> (32 - 8*r))
				for c := 0; c < 5; c++ {
					g.SetFunction(y-2+r, x-2+c, row<<c&0x80 != 0)
				}
			}
		}
	}
	return nil
}

// PlaceTimingPatterns places the alternating timing patterns along
// row 6 and column 6 between the finder patterns.
func PlaceTimingPatterns(g *Grid) {
	for i := 8; i < g.Size-8; i++ {
		dark := i&1 == 0
		g.SetFunction(6, i, dark)
		g.SetFunction(i, 6, dark)
	}
}

// PlaceDarkModule places the lonely dark module above the bottom left
// finder pattern.
func PlaceDarkModule(g *Grid) {
	g.SetFunction(g.Size-8, 8, true)
}

// ReserveFormatArea reserves both copies of the format information
// without setting them.
func ReserveFormatArea(g *Grid) {
	g.Reserve(8, 0, 1, 9)
	g.Reserve(0, 8, 9, 1)
	g.Reserve(8, g.Size-8, 1, 8)
	g.Reserve(g.Size-7, 8, 7, 1)
}

// formatCells returns the positions of format bit k, counting from
// the most significant bit, in both copies.
func formatCells(size, k int) (r0, c0, r1, c1 int) {
	switch {
	case k < 6:
		r0, c0 = 8, k
	case k < 8:
		r0, c0 = 8, k+1 // skip the timing column
	case k == 8:
		r0, c0 = 7, 8
	default:
		r0, c0 = 14-k, 8
	}
	if k < 7 {
		r1, c1 = size-1-k, 8
	} else {
		r1, c1 = 8, size-15+k
	}
	return
}

// PlaceFormatInfo writes the format information for level l and mask
// pattern mask into both copies of the format area.
func PlaceFormatInfo(g *Grid, l coding.Level, mask int) error {
	fb, err := coding.FormatBits(l, mask)
	if err != nil {
		return err
	}
	for k := 0; k < 15; k++ {
		dark := fb>>(14-k)&1 != 0
		r0, c0, r1, c1 := formatCells(g.Size, k)
		g.SetFunction(r0, c0, dark)
		g.SetFunction(r1, c1, dark)
	}
	return nil
}

// ReadFormatInfo returns the two copies of the format information
// in g.
func ReadFormatInfo(g *Grid) (fb0, fb1 uint16) {
	for k := 0; k < 15; k++ {
		r0, c0, r1, c1 := formatCells(g.Size, k)
		fb0 <<= 1
		fb1 <<= 1
		if g.Get(r0, c0) {
			fb0 |= 1
		}
		if g.Get(r1, c1) {
			fb1 |= 1
		}
	}
	return
}

// versionPoly is the BCH(18,6) generator polynomial for version
// information.
const versionPoly = 0x1f25

// VersionInfo returns the 18 bit version information codeword for
// version v: v in the high 6 bits and the BCH remainder of v·x¹² in
// the low 12.
func VersionInfo(v coding.Version) uint32 {
	rem := uint32(v) << 12
	for i := 5; i >= 0; i-- {
		if rem&(1<<(12+i)) != 0 {
			rem ^= versionPoly << i
		}
	}
	return uint32(v)<<12 | rem
}

// PlaceVersionInfo places both copies of the version information,
// for versions 7 and up.  Bit i, counting from the least significant,
// goes to row i/3 of the 6×3 block left of the top right finder and
// to column i/3 of the 3×6 block above the bottom left finder.
func PlaceVersionInfo(g *Grid, v coding.Version) error {
	if err := checkSize(g, v); err != nil {
		return err
	}
	if v < 7 {
		return nil
	}
	vi := VersionInfo(v)
	for i := 0; i < 18; i++ {
		dark := vi>>i&1 != 0
		a, b := g.Size-11+i%3, i/3
		g.SetFunction(b, a, dark)
		g.SetFunction(a, b, dark)
	}
	return nil
}
