// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

import (
	"github.com/unixdj/qrsym/coding"
)

// DataCells calls fn for every unreserved module of g in zigzag scan
// order: columns are taken in pairs from the right, going up the first
// pair, down the next and so on, right module before left.  The pair
// boundary shifts by one at the vertical timing column.
func DataCells(g *Grid, fn func(row, col int)) {
	siz := g.Size
	up := true
	for x := siz - 1; x >= 1; x -= 2 {
		if x == 6 { // vertical timing strip
			x--
		}
		for i := 0; i < siz; i++ {
			y := i
			if up {
				y = siz - 1 - i
			}
			for c := x; c >= x-1; c-- {
				if !g.IsReserved(y, c) {
					fn(y, c)
				}
			}
		}
		up = !up
	}
}

// PlaceData writes the bits of codewords, most significant first, to
// the unreserved modules of g in zigzag scan order, and light modules
// once the bits run out.  It returns the number of modules written.
func PlaceData(g *Grid, codewords []byte) int {
	s := coding.NewBitStream(codewords)
	n := 0
	DataCells(g, func(row, col int) {
		g.Set(row, col, s.Next() != 0)
		n++
	})
	return n
}
