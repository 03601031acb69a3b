// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/qrsym/coding"
)

func TestDataCells(t *testing.T) {
	t.Parallel()
	for _, v := range []coding.Version{1, 2, 6, 7, 14, 21, 40} {
		g := functionGrid(t, v)
		seen := make(map[[2]int]bool)
		var order [][2]int
		DataCells(g, func(row, col int) {
			p := [2]int{row, col}
			assert.False(t, seen[p], "version %v: %v visited twice", v, p)
			assert.False(t, g.IsReserved(row, col), "version %v: %v reserved", v, p)
			seen[p] = true
			order = append(order, p)
		})
		_, reserved := g.Count()
		assert.Len(t, seen, g.Size*g.Size-reserved, "version %v", v)
		assert.Equal(t, [2]int{g.Size - 1, g.Size - 1}, order[0])
	}

	g := functionGrid(t, 1)
	var order [][2]int
	DataCells(g, func(row, col int) { order = append(order, [2]int{row, col}) })
	// up the rightmost pair to row 9, then down the next
	assert.Equal(t, [][2]int{{20, 20}, {20, 19}, {19, 20}}, order[:3])
	assert.Equal(t, [][2]int{{9, 19}, {9, 18}, {9, 17}}, order[23:26])
	assert.Equal(t, [2]int{12, 0}, order[len(order)-1])
}

func TestPlaceData(t *testing.T) {
	t.Parallel()
	const v, l = coding.Version(5), coding.H
	capacity, err := coding.DataBytes(v, l)
	require.NoError(t, err)
	cw, err := coding.EncodeByteMode("Hello, QR!", v, capacity, l)
	require.NoError(t, err)

	g := functionGrid(t, v)
	fn := g.Clone()
	n := PlaceData(g, cw)
	// 134 codewords and 7 remainder bits
	assert.Equal(t, 134*8+7, n)
	assert.Equal(t, 37, g.Size)

	// 0x40: light, dark, then light
	assert.False(t, g.Get(36, 36))
	assert.True(t, g.Get(36, 35))
	assert.False(t, g.Get(35, 36))

	// function modules untouched, data matches the bit stream
	for r := 0; r < g.Size; r++ {
		for c := 0; c < g.Size; c++ {
			assert.Equal(t, fn.IsReserved(r, c), g.IsReserved(r, c))
			if fn.IsReserved(r, c) {
				assert.Equal(t, fn.Get(r, c), g.Get(r, c), "%d,%d", r, c)
			}
		}
	}
	s := coding.NewBitStream(cw)
	i := 0
	DataCells(g, func(row, col int) {
		assert.Equal(t, s.Next() != 0, g.Get(row, col), "bit %d at %d,%d", i, row, col)
		i++
	})
}
