// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBits(t *testing.T) {
	t.Parallel()
	var b Bits
	b.Write(4, 4)
	b.Write(10, 8)
	assert.Equal(t, 12, b.Bits())
	assert.Panics(t, func() { b.Bytes() })
	b.WriteBytes([]byte("H"))
	assert.Equal(t, 20, b.Bits())
	b.PadTo(6)
	assert.Equal(t, []byte{0x40, 0xa4, 0x80, 0xec, 0x11, 0xec}, b.Bytes())
	assert.Equal(t, 48, b.Bits())

	b.Reset()
	b.Write(0x2b, 7)
	b.PadByte()
	assert.Equal(t, []byte{0x56}, b.Bytes())
	assert.Equal(t, []byte{0, 1, 0, 1, 0, 1, 1, 0}, b.Bools())
}

func TestBitsFromBools(t *testing.T) {
	t.Parallel()
	bits := []byte{0, 1, 0, 0, 0, 0, 0, 0, 1, 0, 1, 0, 0, 1, 0, 0}
	b, err := BitsFromBools(bits)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x40, 0xa4}, b.Bytes())
	assert.Equal(t, bits, b.Bools())

	_, err = BitsFromBools(bits[:7])
	assert.ErrorIs(t, err, ErrBits)
	bad := append([]byte{}, bits...)
	bad[3] = 2
	_, err = BitsFromBools(bad)
	assert.ErrorIs(t, err, ErrBits)
}

func TestBitStream(t *testing.T) {
	t.Parallel()
	s := NewBitStream([]byte{0xa5})
	var got []byte
	for i := 0; i < 10; i++ {
		got = append(got, s.Next())
	}
	assert.Equal(t, []byte{1, 0, 1, 0, 0, 1, 0, 1, 0, 0}, got)
	assert.Equal(t, []byte{0xa5}, s.Bytes())
}

func TestBlockSizes(t *testing.T) {
	t.Parallel()
	sizes, err := BlockSizes(46, 5, H)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 11, 12, 12}, sizes)

	for v := MinVersion; v <= MaxVersion; v++ {
		for l := L; l <= H; l++ {
			n := v.dataBytes(l)
			sizes, err := BlockSizes(n, v, l)
			require.NoError(t, err)
			sum := 0
			for i, s := range sizes {
				sum += s
				if i > 0 {
					assert.LessOrEqual(t, sizes[i-1], s)
					assert.LessOrEqual(t, s-sizes[0], 1)
				}
			}
			assert.Equal(t, n, sum, "%v-%v", v, l)
		}
	}

	_, err = BlockSizes(1, 5, H)
	assert.ErrorIs(t, err, ErrTooLong)
	_, err = BlockSizes(46, 0, H)
	assert.ErrorIs(t, err, ErrVersion)
}

func TestSplitBlocksPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { SplitBlocks(make([]byte, 5), []int{2, 2}) })
	assert.Panics(t, func() { SplitBlocks(make([]byte, 3), []int{2, 2}) })
	assert.Panics(t, func() { Interleave(make([][]byte, 2), make([][]byte, 3)) })
}

func TestInterleave(t *testing.T) {
	t.Parallel()
	data := [][]byte{{1, 2}, {3, 4}, {5, 6, 7}, {8, 9, 10}}
	ecc := [][]byte{{11, 12}, {13, 14}, {15, 16}, {17, 18}}
	cw := Interleave(data, ecc)
	assert.Equal(t, []byte{1, 3, 5, 8, 2, 4, 6, 9, 7, 10, 11, 13, 15, 17, 12, 14, 16, 18}, cw)

	d, e, err := Deinterleave(cw, []int{2, 2, 3, 3}, 2)
	require.NoError(t, err)
	assert.Equal(t, data, d)
	assert.Equal(t, ecc, e)

	_, _, err = Deinterleave(cw[1:], []int{2, 2, 3, 3}, 2)
	assert.ErrorIs(t, err, ErrBits)
}

func TestEncodeBlocksParallel(t *testing.T) {
	t.Parallel()
	data := make([]byte, 156)
	for i := range data {
		data[i] = byte(i * 7)
	}
	blocks := SplitBlocks(data, []int{38, 38, 40, 40})
	seq, err := EncodeBlocks(blocks, 26, false)
	require.NoError(t, err)
	par, err := EncodeBlocks(blocks, 26, true)
	require.NoError(t, err)
	assert.Equal(t, seq, par)
	for i, b := range blocks {
		cw := append(append([]byte{}, b...), seq[i]...)
		assert.True(t, Field.Valid(cw, 26), "block %d", i)
	}

	for _, parallel := range []bool{false, true} {
		_, err = EncodeBlocks(blocks, 0, parallel)
		assert.Error(t, err)
		_, err = EncodeBlocks([][]byte{{}}, 4, parallel)
		assert.Error(t, err)
	}
}

func TestEncodeByteMode(t *testing.T) {
	t.Parallel()
	cw, err := EncodeByteMode("hello", 1, 19, L)
	require.NoError(t, err)
	assert.Equal(t, []byte{
		64, 86, 134, 86, 198, 198, 240, 236, 17, 236, 17, 236, 17, 236, 17, 236, 17, 236, 17,
		37, 25, 208, 210, 104, 89, 57,
	}, cw)
}

func TestEncodeHelloQR(t *testing.T) {
	t.Parallel()
	capacity, err := DataBytes(5, H)
	require.NoError(t, err)
	require.Equal(t, 46, capacity)

	for _, parallel := range []bool{false, true} {
		e := Encoder{Parallel: parallel}
		cw, err := e.Encode("Hello, QR!", 5, capacity, H)
		require.NoError(t, err)
		require.Len(t, cw, 46+22*4)

		sizes, err := BlockSizes(capacity, 5, H)
		require.NoError(t, err)
		data, ecc, err := Deinterleave(cw, sizes, 22)
		require.NoError(t, err)
		flat := bytes.Join(data, nil)
		// 4 + 8 + 80 = 92 bits, 12 bytes
		assert.Equal(t, []byte{0x40, 0xa4, 0x86, 0x56, 0xc6, 0xc6, 0xf2, 0xc2, 0x05, 0x15, 0x22, 0x10}, flat[:12])
		for i, c := range flat[12:] {
			assert.Equal(t, []byte{0xec, 0x11}[i&1], c, "pad byte %d", i)
		}
		for i := range data {
			assert.True(t, Field.Valid(append(data[i], ecc[i]...), 22), "block %d", i)
		}
	}
}

func TestPadToFill(t *testing.T) {
	t.Parallel()
	for _, v := range []Version{1, 4, 9, 10, 21, 40} {
		for l := L; l <= H; l++ {
			capacity := v.dataBytes(l)
			cb := 8
			if v >= 10 {
				cb = 16
			}
			// longest text that fits
			n := (capacity*8 - 4 - cb) / 8
			for _, k := range []int{1, n / 2, n} {
				cw, err := EncodeByteMode(strings.Repeat("a", k), v, capacity, l)
				require.NoError(t, err, "%v-%v %d bytes", v, l, k)
				assert.Len(t, cw, vtab[v].bytes)
			}
			_, err := EncodeByteMode(strings.Repeat("a", n+1), v, capacity, l)
			assert.ErrorIs(t, err, ErrTooLong, "%v-%v", v, l)
			var ce *CapacityError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, capacity, ce.Capacity)
			assert.Equal(t, capacity+1, ce.Bytes)
		}
	}
}

func TestEncodeErrors(t *testing.T) {
	t.Parallel()
	_, err := EncodeByteMode("", 1, 19, L)
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = EncodeByteMode("x", 41, 19, L)
	assert.ErrorIs(t, err, ErrVersion)
	_, err = EncodeByteMode("x", 1, 19, Level(4))
	assert.ErrorIs(t, err, ErrLevel)
	_, err = EncodeByteMode("x", 1, 20, L)
	assert.ErrorIs(t, err, ErrCapacity)
	_, err = EncodeByteMode("x", 1, 0, L)
	assert.ErrorIs(t, err, ErrCapacity)
	e := Encoder{Charset: Charset(5)}
	_, err = e.Encode("x", 1, 19, L)
	assert.ErrorIs(t, err, ErrMode)
}

func TestLatin1(t *testing.T) {
	t.Parallel()
	b, err := Latin1.Bytes("café")
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\xe9"), b)

	e := Encoder{Charset: Latin1}
	cw, err := e.Encode("é", 1, 19, L)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x40, 0x1e, 0x90, 0xec}, cw[:4])

	_, err = e.Encode("日本", 1, 19, L)
	var ce *CharsetError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, Latin1, ce.Charset)
}
