// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf256

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var qrField = NewField(0x11d, 2)

func TestNewFieldPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewField(0x200, 2) }, "out of range")
	assert.Panics(t, func() { NewField(0x1ff, 2) }, "x⁹-1 factor")
	assert.Panics(t, func() { NewField(0x11c, 2) }, "reducible")
	assert.Panics(t, func() { NewField(0x11d, 1) }, "generator 1")
	assert.NotPanics(t, func() { NewField(0x11b, 3) })
}

func TestFieldTables(t *testing.T) {
	t.Parallel()
	f := qrField
	assert.Equal(t, byte(1), f.Exp(0))
	assert.Equal(t, byte(2), f.Exp(1))
	assert.Equal(t, byte(0x1d), f.Exp(8))
	assert.Equal(t, f.Exp(3), f.Exp(258))
	assert.Equal(t, byte(0), f.Exp(-1))
	assert.Equal(t, -1, f.Log(0))
	for i := 1; i < 256; i++ {
		x := byte(i)
		assert.Equal(t, x, f.Exp(f.Log(x)), "exp(log(%d))", i)
		assert.Equal(t, byte(1), f.Mul(x, f.Inv(x)), "%d·inv", i)
		for j := 0; j < 256; j += 7 {
			assert.Equal(t, byte(mul(i, j, 0x11d)), f.Mul(x, byte(j)))
		}
	}
	assert.Equal(t, byte(0), f.Inv(0))
	assert.Equal(t, byte(0), f.Mul(0, 17))
	assert.Equal(t, byte(0x5a^0x3c), f.Add(0x5a, 0x3c))
}

func TestGenerator(t *testing.T) {
	t.Parallel()
	gen, err := qrField.Generator(7)
	require.NoError(t, err)
	lg := make([]int, len(gen))
	for i, c := range gen {
		lg[i] = qrField.Log(c)
	}
	assert.Equal(t, []int{0, 87, 229, 146, 149, 238, 102, 21}, lg)

	for _, d := range []int{1, 2, 10, 13, 22, 30, 68} {
		gen, err := qrField.Generator(d)
		require.NoError(t, err)
		require.Len(t, gen, d+1)
		assert.Equal(t, byte(1), gen[0], "leading coefficient, degree %d", d)
		for i := 0; i < d; i++ {
			assert.Zero(t, qrField.Eval(gen, qrField.Exp(i)),
				"degree %d root α^%d", d, i)
		}
	}

	for _, d := range []int{0, -3} {
		_, err := qrField.Generator(d)
		assert.ErrorIs(t, err, ErrDegree)
	}
}

var (
	rsData  = []byte{32, 91, 11, 120, 209, 114, 220, 77, 67, 64, 236, 17, 236, 17, 236, 17}
	rsCheck = []byte{196, 35, 39, 119, 235, 215, 231, 226, 93, 23}
)

func TestEncode(t *testing.T) {
	t.Parallel()
	gen, err := qrField.Generator(len(rsCheck))
	require.NoError(t, err)
	check, err := qrField.Encode(rsData, len(rsCheck), gen)
	require.NoError(t, err)
	assert.Equal(t, rsCheck, check)

	cw := append(append([]byte{}, rsData...), check...)
	assert.True(t, qrField.Valid(cw, len(check)))
	cw[3] ^= 0x40
	assert.False(t, qrField.Valid(cw, len(check)))
	assert.NotEqual(t, make([]byte, len(check)), qrField.Syndromes(cw, len(check)))
}

func TestEncodeErrors(t *testing.T) {
	t.Parallel()
	gen, err := qrField.Generator(4)
	require.NoError(t, err)
	tests := []struct {
		name  string
		block []byte
		n     int
		gen   []byte
		err   error
	}{
		{"empty block", nil, 4, gen, ErrEmptyBlock},
		{"zero count", []byte{1}, 0, gen, ErrCheckCount},
		{"negative count", []byte{1}, -1, gen, ErrCheckCount},
		{"no generator", []byte{1}, 4, nil, ErrNoGenerator},
		{"short generator", []byte{1}, 4, gen[:4], ErrNoGenerator},
		{"not monic", []byte{1}, 4, append([]byte{2}, gen[1:]...), ErrNoGenerator},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := qrField.Encode(tt.block, tt.n, tt.gen)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestRSEncoder(t *testing.T) {
	t.Parallel()
	rs := NewRSEncoder(qrField, len(rsCheck))
	check := make([]byte, len(rsCheck))
	rs.ECC(rsData, check)
	assert.Equal(t, rsCheck, check)

	// Reused buffer, different lengths.
	for _, n := range []int{1, 5, 40, 16, 3} {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i*37 + n)
		}
		rs.ECC(data, check)
		want, err := qrField.Encode(data, len(check), rs.Generator())
		require.NoError(t, err)
		assert.Equal(t, want, check, "length %d", n)
	}

	assert.Panics(t, func() { rs.ECC(rsData, check[:3]) })
}
