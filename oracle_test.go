// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package qr

import (
	"testing"

	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unixdj/qrsym/coding"
)

var oracleLevel = [...]qrcode.RecoveryLevel{
	L: qrcode.Low,
	M: qrcode.Medium,
	Q: qrcode.High,
	H: qrcode.Highest,
}

// lowercase returns n lowercase letters, which any encoder puts in a
// single byte mode segment.
func lowercase(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a' + byte(i*7%26)
	}
	return string(b)
}

// TestOracle builds symbols with an independent encoder, reads back
// the mask pattern it chose and checks that the same mask yields the
// same symbol here.
func TestOracle(t *testing.T) {
	t.Parallel()
	for _, v := range []int{1, 2, 4, 5, 7, 10, 14, 21, 27, 32, 40} {
		capacity, err := coding.DataBytes(coding.Version(v), coding.H)
		require.NoError(t, err)
		text := lowercase(capacity - 3)
		for l := L; l <= H; l++ {
			q, err := qrcode.NewWithForcedVersion(text, v, oracleLevel[l])
			require.NoError(t, err, "version %d-%v", v, l)
			q.DisableBorder = true
			bm := q.Bitmap()
			require.Len(t, bm, coding.Version(v).Size(), "version %d-%v", v, l)

			fb := formatAt(func(row, col int) bool { return bm[row][col] })
			mask := -1
			for m := 0; m < coding.NumMasks; m++ {
				if want, _ := coding.FormatBits(coding.Level(l), m); want == fb {
					mask = m
				}
			}
			require.NotEqual(t, -1, mask, "version %d-%v: format %#04x", v, l, fb)

			c, err := Encode(text, v, l, WithMask(mask))
			require.NoError(t, err, "version %d-%v", v, l)
			bad := 0
			for y, row := range bm {
				for x, dark := range row {
					if c.Black(x, y) != dark {
						bad++
					}
				}
			}
			assert.Zero(t, bad, "version %d-%v mask %d: modules differ", v, l, mask)
		}
	}
}
