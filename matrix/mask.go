// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

import (
	"golang.org/x/sync/errgroup"

	"github.com/unixdj/qrsym/coding"
)

// ErrMask is returned for mask patterns outside 0 to 7.
var ErrMask = coding.ErrMask

// Mask patterns:
//
//	0: ▄▀▄▀▄▀▄▀▄▀▄▀  1: ▄▄▄▄▄▄▄▄▄▄▄▄  2:  ██ ██ ██ ██  3: ▄█▀▄█▀▄█▀▄█▀
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     ▀▄█▀▄█▀▄█▀▄█
//	   ▄▀▄▀▄▀▄▀▄▀▄▀     ▄▄▄▄▄▄▄▄▄▄▄▄      ██ ██ ██ ██     █▀▄█▀▄█▀▄█▀▄
//
//	4:    ███   ███  5:  ▄▄▄▄▄ ▄▄▄▄▄  6:    ▄▄▄   ▄▄▄  7: ▄█▄▀ ▀▄█▄▀ ▀
//	   ███   ███         █▀▄▀█ █▀▄▀█      ▄▀▄ █ ▄▀▄ █     ▄▀█▀▄ ▄▀█▀▄
//	      ███   ███      ██▄██ ██▄██      █▄▄▀  █▄▄▀      ▄  ▀██▄  ▀██
var maskFunc = [coding.NumMasks]func(i, j int) bool{
	func(i, j int) bool { return (i+j)%2 == 0 },
	func(i, j int) bool { return i%2 == 0 },
	func(i, j int) bool { return j%3 == 0 },
	func(i, j int) bool { return (i+j)%3 == 0 },
	func(i, j int) bool { return (i/2+j/3)%2 == 0 },
	func(i, j int) bool { return i*j%2+i*j%3 == 0 },
	func(i, j int) bool { return (i*j%2+i*j%3)%2 == 0 },
	func(i, j int) bool { return ((i+j)%2+i*j%3)%2 == 0 },
}

// MaskBit reports whether mask pattern mask inverts the module at
// row, col.  It returns false for invalid masks.
func MaskBit(mask, row, col int) bool {
	return 0 <= mask && mask < coding.NumMasks && maskFunc[mask](row, col)
}

// ApplyMask returns a copy of g with the unreserved modules selected
// by mask pattern mask inverted.  Applying the same mask twice
// restores the original modules.
func ApplyMask(g *Grid, mask int) (*Grid, error) {
	if mask < 0 || mask >= coding.NumMasks {
		return nil, ErrMask
	}
	c := g.Clone()
	f := maskFunc[mask]
	for y := 0; y < c.Size; y++ {
		off := y * c.Stride
		for x := 0; x < c.Size; x += 8 {
			var m byte
			for b := 0; b < 8 && x+b < c.Size; b++ {
				if f(y, x+b) {
					m |= 0x80 >> b
				}
			}
			c.bits[off] ^= m &^ c.rsv[off]
			off++
		}
	}
	return c, nil
}

// Commit returns a copy of g with the format information for level l
// and mask pattern mask written and the mask applied.
func Commit(g *Grid, l coding.Level, mask int) (*Grid, error) {
	c, err := ApplyMask(g, mask)
	if err != nil {
		return nil, err
	}
	if err := PlaceFormatInfo(c, l, mask); err != nil {
		return nil, err
	}
	c.Mask = mask
	return c, nil
}

// A Trial is the outcome of trying a mask pattern.
type Trial struct {
	Mask    int
	Penalty int
}

// A Masker chooses the mask pattern for a symbol.
// The zero Masker tries the patterns sequentially.
type Masker struct {
	Parallel bool        // try mask patterns concurrently
	Report   func(Trial) // if not nil, called for each trial in mask order
}

// Apply commits each mask pattern to a copy of g, scores the copies
// and returns the one with the lowest penalty, the lowest mask
// pattern winning a tie.
func (m *Masker) Apply(g *Grid, l coding.Level) (*Grid, error) {
	var trials [coding.NumMasks]struct {
		g *Grid
		p int
	}
	try := func(mask int) error {
		c, err := Commit(g, l, mask)
		if err != nil {
			return err
		}
		trials[mask].g, trials[mask].p = c, Penalty(c)
		return nil
	}
	if m.Parallel {
		var eg errgroup.Group
		for mask := range coding.NumMasks {
			eg.Go(func() error { return try(mask) })
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	} else {
		for mask := range coding.NumMasks {
			if err := try(mask); err != nil {
				return nil, err
			}
		}
	}

	best := 0
	for mask, t := range trials {
		if m.Report != nil {
			m.Report(Trial{mask, t.p})
		}
		if t.p < trials[best].p {
			best = mask
		}
	}
	return trials[best].g, nil
}

// ApplyOptimalMask returns g with the mask pattern of the lowest
// penalty committed, as chosen by the zero Masker.
func ApplyOptimalMask(g *Grid, l coding.Level) (*Grid, error) {
	var m Masker
	return m.Apply(g, l)
}
