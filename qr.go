// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package qr builds QR code symbols.

Encode takes text, a QR version and an error correction level.  The
text is encoded in byte mode and split into blocks with error
correction added; the function patterns and the codewords are laid
out on the module grid, and the mask pattern with the lowest penalty
is applied.  The result is a Code, a bitmap of dark and light modules
without the quiet zone, for the caller to render.
*/
package qr // import "github.com/unixdj/qrsym"

import (
	"github.com/unixdj/qrsym/coding"
	"github.com/unixdj/qrsym/matrix"
)

// A Level denotes a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	return coding.Level(l).String()
}

// A Charset selects the byte mode encoding of text.
type Charset = coding.Charset

const (
	UTF8   = coding.UTF8   // UTF-8, no conversion
	Latin1 = coding.Latin1 // UTF-8 text converted to ISO 8859-1
)

// Errors returned by Encode.  A *coding.CapacityError matches
// ErrTooLong.
var (
	ErrVersion = coding.ErrVersion
	ErrLevel   = coding.ErrLevel
	ErrMask    = coding.ErrMask
	ErrEmpty   = coding.ErrEmpty
	ErrTooLong = coding.ErrTooLong
)

// Encode returns a QR code of the given version and error correction
// level holding text encoded in byte mode.
func Encode(text string, version int, level Level, opts ...Option) (*Code, error) {
	cfg := config{mask: -1}
	for _, o := range opts {
		o(&cfg)
	}
	v, l := coding.Version(version), coding.Level(level)
	capacity, err := coding.DataBytes(v, l)
	if err != nil {
		return nil, err
	}
	if cfg.mask >= coding.NumMasks || cfg.mask < -1 {
		return nil, ErrMask
	}
	ev := Event{Version: version, Level: level, Mask: -1}

	enc := coding.Encoder{Charset: cfg.charset, Parallel: cfg.parallel}
	cw, err := enc.Encode(text, v, capacity, l)
	if err != nil {
		return nil, err
	}
	ev.Codewords = len(cw)
	cfg.emit(StageEncode, ev)

	g, err := matrix.ForVersion(v)
	if err != nil {
		return nil, err
	}
	if err := matrix.PlaceFunctionPatterns(g, v); err != nil {
		return nil, err
	}
	_, ev.Modules = g.Count()
	cfg.emit(StageFunction, ev)

	ev.Modules = matrix.PlaceData(g, cw)
	cfg.emit(StageData, ev)
	ev.Modules = 0

	if cfg.mask >= 0 {
		g, err = matrix.Commit(g, l, cfg.mask)
	} else {
		m := matrix.Masker{Parallel: cfg.parallel}
		if cfg.trace != nil {
			m.Report = func(t matrix.Trial) {
				ev.Mask, ev.Penalty = t.Mask, t.Penalty
				cfg.emit(StageMaskTrial, ev)
			}
		}
		g, err = m.Apply(g, l)
	}
	if err != nil {
		return nil, err
	}
	if cfg.trace != nil {
		ev.Mask, ev.Penalty = g.Mask, matrix.Penalty(g)
		cfg.emit(StageMask, ev)
	}

	return &Code{
		Bitmap:  g.Bitmap(),
		Size:    g.Size,
		Stride:  g.Stride,
		Version: version,
		Level:   level,
		Mask:    g.Mask,
	}, nil
}

// A Code is a square pixel grid.
type Code struct {
	Bitmap  []byte // 1 is black, 0 is white
	Size    int    // number of pixels on a side
	Stride  int    // number of bytes per row
	Version int    // QR version
	Level   Level  // error correction level
	Mask    int    // mask pattern
}

// Black returns true if the pixel at (x,y) is black.
func (c *Code) Black(x, y int) bool {
	return 0 <= x && x < c.Size && 0 <= y && y < c.Size &&
		c.Bitmap[y*c.Stride+x/8]&(1<<uint(7-x&7)) != 0
}
