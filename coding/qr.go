// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coding implements the data coding of QR codes: the
// structure tables, byte mode encoding, block splitting, error
// correction and interleaving.
package coding // import "github.com/unixdj/qrsym/coding"

//go:generate sh -c "go run gen.go | gofmt > tables.go"

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/unixdj/qrsym/gf256"
)

var (
	ErrLevel   = errors.New("qr: invalid level")
	ErrVersion = errors.New("qr: invalid version")
	ErrMode    = errors.New("qr: invalid mode")
	ErrMask    = errors.New("qr: invalid mask")
	ErrEmpty   = errors.New("qr: empty data")
	ErrBits    = errors.New("qr: malformed bit sequence")
	ErrTooLong = errors.New("qr: data too long for version")
)

// Field is the field for QR error correction.
var Field = gf256.NewField(0x11d, 2)

// A Version represents a QR version.
// The version specifies the size of the QR code:
// a QR code with version v has 4v+17 pixels on a side.
// Versions run from 1 to 40: the larger the version,
// the more information the code can store.
type Version int

const (
	MinVersion Version = 1  // Minimum QR version
	MaxVersion Version = 40 // Maximum QR version
)

func (v Version) String() string {
	return strconv.Itoa(int(v))
}

func (v Version) valid() bool {
	return MinVersion <= v && v <= MaxVersion
}

// Size returns the number of modules on a side of a QR code
// of version v.
func (v Version) Size() int {
	return int(v)*4 + 17
}

// QR version size classes.
const (
	Class0 = iota // QR versions 1 to 9
	Class1        // QR versions 10 to 26
	Class2        // QR versions 27 to 40
)

// SizeClass returns the size class of v, as documented under Class0.
func (v Version) SizeClass() int {
	if v <= 9 {
		return Class0
	}
	if v <= 26 {
		return Class1
	}
	return Class2
}

// A Level represents a QR error correction level.
// From least to most tolerant of errors, they are L, M, Q, H.
type Level int

const (
	L Level = iota // 20% redundant
	M              // 38% redundant
	Q              // 55% redundant
	H              // 65% redundant
)

func (l Level) String() string {
	if L <= l && l <= H {
		return "LMQH"[l : l+1]
	}
	return strconv.Itoa(int(l))
}

func (l Level) valid() bool {
	return L <= l && l <= H
}

// NumMasks is the number of QR mask patterns.
const NumMasks = 8

// A Mode is a QR segment encoding mode.  Only Byte is encoded by
// this package; the others are known to CountBits.
type Mode int

const (
	Numeric      Mode = iota // numeric mode
	Alphanumeric             // alphanumeric mode
	Byte                     // byte mode
	Kanji                    // kanji mode
)

// Mode indicators and count lengths by size class.
var modes = [...]struct {
	name      string
	indicator uint32
	count     [3]int
}{
	{"numeric", 1, [3]int{10, 12, 14}},
	{"alphanumeric", 2, [3]int{9, 11, 13}},
	{"byte", 4, [3]int{8, 16, 16}},
	{"kanji", 8, [3]int{8, 10, 12}},
}

func (m Mode) String() string {
	if m.valid() {
		return modes[m].name
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}

func (m Mode) valid() bool {
	return 0 <= m && int(m) < len(modes)
}

// Indicator returns the 4 bit mode indicator of m.
func (m Mode) Indicator() (uint32, error) {
	if !m.valid() {
		return 0, ErrMode
	}
	return modes[m].indicator, nil
}

type level struct {
	nblock int // number of blocks
	check  int // error correction bytes per block
}

type version struct {
	bytes     int   // total number of codewords
	remainder int   // number of remainder bits
	align     []int // alignment pattern centres
	level     [4]level
}

func check(v Version, l Level) error {
	if !v.valid() {
		return ErrVersion
	}
	if !l.valid() {
		return ErrLevel
	}
	return nil
}

// dataBytes returns the number of data bytes that can be
// stored in a QR code with the given version and level.
func (v Version) dataBytes(l Level) int {
	vt := &vtab[v]
	lev := vt.level[l]
	return vt.bytes - lev.nblock*lev.check
}

// DataBytes returns the number of data bytes that can be
// stored in a QR code with the given version and level.
func DataBytes(v Version, l Level) (int, error) {
	if err := check(v, l); err != nil {
		return 0, err
	}
	return v.dataBytes(l), nil
}

// CheckBytes returns the number of error correction bytes in each
// block of a QR code with the given version and level.
func CheckBytes(v Version, l Level) (int, error) {
	if err := check(v, l); err != nil {
		return 0, err
	}
	return vtab[v].level[l].check, nil
}

// Blocks returns the number of blocks the data of a QR code with the
// given version and level is split into.
func Blocks(v Version, l Level) (int, error) {
	if err := check(v, l); err != nil {
		return 0, err
	}
	return vtab[v].level[l].nblock, nil
}

// TotalBytes returns the number of data and error correction bytes
// in a QR code of version v.
func TotalBytes(v Version) (int, error) {
	if !v.valid() {
		return 0, ErrVersion
	}
	return vtab[v].bytes, nil
}

// RemainderBits returns the number of modules left over after all
// codewords of a QR code of version v are placed.
func RemainderBits(v Version) (int, error) {
	if !v.valid() {
		return 0, ErrVersion
	}
	return vtab[v].remainder, nil
}

// CountBits returns the width of the character count field
// of mode m at version v.
func CountBits(v Version, m Mode) (int, error) {
	if !v.valid() {
		return 0, ErrVersion
	}
	if !m.valid() {
		return 0, ErrMode
	}
	return modes[m].count[v.SizeClass()], nil
}

// AlignmentPositions returns the row and column coordinates of the
// alignment pattern centres of version v.  Version 1 has none.
// The returned slice must not be modified.
func AlignmentPositions(v Version) ([]int, error) {
	if !v.valid() {
		return nil, ErrVersion
	}
	return vtab[v].align, nil
}

// FormatBits returns the 15 bit format information codeword for
// level l and mask pattern mask, most significant bit first.
func FormatBits(l Level, mask int) (uint16, error) {
	if !l.valid() {
		return 0, ErrLevel
	}
	if mask < 0 || mask >= NumMasks {
		return 0, ErrMask
	}
	return ftab[l][mask], nil
}

// A CapacityError is returned when the data does not fit a QR code of
// the given version and level.  It matches ErrTooLong.
type CapacityError struct {
	Version  Version
	Level    Level
	Bytes    int // encoded data length in bytes
	Capacity int // data capacity in bytes
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("qr: %d bytes of data too long for version %v-%v (capacity %d)",
		e.Bytes, e.Version, e.Level, e.Capacity)
}

func (e *CapacityError) Unwrap() error { return ErrTooLong }

// A CharsetError is returned when text can not be represented in a
// byte mode charset.
type CharsetError struct {
	Charset Charset
	Err     error
}

func (e *CharsetError) Error() string {
	return fmt.Sprintf("qr: text not representable in %v: %v",
		e.Charset, e.Err)
}

func (e *CharsetError) Unwrap() error { return e.Err }
