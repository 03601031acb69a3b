// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"golang.org/x/sync/errgroup"

	"github.com/unixdj/qrsym/gf256"
)

// BlockSizes returns the sizes of the blocks n data bytes are split
// into at the given version and level.  When n does not divide
// evenly, the last n%nblock blocks are one byte longer.
func BlockSizes(n int, v Version, l Level) ([]int, error) {
	nblock, err := Blocks(v, l)
	if err != nil {
		return nil, err
	}
	if n < nblock {
		return nil, &CapacityError{v, l, n, v.dataBytes(l)}
	}
	db := n / nblock
	normal := nblock - n%nblock
	sizes := make([]int, nblock)
	for i := range sizes {
		sizes[i] = db
		if i >= normal {
			sizes[i]++
		}
	}
	return sizes, nil
}

// SplitBlocks splits data into blocks of the given sizes.
// The blocks share storage with data.
func SplitBlocks(data []byte, sizes []int) [][]byte {
	blocks := make([][]byte, len(sizes))
	for i, n := range sizes {
		if len(data) < n {
			panic("qr: internal error: short data")
		}
		blocks[i], data = data[:n:n], data[n:]
	}
	if len(data) != 0 {
		panic("qr: internal error: excess data")
	}
	return blocks
}

// EncodeBlocks returns check error correction bytes for each block.
// With parallel set, the blocks are encoded concurrently.
func EncodeBlocks(blocks [][]byte, check int, parallel bool) ([][]byte, error) {
	ecc := make([][]byte, len(blocks))
	if !parallel {
		if check < 1 {
			return nil, gf256.ErrCheckCount
		}
		rs := gf256.NewRSEncoder(Field, check)
		buf := make([]byte, len(blocks)*check)
		for i, b := range blocks {
			if len(b) == 0 {
				return nil, gf256.ErrEmptyBlock
			}
			ecc[i], buf = buf[:check:check], buf[check:]
			rs.ECC(b, ecc[i])
		}
		return ecc, nil
	}

	gen, err := Field.Generator(check)
	if err != nil {
		return nil, err
	}
	var g errgroup.Group
	for i, b := range blocks {
		g.Go(func() (err error) {
			ecc[i], err = Field.Encode(b, check, gen)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ecc, nil
}

// Interleave returns the codeword sequence of data and ecc blocks:
// byte 0 of each data block, then byte 1 and so on, skipping blocks
// already exhausted, followed by the check blocks interleaved the
// same way.  It panics if the block counts differ.
func Interleave(data, ecc [][]byte) []byte {
	if len(data) != len(ecc) {
		panic("qr: internal error: block count mismatch")
	}
	n := 0
	for i := range data {
		n += len(data[i]) + len(ecc[i])
	}
	dst := make([]byte, 0, n)
	dst = interleave(dst, data)
	return interleave(dst, ecc)
}

// interleave appends the interleaved blocks to dst.
func interleave(dst []byte, blocks [][]byte) []byte {
	for j := 0; ; j++ {
		done := true
		for _, b := range blocks {
			if j < len(b) {
				dst = append(dst, b[j])
				done = false
			}
		}
		if done {
			return dst
		}
	}
}

// Deinterleave splits the codeword sequence cw into data blocks of
// the given sizes and check blocks of check bytes each.
// It is the inverse of Interleave.
func Deinterleave(cw []byte, sizes []int, check int) (data, ecc [][]byte, err error) {
	n := len(sizes) * check
	longest := 0
	for _, s := range sizes {
		n += s
		if s > longest {
			longest = s
		}
	}
	if n != len(cw) || check < 0 {
		return nil, nil, ErrBits
	}
	data = make([][]byte, len(sizes))
	ecc = make([][]byte, len(sizes))
	for i, s := range sizes {
		data[i] = make([]byte, 0, s)
		ecc[i] = make([]byte, 0, check)
	}
	for j := 0; j < longest; j++ {
		for i, s := range sizes {
			if j < s {
				data[i] = append(data[i], cw[0])
				cw = cw[1:]
			}
		}
	}
	for j := 0; j < check; j++ {
		for i := range ecc {
			ecc[i] = append(ecc[i], cw[0])
			cw = cw[1:]
		}
	}
	return data, ecc, nil
}
