// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package matrix

// Penalty points.
//
//   - RunP: for each run of n same-colour modules in a row or
//     column, n>=5 -> n-2
//   - BoxP: for each, possibly overlapping, 2x2 box of same-colour
//     modules -> 3
//   - FindP: for each dark-light-dark-dark-dark-light-dark pattern
//     in a row or column with 4 light modules before or after it,
//     modules outside the symbol being light -> 40
//   - BalP: for n% of dark modules, rounded down ->
//     10*floor(abs(n-50)/5)
const (
	minRun    = 5  // RunP:  minimum run length
	runPDelta = -2 // RunP:  add to run length
	boxPP     = 3  // BoxP:  points per box
	findPP    = 40 // FindP: points per pattern
	balPP     = 10 // BalP:  points
	balPStep  = 5  //        for every 5% away from 50%

	// The last 15 modules of a line are kept in a uint16,
	// the newest in bit 0.
	findCore = 0b1011101 // pattern, bits 4-10
	findMask = 0b1111111
)

// Penalty returns the penalty score of g, used for choosing the mask.
func Penalty(g *Grid) int {
	p := PenaltyRules(g)
	return p[0] + p[1] + p[2] + p[3]
}

// PenaltyRules returns the RunP, BoxP, FindP and BalP penalties of g.
func PenaltyRules(g *Grid) [4]int {
	var p [4]int
	siz := g.Size
	for i := 0; i < siz; i++ {
		row := func(j int) bool { return g.Get(i, j) }
		col := func(j int) bool { return g.Get(j, i) }
		p[0] += runPenalty(siz, row) + runPenalty(siz, col)
		p[2] += findPenalty(siz, row) + findPenalty(siz, col)
	}
	for y := 0; y < siz-1; y++ {
		for x := 0; x < siz-1; x++ {
			c := g.Get(y, x)
			if g.Get(y, x+1) == c && g.Get(y+1, x) == c &&
				g.Get(y+1, x+1) == c {
				p[1] += boxPP
			}
		}
	}
	if siz > 0 {
		dark, _ := g.Count()
		pct := dark * 100 / (siz * siz)
		if pct < 50 {
			pct = 100 - pct
		}
		p[3] = (pct - 50) / balPStep * balPP
	}
	return p
}

// runPenalty returns the RunP penalty of a line of n modules.
func runPenalty(n int, get func(int) bool) int {
	p := 0
	r := 1
	for i := 1; i <= n; i++ {
		if i < n && get(i) == get(i-1) {
			r++
			continue
		}
		if r >= minRun {
			p += r + runPDelta
		}
		r = 1
	}
	return p
}

// findPenalty returns the FindP penalty of a line of n modules.
func findPenalty(n int, get func(int) bool) int {
	p := 0
	var pat uint16 // modules i-14 to i
	for i := 0; i < n+4; i++ {
		pat = pat << 1 & 0x7fff
		if i < n && get(i) {
			pat |= 1
		}
		// pattern at i-10 to i-4
		if i >= 10 && pat>>4&findMask == findCore &&
			(pat>>11 == 0 || pat&0xf == 0) {
			p += findPP
		}
	}
	return p
}
