// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package split

import "github.com/unixdj/datamatrix/coding"

const numSchemes = int(coding.NumSchemes)

// Costs are kept in twelfths of a codeword, the least common multiple
// of the fractions involved.
const unit = 12

// Per character cost in twelfths for each scheme: native, extended
// (128-255) and other characters.  ASCII is handled separately.
var cost = [numSchemes][3]int{
	coding.C40:     {8, 32, 16},
	coding.Text:    {8, 32, 16},
	coding.X12:     {8, 52, 40},
	coding.EDIFACT: {9, 51, 39},
	coding.Base256: {12, 12, 12},
}

// ceil rounds x up to a whole number of codewords.
func ceil(x int) int { return (x + unit - 1) / unit }

func isX12Term(c byte) bool { return c == '\r' || c == '*' || c == '>' }

// lookAhead returns the scheme to continue in at text[pos:] when the
// current scheme is mode.  X12 and EDIFACT are only returned if the
// next 3 or 4 characters, respectively, are encodable in them.
func lookAhead(text string, pos int, mode coding.Scheme) coding.Scheme {
	m := lookAheadTest(text, pos, mode)
	var n int
	switch m {
	case coding.X12:
		n = 3
	case coding.EDIFACT:
		n = 4
	default:
		return m
	}
	for i := pos; i < min(pos+n, len(text)); i++ {
		if !m.Native(text[i]) {
			return coding.ASCII
		}
	}
	return m
}

// lookAheadTest implements the look-ahead test, steps J to R.
func lookAheadTest(text string, pos int, mode coding.Scheme) coding.Scheme {
	if pos >= len(text) {
		return mode
	}
	// Step J: initial costs
	var c [numSchemes]int
	if mode == coding.ASCII {
		c = [numSchemes]int{0, 12, 12, 12, 12, 15}
	} else {
		c = [numSchemes]int{12, 24, 24, 24, 24, 27}
		c[mode] = 0
	}

	var n [numSchemes]int // whole codewords
	for i := pos; ; i++ {
		if i == len(text) {
			// Step K: end of data
			least := 1 << 30
			for sc := range n {
				n[sc] = ceil(c[sc])
				least = min(least, n[sc])
			}
			if n[coding.ASCII] == least {
				return coding.ASCII
			}
			var count int
			for _, v := range n {
				if v == least {
					count++
				}
			}
			if count == 1 {
				for _, sc := range [...]coding.Scheme{
					coding.Base256, coding.EDIFACT, coding.Text, coding.X12,
				} {
					if n[sc] == least {
						return sc
					}
				}
			}
			return coding.C40
		}

		ch := text[i]
		// Step L: ASCII
		switch {
		case isDigit(ch):
			c[coding.ASCII] += unit / 2
		case ch >= 0x80:
			c[coding.ASCII] = ceil(c[coding.ASCII])*unit + 2*unit
		default:
			c[coding.ASCII] = ceil(c[coding.ASCII])*unit + unit
		}
		// Steps M to Q
		for sc := coding.C40; sc < coding.NumSchemes; sc++ {
			switch {
			case sc.Native(ch):
				c[sc] += cost[sc][0]
			case ch >= 0x80:
				c[sc] += cost[sc][1]
			default:
				c[sc] += cost[sc][2]
			}
		}

		// Step R
		if i-pos+1 < 4 {
			continue
		}
		for sc := range n {
			n[sc] = ceil(c[sc])
		}
		// least returns the minimum over all schemes but those given.
		least := func(except ...coding.Scheme) int {
			m := 1 << 30
		next:
			for sc, v := range n {
				for _, e := range except {
					if coding.Scheme(sc) == e {
						continue next
					}
				}
				m = min(m, v)
			}
			return m
		}
		ascii, b256 := n[coding.ASCII], n[coding.Base256]
		switch {
		case ascii < least(coding.ASCII):
			return coding.ASCII
		case b256 < ascii || b256+1 < least(coding.ASCII, coding.Base256):
			return coding.Base256
		case n[coding.EDIFACT]+1 < least(coding.EDIFACT):
			return coding.EDIFACT
		case n[coding.Text]+1 < least(coding.Text):
			return coding.Text
		case n[coding.X12]+1 < least(coding.X12):
			return coding.X12
		case n[coding.C40]+1 < least(coding.C40, coding.X12):
			switch x12 := n[coding.X12]; {
			case n[coding.C40] < x12:
				return coding.C40
			case n[coding.C40] == x12:
				for j := i + 1; j < len(text); j++ {
					if isX12Term(text[j]) {
						return coding.X12
					}
					if !coding.IsX12(text[j]) {
						break
					}
				}
				return coding.C40
			}
		}
	}
}
