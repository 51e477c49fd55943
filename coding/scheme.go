// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import "strconv"

// Encodation schemes.
const (
	ASCII   Scheme = iota // ASCII, digit pairs, upper shift
	C40                   // 3 characters in 2 codewords, upper case
	Text                  // 3 characters in 2 codewords, lower case
	X12                   // 3 characters in 2 codewords, ANSI X12
	EDIFACT               // 4 characters in 3 codewords, ASCII 32-94
	Base256               // bytes, randomised
	NumSchemes
)

// A Scheme is an ECC200 encodation scheme.  Exactly one scheme is
// active at any point in the codeword stream; the stream starts and
// ends in ASCII.
type Scheme int8

// scheme describes an encodation scheme.  Per-scheme behaviour lives
// in this table rather than in methods dispatched on types.
type scheme struct {
	name   string
	latch  byte                              // latch from ASCII
	native func(c byte) bool                 // encodable at base cost
	values func([]byte, byte) ([]byte, bool) // C40, Text, X12 values
}

var schemes = [NumSchemes]scheme{
	ASCII: {
		name:   "ascii",
		native: func(c byte) bool { return c < 0x80 },
	},
	C40: {
		name:   "c40",
		latch:  LatchC40,
		native: func(c byte) bool { return c < 0x80 && c40tab[c]>>6 == 0 },
		values: func(dst []byte, c byte) ([]byte, bool) {
			return tripletValues(dst, c, &c40tab), true
		},
	},
	Text: {
		name:   "text",
		latch:  LatchText,
		native: func(c byte) bool { return c < 0x80 && texttab[c]>>6 == 0 },
		values: func(dst []byte, c byte) ([]byte, bool) {
			return tripletValues(dst, c, &texttab), true
		},
	},
	X12: {
		name:   "x12",
		latch:  LatchX12,
		native: IsX12,
		values: func(dst []byte, c byte) ([]byte, bool) {
			if !IsX12(c) {
				return dst, false
			}
			return append(dst, x12tab[c]), true
		},
	},
	EDIFACT: {
		name:   "edifact",
		latch:  LatchEDIFACT,
		native: IsEDIFACT,
	},
	Base256: {
		name:   "base256",
		latch:  LatchBase256,
		native: func(byte) bool { return false },
	},
}

// IsValid reports whether sc is one of the six schemes.
func (sc Scheme) IsValid() bool { return 0 <= sc && sc < NumSchemes }

func (sc Scheme) String() string {
	if sc.IsValid() {
		return schemes[sc].name
	}
	return strconv.Itoa(int(sc))
}

// Latch returns the codeword switching from ASCII to sc, or 0 for
// ASCII.
func (sc Scheme) Latch() byte { return schemes[sc].latch }

// Native reports whether c is encodable in sc at the scheme's lowest
// cost: without shifts in C40, Text and X12, at all in EDIFACT, as a
// single codeword in ASCII.  No byte is native to Base256, which
// costs one codeword for every byte.
func (sc Scheme) Native(c byte) bool { return schemes[sc].native(c) }

// Values appends to dst the C40, Text or X12 values encoding c, and
// returns the extended slice and true.  If sc is not one of these
// schemes or c is not encodable in X12, it returns dst and false.
func (sc Scheme) Values(dst []byte, c byte) ([]byte, bool) {
	if f := schemes[sc].values; f != nil {
		return f(dst, c)
	}
	return dst, false
}

// ValueCount returns the number of C40, Text or X12 values encoding c,
// or 0 if c is not encodable.
func (sc Scheme) ValueCount(c byte) int {
	var buf [4]byte
	v, _ := sc.Values(buf[:0], c)
	return len(v)
}

// C40 and Text tables.  Low 6 bits: value; high 2 bits: 0 for the
// basic set, or n for Shift n.
var c40tab, texttab [0x80]byte

// X12 values.  Used after validation.
var x12tab [0x80]byte

func init() {
	for c := 0; c < 0x80; c++ {
		var set, v int
		switch {
		case c == ' ':
			v = 3
		case '0' <= c && c <= '9':
			v = c - '0' + 4
		case 'A' <= c && c <= 'Z':
			v = c - 'A' + 14
		case c < ' ':
			set, v = 1, c
		case c < '0':
			set, v = 2, c-'!'
		case c < 'A':
			set, v = 2, c-':'+15
		case c <= '_':
			set, v = 2, c-'['+22
		default: // '`', 'a'-'z', '{'-DEL
			set, v = 3, c-'`'
		}
		c40tab[c] = byte(set<<6 | v)
		if 'A' <= c && c <= 'Z' || c == ' ' || '0' <= c && c <= '9' {
			x12tab[c] = byte(v)
		}
	}
	x12tab['\r'], x12tab['*'], x12tab['>'] = 0, 1, 2
	// Text swaps upper and lower case letters.
	texttab = c40tab
	for c := 'A'; c <= 'Z'; c++ {
		texttab[c], texttab[c+0x20] = c40tab[c+0x20], c40tab[c]
	}
}

// tripletValues appends the C40 or Text values for c.  Bytes 128-255
// are encoded as Shift 2, Upper Shift and the values for c-128.
func tripletValues(dst []byte, c byte, tab *[0x80]byte) []byte {
	if c >= 0x80 {
		dst = append(dst, 1, 30)
		c -= 0x80
	}
	v := tab[c]
	if set := v >> 6; set != 0 {
		dst = append(dst, set-1)
	}
	return append(dst, v&0x3f)
}

// IsX12 reports whether c is in the X12 character set: CR, '*', '>',
// space, digits and upper case letters.
func IsX12(c byte) bool {
	switch {
	case c == '\r', c == '*', c == '>', c == ' ':
		return true
	case '0' <= c && c <= '9', 'A' <= c && c <= 'Z':
		return true
	}
	return false
}

// IsEDIFACT reports whether c is in the EDIFACT character set, ASCII
// 32 to 94.
func IsEDIFACT(c byte) bool { return ' ' <= c && c <= '^' }
