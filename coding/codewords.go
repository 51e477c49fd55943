// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"sync"

	"github.com/unixdj/datamatrix/gf256"
)

// MaxBase256 is the maximum length of a Base256 segment.
const MaxBase256 = MaxData - 3

// A Segment describes a run of text encoded in a single scheme.
type Segment struct {
	Text   string // data to encode
	Scheme Scheme // encodation scheme
}

// IsValid reports whether seg is encodable.
func (seg Segment) IsValid() bool {
	var is func(byte) bool
	switch seg.Scheme {
	case ASCII, C40, Text:
		return true
	case X12:
		is = IsX12
	case EDIFACT:
		is = IsEDIFACT
	case Base256:
		return len(seg.Text) <= MaxBase256
	default:
		return false
	}
	for i := 0; i < len(seg.Text); i++ {
		if !is(seg.Text[i]) {
			return false
		}
	}
	return true
}

// Codewords is a buffer of data codewords.  The zero value is an
// empty buffer ready to use.
type Codewords struct {
	b []byte

	// The end of the last C40, Text, X12 or EDIFACT segment: b[end:]
	// starts with cut codewords ending the scheme, encoding rest.
	// Readers return to ASCII without them when at most room data
	// codewords follow b[:end].
	end  int
	cut  int
	room int
	rest string
}

// Reset empties b.
func (b *Codewords) Reset() {
	b.b, b.end, b.cut, b.room, b.rest = b.b[:0], 0, 0, 0, ""
}

// Bytes returns the codewords.  The slice is valid until the next
// modification of b.
func (b *Codewords) Bytes() []byte { return b.b }

// Len returns the number of codewords.
func (b *Codewords) Len() int { return len(b.b) }

// Optional returns the number of codewords saved in a symbol filled
// by the data, where the unlatch at the end of the last segment is
// implied.
func (b *Codewords) Optional() int { return len(b.b) - b.MinLen() }

// MinLen returns the smallest number of data codewords b fits in.
func (b *Codewords) MinLen() int {
	if n := b.impliedLen(); b.cut > 0 && n-b.end <= b.room {
		return n
	}
	return len(b.b)
}

// impliedLen returns the length of b with the scheme end replaced by
// rest in ASCII.
func (b *Codewords) impliedLen() int {
	return len(b.b) - b.cut + asciiLen(b.rest)
}

// fits reports whether b fits in n data codewords.
func (b *Codewords) fits(n int) bool {
	if b.cut > 0 && n-b.end <= b.room {
		return b.impliedLen() <= n
	}
	return len(b.b) <= n
}

// Select returns the smallest size of the given shape holding b.
func (b *Codewords) Select(shape Shape) (Size, error) {
	if shape < AnyShape || shape > Rectangle {
		return -1, ErrShape
	}
	for s := MinSize; s <= MaxSize; s++ {
		if shape.Accepts(s) && b.fits(stab[s].DataCodewords) {
			return s, nil
		}
	}
	return -1, ErrCapacity
}

// implied records the scheme end starting at end.
func (b *Codewords) implied(end, room int, rest string) {
	b.end, b.cut, b.room, b.rest = end, len(b.b)-end, room, rest
}

// dropEnd replaces the scheme end by rest in ASCII.
func (b *Codewords) dropEnd() {
	tail := b.b[b.end+b.cut:]
	var a Codewords
	encodeASCII(&a, b.rest)
	b.b = append(append(b.b[:b.end:b.end], a.b...), tail...)
	b.cut, b.rest = 0, ""
}

func (b *Codewords) add(v ...byte) { b.b = append(b.b, v...) }

// Write encodes the segments and appends them to b.  On error b may
// contain part of the data.
func (b *Codewords) Write(segs ...Segment) error {
	for _, seg := range segs {
		if err := seg.Encode(b); err != nil {
			return err
		}
	}
	return nil
}

// Encode appends seg to b.  A segment in a scheme other than ASCII is
// preceded by a latch and, except for Base256, followed by an unlatch,
// so that each segment starts and ends in ASCII.  Empty segments
// produce no codewords.
func (seg Segment) Encode(b *Codewords) error {
	if !seg.IsValid() {
		if seg.Scheme == Base256 {
			return ErrCapacity
		}
		return SegmentError(seg)
	}
	s := seg.Text
	if s == "" {
		return nil
	}
	switch seg.Scheme {
	case ASCII:
		encodeASCII(b, s)
	case C40, Text, X12:
		encodeTriplets(b, s, seg.Scheme)
	case EDIFACT:
		encodeEDIFACT(b, s)
	case Base256:
		encodeBase256(b, s)
	}
	return nil
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// asciiLen returns the number of codewords s takes in ASCII.
func asciiLen(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		switch {
		case isDigit(s[i]) && i+1 < len(s) && isDigit(s[i+1]):
			i++
		case s[i] >= 0x80:
			n++
		}
		n++
	}
	return n
}

// encodeASCII encodes s in ASCII.  Pairs of digits take one codeword.
func encodeASCII(b *Codewords, s string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isDigit(c) && i+1 < len(s) && isDigit(s[i+1]):
			i++
			b.add(DigitPair + (c-'0')*10 + s[i] - '0')
		case c >= 0x80:
			b.add(UpperShift, c-127)
		default:
			b.add(c + 1)
		}
	}
}

// encodeTriplets encodes s in C40, Text or X12.  Three values are
// packed in two codewords.  Trailing characters that would leave a
// single value (C40, Text) or any value (X12) in an incomplete triplet
// are encoded in ASCII after the unlatch.  Two leftover values are
// completed with Shift 1.  The unlatch is implied if at most one
// codeword follows the last pair.
func encodeTriplets(b *Codewords, s string, sc Scheme) {
	v := make([]byte, 0, len(s)+len(s)/2)
	ends := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		v, _ = sc.Values(v, s[i])
		ends[i] = len(v)
	}
	n := len(s)
	for n > 0 {
		r := ends[n-1] % 3
		if r == 0 || r == 2 && sc != X12 {
			break
		}
		n--
	}
	if n == 0 {
		encodeASCII(b, s)
		return
	}
	v = v[:ends[n-1]]
	if len(v)%3 == 2 {
		v = append(v, 0)
	}
	b.add(sc.Latch())
	for ; len(v) >= 3; v = v[3:] {
		x := 1600*int(v[0]) + 40*int(v[1]) + int(v[2]) + 1
		b.add(byte(x>>8), byte(x))
	}
	b.add(Unlatch)
	b.implied(len(b.b)-1, 1, "")
	encodeASCII(b, s[n:])
}

// encodeEDIFACT encodes s in EDIFACT.  Four 6 bit values are packed
// in three codewords.  The unlatch value ends the last group, which is
// padded with zero bits to a codeword boundary.  If at most two
// codewords follow the last full group, the unlatch is implied and the
// characters after the group are encoded in ASCII.
func encodeEDIFACT(b *Codewords, s string) {
	b.add(LatchEDIFACT)
	start := len(b.b)
	var (
		x    uint32 // bit accumulator
		nbit int
	)
	put := func(v byte) {
		x = x<<6 | uint32(v)
		for nbit += 6; nbit >= 8; nbit -= 8 {
			b.add(byte(x >> (nbit - 8)))
		}
	}
	for i := 0; i < len(s); i++ {
		put(s[i] & 0x3f)
	}
	full := len(s) / 4
	put(UnlatchEDIFACT)
	if nbit != 0 {
		b.add(byte(x << (8 - nbit)))
	}
	b.implied(start+3*full, 2, s[4*full:])
}

// encodeBase256 encodes s in Base256.  The length field and the data
// are randomised by their codeword positions.
func encodeBase256(b *Codewords, s string) {
	b.cut = 0
	b.add(LatchBase256)
	n := len(s)
	if n <= 249 {
		b.add(rand255(byte(n), len(b.b)+1))
	} else {
		b.add(rand255(byte(n/250+249), len(b.b)+1))
		b.add(rand255(byte(n%250), len(b.b)+1))
	}
	for i := 0; i < n; i++ {
		b.add(rand255(s[i], len(b.b)+1))
	}
}

// rand255 randomises a Base256 codeword v at 1-based position pos.
func rand255(v byte, pos int) byte {
	x := int(v) + 149*pos%255 + 1
	if x > 255 {
		x -= 256
	}
	return byte(x)
}

// pad253 returns the pad codeword at 1-based position pos, except the
// first one, which is always Pad.
func pad253(pos int) byte {
	x := Pad + 149*pos%253 + 1
	if x > 254 {
		x -= 254
	}
	return byte(x)
}

// PadTo pads b to the data capacity of s.  The unlatch ending the last
// segment is dropped where readers imply it.  PadTo returns ErrCapacity
// if b does not fit in s.
func (b *Codewords) PadTo(s Size) error {
	if !s.IsValid() {
		return ErrSize
	}
	n := s.DataCodewords()
	if !b.fits(n) {
		return ErrCapacity
	}
	if b.cut > 0 && n-b.end <= b.room {
		b.dropEnd()
	}
	if len(b.b) < n {
		b.b = append(b.b, Pad)
		for len(b.b) < n {
			b.b = append(b.b, pad253(len(b.b)+1))
		}
	}
	b.cut = 0
	return nil
}

// AddCheckBytes pads b to the data capacity of s and appends the
// interleaved error correction codewords.
func (b *Codewords) AddCheckBytes(s Size) error {
	if err := b.PadTo(s); err != nil {
		return err
	}
	cw, err := Protect(b.b, s)
	if err != nil {
		return err
	}
	b.b = cw
	return nil
}

// Reed-Solomon encoders, one per size, created on first use.
var encoders [NumSizes]struct {
	once sync.Once
	rs   *gf256.RSEncoder
}

func encoder(s Size) *gf256.RSEncoder {
	e := &encoders[s]
	e.once.Do(func() {
		sp := &stab[s]
		e.rs = gf256.NewRSEncoder(Field, sp.CheckCodewords/sp.Blocks, 1)
	})
	return e.rs
}

// Protect returns the data codewords followed by the error correction
// codewords for a symbol of size s.  Data codeword i belongs to block
// i mod Blocks, and check codeword j of block k is placed at
// DataCodewords + k + j*Blocks.  Protect returns ErrInvariant if the
// length of data is not the data capacity of s.
func Protect(data []byte, s Size) ([]byte, error) {
	if !s.IsValid() {
		return nil, ErrSize
	}
	sp := &stab[s]
	nd := sp.DataCodewords
	if len(data) != nd {
		return nil, ErrInvariant
	}
	nblock := sp.Blocks
	rs := encoder(s)
	out := make([]byte, nd+sp.CheckCodewords)
	copy(out, data)
	blk := make([]byte, 0, (nd+nblock-1)/nblock)
	chk := make([]byte, rs.Check())
	for k := 0; k < nblock; k++ {
		blk = blk[:0]
		for i := k; i < nd; i += nblock {
			blk = append(blk, data[i])
		}
		rs.ECC(blk, chk)
		for j, v := range chk {
			out[nd+k+j*nblock] = v
		}
	}
	return out, nil
}
