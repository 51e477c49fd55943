// Copyright 2025 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegmentEncode(t *testing.T) {
	for _, tc := range []struct {
		seg  Segment
		want []byte
		opt  int
	}{
		{Segment{"123456", ASCII}, []byte{142, 164, 186}, 0},
		{Segment{"A1b", ASCII}, []byte{66, 50, 99}, 0},
		{Segment{"12a3", ASCII}, []byte{142, 98, 52}, 0},
		{Segment{"\xe9", ASCII}, []byte{UpperShift, 0xe9 - 127}, 0},
		{Segment{"AIMAIM", C40}, []byte{230, 91, 11, 91, 11, 254}, 1},
		{Segment{"AIMA", C40}, []byte{230, 91, 11, 254, 66}, 1},
		{Segment{"AIMAI", C40}, []byte{230, 91, 11, 90, 241, 254}, 1},
		{Segment{"a", C40}, []byte{230, 12, 169, 254}, 1},
		{Segment{"A", C40}, []byte{66}, 0},
		{Segment{"abc", Text}, []byte{239, 89, 233, 254}, 1},
		{Segment{"ABC", X12}, []byte{238, 89, 233, 254}, 1},
		{Segment{"ABCD", X12}, []byte{238, 89, 233, 254, 69}, 1},
		{Segment{"AB", X12}, []byte{66, 67}, 0},
		{Segment{"ABCD", EDIFACT}, []byte{240, 4, 32, 196, 124}, 1},
		{Segment{"ABC", EDIFACT}, []byte{240, 4, 32, 223}, 0},
		{Segment{"A", EDIFACT}, []byte{240, 5, 240}, 1},
		{Segment{"\x00\xff", Base256}, []byte{231, 46, 193, 86}, 0},
		{Segment{"", C40}, nil, 0},
		{Segment{"", Base256}, nil, 0},
	} {
		var b Codewords
		require.NoError(t, tc.seg.Encode(&b), "%+v", tc.seg)
		require.Equal(t, tc.want, b.Bytes(), "%+v", tc.seg)
		require.Equal(t, tc.opt, b.Optional(), "%+v", tc.seg)
		require.Equal(t, len(tc.want)-tc.opt, b.MinLen())
	}
}

func TestSegmentInvalid(t *testing.T) {
	for _, seg := range []Segment{
		{"abc", X12},
		{"ABC`", EDIFACT},
		{"x", Scheme(6)},
		{"x", Scheme(-1)},
	} {
		require.False(t, seg.IsValid())
		var b Codewords
		err := seg.Encode(&b)
		require.Equal(t, SegmentError(seg), err)
		require.Zero(t, b.Len())
	}
	require.EqualError(t, SegmentError{"abc", X12},
		"datamatrix: non-x12 string `abc`")

	var b Codewords
	big := Segment{strings.Repeat("x", MaxBase256+1), Base256}
	require.ErrorIs(t, big.Encode(&b), ErrCapacity)
	big.Text = big.Text[1:]
	require.NoError(t, big.Encode(&b))
	require.Equal(t, MaxData, b.Len())
}

func TestBase256Length(t *testing.T) {
	for _, n := range []int{249, 250, 251, 499, 500, MaxBase256} {
		var b Codewords
		require.NoError(t, b.Write(Segment{strings.Repeat("\x80", n), Base256}))
		cw := b.Bytes()
		hdr := 2
		if n > 249 {
			hdr = 3
		}
		require.Len(t, cw, hdr+n)
		// undo randomisation of the length field
		l := make([]int, hdr-1)
		for i := range l {
			pos := i + 2
			v := int(cw[i+1]) - (149*pos%255 + 1)
			if v < 0 {
				v += 256
			}
			l[i] = v
		}
		if n <= 249 {
			require.Equal(t, n, l[0])
		} else {
			require.Equal(t, n, (l[0]-249)*250+l[1])
		}
	}
}

func TestWriteSegments(t *testing.T) {
	var b Codewords
	require.NoError(t, b.Write(
		Segment{"12", ASCII},
		Segment{"AIMAIM", C40},
		Segment{"", X12},
		Segment{"ab", ASCII},
	))
	require.Equal(t, []byte{142, 230, 91, 11, 91, 11, 254, 98, 99}, b.Bytes())
	require.Zero(t, b.Optional())
	b.Reset()
	require.Zero(t, b.Len())
	require.Error(t, b.Write(Segment{"1", ASCII}, Segment{"a", X12}))
}

func TestPadTo(t *testing.T) {
	var b Codewords
	require.NoError(t, b.PadTo(MinSize))
	require.Equal(t, []byte{129, 175, 70}, b.Bytes())

	b.Reset()
	require.NoError(t, b.Write(Segment{"12", ASCII}))
	s, _ := SizeOf(12, 12)
	require.NoError(t, b.PadTo(s))
	require.Equal(t, []byte{142, 129, 70, 220, 115}, b.Bytes())
	for i, v := range b.Bytes()[2:] {
		require.Equal(t, pad253(i+3), v)
		require.GreaterOrEqual(t, v, byte(1))
		require.LessOrEqual(t, v, byte(254))
	}

	b.Reset()
	require.NoError(t, b.Write(Segment{"12345678", ASCII}))
	require.ErrorIs(t, b.PadTo(MinSize), ErrCapacity)
	require.ErrorIs(t, b.PadTo(Size(-1)), ErrSize)
}

func TestPadToOptionalUnlatch(t *testing.T) {
	// 6 codewords, the last one optional: fits 12x12 (5) exactly.
	var b Codewords
	require.NoError(t, b.Write(Segment{"AIMAIM", C40}))
	s, err := b.Select(AnyShape)
	require.NoError(t, err)
	require.Equal(t, "12x12", s.String())
	require.NoError(t, b.PadTo(s))
	require.Equal(t, []byte{230, 91, 11, 91, 11}, b.Bytes())

	// Kept when there is room.
	b.Reset()
	require.NoError(t, b.Write(Segment{"AIMAIM", C40}))
	s, _ = SizeOf(14, 14)
	require.NoError(t, b.PadTo(s))
	require.Equal(t, []byte{230, 91, 11, 91, 11, 254, Pad}, b.Bytes()[:7])
	require.Len(t, b.Bytes(), 8)

	// EDIFACT: full group, unlatch dropped in 8x32.
	b.Reset()
	require.NoError(t, b.Write(Segment{"ABCDABCDABCD", EDIFACT}))
	require.Equal(t, 11, b.Len())
	s, _ = b.Select(AnyShape)
	require.Equal(t, "8x32", s.String())
	require.NoError(t, b.PadTo(s))
	require.Equal(t, []byte{240, 4, 32, 196, 4, 32, 196, 4, 32, 196},
		b.Bytes())
}

func TestImpliedUnlatch(t *testing.T) {
	edi := []byte{186, 206, 187} // ".,:;"
	groups := func(n int) []byte {
		var g []byte
		for i := 0; i < n; i++ {
			g = append(g, edi...)
		}
		return g
	}
	cat := func(bs ...[]byte) []byte {
		var r []byte
		for _, b := range bs {
			r = append(r, b...)
		}
		return r
	}
	for _, tc := range []struct {
		segs  []Segment
		shape Shape
		size  string
		want  []byte
	}{
		// One character after the last group: ASCII in the last
		// two codewords.
		{[]Segment{{strings.Repeat(".,:;", 3) + ".", EDIFACT}}, AnyShape,
			"16x16", cat([]byte{240}, groups(3), []byte{47, Pad})},
		{[]Segment{{strings.Repeat(".,:;", 5) + ".", EDIFACT}}, AnyShape,
			"18x18", cat([]byte{240}, groups(5), []byte{47, Pad})},
		// Room for the group: unlatch kept.
		{[]Segment{{strings.Repeat(".,:;", 3) + ".", EDIFACT}}, Rectangle,
			"12x26", cat([]byte{240}, groups(3), []byte{185, 240, Pad})},
		// Full groups, one codeword left.
		{[]Segment{{strings.Repeat(".,:;", 10), EDIFACT}}, AnyShape,
			"16x36", cat([]byte{240}, groups(10), []byte{Pad})},
		{[]Segment{{"A", EDIFACT}}, AnyShape,
			"10x10", []byte{240, 66, Pad}},
		{[]Segment{{"ABCD", EDIFACT}, {"12", ASCII}}, AnyShape,
			"12x12", []byte{240, 4, 32, 196, 142}},
		// C40 with one codeword after the last pair.
		{[]Segment{{"1", ASCII}, {"AIMA", C40}}, AnyShape,
			"12x12", []byte{50, 230, 91, 11, 66}},
		{[]Segment{{"AIMA", C40}}, AnyShape,
			"12x12", []byte{230, 91, 11, 254, 66}},
	} {
		var b Codewords
		require.NoError(t, b.Write(tc.segs...))
		s, err := b.Select(tc.shape)
		require.NoError(t, err, "%+v", tc.segs)
		require.Equal(t, tc.size, s.String(), "%+v", tc.segs)
		require.NoError(t, b.PadTo(s))
		require.Equal(t, tc.want, b.Bytes()[:len(tc.want)], "%+v", tc.segs)
		require.Equal(t, s.DataCodewords(), b.Len())
	}

	var b Codewords
	require.NoError(t, b.Write(Segment{strings.Repeat(".,:;", 3) + ".", EDIFACT}))
	require.Equal(t, 12, b.Len())
	require.Equal(t, 11, b.MinLen())
	s, _ := SizeOf(8, 32)
	require.ErrorIs(t, b.PadTo(s), ErrCapacity)
	_, err := b.Select(Shape(4))
	require.ErrorIs(t, err, ErrShape)
	b.Reset()
	require.Zero(t, b.Optional())
}

func TestProtect(t *testing.T) {
	data := []byte{142, 164, 186}
	cw, err := Protect(data, MinSize)
	require.NoError(t, err)
	require.Equal(t, []byte{142, 164, 186, 114, 25, 5, 88, 102}, cw)

	_, err = Protect(data[:2], MinSize)
	require.ErrorIs(t, err, ErrInvariant)
	_, err = Protect(data, Size(NumSizes))
	require.ErrorIs(t, err, ErrSize)
}

func TestProtectSyndromes(t *testing.T) {
	for s := MinSize; s <= MaxSize; s++ {
		sp := s.Spec()
		data := make([]byte, sp.DataCodewords)
		for i := range data {
			data[i] = byte(i*7 + int(s))
		}
		cw, err := Protect(data, s)
		require.NoError(t, err)
		require.Len(t, cw, s.Codewords())
		require.Equal(t, data, cw[:len(data)])

		nb := sp.Blocks
		nc := sp.CheckCodewords / nb
		for k := 0; k < nb; k++ {
			var blk []byte
			for i := k; i < len(data); i += nb {
				blk = append(blk, data[i])
			}
			for j := 0; j < nc; j++ {
				blk = append(blk, cw[len(data)+k+j*nb])
			}
			for i := 1; i <= nc; i++ {
				require.Zero(t, Field.Eval(blk, Field.Exp(i)),
					"%v block %d syndrome %d", s, k, i)
			}
		}
	}
}

func TestAddCheckBytes(t *testing.T) {
	var b Codewords
	require.NoError(t, b.Write(Segment{"123456", ASCII}))
	require.NoError(t, b.AddCheckBytes(MinSize))
	require.Equal(t, []byte{142, 164, 186, 114, 25, 5, 88, 102}, b.Bytes())

	// 144x144: blocks of 156 and 155 data codewords.
	b.Reset()
	require.NoError(t, b.AddCheckBytes(MaxSize))
	require.Len(t, b.Bytes(), MaxSize.Codewords())
}
